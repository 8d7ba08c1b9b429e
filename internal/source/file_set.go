package source

import (
	"crypto/sha256"
	"os"
	"sort"
	"sync"

	"fortio.org/safecast"
	"github.com/cockroachdb/errors"
)

// FileSet owns the documents of one compilation session.
// It is safe for concurrent use; documents are loaded in parallel by the front-end.
type FileSet struct {
	mu      sync.RWMutex
	files   []*File
	index   map[string]FileID
	baseDir string
}

// NewFileSet creates an empty set whose relative paths are computed against baseDir.
func NewFileSet(baseDir string) *FileSet {
	return &FileSet{
		index:   make(map[string]FileID),
		baseDir: baseDir,
	}
}

// BaseDir returns the directory paths are made relative to.
func (fs *FileSet) BaseDir() string {
	return fs.baseDir
}

// Add stores already-normalised content. A second Add with the same path
// creates a new FileID and GetByPath starts returning the newer one.
func (fs *FileSet) Add(path string, content []byte, flags FileFlags) FileID {
	if _, err := safecast.Conv[uint32](len(content)); err != nil {
		panic(errors.Wrapf(err, "file %s is too large", path))
	}
	f := &File{
		Path:    RelativeTo(path, fs.baseDir),
		Content: content,
		LineIdx: buildLineIndex(content),
		Hash:    sha256.Sum256(content),
		Flags:   flags,
	}

	fs.mu.Lock()
	defer fs.mu.Unlock()
	id, err := safecast.Conv[uint32](len(fs.files))
	if err != nil {
		panic(errors.Wrap(err, "file set overflow"))
	}
	f.ID = FileID(id)
	fs.files = append(fs.files, f)
	fs.index[f.Path] = f.ID
	return f.ID
}

// Load reads a document from disk, strips a BOM and normalises CRLF.
func (fs *FileSet) Load(path string) (FileID, error) {
	// #nosec G304 -- path comes from the project walk
	content, err := os.ReadFile(path)
	if err != nil {
		return 0, errors.Wrapf(err, "read %s", path)
	}
	var flags FileFlags
	content, hadBOM := removeBOM(content)
	if hadBOM {
		flags |= FileHadBOM
	}
	content, hadCRLF := normalizeCRLF(content)
	if hadCRLF {
		flags |= FileNormalizedCRLF
	}
	return fs.Add(path, content, flags), nil
}

// AddVirtual adds in-memory content with the FileVirtual flag.
func (fs *FileSet) AddVirtual(name string, content []byte) FileID {
	content, _ = normalizeCRLF(content)
	return fs.Add(name, content, FileVirtual)
}

// Get returns the file for id or nil when id is unknown.
func (fs *FileSet) Get(id FileID) *File {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	if int(id) >= len(fs.files) {
		return nil
	}
	return fs.files[id]
}

// GetByPath returns the latest file registered under path.
func (fs *FileSet) GetByPath(path string) (*File, bool) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	id, ok := fs.index[normalizePath(path)]
	if !ok {
		return nil, false
	}
	return fs.files[id], true
}

// Latest returns the newest version of every path ordered by path.
func (fs *FileSet) Latest() []*File {
	fs.mu.RLock()
	out := make([]*File, 0, len(fs.index))
	for _, id := range fs.index {
		out = append(out, fs.files[id])
	}
	fs.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

// Len returns the number of files, counting every version.
func (fs *FileSet) Len() int {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	return len(fs.files)
}

// Resolve converts a span into start and end positions.
func (fs *FileSet) Resolve(span Span) (start, end LineCol) {
	f := fs.Get(span.File)
	if f == nil {
		return LineCol{}, LineCol{}
	}
	return f.Position(span.Start), f.Position(span.End)
}

// Position maps a byte offset of f to a line and column.
func (f *File) Position(off uint32) LineCol {
	return toLineCol(f.LineIdx, off)
}

// Line returns the text of a 1-based line without its terminator.
func (f *File) Line(n uint32) string {
	if n == 0 || int(n) > len(f.LineIdx)+1 {
		return ""
	}
	var start int
	if n > 1 {
		start = int(f.LineIdx[n-2]) + 1
	}
	end := len(f.Content)
	if int(n) <= len(f.LineIdx) {
		end = int(f.LineIdx[n-1])
	}
	if start > end {
		return ""
	}
	return string(f.Content[start:end])
}

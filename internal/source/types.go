package source

type (
	// FileID uniquely identifies a source document within a FileSet.
	FileID uint32
	// FileFlags encodes how the content was obtained and normalised.
	FileFlags uint8
)

const (
	// FileVirtual marks content added from memory (tests, generated input).
	FileVirtual FileFlags = 1 << iota
	FileHadBOM
	FileNormalizedCRLF
)

// File is one C# document known to the session.
type File struct {
	ID      FileID
	Path    string // slash-separated, relative to the FileSet root when possible
	Content []byte
	LineIdx []uint32 // offsets of '\n'
	Hash    [32]byte
	Flags   FileFlags
}

// LineCol is a human-readable position.
type LineCol struct {
	Line uint32 // 1-based
	Col  uint32 // 1-based, in bytes
}

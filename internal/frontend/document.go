package frontend

import (
	"cs2ts/internal/diag"
	"cs2ts/internal/source"
)

// Document is one C# source file of the project.
type Document struct {
	ID   source.FileID
	Path string // relative, slash-separated
	File *source.File
}

// Hash is the content digest used for cache keys.
func (d *Document) Hash() [32]byte {
	if d.File == nil {
		return [32]byte{}
	}
	return d.File.Hash
}

// Location converts a span of d into a diagnostic location.
func (d *Document) Location(span source.Span) *diag.Location {
	loc := &diag.Location{Path: d.Path, Span: span}
	if d.File != nil {
		loc.Pos = d.File.Position(span.Start)
	}
	return loc
}

// DocumentsOf wraps every file of fs, ordered by path.
func DocumentsOf(fs *source.FileSet) []*Document {
	files := fs.Latest()
	docs := make([]*Document, 0, len(files))
	for _, f := range files {
		docs = append(docs, &Document{ID: f.ID, Path: f.Path, File: f})
	}
	return docs
}

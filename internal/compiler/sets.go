package compiler

import (
	"cs2ts/internal/frontend"
	"cs2ts/internal/pipeline"
	"cs2ts/internal/source"
	"cs2ts/internal/symtab"
	"cs2ts/internal/tsast"
)

// ProjectRequest is the pipeline input. With a nil Service the project is
// read from Root and parsed with the built-in C# front-end.
type ProjectRequest struct {
	Root    string
	Service frontend.Service
	// Files receives the documents read from Root so callers can render
	// source excerpts afterwards. A fresh set is used when nil.
	Files *source.FileSet
}

// Project is an opened project.
type Project struct {
	Root      string
	Files     *source.FileSet // nil when the service was supplied by the caller
	Service   frontend.Service
	Documents []*frontend.Document
	// Strings is the interner of this compilation session.
	Strings *source.Interner
}

// DocumentSet holds the documents that will be translated, in document order.
type DocumentSet struct {
	Project *Project
	Units   []frontend.Unit
}

// Docs returns the documents of the set.
func (s *DocumentSet) Docs() []*frontend.Document {
	docs := make([]*frontend.Document, len(s.Units))
	for i, u := range s.Units {
		docs[i] = u.Doc
	}
	return docs
}

// TranslationSet is a DocumentSet with its symbol tables.
type TranslationSet struct {
	*DocumentSet
	Tables *symtab.Tables
}

// TranslatedFile is the TypeScript module produced for one document.
type TranslatedFile struct {
	Doc  *frontend.Document
	File *tsast.SourceFile
}

// TranslatedSet holds the documents that translated without errors.
type TranslatedSet struct {
	Project *Project
	Files   []TranslatedFile
}

// EmittedFile is the TypeScript text of one document. Path is the output
// path relative to the output directory.
type EmittedFile struct {
	Doc  *frontend.Document
	Path string
	Text string
}

// EmittedSet holds the emitted text of every translated document.
type EmittedSet struct {
	Files []EmittedFile
}

// WrittenSet lists the files written to disk, empty when no output
// directory is configured.
type WrittenSet struct {
	Files   []string
	Emitted *EmittedSet
}

// Stage tags.
var (
	RequestTag     = pipeline.NewTag[*ProjectRequest]("project-request")
	ProjectTag     = pipeline.NewTag[*Project]("project")
	DocumentsTag   = pipeline.NewTag[*DocumentSet]("documents")
	TranslationTag = pipeline.NewTag[*TranslationSet]("translation-set")
	TablesTag      = pipeline.NewTag[*symtab.Tables]("symbol-tables")
	TranslatedTag  = pipeline.NewTag[*TranslatedSet]("translated")
	EmittedTag     = pipeline.NewTag[*EmittedSet]("emitted")
	WrittenTag     = pipeline.NewTag[*WrittenSet]("written")
)

// conversions lets the symbols pipeline end on the tables of a TranslationSet.
var conversions = func() *pipeline.Graph {
	g := pipeline.NewGraph()
	pipeline.Connect(g, TranslationTag, TablesTag, func(s *TranslationSet) *symtab.Tables { return s.Tables })
	return g
}()

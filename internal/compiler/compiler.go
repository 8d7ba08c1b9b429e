package compiler

import (
	"context"

	"cs2ts/internal/diag"
	"cs2ts/internal/options"
	"cs2ts/internal/pipeline"
	"cs2ts/internal/symcache"
	"cs2ts/internal/symtab"
)

// Config carries the collaborators of a Compiler.
type Config struct {
	// Progress receives per-document events; nil disables them.
	Progress ProgressSink
	// Cache stores symbol tables between runs; nil disables caching.
	Cache *symcache.Cache
}

// Compiler owns the assembled pipelines. One Compiler may run many
// compilations, one at a time or concurrently.
type Compiler struct {
	cfg      Config
	progress progress
	compile  *pipeline.Pipeline[*ProjectRequest, *WrittenSet]
	symbols  *pipeline.Pipeline[*ProjectRequest, *symtab.Tables]
}

// New assembles the compile and symbols pipelines around cfg.
func New(cfg Config) *Compiler {
	c := &Compiler{cfg: cfg, progress: progress{sink: cfg.Progress}}
	c.compile = pipeline.New("compile", RequestTag, WrittenTag, conversions).
		MustAddStage(c.frontStages()...).
		MustAddStage(
			pipeline.NewStage("Validate", TranslationTag, TranslationTag, c.validate),
			pipeline.NewStage("Translate", TranslationTag, TranslatedTag, c.translateDocuments),
			pipeline.NewStage("Emit", TranslatedTag, EmittedTag, c.emitFiles),
			pipeline.NewStage("WriteFiles", EmittedTag, WrittenTag, c.writeFiles),
		).
		MustBuild()
	c.symbols = pipeline.New("symbols", RequestTag, TablesTag, conversions).
		MustAddStage(c.frontStages()...).
		MustBuild()
	return c
}

// frontStages open the project and build its symbol tables.
func (c *Compiler) frontStages() []pipeline.Stage {
	return []pipeline.Stage{
		pipeline.NewStage("OpenProject", RequestTag, ProjectTag, c.openProject),
		pipeline.NewStage("DetermineTranslatableDocuments", ProjectTag, DocumentsTag, c.determineDocuments),
		pipeline.NewStage("BuildSymbolTables", DocumentsTag, TranslationTag, c.buildSymbolTables),
	}
}

// Compile runs the full pipeline. The result succeeds when no error
// diagnostic remains after severity adjustment.
func (c *Compiler) Compile(ctx context.Context, req ProjectRequest, opts *options.CompilerOptions) diag.Result[*WrittenSet] {
	return c.compile.Execute(ctx, &req, opts)
}

// Symbols runs the front stages only and returns the symbol tables.
func (c *Compiler) Symbols(ctx context.Context, req ProjectRequest, opts *options.CompilerOptions) diag.Result[*symtab.Tables] {
	return c.symbols.Execute(ctx, &req, opts)
}

// Stages names the stages of the compile pipeline in order.
func (c *Compiler) Stages() []string {
	return c.compile.Stages()
}

// Package compiler assembles the concrete C# to TypeScript pipeline: it
// opens a project, selects the documents worth translating, builds the
// symbol tables, validates, translates, emits and writes the output.
//
// Every stage is a pipeline.Stage over the exported tags below; per-document
// work fans out under the CompilerOptions job limit and reports progress
// events to an optional sink.
package compiler

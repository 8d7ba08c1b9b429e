// Package translate turns one bound C# document into a TypeScript module.
//
// Translation reads the whole-program symbol tables for every name it
// emits, so the same C# symbol gets the same TypeScript spelling in every
// document. Problems in the input are reported as diagnostics; a document
// that produced an error is still returned so callers can decide whether
// to drop it.
package translate

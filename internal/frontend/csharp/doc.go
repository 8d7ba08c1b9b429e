// Package csharp is the tree-sitter based C# front-end. It parses every
// document of a FileSet, declares the types and members of the whole
// project, then binds each document's bodies on first request.
//
// The binder understands the subset of C# the compiler can translate:
// classes, structs, interfaces and enums with fields, properties, methods,
// constructors and the usual statements and expressions. Anything else is
// kept in the tree as an unsupported node and reported by the translator.
package csharp

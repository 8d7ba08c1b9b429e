// Package frontend is the query surface the compiler needs from a C#
// front-end: documents, syntax trees, semantic models and front-end
// diagnostics. The compiler never parses C# itself; internal/frontend/csharp
// is one implementation and internal/testkit is another.
package frontend

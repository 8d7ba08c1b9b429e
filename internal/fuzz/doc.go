// Package fuzztests holds fuzz harnesses that push arbitrary bytes through
// the C# front-end and the compile pipeline. They guard against panics and
// hangs on malformed documents.
package fuzztests

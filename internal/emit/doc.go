// Package emit turns TypeScript syntax trees into text.
//
// Emitter is a small state machine over an io.Writer: it tracks the
// indentation depth, whether the output currently sits after whitespace and
// whether the next token needs a separating space. Nodes only describe what
// to print; spacing, indentation and list layout decisions live here.
//
// Spacing rules:
//   - two word tokens written back to back get exactly one space between them;
//   - trailing spaces of a write are deferred and dropped at a line break or
//     before closing punctuation;
//   - indentation is written lazily at the first non-empty write of a line,
//     so blank lines carry no whitespace.
package emit

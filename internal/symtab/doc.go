// Package symtab builds the whole-program symbol tables consulted while
// translating documents:
//
//   - Imports: the document (or external module) that defines each type.
//   - Names: the TypeScript identifier emitted for each type and member.
//   - Inline: call sites replaced by literal TypeScript text.
//   - Alternates: overloads folded into one implementation, with the
//     argument permutation each call site needs.
//
// Build runs once per compilation. The returned Tables are never mutated
// afterwards and may be read from any number of goroutines.
package symtab

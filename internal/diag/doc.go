// Package diag defines the diagnostic model shared by every compiler stage.
//
// # Purpose
//
//   - Carry findings from the front-end, the symbol tables, validation and
//     translation without aborting the stage that produced them.
//   - Pair computed values with their diagnostics through Result so that no
//     stage needs panics or sentinel errors to report problems in the input
//     program.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - ID – stable identifier. Codes owned by the compiler render as CST####,
//     front-end diagnostics keep the id reported by the front-end (CS####).
//   - Category – coarse origin (front-end, validation, translation, ...).
//   - Severity – Hidden, Info, Warning or Error.
//   - Location – optional document path, span and 1-based position.
//   - IsSeverityConfigurable – whether compilation options may suppress or
//     escalate the diagnostic.
//
// # Accumulation
//
// Bag is a bounded, single-owner collector used inside one unit of work.
// List is the append-only accumulator shared by the parallel tasks of one
// stage; it never blocks and never loses an append.
//
// # Scope
//
// The package does no rendering beyond the short single-line form; pretty
// and JSON output live in internal/diagfmt. Severity adjustment rules are
// owned by internal/options and plugged in through the Adjuster interface.
package diag

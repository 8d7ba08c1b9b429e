// Package pipeline runs typed stages in sequence.
//
// Every value flowing through a pipeline is named by a Tag. A stage declares
// the tag it consumes and the tag it produces; AddStage binds it to the most
// recent earlier output carrying a compatible tag, either the same tag or one
// connected to it by an explicit conversion edge in a Graph. Wiring is
// validated while the pipeline is assembled, so Execute never inspects
// dynamic types.
//
// Execute threads diagnostics through the stages. After each stage its
// diagnostics are severity-adjusted, sorted and appended; the first error
// stops the run.
package pipeline

// Package trace records spans for the stages of a cs2ts compilation.
//
// Spans nest: a driver span covers one command, pass spans cover pipeline
// stages, module spans cover per-document tasks and node spans cover
// front-end work such as parsing and binding a single document.
//
// Enable tracing from the command line:
//
//	cs2ts compile --trace=- --trace-level=detail ./src
//
// Sinks:
//
//   - Nop discards everything and is returned whenever tracing is off.
//   - StreamTracer writes each event as it happens (text or NDJSON).
//   - RingTracer keeps the most recent events for a dump after a failure.
//   - ZapTracer forwards events to a *zap.Logger as structured fields.
//   - MultiTracer fans out to several sinks.
//
// Tracers travel through the pipeline on the context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "translate", trace.CurrentSpan(ctx).SpanID)
//	defer span.End("")
package trace

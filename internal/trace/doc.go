// Package trace provides the tracing subsystem of the ramen compiler.
//
// Every compilation unit opens a driver span; each pass (parse, bind,
// resolve, lower) opens a pass span under it, and the lowering pass adds one
// span per function. Events carry the run id of their session so output of
// parallel units can be separated.
//
// # Tracers
//
//   - Nop: zero-overhead tracer when disabled
//   - StreamTracer: immediate write to output (file/stderr), text or NDJSON
//   - RingTracer: circular buffer kept in memory, handy in tests
//   - MultiTracer: combines multiple tracers
//
// # Levels
//
//   - LevelOff: no tracing
//   - LevelError: reserved for failure dumps
//   - LevelPhase: driver and pass boundaries
//   - LevelDetail: per-function events
//   - LevelDebug: everything including node-level events
//
// # Usage
//
//	span := trace.Begin(t, trace.ScopePass, "lower", parentID)
//	defer span.End("")
package trace

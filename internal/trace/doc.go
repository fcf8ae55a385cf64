// Package trace records what lintel is doing while it runs.
//
// Spans mark the driver run, each file, and each analyzer phase; points at
// node scope are emitted only at debug level. Tracers are selected with the
// global --trace flags:
//
//	lintel check --trace=- --trace-level=phase src/
//
// A StreamTracer writes events as they happen, a RingTracer keeps the last
// events in memory for dumping after a crash, and a MultiTracer fans out to
// both. The tracer travels through the pipeline in a context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopeFile, path, 0)
//	defer span.End("")
package trace

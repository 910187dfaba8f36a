// Package trace is the event log of a fuzz campaign.
//
// A campaign is a span, each trial is a span below it, and each target
// process is a span below its trial. Timeouts and crashes are also emitted
// as findings, which every level except off lets through, so
//
//	exprfuzz run --trace=findings.ndjson --trace-level=error
//
// records nothing but the candidates worth triaging. The ring mode keeps the
// most recent events in memory; the CLI dumps them after a campaign that
// crashed the target.
//
// Trace files are text, NDJSON or msgpack, picked from the file extension.
// Msgpack files can be read back with ReadEvents.
//
// The tracer travels in the context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopeExec, "exec", trace.CurrentSpan(ctx))
//	defer span.End("")
package trace

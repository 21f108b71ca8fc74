// Package failure defines the error taxonomy shared by the stimulus pipeline.
//
// Errors are tagged with one of the exported sentinel markers so callers can
// classify them with errors.Is regardless of how much context was layered on
// while they propagated. Padding the timeline to a filter period is not an
// error; it is reported through AlignmentWarning and generation continues.
//
// The package also carries the run-scoped context helpers used to correlate
// log lines from a single generation run.
package failure

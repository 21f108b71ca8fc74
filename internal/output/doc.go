// Package output owns the on-disk artifacts of a run: the output directory,
// the advisory lock that keeps two invocations from writing the same video,
// and the TOML manifest written next to the finished stimulus.
package output

// Package preflight checks the filesystem before a run opens its sink: the
// output directory must be writable and hold at least the configured amount
// of free space. A failed check aborts generation so an encode is never
// started into a directory that cannot take it.
package preflight

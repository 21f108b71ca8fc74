// Package sink provides the frame consumers the stimulus assembler writes
// to: an ffmpeg subprocess fed rgb24 frames on stdin, and a numbered PNG
// sequence. Both are acquired through stimulus.Opener values so nothing is
// spawned or created until the run configuration has been validated.
package sink

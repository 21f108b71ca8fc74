// Package filter remaps output frame positions onto source time indices and
// applies optional per-pixel transforms to the sampled slice.
//
// Filters are a closed set resolved when the configuration is built: comb
// repeats a distinguished phase-0 frame every period frames so playback
// hardware (a photodiode, usually) can lock onto it, reverse plays the loop
// backwards, and invert flips luminance. Periodic filters pad the timeline
// up to a multiple of their period and report the padding as an
// AlignmentWarning.
package filter

// Package noise generates the multi-octave 3D noise volume behind the zebra
// stimulus.
//
// A Field sums levels octaves of gradient noise over (x, y, t). Octave k runs
// at xyscale*2^k cycles across the long side of the frame and 2^k temporal
// cycles per tscale frames, weighted by persistence^k so the summed power
// falls off roughly as 1/f. The time axis is periodic over the timeline, so
// the last frame flows back into the first.
//
// Slices are generated on demand; the volume is never materialized. Output
// depends only on the Params, including the seed.
package noise

// Package frame holds the pixel buffers that move through the stimulus
// pipeline and the discretizer that turns continuous noise into luminance.
//
// Float carries continuous values in [0,1] straight out of the noise field,
// Gray is the 8-bit single-channel result of discretization, and RGB is the
// packed rgb24 layout handed to sinks. All buffers are row-major with no
// padding between rows.
package frame

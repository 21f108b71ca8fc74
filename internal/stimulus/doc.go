// Package stimulus assembles the zebra noise video.
//
// Prepare turns a Config into a Pipeline: the frame plan (nominal and
// padded counts, calibration lengths, lattice size), the filter chain, and
// the noise field. Assembler.Generate then opens a Sink through an Opener
// and writes two seconds of black, two seconds of mid-grey, and one
// discretized noise frame per padded timeline position, strictly in order.
// The sink is closed exactly once whatever happens; configuration problems
// are reported before it is opened.
package stimulus

// Package main hosts the zebranoise CLI.
//
// The Cobra command tree resolves configuration once per invocation, applies
// command-line overrides on top of it, and hands the result to the internal
// packages: generate renders and encodes a stimulus, plan/preview/spectrum
// inspect a configuration without encoding, and inspect/deps look at the
// external tools and their output. Keep the commands thin; behaviour belongs
// in internal/.
package main

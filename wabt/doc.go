// Package wabt is the external toolchain backend.
//
// It spawns a wat2wasm-style binary once per job with a discrete argument
// vector (never through a shell), captures stderr, and reports the exit
// status. The tool performs all of the actual format conversion; this
// package only shapes and runs the invocation.
package wabt

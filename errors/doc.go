// Package errors provides structured error types for the watbuild driver.
//
// Errors are categorized by Phase (where in the run the error occurred) and
// Kind (error category). The Error type carries the file path involved, the
// tool invocation for invoke failures, and a bounded tail of captured
// stderr.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseInvoke, errors.KindToolFailed).
//		File("wat/a.wat").
//		Tool("./wat2wasm").
//		Stderr(stderrBuf.Bytes()).
//		Cause(runErr).
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.ToolFailed("./wat2wasm", "wat/a.wat", stderr, runErr)
//	err := errors.BadArtifact("wasm/a.wasm", decodeErr)
//
// All errors implement the standard error interface and support errors.Is/As.
package errors

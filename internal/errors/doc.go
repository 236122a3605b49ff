// Package errors provides structured, actionable error messages for Rivulet.
//
// Every well-known failure has a registered code (e.g. "E001") with a
// category, message, detail, and documentation URL. Errors carry
// optional suggestions and examples so CLI output can explain not just
// what went wrong but how to fix it.
//
// # Error categories
//
//   - usage: the caller violated the calling protocol (wrote during a
//     flush, passed an out-of-range window). These are defects in the
//     calling code, not recoverable conditions.
//   - render: a node tree could not be rendered.
//   - stream: a streaming sink was misused or is no longer usable.
//   - config: rivulet.json is missing or invalid.
//   - cli: command-line usage problems.
//
// # Usage
//
// Create an error from a registered code:
//
//	err := errors.New("E003").WithDetail("window [4:12) on a slice of length 8")
//
// Or create an ad-hoc error with a category:
//
//	err := errors.Newf(errors.CategoryConfig, "port %d out of range", port)
//
// Registered errors support errors.Is/As through Unwrap, and the CLI
// prints them with Format for a readable terminal presentation.
//
// Sink I/O failures are deliberately not wrapped in this package's
// types: the buffering core propagates them unchanged so callers can
// match on the transport's own sentinel errors.
package errors

// Package viewbuf provides chunked output buffering for streaming
// server-side rendering.
//
// During SSR, rendered markup is not written straight to the network.
// It accumulates in a Buffer as a sequence of lazily-converted Chunks,
// and is handed to the response stream in batches when the pipeline
// decides to flush. This keeps every write on the render path a cheap,
// synchronous append while the expensive work (integer formatting, HTML
// escaping, socket I/O) happens once, at drain time.
//
// # Core types
//
//   - Chunk: one buffered unit of pending output (string, rune, byte
//     window, or integer), converted to text only when drained.
//   - Buffer: an append-only chunk sequence that can drain itself to a
//     Sink in order and then be cleared.
//   - Writer: the text-sink front end used by the render loop. Writes
//     append chunks; Flush drains the buffer to the external sink and
//     forwards the flush.
//   - Sink: the contract of the external byte destination (an HTTP
//     response, a WebSocket message writer, an export target).
//   - Encoder: the escaping policy applied at drain time. HTMLEncoder
//     is the default.
//
// # Basic usage
//
//	w := viewbuf.NewWriter(viewbuf.WithSink(viewbuf.NewTerminalSink(rw)))
//	w.WriteMarkup("<h1>")
//	w.WriteString(userTitle) // escaped when drained
//	w.WriteMarkup("</h1>")
//	if err := w.Flush(ctx); err != nil {
//	    // response is broken; abandon it
//	}
//
// # Calling protocol
//
// A Writer is not a concurrency primitive. The render loop and the
// flush caller must be serialized externally; the writer only detects
// violations. A write issued while a flush is draining is a usage
// error, returned immediately rather than queued, because it indicates
// a broken pipeline, not a transient condition.
//
// # Failure
//
// Sink errors propagate unchanged. A failed drain is not rolled back
// and the buffer is not cleared: chunks already written stay written,
// the undrained remainder is preserved, and the response should be
// treated as failed.
package viewbuf

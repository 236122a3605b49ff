// Package wssink adapts a WebSocket connection into a viewbuf.Sink, so
// rendered HTML fragments can be streamed to a live browser connection
// one flush per message.
//
// Content written between flushes accumulates and leaves the server as
// a single text message when the writer flushes, keeping the message
// boundary aligned with the render section boundary.
package wssink

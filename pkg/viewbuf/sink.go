package viewbuf

import (
	"bytes"
	"context"
	"io"
	"net/http"
)

// Sink is the external byte destination beyond the buffering core: an
// HTTP response stream, a WebSocket message writer, an export target.
// A sink accepts arbitrary text and supports an explicit flush whose
// completion is signaled by its return. Flush may block on I/O; ctx
// carries cancellation and deadline policy, which belongs to the
// transport, not to the buffering core.
type Sink interface {
	io.Writer
	io.StringWriter

	// Flush pushes everything written so far toward the underlying
	// transport.
	Flush(ctx context.Context) error
}

// TerminalSink adapts an io.Writer, typically an http.ResponseWriter,
// into a Sink. If the writer also implements http.Flusher, Flush
// forwards to it so chunked responses reach the client incrementally;
// otherwise Flush only checks ctx.
type TerminalSink struct {
	w       io.Writer
	flusher http.Flusher
}

// NewTerminalSink wraps w. Flusher support is detected once, here.
func NewTerminalSink(w io.Writer) *TerminalSink {
	flusher, _ := w.(http.Flusher)
	return &TerminalSink{w: w, flusher: flusher}
}

// Write implements io.Writer.
func (t *TerminalSink) Write(p []byte) (int, error) {
	return t.w.Write(p)
}

// WriteString implements io.StringWriter.
func (t *TerminalSink) WriteString(s string) (int, error) {
	return io.WriteString(t.w, s)
}

// Flush implements Sink.
func (t *TerminalSink) Flush(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if t.flusher != nil {
		t.flusher.Flush()
	}
	return nil
}

// MemorySink accumulates everything written to it and counts flushes.
// It is useful for exercising streaming behavior without a real
// http.ResponseWriter.
type MemorySink struct {
	bytes.Buffer
	FlushCount int
}

// Flush implements Sink.
func (m *MemorySink) Flush(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.FlushCount++
	return nil
}

package viewbuf

import (
	"context"
	"sync/atomic"

	"github.com/rivulet-dev/rivulet/internal/errors"
)

// Writer is the synchronous front end of the view buffer. Every write
// is a plain append to the buffer and returns without touching I/O;
// Flush hands the accumulated content to the external sink and forwards
// the flush signal.
//
// A Writer is created per response (or per rendered subtree), lives for
// the duration of that response, and is discarded afterwards.
//
// The external sink comes in three variants, fixed at construction:
// none (pure in-memory buffering, Flush is a no-op and content
// accumulates until read back with String), terminal (a real byte
// destination, Flush drains to it), or nested (the sink is another
// Writer, Flush is a no-op so double buffering cannot commit output
// prematurely).
//
// Writer implements Sink, which is what makes the nested variant
// possible.
type Writer struct {
	buf *Buffer
	enc Encoder

	sink   Sink
	nested bool

	// draining detects protocol violations: one render loop and one
	// flush caller, externally serialized. It is a race detector, not
	// a lock; violations surface as usage errors instead of being
	// silently serialized, which would mask the caller's bug.
	draining atomic.Bool
}

// Option configures a Writer.
type Option func(*Writer)

// WithSink sets the external sink content is flushed to. Without a
// sink the writer buffers in memory indefinitely.
func WithSink(s Sink) Option {
	return func(w *Writer) {
		w.sink = s
	}
}

// WithEncoder sets the escaping policy applied when the buffer drains.
// The default is HTMLEncoder.
func WithEncoder(enc Encoder) Option {
	return func(w *Writer) {
		w.enc = enc
	}
}

// NewWriter creates a Writer. With no options it is in pure in-memory
// buffering mode.
func NewWriter(opts ...Option) *Writer {
	w := &Writer{
		buf: NewBuffer(),
		enc: DefaultEncoder,
	}
	for _, opt := range opts {
		opt(w)
	}
	if inner, ok := w.sink.(*Writer); ok && inner != nil {
		w.nested = true
	}
	return w
}

// guard rejects writes issued while a flush is draining. The calling
// protocol guarantees single-writer discipline at any instant, so a
// rejected write is a defect in the pipeline, not a condition to retry.
func (w *Writer) guard() error {
	if w.draining.Load() {
		return errors.New("E001")
	}
	return nil
}

// WriteString appends s to the buffer. Writing an empty string is a
// no-op and appends no chunk, keeping chunk count proportional to
// actual content.
func (w *Writer) WriteString(s string) (int, error) {
	if err := w.guard(); err != nil {
		return 0, err
	}
	if s == "" {
		return 0, nil
	}
	w.buf.Append(StringChunk(s))
	return len(s), nil
}

// Write implements io.Writer. The io.Writer contract forbids retaining
// p, so the bytes are copied; use WriteWindow to buffer a caller-owned
// slice without copying.
func (w *Writer) Write(p []byte) (int, error) {
	if err := w.guard(); err != nil {
		return 0, err
	}
	if len(p) == 0 {
		return 0, nil
	}
	b := make([]byte, len(p))
	copy(b, p)
	c, _ := BytesChunk(b, 0, len(b))
	w.buf.Append(c)
	return len(p), nil
}

// WriteWindow appends the window b[off : off+n] without copying. The
// caller must keep b valid and unmodified until the writer is flushed.
// An out-of-range window fails here, at the call site, as a usage
// error.
func (w *Writer) WriteWindow(b []byte, off, n int) error {
	if err := w.guard(); err != nil {
		return err
	}
	c, err := BytesChunk(b, off, n)
	if err != nil {
		return err
	}
	if n == 0 {
		return nil
	}
	w.buf.Append(c)
	return nil
}

// WriteRune appends a single character.
func (w *Writer) WriteRune(r rune) error {
	if err := w.guard(); err != nil {
		return err
	}
	w.buf.Append(RuneChunk(r))
	return nil
}

// WriteInt appends an integer. Formatting is deferred to drain time and
// writes straight into the sink without an intermediate string.
func (w *Writer) WriteInt(n int64) error {
	if err := w.guard(); err != nil {
		return err
	}
	w.buf.Append(IntChunk(n))
	return nil
}

// WriteMarkup appends s as already-escaped markup: the chunk bypasses
// the encoder when the buffer drains. Only trusted content belongs
// here.
func (w *Writer) WriteMarkup(s string) (int, error) {
	if err := w.guard(); err != nil {
		return 0, err
	}
	if s == "" {
		return 0, nil
	}
	c := StringChunk(s)
	c.raw = true
	w.buf.Append(c)
	return len(s), nil
}

// WriteMarkupWindow is WriteWindow with markup provenance: the window
// bypasses escaping on drain. The no-copy caveat of WriteWindow
// applies.
func (w *Writer) WriteMarkupWindow(b []byte, off, n int) error {
	if err := w.guard(); err != nil {
		return err
	}
	c, err := BytesChunk(b, off, n)
	if err != nil {
		return err
	}
	if n == 0 {
		return nil
	}
	c.raw = true
	w.buf.Append(c)
	return nil
}

// WriteLine appends s followed by a newline.
func (w *Writer) WriteLine(s string) error {
	if err := w.guard(); err != nil {
		return err
	}
	if s != "" {
		w.buf.Append(StringChunk(s))
	}
	w.buf.Append(RuneChunk('\n'))
	return nil
}

// Flush drains the buffer to the external sink, clears it, and forwards
// the flush signal. It is a no-op when no sink is configured and when
// the sink is another Writer.
//
// On a drain or sink-flush failure the error propagates unchanged and
// the buffer is left uncleared so undelivered content is not silently
// dropped; per the drain contract its remaining state is undefined and
// the response should be treated as failed. At most one flush may be in
// flight per writer; a second concurrent flush is a usage error.
func (w *Writer) Flush(ctx context.Context) error {
	if w.sink == nil || w.nested {
		return nil
	}
	if !w.draining.CompareAndSwap(false, true) {
		return errors.New("E002")
	}
	defer w.draining.Store(false)

	if err := w.buf.DrainTo(ctx, w.sink, w.enc); err != nil {
		return err
	}
	w.buf.Clear()
	return w.sink.Flush(ctx)
}

// MoveTo transfers the buffered chunks to dst and clears this writer's
// buffer. It implements MarkupMover, making a Writer a container of
// renderable markup for another writer's WriteValue.
func (w *Writer) MoveTo(dst *Buffer) error {
	if err := w.guard(); err != nil {
		return err
	}
	return w.buf.MoveTo(dst)
}

// Len returns the number of buffered chunks.
func (w *Writer) Len() int {
	return w.buf.Len()
}

// Size returns the decoded length of the buffered content in bytes.
func (w *Writer) Size() int {
	return w.buf.Size()
}

// String returns the decoded buffered content without applying the
// encoding policy. It is the full-content read for in-memory mode.
func (w *Writer) String() string {
	return w.buf.String()
}

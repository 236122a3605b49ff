package viewbuf

import (
	"context"
	"sync"
	"testing"

	rerrors "github.com/rivulet-dev/rivulet/internal/errors"
)

func errCode(t *testing.T, err error) string {
	t.Helper()
	re, ok := err.(*rerrors.RivuletError)
	if !ok {
		t.Fatalf("expected *RivuletError, got %T: %v", err, err)
	}
	return re.Code
}

func TestWriterEndToEnd(t *testing.T) {
	sink := &MemorySink{}
	w := NewWriter(WithSink(sink))

	if _, err := w.WriteString("a"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := w.WriteInt(7); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := w.WriteRune('b'); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := w.Flush(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := sink.String(); got != "a7b" {
		t.Errorf("sink = %q, want %q", got, "a7b")
	}
	if w.Len() != 0 {
		t.Errorf("buffer should be empty after flush, got %d chunks", w.Len())
	}
	if sink.FlushCount != 1 {
		t.Errorf("FlushCount = %d, want 1", sink.FlushCount)
	}

	if _, err := w.WriteString("c"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := w.String(); got != "c" {
		t.Errorf("read-back = %q, want %q", got, "c")
	}
}

func TestWriterEmptyWritesAppendNoChunk(t *testing.T) {
	w := NewWriter()

	if _, err := w.WriteString(""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := w.Write(nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := w.WriteWindow([]byte("abc"), 1, 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := w.WriteMarkup(""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := w.WriteValue(nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if w.Len() != 0 {
		t.Errorf("chunk count = %d, want 0 for empty writes", w.Len())
	}
}

func TestWriterNoSinkFlushIsNoOp(t *testing.T) {
	w := NewWriter()

	if _, err := w.WriteString("kept"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := w.Flush(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Content persists: in-memory mode accumulates until read back.
	if got := w.String(); got != "kept" {
		t.Errorf("content = %q, want preserved after no-op flush", got)
	}
	if w.Len() == 0 {
		t.Errorf("buffer should not be cleared by a no-op flush")
	}
}

func TestWriterNestedFlushIsNoOp(t *testing.T) {
	sink := &MemorySink{}
	outer := NewWriter(WithSink(sink))
	inner := NewWriter(WithSink(outer))

	if _, err := inner.WriteString("nested"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := inner.Flush(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Nothing committed: flushing through double buffering would
	// publish content before the outer writer decides to.
	if sink.Len() != 0 {
		t.Errorf("terminal sink received %q, want nothing", sink.String())
	}
	if sink.FlushCount != 0 {
		t.Errorf("FlushCount = %d, want 0", sink.FlushCount)
	}
	if got := inner.String(); got != "nested" {
		t.Errorf("inner content = %q, want preserved", got)
	}
}

func TestWriterMoveToParent(t *testing.T) {
	sink := &MemorySink{}
	outer := NewWriter(WithSink(sink))
	inner := NewWriter(WithSink(outer))

	if _, err := inner.WriteString("partial "); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := inner.WriteMarkup("<hr>"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := outer.WriteValue(inner); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inner.Len() != 0 {
		t.Errorf("inner should be drained into outer, got %d chunks", inner.Len())
	}

	if err := outer.Flush(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := sink.String(); got != "partial <hr>" {
		t.Errorf("sink = %q", got)
	}
}

func TestWriterMarkupBypassesEncoding(t *testing.T) {
	sink := &MemorySink{}
	w := NewWriter(WithSink(sink))

	if _, err := w.WriteMarkup("<em>"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := w.WriteString("5 < 6"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := w.WriteMarkup("</em>"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := w.Flush(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := sink.String(); got != "<em>5 &lt; 6</em>" {
		t.Errorf("sink = %q", got)
	}
}

func TestWriterWindowBoundsFailAtWriteCall(t *testing.T) {
	w := NewWriter()
	err := w.WriteWindow([]byte("abc"), 2, 5)
	if err == nil {
		t.Fatalf("expected out-of-range window to fail")
	}
	if got := errCode(t, err); got != "E003" {
		t.Errorf("error code = %s, want E003", got)
	}
	if w.Len() != 0 {
		t.Errorf("failed write should append nothing")
	}
}

func TestWriterIOWriterCopies(t *testing.T) {
	sink := &MemorySink{}
	w := NewWriter(WithSink(sink))

	p := []byte("stable")
	if _, err := w.Write(p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Mutating the caller's slice must not affect buffered content.
	copy(p, "XXXXXX")

	if err := w.Flush(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := sink.String(); got != "stable" {
		t.Errorf("sink = %q, want the copied bytes", got)
	}
}

func TestWriterWriteLine(t *testing.T) {
	w := NewWriter()

	if err := w.WriteLine("hello"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := w.WriteLine(""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := w.String(); got != "hello\n\n" {
		t.Errorf("content = %q, want %q", got, "hello\n\n")
	}
}

func TestWriterCustomEncoder(t *testing.T) {
	sink := &MemorySink{}
	w := NewWriter(WithSink(sink), WithEncoder(PassthroughEncoder{}))

	if _, err := w.WriteString("<plain>"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := w.Flush(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := sink.String(); got != "<plain>" {
		t.Errorf("sink = %q, want passthrough", got)
	}
}

// blockingSink parks the first write until released, so a test can
// observe a writer mid-drain.
type blockingSink struct {
	MemorySink
	entered   chan struct{}
	release   chan struct{}
	enterOnce sync.Once
}

func newBlockingSink() *blockingSink {
	return &blockingSink{
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
}

func (s *blockingSink) Write(p []byte) (int, error) {
	s.enterOnce.Do(func() {
		close(s.entered)
		<-s.release
	})
	return s.MemorySink.Write(p)
}

func (s *blockingSink) WriteString(str string) (int, error) {
	return s.Write([]byte(str))
}

func TestWriterRejectsWritesDuringDrain(t *testing.T) {
	sink := newBlockingSink()
	w := NewWriter(WithSink(sink))

	if _, err := w.WriteString("content"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	flushErr := make(chan error, 1)
	go func() {
		flushErr <- w.Flush(context.Background())
	}()
	<-sink.entered

	// The drain is parked inside the sink: the writer is Draining and
	// must reject writes as usage errors, not queue them.
	_, err := w.WriteString("too late")
	if err == nil {
		t.Fatalf("expected a write during drain to fail")
	}
	if got := errCode(t, err); got != "E001" {
		t.Errorf("error code = %s, want E001", got)
	}

	// A second flush is equally a protocol violation.
	if err := w.Flush(context.Background()); err == nil {
		t.Errorf("expected a concurrent flush to fail")
	} else if got := errCode(t, err); got != "E002" {
		t.Errorf("error code = %s, want E002", got)
	}

	close(sink.release)
	if err := <-flushErr; err != nil {
		t.Fatalf("flush failed: %v", err)
	}

	// Back to Idle: writes are accepted again.
	if _, err := w.WriteString("after"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := sink.String(); got != "content" {
		t.Errorf("sink = %q, rejected write must not leak into output", got)
	}
}

func TestWriterFlushErrorLeavesBufferUncleared(t *testing.T) {
	sink := &failingSink{}
	w := NewWriter(WithSink(sink))

	if _, err := w.WriteString("undelivered"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := w.Flush(context.Background()); err == nil {
		t.Fatalf("expected flush to surface the sink error")
	}
	if w.Len() == 0 {
		t.Errorf("failed flush must not clear the buffer")
	}

	// The writer returns to Idle so the caller can observe and abort.
	if _, err := w.WriteString("x"); err != nil {
		t.Errorf("writer should accept writes after a failed flush: %v", err)
	}
}

// failingSink errors on every write.
type failingSink struct{}

func (failingSink) Write(p []byte) (int, error)       { return 0, errWriteRefused }
func (failingSink) WriteString(s string) (int, error) { return 0, errWriteRefused }
func (failingSink) Flush(ctx context.Context) error   { return errWriteRefused }

var errWriteRefused = &refusedError{}

type refusedError struct{}

func (*refusedError) Error() string { return "write refused" }

package wssink

import (
	"bytes"
	"context"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rivulet-dev/rivulet/internal/errors"
)

// DefaultWriteTimeout bounds a message write when the flush context
// carries no deadline.
const DefaultWriteTimeout = 10 * time.Second

// Sink streams buffered content over a WebSocket connection. It
// implements viewbuf.Sink: bytes accumulate until Flush, and each
// Flush leaves the server as one text message.
//
// A Sink is tied to one connection and must not be shared across
// goroutines; the view buffer calling protocol already serializes
// writes and flushes.
type Sink struct {
	conn *websocket.Conn
	buf  bytes.Buffer

	writeTimeout time.Duration

	mu     sync.Mutex
	closed bool
}

// Option configures a Sink.
type Option func(*Sink)

// WithWriteTimeout sets the per-message write timeout used when the
// flush context has no deadline.
func WithWriteTimeout(d time.Duration) Option {
	return func(s *Sink) {
		s.writeTimeout = d
	}
}

// New wraps an established WebSocket connection.
func New(conn *websocket.Conn, opts ...Option) *Sink {
	s := &Sink{
		conn:         conn,
		writeTimeout: DefaultWriteTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Write implements io.Writer. Bytes accumulate until the next Flush.
func (s *Sink) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return 0, errors.New("E040")
	}
	return s.buf.Write(p)
}

// WriteString implements io.StringWriter.
func (s *Sink) WriteString(str string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return 0, errors.New("E040")
	}
	return s.buf.WriteString(str)
}

// Flush sends the accumulated content as a single text message. An
// empty flush sends nothing. The ctx deadline, when set, overrides the
// configured write timeout.
func (s *Sink) Flush(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return errors.New("E040")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.buf.Len() == 0 {
		return nil
	}

	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Now().Add(s.writeTimeout)
	}
	s.conn.SetWriteDeadline(deadline)

	if err := s.conn.WriteMessage(websocket.TextMessage, s.buf.Bytes()); err != nil {
		// The message may be partially written; the connection is no
		// longer usable for framed output.
		s.closed = true
		return err
	}
	s.buf.Reset()
	return nil
}

// Buffered returns the number of bytes accumulated since the last
// flush.
func (s *Sink) Buffered() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.Len()
}

// Close sends a close frame and closes the connection. Buffered but
// unflushed content is dropped.
func (s *Sink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true

	s.conn.SetWriteDeadline(time.Now().Add(s.writeTimeout))
	s.conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	return s.conn.Close()
}

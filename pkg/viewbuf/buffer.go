package viewbuf

import (
	"context"
	"io"
	"strings"
)

// Buffer is an append-only sequence of chunks in render order. It owns
// its chunk sequence exclusively and may grow without bound between
// flushes: buffered (non-streaming) render modes rely on unbounded
// accumulation, so no growth limit is imposed here.
type Buffer struct {
	chunks []Chunk
}

// NewBuffer returns an empty buffer.
func NewBuffer() *Buffer {
	return &Buffer{}
}

// Append adds c to the end of the buffer. It performs no validation of
// the chunk's content and never blocks.
func (b *Buffer) Append(c Chunk) {
	b.chunks = append(b.chunks, c)
}

// Len returns the number of buffered chunks.
func (b *Buffer) Len() int {
	return len(b.chunks)
}

// Size returns the decoded length of the buffered content in bytes,
// before any encoding policy is applied.
func (b *Buffer) Size() int {
	total := 0
	for i := range b.chunks {
		total += b.chunks[i].len()
	}
	return total
}

// DrainTo writes every buffered chunk, in append order, to sink. enc is
// applied to each chunk except those appended as raw markup; a nil enc
// means DefaultEncoder. ctx is observed between chunk writes, never in
// the middle of one.
//
// Sink errors are returned unchanged. A failed drain is not rolled
// back: chunks already written stay written, and the buffer must not be
// cleared afterwards or the undelivered remainder is silently dropped.
// After a failed drain the buffer's contents are undefined and the
// response should be treated as failed.
//
// DrainTo does not clear the buffer; pairing drain with Clear is the
// caller's job so a failed drain can leave the evidence in place.
func (b *Buffer) DrainTo(ctx context.Context, sink io.Writer, enc Encoder) error {
	if enc == nil {
		enc = DefaultEncoder
	}
	for i := range b.chunks {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := b.chunks[i].writeTo(sink, enc); err != nil {
			return err
		}
	}
	return nil
}

// Clear discards all buffered chunks. Call it only after a successful
// drain; clearing after a failed or partial drain drops undelivered
// output.
func (b *Buffer) Clear() {
	b.chunks = nil
}

// MoveTo transfers this buffer's chunks to the end of dst and clears
// this buffer. It implements MarkupMover, so a buffer can be handed to
// another Writer via WriteValue without re-encoding or copying text.
func (b *Buffer) MoveTo(dst *Buffer) error {
	if dst == b {
		return nil
	}
	if len(b.chunks) == 0 {
		return nil
	}
	dst.chunks = append(dst.chunks, b.chunks...)
	b.chunks = nil
	return nil
}

// String returns the decoded text of all buffered chunks, in order,
// without applying any encoding policy. It is the full-content read for
// in-memory (no sink) mode and does not modify the buffer.
func (b *Buffer) String() string {
	var sb strings.Builder
	sb.Grow(b.Size())
	for i := range b.chunks {
		// strings.Builder writes cannot fail.
		_ = b.chunks[i].writeTo(&sb, PassthroughEncoder{})
	}
	return sb.String()
}

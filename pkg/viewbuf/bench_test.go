package viewbuf

import (
	"context"
	"io"
	"testing"
)

func BenchmarkWriteString(b *testing.B) {
	w := NewWriter()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		w.WriteString("some rendered fragment")
		if w.Len() > 4096 {
			w.buf.Clear()
		}
	}
}

func BenchmarkWriteInt(b *testing.B) {
	w := NewWriter()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		w.WriteInt(int64(i))
		if w.Len() > 4096 {
			w.buf.Clear()
		}
	}
}

func BenchmarkFlushSmall(b *testing.B) {
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		w := NewWriter(WithSink(discardSink{}))
		w.WriteMarkup("<li>")
		w.WriteString("item ")
		w.WriteInt(int64(i))
		w.WriteMarkup("</li>")
		w.Flush(ctx)
	}
}

func BenchmarkDrainLargeBuffer(b *testing.B) {
	ctx := context.Background()
	buf := NewBuffer()
	for i := 0; i < 1000; i++ {
		m := StringChunk("<li>")
		m.raw = true
		buf.Append(m)
		buf.Append(StringChunk("item text & more"))
		buf.Append(IntChunk(int64(i)))
		c := StringChunk("</li>")
		c.raw = true
		buf.Append(c)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		buf.DrainTo(ctx, io.Discard, HTMLEncoder{})
	}
}

func BenchmarkHTMLEncodeClean(b *testing.B) {
	enc := HTMLEncoder{}
	s := "a long run of perfectly ordinary text with nothing to escape at all"

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		enc.EncodeString(io.Discard, s)
	}
}

func BenchmarkHTMLEncodeDense(b *testing.B) {
	enc := HTMLEncoder{}
	s := `<a href="x">R&D's <em>"results"</em></a>`

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		enc.EncodeString(io.Discard, s)
	}
}

// discardSink drops everything, for benchmarking the buffering path
// without sink cost.
type discardSink struct{}

func (discardSink) Write(p []byte) (int, error)       { return len(p), nil }
func (discardSink) WriteString(s string) (int, error) { return len(s), nil }
func (discardSink) Flush(ctx context.Context) error   { return nil }

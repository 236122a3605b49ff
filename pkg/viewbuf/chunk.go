package viewbuf

import (
	"io"
	"strconv"
	"unicode/utf8"

	"github.com/rivulet-dev/rivulet/internal/errors"
)

// chunkKind discriminates the source form held by a Chunk.
type chunkKind uint8

const (
	chunkString chunkKind = iota // literal string
	chunkRune                    // single character
	chunkBytes                   // window into a caller-owned byte slice
	chunkInt                     // integer, formatted at write time
)

// Chunk is one buffered unit of pending output. It holds exactly one of
// four source forms and defers conversion and escaping until it is
// drained, so the render loop never pays for work the flush can do in
// batch.
//
// Chunks are immutable once constructed. Whether a chunk is escaped on
// drain is a matter of provenance, not type: chunks appended through a
// Writer's markup methods carry a raw flag and bypass the encoder.
type Chunk struct {
	kind chunkKind
	raw  bool

	str   string
	char  rune
	bytes []byte
	num   int64
}

// StringChunk returns a chunk holding a literal string.
func StringChunk(s string) Chunk {
	return Chunk{kind: chunkString, str: s}
}

// RuneChunk returns a chunk holding a single character.
func RuneChunk(r rune) Chunk {
	return Chunk{kind: chunkRune, char: r}
}

// IntChunk returns a chunk holding an integer. The integer is formatted
// at drain time, directly into the sink, without an intermediate string.
func IntChunk(n int64) Chunk {
	return Chunk{kind: chunkInt, num: n}
}

// BytesChunk returns a chunk windowing b[off : off+n]. The chunk does
// not copy: the caller must keep b valid and unmodified until the chunk
// has been drained.
//
// The window is checked against len(b) here; an out-of-range window is
// a usage error and fails at construction rather than at drain time.
func BytesChunk(b []byte, off, n int) (Chunk, error) {
	if off < 0 || n < 0 || off > len(b)-n {
		return Chunk{}, errors.New("E003").
			WithDetail(windowDetail(len(b), off, n))
	}
	return Chunk{kind: chunkBytes, bytes: b[off : off+n]}, nil
}

func windowDetail(size, off, n int) string {
	return "requested window [" + strconv.Itoa(off) + ":" +
		strconv.Itoa(off+n) + ") on a slice of length " + strconv.Itoa(size)
}

// len returns the decoded length of the chunk in bytes.
func (c *Chunk) len() int {
	switch c.kind {
	case chunkString:
		return len(c.str)
	case chunkRune:
		return utf8.RuneLen(c.char)
	case chunkBytes:
		return len(c.bytes)
	case chunkInt:
		var tmp [20]byte
		return len(strconv.AppendInt(tmp[:0], c.num, 10))
	}
	return 0
}

// writeTo converts the held value to text and writes it to sink,
// applying enc unless the chunk was appended as raw markup.
func (c *Chunk) writeTo(sink io.Writer, enc Encoder) error {
	switch c.kind {
	case chunkString:
		if c.raw {
			_, err := io.WriteString(sink, c.str)
			return err
		}
		return enc.EncodeString(sink, c.str)

	case chunkRune:
		var tmp [utf8.UTFMax]byte
		n := utf8.EncodeRune(tmp[:], c.char)
		if c.raw {
			_, err := sink.Write(tmp[:n])
			return err
		}
		return enc.EncodeBytes(sink, tmp[:n])

	case chunkBytes:
		if c.raw {
			_, err := sink.Write(c.bytes)
			return err
		}
		return enc.EncodeBytes(sink, c.bytes)

	case chunkInt:
		var tmp [20]byte
		b := strconv.AppendInt(tmp[:0], c.num, 10)
		if c.raw {
			_, err := sink.Write(b)
			return err
		}
		return enc.EncodeBytes(sink, b)
	}
	return nil
}

package viewbuf

import (
	"fmt"
	"strconv"
)

// Markuper is implemented by values that know how to render themselves
// as markup. WriteValue gives it the highest priority in the capability
// probe.
type Markuper interface {
	RenderMarkup(w *Writer) error
}

// MarkupMover is implemented by containers of already-rendered markup
// that can move their content into a target buffer without re-encoding
// it. Buffer and Writer both implement it.
type MarkupMover interface {
	MoveTo(dst *Buffer) error
}

// WriteValue appends an arbitrary value. The value is probed for
// capabilities in priority order: a Markuper renders itself into this
// writer; a MarkupMover moves its buffered markup into this writer's
// buffer; everything else falls back to its textual representation and
// is escaped on drain. The fallback always succeeds: every value is
// representable as text, so an unexpected shape is never an error.
//
// A nil value writes nothing.
func (w *Writer) WriteValue(v any) error {
	if err := w.guard(); err != nil {
		return err
	}

	switch val := v.(type) {
	case nil:
		return nil
	case Markuper:
		return val.RenderMarkup(w)
	case MarkupMover:
		return val.MoveTo(w.buf)
	case string:
		_, err := w.WriteString(val)
		return err
	case rune:
		return w.WriteRune(val)
	case int:
		return w.WriteInt(int64(val))
	case int64:
		return w.WriteInt(val)
	case bool:
		_, err := w.WriteString(strconv.FormatBool(val))
		return err
	case float64:
		_, err := w.WriteString(strconv.FormatFloat(val, 'g', -1, 64))
		return err
	default:
		_, err := w.WriteString(fmt.Sprint(val))
		return err
	}
}

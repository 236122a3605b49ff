package render

import (
	"context"
	"net/http"

	"github.com/rivulet-dev/rivulet/internal/errors"
	"github.com/rivulet-dev/rivulet/pkg/viewbuf"
)

// StreamingRenderer renders pages through a view buffer that drains to
// an HTTP response in sections. Content accumulates in the buffer while
// a section renders and reaches the client only at the section flush,
// so an error mid-section never leaks a half-rendered fragment.
type StreamingRenderer struct {
	*Renderer
	w *viewbuf.Writer
}

// NewStreamingRenderer creates a streaming renderer that writes to an
// http.ResponseWriter. If the writer implements http.Flusher, each
// section flush reaches the client immediately for faster TTFB.
func NewStreamingRenderer(w http.ResponseWriter, config RendererConfig) *StreamingRenderer {
	return &StreamingRenderer{
		Renderer: NewRenderer(config),
		w:        viewbuf.NewWriter(viewbuf.WithSink(viewbuf.NewTerminalSink(w))),
	}
}

// Writer exposes the underlying view buffer writer, for handlers that
// want to append extra content between sections.
func (s *StreamingRenderer) Writer() *viewbuf.Writer {
	return s.w
}

// RenderPage renders a complete HTML document in three flushed
// sections: the head, the body content, and the closing tags. The head
// flush lands before body rendering starts, for faster first paint.
func (s *StreamingRenderer) RenderPage(ctx context.Context, page PageData) error {
	if page.Body == nil {
		return errors.New("E021")
	}

	lang := page.Lang
	if lang == "" {
		lang = "en"
	}

	if err := markup(s.w, "<!DOCTYPE html>\n"); err != nil {
		return err
	}
	if err := markup(s.w, `<html lang="`+escapeAttr(lang)+`">`+"\n"); err != nil {
		return err
	}
	if err := s.renderHead(s.w, page); err != nil {
		return err
	}

	// Head section
	if err := s.w.Flush(ctx); err != nil {
		return err
	}

	if err := markup(s.w, "<body>\n"); err != nil {
		return err
	}
	if err := s.Render(s.w, page.Body); err != nil {
		return err
	}

	// Body section
	if err := s.w.Flush(ctx); err != nil {
		return err
	}

	if err := markup(s.w, "</body>\n</html>\n"); err != nil {
		return err
	}

	return s.w.Flush(ctx)
}

// FlushableWriter wraps an io.Writer with flush counting.
// This is useful for testing streaming behavior without using http.ResponseWriter.
type FlushableWriter struct {
	http.ResponseWriter
	FlushCount int
}

// Flush implements http.Flusher.
func (w *FlushableWriter) Flush() {
	w.FlushCount++
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

package render

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rivulet-dev/rivulet/internal/errors"
	"github.com/rivulet-dev/rivulet/pkg/vdom"
)

func TestStreamingRendererRenderPage(t *testing.T) {
	w := httptest.NewRecorder()

	sr := NewStreamingRenderer(w, RendererConfig{})

	page := PageData{
		Body:  vdom.Div(vdom.Text("Streamed Content")),
		Title: "Streaming Test",
	}

	err := sr.RenderPage(context.Background(), page)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	html := w.Body.String()

	if !strings.HasPrefix(html, "<!DOCTYPE html>") {
		t.Errorf("should start with DOCTYPE")
	}
	if !strings.Contains(html, "<title>Streaming Test</title>") {
		t.Errorf("should contain title")
	}
	if !strings.Contains(html, "<div>Streamed Content</div>") {
		t.Errorf("should contain body content")
	}
}

func TestStreamingRendererFlushes(t *testing.T) {
	fw := &FlushableWriter{ResponseWriter: httptest.NewRecorder()}

	sr := NewStreamingRenderer(fw, RendererConfig{})

	page := PageData{
		Body:  vdom.Div(vdom.Text("Content")),
		Title: "Flush Test",
	}

	err := sr.RenderPage(context.Background(), page)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Should have flushed exactly 3 times:
	// 1. After head
	// 2. After body content
	// 3. At the end
	if fw.FlushCount != 3 {
		t.Errorf("expected 3 flushes, got %d", fw.FlushCount)
	}
}

func TestStreamingRendererNilBody(t *testing.T) {
	w := httptest.NewRecorder()
	sr := NewStreamingRenderer(w, RendererConfig{})

	err := sr.RenderPage(context.Background(), PageData{Title: "Empty"})
	if err == nil {
		t.Fatal("expected error for nil body")
	}
	rerr, ok := err.(*errors.RivuletError)
	if !ok || rerr.Code != "E021" {
		t.Errorf("expected E021, got %v", err)
	}

	// Nothing may reach the client from a page that never rendered.
	if w.Body.Len() != 0 {
		t.Errorf("no output expected, got %q", w.Body.String())
	}
}

func TestStreamingRendererCancelledContext(t *testing.T) {
	w := httptest.NewRecorder()
	sr := NewStreamingRenderer(w, RendererConfig{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := sr.RenderPage(ctx, PageData{
		Body:  vdom.Div(vdom.Text("never delivered")),
		Title: "Cancelled",
	})
	if err == nil {
		t.Fatal("expected error from cancelled context")
	}
	if err != context.Canceled {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestStreamingRendererHeadBeforeBody(t *testing.T) {
	// The head section flush lands before the body renders. Capture the
	// output length at the first flush to prove it.
	rec := httptest.NewRecorder()
	fw := &FlushableWriter{ResponseWriter: rec}
	sr := NewStreamingRenderer(fw, RendererConfig{})

	var firstFlush string
	probe := vdom.Func(func() *vdom.VNode {
		if firstFlush == "" {
			firstFlush = rec.Body.String()
		}
		return vdom.P(vdom.Text("body"))
	})

	page := PageData{
		Body:  vdom.Div(probe),
		Title: "TTFB",
	}

	if err := sr.RenderPage(context.Background(), page); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(firstFlush, "</head>") {
		t.Errorf("head should be delivered before body renders, saw %q", firstFlush)
	}
	if strings.Contains(firstFlush, "<body>") {
		t.Errorf("body should not be delivered with the head section, saw %q", firstFlush)
	}
}

func TestStreamingRendererLargeContent(t *testing.T) {
	w := httptest.NewRecorder()

	sr := NewStreamingRenderer(w, RendererConfig{})

	var items []*vdom.VNode
	for i := 0; i < 100; i++ {
		items = append(items, vdom.Li(vdom.Textf("Item %d", i)))
	}

	page := PageData{
		Body:  vdom.Ul(items),
		Title: "Large Content",
	}

	err := sr.RenderPage(context.Background(), page)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	html := w.Body.String()

	if !strings.Contains(html, "<li>Item 0</li>") {
		t.Errorf("should contain first item")
	}
	if !strings.Contains(html, "<li>Item 99</li>") {
		t.Errorf("should contain last item")
	}
}

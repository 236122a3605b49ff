package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"go.opentelemetry.io/otel/attribute"
)

// The global tracer provider defaults to a no-op implementation, so
// these tests exercise the middleware path without an SDK.

func TestOpenTelemetryPassesThrough(t *testing.T) {
	mw := OpenTelemetry()

	called := false
	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.Write([]byte("ok"))
	}))

	req := httptest.NewRequest("GET", "/traced", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if !called {
		t.Fatal("handler should be called")
	}
	if rec.Body.String() != "ok" {
		t.Errorf("body = %q", rec.Body.String())
	}
}

func TestOpenTelemetryFilter(t *testing.T) {
	mw := OpenTelemetry(WithRequestFilter(func(r *http.Request) bool {
		return r.URL.Path != "/skip"
	}))

	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	for _, path := range []string{"/skip", "/trace"} {
		req := httptest.NewRequest("GET", path, nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusNoContent {
			t.Errorf("path %s: status = %d, want 204", path, rec.Code)
		}
	}
}

func TestOpenTelemetryAttributeExtractor(t *testing.T) {
	extracted := false
	mw := OpenTelemetry(
		WithTracerName("test"),
		WithAttributeExtractor(func(r *http.Request) []attribute.KeyValue {
			extracted = true
			return []attribute.KeyValue{attribute.String("test.path", r.URL.Path)}
		}),
	)

	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	req := httptest.NewRequest("GET", "/x", nil)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if !extracted {
		t.Error("attribute extractor should be called")
	}
}

func TestStatusResponseWriterCapturesCode(t *testing.T) {
	rec := httptest.NewRecorder()
	sw := &statusResponseWriter{ResponseWriter: rec, status: http.StatusOK}

	sw.WriteHeader(http.StatusBadGateway)

	if sw.status != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", sw.status)
	}
	if rec.Code != http.StatusBadGateway {
		t.Errorf("underlying code = %d, want 502", rec.Code)
	}
}

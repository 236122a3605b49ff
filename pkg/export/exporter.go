package export

import (
	"context"
	"log/slog"
	"strings"

	"github.com/rivulet-dev/rivulet/pkg/render"
	"github.com/rivulet-dev/rivulet/pkg/viewbuf"
)

// Exporter renders pages and uploads each one as a static object.
type Exporter struct {
	client   ObjectPutter
	bucket   string
	prefix   string
	renderer *render.Renderer
	keyFunc  func(path string) string
	logger   *slog.Logger
}

// ExporterOption configures an Exporter.
type ExporterOption func(*Exporter)

// WithPrefix sets a key prefix for every exported object.
func WithPrefix(prefix string) ExporterOption {
	return func(e *Exporter) {
		e.prefix = prefix
	}
}

// WithRendererConfig replaces the default renderer configuration.
func WithRendererConfig(config render.RendererConfig) ExporterOption {
	return func(e *Exporter) {
		e.renderer = render.NewRenderer(config)
	}
}

// WithKeyFunc replaces how a route path maps to an object key.
func WithKeyFunc(fn func(path string) string) ExporterOption {
	return func(e *Exporter) {
		e.keyFunc = fn
	}
}

// NewExporter creates an exporter that writes into the given bucket.
func NewExporter(client ObjectPutter, bucket string, opts ...ExporterOption) *Exporter {
	e := &Exporter{
		client:   client,
		bucket:   bucket,
		renderer: render.NewRenderer(render.RendererConfig{}),
		keyFunc:  PathKey,
		logger:   slog.Default().With("component", "export"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// PathKey maps a route path to an object key. "/" becomes index.html
// and every other path gets an index.html under its own directory, so
// the bucket can be served with standard index-document routing.
func PathKey(path string) string {
	path = strings.Trim(path, "/")
	if path == "" {
		return "index.html"
	}
	return path + "/index.html"
}

// ExportPage renders a page and uploads it under the key derived from
// the route path. Nothing is uploaded if rendering fails.
func (e *Exporter) ExportPage(ctx context.Context, path string, page render.PageData) error {
	key := e.prefix + e.keyFunc(path)
	sink := NewS3Sink(e.client, e.bucket, key)

	w := viewbuf.NewWriter(viewbuf.WithSink(sink))
	if err := e.renderer.RenderPage(w, page); err != nil {
		return err
	}
	if err := w.Flush(ctx); err != nil {
		return err
	}
	if err := sink.Commit(ctx); err != nil {
		return err
	}

	e.logger.Info("exported page", "path", path, "key", key, "bucket", e.bucket)
	return nil
}

// ExportPages renders and uploads a set of pages keyed by route path.
// It stops at the first failure.
func (e *Exporter) ExportPages(ctx context.Context, pages map[string]render.PageData) error {
	for path, page := range pages {
		if err := e.ExportPage(ctx, path, page); err != nil {
			return err
		}
	}
	return nil
}

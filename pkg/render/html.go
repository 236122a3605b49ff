package render

import (
	"github.com/rivulet-dev/rivulet/pkg/vdom"
	"github.com/rivulet-dev/rivulet/pkg/viewbuf"
)

// htmlValue adapts a VNode to viewbuf.Markuper so node trees can be
// passed straight to Writer.WriteValue.
type htmlValue struct {
	node *vdom.VNode
	r    *Renderer
}

// RenderMarkup implements viewbuf.Markuper.
func (h htmlValue) RenderMarkup(w *viewbuf.Writer) error {
	return h.r.Render(w, h.node)
}

// HTML wraps a VNode for use with viewbuf.Writer.WriteValue.
// The node renders with default configuration when the value is written.
func HTML(node *vdom.VNode) viewbuf.Markuper {
	return htmlValue{node: node, r: NewRenderer(RendererConfig{})}
}

// Markup wraps a VNode for WriteValue using this renderer's configuration.
func (r *Renderer) Markup(node *vdom.VNode) viewbuf.Markuper {
	return htmlValue{node: node, r: r}
}

// Package render converts vdom trees into HTML through a viewbuf.Writer.
//
// The renderer never escapes text itself. Element tags and attribute
// markup are appended with markup provenance, text content is appended
// as plain strings, and the writer's encoder applies the escaping
// policy when the buffer drains to its sink. Attribute values are the
// one exception: they need a wider escape set than text content, so
// they are escaped here and appended as markup.
//
// # Basic Usage
//
// To render a VNode tree to a string:
//
//	renderer := render.NewRenderer(render.RendererConfig{})
//	html, err := renderer.RenderToString(node)
//
// To render into an existing writer:
//
//	w := viewbuf.NewWriter(viewbuf.WithSink(sink))
//	err := renderer.Render(w, node)
//
// # Full Page Rendering
//
// To render a complete HTML document:
//
//	page := render.PageData{
//	    Body:  bodyNode,
//	    Title: "My Page",
//	}
//	err := renderer.RenderPage(w, page)
//
// # Streaming
//
// For large pages, use StreamingRenderer to flush content incrementally:
//
//	sr := render.NewStreamingRenderer(w, config)
//	err := sr.RenderPage(ctx, page)
//
// # Security
//
// All text content is escaped when the buffer drains. Raw HTML can be
// inserted using KindRaw nodes, but should only be used with trusted
// content.
package render

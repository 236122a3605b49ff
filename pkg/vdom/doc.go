// Package vdom provides a lightweight virtual node tree for server-side
// rendering. Views are built with element constructors (Div, Span, Ul, ...)
// and attribute helpers, then handed to pkg/render to be streamed out as
// HTML through a viewbuf.Writer.
//
// The tree is render-only: nodes carry no event handlers and no diffing
// state. A node is one of five kinds: an element, a text node, a raw HTML
// node, a fragment, or a nested component.
package vdom

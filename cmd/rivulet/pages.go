package main

import (
	"github.com/rivulet-dev/rivulet/pkg/render"
	"github.com/rivulet-dev/rivulet/pkg/vdom"
)

// sitePages returns the built-in preview site keyed by route path. The
// serve command mounts these pages and the export command writes them
// out as static objects.
func sitePages() map[string]render.PageData {
	nav := vdom.Nav(
		vdom.A(vdom.Href("/"), vdom.Text("Home")),
		vdom.Text(" · "),
		vdom.A(vdom.Href("/about"), vdom.Text("About")),
	)

	return map[string]render.PageData{
		"/": {
			Title: "Rivulet",
			Meta: []render.MetaTag{
				{Charset: "utf-8"},
				{Name: "viewport", Content: "width=device-width, initial-scale=1"},
			},
			Body: vdom.Main(
				vdom.Header(nav),
				vdom.H1(vdom.Text("Rivulet")),
				vdom.P(vdom.Text("This page was rendered on the server and streamed in sections.")),
				vdom.Section(
					vdom.H2(vdom.Text("Getting started")),
					vdom.Pre(vdom.Code(vdom.Text("rivulet serve\nrivulet export"))),
				),
			),
		},
		"/about": {
			Title: "About · Rivulet",
			Meta: []render.MetaTag{
				{Charset: "utf-8"},
			},
			Body: vdom.Main(
				vdom.Header(nav),
				vdom.H1(vdom.Text("About")),
				vdom.P(vdom.Text("Rivulet buffers view output, escapes text when it drains, and flushes the document head before the body is built.")),
				vdom.Ul(
					vdom.Li(vdom.Text("Markup and text are tracked separately, so tags pass through and content is escaped.")),
					vdom.Li(vdom.Text("A render error before the first flush leaves the response untouched.")),
					vdom.Li(vdom.Text("The same page tree serves HTTP, WebSocket, and static export.")),
				),
			),
		},
	}
}

package render

import (
	"github.com/rivulet-dev/rivulet/internal/errors"
	"github.com/rivulet-dev/rivulet/pkg/vdom"
	"github.com/rivulet-dev/rivulet/pkg/viewbuf"
)

// PageData contains all data needed to render a complete HTML page.
type PageData struct {
	// Body is the root VNode for the page content
	Body *vdom.VNode

	// Title is the page title
	Title string

	// Meta contains meta tags for the page
	Meta []MetaTag

	// Links contains link tags (stylesheets, favicon, etc.)
	Links []LinkTag

	// Scripts contains script tags to include
	Scripts []ScriptTag

	// Styles contains inline CSS styles
	Styles []string

	// StyleSheets contains paths to external stylesheets
	StyleSheets []string

	// Lang is the language attribute for the html element
	// Defaults to "en" if not specified
	Lang string
}

// MetaTag represents a meta element in the document head.
type MetaTag struct {
	Name      string // name attribute
	Content   string // content attribute
	Property  string // property attribute (for OpenGraph)
	HTTPEquiv string // http-equiv attribute
	Charset   string // charset attribute
}

// LinkTag represents a link element in the document head.
type LinkTag struct {
	Rel         string // rel attribute
	Href        string // href attribute
	Type        string // type attribute
	Sizes       string // sizes attribute
	CrossOrigin string // crossorigin attribute
	Media       string // media attribute
}

// ScriptTag represents a script element.
type ScriptTag struct {
	Src    string // src attribute
	Type   string // type attribute
	Defer  bool   // defer attribute
	Async  bool   // async attribute
	Module bool   // type="module"
	Inline string // inline script content
}

// RenderPage appends a complete HTML document to the given writer.
func (r *Renderer) RenderPage(w *viewbuf.Writer, page PageData) error {
	if page.Body == nil {
		return errors.New("E021")
	}

	// Set default language
	lang := page.Lang
	if lang == "" {
		lang = "en"
	}

	if err := markup(w, "<!DOCTYPE html>\n"); err != nil {
		return err
	}

	if err := markup(w, `<html lang="`+escapeAttr(lang)+`">`+"\n"); err != nil {
		return err
	}

	if err := r.renderHead(w, page); err != nil {
		return err
	}

	if err := markup(w, "<body>\n"); err != nil {
		return err
	}

	if err := r.Render(w, page.Body); err != nil {
		return err
	}

	return markup(w, "</body>\n</html>\n")
}

// renderHead renders the document head section.
func (r *Renderer) renderHead(w *viewbuf.Writer, page PageData) error {
	if err := markup(w, "<head>\n"); err != nil {
		return err
	}

	if err := markup(w, `  <meta charset="utf-8">`+"\n"); err != nil {
		return err
	}

	if err := markup(w, `  <meta name="viewport" content="width=device-width, initial-scale=1">`+"\n"); err != nil {
		return err
	}

	// Title text goes through the encoder; the tags around it do not.
	if page.Title != "" {
		if err := markup(w, "  <title>"); err != nil {
			return err
		}
		if err := text(w, page.Title); err != nil {
			return err
		}
		if err := markup(w, "</title>\n"); err != nil {
			return err
		}
	}

	for _, meta := range page.Meta {
		if err := renderMetaTag(w, meta); err != nil {
			return err
		}
	}

	for _, link := range page.Links {
		if err := renderLinkTag(w, link); err != nil {
			return err
		}
	}

	for _, href := range page.StyleSheets {
		if err := markup(w, `  <link rel="stylesheet" href="`+escapeAttr(href)+`">`+"\n"); err != nil {
			return err
		}
	}

	for _, style := range page.Styles {
		if err := markup(w, "  <style>"+style+"</style>\n"); err != nil {
			return err
		}
	}

	// Scripts in head (defer/async)
	for _, script := range page.Scripts {
		if script.Defer || script.Async {
			if err := renderScriptTag(w, script); err != nil {
				return err
			}
		}
	}

	return markup(w, "</head>\n")
}

// renderMetaTag renders a meta element.
func renderMetaTag(w *viewbuf.Writer, meta MetaTag) error {
	if err := markup(w, "  <meta"); err != nil {
		return err
	}

	if meta.Charset != "" {
		if err := markup(w, ` charset="`+escapeAttr(meta.Charset)+`"`); err != nil {
			return err
		}
	}

	if meta.Name != "" {
		if err := markup(w, ` name="`+escapeAttr(meta.Name)+`"`); err != nil {
			return err
		}
	}

	if meta.Property != "" {
		if err := markup(w, ` property="`+escapeAttr(meta.Property)+`"`); err != nil {
			return err
		}
	}

	if meta.HTTPEquiv != "" {
		if err := markup(w, ` http-equiv="`+escapeAttr(meta.HTTPEquiv)+`"`); err != nil {
			return err
		}
	}

	if meta.Content != "" {
		if err := markup(w, ` content="`+escapeAttr(meta.Content)+`"`); err != nil {
			return err
		}
	}

	return markup(w, ">\n")
}

// renderLinkTag renders a link element.
func renderLinkTag(w *viewbuf.Writer, link LinkTag) error {
	if err := markup(w, "  <link"); err != nil {
		return err
	}

	if link.Rel != "" {
		if err := markup(w, ` rel="`+escapeAttr(link.Rel)+`"`); err != nil {
			return err
		}
	}

	if link.Href != "" {
		if err := markup(w, ` href="`+escapeAttr(link.Href)+`"`); err != nil {
			return err
		}
	}

	if link.Type != "" {
		if err := markup(w, ` type="`+escapeAttr(link.Type)+`"`); err != nil {
			return err
		}
	}

	if link.Sizes != "" {
		if err := markup(w, ` sizes="`+escapeAttr(link.Sizes)+`"`); err != nil {
			return err
		}
	}

	if link.CrossOrigin != "" {
		if err := markup(w, ` crossorigin="`+escapeAttr(link.CrossOrigin)+`"`); err != nil {
			return err
		}
	}

	if link.Media != "" {
		if err := markup(w, ` media="`+escapeAttr(link.Media)+`"`); err != nil {
			return err
		}
	}

	return markup(w, ">\n")
}

// renderScriptTag renders a script element.
func renderScriptTag(w *viewbuf.Writer, script ScriptTag) error {
	if err := markup(w, "  <script"); err != nil {
		return err
	}

	if script.Src != "" {
		if err := markup(w, ` src="`+escapeAttr(script.Src)+`"`); err != nil {
			return err
		}
	}

	if script.Module {
		if err := markup(w, ` type="module"`); err != nil {
			return err
		}
	} else if script.Type != "" {
		if err := markup(w, ` type="`+escapeAttr(script.Type)+`"`); err != nil {
			return err
		}
	}

	if script.Defer {
		if err := markup(w, " defer"); err != nil {
			return err
		}
	}

	if script.Async {
		if err := markup(w, " async"); err != nil {
			return err
		}
	}

	if err := markup(w, ">"); err != nil {
		return err
	}

	if script.Inline != "" {
		if err := markup(w, script.Inline); err != nil {
			return err
		}
	}

	return markup(w, "</script>\n")
}

package render

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/rivulet-dev/rivulet/internal/errors"
	"github.com/rivulet-dev/rivulet/pkg/vdom"
	"github.com/rivulet-dev/rivulet/pkg/viewbuf"
)

// RendererConfig configures the HTML renderer.
type RendererConfig struct {
	// Pretty enables pretty-printed HTML output with indentation.
	// Should only be used in development as it increases output size.
	Pretty bool

	// Indent is the string used for each indentation level in pretty mode.
	// Defaults to two spaces if not specified.
	Indent string
}

// Renderer converts VNode trees to HTML through a viewbuf.Writer.
// Structural markup is appended with markup provenance; text content
// is appended plain and escaped by the writer's encoder at drain time.
type Renderer struct {
	config RendererConfig
}

// NewRenderer creates a new Renderer with the given configuration.
func NewRenderer(config RendererConfig) *Renderer {
	if config.Indent == "" {
		config.Indent = "  "
	}
	return &Renderer{config: config}
}

// RenderToString renders a VNode tree to a complete HTML string with
// the default escaping policy applied.
func (r *Renderer) RenderToString(node *vdom.VNode) (string, error) {
	out := &viewbuf.MemorySink{}
	w := viewbuf.NewWriter(viewbuf.WithSink(out))
	if err := r.Render(w, node); err != nil {
		return "", err
	}
	if err := w.Flush(context.Background()); err != nil {
		return "", err
	}
	return out.String(), nil
}

// Render appends a VNode tree to the given writer. Nothing reaches the
// writer's sink until the writer is flushed.
func (r *Renderer) Render(w *viewbuf.Writer, node *vdom.VNode) error {
	return r.renderNode(w, node, 0)
}

// renderNode dispatches rendering based on node kind.
func (r *Renderer) renderNode(w *viewbuf.Writer, node *vdom.VNode, depth int) error {
	if node == nil {
		return nil
	}

	switch node.Kind {
	case vdom.KindElement:
		return r.renderElement(w, node, depth)
	case vdom.KindText:
		return text(w, node.Text)
	case vdom.KindFragment:
		return r.renderFragment(w, node, depth)
	case vdom.KindComponent:
		return r.renderComponent(w, node, depth)
	case vdom.KindRaw:
		return markup(w, node.Text)
	default:
		return errors.New("E020").WithDetail(fmt.Sprintf("kind %d (tag %q)", node.Kind, node.Tag))
	}
}

// renderElement renders an HTML element with its attributes and children.
func (r *Renderer) renderElement(w *viewbuf.Writer, node *vdom.VNode, depth int) error {
	tag := node.Tag

	// Indentation (if pretty printing)
	if r.config.Pretty && depth > 0 {
		if err := r.writeIndent(w, depth); err != nil {
			return err
		}
	}

	// Opening tag
	if err := markup(w, "<"+tag); err != nil {
		return err
	}

	if err := r.renderAttributes(w, node); err != nil {
		return err
	}

	// Self-closing check for void elements
	if isVoidElement(tag) {
		if err := markup(w, ">"); err != nil {
			return err
		}
		if r.config.Pretty {
			return markup(w, "\n")
		}
		return nil
	}

	if err := markup(w, ">"); err != nil {
		return err
	}

	// Handle dangerouslySetInnerHTML
	if rawHTML, ok := node.Props["dangerouslySetInnerHTML"].(string); ok {
		if err := markup(w, rawHTML); err != nil {
			return err
		}
	} else {
		// Newline after opening tag if has children and pretty printing
		hasBlockChildren := len(node.Children) > 0 && !isInlineElement(tag)
		if r.config.Pretty && hasBlockChildren {
			if err := markup(w, "\n"); err != nil {
				return err
			}
		}

		for _, child := range node.Children {
			if err := r.renderNode(w, child, depth+1); err != nil {
				return err
			}
		}

		// Closing tag indentation
		if r.config.Pretty && hasBlockChildren {
			if err := r.writeIndent(w, depth); err != nil {
				return err
			}
		}
	}

	// Closing tag
	if err := markup(w, "</"+tag+">"); err != nil {
		return err
	}
	if r.config.Pretty {
		return markup(w, "\n")
	}

	return nil
}

// renderFragment renders a fragment's children without a wrapper element.
func (r *Renderer) renderFragment(w *viewbuf.Writer, node *vdom.VNode, depth int) error {
	for _, child := range node.Children {
		if err := r.renderNode(w, child, depth); err != nil {
			return err
		}
	}
	return nil
}

// renderComponent renders a component by rendering its output VNode.
func (r *Renderer) renderComponent(w *viewbuf.Writer, node *vdom.VNode, depth int) error {
	if node.Comp != nil {
		output := node.Comp.Render()
		return r.renderNode(w, output, depth)
	}
	return nil
}

// renderAttributes renders all attributes for an element. Attribute
// values are escaped here, not at drain time, because attributes need
// a wider escape set than text content.
func (r *Renderer) renderAttributes(w *viewbuf.Writer, node *vdom.VNode) error {
	if node.Props == nil {
		return nil
	}

	// Sort keys for deterministic output
	keys := make([]string, 0, len(node.Props))
	for key := range node.Props {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		value := node.Props[key]

		// Skip internal props
		if strings.HasPrefix(key, "_") {
			continue
		}

		// Handle special attributes
		switch key {
		case "className":
			key = "class"
		case "htmlFor":
			key = "for"
		case "dangerouslySetInnerHTML":
			// Handled separately in renderElement
			continue
		case "key":
			// Key is internal, not rendered
			continue
		}

		// Boolean attributes
		if isBooleanAttr(key) {
			if boolValue, ok := value.(bool); ok {
				if boolValue {
					if err := markup(w, " "+key); err != nil {
						return err
					}
				}
				continue
			}
		}

		// Regular attributes
		strValue := attrToString(value)
		if strValue != "" {
			if err := markup(w, ` `+key+`="`+escapeAttr(strValue)+`"`); err != nil {
				return err
			}
		}
	}

	return nil
}

// attrToString converts an attribute value to a string.
func attrToString(value any) string {
	if value == nil {
		return ""
	}
	switch v := value.(type) {
	case string:
		return v
	case bool:
		if v {
			return "true"
		}
		return "false"
	case int:
		return fmt.Sprintf("%d", v)
	case int64:
		return fmt.Sprintf("%d", v)
	case float64:
		return fmt.Sprintf("%g", v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// writeIndent writes indentation for pretty printing.
func (r *Renderer) writeIndent(w *viewbuf.Writer, depth int) error {
	for i := 0; i < depth; i++ {
		if err := markup(w, r.config.Indent); err != nil {
			return err
		}
	}
	return nil
}

// markup appends already-safe structural HTML.
func markup(w *viewbuf.Writer, s string) error {
	_, err := w.WriteMarkup(s)
	return err
}

// text appends content that the writer's encoder escapes on drain.
func text(w *viewbuf.Writer, s string) error {
	_, err := w.WriteString(s)
	return err
}

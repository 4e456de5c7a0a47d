package render

import (
	"fmt"
	"io"

	"github.com/vango-dev/contact/pkg/vdom"
)

// DefaultClientScript is the path the thin client is served from.
const DefaultClientScript = "/_contact/client.js"

// RootAttr marks the element whose content the client replaces on render.
const RootAttr = "data-contact-root"

// PageData contains all data needed to render a complete HTML page.
type PageData struct {
	// Body is the form fragment placed inside the root element
	Body *vdom.VNode

	// Title is the page title
	Title string

	// Lang is the language attribute for the html element
	// Defaults to "en" if not specified
	Lang string

	// Meta contains extra meta tags for the page
	Meta []MetaTag

	// StyleSheets contains paths to external stylesheets
	StyleSheets []string

	// Styles contains inline CSS styles
	Styles []string

	// SocketURL is the WebSocket endpoint the client connects to.
	// When empty the client script is omitted and the page works as a
	// plain HTML form.
	SocketURL string

	// ClientScript is the path to the thin client JavaScript
	// Defaults to DefaultClientScript if not specified
	ClientScript string

	// Nonce is added to inline style tags when a CSP is in place
	Nonce string
}

// MetaTag represents a meta element in the document head.
type MetaTag struct {
	Name     string // name attribute
	Property string // property attribute (for OpenGraph)
	Content  string // content attribute
}

// RenderPage renders a complete HTML document to the given writer.
func (r *Renderer) RenderPage(w io.Writer, page PageData) error {
	lang := page.Lang
	if lang == "" {
		lang = "en"
	}

	if _, err := fmt.Fprintf(w, "<!DOCTYPE html>\n<html lang=\"%s\">\n", escapeAttr(lang)); err != nil {
		return err
	}

	if err := r.renderHead(w, page); err != nil {
		return err
	}

	if _, err := io.WriteString(w, "<body>\n"); err != nil {
		return err
	}

	if err := r.renderRoot(w, page); err != nil {
		return err
	}

	if page.SocketURL != "" {
		src := page.ClientScript
		if src == "" {
			src = DefaultClientScript
		}
		if _, err := fmt.Fprintf(w, "<script src=\"%s\" defer></script>\n", escapeAttr(src)); err != nil {
			return err
		}
	}

	_, err := io.WriteString(w, "</body>\n</html>\n")
	return err
}

// renderRoot wraps the body fragment in the client's mount point.
func (r *Renderer) renderRoot(w io.Writer, page PageData) error {
	root := vdom.Main(
		vdom.Attr{Key: RootAttr, Value: "true"},
		vdom.AttrIf(page.SocketURL != "", vdom.Data("socket", page.SocketURL)),
		page.Body,
	)
	if err := r.RenderToWriter(w, root); err != nil {
		return err
	}
	return r.endLine(w)
}

// renderHead renders the document head section.
func (r *Renderer) renderHead(w io.Writer, page PageData) error {
	head := vdom.Head(
		vdom.Meta(vdom.Charset("utf-8")),
		vdom.Meta(vdom.Name("viewport"), vdom.Content("width=device-width, initial-scale=1")),
		vdom.If(page.Title != "", vdom.Title(vdom.Text(page.Title))),
		vdom.Range(page.Meta, func(meta MetaTag, _ int) *vdom.VNode {
			return vdom.Meta(
				vdom.AttrIf(meta.Name != "", vdom.Name(meta.Name)),
				vdom.AttrIf(meta.Property != "", vdom.Property(meta.Property)),
				vdom.Content(meta.Content),
			)
		}),
		vdom.Range(page.StyleSheets, func(href string, _ int) *vdom.VNode {
			return vdom.Link(vdom.Rel("stylesheet"), vdom.Href(href))
		}),
		vdom.Range(page.Styles, func(css string, _ int) *vdom.VNode {
			return vdom.Style(vdom.AttrIf(page.Nonce != "", vdom.Nonce(page.Nonce)), vdom.Raw(css))
		}),
	)
	if err := r.RenderToWriter(w, head); err != nil {
		return err
	}
	return r.endLine(w)
}

// endLine terminates a top-level element; pretty output already did.
func (r *Renderer) endLine(w io.Writer) error {
	if r.config.Pretty {
		return nil
	}
	_, err := io.WriteString(w, "\n")
	return err
}

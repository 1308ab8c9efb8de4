package goldmark

import (
	"bytes"
	"slices"
	"strings"

	"github.com/fwojciec/luamark"
	"github.com/yuin/goldmark/ast"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"
)

// Protocols allowed in URLs unless dangerous protocols are enabled.
var (
	linkProtocols  = []string{"http", "https", "irc", "ircs", "mailto", "xmpp"}
	imageProtocols = []string{"http", "https"}
)

// Tags disallowed by the GFM tagfilter extension.
var filteredTags = []string{
	"title", "textarea", "style", "xmp", "iframe",
	"noembed", "noframes", "script", "plaintext",
}

// Footnote label defaults used when only some label fields are set.
const (
	defaultFootnoteLabel           = "Footnotes"
	defaultFootnoteLabelTagName    = "h2"
	defaultFootnoteLabelAttributes = `id="footnote-label" class="sr-only"`
)

// compileRenderer overrides goldmark's HTML output for the nodes affected
// by luamark.CompileOptions. It must be registered with a higher priority
// than the stock renderers.
type compileRenderer struct {
	opts   luamark.CompileOptions
	writer html.Writer
}

func newCompileRenderer(opts luamark.CompileOptions) *compileRenderer {
	return &compileRenderer{opts: opts, writer: html.DefaultWriter}
}

// RegisterFuncs implements renderer.NodeRenderer.
func (r *compileRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(ast.KindRawHTML, r.renderRawHTML)
	reg.Register(ast.KindHTMLBlock, r.renderHTMLBlock)
	reg.Register(ast.KindLink, r.renderLink)
	reg.Register(ast.KindAutoLink, r.renderAutoLink)
	reg.Register(ast.KindImage, r.renderImage)
	reg.Register(extast.KindTaskCheckBox, r.renderTaskCheckBox)
	if hasFootnoteLabel(r.opts) {
		reg.Register(extast.KindFootnoteList, r.renderFootnoteList)
	}
}

func (r *compileRenderer) renderRawHTML(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkSkipChildren, nil
	}
	n := node.(*ast.RawHTML)
	var raw []byte
	for i := 0; i < n.Segments.Len(); i++ {
		segment := n.Segments.At(i)
		raw = append(raw, segment.Value(source)...)
	}
	_, _ = w.Write(r.rawHTML(raw))
	return ast.WalkSkipChildren, nil
}

func (r *compileRenderer) renderHTMLBlock(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	n := node.(*ast.HTMLBlock)
	if entering {
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			line := lines.At(i)
			r.writer.SecureWrite(w, r.rawHTML(line.Value(source)))
		}
	} else if n.HasClosure() {
		r.writer.SecureWrite(w, r.rawHTML(n.ClosureLine.Value(source)))
	}
	return ast.WalkContinue, nil
}

// rawHTML returns raw HTML as it should appear in the output: escaped into
// text unless dangerous HTML is allowed, and tag-filtered when enabled.
func (r *compileRenderer) rawHTML(raw []byte) []byte {
	switch {
	case !r.opts.AllowDangerousHTML:
		return util.EscapeHTML(raw)
	case r.opts.GFMTagfilter:
		return filterTags(raw)
	default:
		return raw
	}
}

func (r *compileRenderer) renderLink(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	n := node.(*ast.Link)
	if !entering {
		_, _ = w.WriteString("</a>")
		return ast.WalkContinue, nil
	}
	_, _ = w.WriteString(`<a href="`)
	if r.opts.AllowDangerousProtocol || allowedURL(n.Destination, linkProtocols) {
		_, _ = w.Write(util.EscapeHTML(util.URLEscape(n.Destination, true)))
	}
	_ = w.WriteByte('"')
	if n.Title != nil {
		_, _ = w.WriteString(` title="`)
		r.writer.Write(w, n.Title)
		_ = w.WriteByte('"')
	}
	if n.Attributes() != nil {
		html.RenderAttributes(w, n, html.LinkAttributeFilter)
	}
	_ = w.WriteByte('>')
	return ast.WalkContinue, nil
}

func (r *compileRenderer) renderAutoLink(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*ast.AutoLink)
	url := n.URL(source)
	if n.AutoLinkType == ast.AutoLinkEmail && !bytes.HasPrefix(bytes.ToLower(url), []byte("mailto:")) {
		url = append([]byte("mailto:"), url...)
	}
	_, _ = w.WriteString(`<a href="`)
	if r.opts.AllowDangerousProtocol || allowedURL(url, linkProtocols) {
		_, _ = w.Write(util.EscapeHTML(util.URLEscape(url, false)))
	}
	_ = w.WriteByte('"')
	if n.Attributes() != nil {
		html.RenderAttributes(w, n, html.LinkAttributeFilter)
	}
	_ = w.WriteByte('>')
	_, _ = w.Write(util.EscapeHTML(n.Label(source)))
	_, _ = w.WriteString("</a>")
	return ast.WalkContinue, nil
}

func (r *compileRenderer) renderImage(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*ast.Image)
	_, _ = w.WriteString(`<img src="`)
	if r.opts.AllowDangerousProtocol || r.opts.AllowAnyImgSrc || allowedURL(n.Destination, imageProtocols) {
		_, _ = w.Write(util.EscapeHTML(util.URLEscape(n.Destination, true)))
	}
	_, _ = w.WriteString(`" alt="`)
	writeAltText(w, source, n)
	_ = w.WriteByte('"')
	if n.Title != nil {
		_, _ = w.WriteString(` title="`)
		r.writer.Write(w, n.Title)
		_ = w.WriteByte('"')
	}
	if n.Attributes() != nil {
		html.RenderAttributes(w, n, html.ImageAttributeFilter)
	}
	_ = w.WriteByte('>')
	return ast.WalkSkipChildren, nil
}

func (r *compileRenderer) renderTaskCheckBox(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*extast.TaskCheckBox)
	_, _ = w.WriteString("<input ")
	if n.IsChecked {
		_, _ = w.WriteString(`checked="" `)
	}
	if !r.opts.GFMTaskListItemCheckable {
		_, _ = w.WriteString(`disabled="" `)
	}
	_, _ = w.WriteString(`type="checkbox"> `)
	return ast.WalkContinue, nil
}

func (r *compileRenderer) renderFootnoteList(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		_, _ = w.WriteString("</ol>\n</div>\n")
		return ast.WalkContinue, nil
	}
	_, _ = w.WriteString(`<div class="footnotes" role="doc-endnotes"`)
	if node.Attributes() != nil {
		html.RenderAttributes(w, node, html.GlobalAttributeFilter)
	}
	_, _ = w.WriteString(">\n")

	tag := stringOr(r.opts.GFMFootnoteLabelTagName, defaultFootnoteLabelTagName)
	attrs := stringOr(r.opts.GFMFootnoteLabelAttributes, defaultFootnoteLabelAttributes)
	label := stringOr(r.opts.GFMFootnoteLabel, defaultFootnoteLabel)

	_, _ = w.WriteString("<" + tag)
	if attrs != "" {
		_, _ = w.WriteString(" " + attrs)
	}
	_ = w.WriteByte('>')
	_, _ = w.Write(util.EscapeHTML([]byte(label)))
	_, _ = w.WriteString("</" + tag + ">\n<ol>\n")
	return ast.WalkContinue, nil
}

func hasFootnoteLabel(opts luamark.CompileOptions) bool {
	return opts.GFMFootnoteLabel != nil ||
		opts.GFMFootnoteLabelTagName != nil ||
		opts.GFMFootnoteLabelAttributes != nil
}

func stringOr(p *string, def string) string {
	if p != nil {
		return *p
	}
	return def
}

// writeAltText writes the plain text content of n, HTML-escaped.
func writeAltText(w util.BufWriter, source []byte, n ast.Node) {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch c := c.(type) {
		case *ast.Text:
			_, _ = w.Write(util.EscapeHTML(c.Segment.Value(source)))
			if c.SoftLineBreak() {
				_ = w.WriteByte('\n')
			}
		case *ast.String:
			_, _ = w.Write(util.EscapeHTML(c.Value))
		default:
			writeAltText(w, source, c)
		}
	}
}

// allowedURL reports whether url is relative or uses one of protocols.
func allowedURL(url []byte, protocols []string) bool {
	end := bytes.IndexAny(url, ":/?#")
	if end < 0 || url[end] != ':' {
		return true
	}
	return slices.Contains(protocols, strings.ToLower(string(url[:end])))
}

// filterTags replaces the opening angle bracket of GFM-disallowed tags.
func filterTags(raw []byte) []byte {
	var buf bytes.Buffer
	last := 0
	for i := 0; i < len(raw); i++ {
		if raw[i] != '<' || !isFilteredTag(raw[i+1:]) {
			continue
		}
		buf.Write(raw[last:i])
		buf.WriteString("&lt;")
		last = i + 1
	}
	if last == 0 {
		return raw
	}
	buf.Write(raw[last:])
	return buf.Bytes()
}

func isFilteredTag(b []byte) bool {
	b = bytes.TrimPrefix(b, []byte("/"))
	for _, tag := range filteredTags {
		if len(b) < len(tag) || !bytes.EqualFold(b[:len(tag)], []byte(tag)) {
			continue
		}
		if len(b) == len(tag) {
			return true
		}
		switch b[len(tag)] {
		case ' ', '\t', '\n', '\r', '\f', '>', '/':
			return true
		}
	}
	return false
}

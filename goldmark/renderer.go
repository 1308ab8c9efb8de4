// Package goldmark implements luamark.Renderer on top of github.com/yuin/goldmark.
package goldmark

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/fwojciec/luamark"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"
)

// Ensure Renderer implements luamark.Renderer at compile time.
var _ luamark.Renderer = (*Renderer)(nil)

// Renderer converts Markdown to HTML with goldmark. A goldmark instance is
// built per call from the options, so a Renderer holds no mutable state and
// may be shared between goroutines and Lua states.
type Renderer struct{}

// NewRenderer creates a new Renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render compiles markdown into HTML. A nil opts selects luamark.GFMOptions.
func (r *Renderer) Render(markdown string, opts *luamark.Options) (string, error) {
	if opts == nil {
		opts = luamark.GFMOptions()
	}
	if !utf8.ValidString(markdown) {
		return "", luamark.Errorf(luamark.EINVALID, "markdown is not valid UTF-8")
	}

	var buf bytes.Buffer
	if err := newMarkdown(opts).Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("convert markdown: %w", err)
	}

	ending := detectLineEnding(markdown, opts.Compile.DefaultLineEnding)
	return rewriteLineEndings(buf.String(), ending), nil
}

func newMarkdown(opts *luamark.Options) goldmark.Markdown {
	var extensions []goldmark.Extender
	if opts.Parse.GFM {
		extensions = append(extensions,
			extension.GFM,
			extension.NewFootnote(footnoteOptions(opts.Compile)...),
		)
	}

	return goldmark.New(
		goldmark.WithExtensions(extensions...),
		goldmark.WithRendererOptions(
			renderer.WithNodeRenderers(
				util.Prioritized(newCompileRenderer(opts.Compile), 100),
			),
		),
	)
}

func footnoteOptions(opts luamark.CompileOptions) []extension.FootnoteOption {
	var fopts []extension.FootnoteOption
	if opts.GFMFootnoteClobberPrefix != nil {
		fopts = append(fopts, extension.WithFootnoteIDPrefix([]byte(*opts.GFMFootnoteClobberPrefix)))
	}
	if opts.GFMFootnoteBackLabel != nil {
		fopts = append(fopts, extension.WithFootnoteBacklinkTitle([]byte(*opts.GFMFootnoteBackLabel)))
	}
	return fopts
}

// detectLineEnding returns the first line ending used in src, or def when
// src contains none.
func detectLineEnding(src string, def luamark.LineEnding) luamark.LineEnding {
	i := strings.IndexAny(src, "\r\n")
	switch {
	case i < 0:
		if def == "" {
			return luamark.LineEndingLF
		}
		return def
	case src[i] == '\n':
		return luamark.LineEndingLF
	case i+1 < len(src) && src[i+1] == '\n':
		return luamark.LineEndingCRLF
	default:
		return luamark.LineEndingCR
	}
}

func rewriteLineEndings(html string, ending luamark.LineEnding) string {
	if !strings.ContainsRune(html, '\r') && ending == luamark.LineEndingLF {
		return html
	}
	html = strings.ReplaceAll(html, "\r\n", "\n")
	html = strings.ReplaceAll(html, "\r", "\n")
	if ending == luamark.LineEndingLF {
		return html
	}
	return strings.ReplaceAll(html, "\n", string(ending))
}

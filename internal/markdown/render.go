// Package markdown renders entry bodies to HTML with the journal's
// structural rules applied: images become captioned figures and body
// headings are clamped so they never compete with page titles.
package markdown

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
	xhtml "golang.org/x/net/html"
)

// Renderer converts entry body Markdown into HTML and its plain-text
// projection. It is stateless and safe to reuse across files.
type Renderer struct {
	md goldmark.Markdown
}

// New builds the entry body renderer: GFM extensions, auto heading IDs,
// heading levels clamped to [2,6], and every image rendered as a figure.
func New() *Renderer {
	return &Renderer{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithParserOptions(
				parser.WithAutoHeadingID(),
				parser.WithASTTransformers(util.Prioritized(&headingClamp{}, 100)),
			),
			goldmark.WithRendererOptions(
				renderer.WithNodeRenderers(util.Prioritized(&figureRenderer{}, 500)),
			),
		),
	}
}

// Render converts one entry body. The second return is the
// whitespace-collapsed plain text of the rendered HTML, used only by the
// search index.
func (r *Renderer) Render(src []byte) (string, string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert(src, &buf); err != nil {
		return "", "", fmt.Errorf("convert markdown: %w", err)
	}
	html := buf.String()
	return html, plainText(html), nil
}

// headingClamp keeps body headings between level 2 and 6: authors cannot
// emit an h1 that competes with the page title, and nothing renders deeper
// than browsers style.
type headingClamp struct{}

func (t *headingClamp) Transform(doc *ast.Document, reader text.Reader, pc parser.Context) {
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if h, ok := n.(*ast.Heading); ok {
			if h.Level < 2 {
				h.Level = 2
			}
			if h.Level > 6 {
				h.Level = 6
			}
		}
		return ast.WalkContinue, nil
	})
}

// figureRenderer replaces the default image output with
// <figure class="entry-figure"><img ...><figcaption>alt</figcaption></figure>,
// in any surrounding context. The caption is the image's alt text and is
// omitted when the alt text is empty.
type figureRenderer struct{}

func (r *figureRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(ast.KindImage, r.renderImage)
}

func (r *figureRenderer) renderImage(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*ast.Image)
	alt := strings.TrimSpace(nodeText(n, source))

	_, _ = w.WriteString(`<figure class="entry-figure"><img src="`)
	_, _ = w.Write(util.EscapeHTML(util.URLEscape(n.Destination, true)))
	_, _ = w.WriteString(`" alt="`)
	_, _ = w.Write(util.EscapeHTML([]byte(alt)))
	_, _ = w.WriteString(`"`)
	if n.Title != nil {
		_, _ = w.WriteString(` title="`)
		_, _ = w.Write(util.EscapeHTML(n.Title))
		_, _ = w.WriteString(`"`)
	}
	_, _ = w.WriteString(`>`)
	if alt != "" {
		_, _ = w.WriteString(`<figcaption>`)
		_, _ = w.Write(util.EscapeHTML([]byte(alt)))
		_, _ = w.WriteString(`</figcaption>`)
	}
	_, _ = w.WriteString(`</figure>`)
	return ast.WalkSkipChildren, nil
}

// nodeText collects the literal text under a node, e.g. an image's alt.
func nodeText(node ast.Node, source []byte) string {
	var sb strings.Builder
	_ = ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if t, ok := n.(*ast.Text); ok {
			sb.Write(t.Segment.Value(source))
		}
		return ast.WalkContinue, nil
	})
	return sb.String()
}

// plainText strips tags from an HTML fragment and collapses whitespace.
func plainText(src string) string {
	tok := xhtml.NewTokenizer(strings.NewReader(src))
	var sb strings.Builder
	for {
		switch tok.Next() {
		case xhtml.ErrorToken:
			return strings.Join(strings.Fields(sb.String()), " ")
		case xhtml.TextToken:
			sb.Write(tok.Text())
			sb.WriteByte(' ')
		}
	}
}

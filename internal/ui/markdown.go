package ui

import (
	"strconv"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Markdown renders a small subset of markdown (emphasis, links, lists)
// into styled terminal text. Formatter output only ever uses that subset,
// so anything else falls through as plain text.
func (r *Renderer) Markdown(content string) string {
	source := []byte(content)
	root := goldmark.New().Parser().Parse(text.NewReader(source))

	var b strings.Builder
	for block := root.FirstChild(); block != nil; block = block.NextSibling() {
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		r.renderBlock(&b, block, source)
	}
	return strings.TrimRight(b.String(), "\n")
}

func (r *Renderer) renderBlock(b *strings.Builder, node ast.Node, source []byte) {
	switch typed := node.(type) {
	case *ast.Paragraph, *ast.TextBlock:
		b.WriteString(r.renderInline(node, source))
		b.WriteString("\n")
	case *ast.List:
		index := typed.Start
		for item := typed.FirstChild(); item != nil; item = item.NextSibling() {
			var marker string
			if typed.IsOrdered() {
				marker = r.styles.label.Render(strconv.Itoa(index) + ".")
				index++
			} else {
				marker = r.styles.label.Render("•")
			}
			for child := item.FirstChild(); child != nil; child = child.NextSibling() {
				b.WriteString(marker + " " + r.renderInline(child, source))
				b.WriteString("\n")
				marker = " "
			}
		}
	default:
		if node.Type() == ast.TypeBlock {
			b.WriteString(string(node.Text(source)))
			b.WriteString("\n")
		}
	}
}

func (r *Renderer) renderInline(node ast.Node, source []byte) string {
	var b strings.Builder
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		switch typed := child.(type) {
		case *ast.Text:
			b.WriteString(string(typed.Segment.Value(source)))
			if typed.SoftLineBreak() || typed.HardLineBreak() {
				b.WriteString("\n")
			}
		case *ast.Emphasis:
			inner := r.renderInline(typed, source)
			if typed.Level >= 2 {
				b.WriteString(r.styles.bold.Render(inner))
			} else {
				b.WriteString(r.styles.italic.Render(inner))
			}
		case *ast.Link:
			label := r.renderInline(typed, source)
			b.WriteString(r.styles.link.Render(label))
			b.WriteString(r.styles.label.Render(" (" + string(typed.Destination) + ")"))
		case *ast.AutoLink:
			b.WriteString(r.styles.link.Render(string(typed.URL(source))))
		case *ast.CodeSpan:
			b.WriteString(r.styles.label.Render(string(typed.Text(source))))
		default:
			b.WriteString(string(child.Text(source)))
		}
	}
	return b.String()
}

// Package checks validates rendered markdown before it reaches a chat
// transcript: link destinations must be absolute http(s) URLs with no
// unescaped parentheses.
package checks

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	gmtext "github.com/yuin/goldmark/text"
)

// Markdown parses content and reports the first unsafe construct found.
// Empty content is valid: the host shows nothing for that stage.
func Markdown(content string) error {
	if strings.TrimSpace(content) == "" {
		return nil
	}
	source := []byte(content)
	document := goldmark.New().Parser().Parse(gmtext.NewReader(source))

	return ast.Walk(document, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		var destination string
		switch typed := node.(type) {
		case *ast.Link:
			destination = string(typed.Destination)
		case *ast.Image:
			destination = string(typed.Destination)
		case *ast.AutoLink:
			destination = string(typed.URL(source))
		default:
			return ast.WalkContinue, nil
		}
		if err := checkDestination(destination); err != nil {
			return ast.WalkStop, err
		}
		return ast.WalkContinue, nil
	})
}

func checkDestination(destination string) error {
	parsed, err := url.Parse(destination)
	if err != nil {
		return fmt.Errorf("unparseable link destination %q", destination)
	}
	scheme := strings.ToLower(parsed.Scheme)
	if scheme != "http" && scheme != "https" {
		return fmt.Errorf("unsafe link scheme %q", destination)
	}
	if strings.ContainsAny(destination, "()") {
		return fmt.Errorf("unescaped parenthesis in link destination %q", destination)
	}
	return nil
}

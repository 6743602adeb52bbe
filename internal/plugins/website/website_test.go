package website

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chatpilot/toolview/internal/render"
)

func bundle() render.Bundle {
	return Bundles()[0]
}

func TestFormatStartUnsafeURLFallsBack(t *testing.T) {
	got := bundle().FormatStart(render.Context{
		Args: map[string]any{"url": "javascript:alert(1)"},
	})
	assert.Equal(t, "*Opening page…*", got)
	assert.NotContains(t, got, "javascript")
}

func TestFormatStartSafeURL(t *testing.T) {
	got := bundle().FormatStart(render.Context{
		Args: map[string]any{"url": "https://example.com/docs/"},
	})
	assert.Equal(t, "*Opening* [example.com/docs](https://example.com/docs/)", got)

	assert.Equal(t, "*Opening page…*", bundle().FormatStart(render.Context{}))
}

func TestPreviewPrecedence(t *testing.T) {
	b := bundle()
	assert.Equal(t, "example.com/a", b.QueryPreview(render.Context{
		Args:   map[string]any{"url": "https://example.com/a"},
		Output: map[string]any{"title": "Echoed Title"},
	}))
	assert.Equal(t, "Echoed Title", b.QueryPreview(render.Context{
		Output: map[string]any{"title": "Echoed Title"},
	}))
	assert.Equal(t, "other.example", b.QueryPreview(render.Context{
		Output: map[string]any{"url": "https://other.example/"},
	}))
	assert.Equal(t, "Page", b.QueryPreview(render.Context{
		Args: map[string]any{"url": "data:text/html,x"},
	}))
}

func TestOutputTitleAndURL(t *testing.T) {
	got := bundle().FormatOutput(render.Context{Output: map[string]any{
		"title":   "Go [docs]",
		"url":     "https://go.dev/doc/(intro)",
		"content": "Welcome to Go.",
	}})
	lines := strings.Split(got, "\n")
	require.NotEmpty(t, lines)
	assert.Equal(t, "**[Go docs](https://go.dev/doc/%28intro%29)**", lines[0])
	assert.Contains(t, got, "Welcome to Go.")
}

func TestOutputTitleOnlyAndURLOnly(t *testing.T) {
	b := bundle()
	got := b.FormatOutput(render.Context{Output: map[string]any{"title": "Just a Title"}})
	assert.True(t, strings.HasPrefix(got, "**Just a Title**"))

	got = b.FormatOutput(render.Context{Output: map[string]any{"url": "https://example.com/page"}})
	assert.True(t, strings.HasPrefix(got, "**[example.com/page](https://example.com/page)**"))

	got = b.FormatOutput(render.Context{Output: map[string]any{}})
	assert.Equal(t, "**Page opened**", got)
}

func TestOutputContentTruncated(t *testing.T) {
	got := bundle().FormatOutput(render.Context{Output: map[string]any{
		"title":   "Big",
		"content": strings.Repeat("c", 3000),
	}})
	assert.Contains(t, got, strings.Repeat("c", 2599)+"…")
	assert.NotContains(t, got, strings.Repeat("c", 2600))
}

func TestOutputLinksCappedAndSanitized(t *testing.T) {
	links := make([]any, 0, 16)
	links = append(links, "javascript:alert(1)")
	for i := 0; i < 14; i++ {
		links = append(links, map[string]any{
			"url": fmt.Sprintf("https://example.com/p%d", i),
		})
	}
	got := bundle().FormatOutput(render.Context{Output: map[string]any{
		"title": "Hub",
		"links": links,
	}})

	assert.NotContains(t, got, "javascript")
	assert.Contains(t, got, "- [example.com/p0](https://example.com/p0)")
	assert.Contains(t, got, "- [example.com/p11](https://example.com/p11)")
	assert.NotContains(t, got, "p12")
	assert.Equal(t, 12, strings.Count(got, "\n- ["))
}

func TestOutputError(t *testing.T) {
	got := bundle().FormatOutput(render.Context{Output: map[string]any{
		"error": "connection refused",
		"title": "hidden",
	}})
	assert.Equal(t, "**Page error:** connection refused", got)
}

func TestOutputNonObject(t *testing.T) {
	assert.Equal(t, "", bundle().FormatOutput(render.Context{}))
	assert.Equal(t, "", bundle().FormatOutput(render.Context{Output: []any{"x"}}))
}

func TestRegister(t *testing.T) {
	reg := render.NewRegistry()
	require.True(t, Register(reg))
	_, ok := reg.Lookup("web.visit.website")
	assert.True(t, ok)
	assert.False(t, Register(nil))
}

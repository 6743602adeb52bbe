// Package websearch renders the DuckDuckGo search tool family.
package websearch

import (
	"github.com/chatpilot/toolview/internal/registrar"
	"github.com/chatpilot/toolview/internal/render"
	"github.com/chatpilot/toolview/internal/text"
)

const PluginID = "duckduckgo"

const (
	previewLen = 60
	snippetLen = 220
	errorLen   = 320
	resultsCap = 10
)

var searchNames = []string{"web.search.duckduckgo", "duckduckgo.search"}

func Register(host render.Host) bool {
	return registrar.RegisterVariants(host, PluginID, searchNames, Template())
}

func Bundles() []render.Bundle {
	return []render.Bundle{Template().Bind(PluginID, searchNames[0])}
}

func Template() render.Template {
	return render.Template{
		QueryPreview: func(ctx render.Context) string {
			if query := ctx.ArgsFields().Text("query"); query != "" {
				return text.Truncate(query, previewLen)
			}
			if output, ok := render.AsFields(ctx.Output); ok {
				if query := output.Text("query"); query != "" {
					return text.Truncate(query, previewLen)
				}
			}
			return "Поиск"
		},
		FormatStart: func(ctx render.Context) string {
			if query := ctx.ArgsFields().Text("query"); query != "" {
				return "*Searching:* " + text.Truncate(query, previewLen)
			}
			return "*Searching the web…*"
		},
		FormatOutput: render.Output(render.OutputSpec{
			ErrorLabel: "Search",
			ErrorLimit: errorLen,
			Body: func(b *render.Block, args, output render.Fields) {
				results := output.List("results")
				if len(results) == 0 {
					b.Raw("**Search:** nothing found")
					return
				}
				b.Headline("Search results")
				// Results past the cap are dropped without an overflow
				// notice, unlike memory recall.
				b.NumberedList(resultLines(results), resultsCap, len(results), false)
			},
		}),
	}
}

func resultLines(results []any) []string {
	lines := make([]string, 0, len(results))
	for _, raw := range results {
		result, ok := render.AsFields(raw)
		if !ok {
			continue
		}
		title := text.SanitizeTitle(result.Text("title"), "")
		url := text.SafeMarkdownURL(result.Text("url"))
		line := ""
		switch {
		case title != "" && url != "":
			line = "[" + title + "](" + url + ")"
		case title != "":
			line = title
		case url != "":
			line = url
		default:
			continue
		}
		if snippet := text.Truncate(result.Text("snippet"), snippetLen); snippet != "" {
			line += " — " + snippet
		}
		lines = append(lines, line)
	}
	return lines
}

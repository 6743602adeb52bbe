// Package website renders the visit-website tool family.
package website

import (
	"github.com/chatpilot/toolview/internal/registrar"
	"github.com/chatpilot/toolview/internal/render"
	"github.com/chatpilot/toolview/internal/text"
)

const PluginID = "visit-website"

const (
	previewLen = 60
	contentLen = 2600
	errorLen   = 400
	linksCap   = 12
)

var visitNames = []string{"web.visit.website", "web.visit"}

func Register(host render.Host) bool {
	return registrar.RegisterVariants(host, PluginID, visitNames, Template())
}

func Bundles() []render.Bundle {
	return []render.Bundle{Template().Bind(PluginID, visitNames[0])}
}

func Template() render.Template {
	return render.Template{
		QueryPreview: func(ctx render.Context) string {
			if label := urlLabel(ctx.ArgsFields().Text("url")); label != "" {
				return text.Truncate(label, previewLen)
			}
			if output, ok := render.AsFields(ctx.Output); ok {
				if title := text.SanitizeTitle(output.Text("title"), ""); title != "" {
					return text.Truncate(title, previewLen)
				}
				if label := urlLabel(output.Text("url")); label != "" {
					return text.Truncate(label, previewLen)
				}
			}
			return "Page"
		},
		FormatStart: func(ctx render.Context) string {
			url := text.SafeMarkdownURL(ctx.ArgsFields().Text("url"))
			if url == "" {
				// Unsafe or missing URL: never echo it back.
				return "*Opening page…*"
			}
			label := text.LinkLabel(url)
			if label == "" {
				return "*Opening page…*"
			}
			return "*Opening* [" + label + "](" + url + ")"
		},
		FormatOutput: render.Output(render.OutputSpec{
			ErrorLabel: "Page",
			ErrorLimit: errorLen,
			Body: func(b *render.Block, args, output render.Fields) {
				title := text.SanitizeTitle(output.Text("title"), "")
				url := text.SafeMarkdownURL(output.Text("url"))
				switch {
				case title != "" && url != "":
					b.Raw("**[" + title + "](" + url + ")**")
				case title != "":
					b.Headline(title)
				case url != "":
					b.Raw("**[" + text.LinkLabel(url) + "](" + url + ")**")
				default:
					b.Headline("Page opened")
				}
				if content := text.Truncate(output.Text("content"), contentLen); content != "" {
					b.Raw(content)
				}
				for _, line := range linkLines(output.List("links"), linksCap) {
					b.Raw(line)
				}
			},
		}),
	}
}

func urlLabel(raw string) string {
	return text.LinkLabel(text.SafeMarkdownURL(raw))
}

// linkLines renders up to limit outbound links as markdown bullet items,
// dropping anything that is not a safe absolute URL.
func linkLines(links []any, limit int) []string {
	lines := make([]string, 0, limit)
	for _, raw := range links {
		if len(lines) >= limit {
			break
		}
		target := ""
		switch v := raw.(type) {
		case string:
			target = v
		default:
			if link, ok := render.AsFields(raw); ok {
				target = link.Text("url")
			}
		}
		url := text.SafeMarkdownURL(target)
		if url == "" {
			continue
		}
		label := text.LinkLabel(url)
		if label == "" {
			continue
		}
		lines = append(lines, "- ["+label+"]("+url+")")
	}
	return lines
}

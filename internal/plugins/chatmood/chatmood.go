// Package chatmood renders the chat mood tool. Known moods map to fixed
// display labels; anything else passes through as its normalized raw text.
package chatmood

import (
	"strings"

	"github.com/chatpilot/toolview/internal/registrar"
	"github.com/chatpilot/toolview/internal/render"
	"github.com/chatpilot/toolview/internal/text"
)

const PluginID = "chat-mood"

const (
	previewLen = 60
	errorLen   = 280
)

var moodNames = []string{"chat.set_mood", "chat.mood"}

var moodLabels = map[string]string{
	"neutral":     "Neutral",
	"success":     "Success",
	"error":       "Error",
	"warning":     "Warning",
	"thinking":    "Thinking",
	"planning":    "Planning",
	"coding":      "Coding",
	"researching": "Researching",
	"creative":    "Creative",
	"friendly":    "Friendly",
	"waiting":     "Waiting",
	"offline":     "Offline",
}

// Label resolves a raw mood value to its display label. Unknown moods keep
// their normalized lowercase form; empty input becomes "unspecified".
func Label(raw string) string {
	mood := strings.ToLower(text.Normalize(raw))
	if mood == "" {
		return "unspecified"
	}
	if label, ok := moodLabels[mood]; ok {
		return label
	}
	return mood
}

func Register(host render.Host) bool {
	return registrar.RegisterVariants(host, PluginID, moodNames, Template())
}

func Bundles() []render.Bundle {
	return []render.Bundle{Template().Bind(PluginID, moodNames[0])}
}

func Template() render.Template {
	return render.Template{
		QueryPreview: func(ctx render.Context) string {
			if mood := ctx.ArgsFields().Text("mood"); mood != "" {
				return text.Truncate(Label(mood), previewLen)
			}
			if output, ok := render.AsFields(ctx.Output); ok {
				if mood := output.Text("mood"); mood != "" {
					return text.Truncate(Label(mood), previewLen)
				}
			}
			return "Mood"
		},
		FormatStart: func(ctx render.Context) string {
			if mood := ctx.ArgsFields().Text("mood"); mood != "" {
				return "*Setting mood:* " + text.Truncate(Label(mood), previewLen)
			}
			return "*Setting mood…*"
		},
		FormatOutput: render.Output(render.OutputSpec{
			ErrorLabel: "Mood",
			ErrorLimit: errorLen,
			Body: func(b *render.Block, args, output render.Fields) {
				mood := output.Text("mood")
				if mood == "" {
					mood = args.Text("mood")
				}
				b.Headline("Mood: " + Label(mood))
			},
			Details: []render.Detail{
				{Label: "Chat", Field: "chat_id"},
			},
		}),
	}
}

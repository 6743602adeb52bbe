// Package systime renders the system time tool.
package systime

import (
	"github.com/chatpilot/toolview/internal/registrar"
	"github.com/chatpilot/toolview/internal/render"
	"github.com/chatpilot/toolview/internal/text"
)

const PluginID = "system-time"

const (
	previewLen = 60
	errorLen   = 280
)

var timeNames = []string{"system.time", "time.now"}

func Register(host render.Host) bool {
	return registrar.RegisterVariants(host, PluginID, timeNames, Template())
}

func Bundles() []render.Bundle {
	return []render.Bundle{Template().Bind(PluginID, timeNames[0])}
}

func Template() render.Template {
	return render.Template{
		QueryPreview: func(ctx render.Context) string {
			if tz := ctx.ArgsFields().Text("timezone"); tz != "" {
				return text.Truncate(tz, previewLen)
			}
			if output, ok := render.AsFields(ctx.Output); ok {
				if local := output.Text("local_time"); local != "" {
					return text.Truncate(local, previewLen)
				}
			}
			return "Time"
		},
		FormatStart: func(ctx render.Context) string {
			return "*Checking the time…*"
		},
		FormatOutput: render.Output(render.OutputSpec{
			ErrorLabel: "Time",
			ErrorLimit: errorLen,
			Body: func(b *render.Block, args, output render.Fields) {
				if local := output.Text("local_time"); local != "" {
					b.Headline(local)
				} else {
					b.Headline("Time retrieved")
				}
			},
			Details: []render.Detail{
				{Label: "Timezone", Field: "timezone"},
			},
		}),
	}
}

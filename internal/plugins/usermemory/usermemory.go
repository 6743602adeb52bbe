// Package usermemory renders the memory tool family: remember, recall, and
// forget. Payload fields mirror what the memory executor returns; every one
// of them is optional.
package usermemory

import (
	"strconv"
	"strings"

	"github.com/chatpilot/toolview/internal/registrar"
	"github.com/chatpilot/toolview/internal/render"
	"github.com/chatpilot/toolview/internal/text"
)

const PluginID = "user-memory"

const (
	previewLen   = 60
	factLen      = 380
	listFactLen  = 180
	requestIDLen = 64
	errorLen     = 380

	recallCap = 12
	forgetCap = 8
)

var (
	rememberNames = []string{"memory.remember", "user_memory.remember"}
	recallNames   = []string{"memory.recall", "user_memory.recall"}
	forgetNames   = []string{"memory.forget", "user_memory.forget"}
)

// Register wires all three memory renderers into host. All families must
// land for the call to report success.
func Register(host render.Host) bool {
	ok := registrar.RegisterVariants(host, PluginID, rememberNames, rememberTemplate())
	ok = registrar.RegisterVariants(host, PluginID, recallNames, recallTemplate()) && ok
	ok = registrar.RegisterVariants(host, PluginID, forgetNames, forgetTemplate()) && ok
	return ok
}

// Bundles returns the canonical bundle per family, for catalogs and tests.
func Bundles() []render.Bundle {
	return []render.Bundle{
		rememberTemplate().Bind(PluginID, rememberNames[0]),
		recallTemplate().Bind(PluginID, recallNames[0]),
		forgetTemplate().Bind(PluginID, forgetNames[0]),
	}
}

func rememberTemplate() render.Template {
	return render.Template{
		QueryPreview: func(ctx render.Context) string {
			if fact := ctx.ArgsFields().Text("fact"); fact != "" {
				return text.Truncate(fact, previewLen)
			}
			if output, ok := render.AsFields(ctx.Output); ok {
				if fact := output.Map("memory").Text("fact"); fact != "" {
					return text.Truncate(fact, previewLen)
				}
			}
			return "Memory"
		},
		FormatStart: func(ctx render.Context) string {
			if fact := ctx.ArgsFields().Text("fact"); fact != "" {
				return "*Saving to memory:* " + text.Truncate(fact, previewLen)
			}
			return "*Saving to memory…*"
		},
		FormatOutput: render.Output(render.OutputSpec{
			ErrorLabel: "Memory",
			ErrorLimit: errorLen,
			Body: func(b *render.Block, args, output render.Fields) {
				if output.Text("status") == "updated" {
					b.Headline("Memory updated")
				} else {
					b.Headline("Memory saved")
				}
				memory := output.Map("memory")
				b.Line("Fact", text.Truncate(memory.Text("fact"), factLen))
				b.Line("Key", memory.Text("key"))
				b.Line("Tags", strings.Join(memory.Texts("tags"), ", "))
				if _, present := output["total_memories"]; present {
					b.Line("Total memories", strconv.Itoa(output.Count("total_memories")))
				}
				b.Line("Request", text.Truncate(output.Text("request_id"), requestIDLen))
			},
		}),
	}
}

func recallTemplate() render.Template {
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
			return "Memory recall"
		},
		FormatStart: func(ctx render.Context) string {
			if query := ctx.ArgsFields().Text("query"); query != "" {
				return "*Searching memory:* " + text.Truncate(query, previewLen)
			}
			return "*Searching memory…*"
		},
		FormatOutput: render.Output(render.OutputSpec{
			ErrorLabel: "Memory",
			ErrorLimit: errorLen,
			Body: func(b *render.Block, args, output render.Fields) {
				entries := output.List("memories")
				if len(entries) == 0 {
					b.Raw("**Memory recall:** no results found")
					return
				}
				b.Headline("Found in memory")
				total := output.Count("count")
				if total < len(entries) {
					total = len(entries)
				}
				b.NumberedList(memoryLines(entries), recallCap, total, true)
			},
		}),
	}
}

func forgetTemplate() render.Template {
	return render.Template{
		QueryPreview: func(ctx render.Context) string {
			args := ctx.ArgsFields()
			for _, key := range []string{"query", "key", "id"} {
				if value := args.Text(key); value != "" {
					return text.Truncate(value, previewLen)
				}
			}
			return "Memory forget"
		},
		FormatStart: func(ctx render.Context) string {
			return "*Updating memory…*"
		},
		FormatOutput: render.Output(render.OutputSpec{
			ErrorLabel: "Memory",
			ErrorLimit: errorLen,
			Body: func(b *render.Block, args, output render.Fields) {
				removed := output.Count("removed_count")
				if removed <= 0 {
					b.Raw("**Memory forget:** no matches")
					return
				}
				b.Headline("Removed from memory")
				b.Line("Removed", strconv.Itoa(removed))
				b.Line("Remaining", strconv.Itoa(output.Count("remaining_count")))
				b.NumberedList(memoryLines(output.List("removed")), forgetCap, removed, true)
			},
		}),
	}
}

// memoryLines renders entries as "fact (key=… • tags=…)" list items,
// skipping entries without a fact.
func memoryLines(entries []any) []string {
	lines := make([]string, 0, len(entries))
	for _, raw := range entries {
		entry, ok := render.AsFields(raw)
		if !ok {
			continue
		}
		fact := text.Truncate(entry.Text("fact"), listFactLen)
		if fact == "" {
			continue
		}
		meta := []string{}
		if key := entry.Text("key"); key != "" {
			meta = append(meta, "key="+key)
		}
		if tags := entry.Texts("tags"); len(tags) > 0 {
			meta = append(meta, "tags="+strings.Join(tags, ","))
		}
		if len(meta) > 0 {
			fact += " (" + strings.Join(meta, " • ") + ")"
		}
		lines = append(lines, fact)
	}
	return lines
}

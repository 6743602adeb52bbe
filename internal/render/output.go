package render

import (
	"strconv"
	"strings"

	"github.com/chatpilot/toolview/internal/text"
)

// Block accumulates the lines of a rendered markdown block. Lines for absent
// fields are simply never added; there are no placeholder values.
type Block struct {
	lines []string
}

// Headline adds a bold first line.
func (b *Block) Headline(value string) {
	if value = text.Normalize(value); value != "" {
		b.lines = append(b.lines, "**"+value+"**")
	}
}

// Line adds a "Label: value" detail line when value is non-empty.
func (b *Block) Line(label, value string) {
	if value = text.Normalize(value); value != "" {
		b.lines = append(b.lines, label+": "+value)
	}
}

// Raw adds an already formatted line verbatim.
func (b *Block) Raw(line string) {
	if line != "" {
		b.lines = append(b.lines, line)
	}
}

// NumberedList renders at most limit items as "1. item" lines. When total
// exceeds the shown items and withOverflow is set, a trailing "+N more" note
// is added. Empty items are skipped without consuming a number.
func (b *Block) NumberedList(items []string, limit int, total int, withOverflow bool) {
	shown := 0
	for _, item := range items {
		if item == "" {
			continue
		}
		if shown >= limit {
			break
		}
		shown++
		b.lines = append(b.lines, strconv.Itoa(shown)+". "+item)
	}
	if withOverflow && total > shown && shown > 0 {
		b.lines = append(b.lines, "+"+strconv.Itoa(total-shown)+" more")
	}
}

// String joins the block into a markdown fragment.
func (b *Block) String() string {
	return strings.Join(b.lines, "\n")
}

// Empty reports whether nothing was added.
func (b *Block) Empty() bool {
	return len(b.lines) == 0
}

// Detail declares one "Label: field" line of an output block. MaxLen of zero
// means no truncation beyond normalization.
type Detail struct {
	Label  string
	Field  string
	MaxLen int
}

// OutputSpec drives the generic final-output formatter. The uniform contract
// is shared by every tool family; only the error label, the truncation
// budget, the headline-writing body, and the declarative detail table differ.
type OutputSpec struct {
	ErrorLabel string
	ErrorLimit int
	// Body writes the headline and any custom lines. It runs before the
	// detail table so the headline stays first.
	Body    func(b *Block, args, output Fields)
	Details []Detail
}

// Output compiles spec into the final-output callback:
//
//  1. output absent or not an object: "".
//  2. output.error non-empty: a bold error line, short-circuiting the rest.
//  3. otherwise the body, then the declared detail lines for present fields.
func Output(spec OutputSpec) Format {
	return func(ctx Context) string {
		output, ok := AsFields(ctx.Output)
		if !ok {
			return ""
		}
		if message := output.Text("error"); message != "" {
			limit := spec.ErrorLimit
			if limit <= 0 {
				limit = 280
			}
			return "**" + spec.ErrorLabel + " error:** " + text.Truncate(message, limit)
		}

		b := &Block{}
		args := ctx.ArgsFields()
		if spec.Body != nil {
			spec.Body(b, args, output)
		}
		for _, detail := range spec.Details {
			value := output.Text(detail.Field)
			if detail.MaxLen > 0 {
				value = text.Truncate(value, detail.MaxLen)
			}
			b.Line(detail.Label, value)
		}
		return b.String()
	}
}

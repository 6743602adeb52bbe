package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/chatpilot/toolview/internal/app"
)

type Options struct {
	NoColor bool
	Out     io.Writer
}

type Renderer struct {
	out     io.Writer
	isTTY   bool
	noColor bool
	styles  styles
}

type styles struct {
	info    lipgloss.Style
	ok      lipgloss.Style
	warn    lipgloss.Style
	error   lipgloss.Style
	label   lipgloss.Style
	stage   lipgloss.Style
	summary lipgloss.Style
	bold    lipgloss.Style
	italic  lipgloss.Style
	link    lipgloss.Style
}

func NewRenderer(opts Options) *Renderer {
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	isTTY := term.IsTerminal(int(os.Stdout.Fd()))
	profile := termenv.EnvColorProfile()
	if opts.NoColor || !isTTY {
		profile = termenv.Ascii
	}
	lipgloss.SetColorProfile(profile)

	return &Renderer{
		out:     out,
		isTTY:   isTTY,
		noColor: opts.NoColor || profile == termenv.Ascii,
		styles: styles{
			info:    lipgloss.NewStyle().Foreground(lipgloss.Color("69")),
			ok:      lipgloss.NewStyle().Foreground(lipgloss.Color("34")).Bold(true),
			warn:    lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Bold(true),
			error:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
			label:   lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			stage:   lipgloss.NewStyle().Foreground(lipgloss.Color("105")).Bold(true),
			summary: lipgloss.NewStyle().Bold(true),
			bold:    lipgloss.NewStyle().Bold(true),
			italic:  lipgloss.NewStyle().Italic(true),
			link:    lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Underline(true),
		},
	}
}

func (r *Renderer) Info(message string) {
	r.println(r.styles.info.Render(message))
}

func (r *Renderer) Warn(message string) {
	r.println(r.styles.warn.Render(message))
}

// Stage prints one renderer stage of a preview: a highlighted stage name
// followed by the terminal-styled markdown content.
func (r *Renderer) Stage(name, content string) {
	header := r.styles.stage.Render(name)
	if strings.TrimSpace(content) == "" {
		r.println(header + " " + r.styles.label.Render("(empty)"))
		return
	}
	r.println(header)
	r.println(r.Markdown(content))
}

// Tool prints one registered renderer row for list output.
func (r *Renderer) Tool(pluginID, toolName string) {
	r.println(r.styles.stage.Render(padLabel(pluginID, 16)) + " " + toolName)
}

func (r *Renderer) Status(kind app.StatusKind, id, archive string) {
	style := r.styles.label
	switch kind {
	case app.StatusOK:
		style = r.styles.ok
	case app.StatusMissing:
		style = r.styles.error
	case app.StatusStale:
		style = r.styles.warn
	}
	r.println(fmt.Sprintf("%s %s -> %s", style.Render(string(kind)), id, archive))
}

func (r *Renderer) StatusSummary(ok, stale, missing int) {
	msg := fmt.Sprintf("summary: %d ok, %d stale, %d missing", ok, stale, missing)
	r.println(r.styles.summary.Render(msg))
}

func (r *Renderer) Packed(id, archive string) {
	r.println(r.styles.ok.Render("packed") + " " + id + " -> " + archive)
}

func (r *Renderer) Skipped(id string) {
	r.println(r.styles.label.Render("up to date") + " " + id)
}

func (r *Renderer) PackSummary(packed, skipped int, index string) {
	msg := fmt.Sprintf("packed %d plugins, %d up to date, index %s", packed, skipped, index)
	r.println(r.styles.summary.Render(msg))
}

func (r *Renderer) Progress(label string, total int) app.ProgressReporter {
	if total <= 0 {
		return noopProgress{}
	}
	return &progressReporter{
		out:     r.out,
		render:  r,
		total:   total,
		label:   label,
		enabled: r.isTTY,
		model: progress.New(
			progress.WithWidth(28),
			progress.WithDefaultGradient(),
		),
	}
}

func (r *Renderer) println(message string) {
	if strings.TrimSpace(message) == "" {
		return
	}
	fmt.Fprintln(r.out, message)
}

// padLabel right-pads label to width display cells, truncating with an
// ellipsis when it is too long.
func padLabel(label string, width int) string {
	truncated := runewidth.Truncate(label, width, "…")
	return truncated + strings.Repeat(" ", width-runewidth.StringWidth(truncated))
}

type progressReporter struct {
	out     io.Writer
	render  *Renderer
	model   progress.Model
	total   int
	current int
	label   string
	enabled bool
}

func (p *progressReporter) Increment(label string) {
	if label != "" {
		p.label = label
	}
	p.current++
	p.renderLine()
}

func (p *progressReporter) Done() {
	if !p.enabled {
		return
	}
	p.current = p.total
	p.renderLine()
}

func (p *progressReporter) renderLine() {
	if !p.enabled {
		line := fmt.Sprintf("%d/%d %s", p.current, p.total, p.label)
		p.render.Info(line)
		return
	}
	percent := float64(p.current) / float64(p.total)
	bar := p.model.ViewAs(percent)
	line := fmt.Sprintf("%s %d/%d %s", bar, p.current, p.total, runewidth.Truncate(p.label, 64, "…"))
	fmt.Fprintln(p.out, line)
}

type noopProgress struct{}

func (n noopProgress) Increment(string) {}
func (n noopProgress) Done()            {}

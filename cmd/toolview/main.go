package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/chatpilot/toolview/internal/app"
	"github.com/chatpilot/toolview/internal/ui"
)

type CLI struct {
	NoColor bool       `help:"Disable color output."`
	Path    string     `help:"Run as if in this directory."`
	Preview PreviewCmd `cmd:"" help:"Render a recorded tool payload through its renderer."`
	List    ListCmd    `cmd:"" help:"List registered tool renderers."`
	Pack    PackCmd    `cmd:"" help:"Build plugin archives and the distribution index."`
	Status  StatusCmd  `cmd:"" help:"Report missing or stale plugin archives."`
	Init    InitCmd    `cmd:"" help:"Scaffold a new plugin directory."`
}

type PreviewCmd struct {
	Payload string `arg:"" help:"JSON payload file, or - for stdin."`
	Check   bool   `help:"Lint the rendered markdown for unsafe links."`
}

type ListCmd struct{}

type PackCmd struct {
	Force  bool `help:"Repack even if up to date."`
	DryRun bool `help:"Print actions without writing archives."`
}

type StatusCmd struct{}

type InitCmd struct {
	ID string `arg:"" help:"Plugin id (lowercase letters, digits, dashes)."`
}

type Context struct {
	Root     string
	Reporter app.Reporter
}

func (c *PreviewCmd) Run(ctx *Context) error {
	return app.Preview(app.PreviewOptions{
		Payload:  c.Payload,
		Check:    c.Check,
		Reporter: ctx.Reporter,
	})
}

func (c *ListCmd) Run(ctx *Context) error {
	return app.List(app.ListOptions{Reporter: ctx.Reporter})
}

func (c *PackCmd) Run(ctx *Context) error {
	return app.Pack(ctx.Root, app.PackOptions{
		Force:    c.Force,
		DryRun:   c.DryRun,
		Reporter: ctx.Reporter,
	})
}

func (c *StatusCmd) Run(ctx *Context) error {
	return app.Status(ctx.Root, app.StatusOptions{Reporter: ctx.Reporter})
}

func (c *InitCmd) Run(ctx *Context) error {
	return app.Init(ctx.Root, app.InitOptions{ID: c.ID, Reporter: ctx.Reporter})
}

func main() {
	var cli CLI
	parser := kong.Must(&cli,
		kong.Name("toolview"),
		kong.Description("Render and package chat tool-call plugins."),
		kong.UsageOnError(),
	)
	ctx, err := parser.Parse(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	cwd, err := os.Getwd()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	baseDir, err := resolveBaseDir(cwd, cli.Path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	root := app.FindRoot(baseDir)
	noColor := cli.NoColor || os.Getenv("NO_COLOR") != ""
	reporter := ui.NewRenderer(ui.Options{NoColor: noColor, Out: os.Stdout})

	if err := ctx.Run(&Context{Root: root, Reporter: reporter}); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func resolveBaseDir(cwd, override string) (string, error) {
	if strings.TrimSpace(override) == "" {
		return cwd, nil
	}
	path := override
	if !filepath.IsAbs(path) {
		path = filepath.Join(cwd, path)
	}
	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	if !info.IsDir() {
		path = filepath.Dir(path)
	}
	return path, nil
}

package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/chatpilot/toolview/internal/config"
	"github.com/chatpilot/toolview/internal/manifest"
	"github.com/chatpilot/toolview/internal/plugins"
)

type InitOptions struct {
	ID       string
	Reporter Reporter
}

// Init scaffolds a new plugin directory: the user picks which tool names the
// plugin declares, and a plugin.yaml is written under the configured plugins
// dir. A toolview.toml is created at root when missing.
func Init(root string, opts InitOptions) error {
	reporter := ensureReporter(opts.Reporter)
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return errors.New("init requires an interactive terminal")
	}

	id := strings.TrimSpace(opts.ID)
	if id == "" {
		return errors.New("a plugin id is required")
	}
	probe := manifest.Manifest{ID: id, Version: "0.1.0"}
	if err := probe.Validate(); err != nil {
		return err
	}

	cfg, err := config.Load(root)
	if err != nil {
		return err
	}

	pluginDir := filepath.Join(root, cfg.Plugins.Dir, id)
	manifestPath := filepath.Join(pluginDir, manifest.FileName)
	if _, err := os.Stat(manifestPath); err == nil {
		return fmt.Errorf("%s already exists", manifestPath)
	} else if !os.IsNotExist(err) {
		return err
	}

	tools, err := promptTools()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(pluginDir, 0o755); err != nil {
		return err
	}
	if err := manifest.Write(pluginDir, manifest.Manifest{
		ID:      id,
		Name:    id,
		Version: "0.1.0",
		Tools:   tools,
	}); err != nil {
		return err
	}
	reporter.Info("created " + filepath.Join(cfg.Plugins.Dir, id, manifest.FileName))

	configPath := filepath.Join(root, config.FileName)
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := os.WriteFile(configPath, []byte(defaultConfigTemplate(cfg)), 0o644); err != nil {
			return err
		}
		reporter.Info("created " + config.FileName)
	} else if err != nil {
		return err
	}

	ignoreChanged, err := ensureLine(filepath.Join(root, ".gitignore"), "/"+cfg.Dist.Dir)
	if err != nil {
		return err
	}
	if ignoreChanged {
		reporter.Info("updated .gitignore")
	}

	reporter.Info("next steps:")
	reporter.Info("1. Add the plugin sources next to " + manifest.FileName + ".")
	reporter.Info("2. Run `toolview preview` against a recorded tool payload.")
	reporter.Info("3. Run `toolview pack` to build the distribution archive.")
	return nil
}

func defaultConfigTemplate(cfg config.Config) string {
	var b strings.Builder
	b.WriteString("[plugins]\n")
	b.WriteString(fmt.Sprintf("dir = %q\n", cfg.Plugins.Dir))
	b.WriteString("exclude = [")
	for i, pattern := range cfg.Plugins.Exclude {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(fmt.Sprintf("%q", pattern))
	}
	b.WriteString("]\n\n")
	b.WriteString("[dist]\n")
	b.WriteString(fmt.Sprintf("dir = %q\n", cfg.Dist.Dir))
	b.WriteString(fmt.Sprintf("index = %q\n", cfg.Dist.Index))
	return b.String()
}

func ensureLine(path, line string) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return true, os.WriteFile(path, []byte(line+"\n"), 0o644)
		}
		return false, err
	}

	content := strings.ReplaceAll(string(data), "\r\n", "\n")
	for _, existing := range strings.Split(content, "\n") {
		if strings.TrimSpace(existing) == strings.TrimSpace(line) {
			return false, nil
		}
	}

	if !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	content += line + "\n"
	return true, os.WriteFile(path, []byte(content), 0o644)
}

func promptTools() ([]string, error) {
	model := newPickModel(toolItems(),
		"Tool names",
		"Type to filter | up/down to move | space to select | enter to confirm")
	program := tea.NewProgram(model)
	result, err := program.Run()
	if err != nil {
		return nil, err
	}
	final, ok := result.(pickModel)
	if !ok {
		return nil, errors.New("unexpected selection result")
	}
	if final.aborted {
		return nil, errors.New("init canceled")
	}
	tools := final.picked()
	sort.Strings(tools)
	return tools, nil
}

type pickItem struct {
	Name  string
	Label string
}

func toolItems() []pickItem {
	var items []pickItem
	for _, family := range plugins.Families() {
		for _, bundle := range family.Bundles() {
			items = append(items, pickItem{
				Name:  bundle.ToolName,
				Label: bundle.ToolName + "  (" + family.PluginID + ")",
			})
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	return items
}

type pickModel struct {
	title    string
	hint     string
	items    []pickItem
	filtered []int
	filter   string
	cursor   int
	selected map[string]bool
	errMsg   string
	aborted  bool
	styles   pickStyles
}

func newPickModel(items []pickItem, title, hint string) pickModel {
	model := pickModel{
		title:    title,
		hint:     hint,
		items:    items,
		filtered: make([]int, 0, len(items)),
		selected: map[string]bool{},
		styles:   defaultPickStyles(),
	}
	for i := range items {
		model.filtered = append(model.filtered, i)
	}
	return model
}

func (m pickModel) Init() tea.Cmd {
	return nil
}

func (m pickModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		m.aborted = true
		return m, tea.Quit
	case tea.KeyEnter:
		if len(m.selected) == 0 {
			m.errMsg = "Select at least one tool to continue."
			return m, nil
		}
		return m, tea.Quit
	case tea.KeySpace:
		m.toggle()
		return m, nil
	case tea.KeyUp:
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case tea.KeyDown:
		if m.cursor < len(m.filtered)-1 {
			m.cursor++
		}
		return m, nil
	case tea.KeyBackspace, tea.KeyCtrlH:
		if m.filter != "" {
			m.filter = m.filter[:len(m.filter)-1]
			m.applyFilter()
		}
		return m, nil
	case tea.KeyCtrlU:
		if m.filter != "" {
			m.filter = ""
			m.applyFilter()
		}
		return m, nil
	case tea.KeyRunes:
		if len(key.Runes) > 0 {
			m.filter += string(key.Runes)
			m.applyFilter()
		}
		return m, nil
	}
	return m, nil
}

func (m pickModel) View() string {
	var b strings.Builder
	b.WriteString(m.styles.title.Render(m.title))
	b.WriteString("\n")
	b.WriteString(m.styles.label.Render("Filter: "))
	if m.filter == "" {
		b.WriteString(m.styles.muted.Render("type to filter"))
	} else {
		b.WriteString(m.styles.value.Render(m.filter))
	}
	b.WriteString(m.styles.muted.Render(fmt.Sprintf(" (%d/%d)", len(m.filtered), len(m.items))))
	b.WriteString("\n\n")

	if len(m.filtered) == 0 {
		b.WriteString(m.styles.muted.Render("No matches."))
		b.WriteString("\n")
	}
	for i, idx := range m.filtered {
		item := m.items[idx]
		cursor := " "
		itemStyle := m.styles.item
		if i == m.cursor {
			cursor = ">"
			itemStyle = m.styles.active
		}
		mark := " "
		markStyle := m.styles.muted
		if m.selected[item.Name] {
			mark = "x"
			markStyle = m.styles.mark
		}
		b.WriteString(fmt.Sprintf("%s [%s] %s\n",
			m.styles.cursor.Render(cursor), markStyle.Render(mark), itemStyle.Render(item.Label)))
	}

	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(m.styles.error.Render(m.errMsg))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.styles.muted.Render(m.hint))
	return b.String()
}

func (m *pickModel) applyFilter() {
	filter := strings.ToLower(strings.TrimSpace(m.filter))
	m.filtered = m.filtered[:0]
	for i, item := range m.items {
		if filter == "" || strings.Contains(strings.ToLower(item.Name), filter) {
			m.filtered = append(m.filtered, i)
		}
	}
	if m.cursor >= len(m.filtered) {
		m.cursor = len(m.filtered) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.errMsg = ""
}

func (m *pickModel) toggle() {
	if len(m.filtered) == 0 || m.cursor >= len(m.filtered) {
		return
	}
	name := m.items[m.filtered[m.cursor]].Name
	if m.selected[name] {
		delete(m.selected, name)
	} else {
		m.selected[name] = true
	}
	m.errMsg = ""
}

func (m pickModel) picked() []string {
	values := make([]string, 0, len(m.selected))
	for _, item := range m.items {
		if m.selected[item.Name] {
			values = append(values, item.Name)
		}
	}
	return values
}

type pickStyles struct {
	title  lipgloss.Style
	label  lipgloss.Style
	value  lipgloss.Style
	item   lipgloss.Style
	active lipgloss.Style
	cursor lipgloss.Style
	mark   lipgloss.Style
	muted  lipgloss.Style
	error  lipgloss.Style
}

func defaultPickStyles() pickStyles {
	return pickStyles{
		title:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("81")),
		label:  lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		value:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252")),
		item:   lipgloss.NewStyle().Foreground(lipgloss.Color("251")),
		active: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")),
		cursor: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214")),
		mark:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42")),
		muted:  lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		error:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196")),
	}
}

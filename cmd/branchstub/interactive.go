package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/unbound-force/branchstub/internal/branch"
	"github.com/unbound-force/branchstub/internal/generate"
	"github.com/unbound-force/branchstub/internal/render"
)

// keyMap defines keybindings for the interactive TUI.
type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Quit     key.Binding
	Help     key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Quit, k.Help}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PageUp, k.PageDown},
		{k.Quit, k.Help},
	}
}

var defaultKeyMap = keyMap{
	Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("^/k", "up")),
	Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("v/j", "down")),
	PageUp:   key.NewBinding(key.WithKeys("pgup", "ctrl+u"), key.WithHelp("pgup", "page up")),
	PageDown: key.NewBinding(key.WithKeys("pgdown", "ctrl+d"), key.WithHelp("pgdn", "page down")),
	Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c", "esc"), key.WithHelp("q", "quit")),
	Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
}

// Styles for the TUI.
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("63")).
			MarginBottom(1)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	tuiHeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("63"))

	tuiBorderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("63"))

	stubbedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	skippedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// statusStubbed marks a function that received stubs.
const statusStubbed = "stubbed"

// functionStatuses reports what the run did with each of fns, in order.
func functionStatuses(fns []branch.Func, opts render.Options) []string {
	out := render.Reasons(fns, opts)
	for i, reason := range out {
		if reason == "" {
			out[i] = statusStubbed
		}
	}
	return out
}

// generateModel is the Bubble Tea model for browsing a generate run.
type generateModel struct {
	report   *generate.Report
	viewport viewport.Model
	help     help.Model
	keys     keyMap
	ready    bool
	content  string
}

func newGenerateModel(rpt *generate.Report, opts render.Options) generateModel {
	return generateModel{
		report:  rpt,
		help:    help.New(),
		keys:    defaultKeyMap,
		content: renderGenerateContent(rpt, opts),
	}
}

func renderGenerateContent(rpt *generate.Report, opts render.Options) string {
	var sb strings.Builder
	if rpt == nil {
		rpt = &generate.Report{}
	}

	title := fmt.Sprintf("branchstub: %d file(s), %d test(s) appended",
		len(rpt.Files), rpt.Stats.Rendered.Tests)
	if rpt.Dry {
		title += " (dry run)"
	}
	sb.WriteString(titleStyle.Render(title))
	sb.WriteString("\n\n")

	for _, f := range rpt.Files {
		sb.WriteString(tuiHeaderStyle.Render(fmt.Sprintf("=== %s ===", f.Path)))
		sb.WriteString("\n")
		sb.WriteString(statusStyle.Render(fmt.Sprintf("    %s -> %s", f.Language, f.TestPath)))
		sb.WriteString("\n")

		if len(f.Funcs) == 0 {
			sb.WriteString(statusStyle.Render("    No functions found."))
			sb.WriteString("\n\n")
			continue
		}

		statuses := functionStatuses(f.Funcs, opts)
		rows := make([][]string, 0, len(f.Funcs))
		for i, fn := range f.Funcs {
			rows = append(rows, []string{
				fn.Name,
				string(fn.Kind),
				string(fn.Visibility),
				strconv.Itoa(fn.Forest.LeafCount()),
				statuses[i],
			})
		}

		t := table.New().
			Border(lipgloss.RoundedBorder()).
			BorderStyle(tuiBorderStyle).
			StyleFunc(func(row, col int) lipgloss.Style {
				if row == table.HeaderRow {
					return tuiHeaderStyle
				}
				if col == 4 && row >= 0 && row < len(rows) {
					if rows[row][4] == statusStubbed {
						return stubbedStyle
					}
					return skippedStyle
				}
				return lipgloss.NewStyle()
			}).
			Headers("FUNCTION", "KIND", "VISIBILITY", "LEAVES", "STATUS").
			Rows(rows...)

		sb.WriteString(t.String())
		sb.WriteString("\n")

		if f.Appended != "" {
			sb.WriteString(statusStyle.Render(f.Appended))
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

func (m generateModel) Init() tea.Cmd {
	return nil
}

func (m generateModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		footerHeight := 2

		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-footerHeight)
			m.viewport.SetContent(m.content)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - footerHeight
		}

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		}
	}

	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m generateModel) View() string {
	if !m.ready {
		return "Initializing..."
	}

	footer := statusStyle.Render(
		fmt.Sprintf(" %3.f%% ", m.viewport.ScrollPercent()*100)) +
		" " + m.help.View(m.keys)

	return m.viewport.View() + "\n" + footer
}

// runInteractiveGenerate launches the Bubble Tea TUI for browsing the
// result of a generate run.
func runInteractiveGenerate(rpt *generate.Report, opts render.Options) error {
	model := newGenerateModel(rpt, opts)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}

package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/studiowebux/lifeweeks/internal/types"
)

var errPickCancelled = errors.New("selection cancelled")

var (
	pickerTitleStyle   = lipgloss.NewStyle().MarginLeft(2).Bold(true)
	choiceStyle        = lipgloss.NewStyle().PaddingLeft(4)
	currentChoiceStyle = lipgloss.NewStyle().PaddingLeft(2).Foreground(lipgloss.Color("170"))
	pickerHelpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).MarginTop(1).MarginLeft(2)
)

// Swatch colors roughly matching each theme's "elapsed" cell
var themeSwatch = map[types.Theme]lipgloss.Color{
	types.ThemeDark:     lipgloss.Color("#8a8f98"),
	types.ThemeTerminal: lipgloss.Color("#33ff66"),
	types.ThemeMinimal:  lipgloss.Color("#222222"),
	types.ThemeSunset:   lipgloss.Color("#ff7e5f"),
}

// choice is one row of the picker
type choice struct {
	value   string
	detail  string
	swatch  lipgloss.Color
	current bool
}

func (c choice) FilterValue() string { return c.value + " " + c.detail }

type pickerModel struct {
	list     list.Model
	picked   string
	finished bool
}

func (m pickerModel) Init() tea.Cmd { return nil }

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetWidth(msg.Width)
		return m, nil

	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.finished = true
			return m, tea.Quit
		case "enter":
			if c, ok := m.list.SelectedItem().(choice); ok {
				m.picked = c.value
			}
			m.finished = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m pickerModel) View() string {
	if m.finished {
		return ""
	}
	return m.list.View() + "\n" + pickerHelpStyle.Render("↑/↓ move • / filter • enter pick • esc cancel")
}

// choicesFor returns the fixed values a key accepts, nil for free-form keys
func choicesFor(key string) []choice {
	switch strings.ToLower(key) {
	case "theme":
		out := make([]choice, 0, len(types.AllThemes))
		for _, t := range types.AllThemes {
			out = append(out, choice{value: string(t), swatch: themeSwatch[t]})
		}
		return out
	case "mode":
		out := make([]choice, 0, len(types.AllModes))
		for _, m := range types.AllModes {
			out = append(out, choice{value: string(m), detail: m.Label()})
		}
		return out
	}
	return nil
}

// PromptForValue lets the user pick a value for theme or mode from a list.
// Other keys, and non-interactive stdin, require the value on the command line.
func PromptForValue(key, current string) (string, error) {
	choices := choicesFor(key)
	if choices == nil {
		return "", fmt.Errorf("a value is required for %s", key)
	}
	if !isInteractive() {
		return "", fmt.Errorf("a value is required for %s when not running in a terminal", key)
	}

	items := make([]list.Item, len(choices))
	cursor := 0
	for i, c := range choices {
		if c.value == current {
			c.current = true
			cursor = i
		}
		items[i] = c
	}

	l := list.New(items, choiceDelegate{}, 60, len(items)+6)
	l.Title = "Select " + key
	l.Styles.Title = pickerTitleStyle
	l.SetShowStatusBar(false)
	l.Select(cursor)

	final, err := tea.NewProgram(pickerModel{list: l}).Run()
	if err != nil {
		return "", fmt.Errorf("failed to run picker: %w", err)
	}
	if picked := final.(pickerModel).picked; picked != "" {
		return picked, nil
	}
	return "", errPickCancelled
}

type choiceDelegate struct{}

func (choiceDelegate) Height() int                         { return 1 }
func (choiceDelegate) Spacing() int                        { return 0 }
func (choiceDelegate) Update(tea.Msg, *list.Model) tea.Cmd { return nil }

func (choiceDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	c, ok := item.(choice)
	if !ok {
		return
	}

	line := c.value
	if c.swatch != "" {
		line = lipgloss.NewStyle().Foreground(c.swatch).Render("■ ") + line
	}
	if c.detail != "" {
		line += "  " + c.detail
	}
	if c.current {
		line += " (current)"
	}

	if index == m.Index() {
		fmt.Fprint(w, currentChoiceStyle.Render("> "+line))
		return
	}
	fmt.Fprint(w, choiceStyle.Render(line))
}

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/studiowebux/lifeweeks/internal/keybinds"
	"github.com/studiowebux/lifeweeks/internal/presenter"
	"github.com/studiowebux/lifeweeks/internal/types"
)

// Adaptive color definitions for light/dark terminal support
var (
	colorGreen  = lipgloss.AdaptiveColor{Light: "#006400", Dark: "#00ff00"}
	colorRed    = lipgloss.AdaptiveColor{Light: "#8b0000", Dark: "#ff0000"}
	colorYellow = lipgloss.AdaptiveColor{Light: "#b8860b", Dark: "#ffff00"}
	colorBlue   = lipgloss.AdaptiveColor{Light: "#00008b", Dark: "#5f87ff"}
	colorGray   = lipgloss.AdaptiveColor{Light: "#555555", Dark: "#888888"}
	colorCyan   = lipgloss.AdaptiveColor{Light: "#008b8b", Dark: "#00ffff"}
)

// Style definitions
var (
	styleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorCyan)

	styleSelected = lipgloss.NewStyle().
			Background(lipgloss.AdaptiveColor{Light: "#d3d3d3", Dark: "#3a3a3a"}).
			Foreground(lipgloss.AdaptiveColor{Light: "#000000", Dark: "#ffffff"})

	styleSuccess = lipgloss.NewStyle().
			Foreground(colorGreen)

	styleError = lipgloss.NewStyle().
			Foreground(colorRed)

	styleWarning = lipgloss.NewStyle().
			Foreground(colorYellow)

	styleInfo = lipgloss.NewStyle().
			Foreground(colorBlue)

	styleSubtle = lipgloss.NewStyle().
			Foreground(colorGray)

	styleLabel = lipgloss.NewStyle().
			Width(FieldLabelWidth).
			Foreground(colorGray)

	styleStat = lipgloss.NewStyle().
			Bold(true)

	styleButton = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorGreen)

	styleButtonDisabled = styleButton.
				BorderForeground(colorGray).
				Foreground(colorGray)
)

// View renders the current screen
func (m Model) View() string {
	switch m.screen {
	case ScreenActivity:
		return m.renderActivity()
	case ScreenHelp:
		return m.renderHelp()
	default:
		return m.renderMain()
	}
}

func (m Model) size() (int, int) {
	w, h := m.width, m.height
	if w == 0 {
		w = DefaultWidth
	}
	if h == 0 {
		h = DefaultHeight
	}
	return w, h
}

// thumbnailSize returns the cell budget for the inline preview
func (m Model) thumbnailSize() (int, int) {
	w, h := m.size()
	cols := min(ThumbnailMaxCols, max(ThumbnailMinCols, w-4))
	rows := min(ThumbnailMaxRows, max(ThumbnailMinRows, h-MainChromeLines))
	return cols, rows
}

func (m Model) renderMain() string {
	width, _ := m.size()

	var b strings.Builder

	title := styleTitle.Render("Life in Weeks")
	if m.version != "" {
		title += " " + styleSubtle.Render(m.version)
	}
	if !m.configLoaded {
		title += " " + styleSubtle.Render("(loading settings)")
	}
	b.WriteString(title + "\n\n")

	b.WriteString(renderSelector("Mode", types.AllModes, m.view.Mode(), func(v types.Mode) string { return v.Label() }))
	b.WriteString("\n")
	b.WriteString(renderSelector("Theme", types.AllThemes, m.view.Theme(), func(v types.Theme) string { return string(v) }))
	b.WriteString("\n\n")

	b.WriteString(m.renderForm())
	b.WriteString("\n")
	b.WriteString(m.renderSchedule())
	b.WriteString("\n\n")

	b.WriteString(m.renderPreview())
	b.WriteString("\n\n")

	b.WriteString(m.renderButtons())
	b.WriteString("\n")
	b.WriteString(m.renderNotification())
	b.WriteString("\n")
	b.WriteString(m.renderStatusBar(width))

	return b.String()
}

// renderSelector draws a row of options with the current one highlighted
func renderSelector[T comparable](label string, all []T, current T, name func(T) string) string {
	parts := make([]string, 0, len(all))
	for _, v := range all {
		parts = append(parts, selectorItem(name(v), v == current))
	}
	return styleLabel.Render(label) + strings.Join(parts, " ")
}

func selectorItem(name string, selected bool) string {
	if selected {
		return styleSelected.Render(" " + name + " ")
	}
	return styleSubtle.Render(" " + name + " ")
}

var fieldLabels = map[field]string{
	fieldDOB:      "Birth date",
	fieldLifespan: "Lifespan",
	fieldMonths:   "Months",
	fieldWidth:    "Width",
	fieldHeight:   "Height",
}

func (m Model) renderForm() string {
	var lines []string
	for _, f := range m.visibleFields() {
		label := fieldLabels[f]
		if f == m.focus {
			label = "> " + label
		}
		lines = append(lines, styleLabel.Render(label)+m.inputs[f].View())
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderSchedule() string {
	box := "[ ]"
	if m.scheduleEnabled {
		box = "[x]"
	}
	line := styleLabel.Render("Schedule") + box + " Weekly update"
	if m.tracker.InFlight(types.ActionSchedule) {
		line += " " + styleWarning.Render("updating...")
	}
	return line
}

func (m Model) renderPreview() string {
	if m.preview == nil {
		hint := m.keys.GetBindingString(keybinds.ContextNormal, keybinds.ActionGenerate)
		return styleSubtle.Render(fmt.Sprintf("No preview yet. Press %s to generate.", hint))
	}

	p := m.preview
	var b strings.Builder
	b.WriteString(styleTitle.Render(p.Title) + "\n")
	if p.Subtitle != "" {
		b.WriteString(styleSubtle.Render(p.Subtitle) + "\n")
	}
	if m.thumbnail != "" {
		b.WriteString(m.thumbnail + "\n")
	}
	b.WriteString(fmt.Sprintf("Elapsed %s   Remaining %s   Complete %s",
		styleStat.Render(p.Elapsed),
		styleStat.Render(p.Remaining),
		styleStat.Render(p.Percent)))
	return b.String()
}

func (m Model) renderButtons() string {
	generate := "Generate preview"
	if m.tracker.InFlight(types.ActionPreview) {
		generate = "Generating..."
	}

	apply := "Set wallpaper"
	applyStyle := styleButton
	switch {
	case !m.view.HasPreview():
		applyStyle = styleButtonDisabled
	case m.tracker.InFlight(types.ActionApply):
		apply = "Applying..."
		applyStyle = styleButtonDisabled
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		styleButton.Render(generate),
		" ",
		applyStyle.Render(apply),
	)
}

func (m Model) renderNotification() string {
	note, ok := m.notifier.Current()
	if !ok {
		return ""
	}
	switch note.Kind {
	case presenter.KindSuccess:
		return styleSuccess.Render(note.Text)
	case presenter.KindError:
		return styleError.Render(note.Text)
	default:
		return styleInfo.Render(note.Text)
	}
}

func (m Model) renderStatusBar(width int) string {
	hints := []struct {
		action keybinds.Action
		label  string
	}{
		{keybinds.ActionGenerate, "preview"},
		{keybinds.ActionApply, "apply"},
		{keybinds.ActionNextMode, "mode"},
		{keybinds.ActionNextTheme, "theme"},
		{keybinds.ActionFocusForm, "edit"},
		{keybinds.ActionToggleSchedule, "schedule"},
		{keybinds.ActionOpenHelp, "help"},
		{keybinds.ActionQuit, "quit"},
	}

	ctx := m.keyContext()
	var parts []string
	for _, h := range hints {
		keys := m.keys.GetBinding(ctx, h.action)
		if len(keys) == 0 {
			continue
		}
		parts = append(parts, keys[0]+" "+h.label)
	}
	if ctx == keybinds.ContextForm {
		parts = append(parts, m.keys.GetBindingString(ctx, keybinds.ActionBlurField)+" done")
	}

	bar := strings.Join(parts, " | ")
	if m.updateAvailable {
		bar += " | " + styleWarning.Render("update "+m.latestVersion)
	}
	return styleSubtle.MaxWidth(width).Render(bar)
}

func (m Model) renderActivity() string {
	_, height := m.size()

	var b strings.Builder
	b.WriteString(styleTitle.Render("Activity") + "\n\n")

	if len(m.activity) == 0 {
		b.WriteString(styleSubtle.Render("No activity recorded yet.") + "\n")
	}

	visible := max(1, height-ActivityChromeLines)
	end := min(len(m.activity), m.activityOffset+visible)
	for _, e := range m.activity[m.activityOffset:end] {
		b.WriteString(renderActivityEntry(e) + "\n")
	}

	b.WriteString("\n" + styleSubtle.Render(fmt.Sprintf("%s close | %s clear",
		m.keys.GetBindingString(keybinds.ContextActivity, keybinds.ActionCloseView),
		m.keys.GetBindingString(keybinds.ContextActivity, keybinds.ActionClearActivity))))
	b.WriteString("\n" + m.renderNotification())
	return b.String()
}

func renderActivityEntry(e types.ActivityEntry) string {
	mark := styleSuccess.Render("ok  ")
	if !e.Success {
		mark = styleError.Render("fail")
	}
	scope := string(e.Action)
	if e.Mode != "" {
		scope += " " + e.Mode.Label()
	}
	if e.Theme != "" {
		scope += "/" + string(e.Theme)
	}
	return fmt.Sprintf("%s %s %-28s %6dms %s",
		styleSubtle.Render(e.Timestamp.Format("2006-01-02 15:04")),
		mark,
		scope,
		e.Duration.Milliseconds(),
		e.Message)
}

func (m Model) renderHelp() string {
	var b strings.Builder
	b.WriteString(styleTitle.Render("Keybindings") + "\n")

	sections := []struct {
		title   string
		context keybinds.Context
		actions []keybinds.Action
	}{
		{"Main", keybinds.ContextNormal, []keybinds.Action{
			keybinds.ActionGenerate, keybinds.ActionApply, keybinds.ActionToggleSchedule,
			keybinds.ActionSaveSettings, keybinds.ActionNextMode, keybinds.ActionPrevMode,
			keybinds.ActionNextTheme, keybinds.ActionPrevTheme, keybinds.ActionFocusForm,
			keybinds.ActionCopySummary, keybinds.ActionOpenActivity, keybinds.ActionOpenHelp,
			keybinds.ActionQuit, keybinds.ActionQuitForce,
		}},
		{"Fields", keybinds.ContextForm, []keybinds.Action{
			keybinds.ActionNextField, keybinds.ActionPrevField, keybinds.ActionBlurField,
			keybinds.ActionGenerate,
		}},
		{"Activity", keybinds.ContextActivity, []keybinds.Action{
			keybinds.ActionNavigateUp, keybinds.ActionNavigateDown,
			keybinds.ActionClearActivity, keybinds.ActionCloseView,
		}},
	}

	for _, s := range sections {
		b.WriteString("\n" + styleWarning.Render(s.title) + "\n")
		for _, action := range s.actions {
			info := keybinds.GetActionInfo(action)
			b.WriteString(fmt.Sprintf("  %-18s %s\n",
				m.keys.GetBindingString(s.context, action),
				info.Description))
		}
	}

	if m.updateAvailable {
		b.WriteString("\n" + styleWarning.Render(fmt.Sprintf("Version %s is available: %s", m.latestVersion, m.updateURL)) + "\n")
	}

	b.WriteString("\n" + styleSubtle.Render(m.keys.GetBindingString(keybinds.ContextHelp, keybinds.ActionCloseView)+" close"))
	return b.String()
}

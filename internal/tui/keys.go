package tui

import (
	"slices"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/studiowebux/lifeweeks/internal/keybinds"
	"github.com/studiowebux/lifeweeks/internal/presenter"
	"github.com/studiowebux/lifeweeks/internal/types"
)

// keyContext maps the current screen and focus to a keybind context
func (m *Model) keyContext() keybinds.Context {
	switch {
	case m.screen == ScreenActivity:
		return keybinds.ContextActivity
	case m.screen == ScreenHelp:
		return keybinds.ContextHelp
	case m.focus != noFocus:
		return keybinds.ContextForm
	default:
		return keybinds.ContextNormal
	}
}

// handleKeyPress routes a key through the registry. Unbound keys in the form
// context are typed into the focused field.
func (m *Model) handleKeyPress(msg tea.KeyMsg) tea.Cmd {
	ctx := m.keyContext()

	action, ok := m.keys.Match(ctx, msg.String())
	if !ok {
		if ctx == keybinds.ContextForm {
			before := m.inputs[m.focus].Value()
			var cmd tea.Cmd
			m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
			if m.inputs[m.focus].Value() != before {
				m.edits.fields[m.focus] = true
			}
			return cmd
		}
		return nil
	}

	return m.handleAction(action)
}

func (m *Model) handleAction(action keybinds.Action) tea.Cmd {
	switch action {
	case keybinds.ActionQuit, keybinds.ActionQuitForce:
		return tea.Quit

	// Backend actions
	case keybinds.ActionGenerate:
		return m.generatePreview()
	case keybinds.ActionApply:
		return m.applyWallpaper()
	case keybinds.ActionToggleSchedule:
		return m.toggleSchedule()
	case keybinds.ActionSaveSettings:
		return tea.Batch(m.persistSettings(), m.notify(presenter.KindInfo, "Saving settings as defaults"))

	// Selection
	case keybinds.ActionNextMode:
		m.view.NextMode()
		m.edits.selection = true
		m.ensureFocusVisible()
	case keybinds.ActionPrevMode:
		m.view.SelectMode(previous(types.AllModes, m.view.Mode()))
		m.edits.selection = true
		m.ensureFocusVisible()
	case keybinds.ActionNextTheme:
		m.view.NextTheme()
		m.edits.selection = true
	case keybinds.ActionPrevTheme:
		m.view.SelectTheme(previous(types.AllThemes, m.view.Theme()))
		m.edits.selection = true

	// Form
	case keybinds.ActionFocusForm:
		return m.focusField(m.visibleFields()[0])
	case keybinds.ActionNextField:
		return m.moveFocus(1)
	case keybinds.ActionPrevField:
		return m.moveFocus(-1)
	case keybinds.ActionBlurField:
		m.blur()

	// Views
	case keybinds.ActionCopySummary:
		return m.copySummary()
	case keybinds.ActionOpenActivity:
		if m.store == nil {
			return m.notify(presenter.KindInfo, "Activity log is disabled")
		}
		m.screen = ScreenActivity
		return m.loadActivity()
	case keybinds.ActionClearActivity:
		return m.clearActivity()
	case keybinds.ActionOpenHelp:
		m.screen = ScreenHelp
	case keybinds.ActionCloseView:
		m.screen = ScreenMain
	case keybinds.ActionNavigateUp:
		if m.activityOffset > 0 {
			m.activityOffset--
		}
	case keybinds.ActionNavigateDown:
		if m.activityOffset < len(m.activity)-1 {
			m.activityOffset++
		}
	}

	return nil
}

func (m *Model) focusField(f field) tea.Cmd {
	m.blur()
	m.focus = f
	return m.inputs[f].Focus()
}

func (m *Model) blur() {
	if m.focus != noFocus {
		m.inputs[m.focus].Blur()
	}
	m.focus = noFocus
}

// moveFocus steps through the visible fields, wrapping at both ends
func (m *Model) moveFocus(delta int) tea.Cmd {
	fields := m.visibleFields()
	idx := slices.Index(fields, m.focus)
	if idx == -1 {
		return m.focusField(fields[0])
	}
	next := (idx + delta + len(fields)) % len(fields)
	return m.focusField(fields[next])
}

// ensureFocusVisible drops focus from a field the current mode hides
func (m *Model) ensureFocusVisible() {
	if m.focus == noFocus {
		return
	}
	if !slices.Contains(m.visibleFields(), m.focus) {
		m.blur()
	}
}

func previous[T comparable](all []T, cur T) T {
	idx := slices.Index(all, cur)
	if idx <= 0 {
		return all[len(all)-1]
	}
	return all[idx-1]
}

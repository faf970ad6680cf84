/*
Package tui implements the interactive wallpaper controller.

# Architecture

The TUI follows the Bubble Tea framework's Model-Update-View pattern:
  - Model: selection, form fields, latest preview and notification
  - Update: processes key presses and backend results
  - View: renders the current screen

# Key Components

  - model.go: Core state, initialization and message dispatch
  - keys.go: Keyboard input handling and keybind routing
  - actions.go: Backend calls as tea.Cmd functions and their result handlers
  - render.go: View rendering for the main, activity and help screens

# Backend Calls

Every backend call runs as a tea.Cmd and reports back with a typed message.
A viewstate.Tracker numbers the calls per action:
  - Preview: each press starts a new call; only the latest result is shown
  - Apply and schedule toggle: ignored while a call is in flight
  - Persist: fire-and-forget, failures only reach the log

Each generate, apply and toggle ends in one notification that is dismissed
by a tea.Tick carrying its ID, so a newer notification is never hidden by an
older timer.

# Example Usage

	model := tui.New(tui.Options{
		Backend:  backend,
		Store:    historyManager,
		Logger:   logger,
		Keybinds: registry,
	})

	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return err
	}
*/
package tui

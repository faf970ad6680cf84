package tui

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/studiowebux/lifeweeks/internal/form"
	"github.com/studiowebux/lifeweeks/internal/logging"
	"github.com/studiowebux/lifeweeks/internal/presenter"
	"github.com/studiowebux/lifeweeks/internal/types"
	"github.com/studiowebux/lifeweeks/internal/version"
)

// fetchConfig loads the backend configuration
func (m *Model) fetchConfig() tea.Cmd {
	backend := m.backend
	return func() tea.Msg {
		cfg, err := backend.GetConfig(context.Background())
		return configLoadedMsg{cfg: cfg, err: err}
	}
}

func (m *Model) checkForUpdate() tea.Cmd {
	current := m.version
	return func() tea.Msg {
		info, err := version.CheckForUpdate(context.Background(), current)
		return versionCheckMsg{info: info, err: err}
	}
}

// generatePreview starts a preview call. A newer call supersedes any that
// are still running; their results are dropped when they arrive.
func (m *Model) generatePreview() tea.Cmd {
	req := form.BuildRequest(m.view.Mode(), m.view.Theme(), m.formValues())
	gen := m.tracker.Begin(types.ActionPreview)
	backend := m.backend
	logger := m.actionLogger(types.ActionPreview)

	return func() tea.Msg {
		logger.Debug("generating preview", "generation", gen, "mode", req.Mode, "theme", req.Theme)
		start := time.Now()
		resp, err := backend.GeneratePreview(context.Background(), req)
		return previewResultMsg{gen: gen, req: req, resp: resp, err: err, duration: time.Since(start)}
	}
}

func (m *Model) handlePreviewResult(msg previewResultMsg) tea.Cmd {
	if !m.tracker.Finish(types.ActionPreview, msg.gen) {
		m.logger.Debug("discarding superseded preview", "generation", msg.gen)
		return m.notifySuperseded()
	}

	entry := activityEntry(types.ActionPreview, msg.req, msg.duration)

	if msg.err != nil {
		m.logger.Warn("preview failed", "error", msg.err)
		entry.Message = msg.err.Error()
		return tea.Batch(m.notifyPreview(msg.gen, presenter.KindError, msg.err.Error()), m.recordActivity(entry))
	}

	view, err := presenter.Present(msg.resp)
	if err != nil {
		m.logger.Warn("invalid preview response", "error", err)
		entry.Message = err.Error()
		return tea.Batch(m.notifyPreview(msg.gen, presenter.KindError, err.Error()), m.recordActivity(entry))
	}

	m.preview = &view
	m.view.MarkPreviewed()
	m.edits.selection = true
	m.refreshThumbnail()

	entry.Success = true
	entry.Message = view.Summary()
	return tea.Batch(m.notifyPreview(msg.gen, presenter.KindSuccess, "Preview generated"), m.recordActivity(entry))
}

func (m *Model) notifyPreview(gen uint64, kind presenter.Kind, text string) tea.Cmd {
	m.previewNoteGen, m.previewNoteKind, m.previewNoteText = gen, kind, text
	return m.notify(kind, text)
}

// notifySuperseded ends a superseded preview call. While the newer call runs
// it says so; once the newer call is done its outcome is repeated, so the
// visible notification always describes the latest preview.
func (m *Model) notifySuperseded() tea.Cmd {
	if m.previewNoteGen != m.tracker.Latest(types.ActionPreview) {
		return m.notify(presenter.KindInfo, "Preview superseded by a newer request")
	}
	return m.notify(m.previewNoteKind, m.previewNoteText)
}

// applyWallpaper sets the wallpaper from a request rebuilt from the form.
// It is unavailable until a preview succeeded and while a call is running.
func (m *Model) applyWallpaper() tea.Cmd {
	if !m.view.HasPreview() {
		return m.notify(presenter.KindInfo, "Generate a preview first")
	}
	if m.tracker.InFlight(types.ActionApply) {
		return nil
	}

	req := form.BuildRequest(m.view.Mode(), m.view.Theme(), m.formValues())
	gen := m.tracker.Begin(types.ActionApply)
	backend := m.backend
	logger := m.actionLogger(types.ActionApply)

	return func() tea.Msg {
		logger.Info("setting wallpaper", "mode", req.Mode, "theme", req.Theme)
		start := time.Now()
		message, err := backend.SetWallpaper(context.Background(), req)
		return applyResultMsg{gen: gen, req: req, message: message, err: err, duration: time.Since(start)}
	}
}

func (m *Model) handleApplyResult(msg applyResultMsg) tea.Cmd {
	m.tracker.Finish(types.ActionApply, msg.gen)
	entry := activityEntry(types.ActionApply, msg.req, msg.duration)

	if msg.err != nil {
		m.logger.Warn("set wallpaper failed", "error", msg.err)
		entry.Message = msg.err.Error()
		return tea.Batch(m.notify(presenter.KindError, msg.err.Error()), m.recordActivity(entry))
	}

	text := msg.message
	if text == "" {
		text = "Wallpaper set"
	}
	entry.Success = true
	entry.Message = text

	// The applied settings become the new defaults
	return tea.Batch(m.notify(presenter.KindSuccess, text), m.persistSettings(), m.recordActivity(entry))
}

// toggleSchedule flips the switch right away and reverts it if the call fails
func (m *Model) toggleSchedule() tea.Cmd {
	if m.tracker.InFlight(types.ActionSchedule) {
		return nil
	}

	previous := m.scheduleEnabled
	enabled := !previous
	m.scheduleEnabled = enabled
	m.edits.schedule = true

	gen := m.tracker.Begin(types.ActionSchedule)
	backend := m.backend
	logger := m.actionLogger(types.ActionSchedule)

	return func() tea.Msg {
		logger.Info("toggling schedule", "enabled", enabled)
		start := time.Now()
		message, err := backend.ToggleSchedule(context.Background(), enabled)
		return scheduleResultMsg{
			gen:      gen,
			enabled:  enabled,
			previous: previous,
			message:  message,
			err:      err,
			duration: time.Since(start),
		}
	}
}

func (m *Model) handleScheduleResult(msg scheduleResultMsg) tea.Cmd {
	m.tracker.Finish(types.ActionSchedule, msg.gen)

	entry := types.ActivityEntry{
		Action:   types.ActionSchedule,
		Duration: msg.duration,
	}

	if msg.err != nil {
		m.logger.Warn("toggle schedule failed", "enabled", msg.enabled, "error", msg.err)
		m.scheduleEnabled = msg.previous
		entry.Message = msg.err.Error()
		return tea.Batch(m.notify(presenter.KindError, msg.err.Error()), m.recordActivity(entry))
	}

	text := msg.message
	if text == "" {
		text = fmt.Sprintf("Weekly update %s", onOff(msg.enabled))
	}
	entry.Success = true
	entry.Message = text
	return tea.Batch(m.notify(presenter.KindSuccess, text), m.recordActivity(entry))
}

// persistSettings saves the form as the backend defaults. Failures are
// logged and never shown.
func (m *Model) persistSettings() tea.Cmd {
	args := form.BuildSaveArgs(m.view.Mode(), m.view.Theme(), m.formValues())
	gen := m.tracker.Begin(types.ActionPersist)
	backend := m.backend
	logger := m.actionLogger(types.ActionPersist)

	return func() tea.Msg {
		logger.Debug("persisting settings", "generation", gen)
		err := backend.SaveConfig(context.Background(), args)
		return persistDoneMsg{gen: gen, err: err}
	}
}

func (m *Model) copySummary() tea.Cmd {
	if m.preview == nil {
		return m.notify(presenter.KindInfo, "Nothing to copy yet")
	}
	if err := m.copyToClipboard(m.preview.Summary()); err != nil {
		m.logger.Warn("clipboard write failed", "error", err)
		return m.notify(presenter.KindError, fmt.Sprintf("Failed to copy: %v", err))
	}
	return m.notify(presenter.KindSuccess, "Summary copied to clipboard")
}

func (m *Model) loadActivity() tea.Cmd {
	store := m.store
	if store == nil {
		return nil
	}
	return func() tea.Msg {
		entries, err := store.Recent(ActivityLimit)
		return activityLoadedMsg{entries: entries, err: err}
	}
}

func (m *Model) clearActivity() tea.Cmd {
	store := m.store
	if store == nil {
		return nil
	}
	return func() tea.Msg {
		return activityClearedMsg{err: store.Clear()}
	}
}

// recordActivity stores an outcome in the background. It produces no message.
func (m *Model) recordActivity(entry types.ActivityEntry) tea.Cmd {
	store := m.store
	if store == nil {
		return nil
	}
	logger := m.logger
	return func() tea.Msg {
		if err := store.Record(entry); err != nil {
			logger.Warn("failed to record activity", "action", entry.Action, "error", err)
		}
		return nil
	}
}

// refreshThumbnail re-renders the inline preview for the current terminal size
func (m *Model) refreshThumbnail() {
	if m.preview == nil {
		m.thumbnail = ""
		return
	}
	cols, rows := m.thumbnailSize()
	thumb, err := presenter.Thumbnail(m.preview.Image, cols, rows)
	if err != nil {
		m.logger.Warn("failed to render thumbnail", "error", err)
		thumb = ""
	}
	m.thumbnail = thumb
}

func (m *Model) actionLogger(action types.Action) *slog.Logger {
	return logging.FromContext(logging.WithAction(context.Background(), string(action)), m.logger)
}

func activityEntry(action types.Action, req types.GenerationRequest, duration time.Duration) types.ActivityEntry {
	return types.ActivityEntry{
		Action:   action,
		Mode:     req.Mode,
		Theme:    req.Theme,
		Duration: duration,
	}
}

func onOff(enabled bool) string {
	if enabled {
		return "on"
	}
	return "off"
}

package tui

import (
	"log/slog"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/studiowebux/lifeweeks/internal/form"
	"github.com/studiowebux/lifeweeks/internal/gateway"
	"github.com/studiowebux/lifeweeks/internal/keybinds"
	"github.com/studiowebux/lifeweeks/internal/logging"
	"github.com/studiowebux/lifeweeks/internal/presenter"
	"github.com/studiowebux/lifeweeks/internal/types"
	"github.com/studiowebux/lifeweeks/internal/version"
	"github.com/studiowebux/lifeweeks/internal/viewstate"
)

// Screen is the view currently filling the terminal
type Screen int

const (
	ScreenMain Screen = iota
	ScreenActivity
	ScreenHelp
)

// field indexes the form inputs
type field int

const (
	fieldDOB field = iota
	fieldLifespan
	fieldMonths
	fieldWidth
	fieldHeight
	fieldCount
)

// noFocus means no form field has focus
const noFocus field = -1

// ActivityStore records action outcomes; *history.Manager implements it
type ActivityStore interface {
	Record(entry types.ActivityEntry) error
	Recent(limit int) ([]types.ActivityEntry, error)
	Clear() error
}

// Options configures a Model
type Options struct {
	Backend             gateway.Backend
	Store               ActivityStore // nil disables the activity log
	Logger              *slog.Logger
	Keybinds            *keybinds.Registry
	NotificationTimeout time.Duration
	Version             string
	CheckForUpdates     bool
}

// Model represents the TUI state
type Model struct {
	backend gateway.Backend
	store   ActivityStore
	logger  *slog.Logger
	keys    *keybinds.Registry
	version string

	view     *viewstate.ViewState
	tracker  *viewstate.Tracker
	notifier *presenter.Notifier

	inputs []textinput.Model
	focus  field

	scheduleEnabled bool
	configLoaded    bool
	edits           userEdits
	preview         *presenter.PreviewView
	thumbnail       string

	// outcome of the newest resolved preview, repeated for superseded calls
	previewNoteGen  uint64
	previewNoteKind presenter.Kind
	previewNoteText string

	screen         Screen
	activity       []types.ActivityEntry
	activityOffset int

	width  int
	height int

	checkUpdates    bool
	updateAvailable bool
	latestVersion   string
	updateURL       string

	// copyToClipboard is swapped out in tests
	copyToClipboard func(string) error
}

// userEdits records what the user changed on their own. A late backend
// config only fills in what is still untouched.
type userEdits struct {
	fields    [fieldCount]bool
	selection bool // mode or theme chosen, or a preview generated
	schedule  bool
}

// New creates the model. The backend configuration is fetched by Init.
func New(opts Options) *Model {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard
	}
	keys := opts.Keybinds
	if keys == nil {
		keys = keybinds.NewDefaultRegistry()
	}

	defaults := types.DefaultConfigState()
	m := &Model{
		backend:         opts.Backend,
		store:           opts.Store,
		logger:          logger,
		keys:            keys,
		version:         opts.Version,
		view:            viewstate.New(defaults.DefaultMode, defaults.Theme),
		tracker:         viewstate.NewTracker(),
		notifier:        presenter.NewNotifier(opts.NotificationTimeout),
		inputs:          newInputs(),
		focus:           noFocus,
		checkUpdates:    opts.CheckForUpdates,
		copyToClipboard: clipboard.WriteAll,
	}
	m.setFormValues(form.ValuesFromConfig(defaults))
	return m
}

func newInputs() []textinput.Model {
	fields := []struct {
		placeholder string
		limit       int
	}{
		fieldDOB:      {"YYYY-MM-DD", 10},
		fieldLifespan: {"80", 3},
		fieldMonths:   {"6", 3},
		fieldWidth:    {"1920", 5},
		fieldHeight:   {"1080", 5},
	}

	inputs := make([]textinput.Model, fieldCount)
	for i, f := range fields {
		ti := textinput.New()
		ti.Placeholder = f.placeholder
		ti.CharLimit = f.limit
		ti.Width = 12
		ti.Prompt = ""
		inputs[i] = ti
	}
	return inputs
}

// Init fetches the backend configuration and optionally checks for updates
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.fetchConfig()}
	if m.checkUpdates {
		cmds = append(cmds, m.checkForUpdate())
	}
	return tea.Batch(cmds...)
}

// Update handles messages and updates the model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		cmd = m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.refreshThumbnail()

	case configLoadedMsg:
		m.applyConfig(msg)

	case previewResultMsg:
		cmd = m.handlePreviewResult(msg)

	case applyResultMsg:
		cmd = m.handleApplyResult(msg)

	case scheduleResultMsg:
		cmd = m.handleScheduleResult(msg)

	case persistDoneMsg:
		m.tracker.Finish(types.ActionPersist, msg.gen)
		if msg.err != nil {
			m.logger.Warn("failed to persist settings", "error", msg.err)
		}

	case activityLoadedMsg:
		if msg.err != nil {
			m.logger.Warn("failed to load activity", "error", msg.err)
			cmd = m.notify(presenter.KindError, "Could not load activity log")
		} else {
			m.activity = msg.entries
			m.activityOffset = 0
		}

	case activityClearedMsg:
		if msg.err != nil {
			m.logger.Warn("failed to clear activity", "error", msg.err)
			cmd = m.notify(presenter.KindError, "Could not clear activity log")
		} else {
			m.activity = nil
			m.activityOffset = 0
			cmd = m.notify(presenter.KindInfo, "Activity log cleared")
		}

	case versionCheckMsg:
		if msg.err == nil && msg.info.Available {
			m.updateAvailable = true
			m.latestVersion = msg.info.Latest
			m.updateURL = msg.info.URL
		}

	case dismissNotificationMsg:
		m.notifier.Dismiss(msg.id)

	default:
		// Cursor blink and other input internals
		if m.focus != noFocus {
			m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
		}
	}

	return m, cmd
}

// applyConfig mirrors the backend configuration into the view state and form.
// A failed fetch falls back to the built-in defaults without telling the user.
// Anything the user already changed, including a generated preview, is kept.
func (m *Model) applyConfig(msg configLoadedMsg) {
	cfg := msg.cfg
	if msg.err != nil {
		m.logger.Warn("failed to fetch backend config, using defaults", "error", msg.err)
		cfg = types.DefaultConfigState()
	}

	mode, err := types.ParseMode(string(cfg.DefaultMode))
	if err != nil {
		mode = types.ModeYearEnd
	}
	theme, err := types.ParseTheme(string(cfg.Theme))
	if err != nil {
		theme = types.ThemeDark
	}

	if !m.edits.selection {
		m.view.Reset(mode, theme)
	}
	m.setFormValues(form.ValuesFromConfig(cfg))
	if !m.edits.schedule {
		m.scheduleEnabled = cfg.ScheduleInstalled
	}
	m.configLoaded = true
	m.ensureFocusVisible()
}

// notify shows a notification and schedules its dismissal
func (m *Model) notify(kind presenter.Kind, text string) tea.Cmd {
	note := m.notifier.Show(kind, text)
	return tea.Tick(m.notifier.Timeout(), func(time.Time) tea.Msg {
		return dismissNotificationMsg{id: note.ID}
	})
}

// formValues reads the raw text of every input
func (m *Model) formValues() form.Values {
	return form.Values{
		DOB:      m.inputs[fieldDOB].Value(),
		Lifespan: m.inputs[fieldLifespan].Value(),
		Months:   m.inputs[fieldMonths].Value(),
		Width:    m.inputs[fieldWidth].Value(),
		Height:   m.inputs[fieldHeight].Value(),
	}
}

// setFormValues fills every field the user has not edited
func (m *Model) setFormValues(v form.Values) {
	values := [fieldCount]string{
		fieldDOB:      v.DOB,
		fieldLifespan: v.Lifespan,
		fieldMonths:   v.Months,
		fieldWidth:    v.Width,
		fieldHeight:   v.Height,
	}
	for f, value := range values {
		if !m.edits.fields[f] {
			m.inputs[f].SetValue(value)
		}
	}
}

// visibleFields lists the inputs shown for the active mode, in focus order
func (m *Model) visibleFields() []field {
	vis := m.view.Visibility()
	fields := make([]field, 0, fieldCount)
	if vis.DOB {
		fields = append(fields, fieldDOB)
	}
	fields = append(fields, fieldLifespan)
	if vis.Months {
		fields = append(fields, fieldMonths)
	}
	return append(fields, fieldWidth, fieldHeight)
}

// Message types

type configLoadedMsg struct {
	cfg types.ConfigState
	err error
}

type previewResultMsg struct {
	gen      uint64
	req      types.GenerationRequest
	resp     *types.PreviewResponse
	err      error
	duration time.Duration
}

type applyResultMsg struct {
	gen      uint64
	req      types.GenerationRequest
	message  string
	err      error
	duration time.Duration
}

type scheduleResultMsg struct {
	gen      uint64
	enabled  bool // requested state
	previous bool // state before the optimistic flip
	message  string
	err      error
	duration time.Duration
}

type persistDoneMsg struct {
	gen uint64
	err error
}

type activityLoadedMsg struct {
	entries []types.ActivityEntry
	err     error
}

type activityClearedMsg struct {
	err error
}

type versionCheckMsg struct {
	info version.UpdateInfo
	err  error
}

type dismissNotificationMsg struct {
	id uint64
}

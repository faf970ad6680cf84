package tui

import (
	"bytes"
	"context"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/studiowebux/lifeweeks/internal/logging"
	"github.com/studiowebux/lifeweeks/internal/types"
)

// fakeBackend answers every call from its fields and records the requests
type fakeBackend struct {
	mu sync.Mutex

	config    types.ConfigState
	configErr error

	previewFn  func(req types.GenerationRequest) (*types.PreviewResponse, error)
	applyErr   error
	toggleErr  error
	saveErr    error
	applyReply string

	previews []types.GenerationRequest
	applied  []types.GenerationRequest
	toggles  []bool
	saves    []types.SaveConfigArgs
}

func (f *fakeBackend) GetConfig(ctx context.Context) (types.ConfigState, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.config, f.configErr
}

func (f *fakeBackend) GeneratePreview(ctx context.Context, req types.GenerationRequest) (*types.PreviewResponse, error) {
	f.mu.Lock()
	f.previews = append(f.previews, req)
	fn := f.previewFn
	f.mu.Unlock()
	if fn == nil {
		return testPreviewResponse("Until Year End", 1000, 3160), nil
	}
	return fn(req)
}

func (f *fakeBackend) SetWallpaper(ctx context.Context, req types.GenerationRequest) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.applied = append(f.applied, req)
	if f.applyErr != nil {
		return "", f.applyErr
	}
	return f.applyReply, nil
}

func (f *fakeBackend) ToggleSchedule(ctx context.Context, enabled bool) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.toggles = append(f.toggles, enabled)
	if f.toggleErr != nil {
		return "", f.toggleErr
	}
	if enabled {
		return "Weekly schedule installed", nil
	}
	return "Weekly schedule removed", nil
}

func (f *fakeBackend) SaveConfig(ctx context.Context, args types.SaveConfigArgs) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saves = append(f.saves, args)
	return f.saveErr
}

func (f *fakeBackend) GetScheduleStatus(ctx context.Context) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.config.ScheduleInstalled, nil
}

// fakeStore is an in-memory ActivityStore
type fakeStore struct {
	mu      sync.Mutex
	entries []types.ActivityEntry
}

func (s *fakeStore) Record(entry types.ActivityEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry.ID = int64(len(s.entries) + 1)
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}
	s.entries = append(s.entries, entry)
	return nil
}

func (s *fakeStore) Recent(limit int) ([]types.ActivityEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]types.ActivityEntry, 0, len(s.entries))
	for i := len(s.entries) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, s.entries[i])
	}
	return out, nil
}

func (s *fakeStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = nil
	return nil
}

func (s *fakeStore) all() []types.ActivityEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]types.ActivityEntry(nil), s.entries...)
}

// testEnv bundles a model with its collaborators
type testEnv struct {
	model     *Model
	backend   *fakeBackend
	store     *fakeStore
	logs      *bytes.Buffer
	clipboard string
}

// CreateTestModel creates a Model wired to fakes. The notification timeout
// is short so dismiss ticks resolve immediately.
func CreateTestModel(t *testing.T, backend *fakeBackend) *testEnv {
	t.Helper()

	if backend == nil {
		backend = &fakeBackend{config: types.DefaultConfigState()}
	}
	env := &testEnv{
		backend: backend,
		store:   &fakeStore{},
		logs:    &bytes.Buffer{},
	}
	env.model = New(Options{
		Backend:             backend,
		Store:               env.store,
		Logger:              logging.New(env.logs, "debug"),
		NotificationTimeout: time.Millisecond,
		Version:             "test-version",
	})
	env.model.copyToClipboard = func(s string) error {
		env.clipboard = s
		return nil
	}
	return env
}

// drive runs cmd and feeds every resulting message back into the model
// until no work is left. Dismiss ticks are dropped so notifications stay
// visible for assertions.
func drive(t *testing.T, m *Model, cmd tea.Cmd) {
	t.Helper()
	for _, msg := range collect(cmd) {
		if _, ok := msg.(dismissNotificationMsg); ok {
			continue
		}
		_, next := m.Update(msg)
		drive(t, m, next)
	}
}

func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	switch msg := cmd().(type) {
	case nil:
		return nil
	case tea.BatchMsg:
		var out []tea.Msg
		for _, c := range msg {
			out = append(out, collect(c)...)
		}
		return out
	default:
		return []tea.Msg{msg}
	}
}

// press sends a key and returns the resulting command without running it
func press(m *Model, key string) tea.Cmd {
	_, cmd := m.Update(keyMsg(key))
	return cmd
}

func keyMsg(key string) tea.KeyMsg {
	switch key {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
}

// typeText types s into the focused field one rune at a time
func typeText(m *Model, s string) {
	for _, r := range s {
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func testPreviewResponse(title string, elapsed, remaining int) *types.PreviewResponse {
	return &types.PreviewResponse{
		Title:          title,
		Subtitle:       "Dec 31",
		TotalWeeks:     elapsed + remaining,
		ElapsedWeeks:   elapsed,
		RemainingWeeks: remaining,
		Columns:        52,
		Rows:           80,
		ImageBase64:    testPNG(),
	}
}

func testPNG() string {
	img := image.NewRGBA(image.Rect(0, 0, 8, 6))
	for y := 0; y < 6; y++ {
		for x := 0; x < 8; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 30), G: uint8(y * 40), B: 90, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		panic(err)
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes())
}

// AssertModelField compares a model field against its expected value
func AssertModelField[T comparable](t *testing.T, fieldName string, got, want T) {
	t.Helper()
	if got != want {
		t.Errorf("%s = %v, want %v", fieldName, got, want)
	}
}

// AssertNoError fails the test if err is not nil
func AssertNoError(t *testing.T, err error, msg string) {
	t.Helper()
	if err != nil {
		t.Fatalf("%s: %v", msg, err)
	}
}

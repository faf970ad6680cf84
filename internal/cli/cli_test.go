package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/studiowebux/lifeweeks/internal/config"
	"github.com/studiowebux/lifeweeks/internal/gateway"
	"github.com/studiowebux/lifeweeks/internal/mock"
	"github.com/studiowebux/lifeweeks/internal/types"
	"gopkg.in/yaml.v3"
)

type memoryRecorder struct {
	entries []types.ActivityEntry
}

func (r *memoryRecorder) Record(entry types.ActivityEntry) error {
	r.entries = append(r.entries, entry)
	return nil
}

func (r *memoryRecorder) Recent(limit int) ([]types.ActivityEntry, error) {
	out := make([]types.ActivityEntry, 0, len(r.entries))
	for i := len(r.entries) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, r.entries[i])
	}
	return out, nil
}

func (r *memoryRecorder) ForAction(action types.Action, limit int) ([]types.ActivityEntry, error) {
	var out []types.ActivityEntry
	for i := len(r.entries) - 1; i >= 0 && len(out) < limit; i-- {
		if r.entries[i].Action == action {
			out = append(out, r.entries[i])
		}
	}
	return out, nil
}

func (r *memoryRecorder) Count() (int, error) { return len(r.entries), nil }

func newMockBackend(t *testing.T, cfg *mock.Config) (*gateway.Client, *mock.Server) {
	t.Helper()
	if cfg == nil {
		cfg = &mock.Config{}
	}
	server := mock.NewServer(cfg, nil)
	srv := httptest.NewServer(server.Handler())
	t.Cleanup(srv.Close)

	invoker, err := gateway.NewHTTPInvoker(srv.URL, nil)
	require.NoError(t, err)
	return gateway.NewClient(invoker, 0), server
}

func TestGeneratePreviewOnly(t *testing.T) {
	client, server := newMockBackend(t, nil)
	output := filepath.Join(t.TempDir(), "out", "preview.png")
	recorder := &memoryRecorder{}

	var out bytes.Buffer
	err := Generate(context.Background(), client, GenerateOptions{
		Mode:        "year-end",
		Theme:       "terminal_green",
		Width:       "800",
		Height:      "abc",
		PreviewOnly: true,
		OutputPath:  output,
		Recorder:    recorder,
	}, &out)
	require.NoError(t, err)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, []byte("\x89PNG"), data[:4])

	assert.Contains(t, out.String(), "1,000 elapsed, 3,160 remaining (24%)")
	assert.Contains(t, out.String(), "Preview saved to "+output)

	_, applied := server.Backend().LastApplied()
	assert.False(t, applied, "preview only must not set the wallpaper")

	require.Len(t, recorder.entries, 1)
	assert.Equal(t, types.ActionPreview, recorder.entries[0].Action)
	assert.Equal(t, types.ThemeTerminal, recorder.entries[0].Theme)
	assert.True(t, recorder.entries[0].Success)
}

func TestGenerateAppliesWallpaper(t *testing.T) {
	client, server := newMockBackend(t, nil)
	recorder := &memoryRecorder{}

	var out bytes.Buffer
	err := Generate(context.Background(), client, GenerateOptions{
		Mode:       "next-months",
		Months:     "9",
		OutputPath: filepath.Join(t.TempDir(), "preview.png"),
		Recorder:   recorder,
	}, &out)
	require.NoError(t, err)

	req, applied := server.Backend().LastApplied()
	require.True(t, applied)
	assert.Equal(t, types.ModeNextMonths, req.Mode)
	assert.Equal(t, types.ThemeDark, req.Theme, "theme falls back to the backend default")
	assert.Equal(t, types.Some(9), req.Months)

	assert.Contains(t, out.String(), `Wallpaper set successfully: "mock://wallpaper.png"`)
	require.Len(t, recorder.entries, 2)
	assert.Equal(t, types.ActionApply, recorder.entries[1].Action)
}

func TestGenerateLifeWithoutDOB(t *testing.T) {
	client, _ := newMockBackend(t, nil)
	recorder := &memoryRecorder{}

	err := Generate(context.Background(), client, GenerateOptions{
		Mode:       "life",
		OutputPath: filepath.Join(t.TempDir(), "preview.png"),
		Recorder:   recorder,
	}, &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DOB is required for life mode")

	require.Len(t, recorder.entries, 1)
	assert.False(t, recorder.entries[0].Success)
}

func TestGenerateUnknownTheme(t *testing.T) {
	client, _ := newMockBackend(t, nil)

	err := Generate(context.Background(), client, GenerateOptions{Mode: "life", Theme: "sunst"}, &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown theme: sunst")
	assert.Contains(t, err.Error(), "did you mean")
	assert.Contains(t, err.Error(), "sunset")
}

func TestConfigShowFormats(t *testing.T) {
	client, _ := newMockBackend(t, nil)

	var out bytes.Buffer
	require.NoError(t, ConfigShow(context.Background(), client, ConfigShowOptions{Format: "json"}, &out))
	var cfg types.ConfigState
	require.NoError(t, json.Unmarshal(out.Bytes(), &cfg))
	assert.Equal(t, types.DefaultConfigState(), cfg)

	out.Reset()
	require.NoError(t, ConfigShow(context.Background(), client, ConfigShowOptions{Format: "yaml"}, &out))
	var fromYAML types.ConfigState
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &fromYAML))
	assert.Equal(t, 80, fromYAML.LifespanYears)

	out.Reset()
	err := ConfigShow(context.Background(), client, ConfigShowOptions{Format: "xml"}, &out)
	assert.ErrorContains(t, err, "unsupported output format")
}

func TestConfigShowQuery(t *testing.T) {
	client, _ := newMockBackend(t, nil)

	var out bytes.Buffer
	err := ConfigShow(context.Background(), client, ConfigShowOptions{Query: "[screen_width, screen_height]", Format: "json"}, &out)
	require.NoError(t, err)
	assert.JSONEq(t, `[1920, 1080]`, out.String())

	out.Reset()
	err = ConfigShow(context.Background(), client, ConfigShowOptions{Query: "theme"}, &out)
	require.NoError(t, err)
	assert.Equal(t, "dark\n", out.String())

	err = ConfigShow(context.Background(), client, ConfigShowOptions{Query: "[["}, &out)
	assert.ErrorContains(t, err, "invalid JMESPath expression")
}

func TestConfigSet(t *testing.T) {
	client, server := newMockBackend(t, nil)
	ctx := context.Background()

	var out bytes.Buffer
	require.NoError(t, ConfigSet(ctx, client, "dob", "1990-05-17", &out))
	require.NoError(t, ConfigSet(ctx, client, "theme", "minimal_ink", &out))
	require.NoError(t, ConfigSet(ctx, client, "mode", "life", &out))
	require.NoError(t, ConfigSet(ctx, client, "lifespan", "92", &out))

	state := server.Backend().State()
	require.NotNil(t, state.DOB)
	assert.Equal(t, "1990-05-17", *state.DOB)
	assert.Equal(t, types.ThemeMinimal, state.Theme)
	assert.Equal(t, types.ModeLife, state.DefaultMode)
	assert.Equal(t, 92, state.LifespanYears)
	assert.Equal(t, 1920, state.ScreenWidth, "other fields are untouched")
	assert.Contains(t, out.String(), "Set theme = minimal_ink")

	require.NoError(t, ConfigSet(ctx, client, "dob", "", &out))
	assert.Nil(t, server.Backend().State().DOB, "empty dob clears the stored date")
}

func TestConfigSetErrors(t *testing.T) {
	client, _ := newMockBackend(t, nil)
	ctx := context.Background()

	tests := []struct {
		name    string
		key     string
		value   string
		wantErr []string
	}{
		{"unknown key", "lifspan", "80", []string{`unknown config key "lifspan"`, "did you mean lifespan"}},
		{"bad theme", "theme", "neon", []string{"unknown theme: neon"}},
		{"bad mode", "mode", "decade", []string{"unknown mode: decade"}},
		{"not a number", "width", "wide", []string{"width must be a positive integer"}},
		{"zero", "months", "0", []string{"months must be a positive integer"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ConfigSet(ctx, client, tt.key, tt.value, &bytes.Buffer{})
			require.Error(t, err)
			for _, want := range tt.wantErr {
				assert.Contains(t, err.Error(), want)
			}
		})
	}
}

func TestConfigReset(t *testing.T) {
	dob := "1985-01-01"
	client, server := newMockBackend(t, &mock.Config{State: &types.ConfigState{
		DOB:           &dob,
		LifespanYears: 70,
		Theme:         types.ThemeSunset,
		ScreenWidth:   800,
		ScreenHeight:  600,
		DefaultMode:   types.ModeLife,
		NextMonths:    3,
	}})

	var out bytes.Buffer
	require.NoError(t, ConfigReset(context.Background(), client, &out))

	state := server.Backend().State()
	assert.Nil(t, state.DOB)
	assert.Equal(t, types.DefaultConfigState(), state)
	assert.Contains(t, out.String(), "reset to defaults")
}

func TestSchedule(t *testing.T) {
	client, _ := newMockBackend(t, nil)
	ctx := context.Background()
	recorder := &memoryRecorder{}

	var out bytes.Buffer
	require.NoError(t, Schedule(ctx, client, "status", recorder, &out))
	assert.Contains(t, out.String(), "not installed")

	out.Reset()
	require.NoError(t, Schedule(ctx, client, "install", recorder, &out))
	assert.Contains(t, out.String(), "Weekly schedule installed")

	out.Reset()
	require.NoError(t, Schedule(ctx, client, "status", recorder, &out))
	assert.Equal(t, "Weekly schedule: installed\n", out.String())

	out.Reset()
	require.NoError(t, Schedule(ctx, client, "uninstall", recorder, &out))
	assert.Contains(t, out.String(), "Weekly schedule removed")

	assert.Len(t, recorder.entries, 2)
	assert.ErrorContains(t, Schedule(ctx, client, "pause", recorder, &out), "unknown schedule action")
}

func TestScheduleFailure(t *testing.T) {
	client, _ := newMockBackend(t, &mock.Config{Commands: map[string]mock.Command{
		gateway.CmdToggleSchedule: {Error: "crontab not writable"},
	}})
	recorder := &memoryRecorder{}

	err := Schedule(context.Background(), client, "install", recorder, &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "crontab not writable")
	require.Len(t, recorder.entries, 1)
	assert.False(t, recorder.entries[0].Success)
}

func TestHistory(t *testing.T) {
	recorder := &memoryRecorder{}

	var out bytes.Buffer
	require.NoError(t, History(recorder, 10, "", "text", &out))
	assert.Equal(t, "No activity recorded yet.\n", out.String())

	recorder.Record(types.ActivityEntry{Action: types.ActionPreview, Mode: types.ModeLife, Theme: types.ThemeDark, Success: true, Message: "first"})
	recorder.Record(types.ActivityEntry{Action: types.ActionApply, Success: false, Message: "second"})

	out.Reset()
	require.NoError(t, History(recorder, 1, "", "text", &out))
	assert.Contains(t, out.String(), "second")
	assert.NotContains(t, out.String(), "first")
	assert.Contains(t, out.String(), "Showing 1 of 2 recorded entries")

	out.Reset()
	require.NoError(t, History(recorder, 10, "", "json", &out))
	var entries []types.ActivityEntry
	require.NoError(t, json.Unmarshal(out.Bytes(), &entries))
	require.Len(t, entries, 2)
	assert.Equal(t, types.ActionApply, entries[0].Action)
}

func TestHistoryForAction(t *testing.T) {
	recorder := &memoryRecorder{}
	recorder.Record(types.ActivityEntry{Action: types.ActionPreview, Success: true, Message: "first"})
	recorder.Record(types.ActivityEntry{Action: types.ActionApply, Success: true, Message: "second"})
	recorder.Record(types.ActivityEntry{Action: types.ActionPreview, Success: true, Message: "third"})

	var out bytes.Buffer
	require.NoError(t, History(recorder, 10, " Preview ", "json", &out))
	var entries []types.ActivityEntry
	require.NoError(t, json.Unmarshal(out.Bytes(), &entries))
	require.Len(t, entries, 2)
	assert.Equal(t, "third", entries[0].Message)
	assert.Equal(t, "first", entries[1].Message)

	out.Reset()
	require.NoError(t, History(recorder, 10, "apply", "text", &out))
	assert.Contains(t, out.String(), "second")
	assert.NotContains(t, out.String(), "third")
	assert.Contains(t, out.String(), "Showing 1 of 3 recorded entries")

	err := History(recorder, 10, "aply", "text", &out)
	assert.ErrorContains(t, err, "unknown action: aply")
	assert.ErrorContains(t, err, "apply")
}

func TestConfigPath(t *testing.T) {
	global := filepath.Join(t.TempDir(), "settings.yaml")
	prev := config.SettingsFile
	config.SettingsFile = global
	t.Cleanup(func() { config.SettingsFile = prev })
	t.Chdir(t.TempDir())

	var out bytes.Buffer
	ConfigPath(&out)
	assert.Equal(t, global+"\n", out.String())

	require.NoError(t, os.WriteFile(".lifeweeks.yaml", []byte("theme: sunset\n"), 0o644))
	out.Reset()
	ConfigPath(&out)
	assert.Equal(t, ".lifeweeks.yaml (local, overrides "+global+")\n", out.String())
}

func TestWithSuggestion(t *testing.T) {
	err := withSuggestion(assert.AnError, "wdth", ConfigKeys)
	assert.ErrorIs(t, err, assert.AnError)
	assert.Contains(t, err.Error(), "width")

	err = withSuggestion(assert.AnError, "zzz", ConfigKeys)
	assert.Equal(t, assert.AnError, err)
}

func TestChoicesFor(t *testing.T) {
	themes := choicesFor("Theme")
	require.Len(t, themes, len(types.AllThemes))
	assert.Equal(t, "dark", themes[0].value)
	assert.NotEmpty(t, themes[0].swatch)

	modes := choicesFor("mode")
	require.Len(t, modes, 3)
	assert.Equal(t, "Year End", modes[1].detail)

	assert.Nil(t, choicesFor("width"))
	_, err := PromptForValue("width", "")
	assert.ErrorContains(t, err, "a value is required for width")
}

func TestPickerModel(t *testing.T) {
	choices := choicesFor("theme")
	items := make([]list.Item, len(choices))
	for i, c := range choices {
		items[i] = c
	}
	m := pickerModel{list: list.New(items, choiceDelegate{}, 40, 10)}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	next, cmd := next.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, "terminal", next.(pickerModel).picked)
	assert.Empty(t, next.View())

	cancelled, _ := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Empty(t, cancelled.(pickerModel).picked)
	assert.True(t, cancelled.(pickerModel).finished)
}

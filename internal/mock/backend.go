package mock

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/studiowebux/lifeweeks/internal/gateway"
	"github.com/studiowebux/lifeweeks/internal/types"
)

const (
	defaultElapsedWeeks   = 1000
	defaultRemainingWeeks = 3160
	dateLayout            = "2006-01-02"
)

var errDOBRequired = errors.New("DOB is required for life mode")

func knownCommand(name string) bool {
	switch name {
	case gateway.CmdGetConfig, gateway.CmdGeneratePreview, gateway.CmdSetWallpaper,
		gateway.CmdToggleSchedule, gateway.CmdSaveConfig, gateway.CmdGetScheduleStatus:
		return true
	}
	return false
}

// Backend holds the in-memory state the mock commands operate on
type Backend struct {
	mu          sync.Mutex
	state       types.ConfigState
	preview     PreviewScript
	commands    map[string]Command
	lastApplied *types.GenerationRequest
}

// NewBackend creates the command handler from config
func NewBackend(config *Config) *Backend {
	state := types.DefaultConfigState()
	if config.State != nil {
		state = *config.State
	}

	preview := PreviewScript{ElapsedWeeks: defaultElapsedWeeks, RemainingWeeks: defaultRemainingWeeks}
	if config.Preview != nil {
		preview = *config.Preview
	}

	commands := make(map[string]Command, len(config.Commands))
	for name, cmd := range config.Commands {
		commands[name] = cmd
	}

	return &Backend{state: state, preview: preview, commands: commands}
}

// State returns a copy of the current backend config
func (b *Backend) State() types.ConfigState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return copyState(b.state)
}

// LastApplied returns the last request passed to set_wallpaper_cmd
func (b *Backend) LastApplied() (types.GenerationRequest, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.lastApplied == nil {
		return types.GenerationRequest{}, false
	}
	return *b.lastApplied, true
}

// SetCommand replaces the behaviour of one command at runtime
func (b *Backend) SetCommand(name string, cmd Command) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.commands[name] = cmd
}

type requestArgs struct {
	Request types.GenerationRequest `json:"request"`
}

type toggleArgs struct {
	Enabled bool `json:"enabled"`
}

// Dispatch runs one command. The returned error text is what the
// gateway surfaces to the user.
func (b *Backend) Dispatch(ctx context.Context, command string, args json.RawMessage) (any, error) {
	if !knownCommand(command) {
		return nil, fmt.Errorf("unknown command: %s", command)
	}

	b.mu.Lock()
	behaviour := b.commands[command]
	b.mu.Unlock()

	if behaviour.Delay > 0 {
		select {
		case <-time.After(time.Duration(behaviour.Delay) * time.Millisecond):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if behaviour.Error != "" {
		return nil, errors.New(behaviour.Error)
	}

	if len(args) == 0 {
		args = json.RawMessage("{}")
	}

	switch command {
	case gateway.CmdGetConfig:
		return b.State(), nil
	case gateway.CmdGetScheduleStatus:
		return b.State().ScheduleInstalled, nil
	case gateway.CmdGeneratePreview:
		var a requestArgs
		if err := json.Unmarshal(args, &a); err != nil {
			return nil, fmt.Errorf("invalid args for %s: %v", command, err)
		}
		return b.generatePreview(a.Request)
	case gateway.CmdSetWallpaper:
		var a requestArgs
		if err := json.Unmarshal(args, &a); err != nil {
			return nil, fmt.Errorf("invalid args for %s: %v", command, err)
		}
		return b.setWallpaper(a.Request)
	case gateway.CmdToggleSchedule:
		var a toggleArgs
		if err := json.Unmarshal(args, &a); err != nil {
			return nil, fmt.Errorf("invalid args for %s: %v", command, err)
		}
		return b.toggleSchedule(a.Enabled), nil
	case gateway.CmdSaveConfig:
		var a types.SaveConfigArgs
		if err := json.Unmarshal(args, &a); err != nil {
			return nil, fmt.Errorf("invalid args for %s: %v", command, err)
		}
		return b.saveConfig(a), nil
	}
	return nil, fmt.Errorf("unknown command: %s", command)
}

// resolved is a request with every absent field filled from stored config
type resolved struct {
	mode     types.Mode
	dob      *time.Time
	lifespan int
	months   int
	theme    types.Theme
	width    int
	height   int
}

func (b *Backend) resolve(req types.GenerationRequest) (resolved, error) {
	state := b.State()

	mode, err := types.ParseMode(string(req.Mode))
	if err != nil {
		return resolved{}, err
	}

	r := resolved{
		mode:     mode,
		lifespan: req.Lifespan.OrElse(state.LifespanYears),
		months:   req.Months.OrElse(state.NextMonths),
		theme:    state.Theme,
		width:    req.Width.OrElse(state.ScreenWidth),
		height:   req.Height.OrElse(state.ScreenHeight),
	}
	if t, err := types.ParseTheme(string(req.Theme)); err == nil {
		r.theme = t
	}

	// A supplied but unparseable date counts as missing.
	dobText, ok := req.DOB.Get()
	if !ok && state.DOB != nil {
		dobText, ok = *state.DOB, true
	}
	if ok {
		if d, err := time.Parse(dateLayout, dobText); err == nil {
			r.dob = &d
		}
	}
	if r.mode == types.ModeLife && r.dob == nil {
		return resolved{}, errDOBRequired
	}
	return r, nil
}

func (b *Backend) generatePreview(req types.GenerationRequest) (*types.PreviewResponse, error) {
	r, err := b.resolve(req)
	if err != nil {
		return nil, err
	}

	b.mu.Lock()
	script := b.preview
	b.mu.Unlock()

	total := script.ElapsedWeeks + script.RemainingWeeks
	columns, rows := gridShape(total)

	img, err := renderPlaceholder(r.theme, r.width, r.height, columns, rows, script.ElapsedWeeks)
	if err != nil {
		return nil, fmt.Errorf("failed to encode image: %v", err)
	}

	title, subtitle := titles(r)
	if script.Title != "" {
		title = script.Title
	}
	if script.Subtitle != "" {
		subtitle = script.Subtitle
	}

	return &types.PreviewResponse{
		Title:          title,
		Subtitle:       subtitle,
		TotalWeeks:     total,
		ElapsedWeeks:   script.ElapsedWeeks,
		RemainingWeeks: script.RemainingWeeks,
		Columns:        columns,
		Rows:           rows,
		ImageBase64:    img,
	}, nil
}

func (b *Backend) setWallpaper(req types.GenerationRequest) (string, error) {
	if _, err := b.resolve(req); err != nil {
		return "", err
	}

	b.mu.Lock()
	applied := req
	b.lastApplied = &applied
	b.mu.Unlock()

	return "Wallpaper set successfully: \"mock://wallpaper.png\"", nil
}

func (b *Backend) toggleSchedule(enabled bool) string {
	b.mu.Lock()
	b.state.ScheduleInstalled = enabled
	b.mu.Unlock()

	if enabled {
		return "Weekly schedule installed"
	}
	return "Weekly schedule removed"
}

// saveConfig applies only the fields that are present. An empty date
// clears the stored one and an unparseable date is dropped.
func (b *Backend) saveConfig(args types.SaveConfigArgs) string {
	b.mu.Lock()
	defer b.mu.Unlock()

	if dob, ok := args.DOB.Get(); ok {
		b.state.DOB = nil
		if _, err := time.Parse(dateLayout, dob); err == nil {
			b.state.DOB = &dob
		}
	}
	if v, ok := args.Lifespan.Get(); ok {
		b.state.LifespanYears = v
	}
	if v, ok := args.Theme.Get(); ok {
		if t, err := types.ParseTheme(string(v)); err == nil {
			b.state.Theme = t
		}
	}
	if v, ok := args.Width.Get(); ok {
		b.state.ScreenWidth = v
	}
	if v, ok := args.Height.Get(); ok {
		b.state.ScreenHeight = v
	}
	if v, ok := args.DefaultMode.Get(); ok {
		b.state.DefaultMode = v
	}
	if v, ok := args.Months.Get(); ok {
		b.state.NextMonths = v
	}
	return "Configuration saved"
}

func titles(r resolved) (string, string) {
	switch r.mode {
	case types.ModeLife:
		return "Life in Weeks", fmt.Sprintf("Born %s, %d year horizon", r.dob.Format(dateLayout), r.lifespan)
	case types.ModeNextMonths:
		return fmt.Sprintf("Next %d Months", r.months), "One square per week"
	default:
		return "Until Year End", "One square per week"
	}
}

func gridShape(total int) (columns, rows int) {
	if total <= 0 {
		return 0, 0
	}
	columns = 52
	if total < columns {
		columns = total
	}
	rows = (total + columns - 1) / columns
	return columns, rows
}

func copyState(s types.ConfigState) types.ConfigState {
	if s.DOB != nil {
		dob := *s.DOB
		s.DOB = &dob
	}
	return s
}

package viewstate

import (
	"sync"

	"github.com/studiowebux/lifeweeks/internal/types"
)

// FieldVisibility describes which mode-specific form fields are shown
type FieldVisibility struct {
	DOB    bool // life mode only
	Months bool // next-months mode only
}

// ViewState holds the selected mode and theme and whether a preview exists
type ViewState struct {
	mu sync.RWMutex

	mode       types.Mode
	theme      types.Theme
	hasPreview bool
}

// New creates a view state with the given initial selection
func New(mode types.Mode, theme types.Theme) *ViewState {
	return &ViewState{
		mode:  mode,
		theme: theme,
	}
}

// Mode returns the active mode
func (s *ViewState) Mode() types.Mode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mode
}

// Theme returns the active theme
func (s *ViewState) Theme() types.Theme {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.theme
}

// HasPreview reports whether a preview succeeded this session
func (s *ViewState) HasPreview() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hasPreview
}

// SelectMode sets the active mode and returns the resulting field visibility
func (s *ViewState) SelectMode(m types.Mode) FieldVisibility {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mode = m
	return visibilityFor(m)
}

// SelectTheme sets the active theme. The current preview is not re-rendered.
func (s *ViewState) SelectTheme(t types.Theme) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.theme = t
}

// MarkPreviewed records a successful preview. There is no transition back
// to false within a session except Reset.
func (s *ViewState) MarkPreviewed() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hasPreview = true
}

// Visibility returns the field visibility for the active mode
func (s *ViewState) Visibility() FieldVisibility {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return visibilityFor(s.mode)
}

// NextMode cycles to the following mode and selects it
func (s *ViewState) NextMode() types.Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mode = cycle(types.AllModes, s.mode)
	return s.mode
}

// NextTheme cycles to the following theme and selects it
func (s *ViewState) NextTheme() types.Theme {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.theme = cycle(types.AllThemes, s.theme)
	return s.theme
}

// Reset re-initializes the state for a new session
func (s *ViewState) Reset(mode types.Mode, theme types.Theme) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mode = mode
	s.theme = theme
	s.hasPreview = false
}

func visibilityFor(m types.Mode) FieldVisibility {
	return FieldVisibility{
		DOB:    m == types.ModeLife,
		Months: m == types.ModeNextMonths,
	}
}

func cycle[T comparable](all []T, cur T) T {
	for i, v := range all {
		if v == cur {
			return all[(i+1)%len(all)]
		}
	}
	return all[0]
}

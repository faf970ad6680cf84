package types

import (
	"fmt"
	"sort"
	"strings"
)

// Mode selects which time window the backend computes
type Mode string

const (
	ModeLife       Mode = "life"
	ModeYearEnd    Mode = "year-end"
	ModeNextMonths Mode = "next-months"
)

// AllModes lists modes in display order
var AllModes = []Mode{ModeLife, ModeYearEnd, ModeNextMonths}

// Label returns a human readable name for the mode
func (m Mode) Label() string {
	switch m {
	case ModeLife:
		return "Life"
	case ModeYearEnd:
		return "Year End"
	case ModeNextMonths:
		return "Next Months"
	default:
		return string(m)
	}
}

var modeAliases = map[string]Mode{
	"life":        ModeLife,
	"life-weeks":  ModeLife,
	"life_weeks":  ModeLife,
	"year-end":    ModeYearEnd,
	"year_end":    ModeYearEnd,
	"year":        ModeYearEnd,
	"next-months": ModeNextMonths,
	"next_months": ModeNextMonths,
	"months":      ModeNextMonths,
}

// ParseMode parses a mode name, accepting the same aliases as the backend
func ParseMode(s string) (Mode, error) {
	if m, ok := modeAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return m, nil
	}
	return "", fmt.Errorf("unknown mode: %s. Options: next-months, year-end, life", s)
}

// Theme is a named palette applied to the rendered image
type Theme string

const (
	ThemeDark     Theme = "dark"
	ThemeTerminal Theme = "terminal"
	ThemeMinimal  Theme = "minimal"
	ThemeSunset   Theme = "sunset"
)

// AllThemes lists themes in display order
var AllThemes = []Theme{ThemeDark, ThemeTerminal, ThemeMinimal, ThemeSunset}

var themeAliases = map[string]Theme{
	"dark":            ThemeDark,
	"soft_dark":       ThemeDark,
	"soft-dark":       ThemeDark,
	"terminal":        ThemeTerminal,
	"terminal_green":  ThemeTerminal,
	"terminal-green":  ThemeTerminal,
	"minimal":         ThemeMinimal,
	"minimal_ink":     ThemeMinimal,
	"minimal-ink":     ThemeMinimal,
	"sunset":          ThemeSunset,
	"sunset_gradient": ThemeSunset,
	"sunset-gradient": ThemeSunset,
}

// ParseTheme parses a theme name, accepting the backend's long-form aliases
func ParseTheme(s string) (Theme, error) {
	if t, ok := themeAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return t, nil
	}
	return "", fmt.Errorf("unknown theme: %s. Options: minimal, terminal, dark, sunset", s)
}

// ThemeNames returns every accepted theme spelling, sorted
func ThemeNames() []string {
	names := make([]string, 0, len(themeAliases))
	for name := range themeAliases {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

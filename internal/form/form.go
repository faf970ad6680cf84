// Package form turns raw form text into backend requests.
//
// Parsing is permissive: malformed numbers degrade to "unset" instead of
// producing an error, and the backend decides what an unset field means.
package form

import (
	"strconv"
	"strings"

	"github.com/studiowebux/lifeweeks/internal/types"
)

// Values holds the raw text of the editable form fields
type Values struct {
	DOB      string
	Lifespan string
	Months   string
	Width    string
	Height   string
}

// ParseField parses a positive base-10 integer.
// Empty, malformed, zero, negative and out-of-range input all yield None.
func ParseField(s string) types.Optional[int] {
	s = strings.TrimSpace(s)
	if s == "" {
		return types.None[int]()
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return types.None[int]()
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return types.None[int]()
	}
	return types.Some(n)
}

// ParseDate maps an empty date field to None and passes anything else through
func ParseDate(s string) types.Optional[string] {
	s = strings.TrimSpace(s)
	if s == "" {
		return types.None[string]()
	}
	return types.Some(s)
}

// BuildRequest produces a fresh GenerationRequest from the current form
func BuildRequest(mode types.Mode, theme types.Theme, v Values) types.GenerationRequest {
	return types.GenerationRequest{
		Mode:     mode,
		DOB:      ParseDate(v.DOB),
		Lifespan: ParseField(v.Lifespan),
		Months:   ParseField(v.Months),
		Theme:    theme,
		Width:    ParseField(v.Width),
		Height:   ParseField(v.Height),
	}
}

// BuildSaveArgs produces the save_config arguments for the current form.
// The date is always sent so that clearing the field clears the stored date.
func BuildSaveArgs(mode types.Mode, theme types.Theme, v Values) types.SaveConfigArgs {
	return types.SaveConfigArgs{
		DOB:         types.Some(strings.TrimSpace(v.DOB)),
		Lifespan:    ParseField(v.Lifespan),
		Theme:       types.Some(theme),
		Width:       ParseField(v.Width),
		Height:      ParseField(v.Height),
		DefaultMode: types.Some(mode),
		Months:      ParseField(v.Months),
	}
}

// ValuesFromConfig renders a loaded configuration into form text.
// Zero values are left blank so they stay unset on the next request.
func ValuesFromConfig(cfg types.ConfigState) Values {
	v := Values{
		Lifespan: itoa(cfg.LifespanYears),
		Months:   itoa(cfg.NextMonths),
		Width:    itoa(cfg.ScreenWidth),
		Height:   itoa(cfg.ScreenHeight),
	}
	if cfg.DOB != nil {
		v.DOB = *cfg.DOB
	}
	return v
}

func itoa(n int) string {
	if n <= 0 {
		return ""
	}
	return strconv.Itoa(n)
}

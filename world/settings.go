package world

import (
	"strings"

	"github.com/pkg/errors"
)

// ErrInvalidSettings reports a contradictory Settings value.
var ErrInvalidSettings = errors.New("world: invalid settings")

// Settings selects the bounding and branching strategy.
type Settings struct {
	// StrongBranching scores disjunctions by their probed bound growth
	// instead of chronologically.
	StrongBranching bool `json:"strong_branching"`

	// WDGBound enables the WDG subproblem bound.
	WDGBound bool `json:"wdg_bound"`

	// WDGRelaxed solves the WDG subproblem as a pure LP. Requires WDGBound.
	WDGRelaxed bool `json:"wdg_relaxed"`
}

// DefaultSettings returns strong branching with the exact WDG bound.
func DefaultSettings() Settings {
	return Settings{StrongBranching: true, WDGBound: true}
}

// Validate reports ErrInvalidSettings when WDGRelaxed is set without WDGBound.
func (s Settings) Validate() error {
	if s.WDGRelaxed && !s.WDGBound {
		return errors.Wrap(ErrInvalidSettings, "wdg_relaxed requires wdg_bound")
	}

	return nil
}

// String renders s compactly, e.g. "strong+wdg-relaxed".
func (s Settings) String() string {
	parts := []string{"chrono"}
	if s.StrongBranching {
		parts[0] = "strong"
	}
	switch {
	case s.WDGRelaxed:
		parts = append(parts, "wdg-relaxed")
	case s.WDGBound:
		parts = append(parts, "wdg")
	}

	return strings.Join(parts, "+")
}

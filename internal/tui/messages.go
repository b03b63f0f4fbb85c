package tui

import (
	"github.com/jusliketht/bbofficial-sub003/internal/breakeven"
	"github.com/jusliketht/bbofficial-sub003/internal/domain"
)

// Scene represents different screens in the TUI
type Scene int

const (
	SceneForm Scene = iota
	SceneHelp
)

func (s Scene) String() string {
	switch s {
	case SceneForm:
		return "Compare"
	case SceneHelp:
		return "Help"
	default:
		return "Unknown"
	}
}

// ComparisonCompleteMsg carries the outcome of a comparison run
type ComparisonCompleteMsg struct {
	Result    *domain.RegimeComparisonResult
	BreakEven *breakeven.Result
	Err       error
}

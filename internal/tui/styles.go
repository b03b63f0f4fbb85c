package tui

import "github.com/jusliketht/bbofficial-sub003/internal/tui/tuistyles"

// Re-export styles from tuistyles to avoid import cycles with components
var (
	TitleStyle             = tuistyles.TitleStyle
	SubtitleStyle          = tuistyles.SubtitleStyle
	StatusBarStyle         = tuistyles.StatusBarStyle
	StatusKeyStyle         = tuistyles.StatusKeyStyle
	BorderStyle            = tuistyles.BorderStyle
	FieldLabelStyle        = tuistyles.FieldLabelStyle
	FocusedFieldLabelStyle = tuistyles.FocusedFieldLabelStyle
	MetricPositiveStyle    = tuistyles.MetricPositiveStyle
	ErrorStyle             = tuistyles.ErrorStyle
)

var FormatCurrency = tuistyles.FormatCurrency

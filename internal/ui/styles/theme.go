package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme represents a color scheme for the application
type Theme struct {
	Name string

	// Base colors
	Background    lipgloss.Color
	Foreground    lipgloss.Color
	ForegroundDim lipgloss.Color

	// Accent colors
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Accent    lipgloss.Color

	// Semantic colors
	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color
	Info    lipgloss.Color

	// UI element colors
	Border      lipgloss.Color
	BorderFocus lipgloss.Color
	Selection   lipgloss.Color
	Cursor      lipgloss.Color

	// Chart colors
	TodayLine lipgloss.Color
	Weekend   lipgloss.Color
	GridDim   lipgloss.Color
	Related   lipgloss.Color
}

// TokyoNight is the default color theme
var TokyoNight = Theme{
	Name: "Tokyo Night",

	Background:    lipgloss.Color("#1a1b26"),
	Foreground:    lipgloss.Color("#c0caf5"),
	ForegroundDim: lipgloss.Color("#565f89"),

	Primary:   lipgloss.Color("#7aa2f7"),
	Secondary: lipgloss.Color("#bb9af7"),
	Accent:    lipgloss.Color("#7dcfff"),

	Success: lipgloss.Color("#9ece6a"),
	Warning: lipgloss.Color("#e0af68"),
	Error:   lipgloss.Color("#f7768e"),
	Info:    lipgloss.Color("#7aa2f7"),

	Border:      lipgloss.Color("#3b4261"),
	BorderFocus: lipgloss.Color("#7aa2f7"),
	Selection:   lipgloss.Color("#33467c"),
	Cursor:      lipgloss.Color("#c0caf5"),

	TodayLine: lipgloss.Color("#f7768e"),
	Weekend:   lipgloss.Color("#24283b"),
	GridDim:   lipgloss.Color("#292e42"),
	Related:   lipgloss.Color("#e0af68"),
}

// Current holds the active theme
var Current = TokyoNight

// Styles holds all the pre-computed styles for the UI
type Styles struct {
	// App container
	App lipgloss.Style

	// Title bar
	Title      lipgloss.Style
	TitleMuted lipgloss.Style

	// Chart header (date row)
	HeaderCell    lipgloss.Style
	HeaderWeekend lipgloss.Style
	HeaderToday   lipgloss.Style
	HeaderMonth   lipgloss.Style

	// Lane column
	LaneLabel    lipgloss.Style
	LaneCount    lipgloss.Style
	LaneFallback lipgloss.Style

	// Task bars
	BarLabel         lipgloss.Style
	BarLabelSelected lipgloss.Style
	BarLabelRelated  lipgloss.Style
	BarLabelDelayed  lipgloss.Style
	BarLabelDim      lipgloss.Style

	// Lists and forms
	ListItem     lipgloss.Style
	ListSelected lipgloss.Style
	Label        lipgloss.Style
	Input        lipgloss.Style
	InputFocused lipgloss.Style

	// Buttons
	Button        lipgloss.Style
	ButtonFocused lipgloss.Style
	ButtonPrimary lipgloss.Style

	// Overlays
	Overlay      lipgloss.Style
	OverlayTitle lipgloss.Style

	// Help text
	Help     lipgloss.Style
	HelpKey  lipgloss.Style
	HelpDesc lipgloss.Style

	// Status bar
	StatusBar lipgloss.Style
	StatusOK  lipgloss.Style
	StatusErr lipgloss.Style
}

// NewStyles creates styles based on the current theme
func NewStyles() *Styles {
	t := Current

	return &Styles{
		App: lipgloss.NewStyle().
			Background(t.Background).
			Foreground(t.Foreground),

		Title: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true),

		TitleMuted: lipgloss.NewStyle().
			Foreground(t.ForegroundDim),

		HeaderCell: lipgloss.NewStyle().
			Foreground(t.ForegroundDim),

		HeaderWeekend: lipgloss.NewStyle().
			Foreground(t.ForegroundDim).
			Background(t.Weekend),

		HeaderToday: lipgloss.NewStyle().
			Foreground(t.Background).
			Background(t.Primary).
			Bold(true),

		HeaderMonth: lipgloss.NewStyle().
			Foreground(t.Accent).
			Bold(true),

		LaneLabel: lipgloss.NewStyle().
			Foreground(t.Foreground).
			Bold(true),

		LaneCount: lipgloss.NewStyle().
			Foreground(t.ForegroundDim),

		LaneFallback: lipgloss.NewStyle().
			Foreground(t.Warning).
			Bold(true),

		BarLabel: lipgloss.NewStyle().
			Foreground(t.ForegroundDim),

		BarLabelSelected: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true),

		BarLabelRelated: lipgloss.NewStyle().
			Foreground(t.Related).
			Bold(true),

		BarLabelDelayed: lipgloss.NewStyle().
			Foreground(t.Error).
			Bold(true),

		BarLabelDim: lipgloss.NewStyle().
			Foreground(t.GridDim),

		ListItem: lipgloss.NewStyle().
			Foreground(t.Foreground).
			Padding(0, 2),

		ListSelected: lipgloss.NewStyle().
			Foreground(t.Primary).
			Background(t.Selection).
			Padding(0, 2).
			Bold(true),

		Label: lipgloss.NewStyle().
			Foreground(t.ForegroundDim),

		Input: lipgloss.NewStyle().
			Foreground(t.Foreground).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Border).
			Padding(0, 1),

		InputFocused: lipgloss.NewStyle().
			Foreground(t.Foreground).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.BorderFocus).
			Padding(0, 1),

		Button: lipgloss.NewStyle().
			Foreground(t.Foreground).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Border).
			Padding(0, 2),

		ButtonFocused: lipgloss.NewStyle().
			Foreground(t.Primary).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.BorderFocus).
			Padding(0, 2).
			Bold(true),

		ButtonPrimary: lipgloss.NewStyle().
			Foreground(t.Background).
			Background(t.Primary).
			Padding(0, 2).
			Bold(true),

		Overlay: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.BorderFocus).
			Padding(1, 2),

		OverlayTitle: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true),

		Help: lipgloss.NewStyle().
			Foreground(t.ForegroundDim).
			Padding(1, 2),

		HelpKey: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true),

		HelpDesc: lipgloss.NewStyle().
			Foreground(t.ForegroundDim),

		StatusBar: lipgloss.NewStyle().
			Foreground(t.ForegroundDim).
			Padding(0, 1),

		StatusOK: lipgloss.NewStyle().
			Foreground(t.Success).
			Padding(0, 1),

		StatusErr: lipgloss.NewStyle().
			Foreground(t.Error).
			Padding(0, 1),
	}
}

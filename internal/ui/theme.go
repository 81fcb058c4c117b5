package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"
)

// Theme defines colors and styles for the UI.
type Theme struct {
	Name string

	// Base colors
	Background string // Outermost background
	Surface    string // Main content panels
	SurfaceAlt string // Secondary surfaces
	FocusBg    string // Focus/active states

	// Table colors
	SelectionBg   string // Selected row background
	SelectionText string // Selected row text

	// Border colors
	Border      string // Default border
	BorderFocus string // Focus border

	// Text colors
	Text    string
	Muted   string
	Faint   string
	Accent  string
	Success string
	Warning string
	Danger  string
	Info    string
}

// Styles returns Lipgloss styles for this theme.
func (t Theme) Styles() Styles {
	return Styles{
		// Text styles
		Text: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Text)),

		MutedText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Muted)),

		FaintText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Faint)),

		AccentText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)),

		SuccessText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Success)).
			Bold(true),

		WarningText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Warning)),

		DangerText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Danger)).
			Bold(true),

		InfoText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Info)),

		// Component styles
		Header: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Text)).
			Padding(0, 1),

		Logo: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Warning)).
			Bold(true),

		Badge: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Background)).
			Padding(0, 1),

		levelColors: map[zerolog.Level]string{
			zerolog.TraceLevel: t.Faint,
			zerolog.DebugLevel: t.Muted,
			zerolog.InfoLevel:  t.Info,
			zerolog.WarnLevel:  t.Warning,
			zerolog.ErrorLevel: t.Danger,
			zerolog.FatalLevel: t.Danger,
			zerolog.PanicLevel: t.Danger,
		},
		text: t.Text,
	}
}

// Styles contains pre-built Lipgloss styles for the theme.
type Styles struct {
	// Text
	Text        lipgloss.Style
	MutedText   lipgloss.Style
	FaintText   lipgloss.Style
	AccentText  lipgloss.Style
	SuccessText lipgloss.Style
	WarningText lipgloss.Style
	DangerText  lipgloss.Style
	InfoText    lipgloss.Style

	// Components
	Header lipgloss.Style
	Logo   lipgloss.Style
	Badge  lipgloss.Style

	levelColors map[zerolog.Level]string
	text        string
}

// LevelStyle returns the foreground style for a log level.
func (s Styles) LevelStyle(level zerolog.Level) lipgloss.Style {
	color, ok := s.levelColors[level]
	if !ok {
		color = s.text
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
}

// BadgeStyle returns a filled badge in the given color.
func (s Styles) BadgeStyle(color string) lipgloss.Style {
	return s.Badge.Background(lipgloss.Color(color))
}

// WithBackground returns a copy of Styles with all text styles having the specified background.
// This ensures styled text has explicit backgrounds instead of transparent/inherit.
func (s Styles) WithBackground(bgColor string) Styles {
	bg := lipgloss.Color(bgColor)

	return Styles{
		// Text styles with background
		Text:        s.Text.Background(bg),
		MutedText:   s.MutedText.Background(bg),
		FaintText:   s.FaintText.Background(bg),
		AccentText:  s.AccentText.Background(bg),
		SuccessText: s.SuccessText.Background(bg),
		WarningText: s.WarningText.Background(bg),
		DangerText:  s.DangerText.Background(bg),
		InfoText:    s.InfoText.Background(bg),

		// Component styles with background
		Header: s.Header.Background(bg),
		Logo:   s.Logo.Background(bg),
		Badge:  s.Badge,

		levelColors: s.levelColors,
		text:        s.text,
	}
}

// palettes lists the built-in themes in cycling order. Colors come from
// Nightfox, Kanagawa and Tailwind's slate/sky scale.
var palettes = []Theme{
	{
		Name: "Nightfox",
		Background: "#131a24", Surface: "#192330", SurfaceAlt: "#212e3f", FocusBg: "#29394f",
		SelectionBg: "#2b3b51", SelectionText: "#cdcecf",
		Border: "#39506d", BorderFocus: "#719cd6",
		Text: "#cdcecf", Muted: "#738091", Faint: "#71839b", Accent: "#719cd6",
		Success: "#81b29a", Warning: "#dbc074", Danger: "#c94f6d", Info: "#63cdcf",
	},
	{
		Name: "Kanagawa",
		Background: "#16161D", Surface: "#1F1F28", SurfaceAlt: "#2A2A37", FocusBg: "#2A2A37",
		SelectionBg: "#2D4F67", SelectionText: "#DCD7BA",
		Border: "#54546D", BorderFocus: "#7E9CD8",
		Text: "#DCD7BA", Muted: "#C8C093", Faint: "#727169", Accent: "#7E9CD8",
		Success: "#98BB6C", Warning: "#E6C384", Danger: "#E46876", Info: "#7FB4CA",
	},
	{
		Name: "Slate",
		Background: "#020617", Surface: "#0f172a", SurfaceAlt: "#1e293b", FocusBg: "#283548",
		SelectionBg: "#0284c7", SelectionText: "#f8fafc",
		Border: "#334155", BorderFocus: "#38bdf8",
		Text: "#f1f5f9", Muted: "#94a3b8", Faint: "#64748b", Accent: "#38bdf8",
		Success: "#22c55e", Warning: "#f59e0b", Danger: "#ef4444", Info: "#06b6d4",
	},
}

// GetTheme returns a theme by name, falling back to the first palette.
func GetTheme(name string) Theme {
	for _, t := range palettes {
		if t.Name == name {
			return t
		}
	}
	return palettes[0]
}

// NextTheme returns the theme name after current, wrapping around.
func NextTheme(current string) string {
	for i, t := range palettes {
		if t.Name == current {
			return palettes[(i+1)%len(palettes)].Name
		}
	}
	return palettes[0].Name
}

// ThemeNames returns the theme names in cycling order.
func ThemeNames() []string {
	names := make([]string, len(palettes))
	for i, t := range palettes {
		names[i] = t.Name
	}
	return names
}

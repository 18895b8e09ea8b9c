// Package ui provides the visual styling and pure renderers for the
// accountability terminal client. The palette is the terminal look of the
// web dashboard: soft green text on near-black panels with blue headings.
package ui

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette
var (
	// Dark Mode Colors (Default)
	DarkBackground = lipgloss.Color("#0A0A0A")
	DarkForeground = lipgloss.Color("#E0E0E0")
	DarkPrimary    = lipgloss.Color("#00A040") // Terminal green
	DarkAccent     = lipgloss.Color("#88CCFF") // Heading blue
	DarkSecondary  = lipgloss.Color("#4080C0") // Link blue
	DarkMuted      = lipgloss.Color("#808080")
	DarkBorder     = lipgloss.Color("#444444")
	DarkPanel      = lipgloss.Color("#1A1A1A")

	// Light Mode Colors
	LightBackground = lipgloss.Color("#f4f5f6")
	LightForeground = lipgloss.Color("#1A1A1A")
	LightPrimary    = lipgloss.Color("#00703C")
	LightAccent     = lipgloss.Color("#2A5C8F")
	LightSecondary  = lipgloss.Color("#2A5C8F")
	LightMuted      = lipgloss.Color("#6a737d")
	LightBorder     = lipgloss.Color("#c0c4cc")
	LightPanel      = lipgloss.Color("#ffffff")

	// Semantic Colors (same in both modes)
	Destructive = lipgloss.Color("#e53935")
	Warning     = lipgloss.Color("#FFC107")

	// Entity chip colors
	ChipRed    = lipgloss.Color("#7f1d1d")
	ChipOrange = lipgloss.Color("#7c2d12")
	ChipPurple = lipgloss.Color("#4c1d95")
)

// Theme holds the current color scheme
type Theme struct {
	Background lipgloss.Color
	Foreground lipgloss.Color
	Primary    lipgloss.Color
	Accent     lipgloss.Color
	Secondary  lipgloss.Color
	Muted      lipgloss.Color
	Border     lipgloss.Color
	Panel      lipgloss.Color
	IsDark     bool
}

// DarkTheme returns the dark mode theme
func DarkTheme() Theme {
	return Theme{
		Background: DarkBackground,
		Foreground: DarkForeground,
		Primary:    DarkPrimary,
		Accent:     DarkAccent,
		Secondary:  DarkSecondary,
		Muted:      DarkMuted,
		Border:     DarkBorder,
		Panel:      DarkPanel,
		IsDark:     true,
	}
}

// LightTheme returns the light mode theme
func LightTheme() Theme {
	return Theme{
		Background: LightBackground,
		Foreground: LightForeground,
		Primary:    LightPrimary,
		Accent:     LightAccent,
		Secondary:  LightSecondary,
		Muted:      LightMuted,
		Border:     LightBorder,
		Panel:      LightPanel,
		IsDark:     false,
	}
}

// ThemeFor maps a ui.theme config value to a Theme. Unknown names and "auto"
// fall back to DetectTheme.
func ThemeFor(name string) Theme {
	switch strings.ToLower(name) {
	case "dark":
		return DarkTheme()
	case "light":
		return LightTheme()
	default:
		return DetectTheme()
	}
}

// DetectTheme picks a theme from the environment. Dark is the default.
func DetectTheme() Theme {
	switch os.Getenv("ACCT_DARK_MODE") {
	case "1":
		return DarkTheme()
	case "0":
		return LightTheme()
	}

	// COLORFGBG is "foreground;background"; 7 and 9-15 are light backgrounds.
	if colorTerm := os.Getenv("COLORFGBG"); colorTerm != "" {
		parts := strings.Split(colorTerm, ";")
		if bgIdx, err := strconv.Atoi(parts[len(parts)-1]); err == nil {
			if bgIdx == 7 || (bgIdx >= 9 && bgIdx <= 15) {
				return LightTheme()
			}
		}
	}
	return DarkTheme()
}

// Styles holds all the styled components
type Styles struct {
	Theme Theme

	// Layout
	Header lipgloss.Style
	Footer lipgloss.Style
	Window lipgloss.Style
	Panel  lipgloss.Style

	// Text
	Title lipgloss.Style
	Body  lipgloss.Style
	Muted lipgloss.Style
	Bold  lipgloss.Style
	Label lipgloss.Style

	// Interactive
	Prompt      lipgloss.Style
	UserInput   lipgloss.Style
	Placeholder lipgloss.Style
	Button      lipgloss.Style

	// Status
	Error      lipgloss.Style
	ErrorPanel lipgloss.Style
	Warning    lipgloss.Style

	// Dashboard
	ChipAccused lipgloss.Style
	ChipVictim  lipgloss.Style
	ChipOrg     lipgloss.Style
	Link        lipgloss.Style
	Badge       lipgloss.Style

	// Components
	Spinner lipgloss.Style
	LogLine lipgloss.Style
	Divider lipgloss.Style
}

// NewStyles creates a new Styles instance with the given theme
func NewStyles(theme Theme) Styles {
	chip := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#f2f2f2")).
		Padding(0, 1)

	return Styles{
		Theme: theme,

		Header: lipgloss.NewStyle().
			Foreground(theme.Accent).
			Bold(true).
			Padding(1, 2),

		Footer: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Padding(0, 2),

		Window: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(1, 2),

		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, PanelPaddingH),

		Title: lipgloss.NewStyle().
			Foreground(theme.Secondary).
			Bold(true),

		Body: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Bold: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			Bold(true),

		Label: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			Bold(true),

		Prompt: lipgloss.NewStyle().
			Foreground(theme.Primary),

		UserInput: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		Placeholder: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Button: lipgloss.NewStyle().
			Foreground(theme.Secondary).
			Border(lipgloss.NormalBorder()).
			BorderForeground(theme.Secondary).
			Padding(0, 2),

		Error: lipgloss.NewStyle().
			Foreground(Destructive).
			Bold(true),

		ErrorPanel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Destructive).
			Padding(1, 3).
			Align(lipgloss.Center),

		Warning: lipgloss.NewStyle().
			Foreground(Warning).
			Bold(true),

		ChipAccused: chip.Background(ChipRed),
		ChipVictim:  chip.Background(ChipOrange),
		ChipOrg:     chip.Background(ChipPurple),

		Link: lipgloss.NewStyle().
			Foreground(theme.Secondary).
			Underline(true),

		Badge: lipgloss.NewStyle().
			Background(theme.Primary).
			Foreground(lipgloss.Color("#ffffff")).
			Padding(0, 1).
			Bold(true),

		Spinner: lipgloss.NewStyle().
			Foreground(theme.Primary),

		LogLine: lipgloss.NewStyle().
			Foreground(theme.Primary),

		Divider: lipgloss.NewStyle().
			Foreground(theme.Border),
	}
}

// AppTitle is the header text.
const AppTitle = "ACCOUNTABILITY++"

// Disclaimer is the footer text.
const Disclaimer = "Warning: Only for test. Does not guarantee validity of the data as it is a project."

// RenderHeader returns the centered application title.
func (s Styles) RenderHeader(width int) string {
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, s.Header.Render(AppTitle))
}

// RenderFooter returns the centered disclaimer, optionally followed by help.
func (s Styles) RenderFooter(width int, help string) string {
	footer := s.Footer.Render(Disclaimer)
	if help != "" {
		footer = lipgloss.JoinVertical(lipgloss.Center, s.Footer.Render(help), footer)
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, footer)
}

// RenderDivider returns a horizontal divider
func (s Styles) RenderDivider(width int) string {
	if width <= 0 {
		return ""
	}
	return s.Divider.Render(strings.Repeat("─", width))
}

// RenderButton renders a labelled button.
func (s Styles) RenderButton(label string) string {
	return s.Button.Render(label)
}

// Fade blends the theme's primary color toward the background. opacity is
// clamped to [0,1]; 1 is the primary color unchanged.
func (t Theme) Fade(opacity float64) lipgloss.Color {
	if opacity >= 1 {
		return t.Primary
	}
	if opacity < 0 {
		opacity = 0
	}
	fr, fg, fb, ok1 := parseHex(string(t.Primary))
	br, bg, bb, ok2 := parseHex(string(t.Background))
	if !ok1 || !ok2 {
		return t.Primary
	}
	mix := func(f, b int) int {
		return int(float64(b) + (float64(f)-float64(b))*opacity + 0.5)
	}
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", mix(fr, br), mix(fg, bg), mix(fb, bb)))
}

func parseHex(c string) (r, g, b int, ok bool) {
	if len(c) != 7 || c[0] != '#' {
		return 0, 0, 0, false
	}
	v, err := strconv.ParseUint(c[1:], 16, 32)
	if err != nil {
		return 0, 0, 0, false
	}
	return int(v >> 16 & 0xff), int(v >> 8 & 0xff), int(v & 0xff), true
}

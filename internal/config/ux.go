package config

// Theme names accepted in ui.theme.
const (
	ThemeAuto  = "auto"
	ThemeDark  = "dark"
	ThemeLight = "light"
)

// ValidThemes lists all supported themes.
var ValidThemes = []string{ThemeAuto, ThemeDark, ThemeLight}

// UIConfig holds user interface configuration.
type UIConfig struct {
	// Theme is auto, dark or light. auto inspects the terminal.
	Theme string `yaml:"theme" json:"theme,omitempty"`
}

// IsValidTheme reports whether name is one of ValidThemes. Empty means auto.
func IsValidTheme(name string) bool {
	if name == "" {
		return true
	}
	for _, t := range ValidThemes {
		if t == name {
			return true
		}
	}
	return false
}

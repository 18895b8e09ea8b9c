// Package ui layout constants for consistent spacing and dimensions
package ui

// Layout constants for viewport and panel sizing
const (
	// Viewport padding and margins
	ViewportHorizontalPadding = 4

	// Split pane dimensions
	SplitPaneLeftRatio = 0.5
	SplitPaneDivider   = 1

	// Panel borders and spacing
	PanelBorderWidth = 1 // per side
	PanelPaddingH    = 1
	ChipGap          = 1

	// Control areas
	HeaderHeight = 3
	FooterHeight = 3

	// Responsive breakpoints
	MinimumTerminalWidth = 40
	CompactModeWidth     = 100
	DefaultWidth         = 80

	// Window widths
	PromptWindowWidth = 80
	ErrorPanelWidth   = 60
)

// LayoutConfig provides computed layout dimensions based on terminal size
type LayoutConfig struct {
	TerminalWidth  int
	TerminalHeight int
	IsCompact      bool
}

// NewLayoutConfig creates a layout configuration for the given terminal size
func NewLayoutConfig(width, height int) LayoutConfig {
	if width <= 0 {
		width = DefaultWidth
	}
	return LayoutConfig{
		TerminalWidth:  width,
		TerminalHeight: height,
		IsCompact:      width < CompactModeWidth,
	}
}

// ContentWidth returns the usable content width for the dashboard
func (l LayoutConfig) ContentWidth() int {
	return max(l.TerminalWidth-ViewportHorizontalPadding, MinimumTerminalWidth)
}

// ContentHeight returns the height left for the viewport between header and
// footer.
func (l LayoutConfig) ContentHeight() int {
	return max(l.TerminalHeight-HeaderHeight-FooterHeight, 1)
}

// SideBySide reports whether narrative and entities share a row.
func (l LayoutConfig) SideBySide() bool {
	return !l.IsCompact
}

// SplitPaneWidths calculates left and right pane widths for a split view
func SplitPaneWidths(totalWidth int) (leftWidth, rightWidth int) {
	leftWidth = int(float64(totalWidth) * SplitPaneLeftRatio)
	rightWidth = totalWidth - leftWidth - SplitPaneDivider
	return
}

// PanelInnerWidth returns the lipgloss Width for a bordered panel whose
// outer width is panelWidth. Width includes padding but not the border.
func PanelInnerWidth(panelWidth int) int {
	return max(panelWidth-PanelBorderWidth*2, 1)
}

// PanelTextWidth returns the width available to text inside a panel.
func PanelTextWidth(panelWidth int) int {
	return max(panelWidth-PanelBorderWidth*2-PanelPaddingH*2, 1)
}

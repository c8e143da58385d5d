package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines the colors of banners.
type Theme struct {
	Primary lipgloss.Color
	Dim     lipgloss.Color
}

// DefaultTheme is the default bright green theme.
var DefaultTheme = Theme{
	Primary: lipgloss.Color("#00ff9f"),
	Dim:     lipgloss.Color("#6e7681"),
}

// Styles holds all styles derived from a theme.
type Styles struct {
	Title  lipgloss.Style
	Border lipgloss.Style
	Help   lipgloss.Style
}

// NewStyles creates styles from a theme.
func NewStyles(t Theme) Styles {
	return Styles{
		Title:  lipgloss.NewStyle().Bold(true).Foreground(t.Primary),
		Border: lipgloss.NewStyle().Foreground(t.Primary),
		Help:   lipgloss.NewStyle().Foreground(t.Dim),
	}
}

var defaultStyles = NewStyles(DefaultTheme)

// BannerWidth is the width of the rule drawn around banners.
const BannerWidth = 60

// Banner writes msg centered between two horizontal rules.
func Banner(w io.Writer, msg string) error {
	return writeBanner(w, defaultStyles.Title.Render(msg))
}

// StepBanner writes the progress banner of a reflection step.
func StepBanner(w io.Writer, step, total int) error {
	return Banner(w, fmt.Sprintf("STEP %d/%d", step, total))
}

// Dim writes msg in the dimmed style followed by a newline.
func Dim(w io.Writer, msg string) error {
	_, err := fmt.Fprintln(w, defaultStyles.Help.Render(msg))
	return err
}

func writeBanner(w io.Writer, title string) error {
	rule := defaultStyles.Border.Render(strings.Repeat("─", BannerWidth))
	pad := max(0, (BannerWidth-lipgloss.Width(title))/2)
	_, err := fmt.Fprintf(w, "\n%s\n%s%s\n%s\n\n", rule, strings.Repeat(" ", pad), title, rule)
	return err
}

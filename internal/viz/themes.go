package viz

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"
)

var ErrUnknownTheme = errors.New("viz: unknown theme")

// Theme defines color scheme for the TUI
type Theme struct {
	Name       string
	Primary    lipgloss.Color
	Accent     lipgloss.Color
	Background lipgloss.Color
}

// Available themes
var (
	ThemeMatrix = Theme{
		Name:       "matrix",
		Primary:    lipgloss.Color("#00ff41"),
		Accent:     lipgloss.Color("#d1ffd6"),
		Background: lipgloss.Color("#000000"),
	}

	ThemeCyberpunk = Theme{
		Name:       "cyberpunk",
		Primary:    lipgloss.Color("#ff00ff"),
		Accent:     lipgloss.Color("#ffff00"),
		Background: lipgloss.Color("#0a0a0a"),
	}

	ThemeOcean = Theme{
		Name:       "ocean",
		Primary:    lipgloss.Color("#00a8cc"),
		Accent:     lipgloss.Color("#ffd700"),
		Background: lipgloss.Color("#001a33"),
	}

	ThemeAmber = Theme{
		Name:       "amber",
		Primary:    lipgloss.Color("#ffb000"),
		Accent:     lipgloss.Color("#ffe0a0"),
		Background: lipgloss.Color("#140c00"),
	}

	ThemeMinimal = Theme{
		Name:       "minimal",
		Primary:    lipgloss.Color("#ffffff"),
		Accent:     lipgloss.Color("#0088ff"),
		Background: lipgloss.Color("#000000"),
	}

	Themes = []Theme{
		ThemeMatrix,
		ThemeCyberpunk,
		ThemeOcean,
		ThemeAmber,
		ThemeMinimal,
	}
)

// GetTheme returns a theme by name, falling back to matrix.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeMatrix
}

// LookupTheme is GetTheme without the fallback. An empty name is matrix.
func LookupTheme(name string) (Theme, error) {
	if name == "" {
		return ThemeMatrix, nil
	}
	for _, t := range Themes {
		if t.Name == name {
			return t, nil
		}
	}
	return Theme{}, fmt.Errorf("%w: %s (available: %v)", ErrUnknownTheme, name, ThemeNames())
}

// NextTheme returns the theme after t in Themes, wrapping around.
func NextTheme(t Theme) Theme {
	for i, th := range Themes {
		if th.Name == t.Name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

// Palette returns n foreground colours fading from just above the
// background up to Primary. Index 0 is the faintest.
func (t Theme) Palette(n int) []lipgloss.Color {
	bg, fg := hexColor(t.Background), hexColor(t.Primary)
	out := make([]lipgloss.Color, n)
	for i := range out {
		c := bg.BlendLab(fg, float64(i+1)/float64(n)).Clamped()
		out[i] = lipgloss.Color(c.Hex())
	}
	return out
}

// RGBA returns the primary and background colours for raster output.
func (t Theme) RGBA() (fg, bg color.NRGBA) {
	return nrgba(hexColor(t.Primary)), nrgba(hexColor(t.Background))
}

func hexColor(c lipgloss.Color) colorful.Color {
	col, err := colorful.Hex(string(c))
	if err != nil {
		return colorful.Color{R: 1, G: 1, B: 1}
	}
	return col
}

func nrgba(c colorful.Color) color.NRGBA {
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}
}

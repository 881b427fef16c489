package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	goghthemes "github.com/willyv3/gogh-themes"
)

// defaultThemeName is used when neither a flag, the board nor
// ASCIIGRID_THEME picks a theme.
const defaultThemeName = "Dracula"

// Theme provides all colors used by the page stylesheet and the terminal views.
type Theme struct {
	Name string

	// Base colors
	Background string
	Foreground string
	Subtle     string

	// Semantic colors
	Blue   string
	Green  string
	Red    string
	Yellow string
	Purple string
	Cyan   string
	Gray   string
	Dark   string

	// Cell surfaces
	CellBackground string
	CellBorder     string

	// Palette assigns a color per distinct layout symbol.
	Palette []string
}

// SymbolColor returns a stable palette color for the i-th distinct symbol.
func (t Theme) SymbolColor(i int) string {
	if len(t.Palette) == 0 {
		return t.Foreground
	}
	return t.Palette[i%len(t.Palette)]
}

// themes registry - gogh-themes palettes plus any YAML themes
var themes = make(map[string]Theme)

// CurrentTheme is the active theme
var CurrentTheme Theme

// currentThemeName tracks the current theme name for cycling
var currentThemeName string

// themeOrder defines the order for cycling through themes
var themeOrder []string

// InitTheme loads the theme registry and activates name. An empty name falls
// back to ASCIIGRID_THEME, then the default theme, then the first theme.
func InitTheme(name string) {
	if len(themes) == 0 {
		loadAllThemes()
	}
	buildThemeOrder()

	if name == "" {
		name = os.Getenv("ASCIIGRID_THEME")
	}
	if name == "" {
		name = defaultThemeName
	}

	if _, err := SetTheme(name); err != nil {
		if _, err := SetTheme(defaultThemeName); err != nil && len(themeOrder) > 0 {
			CurrentTheme = themes[themeOrder[0]]
			currentThemeName = themeOrder[0]
		}
	}
	InitStyles()
}

// SetTheme activates a theme by name. Lookup falls back to a
// case-insensitive match.
func SetTheme(name string) (Theme, error) {
	theme, ok := LookupTheme(name)
	if !ok {
		return Theme{}, fmt.Errorf("unknown theme %q", name)
	}
	CurrentTheme = theme
	currentThemeName = theme.Name
	InitStyles()
	return theme, nil
}

// LookupTheme finds a theme without activating it.
func LookupTheme(name string) (Theme, bool) {
	if theme, ok := themes[name]; ok {
		return theme, true
	}
	for key, theme := range themes {
		if strings.EqualFold(key, name) {
			return theme, true
		}
	}
	return Theme{}, false
}

// RegisterThemes adds themes to the registry, replacing same-named entries.
func RegisterThemes(extra map[string]Theme) {
	for name, theme := range extra {
		theme.Name = name
		themes[name] = theme
	}
	buildThemeOrder()
}

// loadAllThemes loads all themes from gogh-themes package
func loadAllThemes() {
	for name, gt := range goghthemes.All() {
		themes[name] = newTheme(name, gt.Background, gt.Foreground, ansiColors{
			black:   gt.Black,
			red:     gt.Red,
			green:   gt.Green,
			yellow:  gt.Yellow,
			blue:    gt.Blue,
			magenta: gt.Magenta,
			cyan:    gt.Cyan,
			white:   gt.White,
		})
	}
}

// ansiColors is the subset of a terminal palette a Theme is derived from.
type ansiColors struct {
	black, red, green, yellow, blue, magenta, cyan, white string
}

func newTheme(name, background, foreground string, c ansiColors) Theme {
	return Theme{
		Name:       name,
		Background: background,
		Foreground: foreground,
		Subtle:     generateShade(background, 1.3), // 30% brighter

		Blue:   c.blue,
		Green:  c.green,
		Red:    c.red,
		Yellow: c.yellow,
		Purple: c.magenta,
		Cyan:   c.cyan,
		Gray:   c.white,
		Dark:   c.black,

		CellBackground: generateShade(background, 1.15),
		CellBorder:     generateShade(c.blue, 0.6),

		Palette: []string{c.blue, c.green, c.yellow, c.magenta, c.cyan, c.red},
	}
}

// buildThemeOrder creates alphabetically sorted theme cycling order
func buildThemeOrder() {
	themeOrder = make([]string, 0, len(themes))
	for name := range themes {
		themeOrder = append(themeOrder, name)
	}
	sort.Strings(themeOrder)
}

// NextTheme cycles to the next theme in the rotation
func NextTheme() string {
	if len(themeOrder) == 0 {
		return currentThemeName
	}

	currentIndex := 0
	for i, name := range themeOrder {
		if name == currentThemeName {
			currentIndex = i
			break
		}
	}

	nextIndex := (currentIndex + 1) % len(themeOrder)
	nextThemeName := themeOrder[nextIndex]

	CurrentTheme = themes[nextThemeName]
	currentThemeName = nextThemeName
	InitStyles()

	return nextThemeName
}

// GetCurrentThemeName returns the name of the active theme
func GetCurrentThemeName() string {
	return currentThemeName
}

// ThemeNames returns every registered theme name in cycling order.
func ThemeNames() []string {
	return append([]string(nil), themeOrder...)
}

// generateShade adjusts the brightness of a color
// factor < 1.0 darkens, factor > 1.0 brightens, factor = 1.0 returns original
func generateShade(hexColor string, factor float64) string {
	c, err := colorful.Hex("#" + strings.TrimPrefix(hexColor, "#"))
	if err != nil {
		return hexColor
	}
	return colorful.Color{R: c.R * factor, G: c.G * factor, B: c.B * factor}.Clamped().Hex()
}

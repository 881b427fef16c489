package main

import "github.com/charmbracelet/lipgloss"

// All terminal styles derive from CurrentTheme and are rebuilt by InitStyles
// whenever the theme changes.

// GetBaseStyle returns the base text style with theme foreground color
func GetBaseStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(CurrentTheme.Foreground))
}

// GetTitleStyle returns the section title style
func GetTitleStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(CurrentTheme.Blue))
}

// GetLabelStyle returns the muted label style
func GetLabelStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(CurrentTheme.Gray))
}

// GetBannerStyle returns the style for the ASCII title banner
func GetBannerStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(CurrentTheme.Green)).
		Bold(true)
}

func GetStatusBarStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(CurrentTheme.Gray)).
		Background(lipgloss.Color(CurrentTheme.Subtle))
}

func GetErrorStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(CurrentTheme.Red)).
		Bold(true)
}

func GetLoadingStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(CurrentTheme.Gray)).
		Bold(true)
}

// GetCellStyle returns the bordered box used for one grid cell. Mapped cells
// take the symbol's palette color; literal cells stay muted.
func GetCellStyle(color string, mapped bool) lipgloss.Style {
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(CurrentTheme.CellBorder)).
		Align(lipgloss.Center, lipgloss.Center)
	if mapped {
		return style.
			Foreground(lipgloss.Color(color)).
			BorderForeground(lipgloss.Color(color)).
			Bold(true)
	}
	return style.Foreground(lipgloss.Color(CurrentTheme.Gray))
}

var (
	baseStyle      = GetBaseStyle()
	titleStyle     = GetTitleStyle()
	labelStyle     = GetLabelStyle()
	bannerStyle    = GetBannerStyle()
	statusBarStyle = GetStatusBarStyle()
	errorStyle     = GetErrorStyle()
	loadingStyle   = GetLoadingStyle()
)

// InitStyles rebuilds the global styles from CurrentTheme.
func InitStyles() {
	baseStyle = GetBaseStyle()
	titleStyle = GetTitleStyle()
	labelStyle = GetLabelStyle()
	bannerStyle = GetBannerStyle()
	statusBarStyle = GetStatusBarStyle()
	errorStyle = GetErrorStyle()
	loadingStyle = GetLoadingStyle()
}

// barStyle sizes a bar proportionally to share of maxWidth.
func barStyle(share float64, maxWidth int, color string) lipgloss.Style {
	width := int(share * float64(maxWidth))
	if width < 1 {
		width = 1
	}
	return lipgloss.NewStyle().
		Background(lipgloss.Color(color)).
		Width(width)
}

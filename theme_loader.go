package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// YAMLTheme represents the structure of theme YAML files
// These come from terminal color schemes with 16 ANSI colors
type YAMLTheme struct {
	Name       string `yaml:"name"`
	Author     string `yaml:"author"`
	Variant    string `yaml:"variant"` // dark or light
	Background string `yaml:"background"`
	Foreground string `yaml:"foreground"`
	Cursor     string `yaml:"cursor"`

	// 16 ANSI colors (color_01 through color_16)
	Color01 string `yaml:"color_01"` // Black
	Color02 string `yaml:"color_02"` // Red
	Color03 string `yaml:"color_03"` // Green
	Color04 string `yaml:"color_04"` // Yellow
	Color05 string `yaml:"color_05"` // Blue
	Color06 string `yaml:"color_06"` // Magenta
	Color07 string `yaml:"color_07"` // Cyan
	Color08 string `yaml:"color_08"` // White
	Color09 string `yaml:"color_09"` // Bright Black
	Color10 string `yaml:"color_10"` // Bright Red
	Color11 string `yaml:"color_11"` // Bright Green
	Color12 string `yaml:"color_12"` // Bright Yellow
	Color13 string `yaml:"color_13"` // Bright Blue
	Color14 string `yaml:"color_14"` // Bright Magenta
	Color15 string `yaml:"color_15"` // Bright Cyan
	Color16 string `yaml:"color_16"` // Bright White
}

// ConvertToTheme maps the bright ANSI colors onto the theme's semantic colors
// for contrast against the background.
func (yt *YAMLTheme) ConvertToTheme() Theme {
	return newTheme(themeKey(yt.Name), yt.Background, yt.Foreground, ansiColors{
		black:   yt.Color01,
		red:     yt.Color10,
		green:   yt.Color11,
		yellow:  yt.Color12,
		blue:    yt.Color13,
		magenta: yt.Color14,
		cyan:    yt.Color15,
		white:   yt.Color08,
	})
}

// themeKey normalises a display name: lowercase, spaces to hyphens.
func themeKey(name string) string {
	return strings.ToLower(strings.ReplaceAll(name, " ", "-"))
}

// LoadThemeFromYAML loads a single YAML theme file
func LoadThemeFromYAML(filePath string) (*YAMLTheme, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read theme file: %w", err)
	}

	var yamlTheme YAMLTheme
	if err := yaml.Unmarshal(data, &yamlTheme); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if yamlTheme.Name == "" {
		yamlTheme.Name = strings.TrimSuffix(filepath.Base(filePath), filepath.Ext(filePath))
	}

	return &yamlTheme, nil
}

// LoadAllThemes loads all YAML themes from a directory
// Returns a map of theme-name -> Theme
func LoadAllThemes(logger *slog.Logger, themesDir string) (map[string]Theme, error) {
	themeMap := make(map[string]Theme)

	var files []string
	for _, pattern := range []string{"*.yml", "*.yaml"} {
		matches, err := filepath.Glob(filepath.Join(themesDir, pattern))
		if err != nil {
			return nil, fmt.Errorf("failed to list theme files: %w", err)
		}
		files = append(files, matches...)
	}

	for _, file := range files {
		yamlTheme, err := LoadThemeFromYAML(file)
		if err != nil {
			// Skip invalid themes, don't fail entire load
			logger.Warn("Skipping theme file.", "path", file, "error", err)
			continue
		}

		theme := yamlTheme.ConvertToTheme()
		themeMap[theme.Name] = theme
	}

	logger.Debug("Loaded YAML themes.", "dir", themesDir, "count", len(themeMap))
	return themeMap, nil
}

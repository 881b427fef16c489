package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateShade(t *testing.T) {
	tests := []struct {
		color    string
		factor   float64
		expected string
	}{
		{"#808080", 1.0, "#808080"},
		{"#808080", 0.5, "#404040"},
		{"#c0c0c0", 2.0, "#ffffff"},
		{"102030", 1.0, "#102030"},
		{"#fff", 1.5, "#ffffff"},
		{"#abc", 1.0, "#aabbcc"},
		{"", 1.5, ""},
		{"#zzzzzz", 1.5, "#zzzzzz"},
	}

	for _, tt := range tests {
		if got := generateShade(tt.color, tt.factor); got != tt.expected {
			t.Errorf("generateShade(%q, %.1f) = %s, want %s", tt.color, tt.factor, got, tt.expected)
		}
	}
}

func TestSymbolColor(t *testing.T) {
	theme := Theme{Foreground: "#ffffff", Palette: []string{"#1", "#2"}}
	assert.Equal(t, "#1", theme.SymbolColor(0))
	assert.Equal(t, "#2", theme.SymbolColor(1))
	assert.Equal(t, "#1", theme.SymbolColor(2))
	assert.Equal(t, "#ffffff", Theme{Foreground: "#ffffff"}.SymbolColor(3))
}

func TestThemeRegistry(t *testing.T) {
	InitTheme("")
	RegisterThemes(map[string]Theme{
		"aaa-test-first":  {Blue: "#0000aa"},
		"aaa-test-second": {Blue: "#0000bb"},
	})

	theme, err := SetTheme("AAA-Test-First")
	require.NoError(t, err)
	assert.Equal(t, "aaa-test-first", theme.Name)
	assert.Equal(t, "aaa-test-first", GetCurrentThemeName())
	assert.Equal(t, "#0000aa", CurrentTheme.Blue)

	assert.Equal(t, "aaa-test-second", NextTheme())
	assert.Equal(t, "#0000bb", CurrentTheme.Blue)

	_, err = SetTheme("no-such-theme")
	assert.Error(t, err)
	assert.Equal(t, "aaa-test-second", GetCurrentThemeName())

	assert.Contains(t, ThemeNames(), "aaa-test-first")
}

func TestInitThemeFallsBack(t *testing.T) {
	InitTheme("definitely-not-a-theme")
	assert.NotEmpty(t, GetCurrentThemeName())
	_, ok := LookupTheme(GetCurrentThemeName())
	assert.True(t, ok)
}

func TestNextThemeWraps(t *testing.T) {
	InitTheme("")
	names := ThemeNames()
	require.NotEmpty(t, names)

	_, err := SetTheme(names[len(names)-1])
	require.NoError(t, err)
	assert.Equal(t, names[0], NextTheme())
}

const testYAMLTheme = `name: Test Night
author: someone
variant: dark
background: "#101010"
foreground: "#e0e0e0"
color_01: "#000000"
color_08: "#c0c0c0"
color_10: "#ff0000"
color_11: "#00ff00"
color_12: "#ffff00"
color_13: "#0000ff"
color_14: "#ff00ff"
color_15: "#00ffff"
`

func TestLoadAllThemes(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "night.yml"), []byte(testYAMLTheme), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "nameless.yaml"), []byte(`background: "#000000"`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.yaml"), []byte("name: [\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ignored.txt"), []byte("name: x"), 0o644))

	loaded, err := LoadAllThemes(discardLogger(), dir)
	require.NoError(t, err)
	require.Len(t, loaded, 2)

	night, ok := loaded["test-night"]
	require.True(t, ok, "themes: %v", loaded)
	assert.Equal(t, "#101010", night.Background)
	assert.Equal(t, "#0000ff", night.Blue)
	assert.Equal(t, "#ff00ff", night.Purple)
	assert.Equal(t, "#c0c0c0", night.Gray)
	assert.Equal(t, []string{"#0000ff", "#00ff00", "#ffff00", "#ff00ff", "#00ffff", "#ff0000"}, night.Palette)

	_, ok = loaded["nameless"]
	assert.True(t, ok)
}

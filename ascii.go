package main

import "strings"

// bannerHeight is the number of lines every glyph occupies.
const bannerHeight = 3

// bannerFont is a 3x3 font covering A-Z, 0-9, '@', '-' and space.
var bannerFont = map[rune][bannerHeight]string{
	'A': {" _ ", "|_|", "| |"},
	'B': {" _ ", "|_)", "|_)"},
	'C': {" __", "|  ", "|__"},
	'D': {" _ ", "| \\", "|_/"},
	'E': {" __", "|_ ", "|__"},
	'F': {" __", "|_ ", "|  "},
	'G': {" __", "| _", "|_|"},
	'H': {"   ", "|_|", "| |"},
	'I': {"___", " | ", "_|_"},
	'J': {"  _", "  |", "|_|"},
	'K': {"   ", "|_/", "| \\"},
	'L': {"   ", "|  ", "|__"},
	'M': {"   ", "|v|", "| |"},
	'N': {"   ", "|\\|", "| |"},
	'O': {" _ ", "| |", "|_|"},
	'P': {" _ ", "|_)", "|  "},
	'Q': {" _ ", "| |", "|_\\"},
	'R': {" _ ", "|_)", "| \\"},
	'S': {" __", "(_ ", "__)"},
	'T': {"___", " | ", " | "},
	'U': {"   ", "| |", "|_|"},
	'V': {"   ", "| |", " V "},
	'W': {"   ", "| |", "|^|"},
	'X': {"   ", "\\_/", "/ \\"},
	'Y': {"   ", "\\_/", " | "},
	'Z': {"__ ", " / ", "/__"},
	'0': {" _ ", "|/|", "|_|"},
	'1': {"   ", " /|", "  |"},
	'2': {" _ ", " _)", "/__"},
	'3': {"__ ", " _)", "__)"},
	'4': {"   ", "|_|", "  |"},
	'5': {" __", "|_ ", "__)"},
	'6': {" _ ", "|_ ", "|_)"},
	'7': {"___", "  /", " / "},
	'8': {" _ ", "(_)", "(_)"},
	'9': {" _ ", "(_|", "  |"},
	'@': {" __", "/ a", "\\__"},
	'-': {"   ", "___", "   "},
	' ': {"   ", "   ", "   "},
}

// RenderBanner converts text to 3-line ASCII art. Letters are upper-cased;
// characters outside the font render as blanks.
func RenderBanner(text string) string {
	var lines [bannerHeight][]string

	for _, char := range strings.ToUpper(text) {
		glyph, ok := glyphFor(char)
		if !ok {
			glyph = bannerFont[' ']
		}
		for i := range lines {
			lines[i] = append(lines[i], glyph[i])
		}
	}

	out := make([]string, bannerHeight)
	for i := range lines {
		out[i] = strings.Join(lines[i], " ")
	}
	return strings.Join(out, "\n")
}

// glyphFor returns the glyph for an upper-case character.
func glyphFor(char rune) ([bannerHeight]string, bool) {
	glyph, ok := bannerFont[char]
	return glyph, ok
}

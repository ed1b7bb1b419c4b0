package ansihtml

import (
	"fmt"
	"math"
)

// Palette maps the sixteen standard SGR foreground codes (30-37, 90-97) of a
// terminal emulator to hex colors.
type Palette struct {
	ID         string
	Name       string
	Foreground string
	Background string
	Colors     map[int]string
}

// PaletteInfo is the listing shape of a palette.
type PaletteInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

var standardCodes = [16]int{30, 31, 32, 33, 34, 35, 36, 37, 90, 91, 92, 93, 94, 95, 96, 97}

func newPalette(id, name, fg, bg string, hex [16]string) Palette {
	colors := make(map[int]string, len(hex))
	for i, code := range standardCodes {
		colors[code] = "#" + hex[i]
	}
	return Palette{ID: id, Name: name, Foreground: "#" + fg, Background: "#" + bg, Colors: colors}
}

// The first entry is the fallback for unknown ids.
var palettes = []Palette{
	newPalette("xterm", "xterm", "e5e5e5", "000000", [16]string{
		"000000", "cd0000", "00cd00", "cdcd00", "0000ee", "cd00cd", "00cdcd", "e5e5e5",
		"7f7f7f", "ff0000", "00ff00", "ffff00", "5c5cff", "ff00ff", "00ffff", "ffffff",
	}),
	newPalette("vga", "VGA", "aaaaaa", "000000", [16]string{
		"000000", "aa0000", "00aa00", "aa5500", "0000aa", "aa00aa", "00aaaa", "aaaaaa",
		"555555", "ff5555", "55ff55", "ffff55", "5555ff", "ff55ff", "55ffff", "ffffff",
	}),
	newPalette("windows-console", "Windows Console", "c0c0c0", "000000", [16]string{
		"000000", "800000", "008000", "808000", "000080", "800080", "008080", "c0c0c0",
		"808080", "ff0000", "00ff00", "ffff00", "0000ff", "ff00ff", "00ffff", "ffffff",
	}),
	newPalette("windows-terminal", "Windows Terminal (Campbell)", "cccccc", "0c0c0c", [16]string{
		"0c0c0c", "c50f1f", "13a10e", "c19c00", "0037da", "881798", "3a96dd", "cccccc",
		"767676", "e74856", "16c60c", "f9f1a5", "3b78ff", "b4009e", "61d6d6", "f2f2f2",
	}),
	newPalette("vscode", "VS Code", "cccccc", "1e1e1e", [16]string{
		"000000", "cd3131", "0dbc79", "e5e510", "2472c8", "bc3fbc", "11a8cd", "e5e5e5",
		"666666", "f14c4c", "23d18b", "f5f543", "3b8eea", "d670d6", "29b8db", "e5e5e5",
	}),
	newPalette("terminal-app", "Terminal.app", "000000", "ffffff", [16]string{
		"000000", "c23621", "25bc24", "adad27", "492ee1", "d338d3", "33bbc8", "cbcccd",
		"818383", "fc391f", "31e722", "eaec23", "5833ff", "f935f8", "14f0f0", "e9ebeb",
	}),
	newPalette("putty", "PuTTY", "bbbbbb", "000000", [16]string{
		"000000", "bb0000", "00bb00", "bbbb00", "0000bb", "bb00bb", "00bbbb", "bbbbbb",
		"555555", "ff5555", "55ff55", "ffff55", "5555ff", "ff55ff", "55ffff", "ffffff",
	}),
	newPalette("ubuntu", "Ubuntu", "eeeeec", "300a24", [16]string{
		"2e3436", "cc0000", "4e9a06", "c4a000", "3465a4", "75507b", "06989a", "d3d7cf",
		"555753", "ef2929", "8ae234", "fce94f", "729fcf", "ad7fa8", "34e2e2", "eeeeec",
	}),
}

// Palettes lists the known palettes in display order.
func Palettes() []PaletteInfo {
	out := make([]PaletteInfo, len(palettes))
	for i, p := range palettes {
		out[i] = PaletteInfo{ID: p.ID, Name: p.Name}
	}
	return out
}

// LookupPalette finds a palette by id.
func LookupPalette(id string) (Palette, bool) {
	for _, p := range palettes {
		if p.ID == id {
			return p, true
		}
	}
	return Palette{}, false
}

// PaletteByID returns the palette with the given id, or the default palette.
func PaletteByID(id string) Palette {
	if p, ok := LookupPalette(id); ok {
		return p
	}
	return palettes[0]
}

// Color256 resolves an xterm 256-color index. Indices 0-15 go through the
// palette's own table. It returns "" for indices outside 0-255.
func (p Palette) Color256(n int) string {
	switch {
	case n < 0 || n > 255:
		return ""
	case n < 8:
		return p.Colors[30+n]
	case n < 16:
		return p.Colors[90+n-8]
	case n < 232:
		n -= 16
		return rgbHex(cubeLevel(n/36), cubeLevel((n%36)/6), cubeLevel(n%6))
	default:
		gray := int(math.Round(float64(n-232) * 255 / 23))
		return rgbHex(gray, gray, gray)
	}
}

// Color256ToHex resolves a 256-color index against the default palette.
func Color256ToHex(n int) string {
	return palettes[0].Color256(n)
}

func cubeLevel(v int) int {
	return int(math.Round(float64(v) * 255 / 5))
}

func rgbHex(r, g, b int) string {
	return fmt.Sprintf("#%02x%02x%02x", clampByte(r), clampByte(g), clampByte(b))
}

func clampByte(v int) int {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}

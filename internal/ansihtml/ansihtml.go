// Package ansihtml converts SGR-styled terminal text into HTML fragments with
// inline styles, using the colors of a named terminal palette.
package ansihtml

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var sgrPattern = regexp.MustCompile("\x1b\\[([0-9;]*)m")

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

// StripANSI removes every SGR sequence and returns the literal text.
func StripANSI(s string) string {
	return sgrPattern.ReplaceAllString(s, "")
}

// ToHTML renders s as HTML under the palette with the given id. Unknown ids
// fall back to the default palette.
func ToHTML(s, paletteID string) string {
	palette := PaletteByID(paletteID)

	var (
		b     strings.Builder
		state styleState
		last  int
	)
	for _, loc := range sgrPattern.FindAllStringSubmatchIndex(s, -1) {
		state.writeRun(&b, s[last:loc[0]], palette)
		state.apply(s[loc[2]:loc[3]], palette)
		last = loc[1]
	}
	state.writeRun(&b, s[last:], palette)
	return b.String()
}

type styleState struct {
	color         string
	background    string
	bold          bool
	dim           bool
	italic        bool
	underline     bool
	strikethrough bool
}

func (s *styleState) writeRun(b *strings.Builder, text string, p Palette) {
	if text == "" {
		return
	}
	css := s.css(p)
	if css == "" {
		b.WriteString(htmlEscaper.Replace(text))
		return
	}
	b.WriteString(`<span style="`)
	b.WriteString(css)
	b.WriteString(`">`)
	b.WriteString(htmlEscaper.Replace(text))
	b.WriteString("</span>")
}

func (s *styleState) apply(params string, p Palette) {
	codes := parseParams(params)
	for i := 0; i < len(codes); i++ {
		code := codes[i]
		switch {
		case code == 0:
			*s = styleState{}
		case code == 1:
			s.bold = true
		case code == 2:
			s.dim = true
		case code == 3:
			s.italic = true
		case code == 4:
			s.underline = true
		case code == 9:
			s.strikethrough = true
		case code == 22:
			s.bold = false
			s.dim = false
		case code == 23:
			s.italic = false
		case code == 24:
			s.underline = false
		case code == 29:
			s.strikethrough = false
		case code >= 30 && code <= 37, code >= 90 && code <= 97:
			s.color = p.Colors[code]
		case code == 39:
			s.color = ""
		case code >= 40 && code <= 47, code >= 100 && code <= 107:
			s.background = p.Colors[code-10]
		case code == 49:
			s.background = ""
		case code == 38, code == 48:
			hex, consumed := extendedColor(codes[i+1:], p)
			i += consumed
			if hex == "" {
				continue
			}
			if code == 38 {
				s.color = hex
			} else {
				s.background = hex
			}
		}
	}
}

// extendedColor decodes the arguments following a 38 or 48 code and reports
// how many of them it consumed. Truncated argument lists are consumed and
// produce no color.
func extendedColor(args []int, p Palette) (string, int) {
	if len(args) == 0 {
		return "", 0
	}
	switch args[0] {
	case 5:
		if len(args) < 2 {
			return "", len(args)
		}
		return p.Color256(args[1]), 2
	case 2:
		if len(args) < 4 {
			return "", len(args)
		}
		return rgbHex(args[1], args[2], args[3]), 4
	default:
		return "", 0
	}
}

// parseParams splits an SGR parameter list. Empty fields read as 0 and
// values too large to parse read as -1, which no code matches.
func parseParams(params string) []int {
	if params == "" {
		return []int{0}
	}
	fields := strings.Split(params, ";")
	codes := make([]int, len(fields))
	for i, f := range fields {
		if f == "" {
			continue
		}
		n, err := strconv.Atoi(f)
		if err != nil {
			n = -1
		}
		codes[i] = n
	}
	return codes
}

func (s *styleState) css(p Palette) string {
	var decls []string
	switch {
	case s.dim:
		base := s.color
		if base == "" {
			base = p.Foreground
		}
		decls = append(decls, "color:"+darken(base))
	case s.color != "":
		decls = append(decls, "color:"+s.color)
	}
	if s.background != "" {
		decls = append(decls, "background-color:"+s.background)
	}
	if s.bold {
		decls = append(decls, "font-weight:bold")
	}
	if s.italic {
		decls = append(decls, "font-style:italic")
	}
	switch {
	case s.underline && s.strikethrough:
		decls = append(decls, "text-decoration:underline line-through")
	case s.underline:
		decls = append(decls, "text-decoration:underline")
	case s.strikethrough:
		decls = append(decls, "text-decoration:line-through")
	}
	return strings.Join(decls, ";")
}

// darken halves each channel of a #rrggbb color.
func darken(hex string) string {
	if len(hex) != 7 || hex[0] != '#' {
		return hex
	}
	v, err := strconv.ParseUint(hex[1:], 16, 32)
	if err != nil {
		return hex
	}
	half := func(c uint64) int { return int(math.Round(float64(c) * 0.5)) }
	return rgbHex(half(v>>16&0xff), half(v>>8&0xff), half(v&0xff))
}

// Package measure provides the shared text-measurement surface used by
// both the layout/fit decisions and the draw orchestrator, per
// spec.md §4.8: hard line splitting on "\n", greedy soft-line wrapping
// token by token, and a character-by-character fallback for tokens that
// overflow an empty line on their own.
package measure

import (
	"strings"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"

	"sheetraster/internal/style"
)

// Surface measures text against lowered fonts. A single Surface should
// be shared across a render pass: it owns the font-face cache, so
// reusing it avoids re-parsing the same TTF file per cell.
type Surface struct {
	faces *faceCache
	dc    *gg.Context
}

// NewSurface creates a measurement surface. The backing gg.Context is
// only used for glyph metrics (MeasureString); it is never drawn to or
// encoded.
func NewSurface() *Surface {
	return &Surface{
		faces: newFaceCache(),
		dc:    gg.NewContext(1, 1),
	}
}

// Width measures the pixel width of a single line of text set in font f.
func (s *Surface) Width(f style.Font, text string) (float64, error) {
	face, err := s.faces.Face(f)
	if err != nil {
		return 0, err
	}
	s.dc.SetFontFace(face)
	w, _ := s.dc.MeasureString(text)
	return w, nil
}

// Face exposes the cached font.Face for f, for callers (the draw
// orchestrator) that need to set it directly on their own gg.Context.
func (s *Surface) Face(f style.Font) (font.Face, error) {
	return s.faces.Face(f)
}

// isWordChar mirrors JavaScript's ASCII-only \w: letters, digits,
// underscore.
func isWordChar(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_'
}

// tokenize splits a single hard line into tokens the way
// `line.split(/(?<=\s+|\W)/)` would: each token is a run of non-split
// characters followed by either a full run of whitespace or exactly one
// non-word character, with that trailing whitespace/punctuation kept
// attached to the token that precedes it. Go's RE2 engine has no
// lookbehind, so this walks the line by hand instead of compiling that
// pattern.
func tokenize(line string) []string {
	if line == "" {
		return nil
	}
	var tokens []string
	var b strings.Builder
	runes := []rune(line)
	i := 0
	for i < len(runes) {
		r := runes[i]
		switch {
		case unicodeIsSpace(r):
			// consume the whole run of whitespace as one split point
			for i < len(runes) && unicodeIsSpace(runes[i]) {
				b.WriteRune(runes[i])
				i++
			}
			tokens = append(tokens, b.String())
			b.Reset()
		case !isWordChar(r):
			b.WriteRune(r)
			i++
			tokens = append(tokens, b.String())
			b.Reset()
		default:
			b.WriteRune(r)
			i++
		}
	}
	if b.Len() > 0 {
		tokens = append(tokens, b.String())
	}
	return tokens
}

func unicodeIsSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\v', '\f', '\r', '\n', 0x85, 0xA0:
		return true
	}
	return false
}

// breakIntoChars splits a string into its individual runes, each its
// own string — the last-resort fallback for a single token too wide to
// fit on an empty line.
func breakIntoChars(s string) []string {
	runes := []rune(s)
	out := make([]string, len(runes))
	for i, r := range runes {
		out[i] = string(r)
	}
	return out
}

// BreakLines splits value into the lines the draw orchestrator paints,
// per spec.md §4.8:
//  1. split on "\n" for hard line breaks;
//  2. if wrapText is false, return the hard lines unchanged — no
//     further wrapping happens, the overflow bucket takes over instead;
//  3. otherwise, greedily pack tokens from tokenize() onto each soft
//     line until the next token would reach or exceed width, starting a new
//     line; a token that alone overflows an empty line is broken
//     character by character instead.
func (s *Surface) BreakLines(f style.Font, value string, width float64, wrapText bool) ([]string, error) {
	hardLines := strings.Split(value, "\n")
	if !wrapText {
		return hardLines, nil
	}

	var out []string
	for _, hard := range hardLines {
		lines, err := s.wrapLine(f, hard, width)
		if err != nil {
			return nil, err
		}
		out = append(out, lines...)
	}
	return out, nil
}

func (s *Surface) wrapLine(f style.Font, line string, width float64) ([]string, error) {
	tokens := tokenize(line)
	if len(tokens) == 0 {
		return []string{""}, nil
	}

	var lines []string
	current := ""

	flush := func() {
		if current != "" {
			lines = append(lines, current)
			current = ""
		}
	}

	for _, tok := range tokens {
		candidate := current + tok
		w, err := s.Width(f, candidate)
		if err != nil {
			return nil, err
		}
		if w < width {
			current = candidate
			continue
		}

		flush()

		// tok alone on a fresh line: see if it fits by itself.
		tokWidth, err := s.Width(f, tok)
		if err != nil {
			return nil, err
		}
		if tokWidth <= width {
			current = tok
			continue
		}

		// tok alone overflows an empty line: fall back to breaking it
		// character by character.
		broken, err := s.breakToken(f, tok, width)
		if err != nil {
			return nil, err
		}
		lines = append(lines, broken...)
	}
	flush()
	if len(lines) == 0 {
		lines = []string{""}
	}
	return lines, nil
}

// breakToken splits a single overflowing token into width-constrained
// chunks, one character at a time.
func (s *Surface) breakToken(f style.Font, tok string, width float64) ([]string, error) {
	chars := breakIntoChars(tok)
	var lines []string
	current := ""
	for _, ch := range chars {
		candidate := current + ch
		w, err := s.Width(f, candidate)
		if err != nil {
			return nil, err
		}
		if w <= width || current == "" {
			current = candidate
			continue
		}
		lines = append(lines, current)
		current = ch
	}
	if current != "" {
		lines = append(lines, current)
	}
	if len(lines) == 0 {
		lines = []string{""}
	}
	return lines, nil
}

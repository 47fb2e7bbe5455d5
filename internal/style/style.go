// Package style lowers a workbook cell's declared styling (ARGB colors,
// fill, borders, font, alignment) into the plain values the draw
// orchestrator paints with, per spec.md §4.6.
package style

import (
	"fmt"
	"strings"

	"sheetraster/internal/sheetmodel"
	"sheetraster/internal/units"
)

// Generic font families, keyed by the spreadsheet font-family number.
const (
	FamilySerif     = 1
	FamilySansSerif = 2
	FamilyMonospace = 3
)

// DefaultLineHeightMultiplier is applied to a font's point size (in
// pixels) to get the line height used when stacking wrapped lines.
const DefaultLineHeightMultiplier = 1.2

// DefaultBorderPointWidthMap gives each recognised border style its
// point width, before pixelPerPoint scaling.
var DefaultBorderPointWidthMap = map[string]float64{
	"hair":              0.25,
	"thin":              1,
	"double":            1,
	"dotted":            1,
	"dashed":            1,
	"dashDot":           1,
	"dashDotDot":        1,
	"medium":            2,
	"mediumDashDot":     2,
	"mediumDashDotDot":  2,
	"mediumDashed":      2,
	"slantDashDot":      2,
	"thick":             3,
}

// DefaultBorderPointSegmentsMap gives each dashed border style its dash
// pattern in points (empty/absent means solid).
var DefaultBorderPointSegmentsMap = map[string][]float64{
	"dashDot":          {4, 2, 2, 2},
	"mediumDashDot":    {4, 2, 2, 2},
	"slantDashDot":     {4, 2, 2, 2},
	"dashDotDot":       {4, 2, 2, 2, 2, 2},
	"mediumDashDotDot": {4, 2, 2, 2, 2, 2},
	"dashed":           {4},
	"mediumDashed":     {4},
	"dotted":           {2},
}

// Params carries every configured fallback/override the lowering step
// consults, mirroring spec.md §6's Options fields that feed §4.6.
type Params struct {
	Scale units.Scale

	BorderFallbackColor    string // already-lowered #RRGGBBAA
	BorderFallbackStyle    string // "none" by default

	BorderPointWidthMap    map[string]float64
	BorderPointSegmentsMap map[string][]float64

	TextFallbackColor               string // already-lowered #RRGGBBAA
	TextFallbackFontFamilyName      string
	TextFallbackFontSize            float64
	TextFallbackAlignmentHorizontal string
	TextFallbackAlignmentVertical   string
	TextFallbackAlignmentWrapText   bool
	TextFallbackAlignmentShrinkToFit bool
	TextFallbackAlignmentIndent     float64
	TextFallbackAlignmentTextDirection string
	TextFallbackAlignmentTextRotation  float64

	TextLineHeight float64 // multiplier, default 1.2

	BackgroundColor string // already-lowered #RRGGBBAA
}

var validHorizontal = map[string]bool{"left": true, "right": true, "center": true, "start": true, "end": true}
var validVertical = map[string]bool{"top": true, "hanging": true, "middle": true, "alphabetic": true, "ideographic": true, "bottom": true}

// LowerColor converts a bare ARGB hex string (no leading "#") to
// "#RRGGBBAA" — the ARGB prefix becomes the trailing alpha.
func LowerColor(argb string) (string, bool) {
	if len(argb) != 8 {
		return "", false
	}
	a, rgb := argb[0:2], argb[2:8]
	return "#" + rgb + a, true
}

// Background is the lowered background color for a cell.
type Background struct {
	Color string // #RRGGBBAA
}

// LowerBackground resolves a cell's background: the fill color if it's
// a pattern fill, otherwise the configured background fallback.
func LowerBackground(fill sheetmodel.Fill, hasFill bool, p Params) Background {
	if !hasFill || !fill.IsPattern {
		return Background{Color: p.BackgroundColor}
	}
	if fill.HasBgColor {
		if c, ok := LowerColor(fill.BgColorARGB); ok {
			return Background{Color: c}
		}
	}
	return Background{Color: p.BackgroundColor}
}

// BorderEdge is one lowered border side, pre-scaled to pixels.
type BorderEdge struct {
	Color    string // #RRGGBBAA
	Style    string
	WidthPx  float64
	Segments []float64 // pixels
}

// Borders carries all four lowered edges of a cell.
type Borders struct {
	Left, Top, Right, Bottom BorderEdge
}

// LowerBorderSide lowers one declared border side against the configured
// fallbacks and style maps (spec.md §4.6).
func LowerBorderSide(side sheetmodel.BorderSide, hasSide bool, p Params) BorderEdge {
	color := p.BorderFallbackColor
	if hasSide && side.HasColor {
		if c, ok := LowerColor(side.ColorARGB); ok {
			color = c
		}
	}

	styleName := p.BorderFallbackStyle
	if hasSide && side.HasStyle && side.Style != "" {
		styleName = side.Style
	}
	if styleName == "" {
		styleName = "none"
	}

	if styleName == "none" {
		return BorderEdge{Color: color, Style: "none", WidthPx: 0, Segments: nil}
	}

	widthPoints, ok := p.BorderPointWidthMap[styleName]
	if !ok {
		widthPoints = DefaultBorderPointWidthMap[styleName]
	}
	widthPx := p.Scale.PointsToPx(widthPoints)

	var segmentsPx []float64
	segmentsPoints, ok := p.BorderPointSegmentsMap[styleName]
	if !ok {
		segmentsPoints = DefaultBorderPointSegmentsMap[styleName]
	}
	for _, seg := range segmentsPoints {
		segmentsPx = append(segmentsPx, p.Scale.PointsToPx(seg))
	}

	return BorderEdge{Color: color, Style: styleName, WidthPx: widthPx, Segments: segmentsPx}
}

// LowerBorders lowers all four sides of a cell's declared border.
func LowerBorders(border sheetmodel.Border, hasBorder bool, p Params) Borders {
	return Borders{
		Left:   LowerBorderSide(border.Left, hasBorder && border.HasLeft, p),
		Top:    LowerBorderSide(border.Top, hasBorder && border.HasTop, p),
		Right:  LowerBorderSide(border.Right, hasBorder && border.HasRight, p),
		Bottom: LowerBorderSide(border.Bottom, hasBorder && border.HasBottom, p),
	}
}

// Font is a cell's lowered font: enough to both pick a font face for
// drawing/measurement, and (for logging/debugging parity with the
// browser-canvas original this was distilled from) render as a CSS-like
// font shorthand string.
type Font struct {
	Name       string
	Generic    string // "serif", "sans-serif", "monospace", or ""
	Bold       bool
	Italic     bool
	SizePx     float64
	Color      string // #RRGGBBAA
	LineHeight float64
}

func genericFamily(family int) string {
	switch family {
	case FamilySerif:
		return "serif"
	case FamilySansSerif:
		return "sans-serif"
	case FamilyMonospace:
		return "monospace"
	default:
		return ""
	}
}

// LowerFont lowers a cell's declared font against the configured
// fallbacks.
func LowerFont(font sheetmodel.Font, hasFont bool, p Params) Font {
	name := p.TextFallbackFontFamilyName
	var generic string
	sizePoints := p.TextFallbackFontSize
	var bold, italic bool
	color := p.TextFallbackColor

	if hasFont {
		if font.HasName && font.Name != "" {
			name = font.Name
		}
		generic = genericFamily(font.Family)
		if font.HasSize && font.Size > 0 {
			sizePoints = font.Size
		}
		bold = font.Bold
		italic = font.Italic
		if font.HasColor {
			if c, ok := LowerColor(font.ColorARGB); ok {
				color = c
			}
		}
	}

	lineHeightMultiplier := p.TextLineHeight
	if lineHeightMultiplier <= 0 {
		lineHeightMultiplier = DefaultLineHeightMultiplier
	}

	sizePx := p.Scale.PointsToPx(sizePoints)

	return Font{
		Name:       name,
		Generic:    generic,
		Bold:       bold,
		Italic:     italic,
		SizePx:     sizePx,
		Color:      color,
		LineHeight: sizePx * lineHeightMultiplier,
	}
}

// String renders the font in the `"<italic?> <bold?> <size>px <name>
// <generic>"` shorthand spec.md §4.6 describes.
func (f Font) String() string {
	var parts []string
	if f.Italic {
		parts = append(parts, "italic")
	}
	if f.Bold {
		parts = append(parts, "bold")
	}
	parts = append(parts, fmt.Sprintf("%gpx", f.SizePx), f.Name)
	if f.Generic != "" {
		parts = append(parts, f.Generic)
	}
	return strings.Join(parts, " ")
}

// Alignment is a cell's lowered alignment/text behavior.
type Alignment struct {
	Horizontal    string
	Vertical      string
	WrapText      bool
	ShrinkToFit   bool
	Indent        float64
	TextDirection string
	TextRotation  float64
}

// LowerAlignment lowers a cell's declared alignment against the
// configured fallbacks, rejecting unrecognised horizontal/vertical
// values (spec.md §4.6).
func LowerAlignment(a sheetmodel.Alignment, hasAlignment bool, p Params) Alignment {
	horizontal := p.TextFallbackAlignmentHorizontal
	vertical := p.TextFallbackAlignmentVertical
	wrapText := p.TextFallbackAlignmentWrapText
	shrinkToFit := p.TextFallbackAlignmentShrinkToFit
	indent := p.TextFallbackAlignmentIndent
	textDirection := p.TextFallbackAlignmentTextDirection
	textRotation := p.TextFallbackAlignmentTextRotation

	if hasAlignment {
		if a.HasHorizontal && validHorizontal[a.Horizontal] {
			horizontal = a.Horizontal
		}
		if a.HasVertical && validVertical[a.Vertical] {
			vertical = a.Vertical
		}
		wrapText = a.WrapText
		shrinkToFit = a.ShrinkToFit
		indent = a.Indent
		if a.TextDirection != "" {
			textDirection = a.TextDirection
		}
		textRotation = a.TextRotation
	}

	return Alignment{
		Horizontal:    horizontal,
		Vertical:      vertical,
		WrapText:      wrapText,
		ShrinkToFit:   shrinkToFit,
		Indent:        indent,
		TextDirection: textDirection,
		TextRotation:  textRotation,
	}
}

// Cell is everything the draw orchestrator needs, lowered from a single
// sheetmodel.Cell.
type Cell struct {
	Background Background
	Borders    Borders
	Font       Font
	Alignment  Alignment
	Value      string
}

// LowerCell lowers every styled aspect of a cell in one pass.
func LowerCell(cell sheetmodel.Cell, p Params) Cell {
	fill, hasFill := cell.Fill()
	border, hasBorder := cell.Border()
	font, hasFont := cell.Font()
	alignment, hasAlignment := cell.Alignment()

	return Cell{
		Background: LowerBackground(fill, hasFill, p),
		Borders:    LowerBorders(border, hasBorder, p),
		Font:       LowerFont(font, hasFont, p),
		Alignment:  LowerAlignment(alignment, hasAlignment, p),
		Value:      cell.Text(),
	}
}

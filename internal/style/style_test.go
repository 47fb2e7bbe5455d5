package style

import (
	"strings"
	"testing"

	"sheetraster/internal/sheetmodel"
	"sheetraster/internal/units"
)

func defaultParams() Params {
	return Params{
		Scale:                  units.NewScale(5.85, 192),
		BorderFallbackColor:    "#D3D3D3FF",
		BorderFallbackStyle:    "none",
		BorderPointWidthMap:    DefaultBorderPointWidthMap,
		BorderPointSegmentsMap: DefaultBorderPointSegmentsMap,
		TextFallbackColor:      "#000000FF",
		TextFallbackFontFamilyName: "Arial",
		TextFallbackFontSize:       10,
		TextFallbackAlignmentHorizontal: "left",
		TextFallbackAlignmentVertical:   "bottom",
		TextLineHeight:                  1.2,
		BackgroundColor:                 "#FFFFFFFF",
	}
}

// ARGB color "FF0080C0" lowers to "#0080C0FF"; alpha 00 preserved.
func TestLowerColor(t *testing.T) {
	got, ok := LowerColor("FF0080C0")
	if !ok || got != "#0080C0FF" {
		t.Errorf("LowerColor(FF0080C0) = %q, %v, want #0080C0FF", got, ok)
	}

	got, ok = LowerColor("00112233")
	if !ok || got != "#11223300" {
		t.Errorf("LowerColor(00112233) = %q, %v, want #11223300 (alpha 00 preserved)", got, ok)
	}
}

func TestLowerBackgroundNoFill(t *testing.T) {
	p := defaultParams()
	bg := LowerBackground(sheetmodel.Fill{}, false, p)
	if bg.Color != p.BackgroundColor {
		t.Errorf("LowerBackground(no fill) = %q, want fallback %q", bg.Color, p.BackgroundColor)
	}
}

func TestLowerBackgroundPattern(t *testing.T) {
	p := defaultParams()
	fill := sheetmodel.Fill{IsPattern: true, BgColorARGB: "FF00FF00", HasBgColor: true}
	bg := LowerBackground(fill, true, p)
	if bg.Color != "#00FF00FF" {
		t.Errorf("LowerBackground(pattern) = %q, want #00FF00FF", bg.Color)
	}
}

func TestLowerBorderSideNoneStyle(t *testing.T) {
	p := defaultParams()
	side := sheetmodel.BorderSide{Style: "none", HasStyle: true}
	edge := LowerBorderSide(side, true, p)
	if edge.Style != "none" || edge.WidthPx != 0 || len(edge.Segments) != 0 {
		t.Errorf("none style edge = %+v", edge)
	}
}

func TestLowerBorderSideDashed(t *testing.T) {
	p := defaultParams()
	side := sheetmodel.BorderSide{Style: "dashed", HasStyle: true, ColorARGB: "FF000000", HasColor: true}
	edge := LowerBorderSide(side, true, p)

	wantWidth := p.Scale.PointsToPx(DefaultBorderPointWidthMap["dashed"])
	if edge.WidthPx != wantWidth {
		t.Errorf("dashed width = %v, want %v", edge.WidthPx, wantWidth)
	}
	if len(edge.Segments) != 1 {
		t.Fatalf("dashed segments = %v, want 1 entry", edge.Segments)
	}
	wantSeg := p.Scale.PointsToPx(4)
	if edge.Segments[0] != wantSeg {
		t.Errorf("dashed segment[0] = %v, want %v", edge.Segments[0], wantSeg)
	}
}

func TestLowerAlignmentRejectsUnrecognised(t *testing.T) {
	p := defaultParams()
	a := LowerAlignment(sheetmodel.Alignment{Horizontal: "justify", HasHorizontal: true}, true, p)
	if a.Horizontal != p.TextFallbackAlignmentHorizontal {
		t.Errorf("unrecognised horizontal should fall back, got %q", a.Horizontal)
	}
}

func TestLowerFontString(t *testing.T) {
	p := defaultParams()
	f := LowerFont(sheetmodel.Font{HasName: true, Name: "Calibri", Bold: true, HasSize: true, Size: 10, Family: FamilySansSerif}, true, p)
	// Size 10pt at 192dpi -> 10 * 192/72 = 26.666...px — just check prefix/shape instead of exact float text.
	if s := f.String(); !strings.HasPrefix(s, "bold ") || !strings.HasSuffix(s, "px Calibri sans-serif") {
		t.Errorf("Font.String() = %q, want \"bold <size>px Calibri sans-serif\"", s)
	}
	if f.Name != "Calibri" || !f.Bold || f.Generic != "sans-serif" {
		t.Errorf("LowerFont = %+v", f)
	}
}

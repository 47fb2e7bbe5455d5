package drawengine

import (
	"testing"

	"github.com/fogleman/gg"

	"sheetraster/internal/cellrect"
	"sheetraster/internal/layout"
	"sheetraster/internal/measure"
	"sheetraster/internal/merge"
	"sheetraster/internal/sheetmodel"
	"sheetraster/internal/style"
	"sheetraster/internal/units"
)

func TestOrderByOverflowPutsEmptyFirstThenFitsThenOverflow(t *testing.T) {
	m := measure.NewSurface()
	font := style.Font{Name: "DejaVu Sans", SizePx: 12}

	tasks := []cellTask{
		{rect: units.Rect{Width: 200}, lowered: style.Cell{Font: font, Value: "short"}},
		{rect: units.Rect{Width: 200}, lowered: style.Cell{Font: font, Value: ""}},
		{rect: units.Rect{Width: 5}, lowered: style.Cell{Font: font, Value: "a very long overflowing value"}},
	}

	ordered := orderByOverflow(m, tasks)
	if len(ordered) != 3 {
		t.Fatalf("orderByOverflow returned %d tasks, want 3", len(ordered))
	}
	if ordered[0].lowered.Value != "" {
		t.Errorf("first task should be the empty cell, got %q", ordered[0].lowered.Value)
	}
	if ordered[1].lowered.Value != "short" {
		t.Errorf("second task should be the fitting cell, got %q", ordered[1].lowered.Value)
	}
	if ordered[2].lowered.Value == "" || ordered[2].lowered.Value == "short" {
		t.Errorf("third task should be the overflowing cell, got %q", ordered[2].lowered.Value)
	}
}

func TestFitsWidthRejectsShrinkToFit(t *testing.T) {
	m := measure.NewSurface()
	task := cellTask{
		rect:    units.Rect{Width: 1000},
		lowered: style.Cell{Font: style.Font{Name: "DejaVu Sans", SizePx: 10}, Value: "x", Alignment: style.Alignment{ShrinkToFit: true}},
	}
	if fitsWidth(m, task) {
		t.Error("fitsWidth should always be false when ShrinkToFit is set")
	}
}

// S1-style smoke test: a blank 1x1 sheet paints without error.
func TestPaintBlankSheetDoesNotError(t *testing.T) {
	cols := map[int]sheetmodel.Column{1: {Number: 1, Width: 10, HasWidth: true}}
	rows := map[int]sheetmodel.Row{1: {
		Number: 1, Height: 15, HasHeight: true,
		GetCell: func(int) sheetmodel.Cell { return sheetmodel.StaticCell{} },
	}}
	ws := &sheetmodel.StaticWorksheet{Cols: 1, Rows: 1, ColumnDefs: cols, RowDefs: rows}

	scale := units.NewScale(5.85, 192)
	sheet := layout.Build(ws, scale, 13)
	mergeIdx := merge.Build(nil)
	resolver := cellrect.New(sheet, mergeIdx)

	dc := gg.NewContext(int(sheet.CanvasSize.Width), int(sheet.CanvasSize.Height))
	m := measure.NewSurface()
	engine := New(m, scale.PointsToPx(2))

	params := style.Params{
		Scale:                      scale,
		BorderFallbackColor:        "#D3D3D3FF",
		BorderFallbackStyle:        "none",
		BorderPointWidthMap:        style.DefaultBorderPointWidthMap,
		BorderPointSegmentsMap:     style.DefaultBorderPointSegmentsMap,
		TextFallbackColor:          "#000000FF",
		TextFallbackFontFamilyName: "Arial",
		TextFallbackFontSize:       10,
		TextFallbackAlignmentHorizontal: "left",
		TextFallbackAlignmentVertical:   "bottom",
		TextLineHeight:                  1.2,
		BackgroundColor:                 "#FFFFFFFF",
	}

	if err := engine.Paint(dc, sheet, mergeIdx, resolver, params); err != nil {
		t.Fatalf("Paint: %v", err)
	}
}

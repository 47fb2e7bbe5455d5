package layout

import (
	"testing"

	"sheetraster/internal/sheetmodel"
	"sheetraster/internal/units"
)

func emptyCellGetter(int) sheetmodel.Cell { return sheetmodel.StaticCell{} }

// S1 — blank 1x1 sheet: one column width 10 char-units, one row height
// 15 points, default options (dpi=192, characterUnit=5.85).
func TestBuildBlankSingleCell(t *testing.T) {
	ws := &sheetmodel.StaticWorksheet{
		Cols: 1, Rows: 1,
		ColumnDefs: map[int]sheetmodel.Column{1: {Number: 1, Width: 10, HasWidth: true}},
		RowDefs:    map[int]sheetmodel.Row{1: {Number: 1, Height: 15, HasHeight: true, GetCell: emptyCellGetter}},
	}
	scale := units.NewScale(5.85, 192)
	sheet := Build(ws, scale, 13)

	wantW := 10 * 5.85 * (192.0 / 72.0)
	wantH := 15 * (192.0 / 72.0)
	if sheet.CanvasSize.Width != wantW || sheet.CanvasSize.Height != wantH {
		t.Errorf("CanvasSize = %+v, want {%v %v}", sheet.CanvasSize, wantW, wantH)
	}
}

// S4 — hidden column B among A,B,C: B contributes nothing.
func TestBuildHiddenColumn(t *testing.T) {
	ws := &sheetmodel.StaticWorksheet{
		Cols: 3, Rows: 1,
		ColumnDefs: map[int]sheetmodel.Column{
			1: {Number: 1, Width: 10, HasWidth: true},
			2: {Number: 2, Width: 10, HasWidth: true, Hidden: true},
			3: {Number: 3, Width: 10, HasWidth: true},
		},
		RowDefs: map[int]sheetmodel.Row{1: {Number: 1, Height: 15, HasHeight: true, GetCell: emptyCellGetter}},
	}
	scale := units.NewScale(5.85, 192)
	sheet := Build(ws, scale, 13)

	if len(sheet.Columns) != 2 {
		t.Fatalf("len(Columns) = %d, want 2", len(sheet.Columns))
	}
	if _, ok := sheet.ColumnByNumber(2); ok {
		t.Errorf("hidden column 2 should not resolve")
	}
	colA, _ := sheet.ColumnByNumber(1)
	colC, _ := sheet.ColumnByNumber(3)
	if colA.X != 0 {
		t.Errorf("col A x = %v, want 0", colA.X)
	}
	if colC.X != colA.Width {
		t.Errorf("col C x = %v, want %v (col A width)", colC.X, colA.Width)
	}
}

func TestBuildNoRowsIsNoOp(t *testing.T) {
	ws := &sheetmodel.StaticWorksheet{Cols: 3, Rows: 0}
	sheet := Build(ws, units.NewScale(5.85, 192), 13)
	if len(sheet.Columns) != 0 || len(sheet.Rows) != 0 {
		t.Errorf("Build with no rows should yield an empty Sheet, got %+v", sheet)
	}
}

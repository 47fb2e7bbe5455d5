package cellrect

import (
	"testing"

	"sheetraster/internal/layout"
	"sheetraster/internal/merge"
	"sheetraster/internal/reference"
	"sheetraster/internal/sheetmodel"
	"sheetraster/internal/units"
)

func buildGrid(t *testing.T, n int, colWidth, rowHeight float64) layout.Sheet {
	t.Helper()
	cols := map[int]sheetmodel.Column{}
	rows := map[int]sheetmodel.Row{}
	for i := 1; i <= n; i++ {
		cols[i] = sheetmodel.Column{Number: i, Width: colWidth, HasWidth: true}
		rows[i] = sheetmodel.Row{Number: i, Height: rowHeight, HasHeight: true, GetCell: func(int) sheetmodel.Cell { return sheetmodel.StaticCell{} }}
	}
	ws := &sheetmodel.StaticWorksheet{Cols: n, Rows: n, ColumnDefs: cols, RowDefs: rows}
	return layout.Build(ws, units.NewScale(5.85, 192), 13)
}

// S3 — merged A1:B2 on a 3x3 grid: the merged cell paints once at
// (0,0, 2*colWidthPx, 2*rowHeightPx).
func TestCellRectMergedRange(t *testing.T) {
	sheet := buildGrid(t, 3, 10, 15)
	idx := merge.Build([]string{"A1:B2"})
	r := New(sheet, idx)

	colW, _ := sheet.ColumnByNumber(1)
	rowH, _ := sheet.RowByNumber(1)

	rect, ok := r.CellRect(reference.CellNumber{Col: 1, Row: 1})
	if !ok {
		t.Fatalf("CellRect(1,1) failed")
	}
	if rect.X != 0 || rect.Y != 0 || rect.Width != 2*colW.Width || rect.Height != 2*rowH.Height {
		t.Errorf("merged rect = %+v, want {0 0 %v %v}", rect, 2*colW.Width, 2*rowH.Height)
	}

	// Every cell in the range resolves to the same bounding rect.
	rect2, ok := r.CellRect(reference.CellNumber{Col: 2, Row: 2})
	if !ok || rect2 != rect {
		t.Errorf("CellRect(2,2) = %+v, %v, want %+v", rect2, ok, rect)
	}
}

func TestCellRectSingleCellOutsideMerge(t *testing.T) {
	sheet := buildGrid(t, 3, 10, 15)
	idx := merge.Build([]string{"A1:B2"})
	r := New(sheet, idx)

	rect, ok := r.CellRect(reference.CellNumber{Col: 3, Row: 3})
	if !ok {
		t.Fatalf("CellRect(3,3) failed")
	}
	colW, _ := sheet.ColumnByNumber(3)
	rowH, _ := sheet.RowByNumber(3)
	if rect.X != colW.X || rect.Y != rowH.Y || rect.Width != colW.Width || rect.Height != rowH.Height {
		t.Errorf("single-cell rect = %+v", rect)
	}
}

func TestCellRectMissingCell(t *testing.T) {
	sheet := buildGrid(t, 3, 10, 15)
	idx := merge.Build(nil)
	r := New(sheet, idx)

	if _, ok := r.CellRect(reference.CellNumber{Col: 99, Row: 1}); ok {
		t.Errorf("CellRect(99,1) should fail: column out of range")
	}
}

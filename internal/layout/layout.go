// Package layout assigns pixel positions to a worksheet's visible
// columns and rows, per spec.md §4.2.
package layout

import (
	"github.com/samber/lo"

	"sheetraster/internal/sheetmodel"
	"sheetraster/internal/units"
)

// Column is a canvas column: its pixel x position and width.
type Column struct {
	Number int
	X      float64
	Width  float64
}

// Row is a canvas row: its pixel y position, height, and a handle back
// to the worksheet cell getter for that row.
type Row struct {
	Number  int
	Y       float64
	Height  float64
	GetCell func(colNumber int) sheetmodel.Cell
}

// Sheet is the fully laid-out worksheet: its visible column and row
// bands, in order, plus the resulting canvas size.
type Sheet struct {
	Columns    []Column
	Rows       []Row
	CanvasSize units.Size

	colIndex map[int]int
	rowIndex map[int]int
}

// visible reports whether a column or row should contribute to the
// layout: neither hidden nor collapsed.
func visible(hidden, collapsed bool) bool {
	return !hidden && !collapsed
}

// Build lays out every visible column and row of the worksheet,
// producing cumulative x/y offsets starting at 0 and skipping hidden or
// collapsed bands entirely (spec.md §4.2, invariant 6). A worksheet that
// yields no rows produces an empty Sheet — the caller treats that as a
// no-op draw (spec.md §4.2).
func Build(ws sheetmodel.Worksheet, scale units.Scale, fallbackColCharUnits float64) Sheet {
	props := ws.Properties()

	defaultColWidth := props.DefaultColWidth
	if defaultColWidth <= 0 {
		defaultColWidth = fallbackColCharUnits
	}

	rawRows := ws.GetRows()
	if len(rawRows) == 0 {
		return Sheet{}
	}

	columns := make([]Column, 0, ws.ColumnCount())
	x := 0.0
	for n := 1; n <= ws.ColumnCount(); n++ {
		col := ws.GetColumn(n)
		if !visible(col.Hidden, col.Collapsed) {
			continue
		}
		widthCharUnits := defaultColWidth
		if col.HasWidth && col.Width > 0 {
			widthCharUnits = col.Width
		}
		widthPx := scale.CharUnitsToPx(widthCharUnits)
		columns = append(columns, Column{Number: n, X: x, Width: widthPx})
		x += widthPx
	}

	rows := make([]Row, 0, len(rawRows))
	y := 0.0
	for _, r := range rawRows {
		if !visible(r.Hidden, r.Collapsed) {
			continue
		}
		heightPoints := props.DefaultRowHeight
		if r.HasHeight && r.Height > 0 {
			heightPoints = r.Height
		}
		heightPx := scale.PointsToPx(heightPoints)
		rows = append(rows, Row{Number: r.Number, Y: y, Height: heightPx, GetCell: r.GetCell})
		y += heightPx
	}

	totalWidth := lo.Reduce(columns, func(acc float64, c Column, _ int) float64 { return acc + c.Width }, 0.0)
	totalHeight := lo.Reduce(rows, func(acc float64, r Row, _ int) float64 { return acc + r.Height }, 0.0)

	colIndex := make(map[int]int, len(columns))
	for i, c := range columns {
		colIndex[c.Number] = i
	}
	rowIndex := make(map[int]int, len(rows))
	for i, r := range rows {
		rowIndex[r.Number] = i
	}

	return Sheet{
		Columns:    columns,
		Rows:       rows,
		CanvasSize: units.Size{Width: totalWidth, Height: totalHeight},
		colIndex:   colIndex,
		rowIndex:   rowIndex,
	}
}

// ColumnByNumber finds the canvas column with the given 1-based number,
// returning ok=false if it's hidden/collapsed/out-of-range.
func (s Sheet) ColumnByNumber(n int) (Column, bool) {
	i, ok := s.colIndex[n]
	if !ok {
		return Column{}, false
	}
	return s.Columns[i], true
}

// RowByNumber finds the canvas row with the given 1-based number,
// returning ok=false if it's hidden/collapsed/out-of-range.
func (s Sheet) RowByNumber(n int) (Row, bool) {
	i, ok := s.rowIndex[n]
	if !ok {
		return Row{}, false
	}
	return s.Rows[i], true
}

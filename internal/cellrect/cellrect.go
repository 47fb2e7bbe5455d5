// Package cellrect resolves a single cell, or a merged range, to its
// pixel rectangle, per spec.md §4.5.
package cellrect

import (
	"sheetraster/internal/layout"
	"sheetraster/internal/merge"
	"sheetraster/internal/reference"
	"sheetraster/internal/units"
)

// Resolver combines a laid-out sheet with its merge index to answer
// "what rectangle does this cell (or merged range) occupy?"
type Resolver struct {
	sheet layout.Sheet
	index *merge.Index
}

// New builds a Resolver over an already laid-out sheet and merge index.
func New(sheet layout.Sheet, index *merge.Index) *Resolver {
	return &Resolver{sheet: sheet, index: index}
}

// SingleCell returns the rect of one cell, or ok=false if the column or
// row is hidden/collapsed/out of range.
func (r *Resolver) SingleCell(cell reference.CellNumber) (units.Rect, bool) {
	col, ok := r.sheet.ColumnByNumber(cell.Col)
	if !ok {
		return units.Rect{}, false
	}
	row, ok := r.sheet.RowByNumber(cell.Row)
	if !ok {
		return units.Rect{}, false
	}
	return units.Rect{X: col.X, Y: row.Y, Width: col.Width, Height: row.Height}, true
}

// Range returns the bounding rect of a (possibly single-cell) range:
// the combination of the single-cell rects of its two corners.
func (r *Resolver) Range(rng reference.RangeNumber) (units.Rect, bool) {
	startRect, ok := r.SingleCell(rng.Start)
	if !ok {
		return units.Rect{}, false
	}
	endRect, ok := r.SingleCell(rng.End)
	if !ok {
		return units.Rect{}, false
	}
	return units.RectFromBounds(startRect.X, startRect.Y, endRect.Right(), endRect.Bottom()), true
}

// CellRect is the composite resolver spec.md §4.5 calls getCellRect: it
// first checks whether the cell belongs to a merged range, and if so
// returns that range's bounding rect; otherwise it returns the cell's
// own rect.
func (r *Resolver) CellRect(cell reference.CellNumber) (units.Rect, bool) {
	if rng, ok := r.index.RangeFor(cell.Col, cell.Row); ok {
		return r.Range(rng)
	}
	return r.SingleCell(cell)
}

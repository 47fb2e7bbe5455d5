// Package drawengine paints a resolved sheet onto a raster surface:
// background, then borders, then text, in the merged-first/row-major
// iteration and three-bucket overflow order described in spec.md §4.9.
package drawengine

import (
	"fmt"
	"image/color"

	"github.com/fogleman/gg"

	"sheetraster/internal/cellrect"
	"sheetraster/internal/layout"
	"sheetraster/internal/measure"
	"sheetraster/internal/merge"
	"sheetraster/internal/reference"
	"sheetraster/internal/rendererr"
	"sheetraster/internal/style"
	"sheetraster/internal/units"
)

// Engine paints cells onto a gg.Context, sharing a measurement surface
// with the rest of the render pass so font faces are parsed once.
type Engine struct {
	measure          *measure.Surface
	cellPixelPadding float64
}

// New creates an Engine. cellPixelPadding is already scaled to pixels
// (Options.CellPointPadding run through the active unit Scale).
func New(m *measure.Surface, cellPixelPadding float64) *Engine {
	return &Engine{measure: m, cellPixelPadding: cellPixelPadding}
}

// cellTask is one resolved, lowered cell waiting to be painted.
type cellTask struct {
	rect    units.Rect
	lowered style.Cell
}

// Paint iterates the sheet's merged ranges then its row-major cells,
// each phase ordered empty-first/fits-second/overflow-last, and paints
// background → borders → text for every cell in that order.
func (e *Engine) Paint(dc *gg.Context, sheet layout.Sheet, mergeIdx *merge.Index, resolver *cellrect.Resolver, p style.Params) error {
	merged := e.collectMerged(sheet, mergeIdx, resolver, p)
	rowMajor := e.collectRowMajor(sheet, mergeIdx, resolver, p)

	for _, task := range orderByOverflow(e.measure, merged) {
		if err := e.paintCell(dc, task); err != nil {
			return err
		}
	}
	for _, task := range orderByOverflow(e.measure, rowMajor) {
		if err := e.paintCell(dc, task); err != nil {
			return err
		}
	}
	return nil
}

func (e *Engine) collectMerged(sheet layout.Sheet, mergeIdx *merge.Index, resolver *cellrect.Resolver, p style.Params) []cellTask {
	var tasks []cellTask
	for _, rng := range mergeIdx.Ranges() {
		rect, ok := resolver.Range(rng)
		if !ok {
			continue
		}
		row, ok := sheet.RowByNumber(rng.Start.Row)
		if !ok || row.GetCell == nil {
			continue
		}
		cell := row.GetCell(rng.Start.Col)
		tasks = append(tasks, cellTask{rect: rect, lowered: style.LowerCell(cell, p)})
	}
	return tasks
}

func (e *Engine) collectRowMajor(sheet layout.Sheet, mergeIdx *merge.Index, resolver *cellrect.Resolver, p style.Params) []cellTask {
	var tasks []cellTask
	for _, row := range sheet.Rows {
		if row.GetCell == nil {
			continue
		}
		for _, col := range sheet.Columns {
			if _, ok := mergeIdx.RangeFor(col.Number, row.Number); ok {
				continue
			}
			rect, ok := resolver.SingleCell(reference.CellNumber{Col: col.Number, Row: row.Number})
			if !ok {
				continue
			}
			cell := row.GetCell(col.Number)
			tasks = append(tasks, cellTask{rect: rect, lowered: style.LowerCell(cell, p)})
		}
	}
	return tasks
}

// orderByOverflow partitions tasks into empty/fits/overflow buckets,
// preserving relative order within each bucket, per spec.md §4.9.
func orderByOverflow(m *measure.Surface, tasks []cellTask) []cellTask {
	var empty, fits, overflow []cellTask
	for _, t := range tasks {
		switch {
		case t.lowered.Value == "":
			empty = append(empty, t)
		case fitsWidth(m, t):
			fits = append(fits, t)
		default:
			overflow = append(overflow, t)
		}
	}
	out := make([]cellTask, 0, len(tasks))
	out = append(out, empty...)
	out = append(out, fits...)
	out = append(out, overflow...)
	return out
}

func fitsWidth(m *measure.Surface, t cellTask) bool {
	if t.lowered.Alignment.ShrinkToFit {
		return false
	}
	w, err := m.Width(t.lowered.Font, t.lowered.Value)
	if err != nil {
		return false
	}
	return w < t.rect.Width
}

func (e *Engine) paintCell(dc *gg.Context, t cellTask) error {
	if err := e.paintBackground(dc, t); err != nil {
		return err
	}
	if err := e.paintBorders(dc, t); err != nil {
		return err
	}
	return e.paintText(dc, t)
}

func (e *Engine) paintBackground(dc *gg.Context, t cellTask) error {
	dc.SetColor(hexToColor(t.lowered.Background.Color))
	dc.DrawRectangle(t.rect.X, t.rect.Y, t.rect.Width, t.rect.Height)
	dc.Fill()
	return nil
}

func (e *Engine) paintBorders(dc *gg.Context, t cellTask) error {
	sides := []struct {
		edge                   style.BorderEdge
		x1, y1, x2, y2 float64
	}{
		{t.lowered.Borders.Left, t.rect.X, t.rect.Y, t.rect.X, t.rect.Bottom()},
		{t.lowered.Borders.Top, t.rect.X, t.rect.Y, t.rect.Right(), t.rect.Y},
		{t.lowered.Borders.Right, t.rect.Right(), t.rect.Y, t.rect.Right(), t.rect.Bottom()},
		{t.lowered.Borders.Bottom, t.rect.X, t.rect.Bottom(), t.rect.Right(), t.rect.Bottom()},
	}
	for _, s := range sides {
		if s.edge.Style == "none" || s.edge.Style == "" {
			continue
		}
		dc.SetColor(hexToColor(s.edge.Color))
		dc.SetLineWidth(s.edge.WidthPx)
		dc.SetLineCapSquare()
		// Each side is stroked as its own one-segment path, so no line
		// join is drawn; gg offers no miter join in any case.
		if len(s.edge.Segments) > 0 {
			dc.SetDash(s.edge.Segments...)
		} else {
			dc.SetDash()
		}
		dc.MoveTo(s.x1, s.y1)
		dc.LineTo(s.x2, s.y2)
		dc.Stroke()
	}
	dc.SetDash()
	return nil
}

func (e *Engine) paintText(dc *gg.Context, t cellTask) error {
	if t.lowered.Value == "" {
		return nil
	}
	face, err := e.measure.Face(t.lowered.Font)
	if err != nil {
		return rendererr.NewSurfaceError("loadFont", err)
	}
	dc.SetFontFace(face)

	inner := t.rect.Inset(e.cellPixelPadding)
	a := t.lowered.Alignment

	lines, err := e.measure.BreakLines(t.lowered.Font, t.lowered.Value, inner.Width, a.WrapText)
	if err != nil {
		return err
	}

	lineHeight := t.lowered.Font.LineHeight
	lineCount := float64(len(lines))

	horizontal := a.Horizontal
	if a.TextDirection == "rtl" {
		horizontal = flipHorizontal(horizontal)
	}

	var x float64
	var anchorX float64
	switch horizontal {
	case "right", "end":
		x = inner.X + inner.Width
		anchorX = 1
	case "center":
		x = inner.X + inner.Width/2
		anchorX = 0.5
	default: // left, start
		x = inner.X + a.Indent
		anchorX = 0
	}

	var y float64
	switch a.Vertical {
	case "top", "hanging":
		y = inner.Y
	case "middle", "alphabetic", "ideographic":
		y = inner.Y + (inner.Height-(lineCount-1)*lineHeight)/2
	default: // bottom
		y = inner.Y + inner.Height - (lineCount-1)*lineHeight
	}

	dc.SetColor(hexToColor(t.lowered.Font.Color))

	if a.TextRotation != 0 {
		dc.Push()
		dc.RotateAbout(gg.Radians(a.TextRotation), x, y)
	}
	for _, line := range lines {
		dc.DrawStringAnchored(line, x, y, anchorX, 1.0)
		y += lineHeight
	}
	if a.TextRotation != 0 {
		dc.Pop()
	}

	return nil
}

func flipHorizontal(h string) string {
	switch h {
	case "left":
		return "right"
	case "right":
		return "left"
	case "start":
		return "end"
	case "end":
		return "start"
	default:
		return h
	}
}

// hexToColor parses a lowered "#RRGGBBAA" string into a color.Color,
// falling back to opaque black on malformed input (the lowering step
// guarantees well-formed strings; this only guards a future
// sheetmodel implementation that doesn't).
func hexToColor(hex string) color.Color {
	var r, g, b, a uint8
	if len(hex) == 9 {
		fmt.Sscanf(hex, "#%02x%02x%02x%02x", &r, &g, &b, &a)
		return color.RGBA{R: r, G: g, B: b, A: a}
	}
	return color.Black
}

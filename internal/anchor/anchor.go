// Package anchor resolves an embedded image's two-anchor / top-left /
// bottom-right placement to a pixel rectangle, per spec.md §4.7.
package anchor

import (
	"sheetraster/internal/cellrect"
	"sheetraster/internal/reference"
	"sheetraster/internal/sheetmodel"
	"sheetraster/internal/units"
)

// topLeftToCell converts a declared top-left anchor to the cell it
// refers to: both col and row are incremented by 1 (0-based -> the
// 1-based cell to the right/below of the anchored corner).
func topLeftToCell(a sheetmodel.Anchor) reference.CellNumber {
	return reference.CellNumber{Col: a.Col + 1, Row: a.Row + 1}
}

// bottomRightToCell converts a declared bottom-right anchor to a cell
// number. Per spec.md §4.7, only the top-left anchor gets the +1 shift
// ("refers to the cell to the right/below of the anchored corner") —
// the bottom-right anchor's native col/row are used as-is, an
// asymmetry inherited unchanged from the source this was distilled
// from.
func bottomRightToCell(a sheetmodel.Anchor) reference.CellNumber {
	return reference.CellNumber{Col: a.Col, Row: a.Row}
}

// anchorRect resolves a single anchor to a pixel rect: the anchored
// cell's own rect, shifted by the anchor's EMU offset on X/Y only —
// width/height stay the anchored cell's, per spec.md §4.7.
func anchorRect(r *cellrect.Resolver, scale units.Scale, cell reference.CellNumber, offEMUX, offEMUY float64) (units.Rect, bool) {
	rect, ok := r.SingleCell(cell)
	if !ok {
		return units.Rect{}, false
	}
	return units.Rect{
		X:      rect.X + scale.EMUToPx(offEMUX),
		Y:      rect.Y + scale.EMUToPx(offEMUY),
		Width:  rect.Width,
		Height: rect.Height,
	}, true
}

// Resolve computes an image's pixel rectangle from its anchors, per the
// case table in spec.md §4.7. It returns ok=false ("skip this image")
// when neither anchor resolves.
func Resolve(r *cellrect.Resolver, scale units.Scale, a sheetmodel.Anchors) (units.Rect, bool) {
	var tlRect, brRect units.Rect
	var haveTL, haveBR bool

	if a.HasTopLeft {
		tlRect, haveTL = anchorRect(r, scale, topLeftToCell(a.TopLeft), a.TopLeft.OffsetEMUX, a.TopLeft.OffsetEMUY)
	}
	if a.HasBottomRight {
		brRect, haveBR = anchorRect(r, scale, bottomRightToCell(a.BottomRight), a.BottomRight.OffsetEMUX, a.BottomRight.OffsetEMUY)
	}

	switch {
	case haveTL && haveBR:
		return units.RectFromBounds(tlRect.X, tlRect.Y, brRect.X+brRect.Width, brRect.Y+brRect.Height), true

	case haveTL && a.HasExt:
		return units.Rect{
			X:      tlRect.X,
			Y:      tlRect.Y,
			Width:  scale.ExtToPx(a.Ext.Width),
			Height: scale.ExtToPx(a.Ext.Height),
		}, true

	case haveTL:
		return r.SingleCell(topLeftToCell(a.TopLeft))

	case haveBR && a.HasExt:
		w := scale.ExtToPx(a.Ext.Width)
		h := scale.ExtToPx(a.Ext.Height)
		return units.Rect{X: brRect.X - w, Y: brRect.Y - h, Width: w, Height: h}, true

	case haveBR:
		return r.SingleCell(bottomRightToCell(a.BottomRight))

	default:
		return units.Rect{}, false
	}
}

// ResolveRange resolves an image anchored by a textual cell range
// (e.g. "B2:D4") by reusing the §4.5 range combination.
func ResolveRange(r *cellrect.Resolver, textRange string) (units.Rect, bool) {
	rng, ok := reference.ParseRange(textRange)
	if !ok {
		return units.Rect{}, false
	}
	return r.Range(rng)
}

// Package sheetraster renders a worksheet from an in-memory workbook
// model onto a raster surface: column/row layout, merge resolution,
// style lowering, text measurement and wrapping, cell painting, and
// anchor-based image compositing.
package sheetraster

import (
	"fmt"
	"image"
	"image/color"

	"github.com/fogleman/gg"

	"sheetraster/internal/anchor"
	"sheetraster/internal/cellrect"
	"sheetraster/internal/config"
	"sheetraster/internal/drawengine"
	"sheetraster/internal/imaging"
	"sheetraster/internal/layout"
	"sheetraster/internal/measure"
	"sheetraster/internal/merge"
	"sheetraster/internal/rendererr"
	"sheetraster/internal/sheetmodel"
	"sheetraster/internal/units"
)

// SheetSelector picks which worksheet of a workbook to render. The
// zero value selects the workbook's default worksheet.
type SheetSelector struct {
	ByIndex int    // 1-based; zero means "not set"
	ByName  string // takes precedence over ByIndex when non-empty
}

// ByIndexSelector selects a worksheet by its 1-based index.
func ByIndexSelector(index int) SheetSelector { return SheetSelector{ByIndex: index} }

// ByNameSelector selects a worksheet by name.
func ByNameSelector(name string) SheetSelector { return SheetSelector{ByName: name} }

func resolveWorksheet(wb sheetmodel.Workbook, sel SheetSelector) (sheetmodel.Worksheet, bool) {
	if sel.ByName != "" {
		return wb.WorksheetByName(sel.ByName)
	}
	if sel.ByIndex != 0 {
		return wb.WorksheetByIndex(sel.ByIndex)
	}
	return wb.DefaultWorksheet()
}

// Renderer owns the process-wide measurement surface. Construct it
// once and reuse it across renders so font faces are parsed only once
// (spec.md §4.8/§5).
type Renderer struct {
	measure *measure.Surface
}

// NewRenderer creates a Renderer, initialising its measurement surface.
// Per spec.md §7, failure here is the renderer's one fatal error.
func NewRenderer() (*Renderer, error) {
	surface := measure.NewSurface()
	if surface == nil {
		return nil, rendererr.NewMeasurementInitError(fmt.Errorf("nil measurement surface"))
	}
	return &Renderer{measure: surface}, nil
}

// blankImage is returned for the silent-skip cases: no such worksheet,
// or a worksheet with no row data at all (spec.md §7).
func blankImage() image.Image {
	return image.NewRGBA(image.Rect(0, 0, 1, 1))
}

// Result is the outcome of a Render call: the rasterized pixels plus
// an optional presentation size layered on top of the fixed-size pixel
// buffer (spec.md §6's `scale` parameter).
type Result struct {
	Image image.Image

	// HasPresentationSize is true when Render was given a display
	// scale > 0. PresentationWidth/Height are then
	// (rasterWidth·scale, rasterHeight·scale); otherwise both are zero,
	// matching spec.md §6: "if absent, any previously set presentation
	// size is cleared."
	HasPresentationSize bool
	PresentationWidth   float64
	PresentationHeight  float64
}

func presentationResult(img image.Image, scale float64) Result {
	res := Result{Image: img}
	if scale <= 0 {
		return res
	}
	bounds := img.Bounds()
	res.HasPresentationSize = true
	res.PresentationWidth = float64(bounds.Dx()) * scale
	res.PresentationHeight = float64(bounds.Dy()) * scale
	return res
}

// Render paints the selected worksheet and returns the raster image.
// displayScale is spec.md §6's optional `scale`: when > 0, the
// returned Result's presentation size is set to
// (rasterWidth·displayScale, rasterHeight·displayScale); a zero or
// negative value leaves it unset.
func (rnd *Renderer) Render(wb sheetmodel.Workbook, sel SheetSelector, opts config.Options, displayScale float64) (Result, error) {
	ws, ok := resolveWorksheet(wb, sel)
	if !ok {
		return presentationResult(blankImage(), displayScale), nil
	}

	scale := opts.Scale()
	sheet := layout.Build(ws, scale, opts.FallbackColCharUnitWidth)
	if len(sheet.Rows) == 0 {
		return presentationResult(blankImage(), displayScale), nil
	}

	mergeIdx := merge.Build(ws.Merges())
	resolver := cellrect.New(sheet, mergeIdx)
	styleParams := opts.StyleParams()

	dc := gg.NewContext(int(sheet.CanvasSize.Width), int(sheet.CanvasSize.Height))
	dc.SetColor(hexToColor(styleParams.BackgroundColor))
	dc.Clear()

	engine := drawengine.New(rnd.measure, scale.PointsToPx(opts.CellPointPadding))
	if err := engine.Paint(dc, sheet, mergeIdx, resolver, styleParams); err != nil {
		return Result{}, err
	}

	rnd.compositeImages(dc, wb, ws, resolver, scale)

	return presentationResult(dc.Image(), displayScale), nil
}

// compositeImages resolves and composites every embedded image.
// Decoding runs concurrently across a small worker pool; compositing
// happens back on this single goroutine once every decode has
// finished, per spec.md §4.10/§5.
func (rnd *Renderer) compositeImages(dc *gg.Context, wb sheetmodel.Workbook, ws sheetmodel.Worksheet, resolver *cellrect.Resolver, scale units.Scale) {
	refs := ws.GetImages()
	if len(refs) == 0 {
		return
	}

	var jobs []imaging.Job
	for _, ref := range refs {
		rect, ok := resolveImageRect(resolver, scale, ref)
		if !ok {
			continue
		}
		bytes, ok := wb.GetImage(ref.ImageID)
		if !ok {
			continue
		}
		jobs = append(jobs, imaging.Job{ImageID: ref.ImageID, Bytes: bytes, Rect: rect})
	}
	if len(jobs) == 0 {
		return
	}

	target, ok := dc.Image().(*image.RGBA)
	if !ok {
		return
	}

	for _, r := range imaging.DecodeAll(jobs, 4) {
		if r.Err != nil || r.Image == nil {
			continue
		}
		imaging.Composite(target, r.Rect, r.Image)
	}
}

// resolveImageRect resolves an ImageRef's placement: explicit anchors
// take precedence over a plain textual range (spec.md §4.7).
func resolveImageRect(resolver *cellrect.Resolver, scale units.Scale, ref sheetmodel.ImageRef) (units.Rect, bool) {
	if ref.HasAnchors {
		return anchor.Resolve(resolver, scale, ref.Anchors)
	}
	if ref.HasTextRange {
		return anchor.ResolveRange(resolver, ref.TextRange)
	}
	return units.Rect{}, false
}

// hexToColor parses a lowered "#RRGGBBAA" string for the sheet
// background fill.
func hexToColor(hex string) color.Color {
	var r, g, b, a uint8
	if len(hex) == 9 {
		fmt.Sscanf(hex, "#%02x%02x%02x%02x", &r, &g, &b, &a)
		return color.RGBA{R: r, G: g, B: b, A: a}
	}
	return color.White
}

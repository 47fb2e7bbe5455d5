// Package xlsxsource adapts an on-disk .xlsx file to the
// sheetraster/internal/sheetmodel capability set via excelize. It is
// the one collaborator in this repo that touches spreadsheet bytes
// directly; the renderer core never imports excelize itself.
package xlsxsource

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"sync"

	"github.com/xuri/excelize/v2"

	"sheetraster/internal/sheetmodel"
)

// borderStyleNames maps excelize's numeric border style codes to the
// OOXML style names internal/style's width/segments maps are keyed by.
var borderStyleNames = map[int]string{
	0:  "none",
	1:  "thin",
	2:  "medium",
	3:  "dashed",
	4:  "dotted",
	5:  "thick",
	6:  "double",
	7:  "hair",
	8:  "mediumDashed",
	9:  "dashDot",
	10: "mediumDashDot",
	11: "dashDotDot",
	12: "mediumDashDotDot",
	13: "slantDashDot",
}

// Workbook wraps an opened excelize.File, caching resolved cell styles
// so repeated lookups within a render pass don't re-parse the same
// style record.
type Workbook struct {
	f *excelize.File

	mu         sync.Mutex
	styleCache map[int]*excelize.Style
	imageBytes map[int]sheetmodel.ImageBytes
}

// Open reads an .xlsx file from disk and wraps it for rendering.
func Open(path string) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("xlsxsource: open %s: %w", path, err)
	}
	return &Workbook{f: f, styleCache: make(map[int]*excelize.Style)}, nil
}

// OpenReader wraps an in-memory .xlsx payload without touching disk —
// used by internal/previewserver, which receives workbook bytes over
// HTTP and has no business writing them to a temp file.
func OpenReader(data []byte) (*Workbook, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("xlsxsource: open reader: %w", err)
	}
	return &Workbook{f: f, styleCache: make(map[int]*excelize.Style)}, nil
}

// Close releases the underlying file's resources.
func (wb *Workbook) Close() error {
	return wb.f.Close()
}

func (wb *Workbook) WorksheetCount() int {
	return len(wb.f.GetSheetList())
}

// SheetName returns the 1-based index's worksheet name, for callers
// (the CLI's "pick" subcommand) that want to display sheet names
// without going through the sheetmodel.Worksheet interface, which
// doesn't carry a name.
func (wb *Workbook) SheetName(index int) (string, bool) {
	names := wb.f.GetSheetList()
	if index < 1 || index > len(names) {
		return "", false
	}
	return names[index-1], true
}

func (wb *Workbook) WorksheetByIndex(index int) (sheetmodel.Worksheet, bool) {
	names := wb.f.GetSheetList()
	if index < 1 || index > len(names) {
		return nil, false
	}
	return &Worksheet{wb: wb, name: names[index-1]}, true
}

func (wb *Workbook) WorksheetByName(name string) (sheetmodel.Worksheet, bool) {
	idx, err := wb.f.GetSheetIndex(name)
	if err != nil || idx < 0 {
		return nil, false
	}
	return &Worksheet{wb: wb, name: name}, true
}

func (wb *Workbook) DefaultWorksheet() (sheetmodel.Worksheet, bool) {
	names := wb.f.GetSheetList()
	if len(names) == 0 {
		return nil, false
	}
	active := wb.f.GetActiveSheetIndex()
	if active < 0 || active >= len(names) {
		active = 0
	}
	return &Worksheet{wb: wb, name: names[active]}, true
}

// GetImage returns the bytes Worksheet.GetImages stored under a
// synthetic id (1, 2, ... per sheet, in excelize.GetPictures order).
// It finds nothing for an id until GetImages has run. See
// Worksheet.GetImages.
func (wb *Workbook) GetImage(id int) (sheetmodel.ImageBytes, bool) {
	wb.mu.Lock()
	defer wb.mu.Unlock()
	b, ok := wb.imageBytes[id]
	return b, ok
}

func (wb *Workbook) style(styleID int) (*excelize.Style, error) {
	wb.mu.Lock()
	defer wb.mu.Unlock()
	if s, ok := wb.styleCache[styleID]; ok {
		return s, nil
	}
	s, err := wb.f.GetStyle(styleID)
	if err != nil {
		return nil, err
	}
	wb.styleCache[styleID] = s
	return s, nil
}

// Worksheet adapts one excelize sheet.
type Worksheet struct {
	wb   *Workbook
	name string
}

func (w *Worksheet) ColumnCount() int {
	cols, err := w.wb.f.GetCols(w.name)
	if err != nil {
		return 0
	}
	max := 0
	for _, col := range cols {
		if len(col) > max {
			max = len(col)
		}
	}
	return max
}

func (w *Worksheet) RowCount() int {
	rows, err := w.wb.f.GetRows(w.name)
	if err != nil {
		return 0
	}
	return len(rows)
}

func (w *Worksheet) Properties() sheetmodel.Properties {
	return sheetmodel.Properties{}
}

func (w *Worksheet) GetColumn(number int) sheetmodel.Column {
	name, err := excelize.ColumnNumberToName(number)
	if err != nil {
		return sheetmodel.Column{Number: number}
	}
	width, err := w.wb.f.GetColWidth(w.name, name)
	col := sheetmodel.Column{Number: number}
	if err == nil && width > 0 {
		col.Width = width
		col.HasWidth = true
	}
	visible, err := w.wb.f.GetColVisible(w.name, name)
	if err == nil {
		col.Hidden = !visible
	}
	return col
}

func (w *Worksheet) GetRows() []sheetmodel.Row {
	rows, err := w.wb.f.GetRows(w.name)
	if err != nil {
		return nil
	}
	out := make([]sheetmodel.Row, 0, len(rows))
	for i := range rows {
		number := i + 1
		out = append(out, sheetmodel.Row{
			Number:  number,
			GetCell: func(colNumber int) sheetmodel.Cell { return w.cell(number, colNumber) },
		})
		r := &out[len(out)-1]
		if h, err := w.wb.f.GetRowHeight(w.name, number); err == nil && h > 0 {
			r.Height = h
			r.HasHeight = true
		}
		if visible, err := w.wb.f.GetRowVisible(w.name, number); err == nil {
			r.Hidden = !visible
		}
	}
	return out
}

func (w *Worksheet) Merges() []string {
	merges, err := w.wb.f.GetMergeCells(w.name)
	if err != nil {
		return nil
	}
	out := make([]string, 0, len(merges))
	for _, m := range merges {
		out = append(out, m.GetStartAxis()+":"+m.GetEndAxis())
	}
	return out
}

func (w *Worksheet) GetImages() []sheetmodel.ImageRef {
	pics, err := w.wb.f.GetPictures(w.name)
	if err != nil || len(pics) == 0 {
		return nil
	}

	w.wb.mu.Lock()
	if w.wb.imageBytes == nil {
		w.wb.imageBytes = make(map[int]sheetmodel.ImageBytes)
	}
	w.wb.mu.Unlock()

	out := make([]sheetmodel.ImageRef, 0, len(pics))
	for i, pic := range pics {
		id := i + 1

		w.wb.mu.Lock()
		w.wb.imageBytes[id] = sheetmodel.ImageBytes{Buffer: pic.File}
		w.wb.mu.Unlock()

		col, row, err := excelize.CellNameToCoordinates(pic.Cell)
		if err != nil {
			continue
		}

		ext := imageExtent(pic.File)
		out = append(out, sheetmodel.ImageRef{
			ImageID: id,
			Anchors: sheetmodel.Anchors{
				TopLeft:    sheetmodel.Anchor{Col: col - 1, Row: row - 1},
				HasTopLeft: true,
				Ext:        ext,
				HasExt:     ext.Width > 0 && ext.Height > 0,
			},
			HasAnchors: true,
		})
	}
	return out
}

// imageExtent decodes just enough of an image's header to recover its
// natural pixel size, always used as the anchor's declared extent; any
// drawing size excelize reports for the picture is not consulted.
func imageExtent(data []byte) sheetmodel.Extent {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return sheetmodel.Extent{}
	}
	return sheetmodel.Extent{Width: float64(cfg.Width), Height: float64(cfg.Height)}
}

func (w *Worksheet) cell(row, col int) sheetmodel.Cell {
	name, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return Cell{}
	}
	value, _ := w.wb.f.GetCellValue(w.name, name)
	styleID, _ := w.wb.f.GetCellStyle(w.name, name)
	merged := false
	if ranges, err := w.wb.f.GetMergeCells(w.name); err == nil {
		for _, r := range ranges {
			if r.GetCellValue() != "" && cellInRange(name, r.GetStartAxis(), r.GetEndAxis()) {
				merged = name != r.GetStartAxis()
				break
			}
		}
	}
	style, err := w.wb.style(styleID)
	if err != nil {
		return Cell{value: value, merged: merged}
	}
	return Cell{value: value, merged: merged, style: style}
}

func cellInRange(cell, start, end string) bool {
	c, r, err := excelize.CellNameToCoordinates(cell)
	if err != nil {
		return false
	}
	c1, r1, err := excelize.CellNameToCoordinates(start)
	if err != nil {
		return false
	}
	c2, r2, err := excelize.CellNameToCoordinates(end)
	if err != nil {
		return false
	}
	return c >= c1 && c <= c2 && r >= r1 && r <= r2
}

// Cell adapts one resolved excelize style/value pair.
type Cell struct {
	value  string
	merged bool
	style  *excelize.Style
}

func (c Cell) Text() string   { return c.value }
func (c Cell) IsMerged() bool { return c.merged }

func (c Cell) Fill() (sheetmodel.Fill, bool) {
	if c.style == nil {
		return sheetmodel.Fill{}, false
	}
	f := c.style.Fill
	fill := sheetmodel.Fill{IsPattern: f.Type == "pattern"}
	if len(f.Color) > 0 && f.Color[len(f.Color)-1] != "" {
		fill.BgColorARGB = stripHash(f.Color[len(f.Color)-1])
		fill.HasBgColor = true
	}
	return fill, true
}

func (c Cell) Border() (sheetmodel.Border, bool) {
	if c.style == nil || len(c.style.Border) == 0 {
		return sheetmodel.Border{}, false
	}
	var b sheetmodel.Border
	for _, side := range c.style.Border {
		edge := sheetmodel.BorderSide{
			ColorARGB: stripHash(side.Color),
			HasColor:  side.Color != "",
			Style:     borderStyleNames[side.Style],
			HasStyle:  true,
		}
		switch side.Type {
		case "left":
			b.Left, b.HasLeft = edge, true
		case "right":
			b.Right, b.HasRight = edge, true
		case "top":
			b.Top, b.HasTop = edge, true
		case "bottom":
			b.Bottom, b.HasBottom = edge, true
		}
	}
	return b, true
}

func (c Cell) Font() (sheetmodel.Font, bool) {
	if c.style == nil || c.style.Font == nil {
		return sheetmodel.Font{}, false
	}
	f := c.style.Font
	return sheetmodel.Font{
		Name:      f.Family,
		HasName:   f.Family != "",
		Size:      f.Size,
		HasSize:   f.Size > 0,
		Bold:      f.Bold,
		Italic:    f.Italic,
		ColorARGB: stripHash(f.Color),
		HasColor:  f.Color != "",
	}, true
}

func (c Cell) Alignment() (sheetmodel.Alignment, bool) {
	if c.style == nil || c.style.Alignment == nil {
		return sheetmodel.Alignment{}, false
	}
	a := c.style.Alignment
	return sheetmodel.Alignment{
		Horizontal:    a.Horizontal,
		HasHorizontal: a.Horizontal != "",
		Vertical:      a.Vertical,
		HasVertical:   a.Vertical != "",
		WrapText:      a.WrapText,
		ShrinkToFit:   a.ShrinkToFit,
		Indent:        float64(a.Indent),
		TextRotation:  float64(a.TextRotation),
	}, true
}

// stripHash drops excelize's leading "#" from an "#RRGGBB"-style color
// so it matches sheetmodel's bare-ARGB convention. excelize reports
// plain RGB (no alpha byte); we pad full opacity.
func stripHash(c string) string {
	if c == "" {
		return ""
	}
	if c[0] == '#' {
		c = c[1:]
	}
	if len(c) == 6 {
		return "FF" + c
	}
	return c
}

// Package sheetmodel declares the opaque workbook/worksheet/cell
// capability set the renderer core reads, per spec.md §3. The core
// never mutates a Workbook and never parses spreadsheet bytes itself —
// that is an external collaborator's job (see internal/xlsxsource for
// one such collaborator).
package sheetmodel

// Workbook is the read-only capability set the renderer needs from a
// parsed spreadsheet: list worksheets, fetch one by index or name, and
// fetch an embedded image's bytes by its numeric id.
type Workbook interface {
	// WorksheetCount returns how many worksheets the workbook has.
	WorksheetCount() int
	// WorksheetByIndex returns the worksheet at the given 1-based
	// index, or ok=false if out of range.
	WorksheetByIndex(index int) (Worksheet, bool)
	// WorksheetByName returns the worksheet with the given name, or
	// ok=false if no such worksheet exists.
	WorksheetByName(name string) (Worksheet, bool)
	// DefaultWorksheet returns the workbook's default worksheet, used
	// when the caller supplies no sheet selector.
	DefaultWorksheet() (Worksheet, bool)
	// GetImage fetches an embedded image's bytes by its numeric id.
	GetImage(id int) (ImageBytes, bool)
}

// ImageBytes is the tagged variant an embedded image's bytes arrive in:
// either a raw buffer, or a base64-encoded string (spec.md §3's
// "{buffer?, base64?}"). Exactly one of Buffer/Base64 should be set.
type ImageBytes struct {
	Buffer []byte
	Base64 string
}

// HasBuffer reports whether the image arrived as a raw byte buffer.
func (b ImageBytes) HasBuffer() bool { return b.Buffer != nil }

// HasBase64 reports whether the image arrived as a base64 string.
func (b ImageBytes) HasBase64() bool { return b.Base64 != "" }

// Properties carries the worksheet-level defaults used when a column or
// row does not declare its own width/height.
type Properties struct {
	// DefaultColWidth is in character units; zero means "not set."
	DefaultColWidth float64
	// DefaultRowHeight is in points; rows without a declared height
	// get this height, so zero lays such rows out zero pixels tall.
	DefaultRowHeight float64
}

// Worksheet is the read-only capability set for a single sheet.
type Worksheet interface {
	ColumnCount() int
	RowCount() int
	Properties() Properties
	// GetColumn returns the 1-based column's declared attributes.
	GetColumn(number int) Column
	// GetRows returns every row from 1 to RowCount() in order. An empty
	// result means the worksheet has no row data at all, which
	// spec.md §4.2 treats as "the draw becomes a no-op."
	GetRows() []Row
	// Merges returns the worksheet's merged ranges in declaration
	// order, as textual references (e.g. "A1:B2").
	Merges() []string
	// GetImages returns the worksheet's embedded images.
	GetImages() []ImageRef
}

// Column is a single column's declared attributes.
type Column struct {
	Number    int
	Width     float64 // character units; zero means "use the default"
	HasWidth  bool
	Hidden    bool
	Collapsed bool
}

// Row is a single row's declared attributes plus cell access.
type Row struct {
	Number     int
	Height     float64 // points; zero means "use the default"
	HasHeight  bool
	Hidden     bool
	Collapsed  bool
	GetCell    func(colNumber int) Cell
}

// Fill describes a cell's background fill.
type Fill struct {
	// IsPattern reports whether Type == "pattern"; only pattern fills
	// paint a background per spec.md §4.6.
	IsPattern bool
	// BgColorARGB is the pattern's background color, as an 8-hex-digit
	// ARGB string without a leading "#", e.g. "FF0080C0".
	BgColorARGB string
	HasBgColor  bool
}

// BorderSide describes one of a cell's four border edges.
type BorderSide struct {
	ColorARGB string
	HasColor  bool
	Style     string // one of the borderPointWidthMap keys, or "" for unset
	HasStyle  bool
}

// Border carries all four of a cell's border edges.
type Border struct {
	Left, Top, Right, Bottom BorderSide
	HasLeft, HasTop, HasRight, HasBottom bool
}

// Font describes a cell's declared font.
type Font struct {
	Name       string
	HasName    bool
	Family     int // 1=roman/serif, 2=swiss/sans-serif, 3=modern/monospace
	Size       float64
	HasSize    bool
	Bold       bool
	Italic     bool
	ColorARGB  string
	HasColor   bool
}

// Alignment describes a cell's declared alignment and text behavior.
type Alignment struct {
	Horizontal     string
	HasHorizontal  bool
	Vertical       string
	HasVertical    bool
	WrapText       bool
	ShrinkToFit    bool
	Indent         float64
	TextDirection  string
	TextRotation   float64
}

// Cell is a single cell's read-only content and styling.
type Cell interface {
	// Text returns the cell's displayed text. A cell whose text cannot
	// be read (spec.md §7) should simply return "" — the interface has
	// no error path because the core never aborts on a per-cell
	// failure.
	Text() string
	IsMerged() bool
	Fill() (Fill, bool)
	Border() (Border, bool)
	Font() (Font, bool)
	Alignment() (Alignment, bool)
}

// ImageRef is a worksheet's embedded image: a numeric id referencing
// Workbook.GetImage, plus the range it's anchored to.
type ImageRef struct {
	ImageID int
	// TextRange is set when the image is anchored to a plain cell
	// range like "B2:D4".
	TextRange string
	HasTextRange bool
	// Anchors is set when the image carries explicit two-cell (or
	// one-cell-plus-extent) anchor data.
	Anchors Anchors
	HasAnchors bool
}

// Anchor is a single corner anchor: a cell reference plus an EMU
// offset inside that cell.
type Anchor struct {
	Col, Row       int // 0-based, as declared by the source format
	OffsetEMUX     float64
	OffsetEMUY     float64
}

// Extent is an image's declared size, in pixels at 96 DPI.
type Extent struct {
	Width, Height float64
}

// Anchors carries an image's top-left/bottom-right anchors and/or
// declared extent, per spec.md §4.7's case table.
type Anchors struct {
	TopLeft     Anchor
	HasTopLeft  bool
	BottomRight Anchor
	HasBottomRight bool
	Ext         Extent
	HasExt      bool
}

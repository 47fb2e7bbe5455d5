package sheetmodel

// StaticWorkbook is a dependency-free, in-memory Workbook used by the
// renderer's own tests; cmd/sheetraster does not use it. It exists so
// the core has a concrete implementation of the opaque contract to
// test against without needing a real workbook parser.
type StaticWorkbook struct {
	Sheets []*StaticWorksheet
	Images map[int]ImageBytes
}

func (w *StaticWorkbook) WorksheetCount() int { return len(w.Sheets) }

func (w *StaticWorkbook) WorksheetByIndex(index int) (Worksheet, bool) {
	if index < 1 || index > len(w.Sheets) {
		return nil, false
	}
	return w.Sheets[index-1], true
}

func (w *StaticWorkbook) WorksheetByName(name string) (Worksheet, bool) {
	for _, s := range w.Sheets {
		if s.Name == name {
			return s, true
		}
	}
	return nil, false
}

func (w *StaticWorkbook) DefaultWorksheet() (Worksheet, bool) {
	if len(w.Sheets) == 0 {
		return nil, false
	}
	return w.Sheets[0], true
}

func (w *StaticWorkbook) GetImage(id int) (ImageBytes, bool) {
	img, ok := w.Images[id]
	return img, ok
}

// StaticWorksheet is the StaticWorkbook's in-memory Worksheet.
type StaticWorksheet struct {
	Name       string
	Cols       int
	Rows       int
	Props      Properties
	ColumnDefs map[int]Column
	RowDefs    map[int]Row
	MergeList  []string
	ImageList  []ImageRef
}

func (s *StaticWorksheet) ColumnCount() int      { return s.Cols }
func (s *StaticWorksheet) RowCount() int         { return s.Rows }
func (s *StaticWorksheet) Properties() Properties { return s.Props }

func (s *StaticWorksheet) GetColumn(number int) Column {
	if c, ok := s.ColumnDefs[number]; ok {
		return c
	}
	return Column{Number: number}
}

func (s *StaticWorksheet) GetRows() []Row {
	rows := make([]Row, 0, s.Rows)
	for n := 1; n <= s.Rows; n++ {
		if r, ok := s.RowDefs[n]; ok {
			rows = append(rows, r)
			continue
		}
		rows = append(rows, Row{Number: n, GetCell: func(int) Cell { return StaticCell{} }})
	}
	return rows
}

func (s *StaticWorksheet) Merges() []string      { return s.MergeList }
func (s *StaticWorksheet) GetImages() []ImageRef { return s.ImageList }

// StaticCell is a plain-value Cell implementation.
type StaticCell struct {
	Value         string
	Merged        bool
	CellFill      Fill
	HasFill       bool
	CellBorder    Border
	HasBorder     bool
	CellFont      Font
	HasFont       bool
	CellAlignment Alignment
	HasAlignment  bool
}

func (c StaticCell) Text() string      { return c.Value }
func (c StaticCell) IsMerged() bool    { return c.Merged }
func (c StaticCell) Fill() (Fill, bool) { return c.CellFill, c.HasFill }
func (c StaticCell) Border() (Border, bool) { return c.CellBorder, c.HasBorder }
func (c StaticCell) Font() (Font, bool) { return c.CellFont, c.HasFont }
func (c StaticCell) Alignment() (Alignment, bool) { return c.CellAlignment, c.HasAlignment }

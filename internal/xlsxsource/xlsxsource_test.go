package xlsxsource

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

func writeTestWorkbook(t *testing.T) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetCellValue("Sheet1", "A1", "hello"); err != nil {
		t.Fatalf("SetCellValue: %v", err)
	}
	if err := f.SetCellValue("Sheet1", "B1", "world"); err != nil {
		t.Fatalf("SetCellValue: %v", err)
	}
	if err := f.MergeCell("Sheet1", "A2", "B2"); err != nil {
		t.Fatalf("MergeCell: %v", err)
	}
	if err := f.SetCellValue("Sheet1", "A2", "merged"); err != nil {
		t.Fatalf("SetCellValue: %v", err)
	}

	styleID, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true, Size: 14, Color: "#FF0000"},
		Border: []excelize.Border{{Type: "top", Color: "#000000", Style: 1}},
	})
	if err != nil {
		t.Fatalf("NewStyle: %v", err)
	}
	if err := f.SetCellStyle("Sheet1", "A1", "A1", styleID); err != nil {
		t.Fatalf("SetCellStyle: %v", err)
	}

	path := filepath.Join(t.TempDir(), "test.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("SaveAs: %v", err)
	}
	return path
}

func TestOpenAndDefaultWorksheet(t *testing.T) {
	path := writeTestWorkbook(t)
	wb, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer wb.Close()

	ws, ok := wb.DefaultWorksheet()
	if !ok {
		t.Fatalf("DefaultWorksheet: ok = false")
	}
	if ws.RowCount() < 2 {
		t.Errorf("RowCount = %d, want >= 2", ws.RowCount())
	}
}

func TestWorksheetByNameAndByIndex(t *testing.T) {
	path := writeTestWorkbook(t)
	wb, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer wb.Close()

	if _, ok := wb.WorksheetByName("Sheet1"); !ok {
		t.Errorf("WorksheetByName(Sheet1) = false, want true")
	}
	if _, ok := wb.WorksheetByName("NoSuchSheet"); ok {
		t.Errorf("WorksheetByName(NoSuchSheet) = true, want false")
	}
	if _, ok := wb.WorksheetByIndex(1); !ok {
		t.Errorf("WorksheetByIndex(1) = false, want true")
	}
	if _, ok := wb.WorksheetByIndex(99); ok {
		t.Errorf("WorksheetByIndex(99) = true, want false")
	}
}

func TestCellTextAndStyle(t *testing.T) {
	path := writeTestWorkbook(t)
	wb, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer wb.Close()

	ws, _ := wb.WorksheetByName("Sheet1")
	rows := ws.GetRows()
	if len(rows) == 0 || rows[0].GetCell == nil {
		t.Fatalf("GetRows returned no usable rows")
	}

	cell := rows[0].GetCell(1)
	if cell.Text() != "hello" {
		t.Errorf("A1.Text() = %q, want %q", cell.Text(), "hello")
	}

	font, ok := cell.Font()
	if !ok {
		t.Fatalf("A1.Font() ok = false")
	}
	if !font.Bold {
		t.Errorf("A1 font.Bold = false, want true")
	}
	if font.ColorARGB != "FFFF0000" {
		t.Errorf("A1 font.ColorARGB = %q, want %q", font.ColorARGB, "FFFF0000")
	}

	border, ok := cell.Border()
	if !ok {
		t.Fatalf("A1.Border() ok = false")
	}
	if !border.HasTop || border.Top.Style != "thin" {
		t.Errorf("A1 top border = %+v, want style thin", border.Top)
	}
}

func TestMergedCellDetection(t *testing.T) {
	path := writeTestWorkbook(t)
	wb, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer wb.Close()

	ws, _ := wb.WorksheetByName("Sheet1")
	rows := ws.GetRows()
	if len(rows) < 2 {
		t.Fatalf("expected at least 2 rows, got %d", len(rows))
	}
	followerCell := rows[1].GetCell(2) // B2, the non-anchor half of A2:B2
	if !followerCell.IsMerged() {
		t.Errorf("B2.IsMerged() = false, want true")
	}
}

func TestOpenMissingFileErrors(t *testing.T) {
	if _, err := Open(filepath.Join(t.TempDir(), "missing.xlsx")); err == nil {
		t.Error("Open(missing file) = nil error, want non-nil")
	}
}


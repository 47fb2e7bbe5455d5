package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func testSheets() []SheetSummary {
	return []SheetSummary{
		{Index: 1, Name: "Summary", Rows: 10, Cols: 5},
		{Index: 2, Name: "Detail", Rows: 200, Cols: 12},
	}
}

func TestPickerSelectionStoresResult(t *testing.T) {
	m := New(testSheets())

	model, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = model.(Model)

	model, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = model.(Model)

	result := m.Result()
	if result.Cancelled {
		t.Fatal("expected a selection, got cancelled")
	}
	if result.Index != 2 {
		t.Errorf("Index = %d, want 2 (Detail)", result.Index)
	}
}

func TestPickerCancelStoresCancelledResult(t *testing.T) {
	m := New(testSheets())

	model, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	m = model.(Model)

	if !m.Result().Cancelled {
		t.Error("expected Cancelled = true after 'q'")
	}
}

func TestPickerResultDefaultsToCancelledBeforeSelection(t *testing.T) {
	m := New(testSheets())
	if !m.Result().Cancelled {
		t.Error("Result() before any selection should be Cancelled")
	}
}

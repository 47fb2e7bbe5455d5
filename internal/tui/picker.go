// Package tui provides an interactive worksheet picker for
// cmd/sheetraster's "pick" subcommand, letting a user choose which
// sheet of a multi-sheet workbook to render without having to know its
// name or index up front.
package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#555555", Dark: "#888888"})

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#999999", Dark: "#666666"})
)

// Result is the outcome of running the picker: either a chosen
// worksheet index, or a cancellation.
type Result struct {
	Index     int // 1-based
	Cancelled bool
}

type sheetItem struct {
	index int
	name  string
	rows  int
	cols  int
}

func (i sheetItem) Title() string { return i.name }
func (i sheetItem) Description() string {
	return fmt.Sprintf("%d rows x %d cols", i.rows, i.cols)
}
func (i sheetItem) FilterValue() string { return i.name }

// Model is the Bubbletea model backing the worksheet picker.
type Model struct {
	list   list.Model
	result *Result
}

// SheetSummary describes one worksheet for display in the picker.
type SheetSummary struct {
	Index int
	Name  string
	Rows  int
	Cols  int
}

// New builds a picker over the given worksheets.
func New(sheets []SheetSummary) Model {
	items := make([]list.Item, len(sheets))
	for i, s := range sheets {
		items[i] = sheetItem{index: s.Index, name: s.Name, rows: s.Rows, cols: s.Cols}
	}

	l := list.New(items, list.NewDefaultDelegate(), 60, 16)
	l.Title = "Select a worksheet to render"
	l.Styles.Title = headerStyle
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)

	return Model{list: l}
}

// Result returns the picker's outcome after the program finishes.
func (m Model) Result() Result {
	if m.result != nil {
		return *m.result
	}
	return Result{Cancelled: true}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "enter":
			if item, ok := m.list.SelectedItem().(sheetItem); ok {
				m.result = &Result{Index: item.index}
				return m, tea.Quit
			}
		case "q", "esc", "ctrl+c":
			m.result = &Result{Cancelled: true}
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.list.SetWidth(msg.Width)
		m.list.SetHeight(msg.Height)
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	return m.list.View() + "\n" + helpStyle.Render("enter select  /  filter  q quit")
}

// Run starts the picker program and returns the user's choice.
func Run(sheets []SheetSummary) (Result, error) {
	m := New(sheets)
	p := tea.NewProgram(m)
	final, err := p.Run()
	if err != nil {
		return Result{Cancelled: true}, err
	}
	return final.(Model).Result(), nil
}

package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const columnGap = "  "

// Table aligns listing rows into left-aligned columns without borders.
type Table struct {
	rows      [][]string
	colWidths []int
}

// NewTable creates a table with cols columns. Extra cells in a row are
// dropped and missing ones render empty.
func NewTable(cols int) *Table {
	return &Table{colWidths: make([]int, cols)}
}

// AddRow adds a row. Cells may carry lipgloss styling; widths are measured
// on the visible text.
func (t *Table) AddRow(cells ...string) {
	row := make([]string, len(t.colWidths))
	for i := 0; i < len(t.colWidths) && i < len(cells); i++ {
		row[i] = cells[i]
		if w := lipgloss.Width(cells[i]); w > t.colWidths[i] {
			t.colWidths[i] = w
		}
	}
	t.rows = append(t.rows, row)
}

func (t *Table) String() string {
	var sb strings.Builder
	for _, row := range t.rows {
		last := len(row) - 1
		for last > 0 && row[last] == "" {
			last--
		}
		for i := 0; i <= last; i++ {
			if i > 0 {
				sb.WriteString(columnGap)
			}
			sb.WriteString(row[i])
			if i < last {
				sb.WriteString(strings.Repeat(" ", t.colWidths[i]-lipgloss.Width(row[i])))
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// List renders "  - item" lines, used for assets touched by a cascade.
type List struct {
	items []string
}

func NewList() *List {
	return &List{}
}

func (l *List) Add(item string) {
	l.items = append(l.items, item)
}

func (l *List) String() string {
	var sb strings.Builder
	for _, item := range l.items {
		sb.WriteString("  - " + item + "\n")
	}
	return sb.String()
}

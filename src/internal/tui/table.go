package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Table lays out rows of cells in columns sized to their widest value,
// wrapped in a rounded border
type Table struct {
	caption   string
	columns   []string
	rows      []tableRow
	colWidths []int
	noHeader  bool
	minWidth  int
}

type tableRow struct {
	cells  []string
	active bool
}

// NewTable creates a table with the given column headers
func NewTable(headers ...string) *Table {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	return &Table{columns: headers, colWidths: widths}
}

// SetTitle adds a centered title above the header row
func (t *Table) SetTitle(title string) {
	t.caption = title
}

// HideHeader suppresses the column header row
func (t *Table) HideHeader() {
	t.noHeader = true
}

// SetMinWidth widens the last column until the content spans at least
// width cells
func (t *Table) SetMinWidth(width int) {
	t.minWidth = width
}

// AddRow appends a row
func (t *Table) AddRow(cells ...string) {
	t.push(cells, false)
}

// AddActiveRow appends a row rendered in the active highlight color
func (t *Table) AddActiveRow(cells ...string) {
	t.push(cells, true)
}

func (t *Table) push(cells []string, active bool) {
	// Rows are padded or truncated to the column count
	row := make([]string, len(t.columns))
	for i := 0; i < min(len(cells), len(row)); i++ {
		row[i] = cells[i]
		// lipgloss.Width ignores ANSI escapes in styled cells
		if w := lipgloss.Width(cells[i]); w > t.colWidths[i] {
			t.colWidths[i] = w
		}
	}
	t.rows = append(t.rows, tableRow{cells: row, active: active})
}

// Render returns the bordered table as a string
func (t *Table) Render() string {
	if len(t.columns) == 0 {
		return ""
	}

	th := loadTheme()
	span := t.layout()

	var lines []string
	if t.caption != "" {
		lines = append(lines, t.renderCaption(th, span)...)
	}
	if !t.noHeader {
		lines = append(lines, t.joinCells(t.columns, th.header), t.headerRule(th))
	}
	for _, row := range t.rows {
		style := th.cell
		if row.active {
			style = th.active.PaddingRight(2)
		}
		lines = append(lines, t.joinCells(row.cells, style))
	}

	return th.border.Render(strings.Join(lines, "\n"))
}

func (t *Table) renderCaption(th *theme, span int) []string {
	style := lipgloss.NewStyle().
		Bold(true).
		Foreground(th.primary).
		Width(span).
		Align(lipgloss.Center)
	return []string{style.Render(t.caption), th.dim.Render(rule(span))}
}

func (t *Table) headerRule(th *theme) string {
	var sep strings.Builder
	for _, w := range t.colWidths {
		sep.WriteString(th.dim.Render(rule(w + 2)))
	}
	return sep.String()
}

// layout applies the minimum width and returns the total content span
func (t *Table) layout() int {
	span := 0
	for _, w := range t.colWidths {
		span += w + 2
	}
	if t.minWidth > span {
		t.colWidths[len(t.colWidths)-1] += t.minWidth - span
		span = t.minWidth
	}
	return span
}

func (t *Table) joinCells(cells []string, style lipgloss.Style) string {
	var b strings.Builder
	for i, cell := range cells {
		b.WriteString(style.Width(t.colWidths[i] + 2).Render(cell))
	}
	return b.String()
}

func rule(width int) string {
	return strings.Repeat("─", width)
}

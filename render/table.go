package render

import (
	"bufio"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/ardnew/traj/expand"
)

// Table writes cols as a fixed-width table. Every column is right aligned to
// the wider of its name and its widest [Field], with one space between
// columns. The header is bold when w is a terminal.
func Table(w io.Writer, cols *expand.Columns) error {
	names := cols.Names()
	widths := make([]int, len(names))

	for i, name := range names {
		widths[i] = lipgloss.Width(name)
	}

	rows := make([][]string, 0, cols.Len())

	for _, row := range cols.Rows() {
		cells := make([]string, len(row))

		for i, v := range row {
			cells[i] = Field(v)
			widths[i] = max(widths[i], lipgloss.Width(cells[i]))
		}

		rows = append(rows, cells)
	}

	header := lipgloss.NewRenderer(w).NewStyle().Bold(true)
	bw := bufio.NewWriter(w)

	writeLine(bw, align(names, widths, &header), " ")

	for _, cells := range rows {
		writeLine(bw, align(cells, widths, nil), " ")
	}

	if err := bw.Flush(); err != nil {
		return ErrWrite.Wrap(err)
	}

	return nil
}

func align(cells []string, widths []int, style *lipgloss.Style) []string {
	out := make([]string, len(cells))

	for i, cell := range cells {
		out[i] = lipgloss.PlaceHorizontal(widths[i], lipgloss.Right, cell)
		if style != nil {
			out[i] = style.Render(out[i])
		}
	}

	return out
}

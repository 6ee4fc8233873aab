package expand

import (
	"iter"
	"maps"
	"slices"
	"strings"

	"github.com/ardnew/traj/lang"
)

// Columns is a rectangular, column-oriented view of a point sequence.
// Every column has one entry per point; nil marks a value the point lacks.
type Columns struct {
	names []string
	cols  map[string][]any
	rows  int
}

// Columnate transposes points into columns.
//
// Each field of a point becomes a column of the same name, except that a
// [lang.Object] value becomes one column per field, named "field.subfield".
// A column absent from a point holds nil at that position. Columns whose
// name, or whose name up to the first ".", is bound in constants are dropped.
func Columnate(points []lang.Context, constants lang.Context) (*Columns, error) {
	if len(points) == 0 {
		return nil, ErrEmptyPointSequence
	}

	cols := make(map[string][]any)

	for i, p := range points {
		seen := make(map[string]bool, p.Len())

		put := func(name string, value any) {
			col, ok := cols[name]

			switch {
			case seen[name]:
				col[i] = value
			case ok:
				col = append(col, value)
			default:
				col = append(make([]any, i, len(points)), value)
			}

			cols[name] = col
			seen[name] = true
		}

		for field, value := range p.All() {
			obj, ok := value.(lang.Object)
			if !ok {
				put(field, value)

				continue
			}

			for _, sub := range obj.Fields() {
				put(field+"."+sub, obj[sub])
			}
		}

		for name, col := range cols {
			if !seen[name] {
				cols[name] = append(col, nil)
			}
		}
	}

	for name := range cols {
		top, _, _ := strings.Cut(name, ".")
		if constants.Has(name) || constants.Has(top) {
			delete(cols, name)
		}
	}

	return &Columns{
		names: slices.Sorted(maps.Keys(cols)),
		cols:  cols,
		rows:  len(points),
	}, nil
}

// Names returns the column names in sorted order.
func (c *Columns) Names() []string { return slices.Clone(c.names) }

// Len returns the number of rows.
func (c *Columns) Len() int { return c.rows }

// Column returns the values of the named column, or nil if there is none.
func (c *Columns) Column(name string) []any { return c.cols[name] }

// Map returns the columns keyed by name.
func (c *Columns) Map() map[string][]any { return maps.Clone(c.cols) }

// Rows returns an iterator over the rows, each holding one value per column
// in [Columns.Names] order.
func (c *Columns) Rows() iter.Seq2[int, []any] {
	return func(yield func(int, []any) bool) {
		for i := range c.rows {
			row := make([]any, len(c.names))
			for j, name := range c.names {
				row[j] = c.cols[name][i]
			}

			if !yield(i, row) {
				return
			}
		}
	}
}

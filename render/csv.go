package render

import (
	"bufio"
	"io"
	"strings"

	"github.com/ardnew/traj/expand"
)

// CSV writes cols as comma separated values: a header of quoted column names
// followed by one line per row with each value formatted by [Field].
func CSV(w io.Writer, cols *expand.Columns) error {
	bw := bufio.NewWriter(w)

	names := cols.Names()
	line := make([]string, len(names))

	for i, name := range names {
		line[i] = quote(name)
	}

	writeLine(bw, line, ",")

	for _, row := range cols.Rows() {
		for i, v := range row {
			line[i] = Field(v)
		}

		writeLine(bw, line, ",")
	}

	if err := bw.Flush(); err != nil {
		return ErrWrite.Wrap(err)
	}

	return nil
}

// writeLine ignores write errors; bufio.Writer reports the first one on Flush.
func writeLine(bw *bufio.Writer, fields []string, sep string) {
	_, _ = bw.WriteString(strings.Join(fields, sep))
	_ = bw.WriteByte('\n')
}

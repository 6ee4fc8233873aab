package render

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/ardnew/traj/lang"
	"github.com/ardnew/traj/traj"
)

// JSON writes points as a JSON array of objects whose fields keep their
// binding order. An indent of zero writes compact JSON.
func JSON(_ context.Context, w io.Writer, points []lang.Context, indent int) error {
	var (
		data []byte
		err  error
	)

	if indent > 0 {
		data, err = json.MarshalIndent(document(points), "", strings.Repeat(" ", indent))
	} else {
		data, err = json.Marshal(document(points))
	}

	if err != nil {
		return ErrWrite.Wrap(err).With(slogFormat(FormatJSON))
	}

	if _, err = fmt.Fprintln(w, string(data)); err != nil {
		return ErrWrite.Wrap(err)
	}

	return nil
}

// YAML writes points as a YAML sequence of mappings whose fields keep their
// binding order. An indent of zero writes flow style.
func YAML(ctx context.Context, w io.Writer, points []lang.Context, indent int) error {
	var opts []yaml.EncodeOption
	if indent > 0 {
		opts = append(opts, yaml.Indent(indent))
	} else {
		opts = append(opts, yaml.Flow(true))
	}

	data, err := yaml.MarshalContext(ctx, document(points), opts...)
	if err != nil {
		return ErrWrite.Wrap(err).With(slogFormat(FormatYAML))
	}

	if _, err = fmt.Fprint(w, string(data)); err != nil {
		return ErrWrite.Wrap(err)
	}

	return nil
}

// document converts points into ordered mappings.
func document(points []lang.Context) []*traj.Map {
	out := make([]*traj.Map, len(points))

	for i, p := range points {
		m := traj.NewMap()
		for name, v := range p.All() {
			m.Set(name, v)
		}

		out[i] = m
	}

	return out
}

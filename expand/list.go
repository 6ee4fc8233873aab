package expand

import (
	"context"
	"log/slog"

	"github.com/ardnew/traj/lang"
	"github.com/ardnew/traj/traj"
)

//nolint:gochecknoglobals
var listKeys = []string{"value", "cyclic"}

// List generates the values of a list directive.
//
// spec holds a non-empty sequence under "value" and an optional boolean
// "cyclic". With no prior variables every element is evaluated in parent and
// the list length becomes the loop length. Otherwise one value is produced
// per iteration of prior: element i mod n when cyclic, else element
// min(i, n-1), each evaluated in that iteration's context.
func (x *Expander) List(
	ctx context.Context,
	spec any,
	parent lang.Context,
	prior LoopVars,
) ([]any, error) {
	m, ok := spec.(*traj.Map)
	if !ok {
		return nil, invalidValue("list", "expected a mapping", spec)
	}

	var (
		elems   []any
		cyclic  bool
		unknown []string
	)

	for key, raw := range m.All() {
		switch key {
		case "value":
			seq, ok := raw.([]any)
			if !ok && raw != nil {
				return nil, invalidValue(key, "expected a sequence", raw)
			}

			elems = seq

		case "cyclic":
			b, ok := raw.(bool)
			if !ok && raw != nil {
				return nil, invalidValue(key, "expected a boolean", raw)
			}

			cyclic = b

		default:
			unknown = append(unknown, key)
		}
	}

	if len(unknown) > 0 {
		return nil, unknownKeys(ErrUnknownListKeys, unknown, listKeys)
	}

	if len(elems) == 0 {
		return nil, ErrEmptyList
	}

	x.logger.TraceContext(ctx, "generate list",
		slog.Int("elements", len(elems)),
		slog.Bool("cyclic", cyclic),
		slog.Int("loop_length", prior.Len()))

	if !prior.Bound() {
		out := make([]any, len(elems))

		for i, elem := range elems {
			v, err := x.evaluate(ctx, elem, parent)
			if err != nil {
				return nil, err
			}

			out[i] = v
		}

		return out, nil
	}

	n := len(elems)
	out := make([]any, 0, prior.Len())

	for i, c := range Cycle(parent, prior) {
		j := min(i, n-1)
		if cyclic {
			j = i % n
		}

		v, err := x.evaluate(ctx, elems[j], c)
		if err != nil {
			return nil, err
		}

		out = append(out, v)
	}

	return out, nil
}

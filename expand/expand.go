package expand

import (
	"context"
	"iter"
	"log/slog"

	"github.com/ardnew/traj/lang"
	"github.com/ardnew/traj/log"
	"github.com/ardnew/traj/traj"
)

// Expander turns trajectories into sequences of points.
//
// The zero value is ready to use and logs nothing.
type Expander struct {
	eval   *lang.Evaluator
	logger log.Logger
}

// New returns an Expander configured with the given options.
func New(opts ...Option) *Expander {
	x := &Expander{}
	for _, opt := range opts {
		opt(x)
	}

	if x.eval == nil {
		x.eval = lang.NewEvaluator(lang.WithLogger(x.logger))
	}

	return x
}

// Result is the outcome of a dry run.
type Result struct {
	// Points are the terminal contexts in expansion order.
	Points []lang.Context

	// Constants is the context produced by the init block.
	Constants lang.Context

	// NeverWrite and AlwaysWrite are carried through from the trajectory.
	NeverWrite  []string
	AlwaysWrite []string
}

// DryRun expands t with a default [Expander].
func DryRun(ctx context.Context, t *traj.Trajectory, opts ...Option) (*Result, error) {
	return New(opts...).DryRun(ctx, t)
}

// DryRun applies the init block of t and then expands its loops, returning
// every point visited. The first error aborts the run.
func (x *Expander) DryRun(ctx context.Context, t *traj.Trajectory) (*Result, error) {
	constants, err := x.BuildInit(ctx, t.Init, lang.Context{})
	if err != nil {
		return nil, err
	}

	res := &Result{
		Constants:   constants,
		NeverWrite:  t.NeverWrite,
		AlwaysWrite: t.AlwaysWrite,
	}

	for p, err := range x.Expand(ctx, t.Loops, constants) {
		if err != nil {
			return nil, err
		}

		res.Points = append(res.Points, p)
	}

	x.logger.DebugContext(ctx, "dry run complete",
		slog.Int("points", len(res.Points)),
		slog.Int("constants", constants.Len()))

	return res, nil
}

// Points returns a lazy sequence of the points visited by t.
// Iterating it again repeats the whole expansion.
func (x *Expander) Points(
	ctx context.Context,
	t *traj.Trajectory,
) iter.Seq2[lang.Context, error] {
	return func(yield func(lang.Context, error) bool) {
		constants, err := x.BuildInit(ctx, t.Init, lang.Context{})
		if err != nil {
			yield(lang.Context{}, err)

			return
		}

		x.expand(ctx, t.Loops, constants, 0, yield)
	}
}

// Expand returns a lazy sequence of the points produced by loops, each
// starting from parent. Loops are expanded depth-first in declaration order.
//
// On failure the error is yielded once and the sequence ends.
func (x *Expander) Expand(
	ctx context.Context,
	loops []*traj.Loop,
	parent lang.Context,
) iter.Seq2[lang.Context, error] {
	return func(yield func(lang.Context, error) bool) {
		x.expand(ctx, loops, parent, 0, yield)
	}
}

// expand reports whether the consumer wants more points.
func (x *Expander) expand(
	ctx context.Context,
	loops []*traj.Loop,
	parent lang.Context,
	depth int,
	yield func(lang.Context, error) bool,
) bool {
	for index, loop := range loops {
		vars, err := x.vary(ctx, loop.Vary, parent)
		if err != nil {
			yield(lang.Context{}, lang.WrapError(err).With(
				slog.Int("depth", depth),
				slog.Int("loop", index),
			))

			return false
		}

		if x.logger.Enabled(ctx, log.LevelTrace) {
			x.logger.TraceContext(ctx, "expand loop",
				slog.Int("depth", depth),
				slog.Int("loop", index),
				slog.Any("vary", vars.Names()),
				slog.Int("length", max(vars.Len(), 1)))
		}

		for _, c := range Cycle(parent, vars) {
			if loop.Loops != nil {
				if !x.expand(ctx, loop.Loops, c, depth+1, yield) {
					return false
				}

				continue
			}

			if !yield(c, nil) {
				return false
			}
		}
	}

	return true
}

// vary computes the values of every variable of a vary block.
func (x *Expander) vary(
	ctx context.Context,
	vary *traj.Map,
	parent lang.Context,
) (LoopVars, error) {
	vars := make(LoopVars, 0, vary.Len())

	for name, raw := range vary.All() {
		values, err := x.directive(ctx, name, raw, parent, vars)
		if err != nil {
			return nil, wrapName(err, name)
		}

		vars = append(vars, LoopVar{Name: name, Values: values})
	}

	return vars, nil
}

// directive computes the values of one vary entry given the variables
// already bound in the same block.
func (x *Expander) directive(
	ctx context.Context,
	name string,
	raw any,
	parent lang.Context,
	prior LoopVars,
) ([]any, error) {
	kind, spec, err := Classify(raw)
	if err != nil {
		return nil, err
	}

	// A block whose first variable is empty has no iterations.
	if prior.Bound() && prior.Len() == 0 {
		return []any{}, nil
	}

	switch kind {
	case KindRange:
		return x.Range(ctx, spec, parent, prior.Len())

	case KindList:
		return x.List(ctx, spec, parent, prior)

	case KindSequence:
		return x.sequence(ctx, spec.([]any), parent, prior)

	case KindObject:
		fields, _ := spec.(*traj.Map)

		return broadcast(parent, prior, func(c lang.Context) (any, error) {
			return x.object(ctx, name, fields, c)
		})

	default:
		return broadcast(parent, prior, func(c lang.Context) (any, error) {
			return x.evaluate(ctx, spec, c)
		})
	}
}

// sequence evaluates a sequence literal: element i in iteration context i,
// or every element in parent when no variable is bound yet.
func (x *Expander) sequence(
	ctx context.Context,
	elems []any,
	parent lang.Context,
	prior LoopVars,
) ([]any, error) {
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

	if len(elems) != prior.Len() {
		return nil, ErrSequenceLengthMismatch.With(
			slog.Int("loop_length", prior.Len()),
			slog.Int("sequence_length", len(elems)),
		)
	}

	out := make([]any, len(elems))

	for i, c := range Cycle(parent, prior) {
		v, err := x.evaluate(ctx, elems[i], c)
		if err != nil {
			return nil, err
		}

		out[i] = v
	}

	return out, nil
}

// broadcast computes one value per iteration context, or a single value in
// parent when no variable is bound yet.
func broadcast(
	parent lang.Context,
	prior LoopVars,
	fn func(lang.Context) (any, error),
) ([]any, error) {
	if !prior.Bound() {
		v, err := fn(parent)
		if err != nil {
			return nil, err
		}

		return []any{v}, nil
	}

	out := make([]any, 0, prior.Len())

	for _, c := range Cycle(parent, prior) {
		v, err := fn(c)
		if err != nil {
			return nil, err
		}

		out = append(out, v)
	}

	return out, nil
}

// object builds a structured object from fields evaluated in c. Fields of an
// object already bound under the same name in c are carried over first.
func (x *Expander) object(
	ctx context.Context,
	name string,
	fields *traj.Map,
	c lang.Context,
) (lang.Object, error) {
	obj := lang.NewObject()
	if prev, ok := c.Get(name).(lang.Object); ok {
		obj = prev.Clone()
	}

	for field, expr := range fields.All() {
		v, err := x.evaluate(ctx, expr, c)
		if err != nil {
			return nil, lang.WrapError(err).With(slog.String("field", field))
		}

		obj.Set(field, v)
	}

	return obj, nil
}

func (x *Expander) evaluate(ctx context.Context, src any, c lang.Context) (any, error) {
	return x.eval.EvaluateContext(ctx, src, c)
}

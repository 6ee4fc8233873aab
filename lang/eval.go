package lang

import (
	"context"
	"log/slog"

	"github.com/expr-lang/expr"

	"github.com/ardnew/traj/log"
)

// Evaluator evaluates expressions against a [Context].
//
// The zero value is ready to use. All evaluators share one process-wide
// program cache, so an Evaluator is safe for concurrent use.
type Evaluator struct {
	logger log.Logger
}

// NewEvaluator returns an Evaluator configured with the given options.
func NewEvaluator(opts ...Option) *Evaluator {
	e := &Evaluator{}
	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Evaluate evaluates src in c.
//
// Values other than strings are returned unchanged. A string is compiled as
// an expression (cached by source text) and run with the bindings of c as its
// environment. Every name the expression reads must be bound in c or be a
// helper function; otherwise [ErrUnboundName] is returned.
//
// All failures wrap [ErrEvaluation].
func (e *Evaluator) Evaluate(src any, c Context) (any, error) {
	return e.EvaluateContext(log.DefaultContextProvider(), src, c)
}

// EvaluateContext is like [Evaluator.Evaluate] with a context for logging.
func (e *Evaluator) EvaluateContext(
	ctx context.Context,
	src any,
	c Context,
) (any, error) {
	source, ok := src.(string)
	if !ok {
		return src, nil
	}

	var logger log.Logger
	if e != nil {
		logger = e.logger
	}

	entry, hit := compile(source)

	logger.TraceContext(
		ctx,
		"compile expression",
		slog.String("source", source),
		slog.Bool("cache_hit", hit),
	)

	if entry.err != nil {
		return nil, ErrEvaluation.Wrap(entry.err).
			With(slog.String("source", source))
	}

	for _, name := range entry.free {
		if c.Has(name) {
			continue
		}

		err := ErrUnboundName.With(slog.String("name", name))
		if hint := Suggest(name, c.Names()); len(hint) > 0 {
			err = err.With(slog.Any("suggest", hint))
		}

		return nil, ErrEvaluation.Wrap(err).
			With(slog.String("source", source))
	}

	result, err := expr.Run(entry.program, c.env())
	if err != nil {
		return nil, ErrEvaluation.Wrap(err).
			With(slog.String("source", source))
	}

	logger.TraceContext(
		ctx,
		"evaluate expression",
		slog.String("source", source),
		slog.String("type", resultTypeName(result)),
	)

	return result, nil
}

// Evaluate evaluates src in c with a default [Evaluator].
func Evaluate(src any, c Context) (any, error) {
	var e Evaluator

	return e.Evaluate(src, c)
}

package expand

import (
	"github.com/ardnew/traj/lang"
	"github.com/ardnew/traj/log"
)

// Option configures an [Expander].
type Option func(*Expander)

// WithLogger sets the structured logger for trace-level debugging.
// If not provided, the logger is zero-valued and all logging is a no-op.
func WithLogger(logger log.Logger) Option {
	return func(x *Expander) {
		x.logger = logger
	}
}

// WithEvaluator sets the evaluator used for every embedded expression.
func WithEvaluator(eval *lang.Evaluator) Option {
	return func(x *Expander) {
		if eval != nil {
			x.eval = eval
		}
	}
}

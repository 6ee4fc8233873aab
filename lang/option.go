package lang

import "github.com/ardnew/traj/log"

// Option configures an [Evaluator].
type Option func(*Evaluator)

// WithLogger sets the structured logger for trace-level debugging.
// If not provided, the logger is zero-valued and all logging is a no-op.
func WithLogger(logger log.Logger) Option {
	return func(e *Evaluator) {
		e.logger = logger
	}
}

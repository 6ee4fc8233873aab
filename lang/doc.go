// Package lang evaluates the expressions embedded in a trajectory.
//
// Every string found where a value is expected is an expression in the
// expr-lang language. Other values (numbers, booleans, sequences) are used
// as they are.
//
// # Contexts
//
// A [Context] is an immutable set of bindings. Deriving a context copies the
// bindings and overlays new ones, so nested loops never see the bindings of
// their siblings:
//
//	base := lang.NewContext(lang.Bind("a", 2))
//	next := base.With("b", 3) // base is unchanged
//
// # Expressions
//
// Expressions may use arithmetic, comparison, logic, indexing and member
// access over the names bound in the context:
//
//	detectorAngle / 2.0
//	COUNT_TIMES[SNAME][CONFIGURATION_ORDER[CTR]]
//	counter.countAgainst == 'MONITOR'
//
// In addition to the expr-lang builtins (abs, min, max, round, len, ...)
// the following helpers are available:
//
//	sprintf(pattern, args...)  percent-style formatting
//	sqrt exp ln log10          exponentials
//	sin cos tan asin acos atan atan2
//	radians degrees            angle conversion
//
// Builtins that read the clock are disabled, so an expression always
// evaluates to the same value in the same context.
//
// # Objects
//
// An [Object] is a structured value with named fields. Fields are reached by
// member access (counter.monitorPreset).
//
// # Errors
//
// Every evaluation failure wraps [ErrEvaluation]. The cause is one of
// [ErrSyntax], [ErrUnboundName], [ErrHelperCall] or an error reported by the
// expr-lang virtual machine.
package lang

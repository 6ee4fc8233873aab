package expand

import (
	"context"
	"log/slog"

	"github.com/ardnew/traj/lang"
	"github.com/ardnew/traj/traj"
)

// BuildInit applies an init block to base and returns the resulting
// context. Its bindings are the constants of the trajectory.
//
// Entries are processed in declaration order. A scalar entry is evaluated in
// the context built so far. A mapping entry becomes a [lang.Object] that is
// bound before its fields are evaluated, so a field can read earlier fields
// of the same object through member access (counter.countAgainst) but not as
// bare names.
func (x *Expander) BuildInit(
	ctx context.Context,
	init *traj.Map,
	base lang.Context,
) (lang.Context, error) {
	c := base

	for name, raw := range init.All() {
		fields, ok := raw.(*traj.Map)
		if !ok {
			v, err := x.evaluate(ctx, raw, c)
			if err != nil {
				return c, wrapName(err, name)
			}

			c = c.With(name, v)

			continue
		}

		obj := lang.NewObject()
		c = c.With(name, obj)

		for field, expr := range fields.All() {
			v, err := x.evaluate(ctx, expr, c)
			if err != nil {
				return c, wrapName(err, name+"."+field)
			}

			obj.Set(field, v)
		}

		x.logger.TraceContext(ctx, "init object",
			slog.String("name", name),
			slog.Int("fields", len(obj)))
	}

	x.logger.TraceContext(ctx, "init complete",
		slog.Int("constants", c.Len()-base.Len()))

	return c, nil
}

// wrapName attaches the name of the variable being computed to err.
func wrapName(err error, name string) error {
	return lang.WrapError(err).With(slog.String("variable", name))
}

package expand

import (
	"iter"

	"github.com/ardnew/traj/lang"
)

// LoopVar is one variable of a vary block with its value at every iteration.
type LoopVar struct {
	Name   string
	Values []any
}

// LoopVars are the variables of a vary block in declaration order.
// All of them share the length of the first.
type LoopVars []LoopVar

// Len returns the loop length established by the first variable, or 0 when
// no variable is bound yet.
func (v LoopVars) Len() int {
	if len(v) == 0 {
		return 0
	}

	return len(v[0].Values)
}

// Bound reports whether any variable has been bound.
func (v LoopVars) Bound() bool { return len(v) > 0 }

// Names returns the variable names in declaration order.
func (v LoopVars) Names() []string {
	names := make([]string, len(v))
	for i, lv := range v {
		names[i] = lv.Name
	}

	return names
}

// Cycle returns the per-iteration contexts of a vary block: context i is
// parent overlaid with the i-th value of every variable.
//
// With no variables it yields a single copy of parent.
func Cycle(parent lang.Context, vars LoopVars) iter.Seq2[int, lang.Context] {
	return func(yield func(int, lang.Context) bool) {
		if !vars.Bound() {
			yield(0, parent.Overlay())

			return
		}

		n := vars.Len()

		pairs := make([]lang.Binding, len(vars))

		for i := range n {
			for j, lv := range vars {
				pairs[j] = lang.Bind(lv.Name, lv.Values[i])
			}

			if !yield(i, parent.Overlay(pairs...)) {
				return
			}
		}
	}
}

// Contexts collects the output of [Cycle].
func Contexts(parent lang.Context, vars LoopVars) []lang.Context {
	out := make([]lang.Context, 0, max(vars.Len(), 1))
	for _, ctx := range Cycle(parent, vars) {
		out = append(out, ctx)
	}

	return out
}

package lang

import (
	"iter"
	"maps"
	"slices"
)

// Context is an immutable set of name bindings visible to expression
// evaluation.
//
// Deriving a context with [Context.With] or [Context.Overlay] copies the
// bindings and applies the new ones to the copy, so sibling branches never
// observe each other's bindings. The zero value is an empty context.
type Context struct {
	names []string       // binding order
	vars  map[string]any // name -> native value
}

// NewContext returns a context holding the given bindings in order.
func NewContext(pairs ...Binding) Context {
	var c Context

	return c.overlay(pairs)
}

// Binding is a single name/value pair.
type Binding struct {
	Name  string
	Value any
}

// Bind returns a Binding of name to value.
func Bind(name string, value any) Binding {
	return Binding{Name: name, Value: value}
}

// Len returns the number of bindings.
func (c Context) Len() int { return len(c.names) }

// Names returns the bound names in the order they were first bound.
func (c Context) Names() []string { return slices.Clone(c.names) }

// Has reports whether name is bound.
func (c Context) Has(name string) bool {
	_, ok := c.vars[name]

	return ok
}

// Lookup returns the value bound to name.
func (c Context) Lookup(name string) (any, bool) {
	v, ok := c.vars[name]

	return v, ok
}

// Get returns the value bound to name, or nil.
func (c Context) Get(name string) any { return c.vars[name] }

// All returns an iterator over the bindings in binding order.
func (c Context) All() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		for _, name := range c.names {
			if !yield(name, c.vars[name]) {
				return
			}
		}
	}
}

// With returns a copy of the context with name bound to value.
// Rebinding an existing name replaces its value and keeps its position.
func (c Context) With(name string, value any) Context {
	return c.overlay([]Binding{{Name: name, Value: value}})
}

// Overlay returns a copy of the context with all of the given bindings
// applied in order.
func (c Context) Overlay(pairs ...Binding) Context {
	return c.overlay(pairs)
}

// Map returns a copy of the bindings as a map.
func (c Context) Map() map[string]any { return maps.Clone(c.vars) }

func (c Context) overlay(pairs []Binding) Context {
	next := Context{
		names: make([]string, len(c.names), len(c.names)+len(pairs)),
		vars:  make(map[string]any, len(c.vars)+len(pairs)),
	}

	copy(next.names, c.names)
	maps.Copy(next.vars, c.vars)

	for _, p := range pairs {
		if _, ok := next.vars[p.Name]; !ok {
			next.names = append(next.names, p.Name)
		}

		next.vars[p.Name] = Native(p.Value)
	}

	return next
}

// env returns the bindings for use as an expression environment.
// The returned map must not be modified.
func (c Context) env() map[string]any {
	if c.vars == nil {
		return map[string]any{}
	}

	return c.vars
}

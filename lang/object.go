package lang

import (
	"maps"
	"slices"
)

// Object is a structured value: a named group of fields bound at one key of a
// [Context]. Expressions reach its fields by member access (obj.field) or by
// indexing (obj["field"]).
//
// Object is a distinct type from a plain map so that consumers such as the
// columnator can tell a structured object from an ordinary mapping value.
type Object map[string]any

// NewObject returns an empty Object.
func NewObject() Object { return Object{} }

// Set binds field to value, normalized with [Native].
func (o Object) Set(field string, value any) { o[field] = Native(value) }

// Fields returns the field names in sorted order.
func (o Object) Fields() []string { return slices.Sorted(maps.Keys(o)) }

// Clone returns a shallow copy of the object.
func (o Object) Clone() Object { return maps.Clone(o) }

// Nativer is implemented by values that have a representation the expression
// language can index and traverse, such as ordered document mappings.
type Nativer interface {
	Native() any
}

// Native converts v into the form bound into contexts: values implementing
// [Nativer] are replaced by their native form and sequences are converted
// element-wise. Everything else is returned as is.
func Native(v any) any {
	switch val := v.(type) {
	case Nativer:
		return val.Native()

	case []any:
		out := make([]any, len(val))
		for i, elem := range val {
			out[i] = Native(elem)
		}

		return out

	default:
		return v
	}
}

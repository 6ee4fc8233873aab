package expand

import (
	"log/slog"

	"github.com/ardnew/traj/traj"
)

// Directive keywords.
const (
	KeyRange = "range"
	KeyList  = "list"
)

// Kind is the strategy a vary entry uses to produce its values.
type Kind int

// Directive kinds, chosen by the shape of the entry.
const (
	KindScalar   Kind = iota // expression or literal, repeated per iteration
	KindSequence             // one element per iteration
	KindRange                // {range: ...}
	KindList                 // {list: ...}
	KindObject               // any other mapping: fields of a structured object
)

func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindSequence:
		return "sequence"
	case KindRange:
		return "range"
	case KindList:
		return "list"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// Classify returns the kind of a vary entry and the value that kind
// operates on: the inner spec of a range or list, or raw itself.
//
// A mapping holding range or list must hold nothing else.
func Classify(raw any) (Kind, any, error) {
	switch v := raw.(type) {
	case []any:
		return KindSequence, v, nil

	case *traj.Map:
		for _, kw := range []struct {
			key  string
			kind Kind
		}{{KeyRange, KindRange}, {KeyList, KindList}} {
			spec, ok := v.Get(kw.key)
			if !ok {
				continue
			}

			if v.Len() != 1 {
				return KindScalar, nil, ErrUnknownKeyword.With(
					slog.String("directive", kw.key),
					slog.Any("keys", v.Keys()),
				)
			}

			return kw.kind, spec, nil
		}

		return KindObject, v, nil

	default:
		return KindScalar, raw, nil
	}
}

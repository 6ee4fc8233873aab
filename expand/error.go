package expand

import (
	"log/slog"
	"strings"

	"github.com/ardnew/traj/lang"
)

// Predefined errors (sentinel values).
var (
	ErrInvalidRangeCombination = lang.NewError("invalid parameter combination in range")
	ErrUnknownRangeKeys        = lang.NewError("unknown keys in range")
	ErrRangeLengthMismatch     = lang.NewError("range different from number of points in loop")
	ErrMissingRangeLength      = lang.NewError("unknown range length")
	ErrEmptyList               = lang.NewError("list has no length")
	ErrUnknownListKeys         = lang.NewError("unknown keys in list")
	ErrSequenceLengthMismatch  = lang.NewError("sequence different from number of points in loop")
	ErrEmptyPointSequence      = lang.NewError("no points to columnate")
	ErrInvalidValue            = lang.NewError("invalid value")
	ErrUnknownKeyword          = lang.NewError("unknown keyword")
)

// unknownKeys decorates err with the offending keys and, when exactly one
// key is unknown, the accepted keys it most resembles.
func unknownKeys(err *lang.Error, keys []string, accepted []string) *lang.Error {
	err = err.With(slog.String("keys", strings.Join(keys, ",")))

	if len(keys) == 1 {
		if hint := lang.Suggest(keys[0], accepted); len(hint) > 0 {
			err = err.With(slog.Any("suggest", hint))
		}
	}

	return err
}

func invalidValue(name, issue string, value any) *lang.Error {
	return ErrInvalidValue.With(
		slog.String("name", name),
		slog.String("issue", issue),
		slog.Any("value", value),
	)
}

package traj

import (
	"log/slog"

	"github.com/ardnew/traj/lang"
)

// Predefined errors (sentinel values).
var (
	ErrSyntax           = lang.NewError("syntax error")
	ErrReadInput        = lang.NewError("failed to read input")
	ErrUnknownKeyword   = lang.NewError("unknown keyword")
	ErrInvalidValueType = lang.NewError("invalid value type")
	ErrUnknownExample   = lang.NewError("unknown example")
)

// Position identifies a location in source text.
type Position struct {
	Offset int
	Line   int
	Column int
}

// LogValue implements slog.LogValuer.
func (p Position) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("line", p.Line),
		slog.Int("column", p.Column),
	)
}

// unknownKeyword returns an [ErrUnknownKeyword] for key found in where,
// with suggestions drawn from the accepted keywords.
func unknownKeyword(where, key string, accepted ...string) *lang.Error {
	err := ErrUnknownKeyword.With(
		slog.String("in", where),
		slog.String("keyword", key),
	)

	if hint := lang.Suggest(key, accepted); len(hint) > 0 {
		err = err.With(slog.Any("suggest", hint))
	}

	return err
}

func invalidType(where string, want string, got any) *lang.Error {
	return ErrInvalidValueType.With(
		slog.String("in", where),
		slog.String("expected", want),
		slog.String("got", TypeName(got)),
	)
}

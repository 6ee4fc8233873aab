package lang

// This file defines the helper table available to every expression in
// addition to expr-lang's own builtins. Helpers are pure: none of them touch
// the host.

import (
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/expr-lang/expr"
)

// helper is the calling convention expr-lang uses for untyped functions.
type helper func(params ...any) (any, error)

// disabledBuiltins are expr-lang builtins that read the clock or the host
// time zone database.
var disabledBuiltins = []string{"now", "date", "duration", "timezone"}

//nolint:gochecknoglobals
var helpers = map[string]helper{
	"sprintf": sprintf,

	"sqrt":  unary("sqrt", math.Sqrt),
	"exp":   unary("exp", math.Exp),
	"ln":    unary("ln", math.Log),
	"log10": unary("log10", math.Log10),
	"sin":   unary("sin", math.Sin),
	"cos":   unary("cos", math.Cos),
	"tan":   unary("tan", math.Tan),
	"asin":  unary("asin", math.Asin),
	"acos":  unary("acos", math.Acos),
	"atan":  unary("atan", math.Atan),
	"atan2": binary("atan2", math.Atan2),

	"radians": unary("radians", func(deg float64) float64 {
		return deg * math.Pi / 180
	}),
	"degrees": unary("degrees", func(rad float64) float64 {
		return rad * 180 / math.Pi
	}),
}

// Helpers returns the names of the helper functions in sorted order.
func Helpers() []string { return sortedKeys(helpers) }

// compileOptions returns the expr-lang options shared by every program.
func compileOptions() []expr.Option {
	opts := make([]expr.Option, 0, len(helpers)+len(disabledBuiltins)+2)

	opts = append(opts,
		expr.Env(map[string]any{}),
		expr.AllowUndefinedVariables(),
	)

	for _, name := range Helpers() {
		opts = append(opts, expr.Function(name, helpers[name]))
	}

	for _, name := range disabledBuiltins {
		opts = append(opts, expr.DisableBuiltin(name))
	}

	return opts
}

func unary(name string, fn func(float64) float64) helper {
	return func(params ...any) (any, error) {
		if len(params) != 1 {
			return nil, arityError(name, 1, len(params))
		}

		x, err := toFloat(name, params[0])
		if err != nil {
			return nil, err
		}

		return fn(x), nil
	}
}

func binary(name string, fn func(float64, float64) float64) helper {
	return func(params ...any) (any, error) {
		if len(params) != 2 { //nolint:mnd
			return nil, arityError(name, 2, len(params)) //nolint:mnd
		}

		x, err := toFloat(name, params[0])
		if err != nil {
			return nil, err
		}

		y, err := toFloat(name, params[1])
		if err != nil {
			return nil, err
		}

		return fn(x, y), nil
	}
}

func arityError(name string, want, got int) error {
	return ErrHelperCall.With(
		slog.String("helper", name),
		slog.Int("expected", want),
		slog.Int("got", got),
	)
}

// toFloat converts any numeric value to float64.
func toFloat(name string, v any) (float64, error) {
	if f, ok := Float(v); ok {
		return f, nil
	}

	return 0, ErrHelperCall.With(
		slog.String("helper", name),
		slog.String("issue", "expected number"),
		slog.String("type", resultTypeName(v)),
	)
}

// Float converts a numeric value to float64.
// Booleans and non-numeric values are rejected.
func Float(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}

// Int converts an integer value to int.
// Floats are accepted only when they hold an integral value.
func Int(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int8:
		return int(n), true
	case int16:
		return int(n), true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case uint:
		return int(n), true
	case uint8:
		return int(n), true
	case uint16:
		return int(n), true
	case uint32:
		return int(n), true
	case uint64:
		return int(n), true
	}

	if f, ok := Float(v); ok && f == math.Trunc(f) && !math.IsInf(f, 0) {
		return int(f), true
	}

	return 0, false
}

// IsInt reports whether v has an integer type.
func IsInt(v any) bool {
	switch v.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return true
	default:
		return false
	}
}

// sprintf formats its arguments with percent-style conversions:
//
//	%d %i %u     integer (numbers are truncated)
//	%o %x %X     integer in base 8 or 16
//	%e %f %g ... floating point
//	%s %r        string form of any value
//	%c           character
//	%%           literal percent
//
// Flags, width and precision are passed through.
func sprintf(params ...any) (any, error) {
	if len(params) == 0 {
		return nil, ErrHelperCall.With(
			slog.String("helper", "sprintf"),
			slog.String("issue", "missing pattern"),
		)
	}

	pattern, ok := params[0].(string)
	if !ok {
		return nil, ErrHelperCall.With(
			slog.String("helper", "sprintf"),
			slog.String("issue", "pattern must be a string"),
			slog.String("type", resultTypeName(params[0])),
		)
	}

	args := params[1:]

	var (
		out  strings.Builder
		next int
	)

	for i := 0; i < len(pattern); i++ {
		if pattern[i] != '%' {
			out.WriteByte(pattern[i])

			continue
		}

		spec, verb, end := scanVerb(pattern, i+1)
		if verb == 0 {
			return nil, ErrHelperCall.With(
				slog.String("helper", "sprintf"),
				slog.String("issue", "incomplete format"),
				slog.Int("offset", i),
			)
		}

		i = end

		if verb == '%' {
			out.WriteByte('%')

			continue
		}

		if next >= len(args) {
			return nil, ErrHelperCall.With(
				slog.String("helper", "sprintf"),
				slog.String("issue", "not enough arguments for format string"),
				slog.Int("args", len(args)),
			)
		}

		s, err := formatVerb(spec, verb, args[next])
		if err != nil {
			return nil, err
		}

		out.WriteString(s)

		next++
	}

	if next != len(args) {
		return nil, ErrHelperCall.With(
			slog.String("helper", "sprintf"),
			slog.String("issue", "not all arguments converted"),
			slog.Int("args", len(args)),
			slog.Int("converted", next),
		)
	}

	return out.String(), nil
}

// scanVerb scans the flags, width and precision following a '%' at offset
// start and returns them together with the conversion verb and the offset of
// the verb. A zero verb means the pattern ended early.
func scanVerb(pattern string, start int) (spec string, verb byte, end int) {
	i := start

	for i < len(pattern) && strings.IndexByte("-+ 0#", pattern[i]) >= 0 {
		i++
	}

	for i < len(pattern) && pattern[i] >= '0' && pattern[i] <= '9' {
		i++
	}

	if i < len(pattern) && pattern[i] == '.' {
		i++

		for i < len(pattern) && pattern[i] >= '0' && pattern[i] <= '9' {
			i++
		}
	}

	if i >= len(pattern) {
		return "", 0, i
	}

	return pattern[start:i], pattern[i], i
}

func formatVerb(spec string, verb byte, arg any) (string, error) {
	switch verb {
	case 'd', 'i', 'u':
		n, err := truncate(arg)
		if err != nil {
			return "", err
		}

		return fmt.Sprintf("%"+spec+"d", n), nil

	case 'o', 'x', 'X':
		n, ok := Int(arg)
		if !ok {
			return "", formatTypeError(verb, arg)
		}

		return fmt.Sprintf("%"+spec+string(verb), n), nil

	case 'e', 'E', 'f', 'F', 'g', 'G':
		f, ok := Float(arg)
		if !ok {
			return "", formatTypeError(verb, arg)
		}

		if verb == 'F' {
			verb = 'f'
		}

		return fmt.Sprintf("%"+spec+string(verb), f), nil

	case 's', 'r':
		return fmt.Sprintf("%"+spec+"s", Str(arg)), nil

	case 'c':
		switch c := arg.(type) {
		case string:
			return fmt.Sprintf("%"+spec+"s", c), nil
		default:
			n, ok := Int(arg)
			if !ok {
				return "", formatTypeError(verb, arg)
			}

			return fmt.Sprintf("%"+spec+"c", rune(n)), nil
		}

	default:
		return "", ErrHelperCall.With(
			slog.String("helper", "sprintf"),
			slog.String("issue", "unsupported format character"),
			slog.String("verb", string(verb)),
		)
	}
}

func truncate(arg any) (int, error) {
	if n, ok := Int(arg); ok {
		return n, nil
	}

	if f, ok := Float(arg); ok && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return int(f), nil
	}

	return 0, formatTypeError('d', arg)
}

func formatTypeError(verb byte, arg any) error {
	return ErrHelperCall.With(
		slog.String("helper", "sprintf"),
		slog.String("issue", "format requires a number"),
		slog.String("verb", string(verb)),
		slog.String("type", resultTypeName(arg)),
	)
}

// Str returns the display form of a value: floats always carry a decimal
// point or exponent, booleans are capitalized and nil is "None".
func Str(v any) string {
	switch val := v.(type) {
	case nil:
		return "None"
	case string:
		return val
	case bool:
		if val {
			return "True"
		}

		return "False"
	case float32:
		return formatFloat(float64(val))
	case float64:
		return formatFloat(val)
	default:
		return fmt.Sprint(v)
	}
}

func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}

	s := strconv.FormatFloat(f, 'g', -1, 64)
	if a := math.Abs(f); a != 0 && (a < 1e-4 || a >= 1e16) {
		return s
	}

	s = strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}

	return s
}

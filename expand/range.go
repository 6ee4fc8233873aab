package expand

import (
	"context"
	"log/slog"
	"math"

	"github.com/ardnew/traj/lang"
	"github.com/ardnew/traj/traj"
)

// knob identifies one parameter of a range directive.
type knob uint8

const (
	knobStart knob = 1 << iota
	knobStop
	knobStep
	knobN
	knobCenter
)

//nolint:gochecknoglobals
var (
	knobByName = map[string]knob{
		"start":  knobStart,
		"stop":   knobStop,
		"step":   knobStep,
		"n":      knobN,
		"center": knobCenter,
	}

	rangeKeys = []string{"start", "stop", "step", "n", "center"}
)

// rangeTolerance is the fraction of a step added past the end of an open
// progression so that rounding does not drop the final point.
const rangeTolerance = 1e-5

// knobs holds the evaluated parameters of a range directive.
type knobs struct {
	set                       knob
	start, stop, step, center float64
	n                         int
	integral                  bool // every numeric knob is an integer
}

func (k knobs) has(bits knob) bool { return k.set == bits }

// Range generates the values of a range directive.
//
// A bare integer N yields 0, 1, ..., N-1. Otherwise spec is a mapping of at
// most three of the knobs start, stop, step, n and center. Knob values may
// be expressions evaluated in parent. When n is absent, loopLen supplies the
// length. A nonzero loopLen must equal the number of values produced.
//
// Progressions built from a step hold integers when every knob is an
// integer; evenly spaced forms always hold floats.
func (x *Expander) Range(
	ctx context.Context,
	spec any,
	parent lang.Context,
	loopLen int,
) ([]any, error) {
	values, err := x.generateRange(ctx, spec, parent, loopLen)
	if err != nil {
		return nil, err
	}

	if loopLen != 0 && len(values) != loopLen {
		return nil, ErrRangeLengthMismatch.With(
			slog.Int("loop_length", loopLen),
			slog.Int("range_length", len(values)),
		)
	}

	x.logger.TraceContext(ctx, "generate range",
		slog.Int("loop_length", loopLen),
		slog.Int("range_length", len(values)))

	return values, nil
}

func (x *Expander) generateRange(
	ctx context.Context,
	spec any,
	parent lang.Context,
	loopLen int,
) ([]any, error) {
	m, ok := spec.(*traj.Map)
	if !ok {
		v, err := x.evaluate(ctx, spec, parent)
		if err != nil {
			return nil, err
		}

		n, ok := lang.Int(v)
		if !ok || n < 0 {
			return nil, invalidValue("range", "expected a non-negative integer", v)
		}

		return indices(n), nil
	}

	k, err := x.readKnobs(ctx, m, parent)
	if err != nil {
		return nil, err
	}

	n := k.n
	if k.set&knobN == 0 {
		n = loopLen
	}

	// Forms 1-3 take their length from the progression itself.
	switch {
	case k.has(knobStart | knobStep | knobStop):
		return k.progression(k.start, k.stop, k.step)

	case k.has(knobStart | knobStep | knobCenter):
		return k.progression(k.start, 2*k.center-k.start, k.step)

	case k.has(knobStop | knobStep | knobCenter):
		values, err := k.progression(k.stop, -2*k.center-k.stop, -k.step)
		if err != nil {
			return nil, err
		}

		reverse(values)

		return values, nil
	}

	form := k.set &^ knobN

	switch form {
	case knobStart | knobStop, knobStart | knobStep, knobStop | knobStep,
		knobCenter | knobStep, knobStart | knobCenter, knobStop | knobCenter, 0:
	default:
		return nil, ErrInvalidRangeCombination.With(
			slog.Any("knobs", k.names()),
		)
	}

	if n == 0 {
		return nil, ErrMissingRangeLength.With(
			slog.Any("knobs", k.names()),
		)
	}

	switch form {
	case knobStart | knobStop:
		return linspace(k.start, k.stop, n), nil

	case knobStart | knobStep:
		return k.steps(n, func(i int) (int, float64) {
			return k.int(knobStart) + i*k.int(knobStep), k.start + float64(i)*k.step
		}), nil

	case knobStop | knobStep:
		return k.steps(n, func(i int) (int, float64) {
			j := n - 1 - i

			return k.int(knobStop) - j*k.int(knobStep), k.stop - float64(j)*k.step
		}), nil

	case knobCenter | knobStep:
		half := float64(n-1) * k.step / 2 //nolint:mnd

		return linspace(k.center-half, k.center+half, n), nil

	case knobStart | knobCenter:
		return linspace(k.start, 2*k.center-k.start, n), nil

	case knobStop | knobCenter:
		return linspace(-k.stop-2*k.center, k.stop, n), nil

	default:
		return indices(n), nil
	}
}

// readKnobs evaluates the knobs of a range mapping. Null knobs count as
// absent.
func (x *Expander) readKnobs(
	ctx context.Context,
	m *traj.Map,
	parent lang.Context,
) (knobs, error) {
	k := knobs{integral: true}

	var unknown []string

	for name, raw := range m.All() {
		bit, ok := knobByName[name]
		if !ok {
			unknown = append(unknown, name)

			continue
		}

		v, err := x.evaluate(ctx, raw, parent)
		if err != nil {
			return k, err
		}

		if v == nil {
			continue
		}

		if bit == knobN {
			n, ok := lang.Int(v)
			if !ok || n < 0 {
				return k, invalidValue(name, "expected a non-negative integer", v)
			}

			k.n = n
			k.set |= bit

			continue
		}

		f, ok := lang.Float(v)
		if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
			return k, invalidValue(name, "expected a finite number", v)
		}

		if !lang.IsInt(v) {
			k.integral = false
		}

		switch bit {
		case knobStart:
			k.start = f
		case knobStop:
			k.stop = f
		case knobStep:
			k.step = f
		case knobCenter:
			k.center = f
		}

		k.set |= bit
	}

	if len(unknown) > 0 {
		return k, unknownKeys(ErrUnknownRangeKeys, unknown, rangeKeys)
	}

	return k, nil
}

// progression returns the values from first toward last (inclusive within
// tolerance) in increments of step.
func (k knobs) progression(first, last, step float64) ([]any, error) {
	if step == 0 {
		return nil, ErrInvalidRangeCombination.With(
			slog.Any("knobs", k.names()),
			slog.String("issue", "step must be nonzero"),
		)
	}

	count := int(math.Ceil((last + rangeTolerance*step - first) / step))
	if count < 0 {
		count = 0
	}

	istart, istep := int(first), int(step)

	return k.steps(count, func(i int) (int, float64) {
		return istart + i*istep, first + float64(i)*step
	}), nil
}

// steps builds n values from at, which returns the integer and float
// forms of value i.
func (k knobs) steps(n int, at func(i int) (int, float64)) []any {
	out := make([]any, n)

	for i := range n {
		iv, fv := at(i)
		if k.integral {
			out[i] = iv
		} else {
			out[i] = fv
		}
	}

	return out
}

// int returns the integer value of a knob. Only meaningful when integral.
func (k knobs) int(bit knob) int {
	switch bit {
	case knobStart:
		return int(k.start)
	case knobStop:
		return int(k.stop)
	case knobStep:
		return int(k.step)
	case knobCenter:
		return int(k.center)
	default:
		return k.n
	}
}

func (k knobs) names() []string {
	var out []string

	for _, name := range rangeKeys {
		if k.set&knobByName[name] != 0 {
			out = append(out, name)
		}
	}

	return out
}

// linspace returns n evenly spaced floats from first to last inclusive.
func linspace(first, last float64, n int) []any {
	out := make([]any, n)
	if n == 1 {
		out[0] = first

		return out
	}

	delta := (last - first) / float64(n-1)
	for i := range n {
		out[i] = first + float64(i)*delta
	}

	out[n-1] = last

	return out
}

// indices returns 0, 1, ..., n-1.
func indices(n int) []any {
	out := make([]any, n)
	for i := range n {
		out[i] = i
	}

	return out
}

func reverse(s []any) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

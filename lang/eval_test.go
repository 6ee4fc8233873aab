package lang

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestEvaluate_NonStringUnchanged(t *testing.T) {
	inputs := []any{5, 2.5, true, nil, []any{1, "a"}}

	for _, in := range inputs {
		got, err := Evaluate(in, Context{})
		if err != nil {
			t.Fatalf("Evaluate(%v) error: %v", in, err)
		}

		if diff := cmp.Diff(in, got); diff != "" {
			t.Errorf("Evaluate(%v) mismatch (-want +got):\n%s", in, diff)
		}
	}
}

func TestEvaluate_Expressions(t *testing.T) {
	ctx := NewContext(
		Bind("a", 2),
		Bind("detectorAngle", 1),
		Bind("t0", 248),
		Bind("SNAME", "sample1"),
		Bind("COUNT_TIMES", map[string]any{
			"sample1": map[string]any{"5m6": 900},
		}),
		Bind("ORDER", []any{"1.5m6", "5m6"}),
		Bind("counter", Object{"countAgainst": "MONITOR", "monitorPreset": 30000}),
	)

	tests := []struct {
		name string
		src  string
		want any
	}{
		{"add", "a+1", 3},
		{"divide", "detectorAngle/2.0", 0.5},
		{"string literal", "'MONITOR'", "MONITOR"},
		{"double quoted", `"TIME"`, "TIME"},
		{"compare", "(t0==248)", true},
		{"nested index", "COUNT_TIMES[SNAME][ORDER[1]]", 900},
		{"member", "counter.countAgainst", "MONITOR"},
		{"member index", `counter["monitorPreset"] / 1000`, 30.0},
		{"logic", "a > 1 && t0 < 300", true},
		{"let", "let y = 3; y * a", 6},
		{"builtin", "max(a, 7)", 7},
		{"helper", "sqrt(a * 8)", 4.0},
		{"sprintf", "sprintf('%s-%03d', SNAME, a)", "sample1-002"},
		{"predicate", "len(filter(ORDER, # != '5m6'))", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Evaluate(tt.src, ctx)
			if err != nil {
				t.Fatalf("Evaluate(%q) error: %v", tt.src, err)
			}

			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Evaluate(%q) mismatch (-want +got):\n%s", tt.src, diff)
			}
		})
	}
}

func TestEvaluate_UnboundName(t *testing.T) {
	ctx := NewContext(Bind("detectorAngle", 1))

	_, err := Evaluate("detAngle * 2", ctx)
	if err == nil {
		t.Fatal("expected error for unbound name")
	}

	if !errors.Is(err, ErrEvaluation) {
		t.Errorf("expected ErrEvaluation, got %v", err)
	}

	if !errors.Is(err, ErrUnboundName) {
		t.Errorf("expected ErrUnboundName, got %v", err)
	}

	var e *Error
	if !errors.As(err, &e) {
		t.Fatalf("expected *Error, got %T", err)
	}

	found := false

	for _, a := range e.Attrs() {
		if a.Key == "suggest" {
			found = true

			if !cmp.Equal(a.Value.Any(), []string{"detectorAngle"}) {
				t.Errorf("unexpected suggestion: %v", a.Value.Any())
			}
		}
	}

	if !found {
		t.Error("expected suggestion attribute")
	}
}

func TestEvaluate_Errors(t *testing.T) {
	ctx := NewContext(Bind("a", 1), Bind("s", "x"))

	tests := []struct {
		name  string
		src   string
		cause error
	}{
		{"syntax", "a +", ErrSyntax},
		{"unbound", "b", ErrUnboundName},
		{"helper arity", "sqrt(a, a)", nil},
		{"helper type", "sqrt(s)", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Evaluate(tt.src, ctx)
			if err == nil {
				t.Fatalf("Evaluate(%q) expected error", tt.src)
			}

			if !errors.Is(err, ErrEvaluation) {
				t.Errorf("expected ErrEvaluation, got %v", err)
			}

			if tt.cause != nil && !errors.Is(err, tt.cause) {
				t.Errorf("expected cause %v, got %v", tt.cause, err)
			}
		})
	}
}

func TestEvaluate_ContextNotModified(t *testing.T) {
	ctx := NewContext(Bind("a", 1))

	if _, err := Evaluate("let a = 5; a", ctx); err != nil {
		t.Fatalf("Evaluate error: %v", err)
	}

	if got := ctx.Get("a"); got != 1 {
		t.Errorf("context modified: a = %v", got)
	}
}

func TestEvaluate_BindingShadowsFunction(t *testing.T) {
	names := []string{
		"count", "len", "max", "min", "abs", "first", "last", "sum", "type",
		"values", "keys", "int", "float", "string", "map", "filter", "one",
		"none", "all", "any", "get", "now", "date", "duration", "sqrt", "sin",
		"exp", "ln", "log10", "radians", "sprintf",
	}

	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			got, err := Evaluate(name+" + 1", NewContext(Bind(name, 5)))
			if err != nil {
				t.Fatalf("Evaluate(%q) error: %v", name+" + 1", err)
			}

			if diff := cmp.Diff(6, got); diff != "" {
				t.Errorf("Evaluate(%q) mismatch (-want +got):\n%s", name+" + 1", diff)
			}
		})
	}
}

func TestEvaluate_BindingAndCallSameName(t *testing.T) {
	ctx := NewContext(
		Bind("sqrt", 16),
		Bind("max", 3),
		Bind("count", []any{1, 2, 3}),
	)

	tests := []struct {
		name string
		src  string
		want any
	}{
		{"helper", "sqrt(sqrt)", 4.0},
		{"builtin", "max(max, 10)", 10},
		{"predicate", "count(count, # > 1)", 2},
		{"predicate body", "filter([1, 2, 3, 4], # > max)", []any{4}},
		{"member", "{'len': 2}.len + 1", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Evaluate(tt.src, ctx)
			if err != nil {
				t.Fatalf("Evaluate(%q) error: %v", tt.src, err)
			}

			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Evaluate(%q) mismatch (-want +got):\n%s", tt.src, diff)
			}
		})
	}
}

func TestEvaluate_EnvLookup(t *testing.T) {
	ctx := NewContext(Bind("a", 2), Bind("k", "a"))

	tests := []struct {
		name  string
		src   string
		want  any
		cause error
	}{
		{"member", "$env.a + 1", 3, nil},
		{"index", `$env["a"] * 2`, 4, nil},
		{"past let", "let a = 10; $env.a + a", 12, nil},
		{"missing member", "$env.missing", nil, ErrUnboundName},
		{"missing index", `$env["missing"]`, nil, ErrUnboundName},
		{"dynamic index", "$env[k]", nil, ErrSyntax},
		{"whole env", "keys($env)", nil, ErrSyntax},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Evaluate(tt.src, ctx)

			if tt.cause != nil {
				if !errors.Is(err, tt.cause) {
					t.Errorf("Evaluate(%q) expected %v, got %v", tt.src, tt.cause, err)
				}

				return
			}

			if err != nil {
				t.Fatalf("Evaluate(%q) error: %v", tt.src, err)
			}

			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Evaluate(%q) mismatch (-want +got):\n%s", tt.src, diff)
			}
		})
	}
}

func TestEvaluator_CacheHit(t *testing.T) {
	ClearCache()

	e := NewEvaluator()
	ctx := NewContext(Bind("x", 10))

	for range 3 {
		got, err := e.Evaluate("x * 2", ctx)
		if err != nil {
			t.Fatalf("Evaluate error: %v", err)
		}

		if got != 20 {
			t.Errorf("expected 20, got %v", got)
		}
	}

	count := 0

	programCache.Range(func(_, _ any) bool {
		count++

		return true
	})

	if count != 1 {
		t.Errorf("expected 1 cached program, got %d", count)
	}
}

func TestFreeNames(t *testing.T) {
	tests := []struct {
		src  string
		want []string
	}{
		{"a + b.c + f(x) + len(y)", []string{"a", "b", "x", "y"}},
		{"a + a * a", []string{"a"}},
		{"let v = w; v + 1", []string{"w"}},
		{"filter(xs, # > lo)", []string{"xs", "lo"}},
		{"1 + 2", []string{}},
		{"'text'", []string{}},
		{"count + len(count)", []string{"count"}},
		{"sqrt(sqrt)", []string{"sqrt"}},
		{"$env.a + $env['b'] + a", []string{"a", "b"}},
		{"let c = 1; $env.c + c", []string{"c"}},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			got, err := freeNames(tt.src)
			if err != nil {
				t.Fatalf("freeNames(%q) error: %v", tt.src, err)
			}

			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("freeNames(%q) mismatch (-want +got):\n%s", tt.src, diff)
			}
		})
	}
}

func TestFreeNames_DynamicEnv(t *testing.T) {
	for _, src := range []string{"$env", "$env[k]", "len($env)"} {
		t.Run(src, func(t *testing.T) {
			if _, err := freeNames(src); !errors.Is(err, ErrSyntax) {
				t.Errorf("freeNames(%q) expected ErrSyntax, got %v", src, err)
			}
		})
	}
}

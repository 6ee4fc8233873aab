package expand

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ardnew/traj/lang"
)

func TestBuildInit(t *testing.T) {
	tr := trajectory(t, `{
		init: {
			speed: 2,
			label: "'fast'",
			double: "speed * 2",
			counter: {countAgainst: "'TIME'", preset: "double * 10", echo: "counter.countAgainst"},
		},
		loops: [],
	}`)

	c, err := New().BuildInit(t.Context(), tr.Init, lang.Context{})
	if err != nil {
		t.Fatalf("BuildInit error: %v", err)
	}

	want := map[string]any{
		"speed":  2,
		"label":  "fast",
		"double": 4,
		"counter": lang.Object{
			"countAgainst": "TIME",
			"preset":       40,
			"echo":         "TIME",
		},
	}

	if diff := cmp.Diff(want, c.Map()); diff != "" {
		t.Errorf("constants mismatch (-want +got):\n%s", diff)
	}

	if diff := cmp.Diff([]string{"speed", "label", "double", "counter"}, c.Names()); diff != "" {
		t.Errorf("names mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildInit_Base(t *testing.T) {
	base := lang.NewContext(lang.Bind("offset", 10))
	tr := trajectory(t, `{init: {a: "offset + 1"}}`)

	c, err := New().BuildInit(t.Context(), tr.Init, base)
	if err != nil {
		t.Fatalf("BuildInit error: %v", err)
	}

	if c.Get("a") != 11 {
		t.Errorf("expected a = 11, got %v", c.Get("a"))
	}

	if base.Has("a") {
		t.Error("BuildInit modified its base context")
	}
}

func TestBuildInit_Empty(t *testing.T) {
	c, err := New().BuildInit(t.Context(), nil, lang.Context{})
	if err != nil {
		t.Fatalf("BuildInit error: %v", err)
	}

	if c.Len() != 0 {
		t.Errorf("expected no constants, got %v", c.Names())
	}
}

func TestBuildInit_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"forward reference", `{init: {a: "b", b: 1}}`, "a"},
		{"bare sibling field", `{init: {o: {x: 1, y: "x + 1"}}}`, "o.y"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := trajectory(t, tt.src)

			_, err := New().BuildInit(t.Context(), tr.Init, lang.Context{})
			if !errors.Is(err, lang.ErrUnboundName) {
				t.Fatalf("expected %v, got %v", lang.ErrUnboundName, err)
			}

			var le *lang.Error
			if !errors.As(err, &le) {
				t.Fatalf("expected *lang.Error, got %T", err)
			}

			var variable string

			for _, a := range le.Attrs() {
				if a.Key == "variable" {
					variable = a.Value.String()
				}
			}

			if variable != tt.want {
				t.Errorf("expected variable %q, got %q", tt.want, variable)
			}
		})
	}
}

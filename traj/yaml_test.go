package traj

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseYAML(t *testing.T) {
	input := `
zeta: 1
alpha:
  step: 0.5
  n: -3
list: [a, true, null]
`

	got, err := ParseYAML(t.Context(), []byte(input))
	if err != nil {
		t.Fatalf("ParseYAML error: %v", err)
	}

	m, ok := got.(*Map)
	if !ok {
		t.Fatalf("expected *Map, got %T", got)
	}

	if diff := cmp.Diff([]string{"zeta", "alpha", "list"}, m.Keys()); diff != "" {
		t.Errorf("key order mismatch (-want +got):\n%s", diff)
	}

	want := map[string]any{
		"zeta":  1,
		"alpha": map[string]any{"step": 0.5, "n": -3},
		"list":  []any{"a", true, nil},
	}

	if diff := cmp.Diff(want, m.Native()); diff != "" {
		t.Errorf("content mismatch (-want +got):\n%s", diff)
	}
}

func TestParseYAML_Error(t *testing.T) {
	_, err := ParseYAML(t.Context(), []byte("a: [1, 2"))
	if !errors.Is(err, ErrSyntax) {
		t.Errorf("expected ErrSyntax, got %v", err)
	}
}

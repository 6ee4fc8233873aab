package expand

import (
	"testing"

	"github.com/ardnew/traj/lang"
	"github.com/ardnew/traj/traj"
)

// doc parses a relaxed JSON fragment for use as a directive or document.
func doc(t *testing.T, src string) any {
	t.Helper()

	v, err := traj.ParseJSON(t.Context(), []byte(src))
	if err != nil {
		t.Fatalf("ParseJSON(%q) error: %v", src, err)
	}

	return v
}

// trajectory parses a relaxed JSON trajectory.
func trajectory(t *testing.T, src string) *traj.Trajectory {
	t.Helper()

	tr, err := traj.Parse(t.Context(), []byte(src), traj.FormatJSON)
	if err != nil {
		t.Fatalf("Parse(%q) error: %v", src, err)
	}

	return tr
}

// collect expands loops from parent and returns every point.
func collect(t *testing.T, x *Expander, src string, parent lang.Context) ([]lang.Context, error) {
	t.Helper()

	tr := trajectory(t, src)

	var points []lang.Context

	for p, err := range x.Expand(t.Context(), tr.Loops, parent) {
		if err != nil {
			return points, err
		}

		points = append(points, p)
	}

	return points, nil
}

// values returns the value of name in every point.
func values(points []lang.Context, name string) []any {
	out := make([]any, len(points))
	for i, p := range points {
		out[i] = p.Get(name)
	}

	return out
}

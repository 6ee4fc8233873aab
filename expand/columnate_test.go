package expand

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/ardnew/traj/lang"
	"github.com/ardnew/traj/traj"
)

func TestColumnate(t *testing.T) {
	points := []lang.Context{
		lang.NewContext(lang.Bind("a", 1)),
		lang.NewContext(lang.Bind("b", 2)),
	}

	cols, err := Columnate(points, lang.Context{})
	if err != nil {
		t.Fatalf("Columnate error: %v", err)
	}

	want := map[string][]any{
		"a": {1, nil},
		"b": {nil, 2},
	}

	if diff := cmp.Diff(want, cols.Map()); diff != "" {
		t.Errorf("columns mismatch (-want +got):\n%s", diff)
	}

	if cols.Len() != 2 {
		t.Errorf("expected 2 rows, got %d", cols.Len())
	}
}

func TestColumnate_Objects(t *testing.T) {
	points := []lang.Context{
		lang.NewContext(
			lang.Bind("k", 7),
			lang.Bind("dev", lang.Object{"y": 2, "x": 1}),
			lang.Bind("sample", lang.Object{"index": 0}),
		),
		lang.NewContext(
			lang.Bind("k", 7),
			lang.Bind("dev", lang.Object{"x": 3}),
			lang.Bind("sample", lang.Object{"index": 1}),
		),
	}
	constants := lang.NewContext(
		lang.Bind("k", 7),
		lang.Bind("sample", lang.Object{}),
	)

	cols, err := Columnate(points, constants)
	if err != nil {
		t.Fatalf("Columnate error: %v", err)
	}

	want := map[string][]any{
		"dev.x": {1, 3},
		"dev.y": {2, nil},
	}

	if diff := cmp.Diff(want, cols.Map()); diff != "" {
		t.Errorf("columns mismatch (-want +got):\n%s", diff)
	}
}

func TestColumnate_Empty(t *testing.T) {
	_, err := Columnate(nil, lang.Context{})
	if !errors.Is(err, ErrEmptyPointSequence) {
		t.Errorf("expected %v, got %v", ErrEmptyPointSequence, err)
	}
}

func TestColumns_Rows(t *testing.T) {
	points := []lang.Context{
		lang.NewContext(lang.Bind("z", "first"), lang.Bind("a", 1)),
		lang.NewContext(lang.Bind("a", 2)),
		lang.NewContext(lang.Bind("z", "third"), lang.Bind("a", 3)),
	}

	cols, err := Columnate(points, lang.Context{})
	if err != nil {
		t.Fatalf("Columnate error: %v", err)
	}

	if diff := cmp.Diff([]string{"a", "z"}, cols.Names()); diff != "" {
		t.Errorf("names mismatch (-want +got):\n%s", diff)
	}

	var rows [][]any
	for _, row := range cols.Rows() {
		rows = append(rows, row)
	}

	want := [][]any{{1, "first"}, {2, nil}, {3, "third"}}

	if diff := cmp.Diff(want, rows); diff != "" {
		t.Errorf("rows mismatch (-want +got):\n%s", diff)
	}
}

func TestDryRun_Examples(t *testing.T) {
	tests := []struct {
		name    string
		points  int
		columns []string
	}{
		{
			name:   "refl",
			points: 201 * 12 * 4,
			columns: []string{
				"detectorAngle", "i", "polarizationIn", "polarizationOut",
				"sampleAngle", "skip", "slit1Aperture", "slit2Aperture", "t0",
			},
		},
		{
			name:   "sans",
			points: 6 * 5 * 10,
			columns: []string{
				"COUNTER_VALUE", "CTR", "INTENT", "S", "SNAME", "T",
				"counter.timePreset", "deviceConfig", "sampleTemperature", "skip",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, err := traj.Example(t.Context(), tt.name)
			if err != nil {
				t.Fatalf("Example error: %v", err)
			}

			res, err := DryRun(t.Context(), tr)
			if err != nil {
				t.Fatalf("DryRun error: %v", err)
			}

			if len(res.Points) != tt.points {
				t.Errorf("expected %d points, got %d", tt.points, len(res.Points))
			}

			cols, err := Columnate(res.Points, res.Constants)
			if err != nil {
				t.Fatalf("Columnate error: %v", err)
			}

			if diff := cmp.Diff(tt.columns, cols.Names()); diff != "" {
				t.Errorf("columns mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDryRun_ReflValues(t *testing.T) {
	tr, err := traj.Example(t.Context(), "refl")
	if err != nil {
		t.Fatalf("Example error: %v", err)
	}

	res, err := DryRun(t.Context(), tr)
	if err != nil {
		t.Fatalf("DryRun error: %v", err)
	}

	// Each detector angle spans 48 points.
	const block = 12 * 4

	tests := []struct {
		point int
		name  string
		want  any
	}{
		{0, "detectorAngle", 0.0},
		{0, "polarizationIn", 0},
		{1, "polarizationIn", 1},
		{2, "polarizationOut", 1},
		{4 * 4, "t0", 248},
		{4 * 4, "skip", true},
		{5 * 4, "skip", false},
		{7 * block, "slit1Aperture", 5},
		{200 * block, "slit1Aperture", 5},
		{3 * block, "slit2Aperture", 1},
		{5 * block, "slit2Aperture", 2},
		{200 * block, "detectorAngle", 4.0},
		{200 * block, "sampleAngle", 2.0},
	}

	for _, tt := range tests {
		got := res.Points[tt.point].Get(tt.name)
		if diff := cmp.Diff(tt.want, got, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
			t.Errorf("point %d %s mismatch (-want +got):\n%s", tt.point, tt.name, diff)
		}
	}
}

func TestDryRun_SansValues(t *testing.T) {
	tr, err := traj.Example(t.Context(), "sans")
	if err != nil {
		t.Fatalf("Example error: %v", err)
	}

	res, err := DryRun(t.Context(), tr)
	if err != nil {
		t.Fatalf("DryRun error: %v", err)
	}

	// T=0, CTR=2 (5m6t), S=1 (blocked beam)
	p := res.Points[2*10+1]

	want := map[string]any{
		"SNAME":             "blocked beam",
		"INTENT":            "BlockedBeam",
		"COUNTER_VALUE":     0,
		"skip":              true,
		"sampleTemperature": 15.0,
		"counter":           lang.Object{"timePreset": 0},
		"sample": lang.Object{
			"mode": "Chamber", "aperture": 12.7, "sampleThickness": 1, "index": 1,
		},
	}

	for name, w := range want {
		if diff := cmp.Diff(w, p.Get(name)); diff != "" {
			t.Errorf("%s mismatch (-want +got):\n%s", name, diff)
		}
	}

	last := res.Points[len(res.Points)-1]
	if last.Get("sampleTemperature") != 40.0 || last.Get("SNAME") != "sample8" {
		t.Errorf("unexpected final point: %v", last.Map())
	}
}

package cmd

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/google/go-cmp/cmp"

	"github.com/ardnew/traj/expand"
	"github.com/ardnew/traj/traj"
)

// execute parses args against both commands and runs the selected one,
// returning what it wrote to standard output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var cli struct {
		DryRun   DryRun   `cmd:"" default:"withargs" name:"dryrun"`
		Examples Examples `cmd:""`
	}

	var out bytes.Buffer

	ctx := t.Context()

	parser, err := kong.New(&cli,
		kong.Name("traj"),
		kong.Writers(&out, &out),
		kong.Exit(func(int) { t.Fatal("unexpected exit") }),
		kong.BindSingletonProvider(func() context.Context { return ctx }),
		Vars(),
	)
	if err != nil {
		t.Fatalf("kong.New error: %v", err)
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return "", err
	}

	ctx = WithContext(ctx, ktx)
	err = ktx.Run()

	return out.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	return path
}

func TestDryRun_File(t *testing.T) {
	yamlPath := writeFile(t, "scan.yaml", "init:\n  k: 10\nloops:\n  - vary:\n      x: {range: 3}\n      y: x + k\n")
	jsonPath := writeFile(t, "scan.json", "// three points\n{loops: [{vary: {x: {range: 3}, y: 'x + k'}}], init: {k: 10}}\n")

	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "table",
			args: []string{yamlPath},
			want: "x  y\n0 10\n1 11\n2 12\n",
		},
		{
			name: "csv",
			args: []string{"--format", "csv", jsonPath},
			want: "\"x\",\"y\"\n0,10\n1,11\n2,12\n",
		},
		{
			name: "json",
			args: []string{"dryrun", "-f", "json", "--indent", "0", yamlPath},
			want: `[{"k":10,"x":0,"y":10},{"k":10,"x":1,"y":11},{"k":10,"x":2,"y":12}]` + "\n",
		},
		{
			name: "count",
			args: []string{"--count", jsonPath},
			want: "3\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := execute(t, tt.args...)
			if err != nil {
				t.Fatalf("execute error: %v", err)
			}

			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("output mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDryRun_Example(t *testing.T) {
	got, err := execute(t, "--count", "refl")
	if err != nil {
		t.Fatalf("execute error: %v", err)
	}

	if got != "9648\n" {
		t.Errorf("refl count = %q, want %q", got, "9648\n")
	}

	got, err = execute(t, "-f", "csv", "sans")
	if err != nil {
		t.Fatalf("execute error: %v", err)
	}

	lines := strings.Split(strings.TrimSuffix(got, "\n"), "\n")
	if len(lines) != 301 {
		t.Errorf("sans csv has %d lines, want 301", len(lines))
	}
}

func TestDryRun_Errors(t *testing.T) {
	bad := writeFile(t, "bad.json", `{loops: [{vary: {x: {range: 2}, y: [1, 2, 3]}}]}`)

	tests := []struct {
		name string
		args []string
		want error
	}{
		{"missing file", []string{filepath.Join(t.TempDir(), "nope.json")}, traj.ErrReadInput},
		{"expansion", []string{bad}, expand.ErrSequenceLengthMismatch},
		{"count expansion", []string{"--count", bad}, expand.ErrSequenceLengthMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, tt.args...)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}

			if out != "" {
				t.Errorf("expected no output, got %q", out)
			}
		})
	}
}

func TestDryRun_BadFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"no source", nil},
		{"extra argument", []string{"refl", "sans"}},
		{"unknown format", []string{"--format", "xml", "refl"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, tt.args...)
			if err == nil {
				t.Fatal("expected parse error")
			}

			if out != "" {
				t.Errorf("expected no output, got %q", out)
			}
		})
	}
}

func TestExamples(t *testing.T) {
	got, err := execute(t, "examples")
	if err != nil {
		t.Fatalf("execute error: %v", err)
	}

	if diff := cmp.Diff("refl\nsans\n", got); diff != "" {
		t.Errorf("list mismatch (-want +got):\n%s", diff)
	}

	got, err = execute(t, "examples", "sans")
	if err != nil {
		t.Fatalf("execute error: %v", err)
	}

	want, _ := traj.ExampleSource("sans")
	if got != string(want) {
		t.Error("examples sans did not print the example source")
	}

	_, err = execute(t, "examples", "sanz")
	if !errors.Is(err, traj.ErrUnknownExample) {
		t.Errorf("expected ErrUnknownExample, got %v", err)
	}
}

package log

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestPackage_LogFunctions_UseDefaultLogger(t *testing.T) {
	original := defaultLog
	defer func() { defaultLog = original }()

	var buf bytes.Buffer

	defaultLog = Make(&buf, WithLevel(LevelTrace), WithFormat(FormatJSON), WithPretty(false))

	tests := []struct {
		name  string
		fn    func(string, ...slog.Attr)
		level string
	}{
		{"Trace", Trace, "TRACE"},
		{"Debug", Debug, "DEBUG"},
		{"Info", Info, "INFO"},
		{"Warn", Warn, "WARN"},
		{"Error", Error, "ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()
			tt.fn(tt.name+" message", slog.String("key", "value"))

			output := buf.String()

			for _, want := range []string{tt.name + " message", `"level":"` + tt.level + `"`, `"key":"value"`} {
				if !strings.Contains(output, want) {
					t.Errorf("expected output to contain %q, got: %s", want, output)
				}
			}
		})
	}
}

func TestPackage_Config(t *testing.T) {
	original := defaultLog
	defer func() { defaultLog = original }()

	var buf bytes.Buffer

	defaultLog = Make(&buf, WithFormat(FormatJSON), WithPretty(false))

	Debug("hidden")
	Config(WithLevel(LevelDebug), WithAttrs(slog.String("run", "r1")))
	Debug("shown")

	if Default().Level() != LevelDebug {
		t.Errorf("expected default level debug, got %v", Default().Level())
	}

	output := buf.String()
	if strings.Contains(output, "hidden") {
		t.Errorf("message below level was logged: %s", output)
	}

	if !strings.Contains(output, `"run":"r1"`) || !strings.Contains(output, "shown") {
		t.Errorf("expected configured message, got: %s", output)
	}

	With(slog.Int("n", 1)).Info("with")

	if !strings.Contains(buf.String(), `"n":1`) {
		t.Errorf("expected attribute from With, got: %s", buf.String())
	}
}

package render

import (
	"log/slog"
	"strings"

	"github.com/ardnew/traj/lang"
)

// Format selects a presentation of the points.
type Format uint8

// Supported formats.
const (
	FormatTable Format = iota
	FormatCSV
	FormatJSON
	FormatYAML
)

// DefaultFormat is used when no format is named.
const DefaultFormat = FormatTable

//nolint:gochecknoglobals
var formatNames = [...]string{
	FormatTable: "table",
	FormatCSV:   "csv",
	FormatJSON:  "json",
	FormatYAML:  "yaml",
}

// Formats returns the names of all formats.
func Formats() []string { return formatNames[:] }

// String returns the name of f.
func (f Format) String() string {
	if int(f) < len(formatNames) {
		return formatNames[f]
	}

	return "unknown"
}

// ParseFormat returns the format with the given name, ignoring case.
// The empty string selects [DefaultFormat].
func ParseFormat(name string) (Format, error) {
	if name == "" {
		return DefaultFormat, nil
	}

	for i, s := range formatNames {
		if strings.EqualFold(s, name) {
			return Format(i), nil
		}
	}

	err := ErrUnknownFormat.With(slog.String("format", name))
	if hint := lang.Suggest(strings.ToLower(name), Formats()); len(hint) > 0 {
		err = err.With(slog.Any("suggest", hint))
	}

	return DefaultFormat, err
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *Format) UnmarshalText(text []byte) error {
	v, err := ParseFormat(string(text))
	if err != nil {
		return err
	}

	*f = v

	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (f Format) MarshalText() ([]byte, error) { return []byte(f.String()), nil }

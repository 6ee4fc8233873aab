package traj

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Document keywords.
const (
	KeyNeverWrite  = "neverWrite"
	KeyAlwaysWrite = "alwaysWrite"
	KeyInit        = "init"
	KeyLoops       = "loops"
	KeyVary        = "vary"
)

//nolint:gochecknoglobals
var (
	documentKeys = []string{KeyNeverWrite, KeyAlwaysWrite, KeyInit, KeyLoops}
	loopKeys     = []string{KeyVary, KeyLoops}
)

// Trajectory is a decoded trajectory document.
type Trajectory struct {
	// NeverWrite and AlwaysWrite name variables for the instrument writer.
	// They are carried through without interpretation.
	NeverWrite  []string
	AlwaysWrite []string

	// Init holds the constants, evaluated in order before any loop.
	Init *Map

	// Loops are expanded in order, each one depth-first.
	Loops []*Loop
}

// Loop is one node of the loop tree: the variables it varies and the loops
// nested inside it.
type Loop struct {
	Vary  *Map
	Loops []*Loop
}

// Format identifies a document syntax.
type Format int

// Supported document syntaxes.
const (
	FormatJSON Format = iota // relaxed JSON
	FormatYAML
)

func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	default:
		return "unknown"
	}
}

// FormatOf returns the document syntax implied by the extension of path.
// Anything other than .yaml or .yml is read as relaxed JSON.
func FormatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Load reads and decodes the trajectory stored at path.
func Load(ctx context.Context, path string, opts ...Option) (*Trajectory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, ErrReadInput.Wrap(err).
			With(slog.String("path", path))
	}

	t, err := Parse(ctx, data, FormatOf(path), opts...)
	if err != nil {
		return nil, ErrReadInput.Wrap(err).
			With(slog.String("path", path))
	}

	return t, nil
}

// Parse decodes a trajectory from source text in the given syntax.
func Parse(
	ctx context.Context,
	data []byte,
	format Format,
	opts ...Option,
) (*Trajectory, error) {
	var (
		doc any
		err error
	)

	switch format {
	case FormatYAML:
		doc, err = ParseYAML(ctx, data, opts...)
	default:
		doc, err = ParseJSON(ctx, data, opts...)
	}

	if err != nil {
		return nil, err
	}

	return Decode(doc)
}

// Decode builds a Trajectory from a parsed document.
//
// The document must be a mapping whose keys are among neverWrite,
// alwaysWrite, init and loops. Loop nodes may hold only vary and loops.
// The values under vary are kept as parsed; their interpretation belongs
// to the expansion engine.
func Decode(doc any) (*Trajectory, error) {
	root, ok := doc.(*Map)
	if !ok {
		return nil, invalidType("document", "mapping", doc)
	}

	t := &Trajectory{}

	for key, value := range root.All() {
		var err error

		switch key {
		case KeyNeverWrite:
			t.NeverWrite, err = decodeNames(key, value)

		case KeyAlwaysWrite:
			t.AlwaysWrite, err = decodeNames(key, value)

		case KeyInit:
			t.Init, err = decodeMapping(key, value)

		case KeyLoops:
			t.Loops, err = decodeLoops(key, value)

		default:
			err = unknownKeyword("document", key, documentKeys...)
		}

		if err != nil {
			return nil, err
		}
	}

	return t, nil
}

func decodeNames(where string, v any) ([]string, error) {
	list, ok := v.([]any)
	if !ok {
		return nil, invalidType(where, "sequence", v)
	}

	names := make([]string, len(list))

	for i, elem := range list {
		s, ok := elem.(string)
		if !ok {
			return nil, invalidType(where, "string", elem).
				With(slog.Int("index", i))
		}

		names[i] = s
	}

	return names, nil
}

func decodeMapping(where string, v any) (*Map, error) {
	if v == nil {
		return &Map{}, nil
	}

	m, ok := v.(*Map)
	if !ok {
		return nil, invalidType(where, "mapping", v)
	}

	return m, nil
}

func decodeLoops(where string, v any) ([]*Loop, error) {
	if v == nil {
		return nil, nil
	}

	list, ok := v.([]any)
	if !ok {
		return nil, invalidType(where, "sequence", v)
	}

	loops := make([]*Loop, len(list))

	for i, elem := range list {
		loop, err := decodeLoop(elem)
		if err != nil {
			return nil, err
		}

		loops[i] = loop
	}

	return loops, nil
}

func decodeLoop(v any) (*Loop, error) {
	node, ok := v.(*Map)
	if !ok {
		return nil, invalidType("loop", "mapping", v)
	}

	loop := &Loop{Vary: &Map{}}

	for key, value := range node.All() {
		var err error

		switch key {
		case KeyVary:
			loop.Vary, err = decodeMapping(key, value)

		case KeyLoops:
			loop.Loops, err = decodeLoops(key, value)

		default:
			err = unknownKeyword("loop", key, loopKeys...)
		}

		if err != nil {
			return nil, err
		}
	}

	return loop, nil
}

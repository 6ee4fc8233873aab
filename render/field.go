package render

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/ardnew/traj/lang"
)

// Field formats one value for [CSV] and [Table] output.
//
// Null is empty, strings are quoted, integers and booleans are printed as
// integers and floats with up to six significant digits. Anything else is
// quoted in YAML flow style.
func Field(v any) string {
	switch val := v.(type) {
	case nil:
		return ""

	case string:
		return quote(val)

	case bool:
		if val {
			return "1"
		}

		return "0"

	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprintf("%d", val)

	case float32:
		return formatG(float64(val))

	case float64:
		return formatG(val)

	default:
		return quote(flow(val))
	}
}

func quote(s string) string { return `"` + s + `"` }

func formatG(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}

	return strconv.FormatFloat(f, 'g', 6, 64)
}

func flow(v any) string {
	b, err := yaml.MarshalWithOptions(v, yaml.Flow(true))
	if err != nil {
		return lang.Str(v)
	}

	return strings.TrimSpace(string(b))
}

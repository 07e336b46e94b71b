// Package format implements the printf-style formatter behind
// console.log/console.error: %s %d %i %f %j %o %O %c %%, plus the
// whitespace-joined, type-coerced fallback used when the first argument is
// not a format string.
package format

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Null represents JavaScript's null, distinct from Go's nil (which stands
// in for undefined) so the formatter can render the two differently.
type Null struct{}

// Log renders args the way console.log does. If the first argument is a
// string containing a '%' specifier, it is treated as a format string and
// subsequent arguments are consumed against it; any arguments left over
// are appended, whitespace-separated. Otherwise every argument is
// whitespace-joined after type coercion.
func Log(args []any) string {
	if len(args) == 0 {
		return ""
	}
	first, isStr := args[0].(string)
	if !isStr || !strings.ContainsRune(first, '%') {
		return joinFallback(args)
	}
	return formatTemplate(first, args[1:])
}

func formatTemplate(template string, rest []any) string {
	var b strings.Builder
	argi := 0
	runes := []rune(template)
	for i := 0; i < len(runes); i++ {
		c := runes[i]
		if c != '%' || i == len(runes)-1 {
			b.WriteRune(c)
			continue
		}
		spec := runes[i+1]
		switch spec {
		case '%':
			b.WriteByte('%')
			i++
		case 's':
			if argi < len(rest) {
				b.WriteString(coerceString(rest[argi]))
				argi++
				i++
			} else {
				b.WriteRune(c)
			}
		case 'd', 'i':
			if argi < len(rest) {
				b.WriteString(formatInt(rest[argi]))
				argi++
				i++
			} else {
				b.WriteRune(c)
			}
		case 'f':
			if argi < len(rest) {
				b.WriteString(formatFloat(toFloat(rest[argi])))
				argi++
				i++
			} else {
				b.WriteRune(c)
			}
		case 'j':
			if argi < len(rest) {
				b.WriteString(formatJSON(rest[argi]))
				argi++
				i++
			} else {
				b.WriteRune(c)
			}
		case 'o', 'O':
			if argi < len(rest) {
				b.WriteString(formatInspect(rest[argi]))
				argi++
				i++
			} else {
				b.WriteRune(c)
			}
		case 'c':
			// CSS directive: consumes the argument (if any), produces nothing.
			if argi < len(rest) {
				argi++
			}
			i++
		default:
			b.WriteRune(c)
		}
	}
	for ; argi < len(rest); argi++ {
		b.WriteByte(' ')
		b.WriteString(coerceString(rest[argi]))
	}
	return b.String()
}

func joinFallback(args []any) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = coerceString(a)
	}
	return strings.Join(parts, " ")
}

func coerceString(v any) string {
	switch x := v.(type) {
	case nil:
		return "undefined"
	case Null:
		return "null"
	case string:
		return x
	case bool:
		if x {
			return "true"
		}
		return "false"
	case float64:
		return formatFloat(x)
	case float32:
		return formatFloat(float64(x))
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprintf("%d", x)
	case time.Time:
		return x.Format(time.RFC3339Nano)
	default:
		return formatInspect(v)
	}
}

func toFloat(v any) float64 {
	switch x := v.(type) {
	case float64:
		return x
	case float32:
		return float64(x)
	case int:
		return float64(x)
	case int64:
		return float64(x)
	case string:
		f, _ := strconv.ParseFloat(x, 64)
		return f
	default:
		return 0
	}
}

func formatInt(v any) string {
	f := toFloat(v)
	if math.IsNaN(f) {
		return "NaN"
	}
	// JS-style truncation toward zero.
	return strconv.FormatInt(int64(f), 10)
}

func formatFloat(f float64) string {
	if math.IsNaN(f) {
		return "NaN"
	}
	if math.IsInf(f, 1) {
		return "Infinity"
	}
	if math.IsInf(f, -1) {
		return "-Infinity"
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func formatJSON(v any) string {
	b, err := json.Marshal(normalizeForJSON(v))
	if err != nil {
		return "undefined"
	}
	return string(b)
}

func formatInspect(v any) string {
	b, err := json.MarshalIndent(normalizeForJSON(v), "", "  ")
	if err != nil {
		return fmt.Sprintf("%+v", v)
	}
	return string(b)
}

func normalizeForJSON(v any) any {
	switch x := v.(type) {
	case Null:
		return nil
	default:
		return x
	}
}

package ingest

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ToText renders a loosely typed cell as text. Nil becomes the empty string and whole
// numbers are rendered without a fractional part.
func ToText(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case int:
		return strconv.Itoa(v)
	case int32:
		return strconv.FormatInt(int64(v), 10)
	case int64:
		return strconv.FormatInt(v, 10)
	case bool:
		return strconv.FormatBool(v)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

// ToNumber parses a loosely typed cell as a number. Anything missing, empty or not
// numeric becomes zero.
func ToNumber(value any) float64 {
	var n float64

	switch v := value.(type) {
	case nil:
		return 0
	case float64:
		n = v
	case float32:
		n = float64(v)
	case int:
		n = float64(v)
	case int32:
		n = float64(v)
	case int64:
		n = float64(v)
	case bool:
		if v {
			n = 1
		}
	default:
		str := strings.TrimSpace(ToText(v))
		if str == "" {
			return 0
		}
		parsed, err := strconv.ParseFloat(str, 64)
		if err != nil {
			return 0
		}
		n = parsed
	}

	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0
	}
	return n
}

// ToInt parses a loosely typed cell as a whole number, truncating any fraction. Values
// outside the int range are treated like unreadable input and yield 0.
func ToInt(value any) int {
	n := ToNumber(value)
	if n >= float64(math.MaxInt) || n < float64(math.MinInt) {
		return 0
	}
	return int(n)
}

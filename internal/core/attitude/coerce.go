package attitude

import (
	"math"
	"strconv"
	"strings"
)

// Coerce converts loosely typed input into a score value. Anything that is
// not a finite number becomes 0; fractional values truncate toward zero.
func Coerce(value any) int {
	switch v := value.(type) {
	case nil:
		return 0
	case int:
		return v
	case int8:
		return int(v)
	case int16:
		return int(v)
	case int32:
		return int(v)
	case int64:
		return clampInt64(v)
	case uint:
		return clampUint64(uint64(v))
	case uint8:
		return int(v)
	case uint16:
		return int(v)
	case uint32:
		return clampUint64(uint64(v))
	case uint64:
		return clampUint64(v)
	case float32:
		return fromFloat(float64(v))
	case float64:
		return fromFloat(v)
	case bool:
		if v {
			return 1
		}
		return 0
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return 0
		}
		parsed, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return 0
		}
		return fromFloat(parsed)
	default:
		return 0
	}
}

func fromFloat(v float64) int {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	truncated := math.Trunc(v)
	if truncated >= math.MaxInt {
		return math.MaxInt
	}
	if truncated <= math.MinInt {
		return math.MinInt
	}
	return int(truncated)
}

func clampInt64(v int64) int {
	if v > math.MaxInt {
		return math.MaxInt
	}
	if v < math.MinInt {
		return math.MinInt
	}
	return int(v)
}

func clampUint64(v uint64) int {
	if v > math.MaxInt {
		return math.MaxInt
	}
	return int(v)
}

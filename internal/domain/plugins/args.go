package plugins

import (
	"encoding/json"
	"math"
	"strconv"
)

func getString(args map[string]interface{}, key string) string {
	v, _ := args[key].(string)
	return v
}

// getInt accepts JSON numbers and numeric strings; CLI arguments arrive as text.
func getInt(args map[string]interface{}, key string, def int) int {
	switch v := args[key].(type) {
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return def
		}
		// Bound before converting; out-of-range float to int is undefined.
		return int(math.Round(math.Max(math.MinInt32, math.Min(math.MaxInt32, v))))
	case int:
		return v
	case int64:
		return int(v)
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return int(n)
		}
	case string:
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getBool(args map[string]interface{}, key string) bool {
	switch v := args[key].(type) {
	case bool:
		return v
	case string:
		b, _ := strconv.ParseBool(v)
		return b
	}
	return false
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

package normalizer

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

var compactCountRe = regexp.MustCompile(`^([\d.]+)\s*([KMB])?$`)

// coerceCount turns whatever a platform returned for a metric into a
// non-negative int64. The second return is false for anything that cannot
// be read as such: a missing metric stays absent, never zero.
func coerceCount(value interface{}) (int64, bool) {
	switch v := value.(type) {
	case nil:
		return 0, false
	case int:
		return nonNegative(int64(v))
	case int64:
		return nonNegative(v)
	case float64:
		return nonNegative(int64(v))
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0, false
		}
		return nonNegative(int64(f))
	case string:
		return parseCompactCount(v)
	default:
		return 0, false
	}
}

func nonNegative(n int64) (int64, bool) {
	if n < 0 {
		return 0, false
	}
	return n, true
}

// parseCompactCount reads "987", "12,345" and abbreviated forms like
// "1.4K" / "2.3M" / "1B" the way platforms render counts for display.
func parseCompactCount(s string) (int64, bool) {
	s = strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), ",", ""))
	if s == "" {
		return 0, false
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return nonNegative(n)
	}

	m := compactCountRe.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	base, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	switch m[2] {
	case "K":
		base *= 1_000
	case "M":
		base *= 1_000_000
	case "B":
		base *= 1_000_000_000
	}
	return nonNegative(int64(base))
}

// coerceTime reads platform dates: unix seconds (Reddit created_utc, TikTok
// createTime) or any textual format dateparse can resolve. Everything is
// normalized to UTC.
func coerceTime(value interface{}) (time.Time, bool) {
	switch v := value.(type) {
	case nil:
		return time.Time{}, false
	case int64:
		return unixTime(float64(v))
	case int:
		return unixTime(float64(v))
	case float64:
		return unixTime(v)
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return time.Time{}, false
		}
		return unixTime(f)
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return time.Time{}, false
		}
		// Numeric strings are unix seconds, not a weird calendar date.
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return unixTime(f)
		}
		t, err := dateparse.ParseAny(s)
		if err != nil {
			return time.Time{}, false
		}
		return t.UTC(), true
	default:
		return time.Time{}, false
	}
}

func unixTime(seconds float64) (time.Time, bool) {
	if seconds <= 0 {
		return time.Time{}, false
	}
	return time.Unix(int64(seconds), 0).UTC(), true
}

func coerceString(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case json.Number:
		return v.String()
	case fmt.Stringer:
		return strings.TrimSpace(v.String())
	default:
		return ""
	}
}

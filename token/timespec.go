package token

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

const day = 24 * time.Hour

var ttlUnitMultipliers = map[string]time.Duration{
	"":        time.Second,
	"s":       time.Second,
	"sec":     time.Second,
	"secs":    time.Second,
	"second":  time.Second,
	"seconds": time.Second,
	"m":       time.Minute,
	"min":     time.Minute,
	"mins":    time.Minute,
	"minute":  time.Minute,
	"minutes": time.Minute,
	"h":       time.Hour,
	"hr":      time.Hour,
	"hrs":     time.Hour,
	"hour":    time.Hour,
	"hours":   time.Hour,
	"d":       day,
	"day":     day,
	"days":    day,
}

// ParseTime accepts an RFC 3339 timestamp or an offset from now such as
// "30s", "5m", "-1h", "2d" or "1h30m".
func ParseTime(input string, now time.Time) (time.Time, error) {
	s := strings.TrimSpace(input)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty time value")
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	d, err := parseOffset(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q: use RFC 3339 (e.g. 2024-07-23T00:20:32Z) or a relative offset (e.g. 5m, -1h, 2d)", input)
	}
	return now.Add(d).UTC(), nil
}

// ParseOffset parses a signed relative offset such as "-1h" or "2d".
func ParseOffset(input string) (time.Duration, error) {
	return parseOffset(strings.TrimSpace(input))
}

func parseOffset(s string) (time.Duration, error) {
	sign := time.Duration(1)
	switch {
	case strings.HasPrefix(s, "-"):
		sign, s = -1, s[1:]
	case strings.HasPrefix(s, "+"):
		s = s[1:]
	}
	if s == "" {
		return 0, fmt.Errorf("missing magnitude")
	}
	if strings.HasSuffix(s, "d") {
		n, err := strconv.ParseInt(s[:len(s)-1], 10, 64)
		if err != nil {
			return 0, err
		}
		if n < 0 || n > int64(math.MaxInt64/day) {
			return 0, fmt.Errorf("day count %d out of range", n)
		}
		return sign * time.Duration(n) * day, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	return sign * d, nil
}

// ParseTTL parses a token lifetime. Besides Go durations it accepts a bare
// number of seconds, "<n>d", "unit:value" and "value (unit)". Zero, -1 and
// keywords like "never" or "infinite" yield infinite == true.
func ParseTTL(raw string) (ttl time.Duration, infinite bool, err error) {
	lower := strings.ToLower(strings.TrimSpace(raw))
	if lower == "" {
		return 0, false, fmt.Errorf("empty ttl")
	}
	if isInfiniteKeyword(lower) {
		return 0, true, nil
	}
	compact := strings.ReplaceAll(lower, " ", "")
	if d, err := parseOffset(compact); err == nil {
		return checkTTL(d, raw)
	}
	for _, sep := range []string{":", "="} {
		if unit, value, ok := strings.Cut(compact, sep); ok && unit != "" && value != "" {
			return ttlFromUnitValue(value, unit, raw)
		}
	}
	if open, end := strings.Index(compact, "("), strings.LastIndex(compact, ")"); open > 0 && end > open {
		return ttlFromUnitValue(compact[:open], compact[open+1:end], raw)
	}
	return ttlFromUnitValue(compact, "", raw)
}

func ttlFromUnitValue(value, unit, raw string) (time.Duration, bool, error) {
	multiplier, ok := ttlUnitMultipliers[strings.Trim(unit, "().")]
	if !ok {
		return 0, false, fmt.Errorf("unsupported ttl unit %q", unit)
	}
	n, err := strconv.ParseFloat(strings.ReplaceAll(value, "_", ""), 64)
	if err != nil {
		return 0, false, fmt.Errorf("unable to parse ttl value %q", raw)
	}
	if n == 0 || n == -1 {
		return 0, true, nil
	}
	f := n * float64(multiplier)
	if math.IsNaN(f) || math.Abs(f) >= math.MaxInt64 {
		return 0, false, fmt.Errorf("ttl %q out of range", raw)
	}
	return checkTTL(time.Duration(f), raw)
}

func checkTTL(d time.Duration, raw string) (time.Duration, bool, error) {
	switch {
	case d == 0:
		return 0, true, nil
	case d < 0:
		return 0, false, fmt.Errorf("ttl must be positive, got %s", raw)
	}
	return d, false, nil
}

func isInfiniteKeyword(value string) bool {
	switch strings.ReplaceAll(value, " ", "") {
	case "0", "-1", "inf", "infinite", "infinity", "forever", "permanent", "never", "none", "unlimited", "noexpiry", "noexp":
		return true
	}
	return false
}

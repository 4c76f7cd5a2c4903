package timeline

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// ParseClock reads a position or offset typed by a user. Accepted forms are
// HH:MM:SS:mmm, HH:MM:SS.mmm, HH:MM:SS, and Go durations such as "1.5s" or
// "-250ms". A leading "-" makes any form negative. The result is truncated to
// whole milliseconds.
func ParseClock(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty time value")
	}

	if !strings.Contains(s, ":") {
		d, err := time.ParseDuration(s)
		if err != nil {
			return 0, fmt.Errorf("invalid time %q: %w", s, err)
		}
		return d.Truncate(time.Millisecond), nil
	}

	negative := false
	body := s
	if strings.HasPrefix(body, "-") {
		negative = true
		body = body[1:]
	}

	parts := strings.Split(body, ":")
	var millis string
	switch len(parts) {
	case 4:
		millis = parts[3]
	case 3:
		if sec, frac, ok := strings.Cut(parts[2], "."); ok {
			if frac == "" || len(frac) > 3 {
				return 0, fmt.Errorf("invalid time %q: bad fraction", s)
			}
			// decimal fraction: ".5" is 500ms
			parts[2] = sec
			millis = frac + strings.Repeat("0", 3-len(frac))
		}
	default:
		return 0, fmt.Errorf(
			"invalid time %q: expected HH:MM:SS:mmm",
			s,
		)
	}

	values := make([]int, 4)
	for i, part := range []string{parts[0], parts[1], parts[2], millis} {
		if part == "" && i == 3 {
			continue
		}
		v, err := strconv.Atoi(part)
		if err != nil || v < 0 {
			return 0, fmt.Errorf("invalid time %q: bad field %q", s, part)
		}
		values[i] = v
	}
	if values[1] >= 60 || values[2] >= 60 || values[3] >= 1000 {
		return 0, fmt.Errorf("invalid time %q: field out of range", s)
	}
	if int64(values[0]) >= math.MaxInt64/int64(time.Hour) {
		return 0, fmt.Errorf("invalid time %q: hours out of range", s)
	}

	d := time.Duration(values[0])*time.Hour +
		time.Duration(values[1])*time.Minute +
		time.Duration(values[2])*time.Second +
		time.Duration(values[3])*time.Millisecond
	if negative {
		d = -d
	}
	return d, nil
}

// FormatClock renders d as HH:MM:SS:mmm, with a leading "-" when negative.
func FormatClock(d time.Duration) string {
	sign := ""
	if d < 0 {
		sign = "-"
		d = -d
	}

	total := d.Milliseconds()
	ms := total % 1000
	secs := total / 1000
	return fmt.Sprintf(
		"%s%02d:%02d:%02d:%03d",
		sign,
		secs/3600,
		(secs/60)%60,
		secs%60,
		ms,
	)
}

// FILE: lixenwraith/flags/duration.go
package flags

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// durationUnits maps every accepted suffix to its length. Longer spellings
// come first so "secs" is not read as "s" plus garbage.
var durationUnits = []struct {
	suffix string
	unit   time.Duration
}{
	{"days", 24 * time.Hour}, {"day", 24 * time.Hour}, {"d", 24 * time.Hour},
	{"hrs", time.Hour}, {"hr", time.Hour}, {"h", time.Hour},
	{"mins", time.Minute}, {"min", time.Minute},
	{"secs", time.Second}, {"sec", time.Second},
	{"ms", time.Millisecond}, {"us", time.Microsecond}, {"ns", time.Nanosecond},
	{"m", time.Minute}, {"s", time.Second},
}

// formatUnits is used by Format, largest first.
var formatUnits = []struct {
	suffix string
	unit   time.Duration
}{
	{"days", 24 * time.Hour},
	{"hrs", time.Hour},
	{"mins", time.Minute},
	{"secs", time.Second},
	{"ms", time.Millisecond},
	{"us", time.Microsecond},
	{"ns", time.Nanosecond},
}

// Duration parses "<number><unit>" such as 500ms, 1sec, 2secs, 1hr or 3days.
// A bare number without unit is rejected.
type Duration struct {
	// AllowNegative lets Validate accept durations below zero.
	AllowNegative bool
}

func (Duration) Type() string { return "duration" }

func (Duration) Parse(text string) (time.Duration, error) {
	return ParseDuration(text)
}

func (Duration) Format(v time.Duration) string { return FormatDuration(v) }

func (d Duration) Validate(v time.Duration) error {
	if v < 0 && !d.AllowNegative {
		return fmt.Errorf("duration %s is negative", FormatDuration(v))
	}
	return nil
}

// ParseDuration converts text to a nanosecond count.
func ParseDuration(text string) (time.Duration, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return 0, fmt.Errorf("empty duration")
	}

	// Split at the first character that cannot belong to the number
	idx := strings.IndexFunc(s, func(r rune) bool {
		return !(r >= '0' && r <= '9') && r != '.' && r != '-' && r != '+'
	})
	if idx <= 0 {
		return 0, fmt.Errorf("duration %q needs a unit (ns, us, ms, secs, mins, hrs, days)", text)
	}
	number, suffix := s[:idx], strings.ToLower(s[idx:])

	var unit time.Duration
	for _, u := range durationUnits {
		if suffix == u.suffix {
			unit = u.unit
			break
		}
	}
	if unit == 0 {
		return 0, fmt.Errorf("unknown duration unit %q in %q", suffix, text)
	}

	// Integers are handled exactly, fractions through float64
	if n, err := strconv.ParseInt(number, 10, 64); err == nil {
		if n > math.MaxInt64/int64(unit) || n < math.MinInt64/int64(unit) {
			return 0, fmt.Errorf("duration %q overflows", text)
		}
		return time.Duration(n) * unit, nil
	}
	f, err := strconv.ParseFloat(number, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid duration number %q", number)
	}
	ns := f * float64(unit)
	// float64(math.MaxInt64) rounds up to 2^63, which is already out of range
	if ns >= 0x1p63 || ns < -0x1p63 {
		return 0, fmt.Errorf("duration %q overflows", text)
	}
	return time.Duration(math.Round(ns)), nil
}

// FormatDuration renders v in the largest unit that divides it exactly.
func FormatDuration(v time.Duration) string {
	if v == 0 {
		return "0ns"
	}
	for _, u := range formatUnits {
		if v%u.unit == 0 {
			return strconv.FormatInt(int64(v/u.unit), 10) + u.suffix
		}
	}
	return strconv.FormatInt(int64(v), 10) + "ns"
}

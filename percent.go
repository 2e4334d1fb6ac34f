// FILE: lixenwraith/flags/percent.go
package flags

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Percent keeps the percentage exactly as entered (e.g. "80%") so existing
// config files keep working. Use ParsePercent to obtain the fraction. The
// [0%, 100%] bound is enforced by the PercentRange rule, not here.
type Percent struct{}

func (Percent) Type() string { return "percent" }

func (Percent) Parse(text string) (string, error) {
	if _, err := ParsePercent(text); err != nil {
		return "", err
	}
	return text, nil
}

func (Percent) Format(v string) string { return v }

func (Percent) Validate(v string) error {
	_, err := ParsePercent(v)
	return err
}

// ParsePercent strips one trailing '%' and returns the value divided by 100.
func ParsePercent(text string) (float64, error) {
	s := strings.TrimSuffix(strings.TrimSpace(text), "%")
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("cannot parse %q as percentage", text)
	}
	return f / 100.0, nil
}

// FormatPercent renders a fraction as a percentage string, 1.0 -> "100%".
func FormatPercent(fraction float64) string {
	return strconv.FormatFloat(fraction*100.0, 'f', -1, 64) + "%"
}

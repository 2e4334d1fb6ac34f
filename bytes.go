// FILE: lixenwraith/flags/bytes.go
package flags

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Bytes is a byte count.
type Bytes uint64

// Binary units; KB is 1024 bytes.
const (
	Byte     Bytes = 1
	Kilobyte       = 1024 * Byte
	Megabyte       = 1024 * Kilobyte
	Gigabyte       = 1024 * Megabyte
	Terabyte       = 1024 * Gigabyte
)

var byteUnits = []struct {
	suffix string
	unit   Bytes
}{
	{"TB", Terabyte},
	{"GB", Gigabyte},
	{"MB", Megabyte},
	{"KB", Kilobyte},
	{"B", Byte},
}

func (b Bytes) String() string { return FormatBytes(b) }

// ByteSize parses "<number><unit>" with unit one of B, KB, MB, GB, TB.
type ByteSize struct{}

func (ByteSize) Type() string { return "bytes" }

func (ByteSize) Parse(text string) (Bytes, error) { return ParseBytes(text) }

func (ByteSize) Format(v Bytes) string { return FormatBytes(v) }

func (ByteSize) Validate(Bytes) error { return nil }

// ParseBytes converts text such as "32MB" or "1.5GB" to a byte count.
func ParseBytes(text string) (Bytes, error) {
	s := strings.ToUpper(strings.TrimSpace(text))
	for _, u := range byteUnits {
		number, found := strings.CutSuffix(s, u.suffix)
		if !found {
			continue
		}
		number = strings.TrimSpace(number)
		if number == "" {
			break
		}
		if n, err := strconv.ParseUint(number, 10, 64); err == nil {
			if n > math.MaxUint64/uint64(u.unit) {
				return 0, fmt.Errorf("byte size %q overflows", text)
			}
			return Bytes(n) * u.unit, nil
		}
		f, err := strconv.ParseFloat(number, 64)
		if err != nil || f < 0 || math.IsNaN(f) {
			return 0, fmt.Errorf("invalid byte size number %q", number)
		}
		total := f * float64(u.unit)
		if total >= math.MaxUint64 {
			return 0, fmt.Errorf("byte size %q overflows", text)
		}
		return Bytes(math.Round(total)), nil
	}
	return 0, fmt.Errorf("byte size %q needs a unit (B, KB, MB, GB, TB)", text)
}

// FormatBytes renders b in the largest unit that divides it exactly.
func FormatBytes(b Bytes) string {
	for _, u := range byteUnits {
		if b >= u.unit && b%u.unit == 0 {
			return strconv.FormatUint(uint64(b/u.unit), 10) + u.suffix
		}
	}
	return strconv.FormatUint(uint64(b), 10) + "B"
}

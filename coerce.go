// FILE: lixenwraith/flags/coerce.go
package flags

import (
	"fmt"
	"strconv"
	"strings"
)

// Coercer converts between the textual form of a flag and its typed value.
// Parse(Format(v)) must equal v for every v accepted by Validate.
type Coercer[T any] interface {
	// Type names the value kind in help output.
	Type() string
	Parse(text string) (T, error)
	Format(v T) string
	// Validate performs type-level checks only. Cross-flag rules belong in
	// semantic validators.
	Validate(v T) error
}

// Bool accepts true/false/1/0/yes/no in any case.
type Bool struct{}

func (Bool) Type() string { return "bool" }

func (Bool) Parse(text string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "true", "1", "yes":
		return true, nil
	case "false", "0", "no":
		return false, nil
	}
	return false, fmt.Errorf("cannot parse %q as bool", text)
}

func (Bool) Format(v bool) string { return strconv.FormatBool(v) }
func (Bool) Validate(bool) error { return nil }

// String passes text through unchanged.
type String struct{}

func (String) Type() string { return "string" }
func (String) Parse(text string) (string, error) { return text, nil }
func (String) Format(v string) string { return v }
func (String) Validate(string) error { return nil }

// Int parses signed integers. Base prefixes (0x, 0o, 0b) are honoured.
type Int struct{}

func (Int) Type() string { return "int" }

func (Int) Parse(text string) (int64, error) {
	i, err := strconv.ParseInt(strings.TrimSpace(text), 0, 64)
	if err != nil {
		return 0, fmt.Errorf("cannot parse %q as int: %w", text, numError(err))
	}
	return i, nil
}

func (Int) Format(v int64) string { return strconv.FormatInt(v, 10) }
func (Int) Validate(int64) error { return nil }

// Uint parses unsigned integers.
type Uint struct{}

func (Uint) Type() string { return "uint" }

func (Uint) Parse(text string) (uint64, error) {
	s := strings.TrimSpace(text)
	if strings.HasPrefix(s, "-") {
		return 0, fmt.Errorf("cannot parse %q as uint: negative value", text)
	}
	u, err := strconv.ParseUint(s, 0, 64)
	if err != nil {
		return 0, fmt.Errorf("cannot parse %q as uint: %w", text, numError(err))
	}
	return u, nil
}

func (Uint) Format(v uint64) string { return strconv.FormatUint(v, 10) }
func (Uint) Validate(uint64) error { return nil }

// Float parses 64-bit floating point numbers.
type Float struct{}

func (Float) Type() string { return "float" }

func (Float) Parse(text string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		return 0, fmt.Errorf("cannot parse %q as float: %w", text, numError(err))
	}
	return f, nil
}

func (Float) Format(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }
func (Float) Validate(float64) error { return nil }

// numError strips the strconv wrapper, whose message repeats the input.
func numError(err error) error {
	if ne, ok := err.(*strconv.NumError); ok {
		return ne.Err
	}
	return err
}

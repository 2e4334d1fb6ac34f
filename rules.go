// FILE: lixenwraith/flags/rules.go
package flags

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// ruleError builds a FlagError attributed to the source of flag's value.
func ruleError(v *Values, flag string, kind error, format string, args ...any) *FlagError {
	src, _ := v.Source(flag)
	return newFlagError(flag, src, kind, format, args...)
}

// PercentRange rejects a percentage flag outside [0%, 100%] with ErrRange.
// The flag may be a Percent string or an Option of one.
func PercentRange(flag string) Validator {
	return Validator{
		Name: "percent_range:" + flag,
		Check: func(v *Values) error {
			text, ok := Lookup[string](v, flag)
			if !ok {
				return nil
			}
			fraction, err := ParsePercent(text)
			if err != nil {
				return ruleError(v, flag, ErrType, "%v", err)
			}
			if fraction < 0 || fraction > 1 {
				return ruleError(v, flag, ErrRange, "%s is outside [0%%, 100%%]", text)
			}
			return nil
		},
	}
}

// PositiveDuration rejects zero or negative durations with ErrRange.
func PositiveDuration(flag string) Validator {
	return Validator{
		Name: "positive_duration:" + flag,
		Check: func(v *Values) error {
			d, ok := Lookup[time.Duration](v, flag)
			if ok && d <= 0 {
				return ruleError(v, flag, ErrRange, "duration %s must be positive", FormatDuration(d))
			}
			return nil
		},
	}
}

// KeysIn requires every key of the map flag to appear in the list flag.
// Violations are ErrConsistency, one per offending key.
func KeysIn[V any](mapFlag, listFlag string) Validator {
	return Validator{
		Name: "keys_in:" + mapFlag + ":" + listFlag,
		Check: func(v *Values) error {
			m, ok := Lookup[*OrderedMap[V]](v, mapFlag)
			if !ok || m.Len() == 0 {
				return nil
			}
			allowed, _ := Lookup[[]string](v, listFlag)

			var errs collector
			for _, key := range m.Keys() {
				if !slices.Contains(allowed, key) {
					errs.add(ruleError(v, mapFlag, ErrConsistency, "%q is not listed in --%s", key, listFlag))
				}
			}
			return errs.err()
		},
	}
}

// Requires demands that when flag is given explicitly, other is set too
// (explicitly or through its default).
func Requires(flag, other string) Validator {
	return Validator{
		Name: "requires:" + flag + ":" + other,
		Check: func(v *Values) error {
			if v.Explicit(flag) && !v.IsSet(other) {
				return ruleError(v, flag, ErrConsistency, "requires --%s", other)
			}
			return nil
		},
	}
}

// Excludes forbids giving both flags explicitly.
func Excludes(flag, other string) Validator {
	return Validator{
		Name: "excludes:" + flag + ":" + other,
		Check: func(v *Values) error {
			if v.Explicit(flag) && v.Explicit(other) {
				return ruleError(v, flag, ErrConsistency, "cannot be combined with --%s", other)
			}
			return nil
		},
	}
}

// OneOf restricts a string flag to a fixed set of choices.
func OneOf(flag string, choices ...string) Validator {
	return Validator{
		Name: "one_of:" + flag,
		Check: func(v *Values) error {
			s, ok := Lookup[string](v, flag)
			if ok && !slices.Contains(choices, s) {
				return ruleError(v, flag, ErrRange, "%q is not one of %s", s, strings.Join(choices, ", "))
			}
			return nil
		},
	}
}

// DependsOn returns a copy of rule that runs after the named validators.
func DependsOn(rule Validator, after ...string) Validator {
	rule.After = append(slices.Clone(rule.After), after...)
	return rule
}

// Check wraps a plain function as a named validator.
func Check(name string, fn func(v *Values) error) Validator {
	return Validator{Name: name, Check: fn}
}

// Errorf builds a rule failure for flag. Use it inside custom validators so
// the report names the flag and its source.
func Errorf(v *Values, flag string, kind error, format string, args ...any) error {
	if kind == nil {
		kind = ErrConsistency
	}
	return ruleError(v, flag, kind, "%s", fmt.Sprintf(format, args...))
}

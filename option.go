// FILE: lixenwraith/flags/option.go
package flags

import "fmt"

// Option holds a value that may be unset. The zero Option is None, which is
// distinct from Some of a zero or empty value.
type Option[T any] struct {
	value T
	set   bool
}

// Some wraps v as a present value.
func Some[T any](v T) Option[T] {
	return Option[T]{value: v, set: true}
}

// None returns the unset Option.
func None[T any]() Option[T] {
	return Option[T]{}
}

// IsSome reports whether a value is present.
func (o Option[T]) IsSome() bool { return o.set }

// IsNone reports whether the value is unset.
func (o Option[T]) IsNone() bool { return !o.set }

// Get returns the value and whether it was set.
func (o Option[T]) Get() (T, bool) { return o.value, o.set }

// GetOr returns the value, or fallback when unset.
func (o Option[T]) GetOr(fallback T) T {
	if !o.set {
		return fallback
	}
	return o.value
}

func (o Option[T]) String() string {
	if !o.set {
		return "none"
	}
	return fmt.Sprint(o.value)
}

// Optional lifts a coercer to Option[T]. Missing input resolves to None.
type Optional[T any] struct {
	Inner Coercer[T]
	// AllowEmpty accepts an explicitly empty value as Some(parse("")).
	AllowEmpty bool
}

// OptionalOf is shorthand for Optional[T]{Inner: inner}.
func OptionalOf[T any](inner Coercer[T]) Optional[T] {
	return Optional[T]{Inner: inner}
}

func (c Optional[T]) Type() string { return c.Inner.Type() }

func (c Optional[T]) Parse(text string) (Option[T], error) {
	if text == "" && !c.AllowEmpty {
		return None[T](), fmt.Errorf("empty value for optional %s", c.Inner.Type())
	}
	v, err := c.Inner.Parse(text)
	if err != nil {
		return None[T](), err
	}
	return Some(v), nil
}

// Format renders None as the empty string.
func (c Optional[T]) Format(v Option[T]) string {
	inner, ok := v.Get()
	if !ok {
		return ""
	}
	return c.Inner.Format(inner)
}

func (c Optional[T]) Validate(v Option[T]) error {
	inner, ok := v.Get()
	if !ok {
		return nil
	}
	return c.Inner.Validate(inner)
}

// absent is implemented by coercers whose type has a natural "unset" state,
// so a missing flag never counts as missing-required.
type absent interface {
	acceptsAbsent()
}

func (Optional[T]) acceptsAbsent() {}

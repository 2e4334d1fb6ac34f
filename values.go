// FILE: lixenwraith/flags/values.go
package flags

// resolved is the coerced value of one flag and where it came from.
type resolved struct {
	value  any
	source Source // "" when no source supplied a value and there is no default
	text   string // raw text the value was coerced from
}

// Values is the coerced configuration of one resolution pass. Semantic
// validators see it before anything is committed to the bound targets.
type Values struct {
	order []string
	items map[string]resolved
}

func newValues(capacity int) *Values {
	return &Values{
		order: make([]string, 0, capacity),
		items: make(map[string]resolved, capacity),
	}
}

func (v *Values) put(name string, r resolved) {
	if _, exists := v.items[name]; !exists {
		v.order = append(v.order, name)
	}
	v.items[name] = r
}

// Names returns the resolved flag names in registration order.
func (v *Values) Names() []string {
	return append([]string(nil), v.order...)
}

// Source returns the source that supplied name's value. Flags left unset
// report "" and false.
func (v *Values) Source(name string) (Source, bool) {
	r, ok := v.items[name]
	if !ok || r.source == "" {
		return "", false
	}
	return r.source, true
}

// Explicit reports whether name was supplied by the command line, the
// environment or the config file rather than by its default.
func (v *Values) Explicit(name string) bool {
	src, ok := v.Source(name)
	return ok && src != SourceDefault
}

// IsSet reports whether name holds a value: supplied explicitly, or through a
// default. Optional flags without input are not set.
func (v *Values) IsSet(name string) bool {
	_, ok := v.Source(name)
	return ok
}

// Text returns the raw text name was coerced from.
func (v *Values) Text(name string) string {
	return v.items[name].text
}

// Raw returns the boxed typed value of name.
func (v *Values) Raw(name string) (any, bool) {
	r, ok := v.items[name]
	return r.value, ok
}

// Lookup returns name's typed value. An Option[T] flag is unwrapped: None
// reports false.
func Lookup[T any](v *Values, name string) (T, bool) {
	var zero T
	r, ok := v.items[name]
	if !ok {
		return zero, false
	}
	switch x := r.value.(type) {
	case T:
		return x, true
	case Option[T]:
		return x.Get()
	}
	return zero, false
}

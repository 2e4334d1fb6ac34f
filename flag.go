// FILE: lixenwraith/flags/flag.go
package flags

// Flag declares one typed option bound to a field of the caller's
// configuration struct.
type Flag[T any] struct {
	Name     string
	Help     string
	Target   *T         // field written when resolution succeeds
	Coercer  Coercer[T] // parse/format/validate for T
	Default  *T         // nil means no default
	Required bool       // must be supplied by some source; excludes Default
}

// Descriptor is the immutable registered metadata of a flag.
type Descriptor struct {
	Name       string
	Help       string
	Type       string // coercer type name, e.g. "duration"
	HasDefault bool
	DefaultRaw string // rendered default, "" when HasDefault is false
	Required   bool
	Boolean    bool // accepts bare --name and --no-name
}

// binding erases T so the registry and resolver can handle any flag
// uniformly. Values cross the boundary boxed in any; only binder[T] unboxes.
type binding interface {
	coerce(text string) (any, error)
	defaultValue() (any, bool)
	zero() any
	commit(v any)
	optional() bool
}

type binder[T any] struct {
	target  *T
	coercer Coercer[T]
	def     *T
}

func (b *binder[T]) coerce(text string) (any, error) {
	v, err := b.coercer.Parse(text)
	if err != nil {
		return nil, err
	}
	if err := b.coercer.Validate(v); err != nil {
		return nil, err
	}
	return v, nil
}

func (b *binder[T]) defaultValue() (any, bool) {
	if b.def == nil {
		return nil, false
	}
	return *b.def, true
}

func (b *binder[T]) zero() any {
	var zero T
	return zero
}

func (b *binder[T]) commit(v any) {
	*b.target = v.(T)
}

func (b *binder[T]) optional() bool {
	_, ok := b.coercer.(absent)
	return ok
}

// boolean is implemented by coercers that accept the bare and negated
// command-line spellings.
type boolean interface {
	isBoolean() bool
}

func (Bool) isBoolean() bool { return true }

func (c Optional[T]) isBoolean() bool {
	b, ok := c.Inner.(boolean)
	return ok && b.isBoolean()
}

func isBoolean(c any) bool {
	b, ok := c.(boolean)
	return ok && b.isBoolean()
}

// Ptr returns a pointer to v, handy for Flag.Default.
func Ptr[T any](v T) *T {
	return &v
}

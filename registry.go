// FILE: lixenwraith/flags/registry.go
package flags

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

// Reserved names are handled by the command-line reader itself.
const (
	HelpFlag    = "help"
	VersionFlag = "version"
)

// entry pairs a descriptor with its typed binding.
type entry struct {
	desc Descriptor
	bind binding
}

// Registry is the ordered set of declared flags and semantic validators.
// Registration is single-goroutine and must finish before the first
// resolution; afterwards the registry is frozen and safe for concurrent reads.
type Registry struct {
	order   []string
	entries map[string]*entry

	validators []*validatorNode
	vindex     map[string]int

	frozen    atomic.Bool
	resolving atomic.Bool

	// mu guards the bound targets. Commit takes the write lock; Read takes
	// the read lock.
	mu sync.RWMutex
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[string]*entry),
		vindex:  make(map[string]int),
	}
}

// Register declares a flag. It fails with ErrDuplicateName if the name is
// taken or reserved, and with ErrInvalidDefault if the default does not pass
// the coercer's Validate or a required flag carries a default.
func Register[T any](r *Registry, f Flag[T]) (Descriptor, error) {
	if r.frozen.Load() {
		return Descriptor{}, fmt.Errorf("%w: cannot register %q", ErrRegistryFrozen, f.Name)
	}
	if !isValidName(f.Name) {
		return Descriptor{}, fmt.Errorf("%w: %q (want lowercase letters, digits and underscores)", ErrInvalidName, f.Name)
	}
	if f.Name == HelpFlag || f.Name == VersionFlag {
		return Descriptor{}, fmt.Errorf("%w: %q is reserved", ErrDuplicateName, f.Name)
	}
	if _, exists := r.entries[f.Name]; exists {
		return Descriptor{}, fmt.Errorf("%w: %q", ErrDuplicateName, f.Name)
	}
	if f.Target == nil {
		return Descriptor{}, fmt.Errorf("flag %q: nil target", f.Name)
	}
	if f.Coercer == nil {
		return Descriptor{}, fmt.Errorf("flag %q: nil coercer", f.Name)
	}

	bind := &binder[T]{target: f.Target, coercer: f.Coercer, def: f.Default}
	if f.Required && bind.optional() {
		return Descriptor{}, fmt.Errorf("%w: flag %q is optional and cannot be required", ErrInvalidDefault, f.Name)
	}

	desc := Descriptor{
		Name:     f.Name,
		Help:     f.Help,
		Type:     f.Coercer.Type(),
		Required: f.Required,
		Boolean:  isBoolean(f.Coercer),
	}

	if f.Default != nil {
		if f.Required {
			return Descriptor{}, fmt.Errorf("%w: flag %q is required and cannot declare a default", ErrInvalidDefault, f.Name)
		}
		if err := f.Coercer.Validate(*f.Default); err != nil {
			return Descriptor{}, fmt.Errorf("%w: flag %q: %w", ErrInvalidDefault, f.Name, err)
		}
		desc.HasDefault = true
		desc.DefaultRaw = f.Coercer.Format(*f.Default)
	}

	r.entries[f.Name] = &entry{
		desc: desc,
		bind: bind,
	}
	r.order = append(r.order, f.Name)
	return desc, nil
}

// MustRegister is like Register but panics on error. Registration errors are
// programming errors in the flag declarations.
func MustRegister[T any](r *Registry, f Flag[T]) Descriptor {
	desc, err := Register(r, f)
	if err != nil {
		panic(fmt.Sprintf("flag registration failed: %v", err))
	}
	return desc
}

// BoolVar registers a bool flag with a default.
func (r *Registry) BoolVar(target *bool, name string, def bool, help string) error {
	_, err := Register(r, Flag[bool]{Name: name, Help: help, Target: target, Coercer: Bool{}, Default: &def})
	return err
}

// StringVar registers a string flag with a default.
func (r *Registry) StringVar(target *string, name string, def string, help string) error {
	_, err := Register(r, Flag[string]{Name: name, Help: help, Target: target, Coercer: String{}, Default: &def})
	return err
}

// DurationVar registers a non-negative duration flag with a default.
func (r *Registry) DurationVar(target *time.Duration, name string, def time.Duration, help string) error {
	_, err := Register(r, Flag[time.Duration]{Name: name, Help: help, Target: target, Coercer: Duration{}, Default: &def})
	return err
}

// Lookup returns the descriptor registered under name. Matching is exact and
// case-sensitive.
func (r *Registry) Lookup(name string) (Descriptor, bool) {
	e, ok := r.entries[name]
	if !ok {
		return Descriptor{}, false
	}
	return e.desc, true
}

// Descriptors returns all descriptors in registration order.
func (r *Registry) Descriptors() []Descriptor {
	out := make([]Descriptor, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.entries[name].desc)
	}
	return out
}

// Len returns the number of registered flags.
func (r *Registry) Len() int { return len(r.order) }

// Frozen reports whether a resolution has started, after which no further
// registration is accepted.
func (r *Registry) Frozen() bool { return r.frozen.Load() }

// Read runs fn while holding the read lock on the bound configuration, so
// fn observes either the state before a commit or after it, never a mix.
func (r *Registry) Read(fn func()) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn()
}

// isValidName checks a flag name: a lowercase letter followed by lowercase
// letters, digits or underscores.
func isValidName(s string) bool {
	if len(s) == 0 {
		return false
	}
	if s[0] < 'a' || s[0] > 'z' {
		return false
	}
	for _, r := range s[1:] {
		isLower := r >= 'a' && r <= 'z'
		isDigit := r >= '0' && r <= '9'
		if !(isLower || isDigit || r == '_') {
			return false
		}
	}
	return true
}

// FILE: lixenwraith/flags/scan.go
package flags

import (
	"fmt"
	"reflect"
	"time"

	"github.com/mitchellh/mapstructure"
)

// plain converts a resolved value into something mapstructure understands:
// Options are unwrapped (None becomes absent) and ordered maps become Go maps.
func plain(v any) (any, bool) {
	switch x := v.(type) {
	case nil:
		return nil, false
	case interface{ plainValue() (any, bool) }:
		return x.plainValue()
	default:
		return v, true
	}
}

func (o Option[T]) plainValue() (any, bool) {
	v, ok := o.Get()
	if !ok {
		return nil, false
	}
	return plain(v)
}

func (m *OrderedMap[V]) plainValue() (any, bool) {
	if m == nil {
		return nil, false
	}
	return m.Map(), true
}

// Map returns the resolved configuration as name -> plain value. Unset
// optional flags are omitted.
func (v *Values) Map() map[string]any {
	out := make(map[string]any, len(v.order))
	for _, name := range v.order {
		if val, ok := plain(v.items[name].value); ok {
			out[name] = val
		}
	}
	return out
}

// Scan decodes the resolved configuration into target, a non-nil pointer to
// a struct (fields matched by the "flag" tag) or a map. This is a read-only
// view for consumers that did not bind the fields themselves.
func (r *Result) Scan(target any) error {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return fmt.Errorf("target of Scan must be a non-nil pointer, got %T", target)
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		TagName:          "flag",
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			stringToDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	})
	if err != nil {
		return fmt.Errorf("failed to create mapstructure decoder: %w", err)
	}

	if err := decoder.Decode(r.Values.Map()); err != nil {
		return fmt.Errorf("failed to scan configuration into %T: %w", target, err)
	}
	return nil
}

// stringToDurationHookFunc decodes text in this package's duration syntax
// ("2secs") so string-typed flags can land in time.Duration fields.
func stringToDurationHookFunc() mapstructure.DecodeHookFunc {
	durationType := reflect.TypeOf(time.Duration(0))
	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if f.Kind() != reflect.String || t != durationType {
			return data, nil
		}
		return ParseDuration(reflect.ValueOf(data).String())
	}
}

// FILE: lixenwraith/flags/env.go
package flags

import (
	"os"
	"strings"
)

// LookupFunc resolves an environment variable. os.LookupEnv is the default.
type LookupFunc func(key string) (string, bool)

// EnvName returns the variable consulted for a flag: prefix followed by the
// upper-cased flag name, underscores preserved ("MESOS_" + "work_dir" ->
// "MESOS_WORK_DIR").
func EnvName(prefix, name string) string {
	return prefix + strings.ToUpper(name)
}

// ReadEnv checks one environment variable per registered flag. Unset
// variables are simply skipped.
func ReadEnv(reg *Registry, prefix string, lookup LookupFunc) map[string]RawValue {
	if lookup == nil {
		lookup = os.LookupEnv
	}

	found := make(map[string]RawValue)
	for _, name := range reg.order {
		if value, exists := lookup(EnvName(prefix, name)); exists {
			found[name] = RawValue{Source: SourceEnv, Text: value}
		}
	}
	return found
}

// DiscoverEnv returns flag name -> variable name for every variable that is
// currently set.
func DiscoverEnv(reg *Registry, prefix string, lookup LookupFunc) map[string]string {
	if lookup == nil {
		lookup = os.LookupEnv
	}

	discovered := make(map[string]string)
	for _, name := range reg.order {
		envVar := EnvName(prefix, name)
		if _, exists := lookup(envVar); exists {
			discovered[name] = envVar
		}
	}
	return discovered
}

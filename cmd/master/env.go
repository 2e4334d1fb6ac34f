// FILE: lixenwraith/flags/cmd/master/env.go
package main

import (
	"fmt"

	"github.com/joho/godotenv"

	"github.com/lixenwraith/flags"
	"github.com/lixenwraith/flags/master"
)

// EnvFileVar names a dotenv file whose MESOS_* entries fill in for
// variables missing from the process environment.
const EnvFileVar = master.EnvPrefix + "ENV_FILE"

// envLookup layers the dotenv file named by EnvFileVar under base.
// Without the variable base is returned unchanged.
func envLookup(base flags.LookupFunc) (flags.LookupFunc, error) {
	path, ok := base(EnvFileVar)
	if !ok || path == "" {
		return base, nil
	}
	file, err := godotenv.Read(flags.NormalizePath(path))
	if err != nil {
		return nil, fmt.Errorf("reading %s %q: %w", EnvFileVar, path, err)
	}
	return func(key string) (string, bool) {
		if v, ok := base(key); ok {
			return v, true
		}
		v, ok := file[key]
		return v, ok
	}, nil
}

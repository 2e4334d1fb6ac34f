// FILE: lixenwraith/flags/timing.go
package flags

import "time"

// Core timing constants for file watching.
const (
	MinPollInterval     = 100 * time.Millisecond // Hard floor for file stat polling
	DefaultDebounce     = 500 * time.Millisecond // File change coalescence period
	DefaultPollInterval = time.Second            // Standard file monitoring frequency
)

// watchBuffer is the capacity of a watch channel. Events beyond it are
// dropped until the consumer catches up.
const watchBuffer = 10

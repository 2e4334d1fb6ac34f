// FILE: lixenwraith/flags/master/constants.go
package master

import (
	"time"

	"github.com/lixenwraith/flags"
)

// Limits and timeouts of the cluster master. These are fixed at build time
// and are not exposed as flags.
const (
	MaxOffersPerFramework            = 50
	MinCPUs                          = 0.1
	MinMem                           = 32 * flags.Megabyte
	SlavePingTimeout                 = 15 * time.Second
	MaxSlavePingTimeouts             = 5
	RecoverySlaveRemovalPercentLimit = 1.0 // 100%
	MaxDeactivatedSlaves             = 100000
	MaxCompletedFrameworks           = 50
	MaxCompletedTasksPerFramework    = 1000
	WhitelistWatchInterval           = 5 * time.Second
	TaskLimit                        = 100
	MasterInfoLabel                  = "info"
)

// Defaults of the master flag set that are not derived from the limits above.
const (
	DefaultWorkDir            = "/tmp/mesos"
	DefaultRegistry           = "in_memory"
	DefaultWebUIDir           = "/usr/local/share/mesos/webui"
	DefaultSorter             = "drf"
	DefaultAllocationInterval = time.Second

	// WhitelistAll disables whitelisting: offers go to every slave.
	WhitelistAll = "*"
)

// Registries and sorters accepted by --registry, --user_sorter and
// --framework_sorter.
var (
	Registries = []string{"in_memory"}
	Sorters    = []string{"drf", "dominant_resource_fairness"}
)

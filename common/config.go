// Pool (partition) classification configuration.
//
// A job's compute time is attributed to the open-use pools, to the privately owned ("condo")
// pools, or split between the two when the job ran in the donated (preemptible) pool.  Which
// partitions count as open-use, and which partition is the donated one, is site configuration:
// built-in defaults below, overridable in ~/.process-job-stats and on the command line.

package common

import (
	"strings"
)

// The public queues on the cluster as of this writing.
var defaultOpenUsePartitions = []string{
	"compute",
	"compute_intel",
	"computelong",
	"computelong_intel",
	"gpu",
	"gpulong",
	"interactive",
	"interactivegpu",
	"memory",
	"memorylong",
}

const defaultDonatedPartition = "preempt"

// PoolConfig is immutable after construction and safe for concurrent readers.
type PoolConfig struct {
	openUse map[string]bool
	donated string
}

// Create a PoolConfig from comma-separated partition lists.  Empty arguments fall back to the
// ini-file defaults and then to the built-in defaults.

func NewPoolConfig(openUse, donated string) *PoolConfig {
	ApplyDefault(&openUse, PartitionsOpenUse)
	ApplyDefault(&donated, PartitionsDonated)
	var names []string
	if openUse != "" {
		names = strings.Split(openUse, ",")
	} else {
		names = defaultOpenUsePartitions
	}
	if donated == "" {
		donated = defaultDonatedPartition
	}
	m := make(map[string]bool, len(names))
	for _, n := range names {
		if n = strings.TrimSpace(n); n != "" {
			m[n] = true
		}
	}
	return &PoolConfig{openUse: m, donated: donated}
}

func (c *PoolConfig) IsOpenUse(partition string) bool {
	return c.openUse[partition]
}

func (c *PoolConfig) Donated() string {
	return c.donated
}

// Attribution: deciding which pool category a job's compute time belongs to, and with what
// weight.
//
// Jobs that ran in a regular partition are attributed wholly to that partition's category, open
// use or condo.  Jobs that ran in the donated (preemptible) partition borrowed hardware from
// both worlds, so their time is split: the open-use share is the fraction of the job's nodes
// that currently sit in an open-use pool, per the node-pool snapshot taken at processing time.
// Nodes the snapshot does not know about are left out of the denominator entirely.  When no node
// can be resolved there is nothing to split over, and the job is marked excluded with zero
// weights rather than dropped, so the record count stays honest.

package attrib

import (
	"github.com/uoracs/process-job-stats/common"
	"github.com/uoracs/process-job-stats/db"
)

type Category string

const (
	CategoryOpenUse Category = "open_use"
	CategoryCondo   Category = "condo"

	// Older reports used "donated" for what is now the condo share of a preempt job.  The name
	// survives only so inputs mentioning it can be recognized; it is never emitted.
	CategoryDonated Category = "donated"
)

// The attribution result for one job.  OpenUse and Condo always sum to 1, except when Excluded
// is set, in which case both are 0.
type Weights struct {
	OpenUse  float64
	Condo    float64
	Excluded bool
}

// Attribute computes the pool weights for a job that ran in `partition` on `nodes`.
func Attribute(
	partition string,
	nodes []string,
	cfg *common.PoolConfig,
	pools *db.NodePoolIndex,
) Weights {
	if partition != cfg.Donated() {
		if cfg.IsOpenUse(partition) {
			return Weights{OpenUse: 1}
		}
		return Weights{Condo: 1}
	}

	denominator := 0
	openUse := 0
	for _, n := range nodes {
		ps, found := pools.Pools(n)
		if !found {
			continue
		}
		denominator++
		for _, p := range ps {
			if cfg.IsOpenUse(p) {
				openUse++
				break
			}
		}
	}
	if denominator == 0 {
		return Weights{Excluded: true}
	}
	w := float64(openUse) / float64(denominator)
	return Weights{OpenUse: w, Condo: 1 - w}
}

// The enricher turns one parsed job record into the attributed output rows.
//
// A job in a regular partition yields one row with weight 1.  A job in the donated partition
// always yields two rows, one per category, even when one of the weights is zero: downstream
// aggregation groups by category and must see both sides of the split.  The hour metrics on a
// row are the job totals; a row's share of them is totals times its weight, and the
// ready-to-bill service_units column has the weight already applied.

package attrib

import (
	"strings"

	"github.com/uoracs/process-job-stats/common"
	"github.com/uoracs/process-job-stats/db"
	"github.com/uoracs/process-job-stats/slurm"
)

type Row struct {
	JobID         string   `json:"job_id"`
	JobName       string   `json:"job_name"`
	User          string   `json:"user"`
	Account       string   `json:"account"`
	Partition     string   `json:"partition"`
	Elapsed       string   `json:"elapsed"`
	Nodes         int      `json:"nodes"`
	Cpus          int      `json:"cpus"`
	Tres          string   `json:"tres"`
	SubmitTime    string   `json:"submit_time"`
	StartTime     string   `json:"start_time"`
	EndTime       string   `json:"end_time"`
	NodeList      string   `json:"nodelist"`
	Owner         string   `json:"owner"`
	StorageGB     int      `json:"storage_gb"`
	Category      Category `json:"category"`
	Weight        float64  `json:"weight"`
	Excluded      bool     `json:"excluded"`
	Gpus          int      `json:"gpus"`
	CpuHours      float64  `json:"cpu_hours"`
	GpuHours      float64  `json:"gpu_hours"`
	WaitTimeHours float64  `json:"wait_time_hours"`
	RunTimeHours  float64  `json:"run_time_hours"`
	ServiceUnits  float64  `json:"service_units"`
	Date          string   `json:"date"`
}

// EnrichJob attributes and annotates one job record.  The only error case is an undecodable
// TRES list; that is corrupt scheduler output and poisons the batch like any other parse error.
func EnrichJob(
	r *db.JobRecord,
	cfg *common.PoolConfig,
	pools *db.NodePoolIndex,
	owners db.AccountOwners,
	storage db.AccountStorage,
) ([]*Row, error) {
	gpus, err := slurm.GpusFromTres(r.Tres)
	if err != nil {
		return nil, err
	}

	cpuHours := ComputeHours(r.Cpus, r.ElapsedSec)
	gpuHours := ComputeHours(gpus, r.ElapsedSec)
	base := Row{
		JobID:         r.JobID,
		JobName:       r.JobName,
		User:          r.User,
		Account:       r.Account,
		Partition:     r.Partition,
		Elapsed:       r.Elapsed,
		Nodes:         r.NodeCount,
		Cpus:          r.Cpus,
		Tres:          r.Tres,
		SubmitTime:    r.Submit.Format(db.TimeLayout),
		StartTime:     r.Start.Format(db.TimeLayout),
		EndTime:       r.End.Format(db.TimeLayout),
		NodeList:      strings.Join(r.NodeList, ","),
		Owner:         owners.Owner(r.Account),
		StorageGB:     storage.GB(r.Account),
		Gpus:          gpus,
		CpuHours:      cpuHours,
		GpuHours:      gpuHours,
		WaitTimeHours: WaitTimeHours(r.Submit, r.Start),
		RunTimeHours:  RunTimeHours(r.ElapsedSec),
		Date:          JobDate(r.End),
	}

	weights := Attribute(r.Partition, r.NodeList, cfg, pools)

	emit := func(category Category, weight float64) *Row {
		row := base
		row.Category = category
		row.Weight = weight
		row.Excluded = weights.Excluded
		row.ServiceUnits = weight * ServiceUnits(cpuHours, gpuHours)
		return &row
	}

	if r.Partition != cfg.Donated() {
		if cfg.IsOpenUse(r.Partition) {
			return []*Row{emit(CategoryOpenUse, weights.OpenUse)}, nil
		}
		return []*Row{emit(CategoryCondo, weights.Condo)}, nil
	}
	return []*Row{
		emit(CategoryOpenUse, weights.OpenUse),
		emit(CategoryCondo, weights.Condo),
	}, nil
}

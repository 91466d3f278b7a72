package jobs

import (
	"io"
	"strconv"
	"strings"

	"github.com/uoracs/process-job-stats/attrib"
	"github.com/uoracs/process-job-stats/command"
)

func (jc *JobsCommand) printRows(out io.Writer, rows []*attrib.Row) {
	fields, attrs := command.ParseFormatSpec(jobsDefaultFields, jc.Fmt, jobsFormatters, jobsAliases)
	opts := command.StandardFormatOptions(attrs, command.DefaultCsv)
	command.FormatData(out, fields, jobsFormatters, opts, rows, false)
}

const jobsHelp = `
The jobs verb prints one attributed row per job and category with
per-row weights and derived billing metrics.
`

const jobsDefaultFields = "job_id,job_name,user,account,partition,elapsed,nodes,cpus,tres," +
	"submit_time,start_time,end_time,nodelist,owner,storage_gb,category,weight,excluded," +
	"gpus,cpu_hours,gpu_hours,wait_time_hours,run_time_hours,service_units,date"

// MT: Constant after initialization; immutable
var jobsAliases = map[string][]string{
	"default": strings.Split(jobsDefaultFields, ","),
	"billing": {"job_id", "account", "owner", "category", "weight", "service_units", "date"},
}

func fmtHours(f float64) string {
	return strconv.FormatFloat(f, 'f', 5, 64)
}

// MT: Constant after initialization; immutable
var jobsFormatters = map[string]command.Formatter[*attrib.Row, bool]{
	"job_id": {
		Fmt:  func(r *attrib.Row, _ bool) string { return r.JobID },
		Help: "The Slurm job id (step suffixes included)",
	},
	"job_name": {
		Fmt:  func(r *attrib.Row, _ bool) string { return r.JobName },
		Help: "The job name",
	},
	"user": {
		Fmt:  func(r *attrib.Row, _ bool) string { return r.User },
		Help: "The submitting user",
	},
	"account": {
		Fmt:  func(r *attrib.Row, _ bool) string { return r.Account },
		Help: "The Slurm account the job ran under",
	},
	"partition": {
		Fmt:  func(r *attrib.Row, _ bool) string { return r.Partition },
		Help: "The partition the job ran in",
	},
	"elapsed": {
		Fmt:  func(r *attrib.Row, _ bool) string { return r.Elapsed },
		Help: "Wall time, as reported by sacct",
	},
	"nodes": {
		Fmt:  func(r *attrib.Row, _ bool) string { return strconv.Itoa(r.Nodes) },
		Help: "Number of allocated nodes",
	},
	"cpus": {
		Fmt:  func(r *attrib.Row, _ bool) string { return strconv.Itoa(r.Cpus) },
		Help: "Number of allocated cpus",
	},
	"tres": {
		Fmt:  func(r *attrib.Row, _ bool) string { return r.Tres },
		Help: "The raw allocated-TRES list",
	},
	"submit_time": {
		Fmt:  func(r *attrib.Row, _ bool) string { return r.SubmitTime },
		Help: "Submission timestamp, local time",
	},
	"start_time": {
		Fmt:  func(r *attrib.Row, _ bool) string { return r.StartTime },
		Help: "Start timestamp, local time",
	},
	"end_time": {
		Fmt:  func(r *attrib.Row, _ bool) string { return r.EndTime },
		Help: "End timestamp, local time",
	},
	"nodelist": {
		Fmt:  func(r *attrib.Row, _ bool) string { return r.NodeList },
		Help: "Expanded node names, comma-separated",
	},
	"owner": {
		Fmt:  func(r *attrib.Row, _ bool) string { return r.Owner },
		Help: "The account owner (PI), if known",
	},
	"storage_gb": {
		Fmt:  func(r *attrib.Row, _ bool) string { return strconv.Itoa(r.StorageGB) },
		Help: "The account's storage usage in GB, if known",
	},
	"category": {
		Fmt:  func(r *attrib.Row, _ bool) string { return string(r.Category) },
		Help: "Attribution category, open_use or condo",
	},
	"weight": {
		Fmt:  func(r *attrib.Row, _ bool) string { return fmtHours(r.Weight) },
		Help: "This row's share of the job's compute time",
	},
	"excluded": {
		Fmt:  func(r *attrib.Row, _ bool) string { return strconv.FormatBool(r.Excluded) },
		Help: "True when no node could be resolved and the weights are zero",
	},
	"gpus": {
		Fmt:  func(r *attrib.Row, _ bool) string { return strconv.Itoa(r.Gpus) },
		Help: "Number of allocated gpus",
	},
	"cpu_hours": {
		Fmt:  func(r *attrib.Row, _ bool) string { return fmtHours(r.CpuHours) },
		Help: "Total cpu-hours for the job (multiply by weight for this row's share)",
	},
	"gpu_hours": {
		Fmt:  func(r *attrib.Row, _ bool) string { return fmtHours(r.GpuHours) },
		Help: "Total gpu-hours for the job (multiply by weight for this row's share)",
	},
	"wait_time_hours": {
		Fmt:  func(r *attrib.Row, _ bool) string { return fmtHours(r.WaitTimeHours) },
		Help: "Hours between submission and start",
	},
	"run_time_hours": {
		Fmt:  func(r *attrib.Row, _ bool) string { return fmtHours(r.RunTimeHours) },
		Help: "Wall time in hours",
	},
	"service_units": {
		Fmt:  func(r *attrib.Row, _ bool) string { return fmtHours(r.ServiceUnits) },
		Help: "Weighted service units for this row, ready to aggregate",
	},
	"date": {
		Fmt:  func(r *attrib.Row, _ bool) string { return r.Date },
		Help: "The local calendar day the job ended",
	},
}

// The jobs verb: gather completed-job records and the node-pool snapshot, attribute each job's
// compute time to the open-use and condo pools, derive the billing metrics, and emit the
// enriched rows.

package jobs

import (
	"errors"
	"flag"
	"fmt"

	"github.com/uoracs/process-job-stats/command"
)

type JobsCommand struct {
	command.VerboseArgs
	command.SourceArgs
	command.PolicyArgs
	command.FormatArgs

	KafkaBroker string
	Cluster     string
	SqlTarget   string
}

func New() *JobsCommand {
	return new(JobsCommand)
}

func (jc *JobsCommand) Summary() string {
	return "Attribute and enrich completed-job records"
}

func (jc *JobsCommand) Add(fs *flag.FlagSet) {
	jc.VerboseArgs.Add(fs)
	jc.SourceArgs.Add(fs)
	jc.PolicyArgs.Add(fs)
	jc.FormatArgs.Add(fs)
	fs.StringVar(&jc.KafkaBroker, "kafka", "",
		"Also post the enriched rows to the Kafka broker at `host:port`.  Requires -cluster.")
	fs.StringVar(&jc.Cluster, "cluster", "",
		"The cluster `name`, used to form the Kafka topic.  For use with -kafka.")
	fs.StringVar(&jc.SqlTarget, "sql", "",
		"Also export the enriched rows to the warehouse at `uri`")
}

func (jc *JobsCommand) Validate() error {
	var e1 error
	if (jc.KafkaBroker == "") != (jc.Cluster == "") {
		e1 = fmt.Errorf("-kafka and -cluster must be used together")
	}
	return errors.Join(
		jc.VerboseArgs.Validate(),
		jc.SourceArgs.Validate(),
		jc.PolicyArgs.Validate(),
		jc.FormatArgs.Validate(),
		e1,
	)
}

func (jc *JobsCommand) MaybeFormatHelp() *command.FormatHelp {
	return command.StandardFormatHelp(
		jc.Fmt, jobsHelp, jobsFormatters, jobsAliases, jobsDefaultFields)
}

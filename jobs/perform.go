package jobs

import (
	"io"
	"os"
	"strings"

	"github.com/uoracs/process-job-stats/attrib"
	"github.com/uoracs/process-job-stats/command"
	. "github.com/uoracs/process-job-stats/common"
	"github.com/uoracs/process-job-stats/db"
	"github.com/uoracs/process-job-stats/process"
)

// Terminated jobs only; a job that is still running has no final elapsed time to account.
var sacctStates = []string{
	"CANCELLED",
	"COMPLETED",
	"DEADLINE",
	"FAILED",
	"OUT_OF_MEMORY",
	"TIMEOUT",
}

// The field order here must agree with the positional parser in the db package.
var sacctFields = []string{
	"JobID",
	"JobName",
	"User",
	"Account",
	"Partition",
	"Elapsed",
	"NNodes",
	"NCPUS",
	"AllocTRES",
	"Submit",
	"Start",
	"End",
	"NodeList",
}

func (jc *JobsCommand) Perform(stdout, stderr io.Writer) error {
	if h := jc.MaybeFormatHelp(); h != nil {
		command.PrintFormatHelp(stdout, h)
		return nil
	}
	if jc.SqlTarget != "" {
		if err := db.OpenWarehouse(jc.SqlTarget); err != nil {
			return err
		}
	}

	sacctData, err := jc.sacctData()
	if err != nil {
		return err
	}
	sinfoData, err := jc.sinfoData()
	if err != nil {
		return err
	}

	pools, softErrors, err := db.ReadNodePools(strings.NewReader(sinfoData), jc.Pools().Donated())
	if err != nil {
		return err
	}
	if softErrors > 0 {
		Log.Warningf("%d malformed lines in the node-pool snapshot", softErrors)
	}
	if jc.Verbose {
		Log.Infof("%d nodes in the pool snapshot", pools.Size())
	}

	var owners db.AccountOwners
	if jc.OwnersFile != "" {
		input, err := os.Open(jc.OwnersFile)
		if err != nil {
			return err
		}
		owners, softErrors, err = db.ReadAccountOwners(input)
		input.Close()
		if err != nil {
			return err
		}
		if softErrors > 0 {
			Log.Warningf("%d malformed lines in %s", softErrors, jc.OwnersFile)
		}
	}
	var storage db.AccountStorage
	if jc.StorageFile != "" {
		input, err := os.Open(jc.StorageFile)
		if err != nil {
			return err
		}
		storage, softErrors, err = db.ReadAccountStorage(input)
		input.Close()
		if err != nil {
			return err
		}
		if softErrors > 0 {
			Log.Warningf("%d malformed lines in %s", softErrors, jc.StorageFile)
		}
	}

	records, skipped, err := db.ReadJobs(strings.NewReader(sacctData))
	if err != nil {
		return err
	}
	if jc.Verbose {
		Log.Infof("%d job records, %d skipped", len(records), skipped)
	}

	rows := make([]*attrib.Row, 0, len(records))
	for _, r := range records {
		rs, err := attrib.EnrichJob(r, jc.Pools(), pools, owners, storage)
		if err != nil {
			return err
		}
		rows = append(rows, rs...)
	}

	if jc.KafkaBroker != "" {
		if err := postRowsToKafka(jc.KafkaBroker, jc.Cluster, rows, jc.Verbose); err != nil {
			return err
		}
	}

	jc.printRows(stdout, rows)
	return nil
}

func (jc *JobsCommand) sacctData() (string, error) {
	if jc.SacctFile != "" {
		bytes, err := os.ReadFile(jc.SacctFile)
		if err != nil {
			return "", err
		}
		return string(bytes), nil
	}
	sacct := "sacct"
	ApplyDefault(&sacct, CommandsSacct)
	stdout, errs, err := process.RunSubprocess(sacct, []string{
		"-aP",
		"--noheader",
		"-s", strings.Join(sacctStates, ","),
		"-o", strings.Join(sacctFields, ","),
		"-S", jc.From,
		"-E", jc.To,
	})
	if errs != "" {
		Log.Warningf("sacct: %s", errs)
	}
	return stdout, err
}

func (jc *JobsCommand) sinfoData() (string, error) {
	if jc.SinfoFile != "" {
		bytes, err := os.ReadFile(jc.SinfoFile)
		if err != nil {
			return "", err
		}
		return string(bytes), nil
	}
	sinfo := "sinfo"
	ApplyDefault(&sinfo, CommandsSinfo)
	stdout, errs, err := process.RunSubprocess(sinfo, []string{"-ahN", "-o", "%n,%P"})
	if errs != "" {
		Log.Warningf("sinfo: %s", errs)
	}
	return stdout, err
}

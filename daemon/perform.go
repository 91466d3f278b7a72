package daemon

import (
	"context"
	"io"
	"net/http"
	"os"
	"strings"
	"syscall"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humago"

	"github.com/uoracs/process-job-stats/attrib"
	. "github.com/uoracs/process-job-stats/common"
	"github.com/uoracs/process-job-stats/db"
	"github.com/uoracs/process-job-stats/httpsrv"
	"github.com/uoracs/process-job-stats/process"
	"github.com/uoracs/process-job-stats/status"
)

const logTag = "process-job-stats"

// MT: Immutable after loadSnapshots, shared read-only across request goroutines
type daemonState struct {
	cmd     *DaemonCommand
	pools   *db.NodePoolIndex
	owners  db.AccountOwners
	storage db.AccountStorage
}

func (dc *DaemonCommand) Perform(stdout, stderr io.Writer) error {
	if !dc.NoSyslog {
		status.Start(logTag)
	}
	if dc.Verbose {
		Log.LowerLevelTo(status.LogLevelInfo)
	}

	state := &daemonState{cmd: dc}
	if err := state.loadSnapshots(); err != nil {
		return err
	}

	mux := http.NewServeMux()
	api := humago.New(mux, huma.DefaultConfig("process-job-stats", "0.2.0"))
	state.register(api)

	var srv *httpsrv.Server
	failed := func(err error) {
		status.Fatalf("%s", err.Error())
	}
	if dc.ServerKey != "" {
		srv = httpsrv.NewTLS(dc.Verbose, dc.Port, mux, dc.ServerKey, dc.ServerCert, failed)
	} else {
		srv = httpsrv.New(dc.Verbose, dc.Port, mux, failed)
	}
	go srv.Start()
	process.WaitForSignal(syscall.SIGHUP, syscall.SIGTERM, syscall.SIGINT)
	srv.Stop()
	return nil
}

func (ds *daemonState) register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "attribute-jobs",
		Method:      http.MethodPost,
		Path:        "/jobs",
		Summary:     "Attribute and enrich raw sacct records",
	}, ds.attributeJobs)
	huma.Register(api, huma.Operation{
		OperationID: "list-nodes",
		Method:      http.MethodGet,
		Path:        "/nodes",
		Summary:     "List the node-pool snapshot",
	}, ds.listNodes)
}

func (ds *daemonState) loadSnapshots() error {
	dc := ds.cmd

	var sinfoData string
	if dc.SinfoFile != "" {
		bytes, err := os.ReadFile(dc.SinfoFile)
		if err != nil {
			return err
		}
		sinfoData = string(bytes)
	} else {
		sinfo := "sinfo"
		ApplyDefault(&sinfo, CommandsSinfo)
		stdout, errs, err := process.RunSubprocess(sinfo, []string{"-ahN", "-o", "%n,%P"})
		if errs != "" {
			Log.Warningf("sinfo: %s", errs)
		}
		if err != nil {
			return err
		}
		sinfoData = stdout
	}
	pools, softErrors, err := db.ReadNodePools(strings.NewReader(sinfoData), dc.Pools().Donated())
	if err != nil {
		return err
	}
	if softErrors > 0 {
		Log.Warningf("%d malformed lines in the node-pool snapshot", softErrors)
	}
	ds.pools = pools
	Log.Infof("%d nodes in the pool snapshot", pools.Size())

	if dc.OwnersFile != "" {
		input, err := os.Open(dc.OwnersFile)
		if err != nil {
			return err
		}
		ds.owners, softErrors, err = db.ReadAccountOwners(input)
		input.Close()
		if err != nil {
			return err
		}
		if softErrors > 0 {
			Log.Warningf("%d malformed lines in %s", softErrors, dc.OwnersFile)
		}
	}
	if dc.StorageFile != "" {
		input, err := os.Open(dc.StorageFile)
		if err != nil {
			return err
		}
		ds.storage, softErrors, err = db.ReadAccountStorage(input)
		input.Close()
		if err != nil {
			return err
		}
		if softErrors > 0 {
			Log.Warningf("%d malformed lines in %s", softErrors, dc.StorageFile)
		}
	}
	return nil
}

type attributeJobsInput struct {
	RawBody []byte `contentType:"text/plain" doc:"Raw pipe-delimited sacct output"`
}

type attributeJobsOutput struct {
	Body struct {
		Rows    []*attrib.Row `json:"rows"`
		Skipped int           `json:"skipped"`
	}
}

func (ds *daemonState) attributeJobs(
	ctx context.Context,
	input *attributeJobsInput,
) (*attributeJobsOutput, error) {
	records, skipped, err := db.ReadJobs(strings.NewReader(string(input.RawBody)))
	if err != nil {
		return nil, huma.Error400BadRequest("Bad sacct input", err)
	}
	rows := make([]*attrib.Row, 0, len(records))
	for _, r := range records {
		rs, err := attrib.EnrichJob(r, ds.cmd.Pools(), ds.pools, ds.owners, ds.storage)
		if err != nil {
			return nil, huma.Error400BadRequest("Bad sacct input", err)
		}
		rows = append(rows, rs...)
	}
	Log.Infof("Attributed %d records, %d skipped", len(records), skipped)
	output := new(attributeJobsOutput)
	output.Body.Rows = rows
	output.Body.Skipped = skipped
	return output, nil
}

type nodeEntry struct {
	Node    string   `json:"node"`
	Pools   []string `json:"pools"`
	OpenUse bool     `json:"open_use"`
}

type listNodesOutput struct {
	Body struct {
		Nodes []nodeEntry `json:"nodes"`
	}
}

func (ds *daemonState) listNodes(
	ctx context.Context,
	input *struct{},
) (*listNodesOutput, error) {
	entries := make([]nodeEntry, 0, ds.pools.Size())
	for _, n := range ds.pools.Nodes() {
		pools, _ := ds.pools.Pools(n)
		openUse := false
		for _, p := range pools {
			if ds.cmd.Pools().IsOpenUse(p) {
				openUse = true
				break
			}
		}
		entries = append(entries, nodeEntry{Node: n, Pools: pools, OpenUse: openUse})
	}
	output := new(listNodesOutput)
	output.Body.Nodes = entries
	return output, nil
}

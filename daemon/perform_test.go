package daemon

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"

	"github.com/uoracs/process-job-stats/attrib"
	"github.com/uoracs/process-job-stats/db"
)

func testState(t *testing.T) *daemonState {
	t.Helper()
	dc := New()
	dc.OpenUse = "compute"
	dc.Donated = "preempt"
	if err := dc.PolicyArgs.Validate(); err != nil {
		t.Fatal(err)
	}
	pools, _, err := db.ReadNodePools(
		strings.NewReader("n0001,compute\nn0002,kernlab\n"), "preempt")
	if err != nil {
		t.Fatal(err)
	}
	return &daemonState{
		cmd:    dc,
		pools:  pools,
		owners: db.AccountOwners{"kernlab": "kern"},
	}
}

func TestDaemonAttributeJobs(t *testing.T) {
	_, api := humatest.New(t)
	testState(t).register(api)

	body := "29148461|split|jdoe|kernlab|preempt|01:00:00|2|16|billing=16,cpu=16,node=2|" +
		"2025-02-03T10:00:00|2025-02-03T10:05:00|2025-02-03T11:05:00|n[0001-0002]\n"
	resp := api.Post("/jobs", strings.NewReader(body))
	if resp.Code != 200 {
		t.Fatalf("Status: %d: %s", resp.Code, resp.Body.String())
	}
	var output struct {
		Rows    []*attrib.Row `json:"rows"`
		Skipped int           `json:"skipped"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &output); err != nil {
		t.Fatal(err)
	}
	if len(output.Rows) != 2 || output.Skipped != 0 {
		t.Fatalf("Output: %+v", output)
	}
	open := output.Rows[0]
	if open.Category != attrib.CategoryOpenUse || open.Weight != 0.5 || open.Owner != "kern" {
		t.Fatalf("Row: %+v", open)
	}

	// Malformed input is a client error, not a server crash
	resp = api.Post("/jobs", strings.NewReader("short|line\n"))
	if resp.Code != 400 {
		t.Fatalf("Status: %d", resp.Code)
	}
}

func TestDaemonListNodes(t *testing.T) {
	_, api := humatest.New(t)
	testState(t).register(api)

	resp := api.Get("/nodes")
	if resp.Code != 200 {
		t.Fatalf("Status: %d: %s", resp.Code, resp.Body.String())
	}
	var output struct {
		Nodes []nodeEntry `json:"nodes"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &output); err != nil {
		t.Fatal(err)
	}
	if len(output.Nodes) != 2 {
		t.Fatalf("Nodes: %+v", output.Nodes)
	}
	if output.Nodes[0].Node != "n0001" || !output.Nodes[0].OpenUse {
		t.Fatalf("Nodes: %+v", output.Nodes)
	}
	if output.Nodes[1].Node != "n0002" || output.Nodes[1].OpenUse {
		t.Fatalf("Nodes: %+v", output.Nodes)
	}
}

package attrib

import (
	"math"
	"strings"
	"testing"

	"github.com/uoracs/process-job-stats/common"
	"github.com/uoracs/process-job-stats/db"
)

func testPools(t *testing.T, snapshot string) *db.NodePoolIndex {
	t.Helper()
	ix, _, err := db.ReadNodePools(strings.NewReader(snapshot), "preempt")
	if err != nil {
		t.Fatal(err)
	}
	return ix
}

func TestAttributeRegularPartitions(t *testing.T) {
	cfg := common.NewPoolConfig("compute,gpu", "preempt")
	pools := testPools(t, "")

	w := Attribute("compute", []string{"n1"}, cfg, pools)
	if w != (Weights{OpenUse: 1}) {
		t.Fatalf("Open-use partition: got %+v", w)
	}
	w = Attribute("kern", []string{"n1"}, cfg, pools)
	if w != (Weights{Condo: 1}) {
		t.Fatalf("Condo partition: got %+v", w)
	}
}

func TestAttributeDonatedSplit(t *testing.T) {
	cfg := common.NewPoolConfig("compute,gpu", "preempt")
	// Three resolvable nodes, two in open-use pools, plus one the snapshot does not know:
	// the unknown node must not dilute the split.
	pools := testPools(t, "n1,compute\nn2,gpu\nn3,kernlab\n")

	w := Attribute("preempt", []string{"n1", "n2", "n3", "ghost"}, cfg, pools)
	if w.Excluded {
		t.Fatal("Should not be excluded")
	}
	if math.Abs(w.OpenUse-2.0/3.0) > 1e-9 {
		t.Fatalf("OpenUse: got %v", w.OpenUse)
	}
	if math.Abs(w.OpenUse+w.Condo-1) > 1e-9 {
		t.Fatalf("Weights must sum to 1: %+v", w)
	}
}

func TestAttributeDonatedAllResolved(t *testing.T) {
	cfg := common.NewPoolConfig("compute", "preempt")
	pools := testPools(t, "n1,compute\nn2,compute\n")

	w := Attribute("preempt", []string{"n1", "n2"}, cfg, pools)
	if w != (Weights{OpenUse: 1, Condo: 0}) {
		t.Fatalf("All open-use: got %+v", w)
	}
}

func TestAttributeDonatedExcluded(t *testing.T) {
	cfg := common.NewPoolConfig("compute", "preempt")
	pools := testPools(t, "n1,compute\n")

	// No node resolvable
	w := Attribute("preempt", []string{"ghost1", "ghost2"}, cfg, pools)
	if w != (Weights{Excluded: true}) {
		t.Fatalf("Unresolvable nodes: got %+v", w)
	}

	// No nodes at all ("None assigned")
	w = Attribute("preempt", nil, cfg, pools)
	if w != (Weights{Excluded: true}) {
		t.Fatalf("Empty node list: got %+v", w)
	}
}

func TestAttributeMultiPoolNode(t *testing.T) {
	cfg := common.NewPoolConfig("compute", "preempt")
	// A node in both an open-use pool and a condo pool counts once, as open use.
	pools := testPools(t, "n1,compute\nn1,kernlab\n")

	w := Attribute("preempt", []string{"n1"}, cfg, pools)
	if w != (Weights{OpenUse: 1, Condo: 0}) {
		t.Fatalf("Multi-pool node: got %+v", w)
	}
}

package db

import (
	"slices"
	"strings"
	"testing"
)

func TestReadNodePools(t *testing.T) {
	input := `n0335,compute*
n0335,preempt
n0336,compute
n0336,memory
c001,condo_pool
junkline
,compute
n0337,
`
	ix, softErrors, err := ReadNodePools(strings.NewReader(input), "preempt")
	if err != nil {
		t.Fatal(err)
	}
	if softErrors != 3 {
		t.Fatalf("Soft errors: got %d wanted 3", softErrors)
	}
	if ix.Size() != 3 {
		t.Fatalf("Size: got %d wanted 3", ix.Size())
	}

	// Default-partition marker stripped, donated membership excluded
	ps, found := ix.Pools("n0335")
	if !found || !slices.Equal(ps, []string{"compute"}) {
		t.Fatalf("n0335: got %v found=%v", ps, found)
	}

	// Multi-pool membership preserved in input order
	ps, found = ix.Pools("n0336")
	if !found || !slices.Equal(ps, []string{"compute", "memory"}) {
		t.Fatalf("n0336: got %v found=%v", ps, found)
	}

	// Unknown node is distinguishable from a node in zero pools
	_, found = ix.Pools("n9999")
	if found {
		t.Fatal("n9999 should be unknown")
	}

	nodes := ix.Nodes()
	if !slices.Equal(nodes, []string{"c001", "n0335", "n0336"}) {
		t.Fatalf("Nodes: got %v", nodes)
	}
}

func TestReadNodePoolsDuplicates(t *testing.T) {
	input := "n1,compute\nn1,compute\nn1,compute*\n"
	ix, softErrors, err := ReadNodePools(strings.NewReader(input), "preempt")
	if err != nil || softErrors != 0 {
		t.Fatalf("err=%v softErrors=%d", err, softErrors)
	}
	ps, _ := ix.Pools("n1")
	if !slices.Equal(ps, []string{"compute"}) {
		t.Fatalf("n1: got %v", ps)
	}
}

// The node-pool index: which pool (partition) does a physical node currently belong to?
//
// Built once per run from a sinfo snapshot of newline-delimited "node,partition" pairs, and
// read-only thereafter.  A node may appear on several lines and so belong to several pools.
// Entries for the donated (preemptible) pool are excluded when the index is built: a node's home
// affiliation with the donation queue is irrelevant to attribution, which only cares about
// non-donated pool membership.  sinfo marks the default partition with a trailing "*", which is
// stripped.

package db

import (
	"bufio"
	"io"
	"slices"
	"sort"
	"strings"
)

type NodePoolIndex struct {
	pools map[string][]string
}

// The pools the node currently belongs to.  The second value is false for an unknown node:
// unknown nodes belong to no pool at all, not to some default pool.

func (ix *NodePoolIndex) Pools(node string) ([]string, bool) {
	ps, found := ix.pools[node]
	return ps, found
}

func (ix *NodePoolIndex) Size() int {
	return len(ix.pools)
}

func (ix *NodePoolIndex) Nodes() []string {
	nodes := make([]string, 0, len(ix.pools))
	for n := range ix.pools {
		nodes = append(nodes, n)
	}
	sort.Strings(nodes)
	return nodes
}

// Build the index from snapshot text.  Lines that do not look like "node,partition" are dropped
// and counted in `softErrors`; duplicates are tolerated.  Nothing here is a hard error, a
// degraded index only shrinks the attribution denominators.

func ReadNodePools(input io.Reader, donated string) (*NodePoolIndex, int, error) {
	pools := make(map[string][]string)
	softErrors := 0
	scanner := bufio.NewScanner(input)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		node, partition, found := strings.Cut(line, ",")
		node = strings.TrimSpace(node)
		partition = strings.TrimSuffix(strings.TrimSpace(partition), "*")
		if !found || node == "" || partition == "" {
			softErrors++
			continue
		}
		if partition == donated {
			continue
		}
		if !slices.Contains(pools[node], partition) {
			pools[node] = append(pools[node], partition)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, softErrors, err
	}
	return &NodePoolIndex{pools: pools}, softErrors, nil
}

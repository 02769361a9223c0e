// Package cluster partitions the record universe into identity clusters.
//
// Scored pairs at or above the threshold become edges of an undirected
// graph; connected components are the clusters, and every record untouched
// by a qualifying edge forms its own singleton. The output always satisfies
// the partition property: disjoint clusters whose union is exactly the input
// record set. Clustering is a single-threaded barrier over the complete
// scored-pair set, because a cluster's confidence needs every qualifying
// edge of its component.
package cluster

import (
	"fmt"
	"sort"

	"medmatch/internal/classify"
	"medmatch/internal/services"
)

// Cluster is one identity group with its aggregate confidence. Confidence is
// the arithmetic mean of all qualifying edge probabilities inside the
// cluster; singletons have confidence 1.
type Cluster struct {
	ID         int
	Members    []string
	Confidence float64
}

// Partition clusters the record universe. recordIDs must list every record
// in the run, including those that appear in no scored pair. Raising the
// threshold can only split clusters, never merge them.
func Partition(scored []classify.ScoredPair, recordIDs []string, threshold float64) ([]Cluster, error) {
	if threshold <= 0 || threshold >= 1 {
		return nil, services.Wrap(services.ErrValidation, "cluster", "partition",
			fmt.Sprintf("threshold must lie strictly between 0 and 1, got %v", threshold), nil)
	}

	// Stable integer indices, assigned once per run.
	ids := append([]string(nil), recordIDs...)
	sort.Strings(ids)
	index := make(map[string]int, len(ids))
	for i, id := range ids {
		index[id] = i
	}

	uf := newUnionFind(len(ids))
	for _, sp := range scored {
		if sp.Probability < threshold {
			continue
		}
		li, lok := index[sp.Pair.Left]
		ri, rok := index[sp.Pair.Right]
		if !lok || !rok {
			return nil, services.Wrap(services.ErrValidation, "cluster", "partition",
				fmt.Sprintf("scored pair references unknown record %s/%s", sp.Pair.Left, sp.Pair.Right), nil)
		}
		uf.union(li, ri)
	}

	members := make(map[int][]string)
	for i, id := range ids {
		root := uf.find(i)
		members[root] = append(members[root], id)
	}

	// Every qualifying edge joined its endpoints, so each contributes to
	// exactly one component's confidence.
	edgeSum := make(map[int]float64)
	edgeCount := make(map[int]int)
	for _, sp := range scored {
		if sp.Probability < threshold {
			continue
		}
		root := uf.find(index[sp.Pair.Left])
		edgeSum[root] += sp.Probability
		edgeCount[root]++
	}

	clusters := make([]Cluster, 0, len(members))
	for root, ids := range members {
		sort.Strings(ids)
		confidence := 1.0
		if n := edgeCount[root]; n > 0 {
			confidence = edgeSum[root] / float64(n)
		}
		clusters = append(clusters, Cluster{Members: ids, Confidence: confidence})
	}

	// Deterministic output: order by smallest member id, then number.
	sort.Slice(clusters, func(i, j int) bool {
		return clusters[i].Members[0] < clusters[j].Members[0]
	})
	for i := range clusters {
		clusters[i].ID = i
	}
	return clusters, nil
}

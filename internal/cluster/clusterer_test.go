package cluster_test

import (
	"errors"
	"reflect"
	"sort"
	"testing"

	"medmatch/internal/blocking"
	"medmatch/internal/classify"
	"medmatch/internal/cluster"
	"medmatch/internal/services"
)

func scoredPair(a, b string, p float64) classify.ScoredPair {
	return classify.ScoredPair{Pair: blocking.NewPair(a, b), Probability: p}
}

func TestPartitionRejectsBadThreshold(t *testing.T) {
	for _, tau := range []float64{0, 1, -0.1, 1.5} {
		if _, err := cluster.Partition(nil, []string{"a"}, tau); !errors.Is(err, services.ErrValidation) {
			t.Errorf("threshold %v: expected validation error, got %v", tau, err)
		}
	}
}

// Transitive linking: A-B and B-C qualify while A-C does not, yet all three
// land in one cluster via connected components.
func TestTransitiveLinking(t *testing.T) {
	scored := []classify.ScoredPair{
		scoredPair("a", "b", 0.6),
		scoredPair("b", "c", 0.6),
		scoredPair("a", "c", 0.3),
	}

	clusters, err := cluster.Partition(scored, []string{"a", "b", "c"}, 0.5)
	if err != nil {
		t.Fatal(err)
	}
	if len(clusters) != 1 {
		t.Fatalf("expected one cluster, got %#v", clusters)
	}
	if !reflect.DeepEqual(clusters[0].Members, []string{"a", "b", "c"}) {
		t.Fatalf("members = %#v", clusters[0].Members)
	}
	// Mean over the two qualifying edges only; a-c fell below threshold.
	if got := clusters[0].Confidence; got != 0.6 {
		t.Fatalf("confidence = %v, want 0.6", got)
	}
}

func TestBelowThresholdPairsFormSingletons(t *testing.T) {
	scored := []classify.ScoredPair{scoredPair("a", "b", 0.4)}

	clusters, err := cluster.Partition(scored, []string{"a", "b"}, 0.5)
	if err != nil {
		t.Fatal(err)
	}
	if len(clusters) != 2 {
		t.Fatalf("expected two singletons, got %#v", clusters)
	}
	for _, c := range clusters {
		if len(c.Members) != 1 {
			t.Fatalf("expected singleton, got %#v", c)
		}
		if c.Confidence != 1.0 {
			t.Fatalf("singleton confidence = %v, want 1.0", c.Confidence)
		}
	}
}

func TestPartitionProperty(t *testing.T) {
	universe := []string{"a", "b", "c", "d", "e", "f"}
	scored := []classify.ScoredPair{
		scoredPair("a", "b", 0.9),
		scoredPair("c", "d", 0.8),
		scoredPair("a", "c", 0.2),
		scoredPair("e", "f", 0.1),
	}

	clusters, err := cluster.Partition(scored, universe, 0.5)
	if err != nil {
		t.Fatal(err)
	}

	var all []string
	seen := make(map[string]int)
	for _, c := range clusters {
		for _, id := range c.Members {
			all = append(all, id)
			seen[id]++
		}
	}
	sort.Strings(all)
	if !reflect.DeepEqual(all, universe) {
		t.Fatalf("clusters do not cover the universe: %#v", all)
	}
	for id, count := range seen {
		if count != 1 {
			t.Fatalf("record %s appears in %d clusters", id, count)
		}
	}
}

// Raising the threshold can only split clusters, never merge them: every
// cluster at tau2 > tau1 is a subset of some cluster at tau1.
func TestThresholdMonotonicity(t *testing.T) {
	universe := []string{"a", "b", "c", "d", "e"}
	scored := []classify.ScoredPair{
		scoredPair("a", "b", 0.9),
		scoredPair("b", "c", 0.6),
		scoredPair("c", "d", 0.55),
		scoredPair("d", "e", 0.4),
	}

	low, err := cluster.Partition(scored, universe, 0.5)
	if err != nil {
		t.Fatal(err)
	}
	high, err := cluster.Partition(scored, universe, 0.7)
	if err != nil {
		t.Fatal(err)
	}

	containing := make(map[string]int)
	for i, c := range low {
		for _, id := range c.Members {
			containing[id] = i
		}
	}
	for _, hc := range high {
		parent := containing[hc.Members[0]]
		for _, id := range hc.Members {
			if containing[id] != parent {
				t.Fatalf("cluster %#v at tau=0.7 spans multiple tau=0.5 clusters", hc.Members)
			}
		}
	}
}

func TestDeterministicOrdering(t *testing.T) {
	universe := []string{"z", "m", "a", "q"}
	scored := []classify.ScoredPair{
		scoredPair("z", "m", 0.8),
		scoredPair("a", "q", 0.8),
	}

	first, err := cluster.Partition(scored, universe, 0.5)
	if err != nil {
		t.Fatal(err)
	}
	second, err := cluster.Partition(scored, universe, 0.5)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("partition not deterministic")
	}

	// Sorted by smallest member; members sorted within each cluster.
	if first[0].Members[0] != "a" || first[0].ID != 0 {
		t.Fatalf("unexpected first cluster: %#v", first[0])
	}
	if first[1].Members[0] != "m" || first[1].ID != 1 {
		t.Fatalf("unexpected second cluster: %#v", first[1])
	}
}

func TestUnknownRecordInScoredPair(t *testing.T) {
	scored := []classify.ScoredPair{scoredPair("a", "ghost", 0.9)}
	if _, err := cluster.Partition(scored, []string{"a"}, 0.5); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestConfidenceMeansAllInternalEdges(t *testing.T) {
	// Triangle with all edges qualifying: mean over three edges, not a
	// spanning tree's two.
	scored := []classify.ScoredPair{
		scoredPair("a", "b", 0.9),
		scoredPair("b", "c", 0.8),
		scoredPair("a", "c", 0.7),
	}

	clusters, err := cluster.Partition(scored, []string{"a", "b", "c"}, 0.5)
	if err != nil {
		t.Fatal(err)
	}
	if len(clusters) != 1 {
		t.Fatalf("expected one cluster, got %#v", clusters)
	}
	want := (0.9 + 0.8 + 0.7) / 3
	if got := clusters[0].Confidence; got < want-1e-12 || got > want+1e-12 {
		t.Fatalf("confidence = %v, want %v", got, want)
	}
}

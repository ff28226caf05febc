package mtree_test

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/viant/mtree"
	"github.com/viant/mtree/index/bruteforce"
)

// checkRangeAgainstOracle compares a Range call id-for-id with linear scan.
func checkRangeAgainstOracle(t *testing.T, tr *mtree.Tree[float64, int, float64], oracle *bruteforce.Index[float64, int, float64], q, r float64) {
	t.Helper()
	got, err := tr.Range(q, r)
	if err != nil {
		t.Fatalf("Range(%v, %v) failed: %v", q, r, err)
	}
	want, err := oracle.Range(q, r)
	if err != nil {
		t.Fatalf("oracle Range failed: %v", err)
	}
	sort.Ints(got)
	sort.Ints(want)
	if len(got) != len(want) {
		t.Fatalf("Range(%v, %v) returned %d ids, oracle %d: got %v want %v", q, r, len(got), len(want), got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Range(%v, %v) = %v, oracle %v", q, r, got, want)
		}
	}
}

// checkNearestAgainstOracle compares a Nearest call with linear scan up to
// tie-breaking: distances must agree rank by rank, ids must be distinct and
// each reported distance must be the true distance of its id.
func checkNearestAgainstOracle(t *testing.T, tr *mtree.Tree[float64, int, float64], oracle *bruteforce.Index[float64, int, float64], values map[int]float64, q float64, k int) {
	t.Helper()
	got, err := tr.Nearest(q, k)
	if err != nil {
		t.Fatalf("Nearest(%v, %d) failed: %v", q, k, err)
	}
	want, err := oracle.Nearest(q, k)
	if err != nil {
		t.Fatalf("oracle Nearest failed: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("Nearest(%v, %d) returned %d results, oracle %d", q, k, len(got), len(want))
	}
	seen := make(map[int]bool, len(got))
	for i, n := range got {
		if n.Distance != want[i].Distance {
			t.Fatalf("Nearest(%v, %d) distance[%d] = %v, oracle %v", q, k, i, n.Distance, want[i].Distance)
		}
		if i > 0 && got[i-1].Distance > n.Distance {
			t.Fatalf("Nearest(%v, %d) distances not ascending: %v", q, k, got)
		}
		if seen[n.ID] {
			t.Fatalf("Nearest(%v, %d) returned id %d twice", q, k, n.ID)
		}
		seen[n.ID] = true
		v, ok := values[n.ID]
		if !ok {
			t.Fatalf("Nearest(%v, %d) returned unknown id %d", q, k, n.ID)
		}
		if d := absDist(q, v); d != n.Distance {
			t.Fatalf("Nearest(%v, %d) reported distance %v for id %d, true distance %v", q, k, n.Distance, n.ID, d)
		}
	}
}

// TestQueriesMatchOracle exercises every split policy and partition
// algorithm combination against the brute-force oracle, validating the
// structural invariants after each insert.
func TestQueriesMatchOracle(t *testing.T) {
	policies := []mtree.SplitPolicy{
		mtree.SplitMaxLowerBound,
		mtree.SplitMinRadiusSum,
		mtree.SplitMinMaxRadius,
		mtree.SplitRandom,
		mtree.SplitSampling,
	}
	partitions := []mtree.PartitionAlgorithm{mtree.PartitionBalanced, mtree.PartitionHyperplane}

	for _, policy := range policies {
		for _, partition := range partitions {
			policy, partition := policy, partition
			t.Run(policy.String()+"/"+partition.String(), func(t *testing.T) {
				rng := rand.New(rand.NewSource(11))
				tr, err := mtree.New[float64, int, float64](4, absDist)
				if err != nil {
					t.Fatalf("New failed: %v", err)
				}
				tr.SetSplitPolicy(policy)
				tr.SetPartitionAlgorithm(partition)
				tr.SetRand(rand.New(rand.NewSource(7)))
				oracle := bruteforce.New[float64, int, float64](absDist)
				values := make(map[int]float64)

				for i := 0; i < 120; i++ {
					v := rng.Float64() * 1000
					id := i + 1
					if err := tr.Insert(id, v); err != nil {
						t.Fatalf("Insert failed: %v", err)
					}
					if err := oracle.Insert(id, v); err != nil {
						t.Fatalf("oracle Insert failed: %v", err)
					}
					values[id] = v
					if err := tr.Validate(); err != nil {
						t.Fatalf("Validate after insert %d failed: %v", i, err)
					}
				}

				for i := 0; i < 20; i++ {
					q := rng.Float64() * 1000
					checkRangeAgainstOracle(t, tr, oracle, q, rng.Float64()*200)
					checkNearestAgainstOracle(t, tr, oracle, values, q, 1+rng.Intn(12))
				}
			})
		}
	}
}

// TestRangeMatchesOracleMinMaxRadius runs the 500-point scenario under
// min-max-radius promotion with balanced partitioning.
func TestRangeMatchesOracleMinMaxRadius(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	tr, err := mtree.New[float64, int, float64](3, absDist)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	tr.SetSplitPolicy(mtree.SplitMinMaxRadius)
	tr.SetPartitionAlgorithm(mtree.PartitionBalanced)
	oracle := bruteforce.New[float64, int, float64](absDist)

	for i := 0; i < 500; i++ {
		v := rng.Float64() * 1000
		if err := tr.Insert(i+1, v); err != nil {
			t.Fatalf("Insert failed: %v", err)
		}
		if err := oracle.Insert(i+1, v); err != nil {
			t.Fatalf("oracle Insert failed: %v", err)
		}
	}
	if err := tr.Validate(); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	for i := 0; i < 100; i++ {
		checkRangeAgainstOracle(t, tr, oracle, rng.Float64()*1000, rng.Float64()*100)
	}
}

// TestNearestMatchesOracleMaxLowerBound runs the 200-point kNN scenario
// under the default max-lower-bound promotion.
func TestNearestMatchesOracleMaxLowerBound(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	tr, err := mtree.New[float64, int, float64](3, absDist)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	tr.SetSplitPolicy(mtree.SplitMaxLowerBound)
	tr.SetPartitionAlgorithm(mtree.PartitionBalanced)
	oracle := bruteforce.New[float64, int, float64](absDist)
	values := make(map[int]float64)

	for i := 0; i < 200; i++ {
		v := rng.Float64() * 1000
		id := i + 1
		if err := tr.Insert(id, v); err != nil {
			t.Fatalf("Insert failed: %v", err)
		}
		if err := oracle.Insert(id, v); err != nil {
			t.Fatalf("oracle Insert failed: %v", err)
		}
		values[id] = v
	}
	for _, k := range []int{1, 3, 10} {
		for i := 0; i < 10; i++ {
			checkNearestAgainstOracle(t, tr, oracle, values, rng.Float64()*1000, k)
		}
	}
}

// TestNearestWithLargeK asks for more neighbours than stored entries: the
// result must hold every entry exactly once with no placeholder ids.
func TestNearestWithLargeK(t *testing.T) {
	tr, err := mtree.New[float64, int, float64](3, absDist)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	const n = 17
	for i := 0; i < n; i++ {
		if err := tr.Insert(i+1, float64(i*10)); err != nil {
			t.Fatalf("Insert failed: %v", err)
		}
	}
	nn, err := tr.Nearest(42.0, n*3)
	if err != nil {
		t.Fatalf("Nearest failed: %v", err)
	}
	if len(nn) != n {
		t.Fatalf("Nearest(k > size) returned %d results, want %d", len(nn), n)
	}
	seen := make(map[int]bool, n)
	for i, r := range nn {
		if r.ID == 0 {
			t.Fatalf("Nearest returned the placeholder id at rank %d", i)
		}
		if seen[r.ID] {
			t.Fatalf("Nearest returned id %d twice", r.ID)
		}
		seen[r.ID] = true
		if i > 0 && nn[i-1].Distance > r.Distance {
			t.Fatalf("Nearest distances not ascending: %v", nn)
		}
	}
}

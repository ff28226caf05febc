package mtree

import (
	"math"
	"testing"
)

func testTree(t *testing.T, capacity int) *Tree[float64, int, float64] {
	t.Helper()
	tr, err := New[float64, int, float64](capacity, func(a, b float64) float64 { return math.Abs(a - b) })
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return tr
}

func matrixOver(tr *Tree[float64, int, float64], values []float64) *distMatrix[float64] {
	return tr.newDistMatrix(len(values), func(i int) float64 { return values[i] })
}

func TestDistMatrixSymmetry(t *testing.T) {
	tr := testTree(t, 3)
	m := matrixOver(tr, []float64{0, 3, 10})
	for i := 0; i < m.n; i++ {
		if m.at(i, i) != 0 {
			t.Fatalf("at(%d,%d) = %v, want 0", i, i, m.at(i, i))
		}
		for j := 0; j < m.n; j++ {
			if m.at(i, j) != m.at(j, i) {
				t.Fatalf("matrix not symmetric at (%d,%d)", i, j)
			}
		}
	}
	if m.at(0, 2) != 10 || m.at(0, 1) != 3 || m.at(1, 2) != 7 {
		t.Fatalf("unexpected matrix contents")
	}
}

func TestBalancedAssignAlternates(t *testing.T) {
	tr := testTree(t, 3)
	m := matrixOver(tr, []float64{0, 1, 10, 11})
	as := balancedAssign(m, 0, 3, 3)

	if len(as.first) != 2 || len(as.second) != 2 {
		t.Fatalf("balanced partition sizes %d/%d, want 2/2", len(as.first), len(as.second))
	}
	// Each pivot takes itself first, then its nearest remaining value.
	if as.first[0] != 0 || as.first[1] != 1 {
		t.Fatalf("first side = %v, want [0 1]", as.first)
	}
	if as.second[0] != 3 || as.second[1] != 2 {
		t.Fatalf("second side = %v, want [3 2]", as.second)
	}
	if as.r1 != 1 || as.r2 != 1 {
		t.Fatalf("radii = %v/%v, want 1/1", as.r1, as.r2)
	}
}

func TestBalancedAssignHonoursCapacity(t *testing.T) {
	tr := testTree(t, 4)
	// Every value closest to pivot 0; the cap must still hold.
	m := matrixOver(tr, []float64{0, 1, 2, 3, 100})
	as := balancedAssign(m, 0, 4, 4)
	if len(as.first) > 4 || len(as.second) > 4 {
		t.Fatalf("partition sizes %d/%d exceed capacity 4", len(as.first), len(as.second))
	}
	if len(as.first) == 0 || len(as.second) == 0 {
		t.Fatalf("partition left a side empty: %v / %v", as.first, as.second)
	}
}

func TestHyperplaneAssignNearerPivotWins(t *testing.T) {
	tr := testTree(t, 3)
	m := matrixOver(tr, []float64{0, 1, 10, 11})
	as := hyperplaneAssign(m, 0, 3, 3)
	if len(as.first) != 2 || as.first[0] != 0 || as.first[1] != 1 {
		t.Fatalf("first side = %v, want [0 1]", as.first)
	}
	if len(as.second) != 2 || as.second[0] != 2 || as.second[1] != 3 {
		t.Fatalf("second side = %v, want [2 3]", as.second)
	}
	if as.r1 != 1 || as.r2 != 1 {
		t.Fatalf("radii = %v/%v, want 1/1", as.r1, as.r2)
	}
}

func TestHyperplaneAssignDegenerateTies(t *testing.T) {
	tr := testTree(t, 3)
	// Zero metric: every distance ties, everything prefers the first side.
	zero := func(a, b float64) float64 { return 0 }
	tr.SetDistanceFunc(zero)
	m := tr.newDistMatrix(4, func(i int) float64 { return 5 })
	as := hyperplaneAssign(m, 0, 1, 3)
	if len(as.first) != 3 || len(as.second) != 1 {
		t.Fatalf("degenerate partition sizes %d/%d, want 3/1", len(as.first), len(as.second))
	}
}

func TestPromoteMaxLowerBound(t *testing.T) {
	tr := testTree(t, 3)
	m := matrixOver(tr, []float64{0, 5, 100})
	p1, p2 := tr.promote(m)
	if !(p1 == 0 && p2 == 2) {
		t.Fatalf("promote = (%d, %d), want (0, 2)", p1, p2)
	}
}

func TestPromoteMinRadiusSum(t *testing.T) {
	tr := testTree(t, 3)
	tr.SetSplitPolicy(SplitMinRadiusSum)
	m := matrixOver(tr, []float64{0, 1, 10, 11})
	p1, p2 := tr.promote(m)
	as := tr.assign(m, p1, p2)
	if as.r1+as.r2 != 2 {
		t.Fatalf("promote (%d, %d) yields radius sum %v, want 2", p1, p2, as.r1+as.r2)
	}
}

func TestPromoteMinMaxRadius(t *testing.T) {
	tr := testTree(t, 3)
	tr.SetSplitPolicy(SplitMinMaxRadius)
	m := matrixOver(tr, []float64{0, 1, 10, 11})
	p1, p2 := tr.promote(m)
	as := tr.assign(m, p1, p2)
	larger := as.r1
	if as.r2 > larger {
		larger = as.r2
	}
	if larger != 1 {
		t.Fatalf("promote (%d, %d) yields max radius %v, want 1", p1, p2, larger)
	}
}

func TestPromoteRandomDistinct(t *testing.T) {
	tr := testTree(t, 3)
	tr.SetSplitPolicy(SplitRandom)
	m := matrixOver(tr, []float64{0, 1, 2, 3})
	for i := 0; i < 50; i++ {
		p1, p2 := tr.promote(m)
		if p1 == p2 {
			t.Fatalf("random promote returned the same index twice: %d", p1)
		}
		if p1 < 0 || p1 >= m.n || p2 < 0 || p2 >= m.n {
			t.Fatalf("random promote out of range: (%d, %d)", p1, p2)
		}
	}
}

func TestPromoteSamplingPicksReasonablePair(t *testing.T) {
	tr := testTree(t, 3)
	tr.SetSplitPolicy(SplitSampling)
	m := matrixOver(tr, []float64{0, 1, 10, 11})
	p1, p2 := tr.promote(m)
	if p1 == p2 || p1 < 0 || p2 < 0 || p1 >= m.n || p2 >= m.n {
		t.Fatalf("sampling promote = (%d, %d), want two distinct in-range indices", p1, p2)
	}
}

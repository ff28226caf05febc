package distance

import (
	"math"

	"github.com/viant/vec/search"
	"golang.org/x/exp/constraints"
	"gonum.org/v1/gonum/floats"

	"github.com/viant/mtree"
)

// Euclidean32 returns the SIMD-accelerated Euclidean distance over float32
// vectors. Both arguments must have the same length.
func Euclidean32() mtree.DistanceFunc[[]float32, float32] {
	return func(a, b []float32) float32 {
		return search.Float32s(a).EuclideanDistance(b)
	}
}

// Cosine32 returns the SIMD-accelerated cosine distance (1 - cosine
// similarity) over float32 vectors.
//
// Cosine distance is not a true metric: the triangle inequality can fail, so
// M-tree pruning against it is only approximate. Prefer Euclidean32 when
// exact query results matter.
func Cosine32() mtree.DistanceFunc[[]float32, float32] {
	return func(a, b []float32) float32 {
		va := search.Float32s(a)
		return va.CosineDistanceWithMagnitude(b, va.Magnitude(), search.Float32s(b).Magnitude())
	}
}

// Euclidean64 returns the Euclidean (L2) distance over float64 vectors.
func Euclidean64() mtree.DistanceFunc[[]float64, float64] {
	return func(a, b []float64) float64 {
		return floats.Distance(a, b, 2)
	}
}

// Manhattan64 returns the Manhattan (L1) distance over float64 vectors.
func Manhattan64() mtree.DistanceFunc[[]float64, float64] {
	return func(a, b []float64) float64 {
		return floats.Distance(a, b, 1)
	}
}

// Chebyshev64 returns the Chebyshev (L-infinity) distance over float64
// vectors.
func Chebyshev64() mtree.DistanceFunc[[]float64, float64] {
	return func(a, b []float64) float64 {
		return floats.Distance(a, b, math.Inf(1))
	}
}

// Abs returns the absolute-difference distance over a scalar numeric type,
// the one-dimensional Euclidean metric.
func Abs[R constraints.Signed | constraints.Float]() mtree.DistanceFunc[R, R] {
	return func(a, b R) R {
		if a > b {
			return a - b
		}
		return b - a
	}
}

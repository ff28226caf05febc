// Package distance provides ready-made distance functions for the M-tree:
// SIMD-accelerated float32 vector distances, float64 vector norms, and a
// scalar absolute-difference metric. All constructors return values usable
// directly as mtree.DistanceFunc.
package distance

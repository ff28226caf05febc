// Package index defines a minimal abstraction for metric indexes that store
// (id, value) pairs and answer range and k-nearest-neighbour queries.
// Implementations in this module include the M-tree and a brute-force
// baseline.
package index

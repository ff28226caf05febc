// Package bruteforce provides a metric index that answers range and kNN
// queries by scanning every stored value. It is slow but trivially correct,
// which makes it the oracle for the M-tree test suite and a sane baseline
// for small collections.
package bruteforce

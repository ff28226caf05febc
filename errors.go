package mtree

import "errors"

var (
	// ErrInvalidArgument reports a caller error: capacity below 2, a nil
	// distance function at query time, or k < 1 for a nearest query.
	ErrInvalidArgument = errors.New("mtree: invalid argument")

	// ErrInvariantViolation reports an internal consistency failure detected
	// by Validate. It indicates a bug in the tree, not a caller error.
	ErrInvariantViolation = errors.New("mtree: invariant violation")
)

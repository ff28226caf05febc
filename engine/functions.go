package engine

import (
	"database/sql"
	"database/sql/driver"
	"encoding/binary"
	"fmt"
	"math"

	sqlite "modernc.org/sqlite"
)

// RegisterDistanceFunctions registers mtree_l2 and mtree_l1 with the driver
// so they are available on new connections opened after this call. Both take
// two embedding BLOBs (little-endian float32 sequences, see store.EncodeVector)
// and return the distance as a float64.
// Note: existing open connections will not see new functions.
func RegisterDistanceFunctions(_ *sql.DB) error {
	// Idempotent registration; driver rejects duplicates but we ignore errors silently here.
	_ = sqlite.RegisterDeterministicScalarFunction("mtree_l2", 2, mtreeL2Impl)
	_ = sqlite.RegisterDeterministicScalarFunction("mtree_l1", 2, mtreeL1Impl)
	return nil
}

func asVector(arg driver.Value) ([]float32, error) {
	switch v := arg.(type) {
	case nil:
		return nil, nil
	case []byte:
		return decodeVector(v)
	default:
		return nil, fmt.Errorf("mtree: unsupported argument type %T for vector; want BLOB", arg)
	}
}

func mtreeL2Impl(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	return distanceImpl("mtree_l2", args, l2)
}

func mtreeL1Impl(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	return distanceImpl("mtree_l1", args, l1)
}

func distanceImpl(name string, args []driver.Value, fn func(a, b []float32) (float64, error)) (driver.Value, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("%s: expected 2 arguments, got %d", name, len(args))
	}
	a, err := asVector(args[0])
	if err != nil {
		return nil, err
	}
	b, err := asVector(args[1])
	if err != nil {
		return nil, err
	}
	if a == nil || b == nil {
		return nil, nil
	}
	return fn(a, b)
}

// Local minimal helpers to avoid import cycles in tests.
func decodeVector(b []byte) ([]float32, error) {
	if len(b) == 0 {
		return nil, nil
	}
	if len(b)%4 != 0 {
		return nil, fmt.Errorf("mtree: invalid vector blob length %d", len(b))
	}
	n := len(b) / 4
	v := make([]float32, n)
	for i := 0; i < n; i++ {
		v[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:]))
	}
	return v, nil
}

func l2(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("mtree: L2 dim mismatch %d vs %d", len(a), len(b))
	}
	var sum float64
	for i := range a {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}
	return math.Sqrt(sum), nil
}

func l1(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("mtree: L1 dim mismatch %d vs %d", len(a), len(b))
	}
	var sum float64
	for i := range a {
		sum += math.Abs(float64(a[i]) - float64(b[i]))
	}
	return sum, nil
}

package usrs

import (
	"sync/atomic"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
)

var pairingCount uint64

// PairingCount returns the number of individual pairings this process
// has computed through pairingCheck so far. It exists so tests (and
// callers comparing verification strategies) can measure pairing cost
// directly rather than estimating it.
func PairingCount() uint64 {
	return atomic.LoadUint64(&pairingCount)
}

// ResetPairingCount zeroes the counter, for isolating measurements
// between test cases.
func ResetPairingCount() {
	atomic.StoreUint64(&pairingCount, 0)
}

// pairingCheck wraps bls12381.PairingCheck, tallying every pairing it
// performs so the aggregate verifier's cost can be compared against a
// pairwise one.
func pairingCheck(p []bls12381.G1Affine, q []bls12381.G2Affine) (bool, error) {
	atomic.AddUint64(&pairingCount, uint64(len(p)))
	return bls12381.PairingCheck(p, q)
}

// pairEq checks e(a1, b1) == e(a2, b2) with a single pairing check.
func pairEq(a1 bls12381.G1Affine, b1 bls12381.G2Affine, a2 bls12381.G1Affine, b2 bls12381.G2Affine) bool {
	var negA2 bls12381.G1Affine
	negA2.Neg(&a2)
	ok, err := pairingCheck(
		[]bls12381.G1Affine{a1, negA2},
		[]bls12381.G2Affine{b1, b2},
	)
	return err == nil && ok
}

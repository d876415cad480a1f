package usrs

import (
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"

	"github.com/giuliop/usrs/nizk"
	"github.com/giuliop/usrs/ro"
	"github.com/giuliop/usrs/sigma"
)

// Update is a single contributor's update: the SRS after applying a
// fresh trapdoor permutation, commitments to that trapdoor's
// exponents, and a NIZK-PoK that the committed exponents are the ones
// actually used. P is the proof type of the NIZK engine that produced
// Pi.
type Update[P any] struct {
	SRS *USRS
	GY  bls12381.G1Affine
	GBY bls12381.G1Affine
	Pi  P
}

// NewUpdate samples a fresh trapdoor, permutes srs with it, and proves
// knowledge of the trapdoor's exponents via engine. The trapdoor never
// outlives this call.
func NewUpdate[P any](engine nizk.Engine[P], srs *USRS, rng *ro.Output) *Update[P] {
	x, alpha := SampleTrapdoor(rng)
	var by fr.Element
	by.Mul(&x, &alpha)

	gy := sigma.MulGen(x)
	gby := sigma.MulGen(by)

	srsPrime := srs.Permute(x, alpha)

	statement := sigma.CurvePair{A: gy, B: gby}
	witness := sigma.FieldPair{A: x, B: by}
	pi := engine.Prove(statement, witness, rng)

	x = fr.Element{}
	alpha = fr.Element{}
	by = fr.Element{}

	return &Update[P]{SRS: srsPrime, GY: gy, GBY: gby, Pi: pi}
}

// Verify checks u against the SRS it claims to update from: that the
// trapdoor commitments are non-trivial, the dimension is unchanged,
// the NIZK-PoK verifies, the committed exponents were applied
// correctly to both the x and alpha exponent chains, and the
// resulting SRS is itself structurally valid.
func (u *Update[P]) Verify(engine nizk.Engine[P], srsPrev *USRS, rng *ro.Output) bool {
	if u.GY.Equal(&g1Gen) || u.GBY.Equal(&g1Gen) {
		return false
	}
	if u.SRS.D != srsPrev.D {
		return false
	}
	if !engine.Verify(sigma.CurvePair{A: u.GY, B: u.GBY}, u.Pi) {
		return false
	}
	d := srsPrev.D
	if !pairEq(u.GBY, srsPrev.HAX[d+1], g1Gen, u.SRS.HAX[d+1]) {
		return false
	}
	if !pairEq(u.GY, srsPrev.HX[d+1], g1Gen, u.SRS.HX[d+1]) {
		return false
	}
	return u.SRS.VerifyStructure(rng)
}

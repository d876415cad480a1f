package nizk

import (
	"github.com/giuliop/usrs/ro"
	"github.com/giuliop/usrs/sigma"
)

// FiatShamirProof is the transcript (T, R) produced by the Fiat-Shamir
// transform of the dual proof of exponent.
type FiatShamirProof struct {
	T sigma.CurvePair
	R sigma.FieldPair
}

// FiatShamir derives the sigma protocol's challenge from the RO applied
// to the statement and first-move commitment, collapsing the
// interactive protocol to a single non-interactive proof.
type FiatShamir struct {
	H ro.RO
}

func (f FiatShamir) oracle() ro.RO {
	if f.H == nil {
		return ro.SHA3RO{}
	}
	return f.H
}

func (f FiatShamir) challenge(x sigma.CurvePair, t sigma.CurvePair) sigma.FieldPair {
	rng := hashRng(f.oracle(), x.Bytes(), t.Bytes())
	return sigma.RandomFieldPair(rng)
}

// Prove runs the sigma protocol's first move, derives the challenge
// from x and the commitment, and runs the second move.
func (f FiatShamir) Prove(x sigma.CurvePair, w sigma.FieldPair, rng *ro.Output) FiatShamirProof {
	z, t := sigma.ProveStep1(rng)
	c := f.challenge(x, t)
	r := sigma.ProveStep2(w, z, c)
	return FiatShamirProof{T: t, R: r}
}

// Verify recomputes the challenge the same way the prover did and
// checks the sigma protocol's final verification equation.
func (f FiatShamir) Verify(x sigma.CurvePair, proof FiatShamirProof) bool {
	c := f.challenge(x, proof.T)
	return sigma.FinishVerify(x, proof.T, c, proof.R)
}

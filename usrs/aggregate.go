package usrs

import (
	"math/big"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"golang.org/x/sync/errgroup"

	"github.com/giuliop/usrs/msm"
	"github.com/giuliop/usrs/nizk"
	"github.com/giuliop/usrs/ro"
	"github.com/giuliop/usrs/sigma"
)

// UpdatePart is the record AggregateUpdate.Append keeps for one
// appended update: snapshots of the pre-update SRS's h_x[d+1] and
// h_ax[d+1], the update's trapdoor commitments, and its NIZK-PoK.
// Snapshotting these two G2 elements (rather than keeping a reference
// to the prior SRS) keeps the aggregate record tree-shaped.
type UpdatePart[P any] struct {
	HXPrev  bls12381.G2Affine
	HAXPrev bls12381.G2Affine
	GY      bls12381.G1Affine
	GBY     bls12381.G1Affine
	Pi      P
}

// AggregateUpdate accumulates a strictly ordered chain of updates and
// verifies the whole chain with fewer pairings than verifying each
// update individually: one batched pairing check of 2L+1 pairings over
// the L updates, plus one structural check of the final SRS.
type AggregateUpdate[P any] struct {
	SRS   *USRS
	Parts []UpdatePart[P]
}

// NewAggregateUpdate starts an aggregate from the empty SRS of
// dimension d.
func NewAggregateUpdate[P any](d int) *AggregateUpdate[P] {
	return &AggregateUpdate[P]{SRS: New(d)}
}

// Append records u as the next update in the chain. It is not
// reentrant: callers must serialize calls against a single
// AggregateUpdate.
func (a *AggregateUpdate[P]) Append(u *Update[P]) {
	prev := a.SRS
	d := prev.D
	a.Parts = append(a.Parts, UpdatePart[P]{
		HXPrev:  prev.HX[d+1],
		HAXPrev: prev.HAX[d+1],
		GY:      u.GY,
		GBY:     u.GBY,
		Pi:      u.Pi,
	})
	a.SRS = u.SRS
}

// Verify checks the entire recorded chain: every individual update's
// NIZK-PoK (in parallel), that the chain starts from the empty SRS,
// a telescoped batched pairing check that the x and alpha exponent
// chains were correctly applied at every step, and that the final SRS
// is itself structurally valid. On an empty chain it accepts iff the
// SRS is the freshly constructed empty one.
func (a *AggregateUpdate[P]) Verify(engine nizk.Engine[P], rng *ro.Output) bool {
	l := len(a.Parts)
	if l == 0 {
		return a.SRS.isEmpty()
	}

	valid := make([]bool, l)
	var g errgroup.Group
	for i := 0; i < l; i++ {
		i := i
		g.Go(func() error {
			p := a.Parts[i]
			if p.GY.Equal(&g1Gen) || p.GBY.Equal(&g1Gen) {
				valid[i] = false
				return nil
			}
			valid[i] = engine.Verify(sigma.CurvePair{A: p.GY, B: p.GBY}, p.Pi)
			return nil
		})
	}
	_ = g.Wait()
	for _, ok := range valid {
		if !ok {
			return false
		}
	}

	if !a.Parts[0].HXPrev.Equal(&h2Gen) || !a.Parts[0].HAXPrev.Equal(&h2Gen) {
		return false
	}

	n := 2 * l
	hPrev := make([]bls12381.G2Affine, n)
	hNext := make([]bls12381.G2Affine, n)
	gs := make([]bls12381.G1Affine, n)
	for k := 0; k < l; k++ {
		hPrev[k] = a.Parts[k].HXPrev
		hPrev[l+k] = a.Parts[k].HAXPrev
		gs[k] = a.Parts[k].GY
		gs[l+k] = a.Parts[k].GBY
		if k < l-1 {
			hNext[k] = a.Parts[k+1].HXPrev
			hNext[l+k] = a.Parts[k+1].HAXPrev
		} else {
			hNext[k] = a.SRS.HX[a.SRS.D+1]
			hNext[l+k] = a.SRS.HAX[a.SRS.D+1]
		}
	}

	r := make([]fr.Element, n)
	for i := range r {
		r[i] = sigma.RandomFr(rng)
	}

	rhs := msm.MSMG2(hNext, r)
	var negRHS bls12381.G2Affine
	negRHS.Neg(&rhs)

	lhsG1 := make([]bls12381.G1Affine, n+1)
	lhsG2 := make([]bls12381.G2Affine, n+1)
	var pg errgroup.Group
	for k := 0; k < n; k++ {
		k := k
		pg.Go(func() error {
			var bi big.Int
			r[k].BigInt(&bi)
			var scaled bls12381.G1Affine
			scaled.ScalarMultiplication(&gs[k], &bi)
			lhsG1[k] = scaled
			lhsG2[k] = hPrev[k]
			return nil
		})
	}
	_ = pg.Wait()
	lhsG1[n] = g1Gen
	lhsG2[n] = negRHS

	ok, err := pairingCheck(lhsG1, lhsG2)
	if err != nil || !ok {
		return false
	}

	return a.SRS.VerifyStructure(rng)
}

package msm

import (
	"math"
	"math/big"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"golang.org/x/sync/errgroup"
)

// windowSize is the Pippenger bucket width c = max(3, ceil(ln n)).
func windowSize(n int) int {
	if n < 1 {
		return 3
	}
	c := int(math.Ceil(math.Log(float64(n))))
	if c < 3 {
		c = 3
	}
	return c
}

func numWindows(c int) int {
	bits := fr.Modulus().BitLen()
	return (bits + c - 1) / c
}

// windowBits extracts the c-bit window of bi starting at bit `start`.
func windowBits(bi *big.Int, start, c int) int {
	v := 0
	for i := 0; i < c; i++ {
		if bi.Bit(start+i) == 1 {
			v |= 1 << uint(i)
		}
	}
	return v
}

func scalarInts(scalars []fr.Element) []*big.Int {
	out := make([]*big.Int, len(scalars))
	for i := range scalars {
		out[i] = new(big.Int)
		scalars[i].BigInt(out[i])
	}
	return out
}

// MSMG1 computes Σ scalars[i]*points[i] over G1.
func MSMG1(points []bls12381.G1Affine, scalars []fr.Element) bls12381.G1Affine {
	if len(points) != len(scalars) {
		panic("msm: points/scalars length mismatch")
	}
	if len(points) == 0 {
		var zero bls12381.G1Affine
		return zero
	}
	c := windowSize(len(points))
	w := numWindows(c)
	ints := scalarInts(scalars)

	windows := make([]bls12381.G1Jac, w)
	var g errgroup.Group
	for win := 0; win < w; win++ {
		win := win
		g.Go(func() error {
			numBuckets := (1 << uint(c)) - 1
			buckets := make([]bls12381.G1Jac, numBuckets)
			for i := range points {
				b := windowBits(ints[i], win*c, c)
				if b != 0 {
					buckets[b-1].AddMixed(&points[i])
				}
			}
			var runningSum, acc bls12381.G1Jac
			for i := numBuckets - 1; i >= 0; i-- {
				runningSum.AddAssign(&buckets[i])
				acc.AddAssign(&runningSum)
			}
			windows[win] = acc
			return nil
		})
	}
	_ = g.Wait()

	var acc bls12381.G1Jac
	for win := w - 1; win >= 0; win-- {
		for i := 0; i < c; i++ {
			acc.Double(&acc)
		}
		acc.AddAssign(&windows[win])
	}
	var out bls12381.G1Affine
	out.FromJacobian(&acc)
	return out
}

// MSMG2 computes Σ scalars[i]*points[i] over G2.
func MSMG2(points []bls12381.G2Affine, scalars []fr.Element) bls12381.G2Affine {
	if len(points) != len(scalars) {
		panic("msm: points/scalars length mismatch")
	}
	if len(points) == 0 {
		var zero bls12381.G2Affine
		return zero
	}
	c := windowSize(len(points))
	w := numWindows(c)
	ints := scalarInts(scalars)

	windows := make([]bls12381.G2Jac, w)
	var g errgroup.Group
	for win := 0; win < w; win++ {
		win := win
		g.Go(func() error {
			numBuckets := (1 << uint(c)) - 1
			buckets := make([]bls12381.G2Jac, numBuckets)
			for i := range points {
				b := windowBits(ints[i], win*c, c)
				if b != 0 {
					buckets[b-1].AddMixed(&points[i])
				}
			}
			var runningSum, acc bls12381.G2Jac
			for i := numBuckets - 1; i >= 0; i-- {
				runningSum.AddAssign(&buckets[i])
				acc.AddAssign(&runningSum)
			}
			windows[win] = acc
			return nil
		})
	}
	_ = g.Wait()

	var acc bls12381.G2Jac
	for win := w - 1; win >= 0; win-- {
		for i := 0; i < c; i++ {
			acc.Double(&acc)
		}
		acc.AddAssign(&windows[win])
	}
	var out bls12381.G2Affine
	out.FromJacobian(&acc)
	return out
}

package usrs

import (
	"encoding/binary"
	"fmt"
	"io"
	"math/big"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"golang.org/x/sync/errgroup"

	"github.com/giuliop/usrs/msm"
	"github.com/giuliop/usrs/sigma"
)

var g1Gen bls12381.G1Affine
var h2Gen bls12381.G2Affine

func init() {
	_, _, g1Gen, h2Gen = bls12381.Generators()
}

// maxDimension bounds the dimension Import will accept, guarding
// against a maliciously large d forcing an unbounded allocation.
const maxDimension = 1 << 24

// USRS is a universal updatable structured reference string of
// dimension D: four length-(2D+1) sequences indexed by array position
// i+D for exponent i in {-D, ..., D}.
type USRS struct {
	D   int
	GX  []bls12381.G1Affine
	GAX []bls12381.G1Affine
	HX  []bls12381.G2Affine
	HAX []bls12381.G2Affine
}

// New builds the empty SRS of dimension d: every slot is the
// respective group generator, representing trapdoor exponents x=1,
// alpha=1.
//
// New panics if d < 2: verify_structure dereferences g_ax[d-1] and
// h_x[d+2], which would be out of range for smaller dimensions.
func New(d int) *USRS {
	if d < 2 {
		panic("usrs: dimension must be at least 2")
	}
	n := 2*d + 1
	s := &USRS{
		D:   d,
		GX:  make([]bls12381.G1Affine, n),
		GAX: make([]bls12381.G1Affine, n),
		HX:  make([]bls12381.G2Affine, n),
		HAX: make([]bls12381.G2Affine, n),
	}
	for i := 0; i < n; i++ {
		s.GX[i] = g1Gen
		s.GAX[i] = g1Gen
		s.HX[i] = h2Gen
		s.HAX[i] = h2Gen
	}
	return s
}

func (s *USRS) clone() *USRS {
	out := &USRS{
		D:   s.D,
		GX:  make([]bls12381.G1Affine, len(s.GX)),
		GAX: make([]bls12381.G1Affine, len(s.GAX)),
		HX:  make([]bls12381.G2Affine, len(s.HX)),
		HAX: make([]bls12381.G2Affine, len(s.HAX)),
	}
	copy(out.GX, s.GX)
	copy(out.GAX, s.GAX)
	copy(out.HX, s.HX)
	copy(out.HAX, s.HAX)
	return out
}

func (s *USRS) equal(o *USRS) bool {
	if s.D != o.D {
		return false
	}
	for i := range s.GX {
		if !s.GX[i].Equal(&o.GX[i]) || !s.GAX[i].Equal(&o.GAX[i]) {
			return false
		}
		if !s.HX[i].Equal(&o.HX[i]) || !s.HAX[i].Equal(&o.HAX[i]) {
			return false
		}
	}
	return true
}

func (s *USRS) isEmpty() bool {
	return s.equal(New(s.D))
}

// SampleTrapdoor draws a fresh trapdoor (x, alpha) from rng, retrying
// in the cryptographically negligible event that x == 0.
func SampleTrapdoor(rng io.Reader) (x, alpha fr.Element) {
	for {
		x = sigma.RandomFr(rng)
		if !x.IsZero() {
			break
		}
	}
	alpha = sigma.RandomFr(rng)
	return x, alpha
}

func scalarMulG1(p *bls12381.G1Affine, s *fr.Element) bls12381.G1Affine {
	var bi big.Int
	s.BigInt(&bi)
	var out bls12381.G1Affine
	out.ScalarMultiplication(p, &bi)
	return out
}

func scalarMulG2(p *bls12381.G2Affine, s *fr.Element) bls12381.G2Affine {
	var bi big.Int
	s.BigInt(&bi)
	var out bls12381.G2Affine
	out.ScalarMultiplication(p, &bi)
	return out
}

// Permute applies the trapdoor (x, alpha) to s, producing the SRS for
// exponents (x*x0, alpha*alpha0) where (x0, alpha0) are s's own
// ambient exponents. The four elementwise multiplications run in
// parallel. g_ax's center slot (exponent 0) is reset to the generator,
// an "unset" sentinel that verify_structure's batched check must
// never reference.
func (s *USRS) Permute(x, alpha fr.Element) *USRS {
	d := s.D
	out := s.clone()

	powers := make([]fr.Element, d+1)
	invPowers := make([]fr.Element, d+1)
	apowers := make([]fr.Element, d+1)
	invApowers := make([]fr.Element, d+1)

	var xInv fr.Element
	xInv.Inverse(&x)
	powers[0].SetOne()
	invPowers[0].SetOne()
	for i := 1; i <= d; i++ {
		powers[i].Mul(&powers[i-1], &x)
		invPowers[i].Mul(&invPowers[i-1], &xInv)
		apowers[i].Mul(&powers[i], &alpha)
		invApowers[i].Mul(&invPowers[i], &alpha)
	}

	var g errgroup.Group
	g.Go(func() error {
		for i := 1; i <= d; i++ {
			out.GX[d+i] = scalarMulG1(&out.GX[d+i], &powers[i])
			out.GX[d-i] = scalarMulG1(&out.GX[d-i], &invPowers[i])
		}
		return nil
	})
	g.Go(func() error {
		for i := 1; i <= d; i++ {
			out.HX[d+i] = scalarMulG2(&out.HX[d+i], &powers[i])
			out.HX[d-i] = scalarMulG2(&out.HX[d-i], &invPowers[i])
		}
		return nil
	})
	g.Go(func() error {
		for i := 1; i <= d; i++ {
			out.GAX[d+i] = scalarMulG1(&out.GAX[d+i], &apowers[i])
			out.GAX[d-i] = scalarMulG1(&out.GAX[d-i], &invApowers[i])
		}
		out.GAX[d] = g1Gen
		return nil
	})
	g.Go(func() error {
		for i := 1; i <= d; i++ {
			out.HAX[d+i] = scalarMulG2(&out.HAX[d+i], &apowers[i])
			out.HAX[d-i] = scalarMulG2(&out.HAX[d-i], &invApowers[i])
		}
		out.HAX[d] = scalarMulG2(&out.HAX[d], &alpha)
		return nil
	})
	_ = g.Wait()

	return out
}

// pointwiseInvariants checks the four single-equation invariants that
// verify_structure requires in addition to its batched check.
func (s *USRS) pointwiseInvariants() bool {
	d := s.D
	if !s.GX[d].Equal(&g1Gen) || !s.HX[d].Equal(&h2Gen) {
		return false
	}
	if !pairEq(g1Gen, s.HAX[d+1], s.GAX[d+1], h2Gen) {
		return false
	}
	if !pairEq(g1Gen, s.HX[d+1], s.GX[d+1], h2Gen) {
		return false
	}
	if !pairEq(g1Gen, s.HAX[d+1], s.GAX[d-1], s.HX[d+2]) {
		return false
	}
	return true
}

// VerifyStructure checks the pointwise invariants (each its own pairing
// check) and the batched geometric-progression check over two random
// linear combinations, whose four pairings are folded into a single
// Miller loop and final exponentiation. rng supplies the Monte-Carlo coefficients and must
// not be derived from public data.
func (s *USRS) VerifyStructure(rng io.Reader) bool {
	if !s.pointwiseInvariants() {
		return false
	}

	d := s.D
	g0 := make([]bls12381.G1Affine, 0, 4*d-2)
	g0 = append(g0, s.GX[:2*d]...)
	g0 = append(g0, s.GAX[:d-1]...)
	g0 = append(g0, s.GAX[d+1:2*d]...)

	g1 := make([]bls12381.G1Affine, 0, 4*d-2)
	g1 = append(g1, s.GX[1:]...)
	g1 = append(g1, s.GAX[1:d]...)
	g1 = append(g1, s.GAX[d+2:]...)

	h0 := make([]bls12381.G2Affine, 0, 4*d)
	h0 = append(h0, s.HX[:2*d]...)
	h0 = append(h0, s.HAX[:2*d]...)

	h1 := make([]bls12381.G2Affine, 0, 4*d)
	h1 = append(h1, s.HX[1:]...)
	h1 = append(h1, s.HAX[1:]...)

	r0 := make([]fr.Element, len(g0))
	for i := range r0 {
		r0[i] = sigma.RandomFr(rng)
	}
	r1 := make([]fr.Element, len(h0))
	for i := range r1 {
		r1[i] = sigma.RandomFr(rng)
	}

	msmG0 := msm.MSMG1(g0, r0)
	msmG1 := msm.MSMG1(g1, r0)
	msmH0 := msm.MSMG2(h0, r1)
	msmH1 := msm.MSMG2(h1, r1)

	var negHX1 bls12381.G2Affine
	negHX1.Neg(&s.HX[d+1])
	var negGX1 bls12381.G1Affine
	negGX1.Neg(&s.GX[d+1])

	ok, err := pairingCheck(
		[]bls12381.G1Affine{msmG0, msmG1, negGX1, g1Gen},
		[]bls12381.G2Affine{negHX1, h2Gen, msmH0, msmH1},
	)
	return err == nil && ok
}

// Export writes the binary SRS format: an 8-byte little-endian d
// followed by the compressed g_x, g_ax, h_x, h_ax sequences in
// ascending index order. Errors are the writer's own.
func (s *USRS) Export(w io.Writer) error {
	var dBuf [8]byte
	binary.LittleEndian.PutUint64(dBuf[:], uint64(s.D))
	if _, err := w.Write(dBuf[:]); err != nil {
		return err
	}
	for _, p := range s.GX {
		b := p.Bytes()
		if _, err := w.Write(b[:]); err != nil {
			return err
		}
	}
	for _, p := range s.GAX {
		b := p.Bytes()
		if _, err := w.Write(b[:]); err != nil {
			return err
		}
	}
	for _, p := range s.HX {
		b := p.Bytes()
		if _, err := w.Write(b[:]); err != nil {
			return err
		}
	}
	for _, p := range s.HAX {
		b := p.Bytes()
		if _, err := w.Write(b[:]); err != nil {
			return err
		}
	}
	return nil
}

// Import reads the binary format written by Export. Unlike New, a
// malformed dimension is an adversarial-input condition, not a
// programmer error, so it is reported as an error rather than a
// panic.
func Import(r io.Reader) (*USRS, error) {
	var dBuf [8]byte
	if _, err := io.ReadFull(r, dBuf[:]); err != nil {
		return nil, fmt.Errorf("usrs: reading dimension: %w", err)
	}
	d := int(binary.LittleEndian.Uint64(dBuf[:]))
	if d < 2 {
		return nil, fmt.Errorf("usrs: dimension %d below minimum of 2", d)
	}
	if d > maxDimension {
		return nil, fmt.Errorf("usrs: dimension %d exceeds import limit of %d", d, maxDimension)
	}

	n := 2*d + 1
	s := &USRS{
		D:   d,
		GX:  make([]bls12381.G1Affine, n),
		GAX: make([]bls12381.G1Affine, n),
		HX:  make([]bls12381.G2Affine, n),
		HAX: make([]bls12381.G2Affine, n),
	}

	g1Buf := make([]byte, bls12381.SizeOfG1AffineCompressed)
	g2Buf := make([]byte, bls12381.SizeOfG2AffineCompressed)

	readG1 := func(dst []bls12381.G1Affine) error {
		for i := range dst {
			if _, err := io.ReadFull(r, g1Buf); err != nil {
				return fmt.Errorf("usrs: reading G1 element %d: %w", i, err)
			}
			if _, err := dst[i].SetBytes(g1Buf); err != nil {
				return fmt.Errorf("usrs: decoding G1 element %d: %w", i, err)
			}
		}
		return nil
	}
	readG2 := func(dst []bls12381.G2Affine) error {
		for i := range dst {
			if _, err := io.ReadFull(r, g2Buf); err != nil {
				return fmt.Errorf("usrs: reading G2 element %d: %w", i, err)
			}
			if _, err := dst[i].SetBytes(g2Buf); err != nil {
				return fmt.Errorf("usrs: decoding G2 element %d: %w", i, err)
			}
		}
		return nil
	}

	if err := readG1(s.GX); err != nil {
		return nil, err
	}
	if err := readG1(s.GAX); err != nil {
		return nil, err
	}
	if err := readG2(s.HX); err != nil {
		return nil, err
	}
	if err := readG2(s.HAX); err != nil {
		return nil, err
	}
	return s, nil
}

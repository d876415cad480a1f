package sigma

import (
	"io"
	"math/big"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
)

var g1Gen bls12381.G1Affine

func init() {
	_, _, g1Gen, _ = bls12381.Generators()
}

// CurvePair is a pair of G1 elements, the statement (or commitment) of
// the dual proof of exponent.
type CurvePair struct {
	A, B bls12381.G1Affine
}

// FieldPair is a pair of Fr elements: a witness, a challenge, or a
// response, depending on context.
type FieldPair struct {
	A, B fr.Element
}

// Bytes is the canonical encoding of a CurvePair: the concatenation of
// the uncompressed encodings of its two points.
func (p CurvePair) Bytes() []byte {
	a := p.A.RawBytes()
	b := p.B.RawBytes()
	out := make([]byte, 0, len(a)+len(b))
	out = append(out, a[:]...)
	out = append(out, b[:]...)
	return out
}

// leBytes is the little-endian encoding of a field element: the reverse
// of gnark-crypto's big-endian Bytes() representation.
func leBytes(e fr.Element) []byte {
	be := e.Bytes()
	out := make([]byte, len(be))
	for i, v := range be {
		out[len(be)-1-i] = v
	}
	return out
}

// Bytes is the canonical encoding of a FieldPair: the concatenation of
// the little-endian encodings of its two scalars.
func (p FieldPair) Bytes() []byte {
	out := make([]byte, 0, 2*fr.Bytes)
	out = append(out, leBytes(p.A)...)
	out = append(out, leBytes(p.B)...)
	return out
}

// RandomFr samples a field element uniformly from rng via wide
// reduction: 64 bytes of randomness reduced modulo the scalar field
// order, biasing the result by a cryptographically negligible amount.
func RandomFr(rng io.Reader) fr.Element {
	buf := make([]byte, 64)
	if _, err := io.ReadFull(rng, buf); err != nil {
		panic(err)
	}
	bi := new(big.Int).SetBytes(buf)
	bi.Mod(bi, fr.Modulus())
	var e fr.Element
	e.SetBigInt(bi)
	return e
}

// RandomFieldPair samples two independent field elements from rng.
func RandomFieldPair(rng io.Reader) FieldPair {
	return FieldPair{A: RandomFr(rng), B: RandomFr(rng)}
}

// MulGen computes g^s, the G1 generator raised to scalar s.
func MulGen(s fr.Element) bls12381.G1Affine {
	return scalarMulGen(&s)
}

func scalarMulGen(s *fr.Element) bls12381.G1Affine {
	var bi big.Int
	s.BigInt(&bi)
	var out bls12381.G1Affine
	out.ScalarMultiplication(&g1Gen, &bi)
	return out
}

func scalarMulPoint(p *bls12381.G1Affine, s *fr.Element) bls12381.G1Affine {
	var bi big.Int
	s.BigInt(&bi)
	var out bls12381.G1Affine
	out.ScalarMultiplication(p, &bi)
	return out
}

func addAffine(a, b bls12381.G1Affine) bls12381.G1Affine {
	var j bls12381.G1Jac
	j.FromAffine(&a)
	j.AddMixed(&b)
	var out bls12381.G1Affine
	out.FromJacobian(&j)
	return out
}

// Check tests whether x is the statement A = g^a, B = g^b for witness w.
func Check(x CurvePair, w FieldPair) bool {
	a := scalarMulGen(&w.A)
	b := scalarMulGen(&w.B)
	return a.Equal(&x.A) && b.Equal(&x.B)
}

// ProveStep1 samples the blinding FieldPair Z and commits to it as T.
func ProveStep1(rng io.Reader) (z FieldPair, t CurvePair) {
	z = RandomFieldPair(rng)
	t = CurvePair{A: scalarMulGen(&z.A), B: scalarMulGen(&z.B)}
	return z, t
}

// ProveStep2 computes the response R = Z - C*W (componentwise).
func ProveStep2(w, z, c FieldPair) FieldPair {
	var r FieldPair
	var tmp fr.Element
	tmp.Mul(&c.A, &w.A)
	r.A.Sub(&z.A, &tmp)
	tmp.Mul(&c.B, &w.B)
	r.B.Sub(&z.B, &tmp)
	return r
}

// FinishVerify checks g^r + c*A == T_0 and g^s + d*B == T_1.
func FinishVerify(x, t CurvePair, c, r FieldPair) bool {
	tPrimeA := addAffine(scalarMulGen(&r.A), scalarMulPoint(&x.A, &c.A))
	tPrimeB := addAffine(scalarMulGen(&r.B), scalarMulPoint(&x.B, &c.B))
	return tPrimeA.Equal(&t.A) && tPrimeB.Equal(&t.B)
}

// Extract recovers the witness from two accepting transcripts sharing
// the same commitment T but distinct challenges, by special soundness:
// a = (r1.A - r2.A) / (c2.A - c1.A), and likewise for b.
func Extract(c1, c2 FieldPair, r1, r2 FieldPair) FieldPair {
	var da, db, num fr.Element
	da.Sub(&c2.A, &c1.A)
	db.Sub(&c2.B, &c1.B)

	var a, b fr.Element
	num.Sub(&r1.A, &r2.A)
	da.Inverse(&da)
	a.Mul(&num, &da)

	num.Sub(&r1.B, &r2.B)
	db.Inverse(&db)
	b.Mul(&num, &db)

	return FieldPair{A: a, B: b}
}

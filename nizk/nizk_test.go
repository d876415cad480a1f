package nizk

import (
	"testing"

	"github.com/giuliop/usrs/ro"
	"github.com/giuliop/usrs/sigma"
)

func newRng(seed string) *ro.Output {
	return ro.New(ro.SHA3RO{}, []byte(seed))
}

func TestImplicitAlwaysAccepts(t *testing.T) {
	e := Implicit{}
	rng := newRng("implicit")
	var x sigma.CurvePair
	var w sigma.FieldPair
	pi := e.Prove(x, w, rng)
	if !e.Verify(x, pi) {
		t.Fatalf("Implicit.Verify rejected")
	}
}

func TestFiatShamirRoundTrip(t *testing.T) {
	rng := newRng("fiat-shamir")
	w := sigma.RandomFieldPair(rng)
	x := sigma.CurvePair{
		A: sigma.MulGen(w.A),
		B: sigma.MulGen(w.B),
	}

	e := FiatShamir{}
	proof := e.Prove(x, w, rng)
	if !e.Verify(x, proof) {
		t.Fatalf("Fiat-Shamir proof failed to verify")
	}
}

func TestFiatShamirRejectsTamperedProof(t *testing.T) {
	rng := newRng("fiat-shamir-tamper")
	w := sigma.RandomFieldPair(rng)
	x := sigma.CurvePair{
		A: sigma.MulGen(w.A),
		B: sigma.MulGen(w.B),
	}

	e := FiatShamir{}
	proof := e.Prove(x, w, rng)
	proof.R.A.Add(&proof.R.A, &proof.R.A)
	if e.Verify(x, proof) {
		t.Fatalf("Fiat-Shamir accepted a tampered proof")
	}
}

func TestFischlinRoundTrip(t *testing.T) {
	rng := newRng("fischlin")
	w := sigma.RandomFieldPair(rng)
	x := sigma.CurvePair{
		A: sigma.MulGen(w.A),
		B: sigma.MulGen(w.B),
	}

	e := Fischlin{}
	proof := e.Prove(x, w, rng)
	if len(proof) != Repetitions {
		t.Fatalf("expected %d repetitions, got %d", Repetitions, len(proof))
	}
	if !e.Verify(x, proof) {
		t.Fatalf("Fischlin proof failed to verify")
	}
}

func TestFischlinRejectsWrongLength(t *testing.T) {
	rng := newRng("fischlin-length")
	w := sigma.RandomFieldPair(rng)
	x := sigma.CurvePair{
		A: sigma.MulGen(w.A),
		B: sigma.MulGen(w.B),
	}

	e := Fischlin{}
	proof := e.Prove(x, w, rng)
	short := proof[:len(proof)-1]
	if e.Verify(x, short) {
		t.Fatalf("Fischlin accepted a proof with missing repetitions")
	}
}

func TestFischlinDeterministicGivenSeed(t *testing.T) {
	w := sigma.RandomFieldPair(newRng("fischlin-det-witness"))
	x := sigma.CurvePair{
		A: sigma.MulGen(w.A),
		B: sigma.MulGen(w.B),
	}

	e := Fischlin{}
	proofA := e.Prove(x, w, newRng("fischlin-det"))
	proofB := e.Prove(x, w, newRng("fischlin-det"))

	if len(proofA) != len(proofB) {
		t.Fatalf("proof length mismatch across identical seeds")
	}
	for i := range proofA {
		if proofA[i].J != proofB[i].J || proofA[i].R != proofB[i].R {
			t.Fatalf("repetition %d diverged across identical seeds", i)
		}
	}
}

package usrs

import (
	"testing"

	"github.com/giuliop/usrs/nizk"
)

func TestAggregateEmptyAcceptsFreshSRS(t *testing.T) {
	agg := NewAggregateUpdate[nizk.FiatShamirProof](4)
	if !agg.Verify(nizk.FiatShamir{}, newRng("empty-aggregate")) {
		t.Fatalf("empty aggregate with a fresh SRS did not verify")
	}

	agg.SRS = agg.SRS.Permute(SampleTrapdoor(newRng("empty-aggregate-mutate")))
	if agg.Verify(nizk.FiatShamir{}, newRng("empty-aggregate-mutate-verify")) {
		t.Fatalf("empty aggregate verified against a non-fresh SRS")
	}
}

func TestAggregateSoundnessMatchesPairwise(t *testing.T) {
	engine := nizk.FiatShamir{}
	d := 4
	srs := New(d)
	agg := NewAggregateUpdate[nizk.FiatShamirProof](d)

	const chainLen = 5
	srsChain := []*USRS{srs}
	updates := make([]*Update[nizk.FiatShamirProof], 0, chainLen)
	chainRng := newRng("aggregate-chain")
	for i := 0; i < chainLen; i++ {
		upd := NewUpdate[nizk.FiatShamirProof](engine, srsChain[len(srsChain)-1], chainRng)
		updates = append(updates, upd)
		agg.Append(upd)
		srsChain = append(srsChain, upd.SRS)
	}

	if !agg.Verify(engine, newRng("aggregate-verify")) {
		t.Fatalf("aggregate of honest updates failed to verify")
	}

	for i, upd := range updates {
		if !upd.Verify(engine, srsChain[i], newRng("pairwise-verify")) {
			t.Fatalf("pairwise verify of update %d failed", i)
		}
	}
}

func TestAggregateRejectsCorruptedUpdate(t *testing.T) {
	engine := nizk.FiatShamir{}
	d := 4
	agg := NewAggregateUpdate[nizk.FiatShamirProof](d)

	srs := New(d)
	const chainLen = 3
	chainRng := newRng("aggregate-corrupt-chain")
	for i := 0; i < chainLen; i++ {
		upd := NewUpdate[nizk.FiatShamirProof](engine, srs, chainRng)
		agg.Append(upd)
		srs = upd.SRS
	}

	agg.Parts[1].Pi.R.A.Add(&agg.Parts[1].Pi.R.A, &agg.Parts[1].Pi.R.A)
	if agg.Verify(engine, newRng("aggregate-corrupt-verify")) {
		t.Fatalf("aggregate accepted a chain with a corrupted update")
	}
}

package nizk

import (
	"github.com/giuliop/usrs/ro"
	"github.com/giuliop/usrs/sigma"
)

// Engine is a non-interactive zero-knowledge proof scheme over the dual
// proof of exponent statement/witness pair, parameterized by its own
// proof type P. rng is exclusively owned by the call for its duration.
type Engine[P any] interface {
	Prove(x sigma.CurvePair, w sigma.FieldPair, rng *ro.Output) P
	Verify(x sigma.CurvePair, proof P) bool
}

func hashRng(h ro.RO, parts ...[]byte) *ro.Output {
	return ro.NewFromRaw(h, h.SeqQuery(parts...))
}

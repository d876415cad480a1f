package nizk

import (
	"github.com/giuliop/usrs/ro"
	"github.com/giuliop/usrs/sigma"
)

// Implicit is the knowledge-of-exponent NIZK: knowledge of a statement
// that lies in the relation is taken as sufficient proof of knowledge
// of the witness, so there is nothing to prove or check.
type Implicit struct{}

// Prove returns the empty proof.
func (Implicit) Prove(_ sigma.CurvePair, _ sigma.FieldPair, _ *ro.Output) struct{} {
	return struct{}{}
}

// Verify always accepts.
func (Implicit) Verify(_ sigma.CurvePair, _ struct{}) bool {
	return true
}

package nizk

import (
	"encoding/binary"

	"golang.org/x/sync/errgroup"

	"github.com/giuliop/usrs/ro"
	"github.com/giuliop/usrs/sigma"
)

// Fischlin transform constants. These are the constants from Fischlin's
// original paper plus two repetitions, chosen to reach 128-bit security.
const (
	Repetitions = 12
	Samples     = 0x8000
	ZeroBits    = 11
	Sum         = 12
)

// FischlinTuple is a single repetition's transcript: the commitment,
// the index of the sample that satisfied the low-bits check, and the
// corresponding response.
type FischlinTuple struct {
	T sigma.CurvePair
	J uint16
	R sigma.FieldPair
}

// Fischlin applies Fischlin's online-extractable transform to the dual
// proof of exponent: every repetition searches, sequentially, for a
// challenge/response pair whose hash has few enough low bits, and the
// REPETITIONS searches run data-parallel.
type Fischlin struct {
	H ro.RO
}

func (f Fischlin) oracle() ro.RO {
	if f.H == nil {
		return ro.SHA3RO{}
	}
	return f.H
}

func (f Fischlin) challenge(x sigma.CurvePair, t sigma.CurvePair, i uint8, j uint16) sigma.FieldPair {
	var ib [1]byte
	ib[0] = i
	var jb [2]byte
	binary.LittleEndian.PutUint16(jb[:], j)
	rng := hashRng(f.oracle(), x.Bytes(), t.Bytes(), ib[:], jb[:])
	return sigma.RandomFieldPair(rng)
}

// fischlinBits reads the first four bytes of the hash as a big-endian
// u32 and keeps the top ZeroBits bits.
func fischlinBits(raw ro.RawOutput) uint32 {
	word := uint32(raw[0])<<24 | uint32(raw[1])<<16 | uint32(raw[2])<<8 | uint32(raw[3])
	return word >> (32 - ZeroBits)
}

func (f Fischlin) lowBits(t sigma.CurvePair, c, r sigma.FieldPair) uint32 {
	raw := f.oracle().SeqQuery(t.Bytes(), c.Bytes(), r.Bytes())
	return fischlinBits(raw)
}

// proveRepetition runs one of the REPETITIONS independent transcript
// searches to completion, as a pure function of x, w and its own rng,
// and reports the low-bits count the search settled on.
func (f Fischlin) proveRepetition(x sigma.CurvePair, w sigma.FieldPair, i int, rng *ro.Output) (FischlinTuple, uint32) {
	z, t := sigma.ProveStep1(rng)

	var minR sigma.FieldPair
	minVal := uint32(1<<32 - 1)
	minIdx := 0
	found := false

	for j := 0; j < Samples; j++ {
		c := f.challenge(x, t, uint8(i), uint16(j))
		r := sigma.ProveStep2(w, z, c)
		bits := f.lowBits(t, c, r)
		if !found || bits < minVal {
			minR = r
			minVal = bits
			minIdx = j
			found = true
			if bits == 0 {
				break
			}
		}
	}
	return FischlinTuple{T: t, J: uint16(minIdx), R: minR}, minVal
}

// proveOnce splits rng into REPETITIONS independent children,
// sequentially and in a fixed order, then runs the REPETITIONS
// transcript searches in parallel: the resulting proof is independent
// of thread scheduling. It also returns the sum of the repetitions'
// low-bits counts, which Prove uses to decide whether to retry.
func (f Fischlin) proveOnce(x sigma.CurvePair, w sigma.FieldPair, rng *ro.Output) ([]FischlinTuple, uint32) {
	children := make([]*ro.Output, Repetitions)
	for i := range children {
		children[i] = rng.Split()
	}

	results := make([]FischlinTuple, Repetitions)
	bits := make([]uint32, Repetitions)
	var g errgroup.Group
	for i := 0; i < Repetitions; i++ {
		i := i
		g.Go(func() error {
			results[i], bits[i] = f.proveRepetition(x, w, i, children[i])
			return nil
		})
	}
	_ = g.Wait()

	var sum uint32
	for _, b := range bits {
		sum += b
	}
	return results, sum
}

// Prove runs proveOnce and, with negligible but nonzero probability,
// finds its REPETITIONS searches summed to more low-bits than SUM
// allows. Rather than accept a proof Verify would reject, it draws a
// fresh child rng via Split and retries: a pure, deterministic function
// of rng's state, so repeated calls on an identically-seeded rng always
// retry the same number of times.
func (f Fischlin) Prove(x sigma.CurvePair, w sigma.FieldPair, rng *ro.Output) []FischlinTuple {
	for {
		results, sum := f.proveOnce(x, w, rng)
		if sum <= Sum {
			return results
		}
		rng = rng.Split()
	}
}

// Verify recomputes each repetition's challenge, checks the sigma
// protocol's verification equation, and accepts iff the sum of all
// repetitions' low-bits counts is at most SUM.
func (f Fischlin) Verify(x sigma.CurvePair, proof []FischlinTuple) bool {
	if len(proof) != Repetitions {
		return false
	}

	valid := make([]bool, Repetitions)
	bits := make([]uint32, Repetitions)
	var g errgroup.Group
	for i := 0; i < Repetitions; i++ {
		i := i
		g.Go(func() error {
			tup := proof[i]
			c := f.challenge(x, tup.T, uint8(i), tup.J)
			if !sigma.FinishVerify(x, tup.T, c, tup.R) {
				return nil
			}
			bits[i] = f.lowBits(tup.T, c, tup.R)
			valid[i] = true
			return nil
		})
	}
	_ = g.Wait()

	var sum uint32
	for i := 0; i < Repetitions; i++ {
		if !valid[i] {
			return false
		}
		sum += bits[i]
	}
	return sum <= Sum
}

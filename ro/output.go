package ro

import "encoding/binary"

// Output is a deterministic block PRNG seeded from one RawOutput. Each
// block is produced by seq_query([raw, ctr]) with ctr a little-endian
// u64 that increments after every block, then parsed as little-endian
// u32 words. It implements io.Reader so callers can rejection-sample
// field elements (or anything else) from its byte stream.
type Output struct {
	h   RO
	raw RawOutput
	ctr uint64

	words []uint32
	pos   int
}

// New derives an Output by querying h with seed, then wrapping the
// result as a block PRNG.
func New(h RO, seed []byte) *Output {
	return NewFromRaw(h, h.Query(seed))
}

// NewFromRaw wraps an already-computed RawOutput as a block PRNG.
func NewFromRaw(h RO, raw RawOutput) *Output {
	return &Output{h: h, raw: raw}
}

// Raw returns the seed this generator was constructed from.
func (o *Output) Raw() RawOutput { return o.raw }

// nextBlock derives and returns the next raw block, advancing ctr.
func (o *Output) nextBlock() RawOutput {
	var ctrBytes [8]byte
	binary.LittleEndian.PutUint64(ctrBytes[:], o.ctr)
	o.ctr++
	return o.h.SeqQuery(o.raw[:], ctrBytes[:])
}

func (o *Output) refill() {
	block := o.nextBlock()
	n := len(block) / 4
	o.words = make([]uint32, n)
	for i := 0; i < n; i++ {
		o.words[i] = binary.LittleEndian.Uint32(block[i*4 : i*4+4])
	}
	o.pos = 0
}

func (o *Output) nextWord() uint32 {
	if o.words == nil || o.pos >= len(o.words) {
		o.refill()
	}
	w := o.words[o.pos]
	o.pos++
	return w
}

// Read fills p from the block PRNG's word stream. It always fills p
// completely and never returns an error.
func (o *Output) Read(p []byte) (int, error) {
	n := 0
	for n < len(p) {
		var wb [4]byte
		binary.LittleEndian.PutUint32(wb[:], o.nextWord())
		n += copy(p[n:], wb[:])
	}
	return n, nil
}

// Split derives an independent child generator from the next raw block
// of o's output, advancing o's state. Sibling calls to Split are
// independent of one another and of the parent's subsequent Read calls.
func (o *Output) Split() *Output {
	return NewFromRaw(o.h, o.nextBlock())
}

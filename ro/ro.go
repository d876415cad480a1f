package ro

import (
	"golang.org/x/crypto/sha3"
)

// RawSize is the length in bytes of a RawOutput produced by the
// reference SHA3-256 instantiation.
const RawSize = 32

// RawOutput is the fixed-length output of a random oracle query.
type RawOutput [RawSize]byte

// RO is a fixed-length random oracle: query hashes a byte string, and
// seq_query is equivalent to querying the flat concatenation of its
// arguments without materializing that concatenation.
type RO interface {
	Query(data []byte) RawOutput
	SeqQuery(parts ...[]byte) RawOutput
}

// SHA3RO is the reference RO instantiation, SHA3-256.
type SHA3RO struct{}

// Query hashes data with SHA3-256.
func (SHA3RO) Query(data []byte) RawOutput {
	return SHA3RO{}.SeqQuery(data)
}

// SeqQuery hashes the concatenation of parts with SHA3-256.
func (SHA3RO) SeqQuery(parts ...[]byte) RawOutput {
	h := sha3.New256()
	for _, p := range parts {
		h.Write(p)
	}
	var out RawOutput
	copy(out[:], h.Sum(nil))
	return out
}

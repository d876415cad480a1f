// Package usrs implements a universal updatable structured reference
// string (USRS) of the kind consumed by Sonic-family pairing SNARKs: a
// degree-d reference string over BLS12-381, its trapdoor permutation,
// a structural verifier, and the per-contributor update protocol and
// its batched aggregate verifier built on top of package nizk.
package usrs

// Package sigma implements the dual proof-of-exponent sigma protocol that
// backs every NIZK engine in package nizk: given a pair of G1 elements
// (A, B), prove knowledge of the discrete logs (a, b) such that A = g^a
// and B = g^b, without revealing them.
package sigma

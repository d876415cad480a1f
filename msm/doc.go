// Package msm computes multi-scalar multiplications over BLS12-381 G1
// and G2 using a windowed (Pippenger) bucket method, with windows
// reduced in parallel. It underlies the batched pairing checks in
// package usrs.
package msm

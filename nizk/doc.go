// Package nizk provides three interchangeable non-interactive
// zero-knowledge proof engines over the dual proof of exponent sigma
// protocol from package sigma: the implicit (knowledge-of-exponent)
// engine, the Fiat-Shamir transform, and the Fischlin transform. All
// three share the Engine interface so package usrs can be generic over
// which one backs an update.
package nizk

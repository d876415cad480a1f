// Package ro implements the random oracle abstraction the rest of this
// module builds on: a fixed-length hash (query / seq_query) and a
// deterministic block PRNG derived from one of its outputs, with a
// split primitive for seeding independent child generators.
package ro

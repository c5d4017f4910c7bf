// Package dpf implements a two-party Distributed Point Function: the
// GGM-tree construction of Boyle, Gilboa and Ishai ("Function Secret
// Sharing: Improvements and Extensions", CCS '16), as revised in the 2018
// ePrint version (https://eprint.iacr.org/2018/707.pdf).
//
// A dealer (Gen) builds two keys from a special point alpha and one or more
// non-zero outputs beta_1..beta_k. Each key evaluates, on its own, to an
// additive share of f_{alpha,beta}(x) for any x; the two parties' shares sum
// to beta at x=alpha and to zero everywhere else.
package dpf

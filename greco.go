/*
Package greco generates the public constants and the private witness of a zero-knowledge
proof that a ciphertext is a valid BFV public-key encryption.

Given an RLWE encryption instance over an RNS ring Z_q[X]/(X^N+1), the witness is the
decomposition of the first ciphertext component over the integers, one row per modulus qi:

	ct0i = pk0i*sk + e + r1i*qi + r2i*(X^N+1)

The bounds are the ranges that the coefficients of the witness must lie in, along with
a tag binding the proof to its parameters. See the packages polynomial, vectors and
bounds for the computations, and the generator package and cmd/greco for the end-to-end
generation of the circuit files.
*/
package greco

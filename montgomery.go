// Package montgomery implements Montgomery modular arithmetic for the
// ML-KEM (Kyber) prime q = 3329 with radix R = 2^16.
//
// Montgomery reduction replaces division by q with a 16-bit multiply, a
// 32-bit multiply and an arithmetic shift. It is the primitive underneath
// polynomial arithmetic in lattice-based schemes.
//
// Two domains are involved:
//   - ordinary domain: a value a represents a mod q
//   - Montgomery domain: a value x represents x * R^(-1) mod q, i.e. a is
//     stored as a*R mod q
//
// Basic usage:
//
//	p := montgomery.Mul(1234, 2345)       // 1234*2345 mod q, in [0, q)
//	x := montgomery.ToMontgomery(1234)     // 1234*R mod q
//	y := montgomery.ToMontgomery(2345)
//	z := montgomery.FieldMul(x, y)         // product, still in Montgomery form
//	p = montgomery.FromMontgomery(z)       // back to [0, q)
//
// None of the functions validate their inputs. Each one documents the input
// range for which its result is correct; outside that range the intermediate
// int32 arithmetic wraps and the result is meaningless.
package montgomery

// Modulus and radix.
const (
	// Q is the prime modulus 3329 = 13*2^8 + 1.
	Q = 3329

	// LogR is log2 of the Montgomery radix.
	LogR = 16

	// R is the Montgomery radix 2^16.
	R = 1 << LogR

	// MaxInput bounds the inputs of Reduce: for |a| < MaxInput the result
	// lies in (-Q, Q).
	MaxInput = Q << (LogR - 1)
)

// q^(-1) mod 2^16, by Newton iteration x' = x*(2 - q*x) mod 2^16.
// Any odd q is its own inverse mod 2^3, and every step doubles the number of
// correct low bits: 3, 6, 12, 24 >= 16.
const (
	qInv3  = Q
	qInv6  = (qInv3 * (2 - Q*qInv3)) & (R - 1)
	qInv12 = (qInv6 * (2 - Q*qInv6)) & (R - 1)
	qInv24 = (qInv12 * (2 - Q*qInv12)) & (R - 1)
)

// Derived constants.
const (
	// QInv satisfies Q*QInv = 1 mod R. It is stored as the signed 16-bit
	// representative (-3327) so that it can be used directly in int16
	// arithmetic.
	QInv = ((qInv24 + R/2) & (R - 1)) - R/2

	// RSquared is R^2 mod Q (1353), the pre-scale factor of ToMontgomery.
	RSquared = (R * R) % Q

	// Mont is R mod Q (2285), the Montgomery form of 1.
	Mont = R % Q
)

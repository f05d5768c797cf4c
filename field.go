package montgomery

// Reduce performs Montgomery reduction: it returns r with r = a * R^(-1) mod q.
// For |a| < MaxInput the result lies in (-Q, Q). Inputs in [0, Q*R) still
// satisfy the congruence but the result may reach up to 3Q/2.
func Reduce(a int32) int16 {
	// m = (a mod R) * q^(-1) mod R; both the truncation and the int16
	// multiply wrap.
	m := int16(a) * QInv
	// a - m*q is divisible by R, so the shift is exact.
	return int16((a - int32(m)*Q) >> LogR)
}

// Canonicalize maps a in (-Q, 2Q) to the representative of a mod q in [0, Q).
// It does not branch on a.
func Canonicalize(a int16) int16 {
	// Add q if a is negative.
	a += (a >> 15) & Q
	// Subtract q, then add it back on underflow.
	a -= Q
	a += (a >> 15) & Q
	return a
}

// ToMontgomery returns a*R mod q in (-Q, Q). Any int16 is accepted.
func ToMontgomery(a int16) int16 {
	return Reduce(int32(a) * RSquared)
}

// FromMontgomery converts x = a*R mod q back to a mod q in [0, Q).
// Any int16 is accepted.
func FromMontgomery(x int16) int16 {
	return Canonicalize(Reduce(int32(x)))
}

// Mul returns (a * b) mod q in [0, Q) for ordinary-domain operands.
// Any int16 values are accepted.
//
// b is moved to the Montgomery domain with a plain modular reduction so
// that a single Montgomery reduction of the product cancels the R factor.
// Callers multiplying many values by the same operand should convert it once
// with ToMontgomery and use FieldMul instead.
func Mul(a, b int16) int16 {
	bScaled := (int32(b) * R) % Q
	bScaled += (bScaled >> 31) & Q
	return Canonicalize(Reduce(int32(a) * bScaled))
}

// FieldMul returns a * b * R^(-1) mod q in (-Q, Q) for a, b in (-Q, Q). When
// both operands are in Montgomery form, so is the result.
func FieldMul(a, b int16) int16 {
	return Reduce(int32(a) * int32(b))
}

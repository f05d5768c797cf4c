package montgomery

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// egcd returns g = gcd(a, b) and x, y with a*x + b*y = g.
func egcd(a, b int64) (g, x, y int64) {
	x0, x1 := int64(1), int64(0)
	y0, y1 := int64(0), int64(1)
	for b != 0 {
		k := a / b
		a, b = b, a-k*b
		x0, x1 = x1, x0-k*x1
		y0, y1 = y1, y0-k*y1
	}
	return a, x0, y0
}

func TestModulusAndRadix(t *testing.T) {
	assert.Equal(t, 1, Q%2, "q must be odd")
	assert.Less(t, Q, 1<<12, "q must fit in 12 bits")
	assert.Greater(t, R, Q)
	assert.Equal(t, 0, R&(R-1), "R must be a power of two")
	assert.True(t, big.NewInt(Q).ProbablyPrime(20))

	g, _, _ := egcd(R, Q)
	assert.Equal(t, int64(1), g, "gcd(R, q)")
}

func TestQInv(t *testing.T) {
	// Extended Euclid: Q*x + R*y = 1, so Q*x = 1 mod R.
	g, x, _ := egcd(Q, R)
	require.Equal(t, int64(1), g)
	x %= R
	if x < 0 {
		x += R
	}
	if x >= R/2 {
		x -= R
	}
	assert.Equal(t, x, int64(QInv), "extended Euclid")

	inv := new(big.Int).ModInverse(big.NewInt(Q), big.NewInt(R))
	assert.Equal(t, inv.Int64(), int64(QInv)&(R-1), "big.Int.ModInverse")

	assert.Equal(t, int64(-3327), int64(QInv))
	assert.Equal(t, int64(1), (int64(Q)*int64(QInv))&(R-1), "q*QInv mod R")

	// QInv is a valid int16 and the int16 product wraps to the same residue.
	var q16, inv16 int16 = Q, QInv
	assert.Equal(t, int16(1), q16*inv16)
}

func TestDerivedConstants(t *testing.T) {
	r := big.NewInt(R)
	q := big.NewInt(Q)

	r2 := new(big.Int).Mul(r, r)
	r2.Mod(r2, q)
	assert.Equal(t, r2.Int64(), int64(RSquared))
	assert.Equal(t, int64(1353), int64(RSquared))

	assert.Equal(t, new(big.Int).Mod(r, q).Int64(), int64(Mont))
	assert.Equal(t, int64(2285), int64(Mont))

	assert.Equal(t, int64(Q)<<15, int64(MaxInput))
}

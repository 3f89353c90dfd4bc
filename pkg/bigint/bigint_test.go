package bigint_test

import (
	"math/big"
	"testing"

	"github.com/cronokirby/saferith"
	"github.com/luxfi/gg20/pkg/bigint"
	"github.com/stretchr/testify/require"
)

func natFromDecimal(t *testing.T, s string) *saferith.Nat {
	t.Helper()
	bi, ok := new(big.Int).SetString(s, 10)
	require.True(t, ok)
	return new(saferith.Nat).SetBytes(bi.Bytes())
}

func TestModInverse(t *testing.T) {
	testCases := []struct {
		name     string
		a, n     uint64
		expected uint64
	}{
		{"small", 15, 26, 7},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			a := new(saferith.Nat).SetUint64(tc.a)
			n := bigint.NewModulus(tc.n)
			inv, err := bigint.ModInverse(a, n)
			require.NoError(t, err)
			require.EqualValues(t, tc.expected, inv.Big().Uint64())
		})
	}
}

func TestModInverseLarge(t *testing.T) {
	n := natFromDecimal(t, "102112097946582615631136147902109156622653898419035298906688331069201061233983")
	p := natFromDecimal(t, "115792089237316195423570985008687907852837564279074904382605163141518161494337")
	expected := natFromDecimal(t, "25474184976837862363894976995466454035326651076879946883050318548976065133305")

	mod := saferith.ModulusFromNat(p)
	inv, err := bigint.ModInverse(n, mod)
	require.NoError(t, err)
	require.Equal(t, 1, inv.Eq(expected))
}

func TestModSqrt(t *testing.T) {
	a := new(saferith.Nat).SetUint64(223)
	p := bigint.NewModulus(17)
	root, ok := bigint.ModSqrt(a, p)
	require.True(t, ok)
	// sqrt(223, 17): either 6 or 11 (17-6) is a valid root.
	six := new(saferith.Nat).SetUint64(6)
	eleven := new(saferith.Nat).SetUint64(11)
	require.True(t, root.Eq(six) == 1 || root.Eq(eleven) == 1)
}

func TestIsPrime(t *testing.T) {
	require.True(t, bigint.IsPrime(new(saferith.Nat).SetUint64(97)))
	require.False(t, bigint.IsPrime(new(saferith.Nat).SetUint64(100)))
	require.True(t, bigint.IsPrime(new(saferith.Nat).SetUint64(997)))
}

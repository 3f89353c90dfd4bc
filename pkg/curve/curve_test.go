package curve_test

import (
	"math/big"
	"testing"

	"github.com/cronokirby/saferith"
	"github.com/luxfi/gg20/pkg/curve"
	"github.com/stretchr/testify/require"
)

func natFromHex(t *testing.T, s string) *saferith.Nat {
	t.Helper()
	bi, ok := new(big.Int).SetString(s, 16)
	require.True(t, ok)
	return new(saferith.Nat).SetBytes(bi.Bytes())
}

func TestGeneratorTimesOrderIsIdentity(t *testing.T) {
	_, g, n := curve.Secp256k1()
	result := g.ScalarMul(n.Nat())
	require.True(t, result.IsIdentity())
}

func TestScalarMulFixture(t *testing.T) {
	c, g, _ := curve.Secp256k1()

	px := natFromHex(t, "9577FF57C8234558F293DF502CA4F09CBC65A6572C842B39B366F21717945116")
	py := natFromHex(t, "10B49C67FA9365AD7B90DAB070BE339A1DAF9052373EC30FFAE4F72D5E66D053")
	field := curve.NewField(secp256k1Modulus())
	expected, err := c.NewPoint(curve.NewFieldElement(px, field), curve.NewFieldElement(py, field))
	require.NoError(t, err)

	e := new(saferith.Nat).Lsh(new(saferith.Nat).SetUint64(1), 240, -1)
	e = new(saferith.Nat).Add(e, new(saferith.Nat).Lsh(new(saferith.Nat).SetUint64(1), 31, -1), -1)

	result := g.ScalarMul(e)
	require.True(t, result.Equal(expected))
}

func secp256k1Modulus() *saferith.Modulus {
	p := natFromHexPkg("FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFEFFFFFC2F")
	return saferith.ModulusFromNat(p)
}

func natFromHexPkg(s string) *saferith.Nat {
	bi, _ := new(big.Int).SetString(s, 16)
	return new(saferith.Nat).SetBytes(bi.Bytes())
}

func TestECDSAVerifyFixture(t *testing.T) {
	c, _, _ := curve.Secp256k1()
	field := curve.NewField(secp256k1Modulus())

	pubX := natFromHex(t, "887387E452B8EACC4ACFDE10D9AAF7F6D9A0F975AABB10D006E4DA568744D06C")
	pubY := natFromHex(t, "61DE6D95231CD89026E286DF3B6AE4A894A3378E393E93A0F45B666329A0AE34")
	pub, err := c.NewPoint(curve.NewFieldElement(pubX, field), curve.NewFieldElement(pubY, field))
	require.NoError(t, err)

	z := natFromHex(t, "EC208BAA0FC1C19F708A9CA96FDEFF3AC3F230BB4A7BA4AEDE4942AD003C0F60")
	r := natFromHex(t, "AC8D1C87E51D0D441BE8B3DD5B05C8795B48875DFFE00B7FFCFAC23010D3A395")
	s := natFromHex(t, "68342CEFF8935EDEDD102DD876FFD6BA72D6A427A3EDB13D26EB0781CB423C4")

	sig := curve.Signature{R: curve.NewScalar(r), S: curve.NewScalar(s)}
	require.True(t, sig.Verify(z, pub))
}

func TestSignAndVerifyRoundTrip(t *testing.T) {
	secret := new(saferith.Nat).SetUint64(424242)
	priv := curve.NewPrivateKey(secret)
	pub := priv.PublicKey()

	z := new(saferith.Nat).SetUint64(1234567890)
	sig, err := priv.Sign(z)
	require.NoError(t, err)
	require.True(t, sig.Verify(z, pub))
}

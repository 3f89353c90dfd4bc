package curve

import (
	"fmt"
	"math/big"

	"github.com/cronokirby/saferith"
)

var (
	secp256k1Field     *Field
	secp256k1Curve     *Curve
	secp256k1Generator Point
	secp256k1Order     *saferith.Modulus
)

// mustNatFromHex parses a hex literal (no 0x prefix) into a
// saferith.Nat. Parsing goes through math/big purely as a literal
// decoder for the constants below; all arithmetic remains on
// saferith types.
func mustNatFromHex(hex string) *saferith.Nat {
	bi, ok := new(big.Int).SetString(hex, 16)
	if !ok {
		panic("curve: invalid secp256k1 constant")
	}
	return new(saferith.Nat).SetBytes(bi.Bytes())
}

func init() {
	p := mustNatFromHex("FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFEFFFFFC2F")
	secp256k1Field = NewField(saferith.ModulusFromNat(p))

	a := secp256k1Field.Zero()
	b := NewFieldElement(new(saferith.Nat).SetUint64(7), secp256k1Field)
	secp256k1Curve = &Curve{A: a, B: b, Field: secp256k1Field}

	gx := NewFieldElement(mustNatFromHex("79BE667EF9DCBBAC55A06295CE870B07029BFCDB2DCE28D959F2815B16F81798"), secp256k1Field)
	gy := NewFieldElement(mustNatFromHex("483ADA7726A3C4655DA4FBFC0E1108A8FD17B448A68554199C47D08FFB10D4B8"), secp256k1Field)
	g, err := secp256k1Curve.NewPoint(gx, gy)
	if err != nil {
		panic("curve: secp256k1 generator is not on curve: " + err.Error())
	}
	secp256k1Generator = g

	n := mustNatFromHex("FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFEBAAEDCE6AF48A03BBFD25E8CD0364141")
	secp256k1Order = saferith.ModulusFromNat(n)
}

// Secp256k1 returns the curve, generator point, and group order for
// secp256k1.
func Secp256k1() (*Curve, Point, *saferith.Modulus) {
	return secp256k1Curve, secp256k1Generator, secp256k1Order
}

// Scalar is a value in Z_q, where q is the secp256k1 group order.
type Scalar struct {
	value *saferith.Nat
}

// ScalarField returns the modulus used to reduce Scalar values.
func ScalarField() *saferith.Modulus {
	return secp256k1Order
}

// NewScalar reduces v modulo the group order.
func NewScalar(v *saferith.Nat) Scalar {
	return Scalar{value: new(saferith.Nat).Mod(v, secp256k1Order)}
}

// Nat exposes the underlying reduced value.
func (s Scalar) Nat() *saferith.Nat {
	return s.value
}

// Add returns s + other mod q.
func (s Scalar) Add(other Scalar) Scalar {
	return Scalar{value: new(saferith.Nat).ModAdd(s.value, other.value, secp256k1Order)}
}

// Sub returns s - other mod q.
func (s Scalar) Sub(other Scalar) Scalar {
	return Scalar{value: new(saferith.Nat).ModSub(s.value, other.value, secp256k1Order)}
}

// Mul returns s * other mod q.
func (s Scalar) Mul(other Scalar) Scalar {
	return Scalar{value: new(saferith.Nat).ModMul(s.value, other.value, secp256k1Order)}
}

// Inverse returns s^-1 mod q.
func (s Scalar) Inverse() (Scalar, error) {
	inv, invertible := new(saferith.Nat).ModInverse(s.value, secp256k1Order)
	if invertible == 0 {
		return Scalar{}, ErrInvalidPoint
	}
	return Scalar{value: inv}, nil
}

// ActOnBase returns s*G, the generator scaled by this scalar.
func (s Scalar) ActOnBase() Point {
	return secp256k1Generator.ScalarMul(s.value)
}

// Act returns s*p.
func (s Scalar) Act(p Point) Point {
	return p.ScalarMul(s.value)
}

// Equal reports value equality.
func (s Scalar) Equal(other Scalar) bool {
	return s.value.Eq(other.value) == 1
}

// IsZero reports whether s is the zero scalar.
func (s Scalar) IsZero() bool {
	return s.value.EqZero() == 1
}

func (s Scalar) String() string {
	return fmt.Sprintf("0x%x", s.value.Bytes())
}

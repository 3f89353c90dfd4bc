package curve

import (
	"errors"

	"github.com/cronokirby/saferith"
)

// ErrInvalidPoint is returned when constructing a point whose affine
// coordinates do not satisfy the curve equation.
var ErrInvalidPoint = errors.New("curve: point is not on curve")

// ErrNotOnCurve is returned by operations that require both operands
// to belong to the same curve instance.
var ErrNotOnCurve = errors.New("curve: points belong to different curves")

// Curve is a short Weierstrass curve y^2 = x^3 + a*x + b over a prime
// field.
type Curve struct {
	A, B  FieldElement
	Field *Field
}

// Point is an affine point on a Curve, or the identity (point at
// infinity) when infinity is true.
type Point struct {
	x, y     FieldElement
	infinity bool
	curve    *Curve
}

// Identity returns the point at infinity on c.
func (c *Curve) Identity() Point {
	return Point{infinity: true, curve: c}
}

// NewPoint constructs an affine point, returning ErrInvalidPoint if
// (x, y) does not lie on the curve.
func (c *Curve) NewPoint(x, y FieldElement) (Point, error) {
	lhs := y.Mul(y)
	rhs := x.Mul(x).Mul(x).Add(c.A.Mul(x)).Add(c.B)
	if !lhs.Equal(rhs) {
		return Point{}, ErrInvalidPoint
	}
	return Point{x: x, y: y, curve: c}, nil
}

// IsIdentity reports whether p is the point at infinity.
func (p Point) IsIdentity() bool {
	return p.infinity
}

// X returns the affine x-coordinate. Panics on the identity point.
func (p Point) X() FieldElement {
	if p.infinity {
		panic("curve: identity point has no x-coordinate")
	}
	return p.x
}

// Y returns the affine y-coordinate. Panics on the identity point.
func (p Point) Y() FieldElement {
	if p.infinity {
		panic("curve: identity point has no y-coordinate")
	}
	return p.y
}

func (p Point) sameCurve(other Point) error {
	if p.curve != other.curve {
		return ErrNotOnCurve
	}
	return nil
}

// Equal reports whether p and other are the same point.
func (p Point) Equal(other Point) bool {
	if p.curve != other.curve {
		return false
	}
	if p.infinity || other.infinity {
		return p.infinity == other.infinity
	}
	return p.x.Equal(other.x) && p.y.Equal(other.y)
}

// Neg returns the additive inverse of p.
func (p Point) Neg() Point {
	if p.infinity {
		return p
	}
	return Point{x: p.x, y: p.y.Neg(), curve: p.curve}
}

// Add implements the chord-and-tangent group law.
func (p Point) Add(other Point) (Point, error) {
	if err := p.sameCurve(other); err != nil {
		return Point{}, err
	}
	if p.infinity {
		return other, nil
	}
	if other.infinity {
		return p, nil
	}
	if p.x.Equal(other.x) && p.y.Equal(other.y.Neg()) {
		return p.curve.Identity(), nil
	}

	var slope FieldElement
	if !p.x.Equal(other.x) {
		slope = other.y.Sub(p.y).Div(other.x.Sub(p.x))
	} else if p.y.Equal(other.y) {
		two := new(saferith.Nat).SetUint64(2)
		three := new(saferith.Nat).SetUint64(3)
		numerator := p.x.Mul(p.x).Mul(NewFieldElement(three, p.curve.Field)).Add(p.curve.A)
		denominator := NewFieldElement(two, p.curve.Field).Mul(p.y)
		slope = numerator.Div(denominator)
	} else {
		return p.curve.Identity(), nil
	}

	x3 := slope.Mul(slope).Sub(p.x).Sub(other.x)
	y3 := slope.Mul(p.x.Sub(x3)).Sub(p.y)
	return Point{x: x3, y: y3, curve: p.curve}, nil
}

// MarshalBinary encodes p in uncompressed form: a single 0x00 byte
// for the identity, or 0x04 || X || Y (32 bytes each) otherwise.
func (p Point) MarshalBinary() ([]byte, error) {
	if p.infinity {
		return []byte{0x00}, nil
	}
	out := make([]byte, 1+32+32)
	out[0] = 0x04
	copy(out[1:33], p.x.Bytes(32))
	copy(out[33:65], p.y.Bytes(32))
	return out, nil
}

// UnmarshalPoint decodes a point previously produced by
// (Point).MarshalBinary on curve c.
func UnmarshalPoint(c *Curve, data []byte) (Point, error) {
	if len(data) == 1 && data[0] == 0x00 {
		return c.Identity(), nil
	}
	if len(data) != 1+32+32 || data[0] != 0x04 {
		return Point{}, ErrInvalidPoint
	}
	x := NewFieldElement(new(saferith.Nat).SetBytes(data[1:33]), c.Field)
	y := NewFieldElement(new(saferith.Nat).SetBytes(data[33:65]), c.Field)
	return c.NewPoint(x, y)
}

// ScalarMul computes scalar*p via double-and-add. scalar must be
// non-negative; values are reduced by callers against the group order
// before calling this.
func (p Point) ScalarMul(scalar *saferith.Nat) Point {
	result := p.curve.Identity()
	current := p
	// iterate bits from least-significant to most-significant
	n := new(saferith.Nat).SetNat(scalar)
	two := new(saferith.Nat).SetUint64(2)
	twoMod := saferith.ModulusFromNat(two)
	for n.EqZero() != 1 {
		bit := new(saferith.Nat).Mod(n, twoMod)
		if bit.Eq(new(saferith.Nat).SetUint64(1)) == 1 {
			sum, _ := result.Add(current)
			result = sum
		}
		doubled, _ := current.Add(current)
		current = doubled
		n = new(saferith.Nat).Rsh(n, 1, -1)
	}
	return result
}

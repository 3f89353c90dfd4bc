// Package curve implements secp256k1 field and point arithmetic, in
// the generic affine-coordinate style the rest of this module relies
// on: arithmetic errors surface as Go errors rather than panics, and
// every operation is expressed over explicit FieldElement/Point values
// rather than an opaque constant-time curve implementation.
package curve

import (
	"fmt"

	"github.com/cronokirby/saferith"
)

// Field is a prime field Z_p.
type Field struct {
	p *saferith.Modulus
}

// NewField constructs the field Z_p for the given prime modulus.
func NewField(p *saferith.Modulus) *Field {
	return &Field{p: p}
}

// FieldElement is a value in Z_p.
type FieldElement struct {
	value *saferith.Nat
	field *Field
}

// NewFieldElement reduces v modulo the field's prime and wraps it.
func NewFieldElement(v *saferith.Nat, f *Field) FieldElement {
	reduced := new(saferith.Nat).Mod(v, f.p)
	return FieldElement{value: reduced, field: f}
}

// Zero returns the additive identity of f.
func (f *Field) Zero() FieldElement {
	return NewFieldElement(new(saferith.Nat).SetUint64(0), f)
}

// sameField reports whether e and other belong to fields with the same
// prime modulus, whether or not they share a *Field instance.
func (e FieldElement) sameField(other FieldElement) bool {
	return e.field == other.field || e.field.p.Nat().Eq(other.field.p.Nat()) == 1
}

func (e FieldElement) checkField(other FieldElement) {
	if !e.sameField(other) {
		panic("curve: mismatched field elements")
	}
}

// Add returns e + other mod p.
func (e FieldElement) Add(other FieldElement) FieldElement {
	e.checkField(other)
	sum := new(saferith.Nat).ModAdd(e.value, other.value, e.field.p)
	return FieldElement{value: sum, field: e.field}
}

// Sub returns e - other mod p.
func (e FieldElement) Sub(other FieldElement) FieldElement {
	e.checkField(other)
	diff := new(saferith.Nat).ModSub(e.value, other.value, e.field.p)
	return FieldElement{value: diff, field: e.field}
}

// Mul returns e * other mod p.
func (e FieldElement) Mul(other FieldElement) FieldElement {
	e.checkField(other)
	prod := new(saferith.Nat).ModMul(e.value, other.value, e.field.p)
	return FieldElement{value: prod, field: e.field}
}

// Pow returns e^exponent mod p.
func (e FieldElement) Pow(exponent *saferith.Nat) FieldElement {
	r := new(saferith.Nat).Exp(e.value, exponent, e.field.p)
	return FieldElement{value: r, field: e.field}
}

// Neg returns -e mod p.
func (e FieldElement) Neg() FieldElement {
	zero := new(saferith.Nat).SetUint64(0)
	r := new(saferith.Nat).ModSub(zero, e.value, e.field.p)
	return FieldElement{value: r, field: e.field}
}

// Inverse returns e^-1 mod p. Panics if e is zero, matching the
// original source's behavior of letting pow(0, -1, p) raise.
func (e FieldElement) Inverse() FieldElement {
	inv, invertible := new(saferith.Nat).ModInverse(e.value, e.field.p)
	if invertible == 0 {
		panic("curve: cannot invert zero field element")
	}
	return FieldElement{value: inv, field: e.field}
}

// Div returns e / other, i.e. e * other^-1.
func (e FieldElement) Div(other FieldElement) FieldElement {
	return e.Mul(other.Inverse())
}

// IsZero reports whether e is the additive identity.
func (e FieldElement) IsZero() bool {
	return e.value.EqZero() == 1
}

// Equal reports value equality within the same field.
func (e FieldElement) Equal(other FieldElement) bool {
	return e.sameField(other) && e.value.Eq(other.value) == 1
}

// Nat exposes the underlying saferith.Nat, e.g. for ModSqrt/bigint
// interop.
func (e FieldElement) Nat() *saferith.Nat {
	return e.value
}

// Bytes returns the big-endian encoding of e, zero-padded to size
// bytes. Panics if e does not fit in size bytes.
func (e FieldElement) Bytes(size int) []byte {
	raw := e.value.Bytes()
	if len(raw) > size {
		panic("curve: field element does not fit in requested byte size")
	}
	out := make([]byte, size)
	copy(out[size-len(raw):], raw)
	return out
}

func (e FieldElement) String() string {
	return fmt.Sprintf("0x%x", e.value.Bytes())
}

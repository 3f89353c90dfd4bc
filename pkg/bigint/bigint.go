// Package bigint centralizes all arbitrary-precision integer arithmetic
// used by the rest of this module on top of saferith.Nat/Modulus, so
// that any saferith API-shape concern stays isolated to one package.
package bigint

import (
	"crypto/rand"
	"errors"

	"github.com/cronokirby/saferith"
)

// ErrNotCoprime is returned when a modular inverse is requested for
// a value that shares a common factor with the modulus.
var ErrNotCoprime = errors.New("bigint: value is not coprime with modulus")

// NewModulus builds a saferith.Modulus from a uint64, primarily for
// tests and small fixed moduli (e.g. curve constants assembled from
// literals).
func NewModulus(n uint64) *saferith.Modulus {
	return saferith.ModulusFromNat(new(saferith.Nat).SetUint64(n))
}

// ExtendedEuclid computes integers x, y, g such that a*x + b*y = g,
// with g = gcd(a, b). Mirrors the textbook iterative extended
// Euclidean algorithm.
func ExtendedEuclid(a, b *saferith.Int) (x, y, g *saferith.Int) {
	oldR, r := a, b
	oldS, s := saferith.NewInt(1), saferith.NewInt(0)
	oldT, t := saferith.NewInt(0), saferith.NewInt(1)

	for r.Sign() != 0 {
		q := new(saferith.Int).SetInt(oldR)
		q = q.Div(q, r)

		newR := new(saferith.Int).SetInt(oldR)
		newR = newR.Sub(newR, new(saferith.Int).Mul(q, r))
		oldR, r = r, newR

		newS := new(saferith.Int).SetInt(oldS)
		newS = newS.Sub(newS, new(saferith.Int).Mul(q, s))
		oldS, s = s, newS

		newT := new(saferith.Int).SetInt(oldT)
		newT = newT.Sub(newT, new(saferith.Int).Mul(q, t))
		oldT, t = t, newT
	}

	return oldS, oldT, oldR
}

// ModInverse returns a^-1 mod n, or ErrNotCoprime if gcd(a, n) != 1.
func ModInverse(a *saferith.Nat, n *saferith.Modulus) (*saferith.Nat, error) {
	inv, invertible := new(saferith.Nat).ModInverse(a, n)
	if invertible == 0 {
		return nil, ErrNotCoprime
	}
	return inv, nil
}

// RandomInRange returns a uniformly random Nat in [lo, hi).
func RandomInRange(lo, hi *saferith.Nat) (*saferith.Nat, error) {
	span := new(saferith.Nat).ModSub(hi, lo, saferith.ModulusFromNat(hi))
	mod := saferith.ModulusFromNat(span)
	buf := make([]byte, (mod.BitLen()+7)/8+8)
	if _, err := rand.Read(buf); err != nil {
		return nil, err
	}
	n := new(saferith.Nat).SetBytes(buf)
	n.Mod(n, mod)
	return new(saferith.Nat).Add(n, lo, -1), nil
}

// CoprimeRandom samples a uniformly random value in [1, n) that is
// coprime with n, retrying on collision. Used for Paillier's
// per-encryption blinding factor r.
func CoprimeRandom(n *saferith.Modulus) (*saferith.Nat, error) {
	one := new(saferith.Nat).SetUint64(1)
	nNat := n.Nat()
	for {
		r, err := RandomInRange(one, nNat)
		if err != nil {
			return nil, err
		}
		if _, err := ModInverse(r, n); err == nil {
			return r, nil
		}
	}
}

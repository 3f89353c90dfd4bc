package bigint

import "github.com/cronokirby/saferith"

// ModSqrt computes a square root of a modulo p using Tonelli-Shanks,
// returning (root, true) if a exists is a quadratic residue mod p,
// or (nil, false) if it is not. The returned boolean disambiguates
// "no square root exists" from "the square root is zero".
func ModSqrt(a *saferith.Nat, p *saferith.Modulus) (*saferith.Nat, bool) {
	zero := new(saferith.Nat).SetUint64(0)
	if a.EqZero() == 1 {
		return zero, true
	}

	one := new(saferith.Nat).SetUint64(1)
	two := new(saferith.Nat).SetUint64(2)

	if !isResidue(a, p) {
		return nil, false
	}

	pNat := p.Nat()
	pMinusOne := new(saferith.Nat).ModSub(pNat, one, p)

	// p % 4 == 3 fast path: root = a^((p+1)/4) mod p.
	four := new(saferith.Nat).SetUint64(4)
	pMod4 := new(saferith.Nat).Mod(pNat, saferith.ModulusFromNat(four))
	three := new(saferith.Nat).SetUint64(3)
	if pMod4.Eq(three) == 1 {
		exp := new(saferith.Nat).Add(pNat, one, -1)
		exp = new(saferith.Nat).Rsh(exp, 2, -1)
		root := new(saferith.Nat).Exp(a, exp, p)
		return root, true
	}

	// General Tonelli-Shanks: write p-1 = q * 2^s with q odd.
	q := new(saferith.Nat).SetNat(pMinusOne)
	s := 0
	for isEven(q) {
		q = new(saferith.Nat).Rsh(q, 1, -1)
		s++
	}

	z := findNonResidue(p)
	m := s
	c := new(saferith.Nat).Exp(z, q, p)
	qPlusOneHalf := new(saferith.Nat).Add(q, one, -1)
	qPlusOneHalf = new(saferith.Nat).Rsh(qPlusOneHalf, 1, -1)
	t := new(saferith.Nat).Exp(a, q, p)
	r := new(saferith.Nat).Exp(a, qPlusOneHalf, p)

	for t.Eq(one) != 1 {
		i := 0
		tt := new(saferith.Nat).SetNat(t)
		for tt.Eq(one) != 1 {
			tt = new(saferith.Nat).ModMul(tt, tt, p)
			i++
		}

		b := new(saferith.Nat).SetNat(c)
		for j := 0; j < m-i-1; j++ {
			b = new(saferith.Nat).ModMul(b, b, p)
		}

		m = i
		c = new(saferith.Nat).ModMul(b, b, p)
		t = new(saferith.Nat).ModMul(t, c, p)
		r = new(saferith.Nat).ModMul(r, b, p)
	}

	_ = two
	return r, true
}

func isResidue(a *saferith.Nat, p *saferith.Modulus) bool {
	one := new(saferith.Nat).SetUint64(1)
	pNat := p.Nat()
	pMinusOne := new(saferith.Nat).ModSub(pNat, one, p)
	exp := new(saferith.Nat).Rsh(pMinusOne, 1, -1)
	legendre := new(saferith.Nat).Exp(a, exp, p)
	return legendre.Eq(one) == 1
}

func findNonResidue(p *saferith.Modulus) *saferith.Nat {
	candidate := new(saferith.Nat).SetUint64(2)
	for isResidue(candidate, p) {
		candidate = new(saferith.Nat).Add(candidate, new(saferith.Nat).SetUint64(1), -1)
	}
	return candidate
}

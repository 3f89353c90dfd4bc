// Package paillier implements the Paillier cryptosystem used by the
// GG20 MtA sub-protocol for additively homomorphic encryption under a
// per-party long-term key.
package paillier

import (
	"errors"

	"github.com/cronokirby/saferith"
	"github.com/luxfi/gg20/pkg/bigint"
)

// ErrPlaintextTooLarge is returned by Encrypt when the plaintext
// exceeds the key's configured bit-size budget.
var ErrPlaintextTooLarge = errors.New("paillier: plaintext too large")

// ErrInvalidCiphertext is returned by Decrypt and the homomorphic
// operations when a ciphertext is not below n^2.
var ErrInvalidCiphertext = errors.New("paillier: invalid ciphertext")

// DefaultBits is the default modulus size, matching the original
// source's DEFAULT_BITS.
const DefaultBits = 3072

// PublicKey is a Paillier public key.
type PublicKey struct {
	N        *saferith.Modulus
	NSquared *saferith.Modulus
	G        *saferith.Nat
	Bits     int
}

// PrivateKey is a Paillier private key: the prime factorization of n,
// plus the derived decryption exponent lambda and mu = lambda^-1 mod n.
type PrivateKey struct {
	Public *PublicKey
	P, Q   *saferith.Nat
	Lambda *saferith.Nat
	Mu     *saferith.Nat
}

// GenerateKeyPair samples two random primes of size/2 bits each and
// derives the corresponding Paillier key pair. Unlike the original
// source, the per-ciphertext blinding factor r is NOT fixed here: it
// is freshly sampled on every Encrypt call (see Open Question 1 in
// DESIGN.md).
func GenerateKeyPair(size int) (*PublicKey, *PrivateKey, error) {
	var p, q *saferith.Nat
	var n *saferith.Nat

	for {
		var err error
		p, err = bigint.PrimeOfNBits(size / 2)
		if err != nil {
			return nil, nil, err
		}
		for {
			q, err = bigint.PrimeOfNBits(size / 2)
			if err != nil {
				return nil, nil, err
			}
			if q.Eq(p) != 1 {
				break
			}
		}
		n = new(saferith.Nat).Mul(p, q, -1)
		if n.TrueBitLen() == size {
			break
		}
	}

	nMod := saferith.ModulusFromNat(n)
	nSquared := saferith.ModulusFromNat(new(saferith.Nat).Mul(n, n, -1))
	g := new(saferith.Nat).Add(n, new(saferith.Nat).SetUint64(1), -1)

	one := new(saferith.Nat).SetUint64(1)
	pMinusOne := new(saferith.Nat).Sub(p, one, -1)
	qMinusOne := new(saferith.Nat).Sub(q, one, -1)
	lambda := new(saferith.Nat).Mul(pMinusOne, qMinusOne, -1)

	mu, err := bigint.ModInverse(lambda, nMod)
	if err != nil {
		return nil, nil, err
	}

	pub := &PublicKey{N: nMod, NSquared: nSquared, G: g, Bits: size}
	priv := &PrivateKey{Public: pub, P: p, Q: q, Lambda: lambda, Mu: mu}
	return pub, priv, nil
}

// Ciphertext is a Paillier ciphertext, a residue mod n^2.
type Ciphertext struct {
	C *saferith.Nat
}

// Encrypt computes g^pt * r^n mod n^2 for a freshly sampled r
// coprime with n, returning ErrPlaintextTooLarge if pt exceeds the
// key's configured bit budget.
func (pub *PublicKey) Encrypt(pt *saferith.Nat) (Ciphertext, error) {
	if pt.TrueBitLen() > pub.Bits {
		return Ciphertext{}, ErrPlaintextTooLarge
	}

	r, err := bigint.CoprimeRandom(pub.N)
	if err != nil {
		return Ciphertext{}, err
	}

	gm := new(saferith.Nat).Exp(pub.G, pt, pub.NSquared)
	rn := new(saferith.Nat).Exp(r, pub.N.Nat(), pub.NSquared)
	c := new(saferith.Nat).ModMul(gm, rn, pub.NSquared)
	return Ciphertext{C: c}, nil
}

// validCiphertext reports whether c is a canonical residue mod
// nSquared, i.e. c < n^2. Ciphertexts arriving off the wire
// (receive.go's MtA handlers) are untrusted and must pass this check
// before being fed to Exp/ModMul.
func validCiphertext(c *saferith.Nat, nSquared *saferith.Modulus) bool {
	reduced := new(saferith.Nat).Mod(c, nSquared)
	return reduced.Eq(c) == 1
}

// HomomorphicAdd returns an encryption of (m1 + pt) given an
// encryption of m1, via ciphertext multiplication.
func (pub *PublicKey) HomomorphicAdd(ct Ciphertext, pt *saferith.Nat) (Ciphertext, error) {
	if !validCiphertext(ct.C, pub.NSquared) {
		return Ciphertext{}, ErrInvalidCiphertext
	}

	ptCt, err := pub.Encrypt(pt)
	if err != nil {
		return Ciphertext{}, err
	}
	c := new(saferith.Nat).ModMul(ct.C, ptCt.C, pub.NSquared)
	return Ciphertext{C: c}, nil
}

// HomomorphicAddCiphertexts returns an encryption of (m1 + m2) given
// encryptions of m1 and m2.
func (pub *PublicKey) HomomorphicAddCiphertexts(a, b Ciphertext) (Ciphertext, error) {
	if !validCiphertext(a.C, pub.NSquared) || !validCiphertext(b.C, pub.NSquared) {
		return Ciphertext{}, ErrInvalidCiphertext
	}
	c := new(saferith.Nat).ModMul(a.C, b.C, pub.NSquared)
	return Ciphertext{C: c}, nil
}

// HomomorphicMultiply returns an encryption of (m1 * pt) given an
// encryption of m1, via ciphertext exponentiation.
func (pub *PublicKey) HomomorphicMultiply(ct Ciphertext, pt *saferith.Nat) (Ciphertext, error) {
	if !validCiphertext(ct.C, pub.NSquared) {
		return Ciphertext{}, ErrInvalidCiphertext
	}
	c := new(saferith.Nat).Exp(ct.C, pt, pub.NSquared)
	return Ciphertext{C: c}, nil
}

// Decrypt recovers the plaintext underlying ct, returning
// ErrInvalidCiphertext if ct is not a valid residue mod n^2.
func (priv *PrivateKey) Decrypt(ct Ciphertext) (*saferith.Nat, error) {
	if !validCiphertext(ct.C, priv.Public.NSquared) {
		return nil, ErrInvalidCiphertext
	}

	cLambda := new(saferith.Nat).Exp(ct.C, priv.Lambda, priv.Public.NSquared)
	l := lFunction(cLambda, priv.Public.N)
	nMod := priv.Public.N
	m := new(saferith.Nat).ModMul(l, priv.Mu, nMod)
	return m, nil
}

// lFunction computes (x-1)/n for x a residue mod n^2, as an exact
// integer division.
func lFunction(x *saferith.Nat, n *saferith.Modulus) *saferith.Nat {
	one := new(saferith.Nat).SetUint64(1)
	xMinusOne := new(saferith.Nat).Sub(x, one, -1)
	return new(saferith.Nat).Div(xMinusOne, n.Nat(), -1)
}

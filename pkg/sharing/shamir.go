// Package sharing implements Shamir secret sharing over the
// secp256k1 scalar field Z_q.
package sharing

import (
	"crypto/rand"
	"errors"

	"github.com/cronokirby/saferith"
	"github.com/luxfi/gg20/pkg/curve"
)

// ErrInsufficientShares is returned when Recover is given fewer
// shares than required to reconstruct the polynomial.
var ErrInsufficientShares = errors.New("sharing: insufficient shares to recover secret")

// ErrDuplicateShareIndex is returned when two shares passed to
// Recover carry the same x-coordinate.
var ErrDuplicateShareIndex = errors.New("sharing: duplicate share index")

// Share is a single evaluation (x, f(x)) of the sharing polynomial.
type Share struct {
	Index curve.Scalar
	Value curve.Scalar
}

// Split generates n shares of secret using a degree t-1 polynomial
// whose constant term is secret, evaluated at x = 1..n.
func Split(secret curve.Scalar, n, t int) ([]Share, error) {
	if t > n {
		return nil, errors.New("sharing: threshold exceeds party count")
	}

	coefficients := make([]curve.Scalar, t)
	coefficients[0] = secret
	q := curve.ScalarField()
	for i := 1; i < t; i++ {
		c, err := randomNonZeroScalar(q)
		if err != nil {
			return nil, err
		}
		coefficients[i] = c
	}

	shares := make([]Share, n)
	for i := 1; i <= n; i++ {
		x := curve.NewScalar(new(saferith.Nat).SetUint64(uint64(i)))
		shares[i-1] = Share{Index: x, Value: evaluatePolynomial(coefficients, x)}
	}
	return shares, nil
}

func evaluatePolynomial(coefficients []curve.Scalar, x curve.Scalar) curve.Scalar {
	acc := coefficients[0]
	xPower := curve.NewScalar(new(saferith.Nat).SetUint64(1))
	for i := 1; i < len(coefficients); i++ {
		xPower = xPower.Mul(x)
		acc = acc.Add(coefficients[i].Mul(xPower))
	}
	return acc
}

func randomNonZeroScalar(q *saferith.Modulus) (curve.Scalar, error) {
	for {
		buf := make([]byte, (q.BitLen()+7)/8+8)
		if _, err := rand.Read(buf); err != nil {
			return curve.Scalar{}, err
		}
		n := new(saferith.Nat).SetBytes(buf)
		s := curve.NewScalar(n)
		if !s.IsZero() {
			return s, nil
		}
	}
}

// Recover reconstructs the secret (f(0)) via Lagrange interpolation
// over the given shares. At least t shares (the threshold used at
// split time) must be supplied by the caller; Recover itself only
// requires at least one share and distinct indices, matching the
// original source's recover_secret which performs no threshold
// bookkeeping of its own.
func Recover(shares []Share) (curve.Scalar, error) {
	if len(shares) == 0 {
		return curve.Scalar{}, ErrInsufficientShares
	}
	for i := range shares {
		for j := range shares {
			if i != j && shares[i].Index.Equal(shares[j].Index) {
				return curve.Scalar{}, ErrDuplicateShareIndex
			}
		}
	}

	zero := curve.NewScalar(new(saferith.Nat).SetUint64(0))
	secret := zero
	for i := range shares {
		term := shares[i].Value
		for j := range shares {
			if i == j {
				continue
			}
			diff := shares[j].Index.Sub(shares[i].Index)
			diffInv, err := diff.Inverse()
			if err != nil {
				return curve.Scalar{}, err
			}
			coeff := shares[j].Index.Mul(diffInv)
			term = term.Mul(coeff)
		}
		secret = secret.Add(term)
	}
	return secret, nil
}

package curve

import (
	"crypto/rand"

	"github.com/cronokirby/saferith"
)

// PrivateKey is a single, non-threshold secp256k1 ECDSA private key:
// the single-key reference scheme whose Signature.Verify also checks
// the distributed signatures.
type PrivateKey struct {
	Secret Scalar
}

// NewPrivateKey wraps a raw secret as a PrivateKey, reducing it mod
// the group order.
func NewPrivateKey(secret *saferith.Nat) PrivateKey {
	return PrivateKey{Secret: NewScalar(secret)}
}

// PublicKey returns secret*G.
func (k PrivateKey) PublicKey() Point {
	return k.Secret.ActOnBase()
}

// Signature is an ECDSA (r, s) pair.
type Signature struct {
	R, S Scalar
}

// Sign produces an ECDSA signature over digest z using a freshly
// sampled per-signature nonce k.
func (k PrivateKey) Sign(z *saferith.Nat) (Signature, error) {
	q := ScalarField()
	for {
		buf := make([]byte, (q.BitLen()+7)/8+8)
		if _, err := rand.Read(buf); err != nil {
			return Signature{}, err
		}
		kNat := new(saferith.Nat).SetBytes(buf)
		kNat = new(saferith.Nat).Mod(kNat, q)
		if kNat.EqZero() == 1 {
			continue
		}
		k2 := NewScalar(kNat)

		R := k2.ActOnBase()
		if R.IsIdentity() {
			continue
		}
		r := NewScalar(R.X().Nat())
		if r.IsZero() {
			continue
		}

		kInv, err := k2.Inverse()
		if err != nil {
			continue
		}

		zScalar := NewScalar(z)
		s := kInv.Mul(zScalar.Add(r.Mul(k.Secret)))
		if s.IsZero() {
			continue
		}

		return Signature{R: r, S: s}, nil
	}
}

// Verify checks sig against digest z and public key pub.
func (sig Signature) Verify(z *saferith.Nat, pub Point) bool {
	sInv, err := sig.S.Inverse()
	if err != nil {
		return false
	}
	zScalar := NewScalar(z)
	u := zScalar.Mul(sInv)
	v := sig.R.Mul(sInv)

	uG := u.ActOnBase()
	vPub := v.Act(pub)
	sum, err := uG.Add(vPub)
	if err != nil {
		return false
	}
	if sum.IsIdentity() {
		return false
	}
	return NewScalar(sum.X().Nat()).Equal(sig.R)
}

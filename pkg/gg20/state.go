package gg20

import (
	"github.com/luxfi/gg20/pkg/curve"
	"github.com/luxfi/gg20/pkg/paillier"
	"github.com/luxfi/gg20/pkg/party"
)

// Parameters configures a GG20 run: security levels and the (n, t)
// threshold structure. The curve is fixed to secp256k1.
type Parameters struct {
	// SecurityParameter sets, via 5*SecurityParameter, the MtA
	// blinding factor beta' range.
	SecurityParameter int
	// PaillierSecurityParameter is the Paillier modulus bit size.
	PaillierSecurityParameter int
	// PartyIDs is the full set of key-generation participants.
	PartyIDs party.IDSlice
	// Threshold is the minimum signer-set size t+1 required to sign,
	// matching spec's (t, n) convention where t is the Shamir
	// polynomial degree.
	Threshold int
}

// KeyGenState holds a participant's accumulated key-generation
// material, both its own and what it has received from counterparts.
type KeyGenState struct {
	PaillierPublic  *paillier.PublicKey
	PaillierPrivate *paillier.PrivateKey

	SecretKeyShare curve.Scalar
	Shares         map[party.ID]curve.Scalar // this participant's Shamir shares, one per recipient

	Y    curve.Point // secret_key_share * G
	X    curve.Scalar
	BigX curve.Point

	OtherY                  map[party.ID]curve.Point
	OtherShares             map[party.ID]curve.Scalar
	OtherPaillierPublicKeys map[party.ID]*paillier.PublicKey
}

func newKeyGenState() *KeyGenState {
	return &KeyGenState{
		Shares:                  make(map[party.ID]curve.Scalar),
		OtherY:                  make(map[party.ID]curve.Point),
		OtherShares:             make(map[party.ID]curve.Scalar),
		OtherPaillierPublicKeys: make(map[party.ID]*paillier.PublicKey),
	}
}

// SigningState holds a participant's per-session signing material.
type SigningState struct {
	W       curve.Scalar
	K       curve.Scalar
	Message []byte

	Gamma                curve.Scalar
	GammaElliptic         curve.Point
	GammaEllipticSummed   curve.Point
	haveGammaSummed       bool

	SignerIDs map[party.ID]struct{}

	DeltaI    curve.Scalar
	Delta     curve.Scalar
	haveDelta bool
	DeltaByID map[party.ID]curve.Scalar

	SigmaI  curve.Scalar
	LittleR curve.Scalar

	SByID map[party.ID]curve.Scalar

	MtAOutputsAsInitiator1 map[party.ID]curve.Scalar
	MtAOutputsAsReceiver1  map[party.ID]curve.Scalar
	MtAOutputsAsInitiator2 map[party.ID]curve.Scalar
	MtAOutputsAsReceiver2  map[party.ID]curve.Scalar
}

func newSigningState(message []byte, signerIDs map[party.ID]struct{}) *SigningState {
	return &SigningState{
		Message:                message,
		SignerIDs:              signerIDs,
		DeltaByID:              make(map[party.ID]curve.Scalar),
		SByID:                  make(map[party.ID]curve.Scalar),
		MtAOutputsAsInitiator1: make(map[party.ID]curve.Scalar),
		MtAOutputsAsReceiver1:  make(map[party.ID]curve.Scalar),
		MtAOutputsAsInitiator2: make(map[party.ID]curve.Scalar),
		MtAOutputsAsReceiver2:  make(map[party.ID]curve.Scalar),
	}
}

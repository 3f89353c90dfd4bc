// Package transport defines the wire-level messages exchanged by GG20
// participants and the Delegate capability interface used to send
// them.
package transport

import (
	"github.com/luxfi/gg20/pkg/party"
)

// Kind discriminates the tagged Message variants.
type Kind int

const (
	// KeyGenBroadcast carries a participant's Paillier public
	// modulus and public share point y_i during key generation.
	KeyGenBroadcast Kind = iota
	// KeyGenP2P carries a participant's Shamir share of its secret,
	// sent privately to one other participant.
	KeyGenP2P
	// MtAP2P1 initiates the first (k_i, gamma_j) MtA instance.
	MtAP2P1
	// MtAP2P1Response completes the first MtA instance.
	MtAP2P1Response
	// MtAP2P2 initiates the second (k_i, w_j) MtA instance.
	MtAP2P2
	// MtAP2P2Response completes the second MtA instance.
	MtAP2P2Response
	// PostMtABroadcast carries a participant's delta_i contribution
	// after all MtA instances for a signing session have completed.
	PostMtABroadcast
	// SigningShare carries a participant's final partial signature
	// share s_i.
	SigningShare
)

// Message is the closed sum type over every wire message GG20
// exchanges. Exactly one of the payload fields is populated,
// according to Kind.
type Message struct {
	Kind Kind

	KeyGenBroadcast *KeyGenBroadcastPayload `cbor:"1,keyasint,omitempty"`
	KeyGenP2P       *KeyGenP2PPayload       `cbor:"2,keyasint,omitempty"`
	MtA1            *MtAInitPayload         `cbor:"3,keyasint,omitempty"`
	MtA1Response    *MtAResponsePayload     `cbor:"4,keyasint,omitempty"`
	MtA2            *MtAInitPayload         `cbor:"5,keyasint,omitempty"`
	MtA2Response    *MtAResponsePayload     `cbor:"6,keyasint,omitempty"`
	PostMtA         *PostMtAPayload         `cbor:"7,keyasint,omitempty"`
	SigningShare    *SigningSharePayload    `cbor:"8,keyasint,omitempty"`
}

// KeyGenBroadcastPayload is broadcast by every participant during
// key generation: its public share y_i = x_i*G and its Paillier
// public key.
type KeyGenBroadcastPayload struct {
	Y         []byte
	PaillierN []byte
}

// KeyGenP2PPayload carries a Shamir share of the sender's secret,
// privately addressed to one recipient.
type KeyGenP2PPayload struct {
	ShareValue []byte
}

// MtAInitPayload initiates an MtA instance: the initiator's
// encryption of its secret value under its own Paillier key.
type MtAInitPayload struct {
	SessionTag string
	Ciphertext []byte
}

// MtAResponsePayload completes an MtA instance: the receiver's
// encryption of a*b + beta' under the initiator's Paillier key.
type MtAResponsePayload struct {
	SessionTag string
	Ciphertext []byte
}

// PostMtAPayload is broadcast once a signer has completed all MtA
// instances for the current signing session: its delta_i share and
// its nonce commitment point Gamma_i.
type PostMtAPayload struct {
	SessionTag    string
	DeltaI        []byte
	GammaElliptic []byte
}

// SigningSharePayload carries a signer's final partial signature
// share s_i for a completed signing session.
type SigningSharePayload struct {
	SessionTag string
	S          []byte
}

// Delegate is the capability a Participant uses to exchange messages
// with its counterparties, without knowing how they are transported.
type Delegate interface {
	Broadcast(sender party.ID, msg Message) error
	Send(sender, recipient party.ID, msg Message) error
}

// Package gg20 implements the GG20 (Gennaro-Goldfeder 2020)
// threshold-ECDSA participant state machine over secp256k1: key
// generation, signing via two parallel MtA share conversions per
// counterparty, and aggregation into a standard ECDSA signature.
//
// This implementation provides semi-honest security only: it does not
// include the zero-knowledge range proofs over Paillier ciphertexts
// or Paillier key well-formedness proofs the original GG20 paper
// requires for malicious security.
package gg20

import (
	"fmt"
	"sync"

	"github.com/cronokirby/saferith"
	"github.com/luxfi/gg20/pkg/bigint"
	"github.com/luxfi/gg20/pkg/curve"
	"github.com/luxfi/gg20/pkg/paillier"
	"github.com/luxfi/gg20/pkg/party"
	"github.com/luxfi/gg20/pkg/pool"
	"github.com/luxfi/gg20/pkg/sharing"
	"github.com/luxfi/gg20/pkg/transport"
)

// Participant is a single party in a GG20 run: a passive state
// machine driven by lifecycle calls (KeyGen, PrepareForSigning, Sign)
// and by inbound messages delivered through ReceiveMessage.
type Participant struct {
	mu sync.Mutex

	ID         party.ID
	Delegate   transport.Delegate
	Parameters Parameters

	KeyGenState  *KeyGenState
	SigningState *SigningState
}

// NewParticipant constructs a Participant with empty key-generation
// state.
func NewParticipant(id party.ID, delegate transport.Delegate, params Parameters) *Participant {
	return &Participant{
		ID:          id,
		Delegate:    delegate,
		Parameters:  params,
		KeyGenState: newKeyGenState(),
	}
}

func (p *Participant) curve() (*curve.Curve, curve.Point, *saferith.Modulus) {
	return curve.Secp256k1()
}

// PartyID returns this participant's identifier, satisfying
// nettest.Receiver.
func (p *Participant) PartyID() party.ID {
	return p.ID
}

// KeyGen runs the one-shot key-generation round: samples this
// participant's Paillier keypair and secret share, splits the share
// via Shamir, broadcasts its public share y_i and Paillier modulus, and
// sends each other participant its Shamir share.
func (p *Participant) KeyGen() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	pub, priv, err := paillier.GenerateKeyPair(p.Parameters.PaillierSecurityParameter)
	if err != nil {
		return fmt.Errorf("gg20: generate paillier keypair: %w", err)
	}
	p.KeyGenState.PaillierPublic = pub
	p.KeyGenState.PaillierPrivate = priv

	q := curve.ScalarField()
	secretNat, err := bigint.RandomInRange(new(saferith.Nat).SetUint64(1), q.Nat())
	if err != nil {
		return fmt.Errorf("gg20: sample secret share: %w", err)
	}
	secretShare := curve.NewScalar(secretNat)
	p.KeyGenState.SecretKeyShare = secretShare

	shares, err := sharing.Split(secretShare, len(p.Parameters.PartyIDs), p.Parameters.Threshold)
	if err != nil {
		return fmt.Errorf("gg20: split secret share: %w", err)
	}
	ordinals := p.Parameters.PartyIDs.Ordinals()
	for _, id := range p.Parameters.PartyIDs {
		p.KeyGenState.Shares[id] = shares[ordinals[id]-1].Value
	}

	y := secretShare.ActOnBase()
	p.KeyGenState.Y = y

	// Broadcast/Send never loop a message back to its own sender, so
	// fold this participant's own public share and Shamir share into
	// the "other" maps directly rather than waiting to receive them.
	p.KeyGenState.OtherY[p.ID] = y
	p.KeyGenState.OtherPaillierPublicKeys[p.ID] = pub
	p.KeyGenState.OtherShares[p.ID] = p.KeyGenState.Shares[p.ID]

	yBytes, _ := y.MarshalBinary()
	broadcastMsg := transport.Message{
		Kind: transport.KeyGenBroadcast,
		KeyGenBroadcast: &transport.KeyGenBroadcastPayload{
			Y:         yBytes,
			PaillierN: pub.N.Nat().Bytes(),
		},
	}
	if err := p.Delegate.Broadcast(p.ID, broadcastMsg); err != nil {
		return fmt.Errorf("gg20: broadcast key gen: %w", err)
	}

	for _, recipient := range p.Parameters.PartyIDs {
		if recipient == p.ID {
			continue
		}
		share := p.KeyGenState.Shares[recipient]
		msg := transport.Message{
			Kind: transport.KeyGenP2P,
			KeyGenP2P: &transport.KeyGenP2PPayload{
				ShareValue: share.Nat().Bytes(),
			},
		}
		if err := p.Delegate.Send(p.ID, recipient, msg); err != nil {
			return fmt.Errorf("gg20: send key gen share to %s: %w", recipient, err)
		}
	}

	if len(p.KeyGenState.OtherShares) == len(p.Parameters.PartyIDs) {
		x := curve.NewScalar(new(saferith.Nat).SetUint64(0))
		for _, s := range p.KeyGenState.OtherShares {
			x = x.Add(s)
		}
		p.KeyGenState.X = x
		p.KeyGenState.BigX = x.ActOnBase()
	}

	return nil
}

// PublicKey returns the joint public key Y = sum of every
// participant's y_i, once all have been received.
func (p *Participant) PublicKey() (curve.Point, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.KeyGenState.OtherY) != len(p.Parameters.PartyIDs) {
		return curve.Point{}, fmt.Errorf("%w: have %d of %d public shares", ErrMissingContribution, len(p.KeyGenState.OtherY), len(p.Parameters.PartyIDs))
	}

	c, _, _ := p.curve()
	sum := c.Identity()
	for _, y := range p.KeyGenState.OtherY {
		var err error
		sum, err = sum.Add(y)
		if err != nil {
			return curve.Point{}, err
		}
	}
	return sum, nil
}

// PrepareForSigning initializes a signing session over message z
// among signerIDs (which must include this participant). It converts
// this participant's (t, n) Shamir share x_i into its (t, |S|)
// Lagrange-weighted additive share w_i, and samples its nonce k_i and
// mask gamma_i.
func (p *Participant) PrepareForSigning(message []byte, signerIDs []party.ID) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.SigningState != nil {
		return fmt.Errorf("%w: signing session already in progress", ErrUnexpectedPhase)
	}

	signerSet := make(map[party.ID]struct{}, len(signerIDs))
	for _, id := range signerIDs {
		signerSet[id] = struct{}{}
	}
	if _, ok := signerSet[p.ID]; !ok {
		return fmt.Errorf("gg20: participant %s is not among the chosen signers", p.ID)
	}

	state := newSigningState(message, signerSet)
	p.SigningState = state

	iScalar := p.ID.Scalar(p.Parameters.PartyIDs)
	w := p.KeyGenState.X
	for j := range signerSet {
		if j == p.ID {
			continue
		}
		jScalar := j.Scalar(p.Parameters.PartyIDs)
		diff := jScalar.Sub(iScalar)
		diffInv, err := diff.Inverse()
		if err != nil {
			return fmt.Errorf("gg20: lagrange coefficient: %w", err)
		}
		w = w.Mul(jScalar).Mul(diffInv)
	}
	state.W = w

	q := curve.ScalarField()
	kNat, err := bigint.RandomInRange(new(saferith.Nat).SetUint64(1), q.Nat())
	if err != nil {
		return err
	}
	gammaNat, err := bigint.RandomInRange(new(saferith.Nat).SetUint64(1), q.Nat())
	if err != nil {
		return err
	}
	state.K = curve.NewScalar(kNat)
	state.Gamma = curve.NewScalar(gammaNat)
	state.GammaElliptic = state.Gamma.ActOnBase()

	return nil
}

// Sign begins the MtA phase: it encrypts k_i under this participant's
// own Paillier key and, for every other signer j, launches both MtA
// instances (on operands (k_i, gamma_j) and (k_i, w_j)) by sending
// MtAP2P1/MtAP2P2 messages. The 2*(|S|-1) outbound sends are dispatched
// concurrently through a bounded pool.Pool, since each counterparty's
// pair of sends is independent of every other's.
func (p *Participant) Sign() error {
	p.mu.Lock()
	state := p.SigningState
	ownPub := p.KeyGenState.PaillierPublic
	p.mu.Unlock()

	if state == nil {
		return fmt.Errorf("%w: PrepareForSigning must run before Sign", ErrUnexpectedPhase)
	}
	kNat := state.K.Nat()

	encryptedK, err := ownPub.Encrypt(kNat)
	if err != nil {
		return fmt.Errorf("gg20: encrypt k_i: %w", err)
	}
	cipherBytes := encryptedK.C.Bytes()

	wp := pool.NewPool(0)
	for j := range state.SignerIDs {
		if j == p.ID {
			continue
		}
		j := j
		wp.Go(func() error {
			mta1 := transport.Message{
				Kind: transport.MtAP2P1,
				MtA1: &transport.MtAInitPayload{Ciphertext: cipherBytes},
			}
			if err := p.Delegate.Send(p.ID, j, mta1); err != nil {
				return fmt.Errorf("gg20: send MtA-1 to %s: %w", j, err)
			}

			mta2 := transport.Message{
				Kind: transport.MtAP2P2,
				MtA2: &transport.MtAInitPayload{Ciphertext: cipherBytes},
			}
			if err := p.Delegate.Send(p.ID, j, mta2); err != nil {
				return fmt.Errorf("gg20: send MtA-2 to %s: %w", j, err)
			}
			return nil
		})
	}
	if err := wp.Wait(); err != nil {
		return err
	}

	return nil
}

// Signature assembles the final (r, s) signature from every signer's
// broadcast share, once all have arrived. SigningState is discarded
// once assembly succeeds, so the participant is free to enter a fresh
// PrepareForSigning session afterward — KeyGenState persists
// indefinitely and may back many such sessions.
func (p *Participant) Signature() (curve.Signature, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.SigningState == nil {
		return curve.Signature{}, fmt.Errorf("%w: no signing session in progress", ErrUnexpectedPhase)
	}
	if len(p.SigningState.SByID) != len(p.SigningState.SignerIDs) {
		return curve.Signature{}, fmt.Errorf("%w: have %d of %d signature shares", ErrMissingContribution, len(p.SigningState.SByID), len(p.SigningState.SignerIDs))
	}

	s := curve.NewScalar(new(saferith.Nat).SetUint64(0))
	for _, share := range p.SigningState.SByID {
		s = s.Add(share)
	}
	sig := curve.Signature{R: p.SigningState.LittleR, S: s}

	p.SigningState = nil
	return sig, nil
}

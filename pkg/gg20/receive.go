package gg20

import (
	"fmt"

	"github.com/cronokirby/saferith"
	"github.com/luxfi/gg20/pkg/bigint"
	"github.com/luxfi/gg20/pkg/curve"
	"github.com/luxfi/gg20/pkg/paillier"
	"github.com/luxfi/gg20/pkg/party"
	"github.com/luxfi/gg20/pkg/transport"
)

// ReceiveMessage dispatches an inbound message from sender to the
// appropriate phase handler, mirroring the isinstance-dispatch of the
// reference state machine. Duplicate messages, MtA messages that arrive
// with no signing session prepared, and MtA initiations from a sender
// with no known Paillier key surface as a *ProtocolError.
// PostMtABroadcast and SigningShare messages that arrive with no signing
// session prepared are ignored and return nil, and the senders of
// key-generation, PostMtABroadcast and SigningShare messages are not
// checked against the party or signer set.
func (p *Participant) ReceiveMessage(sender party.ID, msg transport.Message) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch msg.Kind {
	case transport.KeyGenBroadcast:
		return p.handleKeyGenBroadcast(sender, msg.KeyGenBroadcast)
	case transport.KeyGenP2P:
		return p.handleKeyGenP2P(sender, msg.KeyGenP2P)
	case transport.MtAP2P1:
		return p.handleMtAInit(sender, msg.MtA1, 1)
	case transport.MtAP2P1Response:
		return p.handleMtAResponse(sender, msg.MtA1Response, 1)
	case transport.MtAP2P2:
		return p.handleMtAInit(sender, msg.MtA2, 2)
	case transport.MtAP2P2Response:
		return p.handleMtAResponse(sender, msg.MtA2Response, 2)
	case transport.PostMtABroadcast:
		return p.handlePostMtA(sender, msg.PostMtA)
	case transport.SigningShare:
		return p.handleSigningShare(sender, msg.SigningShare)
	default:
		return newProtocolError(sender, "unknown", fmt.Errorf("unrecognized message kind %d", msg.Kind))
	}
}

func (p *Participant) handleKeyGenBroadcast(sender party.ID, payload *transport.KeyGenBroadcastPayload) error {
	if _, dup := p.KeyGenState.OtherY[sender]; dup {
		return newProtocolError(sender, "KeyGenBroadcast", ErrDuplicateMessage)
	}

	c, _, _ := p.curve()
	y, err := curve.UnmarshalPoint(c, payload.Y)
	if err != nil {
		return newProtocolError(sender, "KeyGenBroadcast", err)
	}
	n := new(saferith.Nat).SetBytes(payload.PaillierN)
	pub := &paillier.PublicKey{
		N:        saferith.ModulusFromNat(n),
		NSquared: saferith.ModulusFromNat(new(saferith.Nat).Mul(n, n, -1)),
		G:        new(saferith.Nat).Add(n, new(saferith.Nat).SetUint64(1), -1),
		Bits:     p.Parameters.PaillierSecurityParameter,
	}

	p.KeyGenState.OtherY[sender] = y
	p.KeyGenState.OtherPaillierPublicKeys[sender] = pub
	return nil
}

func (p *Participant) handleKeyGenP2P(sender party.ID, payload *transport.KeyGenP2PPayload) error {
	if _, dup := p.KeyGenState.OtherShares[sender]; dup {
		return newProtocolError(sender, "KeyGenP2P", ErrDuplicateMessage)
	}

	share := curve.NewScalar(new(saferith.Nat).SetBytes(payload.ShareValue))
	p.KeyGenState.OtherShares[sender] = share

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

// mtaSecurityBound returns 2^(5*security_parameter), the upper bound
// on the receiver's blinding factor beta'.
func (p *Participant) mtaSecurityBound() *saferith.Nat {
	one := new(saferith.Nat).SetUint64(1)
	return new(saferith.Nat).Lsh(one, uint(5*p.Parameters.SecurityParameter), -1)
}

func (p *Participant) handleMtAInit(sender party.ID, payload *transport.MtAInitPayload, instance int) error {
	if p.SigningState == nil {
		return newProtocolError(sender, "MtA-init", fmt.Errorf("%w: no signing session prepared", ErrUnexpectedPhase))
	}

	var receiverMap map[party.ID]curve.Scalar
	var operand curve.Scalar
	if instance == 1 {
		receiverMap = p.SigningState.MtAOutputsAsReceiver1
		operand = p.SigningState.Gamma
	} else {
		receiverMap = p.SigningState.MtAOutputsAsReceiver2
		operand = p.SigningState.W
	}
	if _, dup := receiverMap[sender]; dup {
		return newProtocolError(sender, "MtA-init", ErrDuplicateMessage)
	}

	senderPub, ok := p.KeyGenState.OtherPaillierPublicKeys[sender]
	if !ok {
		return newProtocolError(sender, "MtA-init", ErrUnknownSender)
	}

	betaPrimeNat, err := bigint.RandomInRange(new(saferith.Nat).SetUint64(1), p.mtaSecurityBound())
	if err != nil {
		return err
	}
	betaPrime := curve.NewScalar(betaPrimeNat)
	beta := curve.NewScalar(new(saferith.Nat).SetUint64(0)).Sub(betaPrime)

	encryptedA := paillier.Ciphertext{C: new(saferith.Nat).SetBytes(payload.Ciphertext)}
	left, err := senderPub.HomomorphicMultiply(encryptedA, operand.Nat())
	if err != nil {
		return newProtocolError(sender, "MtA-init", err)
	}
	result, err := senderPub.HomomorphicAdd(left, betaPrimeNat)
	if err != nil {
		return fmt.Errorf("gg20: MtA homomorphic combine: %w", err)
	}

	receiverMap[sender] = beta

	respKind := transport.MtAP2P1Response
	if instance == 2 {
		respKind = transport.MtAP2P2Response
	}
	respPayload := &transport.MtAResponsePayload{Ciphertext: result.C.Bytes()}
	respMsg := transport.Message{Kind: respKind}
	if instance == 1 {
		respMsg.MtA1Response = respPayload
	} else {
		respMsg.MtA2Response = respPayload
	}

	if err := p.Delegate.Send(p.ID, sender, respMsg); err != nil {
		return fmt.Errorf("gg20: send MtA response to %s: %w", sender, err)
	}

	if instance == 2 && p.didFinishMtA2Sequences() {
		if err := p.continueSigningPostMtA(); err != nil {
			return err
		}
	}
	return nil
}

func (p *Participant) handleMtAResponse(sender party.ID, payload *transport.MtAResponsePayload, instance int) error {
	if p.SigningState == nil {
		return newProtocolError(sender, "MtA-response", fmt.Errorf("%w: no signing session prepared", ErrUnexpectedPhase))
	}

	initiatorMap := p.SigningState.MtAOutputsAsInitiator1
	if instance == 2 {
		initiatorMap = p.SigningState.MtAOutputsAsInitiator2
	}
	if _, dup := initiatorMap[sender]; dup {
		return newProtocolError(sender, "MtA-response", ErrDuplicateMessage)
	}

	ct := paillier.Ciphertext{C: new(saferith.Nat).SetBytes(payload.Ciphertext)}
	decrypted, err := p.KeyGenState.PaillierPrivate.Decrypt(ct)
	if err != nil {
		return fmt.Errorf("gg20: decrypt MtA response: %w", err)
	}
	alpha := curve.NewScalar(decrypted)
	initiatorMap[sender] = alpha

	if instance == 2 && p.didFinishMtA2Sequences() {
		if err := p.continueSigningPostMtA(); err != nil {
			return err
		}
	}
	return nil
}

func (p *Participant) didFinishMtA2Sequences() bool {
	threshold := len(p.SigningState.SignerIDs) - 1
	return len(p.SigningState.MtAOutputsAsReceiver2) == threshold &&
		len(p.SigningState.MtAOutputsAsInitiator2) == threshold
}

// continueSigningPostMtA aggregates this participant's delta_i and
// sigma_i from its MtA outputs and broadcasts delta_i alongside
// Gamma_i.
func (p *Participant) continueSigningPostMtA() error {
	state := p.SigningState

	deltaI := state.K.Mul(state.Gamma)
	for _, alpha := range state.MtAOutputsAsInitiator1 {
		deltaI = deltaI.Add(alpha)
	}
	for _, beta := range state.MtAOutputsAsReceiver1 {
		deltaI = deltaI.Add(beta)
	}
	state.DeltaI = deltaI

	sigmaI := state.K.Mul(state.W)
	for _, mu := range state.MtAOutputsAsInitiator2 {
		sigmaI = sigmaI.Add(mu)
	}
	for _, nu := range state.MtAOutputsAsReceiver2 {
		sigmaI = sigmaI.Add(nu)
	}
	state.SigmaI = sigmaI

	deltaIBytes := deltaI.Nat().Bytes()
	gammaBytes, err := state.GammaElliptic.MarshalBinary()
	if err != nil {
		return err
	}

	// Broadcast excludes the sender, so fold this participant's own
	// contribution into the running sums directly rather than waiting
	// to receive it back. Other signers' PostMtABroadcast messages may
	// already have arrived (and been summed) before this point, so add
	// rather than reset.
	state.DeltaByID[p.ID] = deltaI
	c, _, _ := p.curve()
	if !state.haveGammaSummed {
		state.GammaEllipticSummed = c.Identity()
		state.haveGammaSummed = true
	}
	summed, err := state.GammaEllipticSummed.Add(state.GammaElliptic)
	if err != nil {
		return err
	}
	state.GammaEllipticSummed = summed

	msg := transport.Message{
		Kind: transport.PostMtABroadcast,
		PostMtA: &transport.PostMtAPayload{
			DeltaI:        deltaIBytes,
			GammaElliptic: gammaBytes,
		},
	}
	if err := p.Delegate.Broadcast(p.ID, msg); err != nil {
		return err
	}

	if len(state.DeltaByID) == len(state.SignerIDs) {
		delta := curve.NewScalar(new(saferith.Nat).SetUint64(0))
		for _, d := range state.DeltaByID {
			delta = delta.Add(d)
		}
		state.Delta = delta
		state.haveDelta = true
		return p.produceSignature()
	}
	return nil
}

func (p *Participant) handlePostMtA(sender party.ID, payload *transport.PostMtAPayload) error {
	if p.SigningState == nil {
		// No session prepared yet: silently ignore, matching the
		// reference implementation's early-return for messages that
		// arrive before prepare_for_signing.
		return nil
	}
	if _, dup := p.SigningState.DeltaByID[sender]; dup {
		return newProtocolError(sender, "PostMtABroadcast", ErrDuplicateMessage)
	}

	c, _, _ := p.curve()
	gammaPoint, err := curve.UnmarshalPoint(c, payload.GammaElliptic)
	if err != nil {
		return newProtocolError(sender, "PostMtABroadcast", err)
	}

	if !p.SigningState.haveGammaSummed {
		p.SigningState.GammaEllipticSummed = c.Identity()
		p.SigningState.haveGammaSummed = true
	}
	summed, err := p.SigningState.GammaEllipticSummed.Add(gammaPoint)
	if err != nil {
		return newProtocolError(sender, "PostMtABroadcast", err)
	}
	p.SigningState.GammaEllipticSummed = summed

	deltaShare := curve.NewScalar(new(saferith.Nat).SetBytes(payload.DeltaI))
	p.SigningState.DeltaByID[sender] = deltaShare

	if len(p.SigningState.DeltaByID) == len(p.SigningState.SignerIDs) {
		delta := curve.NewScalar(new(saferith.Nat).SetUint64(0))
		for _, d := range p.SigningState.DeltaByID {
			delta = delta.Add(d)
		}
		p.SigningState.Delta = delta
		p.SigningState.haveDelta = true
		return p.produceSignature()
	}
	return nil
}

// produceSignature computes this participant's r (shared across all
// signers, derived from delta^-1 * sum(Gamma_j)) and its partial
// signature share s_i, then broadcasts s_i.
func (p *Participant) produceSignature() error {
	state := p.SigningState

	deltaInv, err := state.Delta.Inverse()
	if err != nil {
		return fmt.Errorf("gg20: invert delta: %w", err)
	}
	bigR := deltaInv.Act(state.GammaEllipticSummed)
	if bigR.IsIdentity() {
		return fmt.Errorf("gg20: R is the identity point")
	}
	r := curve.NewScalar(bigR.X().Nat())
	state.LittleR = r

	z := curve.NewScalar(new(saferith.Nat).SetBytes(state.Message))
	s := z.Mul(state.K).Add(r.Mul(state.SigmaI))
	state.SByID[p.ID] = s

	msg := transport.Message{
		Kind:         transport.SigningShare,
		SigningShare: &transport.SigningSharePayload{S: s.Nat().Bytes()},
	}
	return p.Delegate.Broadcast(p.ID, msg)
}

func (p *Participant) handleSigningShare(sender party.ID, payload *transport.SigningSharePayload) error {
	if p.SigningState == nil {
		return nil
	}
	if _, dup := p.SigningState.SByID[sender]; dup {
		return newProtocolError(sender, "SigningShare", ErrDuplicateMessage)
	}
	p.SigningState.SByID[sender] = curve.NewScalar(new(saferith.Nat).SetBytes(payload.S))
	return nil
}

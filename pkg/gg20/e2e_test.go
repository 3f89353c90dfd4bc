package gg20_test

import (
	"crypto/rand"

	"github.com/cronokirby/saferith"
	"github.com/luxfi/gg20/internal/nettest"
	"github.com/luxfi/gg20/pkg/curve"
	"github.com/luxfi/gg20/pkg/gg20"
	"github.com/luxfi/gg20/pkg/party"

	"github.com/luxfi/gg20/pkg/sharing"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func randomMessage() []byte {
	buf := make([]byte, 32)
	_, _ = rand.Read(buf)
	return buf
}

// runKeyGen wires n participants together over an in-process network
// and runs KeyGen to completion, returning the participants keyed by
// ID.
func runKeyGen(n, threshold int) (map[party.ID]*gg20.Participant, party.IDSlice) {
	ids := nettest.PartyIDs(n)
	params := gg20.Parameters{
		SecurityParameter:         256,
		PaillierSecurityParameter: 2048, // must exceed the bit length of k_i*gamma_j + beta' (up to 512 + 5*256 bits)
		PartyIDs:                  ids,
		Threshold:                 threshold,
	}

	network := nettest.NewNetwork()
	participants := make(map[party.ID]*gg20.Participant, n)
	for _, id := range ids {
		p := gg20.NewParticipant(id, network, params)
		participants[id] = p
		network.Register(p)
	}

	for _, id := range ids {
		Expect(participants[id].KeyGen()).To(Succeed())
	}

	return participants, ids
}

func runSigning(participants map[party.ID]*gg20.Participant, signerIDs []party.ID, message []byte) {
	for _, id := range signerIDs {
		Expect(participants[id].PrepareForSigning(message, signerIDs)).To(Succeed())
	}
	for _, id := range signerIDs {
		Expect(participants[id].Sign()).To(Succeed())
	}
}

var _ = Describe("GG20 threshold signing", func() {
	It("produces a valid signature with signer set {1,2,3} of a (3,4) key", func() {
		participants, ids := runKeyGen(4, 3)

		publicKey, err := participants[ids[0]].PublicKey()
		Expect(err).NotTo(HaveOccurred())
		for _, id := range ids {
			pk, err := participants[id].PublicKey()
			Expect(err).NotTo(HaveOccurred())
			Expect(pk.Equal(publicKey)).To(BeTrue())
		}

		signerIDs := []party.ID{ids[0], ids[1], ids[2]}
		message := randomMessage()
		runSigning(participants, signerIDs, message)

		// E8: recompute a·b mod q directly from each party's private
		// k_i/gamma_j/w_j and check it against the live MtA bookkeeping,
		// for both MtA instances. Captured before Signature() below,
		// which discards SigningState once it has assembled a result.
		i, j := signerIDs[0], signerIDs[1]
		stateI, stateJ := participants[i].SigningState, participants[j].SigningState

		ab1 := stateI.K.Mul(stateJ.Gamma)
		alphaIJ := stateI.MtAOutputsAsInitiator1[j]
		betaJI := stateJ.MtAOutputsAsReceiver1[i]
		Expect(ab1.Equal(alphaIJ.Add(betaJI))).To(BeTrue())

		ab2 := stateI.K.Mul(stateJ.W)
		muIJ := stateI.MtAOutputsAsInitiator2[j]
		nuJI := stateJ.MtAOutputsAsReceiver2[i]
		Expect(ab2.Equal(muIJ.Add(nuJI))).To(BeTrue())

		// E9: delta mod q == (sum k_i)(sum gamma_i) mod q, computed
		// independently from the raw per-signer k/gamma values and
		// compared to the aggregated delta every signer holds.
		var sumK, sumGamma curve.Scalar
		for idx, id := range signerIDs {
			s := participants[id].SigningState
			if idx == 0 {
				sumK, sumGamma = s.K, s.Gamma
			} else {
				sumK, sumGamma = sumK.Add(s.K), sumGamma.Add(s.Gamma)
			}
		}
		Expect(sumK.Mul(sumGamma).Equal(stateI.Delta)).To(BeTrue())

		var signatures []curve.Signature
		for _, id := range signerIDs {
			sig, err := participants[id].Signature()
			Expect(err).NotTo(HaveOccurred())
			signatures = append(signatures, sig)
		}

		z := new(saferith.Nat).SetBytes(message)
		for _, sig := range signatures {
			Expect(sig.Verify(z, publicKey)).To(BeTrue())
		}
	})

	It("produces a valid signature with signer set {2,3,4} of a (3,4) key", func() {
		participants, ids := runKeyGen(4, 3)
		publicKey, err := participants[ids[0]].PublicKey()
		Expect(err).NotTo(HaveOccurred())

		signerIDs := []party.ID{ids[1], ids[2], ids[3]}
		message := randomMessage()
		runSigning(participants, signerIDs, message)

		z := new(saferith.Nat).SetBytes(message)
		for _, id := range signerIDs {
			sig, err := participants[id].Signature()
			Expect(err).NotTo(HaveOccurred())
			Expect(sig.Verify(z, publicKey)).To(BeTrue())
		}
	})

	It("signs with two overlapping signer sets against one shared keygen output", func() {
		participants, ids := runKeyGen(4, 3)
		publicKey, err := participants[ids[0]].PublicKey()
		Expect(err).NotTo(HaveOccurred())

		firstSigners := []party.ID{ids[0], ids[1], ids[2]}
		firstMessage := randomMessage()
		runSigning(participants, firstSigners, firstMessage)
		firstZ := new(saferith.Nat).SetBytes(firstMessage)
		for _, id := range firstSigners {
			sig, err := participants[id].Signature()
			Expect(err).NotTo(HaveOccurred())
			Expect(sig.Verify(firstZ, publicKey)).To(BeTrue())
		}

		// ids[1] and ids[2] sign again, in a second session against the
		// same KeyGenState, alongside ids[3]: this only works if
		// Signature() discarded their prior SigningState above.
		secondSigners := []party.ID{ids[1], ids[2], ids[3]}
		secondMessage := randomMessage()
		runSigning(participants, secondSigners, secondMessage)
		secondZ := new(saferith.Nat).SetBytes(secondMessage)
		for _, id := range secondSigners {
			sig, err := participants[id].Signature()
			Expect(err).NotTo(HaveOccurred())
			Expect(sig.Verify(secondZ, publicKey)).To(BeTrue())
		}
	})

	It("derives the joint private key as the Shamir reconstruction of per-party shares", func() {
		participants, ids := runKeyGen(4, 3)

		// Each participant's KeyGenState.X is the joint sharing
		// polynomial (the sum of every individual participant's Shamir
		// polynomial) evaluated at that participant's ordinal; any
		// threshold-sized subset should reconstruct to the same secret
		// as summing every participant's raw secret_key_share.
		var total curve.Scalar
		first := true
		for _, id := range ids {
			s := participants[id].KeyGenState.SecretKeyShare
			if first {
				total = s
				first = false
			} else {
				total = total.Add(s)
			}
		}

		subset := ids[:3]
		recoveryShares := make([]sharing.Share, len(subset))
		for i, id := range subset {
			recoveryShares[i] = sharing.Share{
				Index: id.Scalar(ids),
				Value: participants[id].KeyGenState.X,
			}
		}
		recovered, err := sharing.Recover(recoveryShares)
		Expect(err).NotTo(HaveOccurred())
		Expect(recovered.Equal(total)).To(BeTrue())

		publicKey, err := participants[ids[0]].PublicKey()
		Expect(err).NotTo(HaveOccurred())
		Expect(total.ActOnBase().Equal(publicKey)).To(BeTrue())
	})
})

package main

import (
	"crypto/rand"
	"fmt"

	"github.com/cronokirby/saferith"
	"github.com/luxfi/gg20/pkg/party"
	"github.com/spf13/cobra"
)

func newSignCmd() *cobra.Command {
	var parties, threshold, paillierBits, signerCount int

	cmd := &cobra.Command{
		Use:   "sign",
		Short: "Run an in-process key generation followed by a signing simulation",
		RunE: func(cmd *cobra.Command, args []string) error {
			participants, ids, err := simulateKeyGen(parties, threshold, paillierBits)
			if err != nil {
				return fmt.Errorf("sign: %w", err)
			}
			if signerCount > len(ids) {
				return fmt.Errorf("sign: signer count %d exceeds party count %d", signerCount, len(ids))
			}

			signerIDs := make([]party.ID, signerCount)
			copy(signerIDs, ids[:signerCount])

			message := make([]byte, 32)
			if _, err := rand.Read(message); err != nil {
				return fmt.Errorf("sign: sample message: %w", err)
			}

			for _, id := range signerIDs {
				if err := participants[id].PrepareForSigning(message, signerIDs); err != nil {
					return fmt.Errorf("sign: prepare %s: %w", id, err)
				}
			}
			for _, id := range signerIDs {
				if err := participants[id].Sign(); err != nil {
					return fmt.Errorf("sign: %s: %w", id, err)
				}
			}

			z := new(saferith.Nat).SetBytes(message)
			publicKey, err := participants[ids[0]].PublicKey()
			if err != nil {
				return fmt.Errorf("sign: assemble public key: %w", err)
			}

			for _, id := range signerIDs {
				sig, err := participants[id].Signature()
				if err != nil {
					return fmt.Errorf("sign: assemble signature for %s: %w", id, err)
				}
				if !sig.Verify(z, publicKey) {
					return fmt.Errorf("sign: signature from %s failed verification", id)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "participant %s: signature r=%s s=%s verified\n", id, sig.R, sig.S)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&parties, "parties", 4, "total number of participants (n)")
	cmd.Flags().IntVar(&threshold, "threshold", 3, "number of shares required to reconstruct a secret (t)")
	cmd.Flags().IntVar(&paillierBits, "paillier-bits", 2048, "Paillier modulus size in bits")
	cmd.Flags().IntVar(&signerCount, "signers", 3, "number of participants in the signer subset")
	return cmd
}

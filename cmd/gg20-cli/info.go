package main

import (
	"fmt"

	"github.com/luxfi/gg20/pkg/curve"
	"github.com/spf13/cobra"
)

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Print the curve parameters this build operates over",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, g, n := curve.Secp256k1()
			gBytes, err := g.MarshalBinary()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "curve: secp256k1")
			fmt.Fprintf(cmd.OutOrStdout(), "generator: %x\n", gBytes)
			fmt.Fprintf(cmd.OutOrStdout(), "order: %s\n", n.Nat().Big().String())
			return nil
		},
	}
}

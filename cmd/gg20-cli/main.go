// Command gg20-cli drives an in-process GG20 simulation: it is a
// demonstration harness, not a production signing service (the core
// library has no network transport of its own; see pkg/transport).
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "gg20-cli",
		Short: "Simulate GG20 threshold-ECDSA key generation and signing",
	}

	root.AddCommand(newKeyGenCmd())
	root.AddCommand(newSignCmd())
	root.AddCommand(newInfoCmd())
	return root
}

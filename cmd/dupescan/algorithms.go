package main

import (
	"fmt"

	"github.com/spf13/cobra"

	dupescan "github.com/mattkeenan/dupescan/pkg"
)

func newAlgorithmsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "algorithms",
		Short: "List supported hash algorithms",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range dupescan.AlgorithmNames() {
				bits, err := dupescan.AlgorithmBits(name)
				if err != nil {
					return err
				}
				marker := ""
				if name == dupescan.DefaultAlgorithm {
					marker = " (default)"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%-8s %3d bits%s\n", name, bits, marker)
			}
			return nil
		},
	}
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"stint/internal/workload"
)

func newWorkloadsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "workloads",
		Short: "List available workload kernels",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range workload.Names() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
		},
	}
}

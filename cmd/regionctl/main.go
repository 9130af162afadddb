package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "regionctl",
		Short:        "Inspect and edit persisted region flags",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (default $REGIONFLAGS_CONFIG or config/regionflags.yaml)")

	root.AddCommand(defineCmd())
	root.AddCommand(flagCmd())
	root.AddCommand(damageCmd())
	root.AddCommand(healCmd())
	root.AddCommand(banCmd())
	root.AddCommand(unbanCmd())
	root.AddCommand(listCmd())
	root.AddCommand(flagsCmd())
	root.AddCommand(migrateCmd())
	return root
}

package main

import (
	"os"

	cmd "github.com/mosaicnetworks/blockjournal/cmd/blockjournal/commands"
)

func main() {
	rootCmd := cmd.RootCmd

	rootCmd.AddCommand(
		cmd.VersionCmd,
		cmd.NewRunCmd(),
		cmd.NewAddCmd(),
		cmd.NewShowCmd(),
		cmd.NewVerifyCmd(),
		cmd.NewSyncCmd(),
		cmd.NewPeersCmd(),
	)

	//Do not print usage when error occurs
	rootCmd.SilenceUsage = true

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

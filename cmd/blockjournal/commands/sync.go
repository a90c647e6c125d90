package commands

import (
	"context"
	"fmt"

	"github.com/mosaicnetworks/blockjournal/src/blockjournal"
	"github.com/spf13/cobra"
)

//NewSyncCmd returns the command that runs a single sync round
func NewSyncCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "sync",
		Short:   "Pull the chains of all peers once",
		PreRunE: loadConfig,
		RunE:    syncOnce,
	}
	AddCommonFlags(cmd)
	AddPeerFlags(cmd)
	cmd.Flags().Bool("push", false, "Also offer the resulting chain to every peer")
	return cmd
}

func syncOnce(cmd *cobra.Command, args []string) error {
	conf := _config.Journal
	conf.NoService = true
	conf.NoSync = true

	engine := blockjournal.NewBlockJournal(&conf)

	if err := engine.Init(); err != nil {
		return err
	}
	defer engine.Shutdown()

	adopted := engine.Node.SyncWithPeers(context.Background())

	fmt.Fprintf(cmd.OutOrStdout(), "adopted %d of %d peer chains, length %d\n",
		adopted, engine.Peers.Len(), engine.Chain.Len())

	if _config.Push {
		accepted := engine.Node.PushToPeers(context.Background())

		fmt.Fprintf(cmd.OutOrStdout(), "%d of %d peers adopted the local chain\n",
			accepted, engine.Peers.Len())
	}

	return nil
}

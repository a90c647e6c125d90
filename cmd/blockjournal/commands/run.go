package commands

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/mosaicnetworks/blockjournal/src/blockjournal"
	"github.com/spf13/cobra"
)

//NewRunCmd returns the command that starts a blockjournal node
func NewRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "run",
		Short:   "Run node",
		PreRunE: loadConfig,
		RunE:    runJournal,
	}
	AddRunFlags(cmd)
	return cmd
}

/*******************************************************************************
* RUN
*******************************************************************************/

func runJournal(cmd *cobra.Command, args []string) error {
	engine := blockjournal.NewBlockJournal(&_config.Journal)

	if err := engine.Init(); err != nil {
		_config.Journal.Logger().Error("Cannot initialize engine:", err)
		return err
	}

	// Save the chain and stop cleanly on SIGINT or SIGTERM
	sigintCh := make(chan os.Signal, 1)
	signal.Notify(sigintCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigintCh
		_config.Journal.Logger().Info("Received interrupt, shutting down")
		engine.Shutdown()
	}()

	return engine.Run()
}

/*******************************************************************************
* CONFIG
*******************************************************************************/

//AddRunFlags adds flags to the Run command
func AddRunFlags(cmd *cobra.Command) {
	AddCommonFlags(cmd)
	AddPeerFlags(cmd)

	// Service
	cmd.Flags().StringP("listen", "l", _config.Journal.ServiceAddr, "Listen IP:Port for the HTTP service")
	cmd.Flags().Bool("no-service", _config.Journal.NoService, "Disable the HTTP service")

	// Sync
	cmd.Flags().Duration("sync-interval", _config.Journal.SyncInterval, "Time between sync rounds")
	cmd.Flags().Bool("no-sync", _config.Journal.NoSync, "Disable periodic sync")
}

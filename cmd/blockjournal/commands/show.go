package commands

import (
	"encoding/json"
	"fmt"

	"github.com/mosaicnetworks/blockjournal/src/blockjournal"
	"github.com/mosaicnetworks/blockjournal/src/chain"
	"github.com/spf13/cobra"
)

//NewShowCmd returns the command that prints the stored chain
func NewShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "show",
		Short:   "Print the stored chain as JSON",
		PreRunE: loadConfig,
		RunE:    showChain,
	}
	AddCommonFlags(cmd)
	return cmd
}

func showChain(cmd *cobra.Command, args []string) error {
	store, err := blockjournal.NewStore(&_config.Journal, _config.Journal.Logger())
	if err != nil {
		return err
	}
	defer store.Close()

	blocks, err := store.Load()
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(chain.WireChain{Chain: blocks}, "", "  ")
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), string(out))

	return nil
}

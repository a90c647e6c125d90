package commands

import (
	"fmt"

	"github.com/mosaicnetworks/blockjournal/src/blockjournal"
	"github.com/spf13/cobra"
)

//NewAddCmd returns the command that appends an entry to the local chain
func NewAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "add",
		Short:   "Append a journal entry",
		PreRunE: loadConfig,
		RunE:    addEntry,
	}
	AddCommonFlags(cmd)
	cmd.Flags().StringP("content", "c", "", "Content of the entry")
	cmd.Flags().StringP("location", "L", "", "Location of the entry")
	return cmd
}

func addEntry(cmd *cobra.Command, args []string) error {
	conf := _config.Journal
	conf.NoService = true
	conf.NoSync = true

	engine := blockjournal.NewBlockJournal(&conf)

	if err := engine.Init(); err != nil {
		return err
	}
	defer engine.Shutdown()

	block, err := engine.Node.AddEntry(_config.Content, _config.Location)
	if err != nil {
		return err
	}

	out, err := block.Marshal()
	if err != nil {
		return err
	}

	fmt.Fprint(cmd.OutOrStdout(), string(out))

	return nil
}

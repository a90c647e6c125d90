package commands

import (
	"fmt"

	"github.com/mosaicnetworks/blockjournal/src/blockjournal"
	"github.com/spf13/cobra"
)

//NewVerifyCmd returns the command that validates the stored chain
func NewVerifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "verify",
		Short:   "Check the hashes and links of the stored chain",
		PreRunE: loadConfig,
		RunE:    verifyChain,
	}
	AddCommonFlags(cmd)
	return cmd
}

func verifyChain(cmd *cobra.Command, args []string) error {
	n, err := blockjournal.Verify(&_config.Journal, _config.Journal.Logger())
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "chain of %d blocks is valid\n", n)

	return nil
}

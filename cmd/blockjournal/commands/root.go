package commands

import (
	"github.com/spf13/cobra"
)

var (
	_config = NewDefaultCLIConfig()
)

//RootCmd is the root command for blockjournal
var RootCmd = &cobra.Command{
	Use:              "blockjournal",
	Short:            "tamper-evident journal replicated between peers",
	TraverseChildren: true,
}

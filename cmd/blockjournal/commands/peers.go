package commands

import (
	"fmt"

	"github.com/mosaicnetworks/blockjournal/src/blockjournal"
	"github.com/mosaicnetworks/blockjournal/src/peers"
	"github.com/spf13/cobra"
)

//NewPeersCmd returns the command that manages the peers.json file
func NewPeersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "peers",
		Short: "Manage the peers.json file of the data directory",
	}

	listCmd := &cobra.Command{
		Use:     "list",
		Short:   "Print the peers listed in peers.json",
		Args:    cobra.NoArgs,
		PreRunE: loadConfig,
		RunE:    listPeers,
	}
	AddCommonFlags(listCmd)

	addCmd := &cobra.Command{
		Use:     "add [address]",
		Short:   "Add a peer to peers.json",
		Args:    cobra.ExactArgs(1),
		PreRunE: loadConfig,
		RunE:    addPeer,
	}
	AddCommonFlags(addCmd)
	addCmd.Flags().String("moniker", "", "Optional name of the peer")

	removeCmd := &cobra.Command{
		Use:     "remove [address]",
		Short:   "Remove a peer from peers.json",
		Args:    cobra.ExactArgs(1),
		PreRunE: loadConfig,
		RunE:    removePeer,
	}
	AddCommonFlags(removeCmd)

	cmd.AddCommand(listCmd, addCmd, removeCmd)

	return cmd
}

func listPeers(cmd *cobra.Command, args []string) error {
	peerSet, err := blockjournal.LoadPeers(&_config.Journal)
	if err != nil {
		return err
	}
	printPeers(cmd, peerSet)
	return nil
}

func addPeer(cmd *cobra.Command, args []string) error {
	moniker, err := cmd.Flags().GetString("moniker")
	if err != nil {
		return err
	}

	peerSet, err := blockjournal.AddPeer(&_config.Journal, args[0], moniker)
	if err != nil {
		return err
	}
	printPeers(cmd, peerSet)
	return nil
}

func removePeer(cmd *cobra.Command, args []string) error {
	peerSet, err := blockjournal.RemovePeer(&_config.Journal, args[0])
	if err != nil {
		return err
	}
	printPeers(cmd, peerSet)
	return nil
}

func printPeers(cmd *cobra.Command, peerSet *peers.PeerSet) {
	for _, p := range peerSet.Peers {
		fmt.Fprintln(cmd.OutOrStdout(), p.String())
	}
}

package account

import (
	"fmt"

	"github.com/jwalton/gchalk"
	"github.com/shardmc/shard/internals/commands"
	"github.com/shardmc/shard/internals/credentials"
	"github.com/shardmc/shard/internals/globals"
	"github.com/spf13/cobra"
)

func init() {
	show := commands.New(&cobra.Command{
		Use:   "show",
		Short: "Shows the stored account (without the token)",
		Args:  cobra.NoArgs,
	}, &showRunner{})
	clearCmd := commands.New(&cobra.Command{
		Use:   "clear",
		Short: "Removes the stored account",
		Args:  cobra.NoArgs,
	}, &clearRunner{})

	SubCmd.AddCommand(show.Command, clearCmd.Command)
}

type showRunner struct{}

func (s *showRunner) RunE(cmd *cobra.Command, args []string) error {
	store, err := credentials.New(globals.ConfigDir)
	if err != nil {
		return err
	}
	account, err := store.LaunchAccount()
	if err != nil {
		return err
	}

	fmt.Println("  username: " + account.Username)
	fmt.Println("  uuid:     " + account.UUID)
	if account.XUID != "" {
		fmt.Println("  xuid:     " + account.XUID)
	}
	fmt.Println("  token:    " + gchalk.Gray("(hidden)"))
	return nil
}

type clearRunner struct{}

func (c *clearRunner) RunE(cmd *cobra.Command, args []string) error {
	store, err := credentials.New(globals.ConfigDir)
	if err != nil {
		return err
	}
	if err := store.Clear(); err != nil {
		return err
	}
	fmt.Println("Account removed")
	return nil
}

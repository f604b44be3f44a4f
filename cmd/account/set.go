package account

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/shardmc/shard/internals/commands"
	"github.com/shardmc/shard/internals/credentials"
	"github.com/shardmc/shard/internals/globals"
	"github.com/shardmc/shard/internals/minecraft"
	"github.com/spf13/cobra"
)

func init() {
	runner := &setRunner{}
	cmd := commands.New(&cobra.Command{
		Use:   "set",
		Short: "Stores the account to launch with",
		Args:  cobra.NoArgs,
	}, runner)
	cmd.Flags().StringVar(&runner.account.Username, "username", "", "Minecraft username")
	cmd.Flags().StringVar(&runner.account.UUID, "uuid", "", "Minecraft profile uuid")
	cmd.Flags().StringVar(&runner.account.AccessToken, "token", "", "Minecraft access token")
	cmd.Flags().StringVar(&runner.account.XUID, "xuid", "", "Xbox user id (optional)")

	SubCmd.AddCommand(cmd.Command)
}

type setRunner struct {
	account minecraft.LaunchAccount
}

func (s *setRunner) RunE(cmd *cobra.Command, args []string) error {
	missing := []string{}
	if s.account.Username == "" {
		missing = append(missing, "--username")
	}
	if s.account.UUID == "" {
		missing = append(missing, "--uuid")
	}
	if s.account.AccessToken == "" {
		missing = append(missing, "--token")
	}
	if len(missing) != 0 {
		return &commands.CliError{Text: "missing required flags: " + strings.Join(missing, ", ")}
	}

	store, err := credentials.New(globals.ConfigDir)
	if err != nil {
		return err
	}
	account := s.account
	if err := store.SetLaunchAccount(&account); err != nil {
		return errors.Wrap(err, "could not store account")
	}

	fmt.Printf("Account %s stored\n", account.Username)
	if store.NoKeyRingMode {
		fmt.Println("No keyring available, the account was written to " + globals.ConfigDir)
	}
	return nil
}

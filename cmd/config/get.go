package config

import (
	"fmt"

	"github.com/shardmc/shard/internals/commands"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	cmd := commands.New(&cobra.Command{
		Use:   "get <key>",
		Short: "Gets a global config value",
		Args:  cobra.ExactArgs(1),
	}, &getRunner{})

	SubCmd.AddCommand(cmd.Command)
}

type getRunner struct{}

func (i *getRunner) RunE(cmd *cobra.Command, args []string) error {
	entry, err := lookup(args[0])
	if err != nil {
		return err
	}

	value := viper.Get(entry.key)
	if value == nil {
		value = "(unset)"
	}
	fmt.Println("Printing config entry:")
	fmt.Printf("  %s: %v\n", entry.key, value)
	if entry.help != "" {
		fmt.Printf("  # %s\n", entry.help)
	}

	return nil
}

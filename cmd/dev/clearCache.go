package dev

import (
	"fmt"
	"os"

	"github.com/shardmc/shard/internals/commands"
	"github.com/shardmc/shard/internals/globals"
	"github.com/spf13/cobra"
)

func init() {
	cmd := commands.New(&cobra.Command{
		Use:    "clear-cache",
		Short:  "Clears the download and version manifest cache",
		Hidden: false,
	}, &clearCacheRunner{})

	SubCmd.AddCommand(cmd.Command)
}

type clearCacheRunner struct{}

func (i *clearCacheRunner) RunE(cmd *cobra.Command, args []string) error {
	for _, dir := range []string{globals.Paths.CacheDownloads, globals.Paths.CacheManifests} {
		if err := os.RemoveAll(dir); err != nil {
			return err
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
		fmt.Println("cleared " + dir)
	}
	return nil
}

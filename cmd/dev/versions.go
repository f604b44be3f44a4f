package dev

import (
	"fmt"

	"github.com/go-resty/resty/v2"
	"github.com/shardmc/shard/internals/commands"
	"github.com/shardmc/shard/internals/globals"
	"github.com/shardmc/shard/internals/versions"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	runner := &versionsRunner{}
	cmd := commands.New(&cobra.Command{
		Use:   "versions",
		Short: "Lists the Minecraft versions of the version manifest",
		Args:  cobra.NoArgs,
	}, runner)

	cmd.Flags().BoolVar(&runner.snapshots, "snapshots", false, "Also list snapshots and old versions")

	SubCmd.AddCommand(cmd.Command)
}

type versionsRunner struct {
	snapshots bool
}

func (v *versionsRunner) RunE(cmd *cobra.Command, args []string) error {
	resolver := versions.New(globals.Paths, globals.Endpoints.VersionManifest)
	resolver.Client = resty.NewWithClient(globals.HTTPClient)
	resolver.Logger = globals.Logger
	if ttl := viper.GetDuration("manifestTTL"); ttl > 0 {
		resolver.ManifestTTL = ttl
	}

	manifest, err := resolver.Manifest(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Printf("latest release: %s\nlatest snapshot: %s\n\n", manifest.Latest.Release, manifest.Latest.Snapshot)
	for _, entry := range manifest.Versions {
		if !v.snapshots && entry.Type != "release" {
			continue
		}
		fmt.Printf("%-24s %s\n", entry.ID, entry.Type)
	}
	return nil
}

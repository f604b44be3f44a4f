package dev

import (
	"fmt"
	"os"
	"runtime"

	"github.com/charmbracelet/lipgloss"
	"github.com/shardmc/shard/internals/commands"
	"github.com/shardmc/shard/internals/globals"
	"github.com/shardmc/shard/internals/java"
	"github.com/shardmc/shard/internals/minecraft"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	cmd := commands.New(&cobra.Command{
		Use:   "info",
		Short: "Prints the directories, endpoints and platform shard uses",
		Args:  cobra.NoArgs,
	}, &infoRunner{})

	SubCmd.AddCommand(cmd.Command)
}

type infoRunner struct{}

func (i *infoRunner) RunE(cmd *cobra.Command, args []string) error {
	p := globals.Paths
	e := globals.Endpoints
	rc := minecraft.CurrentRuleContext()

	key := lipgloss.NewStyle().Width(18).Foreground(lipgloss.Color("8"))
	row := func(k string, v string) {
		fmt.Fprintln(os.Stdout, "  "+key.Render(k)+v)
	}

	fmt.Println(commands.Title("shard " + globals.Version))
	row("platform", fmt.Sprintf("%s/%s (%s %s)", runtime.GOOS, runtime.GOARCH, rc.OSName, rc.Arch))
	row("java", java.Resolve(viper.GetString("java")))
	row("config", globals.ConfigDir)

	fmt.Println(commands.Title("directories"))
	row("base", p.Base)
	row("profiles", p.Profiles)
	row("instances", p.Instances)
	row("minecraft", p.MinecraftRoot)
	row("assets", p.AssetsRoot)
	row("caches", p.CacheDownloads)

	fmt.Println(commands.Title("endpoints"))
	row("versionManifest", e.VersionManifest)
	row("libraries", e.Libraries)
	row("resources", e.Resources)
	row("fabricMeta", e.FabricMeta)
	row("quiltMeta", e.QuiltMeta)
	row("forgeMaven", e.ForgeMaven)
	row("forgePromotions", e.ForgePromotions)
	row("neoforgeMaven", e.NeoForgeMaven)
	return nil
}

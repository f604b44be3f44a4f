package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jwalton/gchalk"
	"github.com/mattn/go-isatty"
	"github.com/shardmc/shard/cmd/account"
	"github.com/shardmc/shard/cmd/config"
	"github.com/shardmc/shard/cmd/dev"
	"github.com/shardmc/shard/cmd/launch"
	"github.com/shardmc/shard/internals/commands"
	"github.com/shardmc/shard/internals/endpoints"
	"github.com/shardmc/shard/internals/globals"
	"github.com/shardmc/shard/internals/ownhttp"
	"github.com/shardmc/shard/internals/paths"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Version is set by main
var Version = "dev"

var (
	cfgFile       string
	disableColors bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "shard",
	Short: "Prepares and launches Minecraft profiles",
	Long:  "Resolves versions, mod loaders, libraries and assets and launches Minecraft with them",

	Example: `
  shard account set --username Steve --uuid 069a79f4... --token ey...
  shard launch my-profile
  shard launch ./profile.toml --loader fabric --loader-version latest`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setupGlobals()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.Version = Version
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, commands.ErrorBox(err.Error(), ""))
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $XDG_CONFIG_HOME/shard/config.toml)")
	rootCmd.PersistentFlags().BoolVar(&disableColors, "no-color", false, "disable color output")
	rootCmd.PersistentFlags().Bool("verbose", false, "verbose logging")
	viper.BindPFlag("verboseLogging", rootCmd.PersistentFlags().Lookup("verbose"))

	rootCmd.AddCommand(launch.SubCmd)
	rootCmd.AddCommand(launch.PrepareCmd)
	rootCmd.AddCommand(account.SubCmd)
	rootCmd.AddCommand(config.SubCmd)
	rootCmd.AddCommand(dev.SubCmd)
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if disableColors || os.Getenv("CI") != "" {
		gchalk.SetLevel(gchalk.LevelNone)
	}

	configDir, err := os.UserConfigDir()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	globals.ConfigDir = filepath.Join(configDir, "shard")
	config.File = filepath.Join(globals.ConfigDir, "config.toml")

	if cfgFile != "" {
		// Use config file from the flag.
		config.File = cfgFile
	}
	viper.SetConfigFile(config.File)

	viper.SetDefault("nonInteractive", !isatty.IsTerminal(os.Stdout.Fd()))
	viper.SetDefault("verboseLogging", false)
	viper.SetDefault("download.workers", 8)
	viper.SetDefault("manifestTTL", "24h")

	viper.SetEnvPrefix("shard")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	// a missing config file is fine
	if err := viper.ReadInConfig(); err != nil && !os.IsNotExist(err) {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Fprintln(os.Stderr, "Could not read config file:", err)
		}
	}
}

// setupGlobals fills the globals from the config
func setupGlobals() error {
	globals.Version = Version
	ownhttp.Version = Version

	logger, err := newLogger(viper.GetBool("verboseLogging"))
	if err != nil {
		return err
	}
	globals.Logger = logger
	commands.EmojiEnabled = !viper.GetBool("nonInteractive")

	p, err := paths.New(viper.GetString("home"))
	if err != nil {
		return err
	}
	globals.Paths = p

	globals.Endpoints = endpoints.Default().WithOverrides(endpoints.Set{
		VersionManifest: viper.GetString("urls.versionManifest"),
		Libraries:       viper.GetString("urls.libraries"),
		Resources:       viper.GetString("urls.resources"),
		FabricMeta:      viper.GetString("urls.fabricMeta"),
		QuiltMeta:       viper.GetString("urls.quiltMeta"),
		ForgeMaven:      viper.GetString("urls.forgeMaven"),
		ForgePromotions: viper.GetString("urls.forgePromotions"),
		NeoForgeMaven:   viper.GetString("urls.neoforgeMaven"),
	})

	if viper.GetDuration("manifestTTL") <= 0 {
		return fmt.Errorf("manifestTTL has to be a positive duration like %s", 24*time.Hour)
	}
	return nil
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	cfg.Encoding = "console"
	cfg.OutputPaths = []string{"stderr"}
	return cfg.Build()
}

// Package launch contains the launch and prepare commands
package launch

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/shardmc/shard/internals/commands"
	"github.com/shardmc/shard/internals/credentials"
	"github.com/shardmc/shard/internals/globals"
	"github.com/shardmc/shard/internals/launcher"
	"github.com/shardmc/shard/internals/minecraft"
	"github.com/shardmc/shard/internals/profile"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// SubCmd is the launch command
var SubCmd *cobra.Command

func init() {
	runner := &launchRunner{}
	cmd := commands.New(&cobra.Command{
		Use:   "launch <profile>",
		Short: "Launch a Minecraft profile",
		Long: `Prepares everything the profile needs and launches Minecraft.
<profile> is either the id of a profile in the profiles directory or a path to a profile file.`,
		Aliases: []string{"run", "start", "play"},
		Args:    cobra.ExactArgs(1),
	}, runner)
	runner.overwrites = launcher.CmdOverwriteFlags(cmd.Command)

	SubCmd = cmd.Command
}

type launchRunner struct {
	overwrites *launcher.OverwriteFlags
}

func (l *launchRunner) RunE(cmd *cobra.Command, args []string) error {
	prof, err := loadProfile(args[0])
	if err != nil {
		return err
	}
	l.overwrites.ApplyOverWrites(prof)

	account, err := launchAccount()
	if err != nil {
		return err
	}

	printIntro(prof)
	ln, spin := newLauncher(account)
	ln.OnStage = func(e launcher.Event) {
		if e.Stage == launcher.StageLaunching {
			spin.Stop()
			printLaunching()
			return
		}
		spin.HandleStage(e)
	}

	err = ln.Launch(cmd.Context(), prof)
	var exitErr *launcher.ExitError
	if errors.As(err, &exitErr) {
		handleCrash(prof, exitErr)
	}
	return err
}

// loadProfile loads a profile file, a directory containing a profile or a profile by id
func loadProfile(arg string) (*profile.Profile, error) {
	info, err := os.Stat(arg)
	switch {
	case err == nil && !info.IsDir():
		return profile.Load(arg)
	case err == nil && info.IsDir():
		for _, name := range []string{"profile.toml", "profile.json"} {
			candidate := filepath.Join(arg, name)
			if _, err := os.Stat(candidate); err == nil {
				return profile.Load(candidate)
			}
		}
	}
	return profile.LoadByID(globals.Paths, arg)
}

func launchAccount() (*minecraft.LaunchAccount, error) {
	store, err := credentials.New(globals.ConfigDir)
	if err != nil {
		return nil, err
	}
	account, err := store.LaunchAccount()
	if err != nil {
		return nil, &commands.CliError{
			Text:        err.Error(),
			Err:         err,
			Suggestions: []string{"Run `shard account set --username <name> --uuid <uuid> --token <token>`"},
		}
	}
	return account, nil
}

// newLauncher returns a launcher configured from the globals and a spinner for its progress
func newLauncher(account *minecraft.LaunchAccount) (*launcher.Launcher, *launcher.MaybeSpinner) {
	l := launcher.New(globals.Paths, globals.Endpoints)
	l.HTTPClient = globals.HTTPClient
	l.Account = account
	l.Java = viper.GetString("java")
	l.Workers = viper.GetInt("download.workers")
	l.ManifestTTL = viper.GetDuration("manifestTTL")
	l.Version = globals.Version
	l.Logger = globals.Logger

	spin := launcher.NewMaybeSpinner(!viper.GetBool("nonInteractive"), os.Stdout)
	l.OnStage = spin.HandleStage
	l.OnProgress = spin.HandleProgress
	return l, spin
}

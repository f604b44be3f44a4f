package launch

import (
	"fmt"

	"github.com/alessio/shellescape"
	"github.com/shardmc/shard/internals/commands"
	"github.com/shardmc/shard/internals/instances"
	"github.com/shardmc/shard/internals/launcher"
	"github.com/spf13/cobra"
)

// PrepareCmd is the prepare command
var PrepareCmd *cobra.Command

func init() {
	runner := &prepareRunner{}
	cmd := commands.New(&cobra.Command{
		Use:   "prepare <profile>",
		Short: "Downloads everything a profile needs without launching it",
		Args:  cobra.ExactArgs(1),
	}, runner)
	runner.overwrites = launcher.CmdOverwriteFlags(cmd.Command)
	cmd.Flags().BoolVar(&runner.printCommand, "print-command", false, "Print the java command line (the access token is masked)")

	PrepareCmd = cmd.Command
}

type prepareRunner struct {
	overwrites   *launcher.OverwriteFlags
	printCommand bool
}

func (p *prepareRunner) RunE(cmd *cobra.Command, args []string) error {
	prof, err := loadProfile(args[0])
	if err != nil {
		return err
	}
	p.overwrites.ApplyOverWrites(prof)

	account, err := launchAccount()
	if err != nil {
		return err
	}

	printIntro(prof)
	ln, _ := newLauncher(account)
	plan, err := ln.Prepare(cmd.Context(), prof)
	if err != nil {
		return err
	}

	printPlan(plan)
	if p.printCommand {
		fmt.Println(shellescape.QuoteCommand(maskedCommand(plan, account.AccessToken)))
	}
	return nil
}

// maskedCommand returns the full command line with the access token replaced
func maskedCommand(plan *instances.LaunchPlan, token string) []string {
	args := append([]string{plan.Java}, plan.Args()...)
	if token == "" {
		return args
	}
	for i, arg := range args {
		if arg == token {
			args[i] = "<access token>"
		}
	}
	return args
}

// Package commands contains helpers shared by the cli commands
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Command is a cobra command with rich error output
type Command struct {
	*cobra.Command
	runner Runner
}

// Runner is implemented by every command
type Runner interface {
	RunE(cmd *cobra.Command, args []string) error
}

// New wraps cmd. Errors returned by run are printed as error box and exit with 1
func New(cmd *cobra.Command, run Runner) *Command {
	build := &Command{
		cmd,
		run,
	}
	build.Command.Run = func(cmd *cobra.Command, args []string) {
		err := run.RunE(cmd, args)
		if err != nil {
			fmt.Fprintln(os.Stderr, FromError(err).RichError()+"\n")
			os.Exit(1)
		}
	}

	return build
}

// Package account contains the commands to manage the stored launch account
package account

import (
	"github.com/spf13/cobra"
)

// SubCmd is the account command
var SubCmd = &cobra.Command{
	Use:   "account",
	Short: "Manage the account passed to Minecraft",
	Long: `Shard does not log in by itself. The account (uuid, username and access token)
has to be obtained elsewhere and is stored in the OS keyring (or a file if there is none).`,
}

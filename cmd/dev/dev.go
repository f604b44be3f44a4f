// Package dev contains commands that help debugging shard itself
package dev

import "github.com/spf13/cobra"

var SubCmd = &cobra.Command{
	Use:     "dev",
	Short:   "Debugging and maintenance commands",
	Aliases: []string{"d"},
}

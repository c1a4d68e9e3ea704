package cmd

import (
	"github.com/spf13/cobra"
)

var inviteCommand = cobra.Command{
	Use:   "invite",
	Short: "invite token related commands",
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

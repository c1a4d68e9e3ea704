package cmd

import (
	"github.com/spf13/cobra"
)

var tripCommand = cobra.Command{
	Use:   "trip",
	Short: "trip related commands",
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

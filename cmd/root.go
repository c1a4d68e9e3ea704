package cmd

import (
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/triptogether/triptogether/config"
)

// ConfigFileLocation is of the config to load
var ConfigFileLocation string

// TopLevelLogger is the logger all loggers come from
var TopLevelLogger *zap.Logger

// LoadedConfig is the currently loaded configuration after initial bootstrapping
var LoadedConfig *config.Configuration

// EmailTemplateFS holds the email template, embedded or from disk
var EmailTemplateFS fs.FS

var rootCommand = cobra.Command{
	Use:   "triptogether",
	Short: "triptogether trip planning service",
	Long: `triptogether is the backend of the collaborative trip planner,
	it serves the api and ships a few maintenance commands`,
	Run: func(cmd *cobra.Command, args []string) {
		serveCommand.Run(cmd, args)
	},
}

func Execute() {
	if err := rootCommand.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {

	rootCommand.PersistentFlags().
		StringVar(&ConfigFileLocation, "config", "", "config file to be used")

	verifyCommand.AddCommand(&sendTestMailCommand)

	userCommand.AddCommand(&userCreateCommand)
	userCommand.AddCommand(&unlockUserCommand)
	userCommand.AddCommand(&listUsersCommand)

	inviteCommand.AddCommand(&seedInviteCommand)
	inviteCommand.AddCommand(&listInvitesCommand)
	inviteCommand.AddCommand(&revokeInviteCommand)

	tripCommand.AddCommand(&createTripCommand)

	rootCommand.AddCommand(&verifyCommand)
	rootCommand.AddCommand(&inviteCommand)
	rootCommand.AddCommand(&userCommand)
	rootCommand.AddCommand(&tripCommand)
	rootCommand.AddCommand(&serveCommand)
	rootCommand.AddCommand(&keyCommand)
	rootCommand.AddCommand(&tokenIssueCommand)
}

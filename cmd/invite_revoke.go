package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/triptogether/triptogether/invites"
	"github.com/triptogether/triptogether/user"
)

var revokeBy string

var revokeInviteCommand = cobra.Command{
	Use:   "revoke",
	Short: "revokes an unused invite",
	Long:  `Revokes an invite before it is used, consumed invites cannot be revoked`,
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) < 1 || args[0] == "" {
			return errors.New("invite revoke (invite id) - requires the invite id")
		}
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		dataStore := mustResolveUsableDataStore()
		mailer := mustResolveMailer()
		dispatcher := bootstrapDispatcher(dataStore.Auditor())

		inviteID, err := uuid.Parse(args[0])
		if err != nil {
			fmt.Printf("Invalid invite id: %s\r\n", args[0])
			os.Exit(1)
			return
		}
		us := user.New(dataStore, TopLevelLogger.Named("user_service"), LoadedConfig, dispatcher)
		revokedBy, found := us.EmailToID(cmd.Context(), revokeBy)
		if !found {
			fmt.Printf("No user found for admin email %s\r\n", revokeBy)
			os.Exit(1)
			return
		}
		service := invites.New(
			dataStore,
			TopLevelLogger.Named("invite_service"),
			LoadedConfig,
			mailer,
			dispatcher,
		)
		err = service.Revoke(cmd.Context(), inviteID, revokedBy)
		if err != nil {
			fmt.Printf("Could not revoke invite: %s\r\n", err)
			os.Exit(1)
			return
		}
		fmt.Println("Revoked invite")
	},
}

func init() {
	revokeInviteCommand.Flags().
		StringVar(&revokeBy, "by", "", "email of the trip admin revoking the invite")
	_ = revokeInviteCommand.MarkFlagRequired("by")
}

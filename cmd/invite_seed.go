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

var seedTripID string
var seedIssuer string

var seedInviteCommand = cobra.Command{
	Use:   "seed",
	Short: "generates an invite token for a trip",
	Long:  `this can and may be used to seed an invite token for a trip outside of the api`,
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) < 1 || args[0] == "" {
			return errors.New("invite seed (email) - requires the invitee email")
		}
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		dataStore := mustResolveUsableDataStore()
		mailer := mustResolveMailer()
		dispatcher := bootstrapDispatcher(dataStore.Auditor())

		tripID, err := uuid.Parse(seedTripID)
		if err != nil {
			fmt.Printf("Invalid trip id: %s\r\n", seedTripID)
			os.Exit(1)
			return
		}
		us := user.New(dataStore, TopLevelLogger.Named("user_service"), LoadedConfig, dispatcher)
		issuedBy, found := us.EmailToID(cmd.Context(), seedIssuer)
		if !found {
			fmt.Printf("No user found for issuer email %s\r\n", seedIssuer)
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
		invite, err := service.Issue(cmd.Context(), tripID, args[0], issuedBy)
		if err != nil {
			fmt.Printf("Could not generate invite: %s\r\n", err)
			os.Exit(1)
			return
		}
		fmt.Printf("Your new invite token is %s", invite.Token)
	},
}

func init() {
	seedInviteCommand.Flags().
		StringVar(&seedTripID, "trip", "", "id of the trip the invite belongs to")
	seedInviteCommand.Flags().
		StringVar(&seedIssuer, "by", "", "email of the trip admin issuing the invite")
	_ = seedInviteCommand.MarkFlagRequired("trip")
	_ = seedInviteCommand.MarkFlagRequired("by")
}

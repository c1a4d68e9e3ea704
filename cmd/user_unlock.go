package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/triptogether/triptogether/user"
)

var unlockUserCommand = cobra.Command{
	Use:   "unlock",
	Short: "unlocks a user",
	Long:  `Unlocks a user that got auto-locked from too many failed sign in attempts`,
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) < 1 || args[0] == "" {
			return errors.New("user unlock (email) - requires a email")
		}
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		dataStore := mustResolveUsableDataStore()
		dispatcher := bootstrapDispatcher(dataStore.Auditor())
		us := user.New(dataStore, TopLevelLogger.Named("user_service"), LoadedConfig, dispatcher)
		id, found := us.EmailToID(cmd.Context(), args[0])
		if !found {
			fmt.Printf("Unable to unlock user: no user for %s", args[0])
			os.Exit(1)
			return
		}
		err := us.UnlockUser(cmd.Context(), id)
		if err != nil {
			fmt.Printf("Unable to unlock user: %s", err)
			os.Exit(1)
			return
		}
		fmt.Println("Unlocked user")
	},
}

package cmd

import (
	"fmt"
	"os"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/triptogether/triptogether/tokens"
	"github.com/triptogether/triptogether/user"
)

var tokenIssueCommand = cobra.Command{
	Use:   "issue-token",
	Short: "issues a session token (jwt) for [user], mainly used for testing",
	Long:  `this command can be used to issue a new session token for a given user`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		dataStore := mustResolveUsableDataStore()
		dispatcher := bootstrapDispatcher(dataStore.Auditor())

		signInService := user.NewSignInService(
			dataStore,
			TopLevelLogger.Named("signin_service"),
			LoadedConfig.Behaviour,
			dispatcher,
			dataStore,
		)

		pwd := []byte{}
		var err error
		for len(pwd) == 0 {
			fmt.Println("password?")
			pwd, err = term.ReadPassword(int(syscall.Stdin))
			if err != nil {
				fmt.Printf("Unable to read password: %s", err)
				os.Exit(1)
				return
			}
		}

		signedIn, err := signInService.SignIn(cmd.Context(), args[0], string(pwd))
		if err != nil {
			fmt.Printf("Unable to sign user in: %s", err)
			os.Exit(1)
			return
		}

		issuer := tokens.NewIssuer(
			TopLevelLogger.Named("token_issuer"),
			LoadedConfig.JWT,
		)
		token, err := issuer.IssueSessionToken(signedIn.UserID, signedIn.Email, signedIn.FullName)
		if err != nil {
			fmt.Printf("Could not create new token: %s\r\n", err)
			return
		}
		signed, err := issuer.Sign(token)
		if err != nil {
			fmt.Printf("Could not sign new token: %s\r\n", err)
			return
		}

		fmt.Printf("Created new session token: %v\r\n", string(signed))
	},
}

package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/triptogether/triptogether/user"
)

var userCreateCommand = cobra.Command{
	Use:   "create",
	Short: "launches a on terminal user creation dialog",
	Long:  `this command may be used to create a user account from command line`,
	Run: func(cmd *cobra.Command, args []string) {
		dataStore := mustResolveUsableDataStore()
		dispatcher := bootstrapDispatcher(dataStore.Auditor())
		reader := bufio.NewReader(os.Stdin)

		fmt.Println("email?")
		email, err := reader.ReadString('\n')
		if err != nil {
			fmt.Printf("Unable to read email: %s", err)
			os.Exit(1)
			return
		}
		trimmed := strings.Trim(email, " \t\r\n")

		fmt.Println("full name?")
		fullName, err := reader.ReadString('\n')
		if err != nil {
			fmt.Printf("Unable to read full name: %s", err)
			os.Exit(1)
			return
		}

		fmt.Println("password?")
		pwd, err := term.ReadPassword(int(syscall.Stdin))
		if err != nil {
			fmt.Printf("Unable to read password: %s", err)
			os.Exit(1)
			return
		}
		for len(pwd) < LoadedConfig.Behaviour.PasswordMinLength {
			fmt.Printf(
				"password needs to be at least %d long.\r\n",
				LoadedConfig.Behaviour.PasswordMinLength,
			)
			fmt.Println("password?")
			pwd, err = term.ReadPassword(int(syscall.Stdin))
			if err != nil {
				fmt.Printf("Unable to read password: %s", err)
				os.Exit(1)
				return
			}
		}
		us := user.New(
			dataStore,
			TopLevelLogger.Named("user_service"),
			LoadedConfig,
			dispatcher,
		)
		id, err := us.RegisterUser(
			cmd.Context(),
			trimmed,
			string(pwd),
			strings.Trim(fullName, " \t\r\n"),
		)
		if err != nil {
			fmt.Printf("Unable to create user: %s \r\n", err)
			os.Exit(1)
			return
		}
		fmt.Printf("Created user for email %s with id: %v", trimmed, id)
	},
}

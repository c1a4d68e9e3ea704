package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/triptogether/triptogether/db"
)

var listUsersPage int

var listUsersCommand = cobra.Command{
	Use:   "ls",
	Short: "Lists registered users",
	Long:  `This will list registered users, newest first`,
	Run: func(cmd *cobra.Command, args []string) {
		dataStore := mustResolveUsableDataStore()
		entries, total, err := dataStore.Users(cmd.Context(), db.ListOptions{
			Page:     listUsersPage,
			PageSize: 50,
		})
		if err != nil {
			fmt.Printf("Unable to load users: %s", err)
			os.Exit(1)
			return
		}
		w := tabwriter.NewWriter(os.Stdout, 1, 1, 1, ' ', 0)
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s \r\n", "ID", "Email", "FullName", "LockoutTill", "CreatedAt")
		formatDt := func(t *time.Time) string {
			if t != nil {
				return t.Format("2006-02-01")
			}
			return "-"
		}
		for _, v := range entries {
			name := "-"
			if v.FullName != nil {
				name = *v.FullName
			}
			fmt.Fprintf(
				w,
				"%s\t%s\t%s\t%s\t%s \r\n",
				v.ID,
				v.Email,
				name,
				formatDt(v.LockoutTill),
				formatDt(&v.CreatedAt),
			)
		}
		w.Flush()
		fmt.Printf("Total users: %d\r\n", total)
	},
}

func init() {
	listUsersCommand.Flags().
		IntVar(&listUsersPage, "page", 1, "page of the user list to show")
}

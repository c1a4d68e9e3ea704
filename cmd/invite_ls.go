package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var listTripID string

var listInvitesCommand = cobra.Command{
	Use:   "ls",
	Short: "Lists all invites of a trip",
	Long:  `This will list all invites issued for a given trip`,
	Run: func(cmd *cobra.Command, args []string) {
		//setup datastore
		dataStore := mustResolveUsableDataStore()
		tripID, err := uuid.Parse(listTripID)
		if err != nil {
			fmt.Printf("Invalid trip id: %s\r\n", listTripID)
			os.Exit(1)
			return
		}
		entries, err := dataStore.InvitesByTrip(cmd.Context(), tripID)
		if err != nil {
			fmt.Printf("Unable to load invites: %s", err)
			os.Exit(1)
			return
		}
		w := tabwriter.NewWriter(os.Stdout, 1, 1, 1, ' ', 0)
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s \r\n", "ID", "Email", "UsedAt", "CreatedAt", "ExpiresAt")
		formatDt := func(t *time.Time) string {
			if t != nil {
				return t.Format("2006-02-01")
			}
			return "-"
		}
		for _, v := range entries {
			fmt.Fprintf(
				w,
				"%s\t%s\t%s\t%s\t%s \r\n",
				v.ID,
				v.Email,
				formatDt(v.UsedAt),
				formatDt(&v.CreatedAt),
				formatDt(&v.ExpiresAt),
			)
		}
		fmt.Fprintf(w, "------------------------------------------------- \r\n")
		fmt.Fprintf(w, "%d entries loaded", len(entries))
		w.Flush()
	},
}

func init() {
	listInvitesCommand.Flags().
		StringVar(&listTripID, "trip", "", "id of the trip to list invites for")
	_ = listInvitesCommand.MarkFlagRequired("trip")
}

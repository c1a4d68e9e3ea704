package cmd

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/triptogether/triptogether/trips"
	"github.com/triptogether/triptogether/user"
)

var tripHost string
var tripStart string
var tripEnd string

var createTripCommand = cobra.Command{
	Use:   "create",
	Short: "creates a trip",
	Long:  `Creates a trip with the given host as its admin member`,
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) < 1 || args[0] == "" {
			return errors.New("trip create (name) - requires the trip name")
		}
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		dataStore := mustResolveUsableDataStore()
		dispatcher := bootstrapDispatcher(dataStore.Auditor())

		start, err := time.Parse("2006-01-02", tripStart)
		if err != nil {
			fmt.Printf("Invalid start date: %s\r\n", tripStart)
			os.Exit(1)
			return
		}
		end, err := time.Parse("2006-01-02", tripEnd)
		if err != nil {
			fmt.Printf("Invalid end date: %s\r\n", tripEnd)
			os.Exit(1)
			return
		}
		us := user.New(dataStore, TopLevelLogger.Named("user_service"), LoadedConfig, dispatcher)
		host, found := us.EmailToID(cmd.Context(), tripHost)
		if !found {
			fmt.Printf("No user found for host email %s\r\n", tripHost)
			os.Exit(1)
			return
		}
		service := trips.New(dataStore, TopLevelLogger.Named("trip_service"), dispatcher)
		id, err := service.Create(cmd.Context(), host, trips.TripInput{
			Name:      args[0],
			StartDate: start,
			EndDate:   end,
		})
		if err != nil {
			fmt.Printf("Could not create trip: %s\r\n", err)
			os.Exit(1)
			return
		}
		fmt.Printf("Created trip %s", id)
	},
}

func init() {
	createTripCommand.Flags().
		StringVar(&tripHost, "host", "", "email of the user hosting the trip")
	createTripCommand.Flags().
		StringVar(&tripStart, "start", "", "start date (2006-01-02)")
	createTripCommand.Flags().
		StringVar(&tripEnd, "end", "", "end date (2006-01-02)")
	_ = createTripCommand.MarkFlagRequired("host")
	_ = createTripCommand.MarkFlagRequired("start")
	_ = createTripCommand.MarkFlagRequired("end")
}

package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/triptogether/triptogether/api"
	"github.com/triptogether/triptogether/invites"
	"github.com/triptogether/triptogether/tokens"
	"github.com/triptogether/triptogether/trips"
	"github.com/triptogether/triptogether/user"
)

var serveCommand = cobra.Command{
	Use:   "serve",
	Short: "starts the http server",
	Long:  `Starts a http server and serves the service`,
	Run: func(cmd *cobra.Command, args []string) {
		//this is our composite root - might wanan shift that sommewhere else later

		//setup datastore
		dataStore := mustResolveUsableDataStore()

		//setup token issuer
		issuer := tokens.NewIssuer(TopLevelLogger.Named("token_issuer"), LoadedConfig.JWT)

		//setup mailer
		mailer := mustResolveMailer()

		//events dispatcher
		dispatcher := bootstrapDispatcher(dataStore.Auditor())

		//setup business services
		signInService := user.NewSignInService(dataStore, TopLevelLogger.Named("signin_service"), LoadedConfig.Behaviour, dispatcher, dataStore)
		userService := user.New(dataStore, TopLevelLogger.Named("user_service"), LoadedConfig, dispatcher)
		tripService := trips.New(dataStore, TopLevelLogger.Named("trip_service"), dispatcher)
		inviteService := invites.New(dataStore, TopLevelLogger.Named("invite_service"), LoadedConfig, mailer, dispatcher)

		server, err := api.NewServer(LoadedConfig, TopLevelLogger.Named("server"),
			issuer,
			signInService,
			userService,
			tripService,
			inviteService,
			dataStore,
			mailer,
		)
		if err != nil {
			TopLevelLogger.Fatal("Failed to create server", zap.Error(err))
		}
		err = server.Start()
		if err != nil {
			TopLevelLogger.Fatal("Server stopped with error", zap.Error(err))
		}
		TopLevelLogger.Info("Shutdown complete")
	},
}

func init() {
	viper.SetDefault("port", "3000")
	viper.SetDefault("log_level", "debug")
}

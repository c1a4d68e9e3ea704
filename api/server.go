package api

import (
	"context"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/triptogether/triptogether/config"
	"github.com/triptogether/triptogether/db"
	"github.com/triptogether/triptogether/invites"
	"github.com/triptogether/triptogether/mailing"
	"github.com/triptogether/triptogether/tokens"
	"github.com/triptogether/triptogether/trips"
	"github.com/triptogether/triptogether/user"
)

type Server struct {
	server *http.Server
	log    *zap.Logger
}

func NewServer(
	cfg *config.Configuration,
	logger *zap.Logger,
	issuer *tokens.TokenIssuer,
	signInService *user.SigninService,
	userService *user.Service,
	tripService *trips.Service,
	inviteService *invites.Service,
	store *db.DataStore,
	mailer *mailing.Mailer) (*Server, error) {
	api, err := compose(logger.Named("api"),
		cfg,
		issuer,
		signInService,
		userService,
		tripService,
		inviteService,
		store,
		mailer)
	if err != nil {
		return nil, err
	}
	bind := net.JoinHostPort(cfg.Server.Address, strconv.Itoa(cfg.Server.Port))
	srv := http.Server{
		Addr:              bind,
		Handler:           api,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return &Server{
		server: &srv,
		log:    logger,
	}, nil
}

// Start runs ListenAndServe on the http.Server with graceful shutdown.
func (srv *Server) Start() error {
	srv.log.Info("starting server")
	go func() {
		if err := srv.server.ListenAndServe(); err != http.ErrServerClosed {
			panic(err)
		}
	}()
	srv.log.Info("listening", zap.String("addr", srv.server.Addr))

	quit := make(chan os.Signal, 1)
	//nolint
	signal.Notify(quit, os.Interrupt)
	sig := <-quit
	srv.log.Info("shutting down", zap.Any("signal", sig))

	if err := srv.server.Shutdown(context.Background()); err != nil {
		srv.log.Error("graceful shutdown failed", zap.Error(err))
		return err
	}
	srv.log.Info("graceful shutdown completed")
	return nil
}

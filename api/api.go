package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/jwtauth/v5"
	"github.com/go-playground/validator/v10"

	"github.com/triptogether/triptogether/api/app/auth"
	"github.com/triptogether/triptogether/api/app/invite"
	"github.com/triptogether/triptogether/api/app/meta"
	"github.com/triptogether/triptogether/api/app/trip"
	"github.com/triptogether/triptogether/config"
	"github.com/triptogether/triptogether/db"
	"github.com/triptogether/triptogether/invites"
	"github.com/triptogether/triptogether/mailing"
	"github.com/triptogether/triptogether/tokens"
	"github.com/triptogether/triptogether/trips"
	"github.com/triptogether/triptogether/user"

	"go.uber.org/zap"
)

var validate *validator.Validate
var tokenAuth *jwtauth.JWTAuth

func compose(logger *zap.Logger,
	cfg *config.Configuration,
	issuer *tokens.TokenIssuer,
	signInService *user.SigninService,
	userService *user.Service,
	tripService *trips.Service,
	inviteService *invites.Service,
	store *db.DataStore,
	mailer *mailing.Mailer) (*chi.Mux, error) {
	validate = validator.New()

	err := validate.RegisterValidation("minpwd", func(fl validator.FieldLevel) bool {
		if cfg.Behaviour.PasswordMinLength <= 0 {
			return true
		}
		return len(fl.Field().String()) >= cfg.Behaviour.PasswordMinLength
	})
	if err != nil {
		logger.Error("Could not create minpwd validation", zap.Error(err))
	}
	// use same settings as issuer (duh)
	tokenAuth = jwtauth.New(issuer.Alg(), issuer.PrivateKey(), issuer.PublicKey())

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)

	r.Use(loggerMiddleware(logger))

	r.Use(middleware.Recoverer)

	r.Use(middleware.Timeout(50 * time.Second))
	if cfg.CORS != nil {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   cfg.CORS.AllowedOrigins,
			AllowedMethods:   cfg.CORS.AllowedMethods,
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
			AllowCredentials: cfg.CORS.AllowCredentials,
			MaxAge:           300,
		}))
	}
	r.Use(jwtauth.Verifier(tokenAuth))

	if cfg.DebugMode() {
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("running in debug mode - no auto redirects to site"))
		})
	} else {
		r.NotFound(func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, cfg.Behaviour.Site, http.StatusFound)
		})
	}

	authRessource := auth.NewAuthRessource(
		logger.Named("auth_ressource"),
		cfg,
		signInService,
		userService,
		issuer,
		mailer,
		validate,
	)
	inviteRessource := invite.NewInviteRessource(
		logger.Named("invite_ressource"),
		inviteService,
		userService,
		signInService,
		store,
		issuer,
	)
	tripRessource := trip.NewTripRessource(
		logger.Named("trip_ressource"),
		tripService,
		inviteService,
		validate,
	)
	metaRessource := meta.NewMetaRessource(logger.Named("meta_ressource"), cfg.Behaviour, issuer)

	r.Mount("/auth", authRessource.Router())

	r.Mount("/invite", inviteRessource.Router())

	r.Mount("/trips", tripRessource.Router())

	r.Mount("/.well-known", metaRessource.Router())

	return r, nil
}

package auth

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/triptogether/triptogether/config"
	"github.com/triptogether/triptogether/mailing"
	"github.com/triptogether/triptogether/sanitize"
	"github.com/triptogether/triptogether/tokens"
	"github.com/triptogether/triptogether/user"
)

// AuthRessource habours signup, signin and the federated Google flow
type AuthRessource struct {
	log           *zap.Logger
	cfg           *config.Configuration
	signInService *user.SigninService
	userService   *user.Service
	issuer        *tokens.TokenIssuer
	mailer        *mailing.Mailer
	validate      *validator.Validate
	google        *googleFlow
}

func NewAuthRessource(
	log *zap.Logger,
	cfg *config.Configuration,
	signInService *user.SigninService,
	userService *user.Service,
	issuer *tokens.TokenIssuer,
	mailer *mailing.Mailer,
	validate *validator.Validate,
) *AuthRessource {
	a := &AuthRessource{
		log:           log,
		cfg:           cfg,
		signInService: signInService,
		userService:   userService,
		issuer:        issuer,
		mailer:        mailer,
		validate:      validate,
	}
	if cfg.Google != nil && cfg.Google.Enabled {
		a.google = newGoogleFlow(a)
	}
	return a
}

func (a *AuthRessource) Router() *chi.Mux {
	r := chi.NewRouter()

	r.Post("/signup", a.signup)
	r.Post("/signin", a.signin)
	if a.google != nil {
		r.Get("/google", a.google.serveLogin)
		r.Get("/google/callback", a.google.serveCallback)
	}

	r.Group(func(gr chi.Router) {
		gr.Use(jwtauth.Authenticator)
		gr.Get("/me", a.me)
		gr.Put("/password", a.changePassword)
		gr.Put("/profile", a.updateProfile)
	})
	return r
}

func (a *AuthRessource) sessionUserID(r *http.Request) (uuid.UUID, error) {
	token, _, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return uuid.UUID{}, err
	}
	return uuid.Parse(token.Subject())
}

func (a *AuthRessource) respondWithToken(
	w http.ResponseWriter,
	r *http.Request,
	signedIn *user.SignedInUser,
) {
	token, err := a.issuer.IssueSessionToken(signedIn.UserID, signedIn.Email, signedIn.FullName)
	if err != nil {
		a.log.Error("unable to issue session token", zap.Error(err))
		_ = render.Render(w, r, createError("internal error", http.StatusInternalServerError))
		return
	}
	signed, err := a.issuer.Sign(token)
	if err != nil {
		a.log.Error("unable to sign session token", zap.Error(err))
		_ = render.Render(w, r, createError("internal error", http.StatusInternalServerError))
		return
	}
	err = render.Render(w, r, &tokenResponse{
		AccessToken: string(signed),
		TokenType:   "Bearer",
		ExpiresIn:   int(a.issuer.Expiry().Seconds()),
	})
	if err != nil {
		a.log.Error("unable to render response", zap.Error(err))
	}
}

func (a *AuthRessource) signup(w http.ResponseWriter, r *http.Request) {
	var req *signupRequest
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		a.log.Info("invalid payload data", zap.Error(err))
		_ = render.Render(w, r, createError("invalid payload", http.StatusBadRequest))
		return
	}
	if err := a.validate.Struct(req); err != nil {
		_ = render.Render(w, r, createError(err.Error(), http.StatusUnprocessableEntity))
		return
	}
	_, err = a.userService.RegisterUser(r.Context(), req.Email, req.Password, req.FullName)
	if err != nil {
		if errors.Is(err, user.ErrEntityAlreadyExists) {
			_ = render.Render(w, r, createError("an account with this email already exists", http.StatusConflict))
			return
		}
		if errors.Is(err, user.ErrPasswordGuidelines) {
			_ = render.Render(w, r, createError(err.Error(), http.StatusUnprocessableEntity))
			return
		}
		a.log.Error("signup failed", zap.Error(err))
		_ = render.Render(w, r, createError("internal error", http.StatusInternalServerError))
		return
	}
	merr := a.mailer.SendWelcomeMail(req.Email, req.FullName)
	if merr != nil {
		a.log.Warn("could not send welcome mail", sanitize.Email("email", req.Email), zap.Error(merr))
	}
	signedIn, err := a.signInService.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		a.log.Error("signin after signup failed", zap.Error(err))
		_ = render.Render(w, r, createError("internal error", http.StatusInternalServerError))
		return
	}
	a.respondWithToken(w, r, signedIn)
}

func (a *AuthRessource) signin(w http.ResponseWriter, r *http.Request) {
	var req *signinRequest
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		a.log.Info("invalid payload data", zap.Error(err))
		_ = render.Render(w, r, createError("invalid payload", http.StatusBadRequest))
		return
	}
	if err := a.validate.Struct(req); err != nil {
		_ = render.Render(w, r, createError(err.Error(), http.StatusUnprocessableEntity))
		return
	}
	signedIn, err := a.signInService.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		// wrong email and wrong password read the same on purpose
		if errors.Is(err, user.ErrEntityDoesNotExist) ||
			errors.Is(err, user.ErrInvalidCredentials) {
			_ = render.Render(w, r, createError("invalid credentials", http.StatusUnauthorized))
			return
		}
		if errors.Is(err, user.ErrEntityOperationForbidden) {
			_ = render.Render(w, r, createError("account is locked, try again later", http.StatusForbidden))
			return
		}
		a.log.Error("signin failed", zap.Error(err))
		_ = render.Render(w, r, createError("internal error", http.StatusInternalServerError))
		return
	}
	a.respondWithToken(w, r, signedIn)
}

func (a *AuthRessource) me(w http.ResponseWriter, r *http.Request) {
	id, err := a.sessionUserID(r)
	if err != nil {
		_ = render.Render(w, r, createError("unauthorized", http.StatusUnauthorized))
		return
	}
	signedIn, err := a.signInService.UserFromSubject(r.Context(), id)
	if err != nil {
		_ = render.Render(w, r, createError("unauthorized", http.StatusUnauthorized))
		return
	}
	_ = render.Render(w, r, &profileResponse{
		ID:       signedIn.UserID,
		Email:    signedIn.Email,
		FullName: signedIn.FullName,
	})
}

func (a *AuthRessource) changePassword(w http.ResponseWriter, r *http.Request) {
	id, err := a.sessionUserID(r)
	if err != nil {
		_ = render.Render(w, r, createError("unauthorized", http.StatusUnauthorized))
		return
	}
	var req *changePasswordRequest
	err = json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		_ = render.Render(w, r, createError("invalid payload", http.StatusBadRequest))
		return
	}
	if err := a.validate.Struct(req); err != nil {
		_ = render.Render(w, r, createError(err.Error(), http.StatusUnprocessableEntity))
		return
	}
	if err := a.signInService.Validate(r.Context(), id, req.CurrentPassword); err != nil {
		_ = render.Render(w, r, createError("current password is not correct", http.StatusForbidden))
		return
	}
	if err := a.userService.ChangePassword(r.Context(), id, req.NewPassword); err != nil {
		if errors.Is(err, user.ErrPasswordGuidelines) {
			_ = render.Render(w, r, createError(err.Error(), http.StatusUnprocessableEntity))
			return
		}
		a.log.Error("could not change password", zap.Error(err))
		_ = render.Render(w, r, createError("internal error", http.StatusInternalServerError))
		return
	}
	_ = render.Render(w, r, &genericSuccessResponse{Success: true, Message: "password changed"})
}

func (a *AuthRessource) updateProfile(w http.ResponseWriter, r *http.Request) {
	id, err := a.sessionUserID(r)
	if err != nil {
		_ = render.Render(w, r, createError("unauthorized", http.StatusUnauthorized))
		return
	}
	var req *updateProfileRequest
	err = json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		_ = render.Render(w, r, createError("invalid payload", http.StatusBadRequest))
		return
	}
	if err := a.userService.UpdateProfile(r.Context(), id, req.FullName, req.AvatarURL); err != nil {
		a.log.Error("could not update profile", zap.Error(err))
		_ = render.Render(w, r, createError("internal error", http.StatusInternalServerError))
		return
	}
	_ = render.Render(w, r, &genericSuccessResponse{Success: true, Message: "profile updated"})
}

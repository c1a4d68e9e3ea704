package invite

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/triptogether/triptogether/db"
	"github.com/triptogether/triptogether/invites"
	"github.com/triptogether/triptogether/onboarding"
	"github.com/triptogether/triptogether/tokens"
	"github.com/triptogether/triptogether/trips"
	"github.com/triptogether/triptogether/user"
)

// invalidInviteMessage is the single user-facing failure for unknown,
// expired and consumed tokens alike
const invalidInviteMessage = "invalid or expired invite"

// InviteRessource carries the public invite landing endpoints and the
// authenticated join endpoints
type InviteRessource struct {
	log           *zap.Logger
	inviteService *invites.Service
	userService   *user.Service
	signInService *user.SigninService
	store         *db.DataStore
	issuer        *tokens.TokenIssuer
}

func NewInviteRessource(
	log *zap.Logger,
	inviteService *invites.Service,
	userService *user.Service,
	signInService *user.SigninService,
	store *db.DataStore,
	issuer *tokens.TokenIssuer,
) *InviteRessource {
	return &InviteRessource{
		log:           log,
		inviteService: inviteService,
		userService:   userService,
		signInService: signInService,
		store:         store,
		issuer:        issuer,
	}
}

func (i *InviteRessource) Router() *chi.Mux {
	r := chi.NewRouter()

	r.Get("/{token}", i.validateInvite)
	r.Post("/resolve", i.resolveLink)
	r.Post("/{token}/signup", i.signupWithInvite)

	r.Group(func(gr chi.Router) {
		gr.Use(jwtauth.Authenticator)
		gr.Post("/{token}/join", i.joinWithSession)
	})
	return r
}

func (i *InviteRessource) newFlow() *onboarding.Flow {
	return onboarding.NewFlow(i.inviteService, i.userService, i.store, i.log)
}

func (i *InviteRessource) sessionUser(r *http.Request) (*user.SignedInUser, error) {
	token, _, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return nil, err
	}
	id, err := uuid.Parse(token.Subject())
	if err != nil {
		return nil, err
	}
	return i.signInService.UserFromSubject(r.Context(), id)
}

// renderValidationFailure maps a failed token validation, only the
// invalid token family turns into the public not found answer, backend
// trouble stays an internal error
func (i *InviteRessource) renderValidationFailure(
	w http.ResponseWriter,
	r *http.Request,
	err error,
) {
	if errors.Is(err, invites.ErrInviteInvalid) {
		_ = render.Render(w, r, createError(invalidInviteMessage, http.StatusNotFound))
		return
	}
	i.log.Error("invite validation failed", zap.Error(err))
	_ = render.Render(w, r, createError("internal error", http.StatusInternalServerError))
}

func (i *InviteRessource) validateInvite(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")
	invitation, err := i.inviteService.Validate(r.Context(), token)
	if err != nil {
		i.renderValidationFailure(w, r, err)
		return
	}
	_ = render.Render(w, r, invitationFromDomain(invitation))
}

// resolveLink accepts a full invite url or a bare code and validates
// whatever token it can extract
func (i *InviteRessource) resolveLink(w http.ResponseWriter, r *http.Request) {
	var req *resolveRequest
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		_ = render.Render(w, r, createError("invalid payload", http.StatusBadRequest))
		return
	}
	token, ok := onboarding.ExtractToken(req.Link)
	if !ok {
		_ = render.Render(w, r, createError(invalidInviteMessage, http.StatusNotFound))
		return
	}
	invitation, err := i.inviteService.Validate(r.Context(), token)
	if err != nil {
		i.renderValidationFailure(w, r, err)
		return
	}
	_ = render.Render(w, r, invitationFromDomain(invitation))
}

// signupWithInvite drives the whole onboarding flow for a fresh
// account in one request
func (i *InviteRessource) signupWithInvite(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")
	var req *signupRequest
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		_ = render.Render(w, r, createError("invalid payload", http.StatusBadRequest))
		return
	}

	flow := i.newFlow()
	if err := flow.Start(r.Context(), token); err != nil {
		i.renderValidationFailure(w, r, err)
		return
	}
	_ = flow.ShowChoices()
	_ = flow.ChooseNewAccount()

	err = flow.SubmitNewAccount(r.Context(), onboarding.SignupForm{
		FullName:        req.FullName,
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		i.renderSubmitFailure(w, r, flow, err)
		return
	}

	invitation := flow.Invitation()
	userID, _ := flow.CreatedUserID()
	i.renderJoined(w, r, invitation.TripID, userID)
}

// joinWithSession consumes the invite for the signed in caller. It also
// covers the retry after a partial failure, a token already burnt for
// the callers own email just re-binds the missing membership.
func (i *InviteRessource) joinWithSession(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")
	signedIn, err := i.sessionUser(r)
	if err != nil {
		_ = render.Render(w, r, createError("unauthorized", http.StatusUnauthorized))
		return
	}

	flow := i.newFlow()
	if err := flow.Start(r.Context(), token); err != nil {
		if errors.Is(err, invites.ErrInviteInvalid) {
			i.retryConsumedJoin(w, r, token, signedIn)
			return
		}
		i.renderValidationFailure(w, r, err)
		return
	}
	if err := flow.JoinExisting(r.Context(), signedIn.UserID); err != nil {
		i.renderSubmitFailure(w, r, flow, err)
		return
	}
	i.renderJoined(w, r, flow.Invitation().TripID, uuid.UUID{})
}

func (i *InviteRessource) retryConsumedJoin(
	w http.ResponseWriter,
	r *http.Request,
	token string,
	signedIn *user.SignedInUser,
) {
	invite, err := i.inviteService.ConsumedInviteFor(r.Context(), token, signedIn.Email)
	if err != nil {
		_ = render.Render(w, r, createError(invalidInviteMessage, http.StatusNotFound))
		return
	}
	err = i.store.AddTripMember(
		r.Context(),
		invite.TripID,
		signedIn.UserID,
		trips.RoleGuest,
		trips.RSVPAccepted,
	)
	if err != nil && !errors.Is(err, db.ErrAlreadyExists) {
		i.log.Error("retry join failed", zap.Error(err))
		_ = render.Render(w, r, &joinFailedResponse{
			Error:          onboarding.ErrJoinIncomplete.Error(),
			AccountCreated: true,
			Retryable:      true,
		})
		return
	}
	i.renderJoined(w, r, invite.TripID, uuid.UUID{})
}

func (i *InviteRessource) renderSubmitFailure(
	w http.ResponseWriter,
	r *http.Request,
	flow *onboarding.Flow,
	err error,
) {
	var verr *onboarding.ValidationError
	switch {
	case errors.As(err, &verr):
		_ = render.Render(w, r, &genericErrorResponse{
			Error:      verr.Message,
			Field:      verr.Field,
			StatusCode: http.StatusUnprocessableEntity,
		})
	case errors.Is(err, onboarding.ErrEmailMismatch):
		_ = render.Render(w, r, createError(err.Error(), http.StatusForbidden))
	case errors.Is(err, onboarding.ErrJoinIncomplete):
		_, accountCreated := flow.CreatedUserID()
		_ = render.Render(w, r, &joinFailedResponse{
			Error:          err.Error(),
			AccountCreated: accountCreated,
			Retryable:      true,
		})
	case errors.Is(err, invites.ErrInviteInvalid):
		_ = render.Render(w, r, createError(invalidInviteMessage, http.StatusNotFound))
	case errors.Is(err, user.ErrEntityAlreadyExists):
		_ = render.Render(w, r, createError("an account with this email already exists", http.StatusConflict))
	case errors.Is(err, user.ErrPasswordGuidelines):
		_ = render.Render(w, r, createError(err.Error(), http.StatusUnprocessableEntity))
	default:
		// backend failures travel to the user as they are
		_ = render.Render(w, r, createError(err.Error(), http.StatusBadGateway))
	}
}

func (i *InviteRessource) renderJoined(
	w http.ResponseWriter,
	r *http.Request,
	tripID uuid.UUID,
	createdUserID uuid.UUID,
) {
	resp := &joinedResponse{TripID: tripID}
	if createdUserID != (uuid.UUID{}) {
		signedIn, err := i.signInService.UserFromSubject(r.Context(), createdUserID)
		if err == nil {
			token, terr := i.issuer.IssueSessionToken(
				signedIn.UserID,
				signedIn.Email,
				signedIn.FullName,
			)
			if terr == nil {
				if signed, serr := i.issuer.Sign(token); serr == nil {
					resp.AccessToken = string(signed)
					resp.TokenType = "Bearer"
				}
			}
		}
		if resp.AccessToken == "" {
			i.log.Warn("joined but could not establish session", zap.Error(err))
		}
	}
	_ = render.Render(w, r, resp)
}

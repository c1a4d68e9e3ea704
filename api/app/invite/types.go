package invite

import (
	"net/http"
	"time"

	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/triptogether/triptogether/invites"
)

type resolveRequest struct {
	Link string `json:"link"`
}

type signupRequest struct {
	FullName        string `json:"full_name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

// invitationResponse is what the invite landing page renders
type invitationResponse struct {
	Token           string    `json:"token"`
	Email           string    `json:"email"`
	ExpiresAt       time.Time `json:"expires_at"`
	TripID          uuid.UUID `json:"trip_id"`
	TripName        string    `json:"trip_name"`
	TripDescription *string   `json:"trip_description,omitempty"`
	StartDate       time.Time `json:"start_date"`
	EndDate         time.Time `json:"end_date"`
	HostName        string    `json:"host_name"`
}

func (*invitationResponse) Render(_ http.ResponseWriter, _ *http.Request) error {
	return nil
}

func invitationFromDomain(inv *invites.Invitation) *invitationResponse {
	return &invitationResponse{
		Token:           inv.Token,
		Email:           inv.Email,
		ExpiresAt:       inv.ExpiresAt,
		TripID:          inv.TripID,
		TripName:        inv.TripName,
		TripDescription: inv.TripDescription,
		StartDate:       inv.StartDate,
		EndDate:         inv.EndDate,
		HostName:        inv.HostName,
	}
}

type joinedResponse struct {
	TripID      uuid.UUID `json:"trip_id"`
	AccessToken string    `json:"access_token,omitempty"`
	TokenType   string    `json:"token_type,omitempty"`
}

func (*joinedResponse) Render(_ http.ResponseWriter, _ *http.Request) error {
	return nil
}

// joinFailedResponse reports the partial failure where the account
// exists but the trip join did not land
type joinFailedResponse struct {
	Error          string `json:"error"`
	AccountCreated bool   `json:"account_created"`
	Retryable      bool   `json:"retryable"`
}

func (e *joinFailedResponse) Render(_ http.ResponseWriter, r *http.Request) error {
	render.Status(r, http.StatusConflict)
	return nil
}

func createError(err string, status int) *genericErrorResponse {
	return &genericErrorResponse{
		Error:      err,
		StatusCode: status,
	}
}

type genericErrorResponse struct {
	Error      string `json:"error,omitempty"`
	Field      string `json:"field,omitempty"`
	StatusCode int    `json:"-"`
}

func (e *genericErrorResponse) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.StatusCode)
	return nil
}

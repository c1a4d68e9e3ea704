package onboarding

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/triptogether/triptogether/db"
	"github.com/triptogether/triptogether/db/tables"
	"github.com/triptogether/triptogether/invites"
	"github.com/triptogether/triptogether/trips"
)

// State is the position of an onboarding flow instance. The flow is a
// tagged state machine, operations that do not fit the current state
// fail with ErrInvalidTransition instead of corrupting it.
type State int

const (
	StateLoading State = iota
	StateInvalid
	StateValid
	StateQuickJoinChoice
	StateNewAccountForm
	StateSubmitting
	StateSuccess
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateInvalid:
		return "invalid"
	case StateValid:
		return "valid"
	case StateQuickJoinChoice:
		return "quick_join_choice"
	case StateNewAccountForm:
		return "new_account_form"
	case StateSubmitting:
		return "submitting"
	case StateSuccess:
		return "success"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

var (
	ErrInvalidTransition = errors.New("onboarding flow does not support this transition")

	// ErrEmailMismatch is raised when the submitted signup email is not
	// the one the invite was issued to
	ErrEmailMismatch = errors.New("this invite is for a different email address")

	// ErrJoinIncomplete marks the partial failure where the account
	// exists but consuming the invite or binding the membership failed.
	// The account is never discarded, the user retries the join.
	ErrJoinIncomplete = errors.New("account created but trip join failed, please retry joining")
)

// InviteReader validates and consumes invite tokens
type InviteReader interface {
	Validate(ctx context.Context, token string) (*invites.Invitation, error)
	Consume(ctx context.Context, token string, userID uuid.UUID) (*tables.InviteTokenTable, error)
}

// AccountRegistrar creates the user account during signup
type AccountRegistrar interface {
	RegisterUser(ctx context.Context, email string, password string, fullName string) (uuid.UUID, error)
}

// MembershipBinder binds users to trips
type MembershipBinder interface {
	AddTripMember(ctx context.Context, tripID uuid.UUID, userID uuid.UUID, role string, rsvpStatus string) error
	IsTripMember(ctx context.Context, tripID uuid.UUID, userID uuid.UUID) (bool, error)
}

// Flow drives one invite-link visit from token validation to a joined
// trip membership. Session changes may arrive from another goroutine,
// all transitions run under the flow lock.
type Flow struct {
	mu sync.Mutex

	state      State
	token      string
	invitation *invites.Invitation

	createdUserID *uuid.UUID
	joinUserID    *uuid.UUID
	consumed      bool
	failure       error

	invites   InviteReader
	registrar AccountRegistrar
	members   MembershipBinder
	log       *zap.Logger
}

func NewFlow(
	inviteReader InviteReader,
	registrar AccountRegistrar,
	members MembershipBinder,
	log *zap.Logger,
) *Flow {
	return &Flow{
		state:     StateLoading,
		invites:   inviteReader,
		registrar: registrar,
		members:   members,
		log:       log,
	}
}

func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Invitation returns the resolved invite once the flow left Loading
func (f *Flow) Invitation() *invites.Invitation {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.invitation
}

// Failure returns the error that put the flow in its current state
func (f *Flow) Failure() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.failure
}

// CreatedUserID reports the account this flow registered itself, if
// any. A join on behalf of an already existing session never counts.
func (f *Flow) CreatedUserID() (uuid.UUID, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createdUserID == nil {
		return uuid.UUID{}, false
	}
	return *f.createdUserID, true
}

// Start validates the pasted link or token and moves the flow to
// Valid or Invalid. Invalid is terminal.
func (f *Flow) Start(ctx context.Context, rawLink string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != StateLoading {
		return ErrInvalidTransition
	}
	token, ok := ExtractToken(rawLink)
	if !ok {
		f.state = StateInvalid
		f.failure = invites.ErrInviteInvalid
		return invites.ErrInviteInvalid
	}
	invitation, err := f.invites.Validate(ctx, token)
	if err != nil {
		f.state = StateInvalid
		f.failure = err
		return err
	}
	f.token = token
	f.invitation = invitation
	f.state = StateValid
	return nil
}

// ShowChoices moves a validated flow to the join choice
func (f *Flow) ShowChoices() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != StateValid {
		return ErrInvalidTransition
	}
	f.state = StateQuickJoinChoice
	return nil
}

// ChooseNewAccount opens the signup form
func (f *Flow) ChooseNewAccount() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != StateQuickJoinChoice {
		return ErrInvalidTransition
	}
	f.state = StateNewAccountForm
	return nil
}

// SubmitNewAccount runs the signup pipeline: local validation, email
// binding check, token re-validation, account creation, consumption
// and membership binding, in that order. Validation failures and
// backend rejections keep the flow on the form, a failure after the
// account exists moves it to Failed with ErrJoinIncomplete.
func (f *Flow) SubmitNewAccount(ctx context.Context, form SignupForm) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != StateNewAccountForm {
		return ErrInvalidTransition
	}
	f.state = StateSubmitting

	if verr := form.Validate(); verr != nil {
		f.state = StateNewAccountForm
		return verr
	}
	email := strings.TrimSpace(form.Email)
	if !strings.EqualFold(email, f.invitation.Email) {
		f.state = StateNewAccountForm
		return ErrEmailMismatch
	}

	// the form may have been open long enough for the token to expire
	// or get consumed elsewhere
	invitation, err := f.invites.Validate(ctx, f.token)
	if err != nil {
		f.state = StateNewAccountForm
		return err
	}
	f.invitation = invitation

	userID, err := f.registrar.RegisterUser(
		ctx,
		email,
		form.Password,
		strings.TrimSpace(form.FullName),
	)
	if err != nil {
		// surfaced verbatim, the flow does not reinterpret backend errors
		f.state = StateNewAccountForm
		return err
	}
	f.createdUserID = &userID
	f.joinUserID = &userID

	return f.joinLocked(ctx, userID)
}

// JoinExisting consumes the invite on behalf of an already signed in
// user. Possession of the link plus a session is enough, the email
// binding is only enforced for fresh signups.
func (f *Flow) JoinExisting(ctx context.Context, userID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != StateValid && f.state != StateQuickJoinChoice {
		return ErrInvalidTransition
	}
	f.state = StateSubmitting
	f.joinUserID = &userID
	return f.joinLocked(ctx, userID)
}

// RetryJoin picks the join up again after a partial failure. Steps that
// already happened are skipped, an existing membership counts as done.
func (f *Flow) RetryJoin(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != StateFailed || f.joinUserID == nil {
		return ErrInvalidTransition
	}
	f.state = StateSubmitting
	return f.joinLocked(ctx, *f.joinUserID)
}

// SessionChanged is the external short-circuit: a session appearing in
// another flow (an OAuth redirect return for example) supersedes the
// local state and goes straight for the trip membership.
func (f *Flow) SessionChanged(ctx context.Context, userID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	switch f.state {
	case StateSuccess:
		return nil
	case StateLoading, StateInvalid:
		// nothing to join yet or ever
		return nil
	}
	member, err := f.members.IsTripMember(ctx, f.invitation.TripID, userID)
	if err != nil {
		return err
	}
	if member {
		f.state = StateSuccess
		f.failure = nil
		return nil
	}
	f.state = StateSubmitting
	f.joinUserID = &userID
	return f.joinLocked(ctx, userID)
}

// joinLocked consumes the token and binds the guest membership, the
// caller holds the lock and has put the flow into Submitting.
func (f *Flow) joinLocked(ctx context.Context, userID uuid.UUID) error {
	if !f.consumed {
		_, err := f.invites.Consume(ctx, f.token, userID)
		if err != nil {
			if errors.Is(err, invites.ErrInviteInvalid) {
				// late race: someone else got the token first, if that
				// someone was us in a parallel tab the membership exists
				member, merr := f.members.IsTripMember(ctx, f.invitation.TripID, userID)
				if merr == nil && member {
					f.consumed = true
					f.state = StateSuccess
					f.failure = nil
					return nil
				}
			}
			return f.joinFailedLocked(err)
		}
		f.consumed = true
	}
	err := f.members.AddTripMember(
		ctx,
		f.invitation.TripID,
		userID,
		trips.RoleGuest,
		trips.RSVPAccepted,
	)
	if err != nil && !errors.Is(err, db.ErrAlreadyExists) {
		return f.joinFailedLocked(err)
	}
	f.state = StateSuccess
	f.failure = nil
	return nil
}

func (f *Flow) joinFailedLocked(cause error) error {
	f.log.Warn("trip join did not complete", zap.Error(cause))
	f.state = StateFailed
	f.failure = ErrJoinIncomplete
	return ErrJoinIncomplete
}

package invites

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/triptogether/triptogether/config"
	"github.com/triptogether/triptogether/db"
	"github.com/triptogether/triptogether/db/tables"
	"github.com/triptogether/triptogether/events"
	"github.com/triptogether/triptogether/events/event"
	"github.com/triptogether/triptogether/generator"
	"github.com/triptogether/triptogether/mailing"
	"github.com/triptogether/triptogether/sanitize"
)

const maxIterationCycles = 100

var (
	// ErrInviteInvalid is the only failure callers get for unknown,
	// expired and already consumed tokens. Handing out the precise
	// cause would let strangers fish out which tokens exist.
	ErrInviteInvalid = errors.New("invite is invalid or expired")

	ErrNotTripAdmin    = errors.New("user is not an admin of this trip")
	ErrAlreadyMember   = errors.New("user is already a member of this trip")
	ErrAlreadyInvited  = errors.New("a pending invite for this email already exists")
	ErrTokenGenTimeout = errors.New("could not generate a token within given cycles")
)

type Dispatcher interface {
	Dispatch(ctx context.Context, event events.Event)
}

type Service struct {
	store      *db.DataStore
	log        *zap.Logger
	cfg        *config.Configuration
	mailer     *mailing.Mailer
	dispatcher Dispatcher
}

func New(store *db.DataStore,
	log *zap.Logger,
	cfg *config.Configuration,
	mailer *mailing.Mailer,
	dispatcher Dispatcher) *Service {
	return &Service{
		store:      store,
		log:        log,
		cfg:        cfg,
		mailer:     mailer,
		dispatcher: dispatcher,
	}
}

// Invitation is the view of a usable invite handed to the invite
// landing page, trip and host come along so the page renders in one go.
type Invitation struct {
	ID              uuid.UUID
	Token           string
	Email           string
	ExpiresAt       time.Time
	TripID          uuid.UUID
	TripName        string
	TripDescription *string
	StartDate       time.Time
	EndDate         time.Time
	HostName        string
}

func (s *Service) invitation(
	invite *tables.InviteTokenTable,
	trip *db.TripWithHost,
) *Invitation {
	hostName := trip.HostEmail
	if trip.HostFullName != nil {
		hostName = *trip.HostFullName
	}
	return &Invitation{
		ID:              invite.ID,
		Token:           invite.Token,
		Email:           invite.Email,
		ExpiresAt:       invite.ExpiresAt,
		TripID:          trip.Trip.ID,
		TripName:        trip.Trip.Name,
		TripDescription: trip.Trip.Description,
		StartDate:       trip.Trip.StartDate,
		EndDate:         trip.Trip.EndDate,
		HostName:        hostName,
	}
}

// Issue creates a fresh invite for an email on a trip. Only trip admins
// may invite, duplicate members and still pending invites are rejected.
func (s *Service) Issue(
	ctx context.Context,
	tripID uuid.UUID,
	email string,
	issuedBy uuid.UUID,
) (*tables.InviteTokenTable, error) {
	admin, err := s.store.IsTripAdmin(ctx, tripID, issuedBy)
	if err != nil {
		s.log.Error("unable to check trip admin against datastore", zap.Error(err))
		return nil, err
	}
	if !admin {
		return nil, ErrNotTripAdmin
	}
	found, userID, err := s.store.IDFromEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if found {
		member, err := s.store.IsTripMember(ctx, tripID, userID)
		if err != nil {
			return nil, err
		}
		if member {
			return nil, ErrAlreadyMember
		}
	}
	pending, err := s.store.HasPendingInvite(ctx, tripID, email)
	if err != nil {
		return nil, err
	}
	if pending {
		return nil, ErrAlreadyInvited
	}

	tokenGen := generator.New()
	token := tokenGen.CreateInviteToken()
	exists, err := s.store.InviteTokenExists(ctx, string(token))
	if err != nil {
		s.log.Error("unable to check invite token against datastore", zap.Error(err))
		return nil, err
	}
	timeout := 0
	for exists {
		token = tokenGen.CreateInviteToken()
		exists, err = s.store.InviteTokenExists(ctx, string(token))
		if err != nil {
			s.log.Error("unable to check invite token against datastore", zap.Error(err))
			return nil, err
		}
		if exists {
			timeout++
		}
		if timeout >= maxIterationCycles {
			s.log.Error("unable to generate new invite token")
			return nil, ErrTokenGenTimeout
		}
	}

	expiryDate := time.Now().UTC().Add(s.cfg.Behaviour.InviteExpiry)
	id, err := s.store.InsertInviteToken(ctx, tripID, string(token), email, expiryDate, issuedBy)
	if err != nil {
		s.log.Error("could not persist trip invite", zap.Error(err))
		return nil, err
	}
	s.dispatcher.Dispatch(ctx, &event.TripInviteIssued{
		InviteID:   id,
		TripID:     tripID,
		Email:      email,
		IssuedBy:   issuedBy,
		ExpiryDate: expiryDate,
	})

	trip, err := s.store.TripWithHost(ctx, tripID)
	if err != nil {
		s.log.Warn("could not load trip for invite mail", zap.Error(err))
	} else {
		hostName := trip.HostEmail
		if trip.HostFullName != nil {
			hostName = *trip.HostFullName
		}
		err = s.mailer.SendInviteMail(email, string(token), trip.Trip.Name, hostName)
		if err != nil {
			s.log.Error(
				"could not send invite email",
				sanitize.Email("email", email),
				zap.Error(err),
			)
		} else {
			s.dispatcher.Dispatch(ctx, &event.EmailInviteSent{
				TripID: tripID,
				Email:  email,
				Sent:   time.Now(),
			})
		}
	}

	invite, err := s.store.InviteByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return invite, nil
}

// Validate resolves a raw token to its invitation while it is still
// usable. Whatever the underlying cause, failure is ErrInviteInvalid.
func (s *Service) Validate(ctx context.Context, token string) (*Invitation, error) {
	if token == "" {
		return nil, ErrInviteInvalid
	}
	invite, err := s.store.UsableInviteByToken(ctx, token)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, ErrInviteInvalid
		}
		s.log.Error("unexpected data store error", zap.Error(err))
		return nil, err
	}
	trip, err := s.store.TripWithHost(ctx, invite.TripID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			// trip vanished under the invite, treat as unusable
			return nil, ErrInviteInvalid
		}
		return nil, err
	}
	return s.invitation(invite, trip), nil
}

// Consume marks the token as used on behalf of a user. The conditional
// datastore update guarantees a token is consumed exactly once even
// under racing submits.
func (s *Service) Consume(
	ctx context.Context,
	token string,
	userID uuid.UUID,
) (*tables.InviteTokenTable, error) {
	invite, err := s.store.UsableInviteByToken(ctx, token)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, ErrInviteInvalid
		}
		return nil, err
	}
	ok, err := s.store.ConsumeInviteToken(ctx, token)
	if err != nil {
		s.log.Error("could not consume invite token", zap.Error(err))
		return nil, err
	}
	if !ok {
		// lost the race against another consumer or the expiry
		return nil, ErrInviteInvalid
	}
	s.dispatcher.Dispatch(ctx, &event.TripInviteConsumed{
		TripID: invite.TripID,
		UserID: userID,
	})
	return invite, nil
}

// ConsumedInviteFor returns an already consumed invite when the given
// email is the one it was issued to. This backs the retry path after a
// partial join: the token is burnt but the membership may still be
// missing, the rightful recipient gets to finish the join.
func (s *Service) ConsumedInviteFor(
	ctx context.Context,
	token string,
	email string,
) (*tables.InviteTokenTable, error) {
	invite, err := s.store.InviteByToken(ctx, token)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, ErrInviteInvalid
		}
		return nil, err
	}
	if invite.UsedAt == nil || !strings.EqualFold(invite.Email, email) {
		return nil, ErrInviteInvalid
	}
	return invite, nil
}

// Revoke withdraws a still unused invite, consumed invites are kept
func (s *Service) Revoke(ctx context.Context, inviteID uuid.UUID, revokedBy uuid.UUID) error {
	invite, err := s.store.InviteByID(ctx, inviteID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return ErrInviteInvalid
		}
		return err
	}
	admin, err := s.store.IsTripAdmin(ctx, invite.TripID, revokedBy)
	if err != nil {
		return err
	}
	if !admin {
		return ErrNotTripAdmin
	}
	err = s.store.DeleteInviteToken(ctx, inviteID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return ErrInviteInvalid
		}
		return err
	}
	s.dispatcher.Dispatch(ctx, &event.TripInviteRevoked{
		InviteID:  inviteID,
		TripID:    invite.TripID,
		RevokedBy: revokedBy,
	})
	return nil
}

// List returns every invite of a trip for its admins, newest first
func (s *Service) List(
	ctx context.Context,
	tripID uuid.UUID,
	requestedBy uuid.UUID,
) ([]*tables.InviteTokenTable, error) {
	admin, err := s.store.IsTripAdmin(ctx, tripID, requestedBy)
	if err != nil {
		return nil, err
	}
	if !admin {
		return nil, ErrNotTripAdmin
	}
	return s.store.InvitesByTrip(ctx, tripID)
}

package trips

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/triptogether/triptogether/db"
	"github.com/triptogether/triptogether/db/tables"
	"github.com/triptogether/triptogether/events"
	"github.com/triptogether/triptogether/events/event"
	"github.com/triptogether/triptogether/sanitize"
)

var (
	ErrTripDoesNotExist = errors.New("trip does not exist")
	ErrNotTripMember    = errors.New("user is not a member of this trip")
	ErrNotTripAdmin     = errors.New("user is not an admin of this trip")
	ErrInvalidDateRange = errors.New("trip end date lies before its start date")
)

type Dispatcher interface {
	Dispatch(ctx context.Context, event events.Event)
}

type Service struct {
	store      *db.DataStore
	log        *zap.Logger
	dispatcher Dispatcher
	validate   *validator.Validate
}

func New(store *db.DataStore, log *zap.Logger, dispatcher Dispatcher) *Service {
	return &Service{
		store:      store,
		log:        log,
		dispatcher: dispatcher,
		validate:   validator.New(),
	}
}

// TripInput carries the user supplied trip fields for create and update
type TripInput struct {
	Name        string `validate:"required,max=120"`
	Description *string
	StartDate   time.Time `validate:"required"`
	EndDate     time.Time `validate:"required"`
}

func (s *Service) checkTripInput(input *TripInput) error {
	if err := s.validate.Struct(input); err != nil {
		return err
	}
	if input.EndDate.Before(input.StartDate) {
		return ErrInvalidDateRange
	}
	if input.Description != nil {
		clean := sanitize.UserContent(*input.Description)
		input.Description = &clean
	}
	return nil
}

func (s *Service) requireMember(ctx context.Context, tripID uuid.UUID, userID uuid.UUID) error {
	member, err := s.store.IsTripMember(ctx, tripID, userID)
	if err != nil {
		return err
	}
	if !member {
		return ErrNotTripMember
	}
	return nil
}

func (s *Service) requireAdmin(ctx context.Context, tripID uuid.UUID, userID uuid.UUID) error {
	admin, err := s.store.IsTripAdmin(ctx, tripID, userID)
	if err != nil {
		return err
	}
	if !admin {
		return ErrNotTripAdmin
	}
	return nil
}

// Create persists a new trip, the creator becomes its first admin member
func (s *Service) Create(
	ctx context.Context,
	createdBy uuid.UUID,
	input TripInput,
) (uuid.UUID, error) {
	if err := s.checkTripInput(&input); err != nil {
		return uuid.UUID{}, err
	}
	id, err := s.store.InsertTrip(
		ctx,
		input.Name,
		input.Description,
		input.StartDate,
		input.EndDate,
		createdBy,
	)
	if err != nil {
		s.log.Error("could not persist trip", zap.Error(err))
		return uuid.UUID{}, err
	}
	s.dispatcher.Dispatch(ctx, &event.TripCreated{
		TripID:    id,
		CreatedBy: createdBy,
		TripName:  input.Name,
	})
	return id, nil
}

// Trip resolves a trip with its host for a member
func (s *Service) Trip(ctx context.Context, tripID uuid.UUID, userID uuid.UUID) (*db.TripWithHost, error) {
	if err := s.requireMember(ctx, tripID, userID); err != nil {
		return nil, err
	}
	trip, err := s.store.TripWithHost(ctx, tripID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, ErrTripDoesNotExist
		}
		return nil, err
	}
	return trip, nil
}

// Trips lists the trips the user is a member of
func (s *Service) Trips(ctx context.Context, userID uuid.UUID) ([]*tables.TripTable, error) {
	return s.store.TripsByUser(ctx, userID)
}

// Update replaces the trip core fields, admins only
func (s *Service) Update(
	ctx context.Context,
	tripID uuid.UUID,
	userID uuid.UUID,
	input TripInput,
) error {
	if err := s.requireAdmin(ctx, tripID, userID); err != nil {
		return err
	}
	if err := s.checkTripInput(&input); err != nil {
		return err
	}
	ok, err := s.store.UpdateTrip(ctx, tripID, input.Name, input.Description, input.StartDate, input.EndDate)
	if err != nil {
		return err
	}
	if !ok {
		return ErrTripDoesNotExist
	}
	return nil
}

// Delete removes the trip and everything that hangs off it, admins only
func (s *Service) Delete(ctx context.Context, tripID uuid.UUID, userID uuid.UUID) error {
	if err := s.requireAdmin(ctx, tripID, userID); err != nil {
		return err
	}
	err := s.store.DeleteTrip(ctx, tripID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return ErrTripDoesNotExist
		}
		return err
	}
	s.dispatcher.Dispatch(ctx, &event.TripDeleted{
		TripID:    tripID,
		DeletedBy: userID,
	})
	return nil
}

// Members lists the memberships of a trip with their profiles
func (s *Service) Members(ctx context.Context, tripID uuid.UUID, userID uuid.UUID) ([]*db.TripMemberData, error) {
	if err := s.requireMember(ctx, tripID, userID); err != nil {
		return nil, err
	}
	return s.store.TripMembers(ctx, tripID)
}

// RemoveMember drops a member from the trip. Admins remove anyone,
// everyone may remove themselves.
func (s *Service) RemoveMember(
	ctx context.Context,
	tripID uuid.UUID,
	memberID uuid.UUID,
	requestedBy uuid.UUID,
) error {
	if memberID != requestedBy {
		if err := s.requireAdmin(ctx, tripID, requestedBy); err != nil {
			return err
		}
	}
	err := s.store.RemoveTripMember(ctx, tripID, memberID)
	if err != nil {
		return err
	}
	s.dispatcher.Dispatch(ctx, &event.TripMemberRemoved{
		TripID: tripID,
		UserID: memberID,
	})
	return nil
}

// SetMemberRole switches a member between admin and guest, admins only
func (s *Service) SetMemberRole(
	ctx context.Context,
	tripID uuid.UUID,
	memberID uuid.UUID,
	role string,
	requestedBy uuid.UUID,
) error {
	if role != RoleAdmin && role != RoleGuest {
		return errors.New("unknown trip role")
	}
	if err := s.requireAdmin(ctx, tripID, requestedBy); err != nil {
		return err
	}
	ok, err := s.store.SetMemberRole(ctx, tripID, memberID, role)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotTripMember
	}
	return nil
}

// SetRSVP records the callers own attendance answer
func (s *Service) SetRSVP(
	ctx context.Context,
	tripID uuid.UUID,
	userID uuid.UUID,
	status string,
) error {
	if status != RSVPPending && status != RSVPAccepted && status != RSVPDeclined {
		return errors.New("unknown rsvp status")
	}
	ok, err := s.store.SetMemberRSVP(ctx, tripID, userID, status)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotTripMember
	}
	s.dispatcher.Dispatch(ctx, &event.TripMemberRSVP{
		TripID: tripID,
		UserID: userID,
		Status: status,
	})
	return nil
}

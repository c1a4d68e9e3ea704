package db

import (
	"context"
	"database/sql"
	"errors"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/triptogether/triptogether/db/tables"
)

// TripMemberData is a membership row joined with the member profile
type TripMemberData struct {
	tables.TripMemberTable
	Email     string  `db:"email"`
	FullName  *string `db:"full_name"`
	AvatarURL *string `db:"avatar_url"`
}

func (d *DataStore) IsTripMember(ctx context.Context, tripID uuid.UUID, userID uuid.UUID) (bool, error) {
	return d.exists(ctx, "trip_members", sq.And{
		sq.Eq{"trip_id": tripID},
		sq.Eq{"user_id": userID},
	})
}

// IsTripAdmin reports whether the user holds the admin role on the trip
func (d *DataStore) IsTripAdmin(ctx context.Context, tripID uuid.UUID, userID uuid.UUID) (bool, error) {
	return d.exists(ctx, "trip_members", sq.And{
		sq.Eq{"trip_id": tripID},
		sq.Eq{"user_id": userID},
		sq.Eq{"role": "admin"},
	})
}

// AddTripMember binds a user to a trip. The insert is guarded by the unique
// (trip_id, user_id) constraint, a second insert for the same pair reports
// ErrAlreadyExists instead of creating a duplicate membership.
func (d *DataStore) AddTripMember(
	ctx context.Context,
	tripID uuid.UUID,
	userID uuid.UUID,
	role string,
	rsvpStatus string,
) error {
	member, err := d.IsTripMember(ctx, tripID, userID)
	if err != nil {
		return err
	}
	if member {
		return ErrAlreadyExists
	}
	now := time.Now().UTC()
	var responded *time.Time
	if rsvpStatus != "pending" {
		responded = &now
	}
	insert := sq.Insert("trip_members").
		Columns("trip_id", "user_id", "role", "rsvp_status", "invited_at", "responded_at").
		Values(tripID, userID, role, rsvpStatus, now, responded)
	_, err = d.insertStatement(ctx, insert, nil)
	if err != nil {
		// racing insert lost against the unique constraint
		if isUniqueViolation(err) {
			return ErrAlreadyExists
		}
		return err
	}
	return nil
}

func (d *DataStore) RemoveTripMember(ctx context.Context, tripID uuid.UUID, userID uuid.UUID) error {
	q := sq.Delete("trip_members").Where(sq.And{
		sq.Eq{"trip_id": tripID},
		sq.Eq{"user_id": userID},
	})
	rs, err := d.deleteStatement(ctx, q, nil)
	if err != nil {
		return err
	}
	affected, err := rs.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (d *DataStore) SetMemberRole(
	ctx context.Context,
	tripID uuid.UUID,
	userID uuid.UUID,
	role string,
) (bool, error) {
	q := sq.
		Update("trip_members").
		Set("role", role).
		Where("trip_id = ? AND user_id = ?", tripID, userID)
	rs, err := d.updateStatement(ctx, q, nil)
	if err != nil {
		return false, err
	}
	affected, err := rs.RowsAffected()
	return affected > 0, err
}

func (d *DataStore) SetMemberRSVP(
	ctx context.Context,
	tripID uuid.UUID,
	userID uuid.UUID,
	status string,
) (bool, error) {
	q := sq.
		Update("trip_members").
		Set("rsvp_status", status).
		Set("responded_at", time.Now().UTC()).
		Where("trip_id = ? AND user_id = ?", tripID, userID)
	rs, err := d.updateStatement(ctx, q, nil)
	if err != nil {
		return false, err
	}
	affected, err := rs.RowsAffected()
	return affected > 0, err
}

func (d *DataStore) TripMembers(ctx context.Context, tripID uuid.UUID) ([]*TripMemberData, error) {
	q := sq.
		Select(
			"trip_members.id", "trip_members.trip_id", "trip_members.user_id",
			"trip_members.role", "trip_members.rsvp_status",
			"trip_members.invited_at", "trip_members.responded_at",
			"users.email", "users.full_name", "users.avatar_url",
		).
		From("trip_members").
		Join("users ON users.id = trip_members.user_id").
		Where(sq.Eq{"trip_members.trip_id": tripID}).
		OrderBy("trip_members.invited_at ASC")
	var entities []*TripMemberData
	err := d.selectStatement(ctx, &entities, q, nil)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return entities, nil
}

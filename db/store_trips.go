package db

import (
	"context"
	"database/sql"
	"errors"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/triptogether/triptogether/db/tables"
	"go.uber.org/zap"
)

// TripWithHost carries a trip together with its host profile, the invite
// landing page needs both in one go
type TripWithHost struct {
	Trip          tables.TripTable
	HostID        uuid.UUID
	HostEmail     string
	HostFullName  *string
	HostAvatarURL *string
}

func (d *DataStore) Trip(ctx context.Context, id uuid.UUID) (*tables.TripTable, error) {
	var entity tables.TripTable
	q := sq.Select("*").From("trips").Where(sq.Eq{"id": id})
	err := d.getStatement(ctx, &entity, q, nil)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &entity, nil
}

// TripWithHost resolves the trip and the creator profile in a single joined query
func (d *DataStore) TripWithHost(ctx context.Context, id uuid.UUID) (*TripWithHost, error) {
	type row struct {
		tables.TripTable
		HostID        uuid.UUID `db:"host_id"`
		HostEmail     string    `db:"host_email"`
		HostFullName  *string   `db:"host_full_name"`
		HostAvatarURL *string   `db:"host_avatar_url"`
	}
	q := sq.
		Select(
			"trips.id", "trips.name", "trips.description", "trips.start_date",
			"trips.end_date", "trips.created_by", "trips.created_at", "trips.updated_at",
			"users.id AS host_id", "users.email AS host_email",
			"users.full_name AS host_full_name", "users.avatar_url AS host_avatar_url",
		).
		From("trips").
		Join("users ON users.id = trips.created_by").
		Where(sq.Eq{"trips.id": id})
	var entity row
	err := d.getStatement(ctx, &entity, q, nil)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &TripWithHost{
		Trip:          entity.TripTable,
		HostID:        entity.HostID,
		HostEmail:     entity.HostEmail,
		HostFullName:  entity.HostFullName,
		HostAvatarURL: entity.HostAvatarURL,
	}, nil
}

// TripsByUser returns every trip the user is a member of, soonest start first
func (d *DataStore) TripsByUser(ctx context.Context, userID uuid.UUID) ([]*tables.TripTable, error) {
	q := sq.
		Select(
			"trips.id", "trips.name", "trips.description", "trips.start_date",
			"trips.end_date", "trips.created_by", "trips.created_at", "trips.updated_at",
		).
		From("trips").
		Join("trip_members ON trip_members.trip_id = trips.id").
		Where(sq.Eq{"trip_members.user_id": userID}).
		OrderBy("trips.start_date ASC")
	var entities []*tables.TripTable
	err := d.selectStatement(ctx, &entities, q, nil)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return entities, nil
}

// InsertTrip creates the trip and its creator admin membership in one transaction
func (d *DataStore) InsertTrip(
	ctx context.Context,
	name string,
	description *string,
	startDate time.Time,
	endDate time.Time,
	createdBy uuid.UUID,
) (uuid.UUID, error) {
	tx, err := d.db.BeginTxx(ctx, nil)
	if err != nil {
		return uuid.UUID{}, err
	}
	id := uuid.New()
	now := time.Now().UTC()
	insert := sq.Insert("trips").
		Columns("id", "name", "description", "start_date", "end_date", "created_by", "created_at").
		Values(id, name, description, startDate, endDate, createdBy, now)
	_, err = d.insertStatement(ctx, insert, tx)
	if err != nil {
		rerr := tx.Rollback()
		if rerr != nil {
			d.log.Error("couldnt rollback", zap.Error(rerr))
		}
		return uuid.UUID{}, err
	}
	member := sq.Insert("trip_members").
		Columns("trip_id", "user_id", "role", "rsvp_status", "invited_at", "responded_at").
		Values(id, createdBy, "admin", "accepted", now, now)
	_, err = d.insertStatement(ctx, member, tx)
	if err != nil {
		rerr := tx.Rollback()
		if rerr != nil {
			d.log.Error("couldnt rollback", zap.Error(rerr))
		}
		return uuid.UUID{}, err
	}
	return id, tx.Commit()
}

func (d *DataStore) UpdateTrip(
	ctx context.Context,
	id uuid.UUID,
	name string,
	description *string,
	startDate time.Time,
	endDate time.Time,
) (bool, error) {
	q := sq.
		Update("trips").
		Set("name", name).
		Set("description", description).
		Set("start_date", startDate).
		Set("end_date", endDate).
		Set("updated_at", time.Now().UTC()).
		Where("id = ?", id)
	rs, err := d.updateStatement(ctx, q, nil)
	if err != nil {
		return false, err
	}
	affected, err := rs.RowsAffected()
	return affected > 0, err
}

// DeleteTrip removes the trip and everything hanging off it
func (d *DataStore) DeleteTrip(ctx context.Context, id uuid.UUID) error {
	tx, err := d.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	for _, table := range []string{
		"messages", "photos", "packing_items", "budget_items",
		"itinerary_items", "invite_tokens", "trip_members",
	} {
		del := sq.Delete(table).Where(sq.Eq{"trip_id": id})
		if _, err := d.deleteStatement(ctx, del, tx); err != nil {
			rerr := tx.Rollback()
			if rerr != nil {
				d.log.Error("couldnt rollback", zap.Error(rerr))
			}
			return err
		}
	}
	del := sq.Delete("trips").Where(sq.Eq{"id": id})
	rs, err := d.deleteStatement(ctx, del, tx)
	if err != nil {
		rerr := tx.Rollback()
		if rerr != nil {
			d.log.Error("couldnt rollback", zap.Error(rerr))
		}
		return err
	}
	affected, err := rs.RowsAffected()
	if err == nil && affected == 0 {
		rerr := tx.Rollback()
		if rerr != nil {
			d.log.Error("couldnt rollback", zap.Error(rerr))
		}
		return ErrNotFound
	}
	return tx.Commit()
}

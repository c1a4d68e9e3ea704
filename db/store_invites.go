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

// InsertInviteToken persists a new invite token record, used_at starts out null
func (d *DataStore) InsertInviteToken(
	ctx context.Context,
	tripID uuid.UUID,
	token string,
	email string,
	expires time.Time,
	createdBy uuid.UUID,
) (uuid.UUID, error) {
	id := uuid.New()
	insert := sq.Insert("invite_tokens").
		Columns("id", "trip_id", "token", "email", "expires_at", "created_by", "created_at").
		Values(id, tripID, token, email, expires, createdBy, time.Now().UTC())
	_, err := d.insertStatement(ctx, insert, nil)
	if err != nil {
		return uuid.UUID{}, err
	}
	return id, nil
}

func (d *DataStore) InviteTokenExists(ctx context.Context, token string) (bool, error) {
	return d.exists(ctx, "invite_tokens", sq.Eq{"token": token})
}

// HasPendingInvite reports whether an unconsumed, unexpired invite for the
// given email already exists on the trip
func (d *DataStore) HasPendingInvite(
	ctx context.Context,
	tripID uuid.UUID,
	email string,
) (bool, error) {
	return d.exists(
		ctx,
		"invite_tokens",
		sq.And{
			sq.Eq{"trip_id": tripID},
			sq.Eq{"email": email},
			sq.Eq{"used_at": nil},
			sq.Gt{"expires_at": time.Now().UTC()},
		},
	)
}

// UsableInviteByToken looks an invite up by exact token string and only
// returns it while it is still consumable. Expired, consumed and unknown
// tokens are all reported as ErrNotFound so callers cannot tell them apart.
func (d *DataStore) UsableInviteByToken(
	ctx context.Context,
	token string,
) (*tables.InviteTokenTable, error) {
	q := sq.Select("*").From("invite_tokens").Where(
		sq.And{
			sq.Eq{"token": token},
			sq.Eq{"used_at": nil},
			sq.Gt{"expires_at": time.Now().UTC()},
		},
	)
	var entity tables.InviteTokenTable
	err := d.getStatement(ctx, &entity, q, nil)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &entity, nil
}

// InviteByToken fetches an invite regardless of its consumption state
func (d *DataStore) InviteByToken(ctx context.Context, token string) (*tables.InviteTokenTable, error) {
	q := sq.Select("*").From("invite_tokens").Where(sq.Eq{"token": token})
	var entity tables.InviteTokenTable
	err := d.getStatement(ctx, &entity, q, nil)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &entity, nil
}

// InviteByID fetches an invite regardless of its consumption state
func (d *DataStore) InviteByID(ctx context.Context, id uuid.UUID) (*tables.InviteTokenTable, error) {
	q := sq.Select("*").From("invite_tokens").Where(sq.Eq{"id": id})
	var entity tables.InviteTokenTable
	err := d.getStatement(ctx, &entity, q, nil)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &entity, nil
}

// ConsumeInviteToken marks the invite as used. The update is conditioned on
// used_at still being null so of two racing consumers exactly one observes
// true, the datastore never double-consumes a token.
func (d *DataStore) ConsumeInviteToken(ctx context.Context, token string) (bool, error) {
	q := sq.
		Update("invite_tokens").
		Set("used_at", time.Now().UTC()).
		Where("token = ? AND used_at IS NULL", token)
	rs, err := d.updateStatement(ctx, q, nil)
	if err != nil {
		return false, err
	}
	affected, err := rs.RowsAffected()
	return affected > 0, err
}

// DeleteInviteToken removes an unused invite, a consumed invites stays for the books
func (d *DataStore) DeleteInviteToken(ctx context.Context, id uuid.UUID) error {
	q := sq.Delete("invite_tokens").Where("id = ? AND used_at IS NULL", id)
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

// InvitesByTrip lists every invite issued for a trip, newest first
func (d *DataStore) InvitesByTrip(
	ctx context.Context,
	tripID uuid.UUID,
) ([]*tables.InviteTokenTable, error) {
	q := sq.
		Select("id", "trip_id", "token", "email", "expires_at", "used_at", "created_by", "created_at").
		From("invite_tokens").
		Where(sq.Eq{"trip_id": tripID}).
		OrderBy("created_at DESC")
	var entities []*tables.InviteTokenTable
	err := d.selectStatement(ctx, &entities, q, nil)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return entities, nil
}

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

func (d *DataStore) Users(ctx context.Context, opts ListOptions) ([]*tables.UserTable, int, error) {
	if opts.Page <= 0 {
		opts.Page = 1
	}

	var c int
	count := sq.Select("COUNT(*)").From("users")
	err := count.RunWith(d.db).Scan(&c)
	if err != nil {
		return nil, 0, err
	}
	offset := (opts.Page - 1) * opts.PageSize
	if c < int(offset) {
		return []*tables.UserTable{}, c, nil
	}

	var entities []*tables.UserTable
	q := sq.
		Select(
			"id",
			"email",
			"full_name",
			"avatar_url",
			"lockout_till",
			"current_failure_count",
			"created_at",
			"updated_at",
		).
		From("users").
		OrderBy("created_at DESC").
		Offset(uint64(offset)).
		Limit(uint64(opts.PageSize))
	err = d.selectStatement(ctx, &entities, q, nil)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, 0, ErrNotFound
		}
		return nil, 0, err
	}

	return entities, c, nil
}

// UserData is the user as the domain services see it
type UserData struct {
	ID                  uuid.UUID
	Email               string
	FullName            *string
	AvatarURL           *string
	PasswordHash        []byte
	LockoutTill         *time.Time
	CurrentFailureCount int
}

func userDataFromTable(entity *tables.UserTable) *UserData {
	return &UserData{
		ID:                  entity.ID,
		Email:               entity.Email,
		FullName:            entity.FullName,
		AvatarURL:           entity.AvatarURL,
		PasswordHash:        []byte(entity.Password),
		LockoutTill:         entity.LockoutTill,
		CurrentFailureCount: entity.CurrentFailureCount,
	}
}

func (d *DataStore) UserByID(ctx context.Context, id uuid.UUID) (*UserData, error) {
	var entity tables.UserTable
	q := sq.Select("*").From("users").Where(sq.Eq{"id": id})
	err := d.getStatement(ctx, &entity, q, nil)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return userDataFromTable(&entity), nil
}

func (d *DataStore) UserByEmail(ctx context.Context, email string) (*UserData, error) {
	var entity tables.UserTable
	q := sq.Select("*").From("users").Where(sq.Eq{"email": email})
	err := d.getStatement(ctx, &entity, q, nil)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return userDataFromTable(&entity), nil
}

func (d *DataStore) IsRegistred(ctx context.Context, email string) (bool, error) {
	return d.exists(ctx, "users", sq.Eq{"email": email})
}

func (d *DataStore) IDFromEmail(ctx context.Context, email string) (bool, uuid.UUID, error) {
	var id uuid.UUID
	q := sq.Select("id").From("users").Where(sq.Eq{"email": email})
	err := d.getStatement(ctx, &id, q, nil)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, uuid.UUID{}, nil
		}
		return false, uuid.UUID{}, err
	}
	return true, id, nil
}

func (d *DataStore) InsertUser(
	ctx context.Context,
	email string,
	passwordHash string,
	fullName *string,
	googleSubject *string,
) (uuid.UUID, error) {
	timestamp := time.Now().UTC()
	m := map[string]interface{}{
		"id":             uuid.New(),
		"email":          email,
		"password":       passwordHash,
		"full_name":      fullName,
		"google_subject": googleSubject,
		"created_at":     timestamp,
	}
	insert := sq.Insert("users").SetMap(m).Suffix("RETURNING id")
	var id uuid.UUID
	err := d.returningInsertStatement(ctx, &id, insert, nil)
	if err != nil {
		d.log.Error("could not insert user", zap.Error(err))
		return uuid.UUID{}, err
	}
	return id, nil
}

// UserByGoogleSubject resolves a user from the federated identity subject claim
func (d *DataStore) UserByGoogleSubject(ctx context.Context, subject string) (*UserData, error) {
	var entity tables.UserTable
	q := sq.Select("*").From("users").Where(sq.Eq{"google_subject": subject})
	err := d.getStatement(ctx, &entity, q, nil)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return userDataFromTable(&entity), nil
}

// LinkGoogleSubject attaches a federated identity to an existing account once
func (d *DataStore) LinkGoogleSubject(ctx context.Context, id uuid.UUID, subject string) (bool, error) {
	q := sq.
		Update("users").
		Set("google_subject", subject).
		Set("updated_at", time.Now().UTC()).
		Where("id = ? AND google_subject IS NULL", id)
	rs, err := d.updateStatement(ctx, q, nil)
	if err != nil {
		return false, err
	}
	affected, err := rs.RowsAffected()
	return affected > 0, err
}

func (d *DataStore) SetFailureCount(ctx context.Context, id uuid.UUID, count int) error {
	q := sq.
		Update("users").
		Set("updated_at", time.Now().UTC()).
		Set("current_failure_count", count).
		Where("id = ?", id)
	_, err := d.updateStatement(ctx, q, nil)
	return err
}

func (d *DataStore) LockUser(ctx context.Context, id uuid.UUID, lockTime time.Time) (bool, error) {
	q := sq.
		Update("users").
		Set("updated_at", time.Now().UTC()).
		Set("lockout_till", lockTime).
		Where("id = ? AND lockout_till IS NULL", id)

	rs, err := d.updateStatement(ctx, q, nil)
	if err != nil {
		return false, err
	}
	affected, err := rs.RowsAffected()
	return affected > 0, err
}

func (d *DataStore) UnlockUser(ctx context.Context, id uuid.UUID) (bool, error) {
	q := sq.
		Update("users").
		Set("updated_at", time.Now().UTC()).
		Set("lockout_till", nil).
		Set("current_failure_count", 0).
		Where("id = ? AND lockout_till IS NOT NULL", id)

	rs, err := d.updateStatement(ctx, q, nil)
	if err != nil {
		return false, err
	}
	affected, err := rs.RowsAffected()
	return affected > 0, err
}

func (d *DataStore) SetPassword(ctx context.Context, id uuid.UUID, passwordHash string) (bool, error) {
	q := sq.
		Update("users").
		Set("password", passwordHash).
		Set("updated_at", time.Now().UTC()).
		Where("id = ?", id)
	rs, err := d.updateStatement(ctx, q, nil)
	if err != nil {
		return false, err
	}
	affected, err := rs.RowsAffected()
	return affected > 0, err
}

func (d *DataStore) UpdateProfile(
	ctx context.Context,
	id uuid.UUID,
	fullName *string,
	avatarURL *string,
) (bool, error) {
	q := sq.
		Update("users").
		Set("full_name", fullName).
		Set("avatar_url", avatarURL).
		Set("updated_at", time.Now().UTC()).
		Where("id = ?", id)
	rs, err := d.updateStatement(ctx, q, nil)
	if err != nil {
		return false, err
	}
	affected, err := rs.RowsAffected()
	return affected > 0, err
}

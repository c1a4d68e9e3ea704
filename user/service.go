package user

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/triptogether/triptogether/config"
	"github.com/triptogether/triptogether/db"
	"github.com/triptogether/triptogether/events/event"
	"github.com/triptogether/triptogether/generator"
	"github.com/triptogether/triptogether/sanitize"
)

var (
	ErrEntityAlreadyExists = errors.New("entity already exists in system")
	ErrPasswordGuidelines  = errors.New("password doesnt match password guidlines")
)

func New(store *db.DataStore,
	logger *zap.Logger,
	cfg *config.Configuration,
	dispatcher Dispatcher) *Service {
	return &Service{
		store:      store,
		log:        logger,
		cfg:        cfg,
		dispatcher: dispatcher,
	}
}

type Service struct {
	store      *db.DataStore
	log        *zap.Logger
	cfg        *config.Configuration
	dispatcher Dispatcher
}

// RegisterUser registers a user from user supplied data
func (g *Service) RegisterUser(
	ctx context.Context,
	email string,
	password string,
	fullName string,
) (uuid.UUID, error) {
	if len(password) < g.cfg.Behaviour.PasswordMinLength {
		return uuid.UUID{}, ErrPasswordGuidelines
	}
	regis, err := g.store.IsRegistred(ctx, email)
	if err != nil {
		g.log.Error(
			"Could not check registration in data store",
			sanitize.Email("email", email),
			zap.Error(err),
		)
		return uuid.UUID{}, err
	}
	if regis {
		return uuid.UUID{}, ErrEntityAlreadyExists
	}
	pw, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return uuid.UUID{}, err
	}
	var name *string
	if fullName != "" {
		name = &fullName
	}
	id, err := g.store.InsertUser(ctx, email, string(pw), name, nil)
	if err != nil {
		return uuid.UUID{}, err
	}

	g.dispatcher.Dispatch(ctx, &event.UserSignup{
		UserID: id,
		Email:  email,
	})
	return id, nil
}

// RegisterGoogleUser registers or links a user from a verified Google
// identity. An existing account with the same email gets the subject
// linked, otherwise a fresh account is created. Google accounts get an
// unguessable placeholder password, password signin stays impossible
// until the user sets one.
func (g *Service) RegisterGoogleUser(
	ctx context.Context,
	subject string,
	email string,
	fullName string,
	avatarURL *string,
) (uuid.UUID, error) {
	found, id, err := g.store.IDFromEmail(ctx, email)
	if err != nil {
		g.log.Error("Unable to get matching user from store", zap.Error(err))
		return uuid.UUID{}, err
	}
	if found {
		ok, err := g.store.LinkGoogleSubject(ctx, id, subject)
		if err != nil {
			return uuid.UUID{}, err
		}
		if !ok {
			return uuid.UUID{}, ErrEntityAlreadyExists
		}
		return id, nil
	}
	placeholder := generator.New().CreateSecureTokenWithSize(32)
	pw, err := bcrypt.GenerateFromPassword([]byte(placeholder), bcrypt.DefaultCost)
	if err != nil {
		return uuid.UUID{}, err
	}
	var name *string
	if fullName != "" {
		name = &fullName
	}
	id, err = g.store.InsertUser(ctx, email, string(pw), name, &subject)
	if err != nil {
		return uuid.UUID{}, err
	}
	if avatarURL != nil {
		_, err = g.store.UpdateProfile(ctx, id, name, avatarURL)
		if err != nil {
			g.log.Warn("could not store avatar for fresh google user", zap.Error(err))
		}
	}
	g.dispatcher.Dispatch(ctx, &event.UserSignup{
		UserID: id,
		Email:  email,
	})
	return id, nil
}

func (g *Service) EmailToID(ctx context.Context, email string) (uuid.UUID, bool) {
	found, id, err := g.store.IDFromEmail(ctx, email)
	if err != nil {
		g.log.Error("Unable to get matching user from store", zap.Error(err))
		return uuid.UUID{}, false
	}
	return id, found
}

// ChangePassword sets a new password for the supplied user id
func (g *Service) ChangePassword(ctx context.Context, id uuid.UUID, password string) error {
	if len(password) < g.cfg.Behaviour.PasswordMinLength {
		return ErrPasswordGuidelines
	}
	pw, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	ok, err := g.store.SetPassword(ctx, id, string(pw))
	if err != nil {
		return err
	}
	if !ok {
		return ErrEntityDoesNotExist
	}
	return nil
}

// UpdateProfile replaces the display name and avatar of a user
func (g *Service) UpdateProfile(
	ctx context.Context,
	id uuid.UUID,
	fullName *string,
	avatarURL *string,
) error {
	ok, err := g.store.UpdateProfile(ctx, id, fullName, avatarURL)
	if err != nil {
		return err
	}
	if !ok {
		return ErrEntityDoesNotExist
	}
	return nil
}

// UnlockUser lifts a signin lockout before it expires on its own
func (g *Service) UnlockUser(ctx context.Context, id uuid.UUID) error {
	ok, err := g.store.UnlockUser(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrEntityDoesNotExist
	}
	g.dispatcher.Dispatch(ctx, &event.UserUnlocked{
		UserID: id,
	})
	return nil
}

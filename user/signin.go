package user

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/triptogether/triptogether/config"
	"github.com/triptogether/triptogether/db"
	"github.com/triptogether/triptogether/events"
	"github.com/triptogether/triptogether/events/event"
)

type UserLocker interface {
	LockUser(ctx context.Context, id uuid.UUID, until time.Time) (bool, error)
}

type Dispatcher interface {
	Dispatch(ctx context.Context, event events.Event)
}

type SigninService struct {
	store      *db.DataStore
	log        *zap.Logger
	cfg        *config.BehaviourConfiguration
	dispatcher Dispatcher
	userLocker UserLocker
}

func NewSignInService(store *db.DataStore,
	log *zap.Logger,
	cfg *config.BehaviourConfiguration,
	dispatcher Dispatcher,
	userLocker UserLocker) *SigninService {
	return &SigninService{
		store:      store,
		log:        log,
		cfg:        cfg,
		dispatcher: dispatcher,
		userLocker: userLocker,
	}
}

var (
	ErrEntityDoesNotExist       = errors.New("entity does not exist")
	ErrEntityOperationForbidden = errors.New("entity does not support operation")
	ErrInvalidCredentials       = errors.New("invalid credentials")
)

// SignedInUser is the authenticated principal handed to the token issuer
type SignedInUser struct {
	UserID   uuid.UUID
	Email    string
	FullName string
}

// CanLogin checks if a user is eligble to login (not lockedout)
func (g *SigninService) CanLogin(ctx context.Context, userID uuid.UUID) (bool, error) {
	ud, err := g.store.UserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return false, ErrEntityDoesNotExist
		}
		return false, err
	}
	provider := &userSignin{ud: ud}
	return provider.CanLogin(), nil
}

// UserFromSubject returns a user by id, used to rebuild the principal
// from a verified session token subject
func (g *SigninService) UserFromSubject(
	ctx context.Context,
	userID uuid.UUID,
) (*SignedInUser, error) {
	ud, err := g.store.UserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, ErrEntityDoesNotExist
		}
		return nil, err
	}
	provider := &userSignin{ud: ud}
	if !provider.CanLogin() {
		return nil, ErrEntityOperationForbidden
	}
	user := &SignedInUser{
		UserID:   provider.ID(),
		Email:    ud.Email,
		FullName: provider.displayName(),
	}
	return user, nil
}

// Validate validates a password, this is used for user settings
// which require reentering the password to change those things
// this method is exclusively only to be used for this not any other things
// as it doesnt increase lockout counts
func (g *SigninService) Validate(ctx context.Context, id uuid.UUID, password string) error {
	ud, err := g.store.UserByID(ctx, id)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return ErrEntityDoesNotExist
		}
		g.log.Error("unexpected date store error", zap.Error(err))
		return err
	}
	provider := &userSignin{ud: ud}
	if !provider.CanLogin() {
		return ErrEntityOperationForbidden
	}
	ok := provider.ValidatePassword(password)
	if !ok {
		return ErrInvalidCredentials
	}
	return nil
}

// SignIn signs in a user with the supplied credentials
func (g *SigninService) SignIn(
	ctx context.Context,
	email string,
	password string,
) (*SignedInUser, error) {
	ud, err := g.store.UserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, ErrEntityDoesNotExist
		}
		g.log.Error("unexpected date store error", zap.Error(err))
		return nil, err
	}
	provider := &userSignin{ud: ud}
	if !provider.CanLogin() {
		return nil, ErrEntityOperationForbidden
	}
	ok := provider.ValidatePassword(password)
	if !ok {
		if g.cfg.AutoLockoutCount > 0 && provider.CurrentFailureCount() >= g.cfg.AutoLockoutCount {
			until := time.Now().UTC().Add(g.cfg.AutoLockoutDuration)
			_, err = g.userLocker.LockUser(ctx, provider.ID(), until)
			if err != nil {
				g.log.Error("could not lock user after failure count exceeded", zap.Error(err))
			} else {
				g.dispatcher.Dispatch(ctx, &event.UserLocked{
					UserID:      provider.ID(),
					LockedUntil: until,
				})
			}
			return nil, ErrEntityOperationForbidden
		}
		err = g.store.SetFailureCount(ctx, provider.ID(), provider.CurrentFailureCount()+1)
		if err != nil {
			g.log.Error("unable to increase failure count", zap.Error(err))
		}
		return nil, ErrInvalidCredentials
	}
	g.dispatcher.Dispatch(ctx, &event.UserLogin{
		UserID: provider.ID(),
	})
	if provider.CurrentFailureCount() > 0 {
		err = g.store.SetFailureCount(ctx, provider.ID(), 0)
		if err != nil {
			g.log.Error("unable to reset failure count", zap.Error(err))
		}
	}

	user := &SignedInUser{
		UserID:   provider.ID(),
		Email:    ud.Email,
		FullName: provider.displayName(),
	}
	return user, nil
}

// SignInWithGoogle signs in a user resolved from a verified Google
// identity subject. The caller must have validated the id token before.
func (g *SigninService) SignInWithGoogle(
	ctx context.Context,
	subject string,
) (*SignedInUser, error) {
	ud, err := g.store.UserByGoogleSubject(ctx, subject)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, ErrEntityDoesNotExist
		}
		g.log.Error("unexpected date store error", zap.Error(err))
		return nil, err
	}
	provider := &userSignin{ud: ud}
	if !provider.CanLogin() {
		return nil, ErrEntityOperationForbidden
	}
	g.dispatcher.Dispatch(ctx, &event.UserLogin{
		UserID: provider.ID(),
	})
	user := &SignedInUser{
		UserID:   provider.ID(),
		Email:    ud.Email,
		FullName: provider.displayName(),
	}
	return user, nil
}

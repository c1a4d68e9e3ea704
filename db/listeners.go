package db

import (
	"context"

	"github.com/triptogether/triptogether/db/tables"
	"github.com/triptogether/triptogether/events"
	"github.com/triptogether/triptogether/events/event"
	"github.com/triptogether/triptogether/sanitize"
)

// Auditor is a way to write audit log events into a persistent store
type Auditor interface {
	addToAuditLog(ctx context.Context, event string, payload tables.MapStructure) error
}

// BootstrapListeners registers all the event listeners from this package
func BootstrapListeners(store Auditor) []events.EventListener {
	return []events.EventListener{
		&inviteIssuedListener{store: store},
		&inviteConsumedListener{store: store},
		&inviteRevokedListener{store: store},
		&userSignupListener{store: store},
		&userLoginListener{store: store},
		&userLockedListener{store: store},
		&userUnlockedListener{store: store},
		&tripCreatedListener{store: store},
		&tripDeletedListener{store: store},
		&memberAddedListener{store: store},
		&memberRemovedListener{store: store},
		&memberRSVPListener{store: store},
		&emailInviteSentListener{store: store},
	}
}

// persist swallows write failures on purpose, the auditor already
// logged them and the event pipeline never fails over a lost entry
func persist(
	ctx context.Context,
	store Auditor,
	name events.EventName,
	payload tables.MapStructure,
) error {
	_ = store.addToAuditLog(ctx, string(name), payload)
	return nil
}

type inviteIssuedListener struct {
	store Auditor
}

func (*inviteIssuedListener) ForEvent() events.EventName {
	return event.TripInviteIssuedEvent
}

func (l *inviteIssuedListener) Handle(ctx context.Context, ev events.Event) error {
	e := ev.(*event.TripInviteIssued)
	return persist(ctx, l.store, l.ForEvent(), map[string]interface{}{
		"invite_id": e.InviteID.String(),
		"trip_id":   e.TripID.String(),
		"email":     sanitize.MaskEmail(e.Email),
		"issued_by": e.IssuedBy.String(),
		"expires":   e.ExpiryDate,
	})
}

type inviteConsumedListener struct {
	store Auditor
}

func (*inviteConsumedListener) ForEvent() events.EventName {
	return event.TripInviteConsumedEvent
}

func (l *inviteConsumedListener) Handle(ctx context.Context, ev events.Event) error {
	e := ev.(*event.TripInviteConsumed)
	return persist(ctx, l.store, l.ForEvent(), map[string]interface{}{
		"trip_id": e.TripID.String(),
		"user_id": e.UserID.String(),
	})
}

type inviteRevokedListener struct {
	store Auditor
}

func (*inviteRevokedListener) ForEvent() events.EventName {
	return event.TripInviteRevokedEvent
}

func (l *inviteRevokedListener) Handle(ctx context.Context, ev events.Event) error {
	e := ev.(*event.TripInviteRevoked)
	return persist(ctx, l.store, l.ForEvent(), map[string]interface{}{
		"invite_id":  e.InviteID.String(),
		"trip_id":    e.TripID.String(),
		"revoked_by": e.RevokedBy.String(),
	})
}

type userSignupListener struct {
	store Auditor
}

func (*userSignupListener) ForEvent() events.EventName {
	return event.UserSignupEvent
}

func (l *userSignupListener) Handle(ctx context.Context, ev events.Event) error {
	e := ev.(*event.UserSignup)
	return persist(ctx, l.store, l.ForEvent(), map[string]interface{}{
		"user_id": e.UserID.String(),
		"email":   sanitize.MaskEmail(e.Email),
	})
}

type userLoginListener struct {
	store Auditor
}

func (*userLoginListener) ForEvent() events.EventName {
	return event.UserLoginEvent
}

func (l *userLoginListener) Handle(ctx context.Context, ev events.Event) error {
	e := ev.(*event.UserLogin)
	return persist(ctx, l.store, l.ForEvent(), map[string]interface{}{
		"user_id": e.UserID.String(),
	})
}

type userLockedListener struct {
	store Auditor
}

func (*userLockedListener) ForEvent() events.EventName {
	return event.UserLockedEvent
}

func (l *userLockedListener) Handle(ctx context.Context, ev events.Event) error {
	e := ev.(*event.UserLocked)
	return persist(ctx, l.store, l.ForEvent(), map[string]interface{}{
		"user_id":      e.UserID.String(),
		"locked_until": e.LockedUntil,
	})
}

type userUnlockedListener struct {
	store Auditor
}

func (*userUnlockedListener) ForEvent() events.EventName {
	return event.UserUnlockedEvent
}

func (l *userUnlockedListener) Handle(ctx context.Context, ev events.Event) error {
	e := ev.(*event.UserUnlocked)
	return persist(ctx, l.store, l.ForEvent(), map[string]interface{}{
		"user_id": e.UserID.String(),
	})
}

type tripCreatedListener struct {
	store Auditor
}

func (*tripCreatedListener) ForEvent() events.EventName {
	return event.TripCreatedEvent
}

func (l *tripCreatedListener) Handle(ctx context.Context, ev events.Event) error {
	e := ev.(*event.TripCreated)
	return persist(ctx, l.store, l.ForEvent(), map[string]interface{}{
		"trip_id":    e.TripID.String(),
		"created_by": e.CreatedBy.String(),
		"name":       sanitize.NoLineBreaks(e.TripName),
	})
}

type tripDeletedListener struct {
	store Auditor
}

func (*tripDeletedListener) ForEvent() events.EventName {
	return event.TripDeletedEvent
}

func (l *tripDeletedListener) Handle(ctx context.Context, ev events.Event) error {
	e := ev.(*event.TripDeleted)
	return persist(ctx, l.store, l.ForEvent(), map[string]interface{}{
		"trip_id":    e.TripID.String(),
		"deleted_by": e.DeletedBy.String(),
	})
}

type memberAddedListener struct {
	store Auditor
}

func (*memberAddedListener) ForEvent() events.EventName {
	return event.TripMemberAddedEvent
}

func (l *memberAddedListener) Handle(ctx context.Context, ev events.Event) error {
	e := ev.(*event.TripMemberAdded)
	return persist(ctx, l.store, l.ForEvent(), map[string]interface{}{
		"trip_id": e.TripID.String(),
		"user_id": e.UserID.String(),
		"role":    e.Role,
	})
}

type memberRemovedListener struct {
	store Auditor
}

func (*memberRemovedListener) ForEvent() events.EventName {
	return event.TripMemberRemovedEvent
}

func (l *memberRemovedListener) Handle(ctx context.Context, ev events.Event) error {
	e := ev.(*event.TripMemberRemoved)
	return persist(ctx, l.store, l.ForEvent(), map[string]interface{}{
		"trip_id": e.TripID.String(),
		"user_id": e.UserID.String(),
	})
}

type memberRSVPListener struct {
	store Auditor
}

func (*memberRSVPListener) ForEvent() events.EventName {
	return event.TripMemberRSVPEvent
}

func (l *memberRSVPListener) Handle(ctx context.Context, ev events.Event) error {
	e := ev.(*event.TripMemberRSVP)
	return persist(ctx, l.store, l.ForEvent(), map[string]interface{}{
		"trip_id": e.TripID.String(),
		"user_id": e.UserID.String(),
		"status":  e.Status,
	})
}

type emailInviteSentListener struct {
	store Auditor
}

func (*emailInviteSentListener) ForEvent() events.EventName {
	return event.EmailInviteSentEvent
}

func (l *emailInviteSentListener) Handle(ctx context.Context, ev events.Event) error {
	e := ev.(*event.EmailInviteSent)
	return persist(ctx, l.store, l.ForEvent(), map[string]interface{}{
		"trip_id": e.TripID.String(),
		"email":   sanitize.MaskEmail(e.Email),
		"sent":    e.Sent,
	})
}

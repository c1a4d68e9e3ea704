package event

import (
	"time"

	"github.com/google/uuid"
	"github.com/triptogether/triptogether/events"
)

const (
	TripInviteIssuedEvent   events.EventName = "trip_invite_issued"
	TripInviteConsumedEvent events.EventName = "trip_invite_consumed"
	TripInviteRevokedEvent  events.EventName = "trip_invite_revoked"

	UserSignupEvent   events.EventName = "user_signup"
	UserLoginEvent    events.EventName = "user_login"
	UserLockedEvent   events.EventName = "user_locked"
	UserUnlockedEvent events.EventName = "user_unlocked"

	TripCreatedEvent       events.EventName = "trip_created"
	TripDeletedEvent       events.EventName = "trip_deleted"
	TripMemberAddedEvent   events.EventName = "trip_member_added"
	TripMemberRemovedEvent events.EventName = "trip_member_removed"
	TripMemberRSVPEvent    events.EventName = "trip_member_rsvp"

	EmailInviteSentEvent events.EventName = "email_invite_sent"
)

type TripInviteIssued struct {
	InviteID   uuid.UUID
	TripID     uuid.UUID
	Email      string
	IssuedBy   uuid.UUID
	ExpiryDate time.Time
}

func (*TripInviteIssued) Name() events.EventName { return TripInviteIssuedEvent }

type TripInviteConsumed struct {
	TripID uuid.UUID
	UserID uuid.UUID
}

func (*TripInviteConsumed) Name() events.EventName { return TripInviteConsumedEvent }

type TripInviteRevoked struct {
	InviteID  uuid.UUID
	TripID    uuid.UUID
	RevokedBy uuid.UUID
}

func (*TripInviteRevoked) Name() events.EventName { return TripInviteRevokedEvent }

type UserSignup struct {
	UserID uuid.UUID
	Email  string
}

func (*UserSignup) Name() events.EventName { return UserSignupEvent }

type UserLogin struct {
	UserID uuid.UUID
}

func (*UserLogin) Name() events.EventName { return UserLoginEvent }

type UserLocked struct {
	UserID      uuid.UUID
	LockedUntil time.Time
}

func (*UserLocked) Name() events.EventName { return UserLockedEvent }

type UserUnlocked struct {
	UserID uuid.UUID
}

func (*UserUnlocked) Name() events.EventName { return UserUnlockedEvent }

type TripCreated struct {
	TripID    uuid.UUID
	CreatedBy uuid.UUID
	TripName  string
}

func (*TripCreated) Name() events.EventName { return TripCreatedEvent }

type TripDeleted struct {
	TripID    uuid.UUID
	DeletedBy uuid.UUID
}

func (*TripDeleted) Name() events.EventName { return TripDeletedEvent }

type TripMemberAdded struct {
	TripID uuid.UUID
	UserID uuid.UUID
	Role   string
}

func (*TripMemberAdded) Name() events.EventName { return TripMemberAddedEvent }

type TripMemberRemoved struct {
	TripID uuid.UUID
	UserID uuid.UUID
}

func (*TripMemberRemoved) Name() events.EventName { return TripMemberRemovedEvent }

type TripMemberRSVP struct {
	TripID uuid.UUID
	UserID uuid.UUID
	Status string
}

func (*TripMemberRSVP) Name() events.EventName { return TripMemberRSVPEvent }

type EmailInviteSent struct {
	TripID uuid.UUID
	Email  string
	Sent   time.Time
}

func (*EmailInviteSent) Name() events.EventName { return EmailInviteSentEvent }

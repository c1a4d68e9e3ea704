package trips

// Trip membership roles. Admins manage the trip and its invites,
// guests collaborate on content.
const (
	RoleAdmin = "admin"
	RoleGuest = "guest"
)

// RSVP states of a membership
const (
	RSVPPending  = "pending"
	RSVPAccepted = "accepted"
	RSVPDeclined = "declined"
)

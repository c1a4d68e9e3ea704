//go:build integration
// +build integration

package db

import (
	"context"
	"log"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"github.com/triptogether/triptogether/config"
	"github.com/triptogether/triptogether/db/tables"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v4/stdlib"
	_ "github.com/mattn/go-sqlite3"
)

type DatabaseIntegrationTestSuite struct {
	suite.Suite
	dataStore *DataStore
	dbType    string
	dsn       string
}

func (s *DatabaseIntegrationTestSuite) SetupTest() {
	//reset to clean state
	switch s.dbType {
	case "sqlite":
		// dropping every connection discards the shared in-memory db,
		// reopening starts from a clean slate
		if s.dataStore != nil {
			s.dataStore.Close()
		}
		dataStore, err := NewSqliteStore(zap.NewNop(), &config.DatabaseConfiguration{
			Type: s.dbType,
			DSN:  s.dsn,
		})
		if err != nil {
			log.Fatal("error creating database store")
		}
		s.dataStore = dataStore
	case "pg":
		s.dataStore.db.MustExec("DROP SCHEMA IF EXISTS triptogether CASCADE;")
	case "mysql":
		s.dataStore.db.MustExec("DROP DATABASE IF EXISTS triptogether;")
		s.dataStore.db.MustExec("CREATE DATABASE triptogether;")
		s.dataStore.db.MustExec("USE triptogether;")
	}

	err := s.dataStore.EnsureUsable()
	assert.NoError(s.T(), err)
}

func (s *DatabaseIntegrationTestSuite) seedUser(email string) uuid.UUID {
	name := "Seeded User"
	id, err := s.dataStore.InsertUser(context.Background(), email, "$2a$04$notarealhash", &name, nil)
	assert.NoError(s.T(), err)
	return id
}

func (s *DatabaseIntegrationTestSuite) seedTrip(createdBy uuid.UUID) uuid.UUID {
	id, err := s.dataStore.InsertTrip(
		context.Background(),
		"Lisbon Getaway",
		nil,
		time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC),
		createdBy,
	)
	assert.NoError(s.T(), err)
	return id
}

// Users part

func (s *DatabaseIntegrationTestSuite) TestInsertAndFetchUser() {
	id := s.seedUser("host@example.com")
	user, err := s.dataStore.UserByID(context.Background(), id)
	assert.NoError(s.T(), err)
	if assert.NotNil(s.T(), user) {
		assert.Equal(s.T(), id, user.ID)
		assert.Equal(s.T(), "host@example.com", user.Email)
		if assert.NotNil(s.T(), user.FullName) {
			assert.Equal(s.T(), "Seeded User", *user.FullName)
		}
		assert.Nil(s.T(), user.LockoutTill)
		assert.Equal(s.T(), 0, user.CurrentFailureCount)
	}
}

func (s *DatabaseIntegrationTestSuite) TestUserByIDNotFound() {
	_, err := s.dataStore.UserByID(context.Background(), uuid.New())
	assert.ErrorIs(s.T(), err, ErrNotFound)
}

func (s *DatabaseIntegrationTestSuite) TestIDFromEmail() {
	id := s.seedUser("host@example.com")
	found, got, err := s.dataStore.IDFromEmail(context.Background(), "host@example.com")
	assert.NoError(s.T(), err)
	assert.True(s.T(), found)
	assert.Equal(s.T(), id, got)

	found, _, err = s.dataStore.IDFromEmail(context.Background(), "nobody@example.com")
	assert.NoError(s.T(), err)
	assert.False(s.T(), found)
}

func (s *DatabaseIntegrationTestSuite) TestIsRegistred() {
	s.seedUser("host@example.com")
	registered, err := s.dataStore.IsRegistred(context.Background(), "host@example.com")
	assert.NoError(s.T(), err)
	assert.True(s.T(), registered)

	registered, err = s.dataStore.IsRegistred(context.Background(), "nobody@example.com")
	assert.NoError(s.T(), err)
	assert.False(s.T(), registered)
}

func (s *DatabaseIntegrationTestSuite) TestLockAndUnlockUser() {
	id := s.seedUser("host@example.com")
	till := time.Now().UTC().Add(10 * time.Minute)
	ok, err := s.dataStore.LockUser(context.Background(), id, till)
	assert.NoError(s.T(), err)
	assert.True(s.T(), ok)

	user, err := s.dataStore.UserByID(context.Background(), id)
	assert.NoError(s.T(), err)
	assert.NotNil(s.T(), user.LockoutTill)

	ok, err = s.dataStore.UnlockUser(context.Background(), id)
	assert.NoError(s.T(), err)
	assert.True(s.T(), ok)

	user, err = s.dataStore.UserByID(context.Background(), id)
	assert.NoError(s.T(), err)
	assert.Nil(s.T(), user.LockoutTill)
	assert.Equal(s.T(), 0, user.CurrentFailureCount)
}

func (s *DatabaseIntegrationTestSuite) TestGoogleSubjectLinking() {
	id := s.seedUser("host@example.com")
	ok, err := s.dataStore.LinkGoogleSubject(context.Background(), id, "google-sub-1234")
	assert.NoError(s.T(), err)
	assert.True(s.T(), ok)

	user, err := s.dataStore.UserByGoogleSubject(context.Background(), "google-sub-1234")
	assert.NoError(s.T(), err)
	assert.Equal(s.T(), id, user.ID)

	_, err = s.dataStore.UserByGoogleSubject(context.Background(), "unknown-subject")
	assert.ErrorIs(s.T(), err, ErrNotFound)
}

// Trips part

func (s *DatabaseIntegrationTestSuite) TestInsertTripMakesCreatorAdmin() {
	host := s.seedUser("host@example.com")
	tripID := s.seedTrip(host)

	trip, err := s.dataStore.Trip(context.Background(), tripID)
	assert.NoError(s.T(), err)
	assert.Equal(s.T(), "Lisbon Getaway", trip.Name)

	admin, err := s.dataStore.IsTripAdmin(context.Background(), tripID, host)
	assert.NoError(s.T(), err)
	assert.True(s.T(), admin)

	member, err := s.dataStore.IsTripMember(context.Background(), tripID, host)
	assert.NoError(s.T(), err)
	assert.True(s.T(), member)
}

func (s *DatabaseIntegrationTestSuite) TestTripWithHost() {
	host := s.seedUser("host@example.com")
	tripID := s.seedTrip(host)

	detail, err := s.dataStore.TripWithHost(context.Background(), tripID)
	assert.NoError(s.T(), err)
	if assert.NotNil(s.T(), detail) {
		assert.Equal(s.T(), tripID, detail.Trip.ID)
		assert.Equal(s.T(), host, detail.HostID)
		assert.Equal(s.T(), "host@example.com", detail.HostEmail)
	}
}

func (s *DatabaseIntegrationTestSuite) TestTripsByUserOnlyListsMemberships() {
	host := s.seedUser("host@example.com")
	outsider := s.seedUser("outsider@example.com")
	tripID := s.seedTrip(host)

	trips, err := s.dataStore.TripsByUser(context.Background(), host)
	assert.NoError(s.T(), err)
	if assert.Len(s.T(), trips, 1) {
		assert.Equal(s.T(), tripID, trips[0].ID)
	}

	trips, err = s.dataStore.TripsByUser(context.Background(), outsider)
	assert.NoError(s.T(), err)
	assert.Len(s.T(), trips, 0)
}

func (s *DatabaseIntegrationTestSuite) TestUpdateAndDeleteTrip() {
	host := s.seedUser("host@example.com")
	tripID := s.seedTrip(host)

	desc := "now with surfing"
	ok, err := s.dataStore.UpdateTrip(
		context.Background(),
		tripID,
		"Lisbon Surf Week",
		&desc,
		time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 9, 9, 0, 0, 0, 0, time.UTC),
	)
	assert.NoError(s.T(), err)
	assert.True(s.T(), ok)

	trip, err := s.dataStore.Trip(context.Background(), tripID)
	assert.NoError(s.T(), err)
	assert.Equal(s.T(), "Lisbon Surf Week", trip.Name)

	err = s.dataStore.DeleteTrip(context.Background(), tripID)
	assert.NoError(s.T(), err)
	_, err = s.dataStore.Trip(context.Background(), tripID)
	assert.ErrorIs(s.T(), err, ErrNotFound)
}

// Members part

func (s *DatabaseIntegrationTestSuite) TestAddTripMember() {
	host := s.seedUser("host@example.com")
	guest := s.seedUser("guest@example.com")
	tripID := s.seedTrip(host)

	err := s.dataStore.AddTripMember(context.Background(), tripID, guest, "guest", "accepted")
	assert.NoError(s.T(), err)

	member, err := s.dataStore.IsTripMember(context.Background(), tripID, guest)
	assert.NoError(s.T(), err)
	assert.True(s.T(), member)

	admin, err := s.dataStore.IsTripAdmin(context.Background(), tripID, guest)
	assert.NoError(s.T(), err)
	assert.False(s.T(), admin)
}

func (s *DatabaseIntegrationTestSuite) TestAddTripMemberTwice() {
	host := s.seedUser("host@example.com")
	guest := s.seedUser("guest@example.com")
	tripID := s.seedTrip(host)

	err := s.dataStore.AddTripMember(context.Background(), tripID, guest, "guest", "accepted")
	assert.NoError(s.T(), err)
	err = s.dataStore.AddTripMember(context.Background(), tripID, guest, "guest", "accepted")
	assert.ErrorIs(s.T(), err, ErrAlreadyExists)
}

func (s *DatabaseIntegrationTestSuite) TestSetMemberRoleAndRSVP() {
	host := s.seedUser("host@example.com")
	guest := s.seedUser("guest@example.com")
	tripID := s.seedTrip(host)

	err := s.dataStore.AddTripMember(context.Background(), tripID, guest, "guest", "pending")
	assert.NoError(s.T(), err)

	ok, err := s.dataStore.SetMemberRole(context.Background(), tripID, guest, "admin")
	assert.NoError(s.T(), err)
	assert.True(s.T(), ok)

	admin, err := s.dataStore.IsTripAdmin(context.Background(), tripID, guest)
	assert.NoError(s.T(), err)
	assert.True(s.T(), admin)

	ok, err = s.dataStore.SetMemberRSVP(context.Background(), tripID, guest, "declined")
	assert.NoError(s.T(), err)
	assert.True(s.T(), ok)

	members, err := s.dataStore.TripMembers(context.Background(), tripID)
	assert.NoError(s.T(), err)
	for _, m := range members {
		if m.UserID == guest {
			assert.Equal(s.T(), "declined", m.RSVPStatus)
			assert.NotNil(s.T(), m.RespondedAt)
		}
	}
}

func (s *DatabaseIntegrationTestSuite) TestRemoveTripMember() {
	host := s.seedUser("host@example.com")
	guest := s.seedUser("guest@example.com")
	tripID := s.seedTrip(host)

	err := s.dataStore.AddTripMember(context.Background(), tripID, guest, "guest", "accepted")
	assert.NoError(s.T(), err)
	err = s.dataStore.RemoveTripMember(context.Background(), tripID, guest)
	assert.NoError(s.T(), err)

	member, err := s.dataStore.IsTripMember(context.Background(), tripID, guest)
	assert.NoError(s.T(), err)
	assert.False(s.T(), member)
}

// Invites part

func (s *DatabaseIntegrationTestSuite) seedInvite(tripID uuid.UUID, createdBy uuid.UUID, token string, expires time.Time) uuid.UUID {
	id, err := s.dataStore.InsertInviteToken(
		context.Background(),
		tripID,
		token,
		"guest@example.com",
		expires,
		createdBy,
	)
	assert.NoError(s.T(), err)
	return id
}

func (s *DatabaseIntegrationTestSuite) TestUsableInviteByToken() {
	host := s.seedUser("host@example.com")
	tripID := s.seedTrip(host)
	s.seedInvite(tripID, host, "fresh-token", time.Now().UTC().Add(time.Hour))

	invite, err := s.dataStore.UsableInviteByToken(context.Background(), "fresh-token")
	assert.NoError(s.T(), err)
	if assert.NotNil(s.T(), invite) {
		assert.Equal(s.T(), tripID, invite.TripID)
		assert.Equal(s.T(), "guest@example.com", invite.Email)
		assert.Nil(s.T(), invite.UsedAt)
	}
}

func (s *DatabaseIntegrationTestSuite) TestUsableInviteByTokenExpired() {
	host := s.seedUser("host@example.com")
	tripID := s.seedTrip(host)
	s.seedInvite(tripID, host, "stale-token", time.Now().UTC().Add(-time.Hour))

	_, err := s.dataStore.UsableInviteByToken(context.Background(), "stale-token")
	assert.ErrorIs(s.T(), err, ErrNotFound)
}

func (s *DatabaseIntegrationTestSuite) TestUsableInviteByTokenUnknown() {
	_, err := s.dataStore.UsableInviteByToken(context.Background(), "no-such-token")
	assert.ErrorIs(s.T(), err, ErrNotFound)
}

func (s *DatabaseIntegrationTestSuite) TestConsumeInviteToken() {
	host := s.seedUser("host@example.com")
	tripID := s.seedTrip(host)
	s.seedInvite(tripID, host, "fresh-token", time.Now().UTC().Add(time.Hour))

	consumed, err := s.dataStore.ConsumeInviteToken(context.Background(), "fresh-token")
	assert.NoError(s.T(), err)
	assert.True(s.T(), consumed)

	// second consume loses, exactly one winner per token
	consumed, err = s.dataStore.ConsumeInviteToken(context.Background(), "fresh-token")
	assert.NoError(s.T(), err)
	assert.False(s.T(), consumed)

	_, err = s.dataStore.UsableInviteByToken(context.Background(), "fresh-token")
	assert.ErrorIs(s.T(), err, ErrNotFound)

	// still visible through the unconditional lookup
	invite, err := s.dataStore.InviteByToken(context.Background(), "fresh-token")
	assert.NoError(s.T(), err)
	assert.NotNil(s.T(), invite.UsedAt)
}

func (s *DatabaseIntegrationTestSuite) TestHasPendingInvite() {
	host := s.seedUser("host@example.com")
	tripID := s.seedTrip(host)
	s.seedInvite(tripID, host, "fresh-token", time.Now().UTC().Add(time.Hour))

	pending, err := s.dataStore.HasPendingInvite(context.Background(), tripID, "guest@example.com")
	assert.NoError(s.T(), err)
	assert.True(s.T(), pending)

	pending, err = s.dataStore.HasPendingInvite(context.Background(), tripID, "other@example.com")
	assert.NoError(s.T(), err)
	assert.False(s.T(), pending)

	consumed, err := s.dataStore.ConsumeInviteToken(context.Background(), "fresh-token")
	assert.NoError(s.T(), err)
	assert.True(s.T(), consumed)

	pending, err = s.dataStore.HasPendingInvite(context.Background(), tripID, "guest@example.com")
	assert.NoError(s.T(), err)
	assert.False(s.T(), pending)
}

func (s *DatabaseIntegrationTestSuite) TestDeleteInviteToken() {
	host := s.seedUser("host@example.com")
	tripID := s.seedTrip(host)
	id := s.seedInvite(tripID, host, "fresh-token", time.Now().UTC().Add(time.Hour))

	err := s.dataStore.DeleteInviteToken(context.Background(), id)
	assert.NoError(s.T(), err)
	_, err = s.dataStore.InviteByID(context.Background(), id)
	assert.ErrorIs(s.T(), err, ErrNotFound)
}

func (s *DatabaseIntegrationTestSuite) TestDeleteInviteTokenKeepsConsumed() {
	host := s.seedUser("host@example.com")
	tripID := s.seedTrip(host)
	id := s.seedInvite(tripID, host, "fresh-token", time.Now().UTC().Add(time.Hour))

	consumed, err := s.dataStore.ConsumeInviteToken(context.Background(), "fresh-token")
	assert.NoError(s.T(), err)
	assert.True(s.T(), consumed)

	err = s.dataStore.DeleteInviteToken(context.Background(), id)
	assert.ErrorIs(s.T(), err, ErrNotFound)

	// the consumed record stays for the books
	invite, err := s.dataStore.InviteByID(context.Background(), id)
	assert.NoError(s.T(), err)
	assert.NotNil(s.T(), invite.UsedAt)
}

func (s *DatabaseIntegrationTestSuite) TestInvitesByTrip() {
	host := s.seedUser("host@example.com")
	tripID := s.seedTrip(host)
	s.seedInvite(tripID, host, "token-one", time.Now().UTC().Add(time.Hour))
	s.seedInvite(tripID, host, "token-two", time.Now().UTC().Add(2*time.Hour))

	invites, err := s.dataStore.InvitesByTrip(context.Background(), tripID)
	assert.NoError(s.T(), err)
	assert.Len(s.T(), invites, 2)
}

// Trip content part

func (s *DatabaseIntegrationTestSuite) TestItineraryItemLifecycle() {
	host := s.seedUser("host@example.com")
	tripID := s.seedTrip(host)

	id, err := s.dataStore.InsertItineraryItem(context.Background(), &tables.ItineraryItemTable{
		TripID:    tripID,
		Title:     "Tram 28 ride",
		Date:      time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC),
		CreatedBy: host,
	})
	assert.NoError(s.T(), err)

	items, err := s.dataStore.ItineraryItems(context.Background(), tripID)
	assert.NoError(s.T(), err)
	if assert.Len(s.T(), items, 1) {
		assert.Equal(s.T(), "Tram 28 ride", items[0].Title)
	}

	ok, err := s.dataStore.UpdateItineraryItem(context.Background(), &tables.ItineraryItemTable{
		ID:        id,
		TripID:    tripID,
		Title:     "Tram 28 ride, early",
		Date:      time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC),
		CreatedBy: host,
	})
	assert.NoError(s.T(), err)
	assert.True(s.T(), ok)

	err = s.dataStore.DeleteItineraryItem(context.Background(), tripID, id)
	assert.NoError(s.T(), err)
	items, err = s.dataStore.ItineraryItems(context.Background(), tripID)
	assert.NoError(s.T(), err)
	assert.Len(s.T(), items, 0)
}

func (s *DatabaseIntegrationTestSuite) TestBudgetItemLifecycle() {
	host := s.seedUser("host@example.com")
	tripID := s.seedTrip(host)

	id, err := s.dataStore.InsertBudgetItem(context.Background(), &tables.BudgetItemTable{
		TripID:      tripID,
		Description: "Hostel",
		Amount:      240.50,
		Category:    "lodging",
		CreatedBy:   host,
	})
	assert.NoError(s.T(), err)

	items, err := s.dataStore.BudgetItems(context.Background(), tripID)
	assert.NoError(s.T(), err)
	if assert.Len(s.T(), items, 1) {
		assert.Equal(s.T(), 240.50, items[0].Amount)
		assert.False(s.T(), items[0].Paid)
	}

	err = s.dataStore.DeleteBudgetItem(context.Background(), tripID, id)
	assert.NoError(s.T(), err)
}

func (s *DatabaseIntegrationTestSuite) TestPackingItemChecked() {
	host := s.seedUser("host@example.com")
	tripID := s.seedTrip(host)

	id, err := s.dataStore.InsertPackingItem(context.Background(), &tables.PackingItemTable{
		TripID:    tripID,
		Item:      "Sunscreen",
		Category:  "essentials",
		CreatedBy: host,
	})
	assert.NoError(s.T(), err)

	ok, err := s.dataStore.SetPackingItemChecked(context.Background(), tripID, id, true)
	assert.NoError(s.T(), err)
	assert.True(s.T(), ok)

	items, err := s.dataStore.PackingItems(context.Background(), tripID)
	assert.NoError(s.T(), err)
	if assert.Len(s.T(), items, 1) {
		assert.True(s.T(), items[0].Checked)
	}

	// wrong trip id must not match the row
	ok, err = s.dataStore.SetPackingItemChecked(context.Background(), uuid.New(), id, false)
	assert.NoError(s.T(), err)
	assert.False(s.T(), ok)
}

func (s *DatabaseIntegrationTestSuite) TestMessages() {
	host := s.seedUser("host@example.com")
	tripID := s.seedTrip(host)

	_, err := s.dataStore.InsertMessage(context.Background(), tripID, host, "who packs the tent?")
	assert.NoError(s.T(), err)

	messages, err := s.dataStore.Messages(context.Background(), tripID, ListOptions{Page: 1, PageSize: 50})
	assert.NoError(s.T(), err)
	if assert.Len(s.T(), messages, 1) {
		assert.Equal(s.T(), "who packs the tent?", messages[0].Content)
		assert.Equal(s.T(), host, messages[0].UserID)
	}
}

func (s *DatabaseIntegrationTestSuite) TestPhotos() {
	host := s.seedUser("host@example.com")
	tripID := s.seedTrip(host)

	id, err := s.dataStore.InsertPhoto(context.Background(), &tables.PhotoTable{
		TripID:     tripID,
		URL:        "https://cdn.example.com/p/1.jpg",
		UploadedBy: host,
	})
	assert.NoError(s.T(), err)

	photos, err := s.dataStore.Photos(context.Background(), tripID)
	assert.NoError(s.T(), err)
	assert.Len(s.T(), photos, 1)

	err = s.dataStore.DeletePhoto(context.Background(), tripID, id)
	assert.NoError(s.T(), err)
	photos, err = s.dataStore.Photos(context.Background(), tripID)
	assert.NoError(s.T(), err)
	assert.Len(s.T(), photos, 0)
}

func (s *DatabaseIntegrationTestSuite) TestOutfitLifecycle() {
	host := s.seedUser("host@example.com")
	tripID := s.seedTrip(host)

	eventID, err := s.dataStore.InsertItineraryItem(context.Background(), &tables.ItineraryItemTable{
		TripID:    tripID,
		Title:     "Welcome dinner",
		Date:      time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC),
		CreatedBy: host,
	})
	assert.NoError(s.T(), err)

	look := "linen shirt and sandals"
	id, err := s.dataStore.InsertOutfit(context.Background(), &tables.OutfitTable{
		TripID:      tripID,
		EventID:     eventID,
		UserID:      host,
		Description: &look,
	})
	assert.NoError(s.T(), err)

	outfits, err := s.dataStore.Outfits(context.Background(), tripID)
	assert.NoError(s.T(), err)
	if assert.Len(s.T(), outfits, 1) {
		assert.Equal(s.T(), eventID, outfits[0].EventID)
		assert.Equal(s.T(), host, outfits[0].UserID)
		if assert.NotNil(s.T(), outfits[0].Description) {
			assert.Equal(s.T(), "linen shirt and sandals", *outfits[0].Description)
		}
	}

	updated := "linen shirt, sandals and a hat"
	ok, err := s.dataStore.UpdateOutfit(context.Background(), &tables.OutfitTable{
		ID:          id,
		TripID:      tripID,
		EventID:     eventID,
		UserID:      host,
		Description: &updated,
	})
	assert.NoError(s.T(), err)
	assert.True(s.T(), ok)

	err = s.dataStore.DeleteOutfit(context.Background(), tripID, id, host)
	assert.NoError(s.T(), err)
	outfits, err = s.dataStore.Outfits(context.Background(), tripID)
	assert.NoError(s.T(), err)
	assert.Len(s.T(), outfits, 0)
}

func (s *DatabaseIntegrationTestSuite) TestOutfitStaysPersonal() {
	host := s.seedUser("host@example.com")
	guest := s.seedUser("guest@example.com")
	tripID := s.seedTrip(host)
	assert.NoError(s.T(), s.dataStore.AddTripMember(context.Background(), tripID, guest, "guest", "accepted"))

	eventID, err := s.dataStore.InsertItineraryItem(context.Background(), &tables.ItineraryItemTable{
		TripID:    tripID,
		Title:     "Temple tour",
		Date:      time.Date(2026, 9, 3, 0, 0, 0, 0, time.UTC),
		CreatedBy: host,
	})
	assert.NoError(s.T(), err)

	id, err := s.dataStore.InsertOutfit(context.Background(), &tables.OutfitTable{
		TripID:  tripID,
		EventID: eventID,
		UserID:  host,
	})
	assert.NoError(s.T(), err)

	// another member cannot touch the host's look
	note := "borrowed"
	ok, err := s.dataStore.UpdateOutfit(context.Background(), &tables.OutfitTable{
		ID:          id,
		TripID:      tripID,
		EventID:     eventID,
		UserID:      guest,
		Description: &note,
	})
	assert.NoError(s.T(), err)
	assert.False(s.T(), ok)

	err = s.dataStore.DeleteOutfit(context.Background(), tripID, id, guest)
	assert.ErrorIs(s.T(), err, ErrNotFound)
}

func (s *DatabaseIntegrationTestSuite) TestConsumeInviteTokenConcurrent() {
	host := s.seedUser("host@example.com")
	tripID := s.seedTrip(host)
	s.seedInvite(tripID, host, "contested-token", time.Now().UTC().Add(time.Hour))

	const consumers = 8
	results := make(chan bool, consumers)
	var wg sync.WaitGroup
	for i := 0; i < consumers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			consumed, err := s.dataStore.ConsumeInviteToken(context.Background(), "contested-token")
			assert.NoError(s.T(), err)
			results <- consumed
		}()
	}
	wg.Wait()
	close(results)

	winners := 0
	for consumed := range results {
		if consumed {
			winners++
		}
	}
	assert.Equal(s.T(), 1, winners)
}

func (s *DatabaseIntegrationTestSuite) TestAuditTrailPersistsEntries() {
	ctx := context.Background()
	trail := s.dataStore.Auditor()

	err := trail.addToAuditLog(ctx, "trip_invite_issued", tables.MapStructure{
		"trip_id": uuid.NewString(),
		"email":   "m***@example.com",
	})
	assert.NoError(s.T(), err)
	err = trail.addToAuditLog(ctx, "trip_member_added", tables.MapStructure{
		"trip_id": uuid.NewString(),
	})
	assert.NoError(s.T(), err)

	var entries []*tables.AuditLogTable
	err = s.dataStore.db.SelectContext(
		ctx,
		&entries,
		"SELECT * FROM audit_logs ORDER BY id ASC",
	)
	assert.NoError(s.T(), err)
	if assert.Len(s.T(), entries, 2) {
		assert.Equal(s.T(), "trip_invite_issued", entries[0].EventType)
		assert.Equal(s.T(), "trip_member_added", entries[1].EventType)
	}
}

func TestDatabaseSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping database integration tests")
	}
	s := &DatabaseIntegrationTestSuite{}
	logger := zaptest.NewLogger(t)
	dbType := os.Getenv("INTEGRATION_TEST_DB_TYPE")
	dsn := os.Getenv("INTEGRATION_TEST_DB_DSN")
	switch dbType {
	case "mysql":
		dataStore, err := NewMysqlStore(logger, &config.DatabaseConfiguration{
			Type: dbType,
			DSN:  dsn,
		})
		if err != nil {
			log.Fatal("error creating database store")
		}
		s.dataStore = dataStore
	case "pg":
		dataStore, err := NewPostgrestore(logger, &config.DatabaseConfiguration{
			Type: dbType,
			DSN:  dsn,
		})
		if err != nil {
			log.Fatal("error creating database store")
		}
		s.dataStore = dataStore
	default:
		dbType = "sqlite"
		if dsn == "" {
			// shared cache keeps the pool's connections on one in-memory db
			dsn = "file::memory:?cache=shared&_busy_timeout=5000"
		}
		dataStore, err := NewSqliteStore(logger, &config.DatabaseConfiguration{
			Type: dbType,
			DSN:  dsn,
		})
		if err != nil {
			log.Fatal("error creating database store")
		}
		s.dataStore = dataStore
	}
	s.dbType = dbType
	s.dsn = dsn
	suite.Run(t, s)
}

package trips

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/triptogether/triptogether/db"
	"github.com/triptogether/triptogether/db/tables"
	"github.com/triptogether/triptogether/sanitize"
)

var ErrItemDoesNotExist = errors.New("item does not exist on this trip")
var ErrEmptyContent = errors.New("content must not be empty")

// ItineraryItemInput is the user supplied shape of a schedule entry
type ItineraryItemInput struct {
	Title       string `validate:"required,max=200"`
	Description *string
	Date        time.Time `validate:"required"`
	Time        *string
	Location    *string
}

// Itinerary returns the schedule of a trip grouped by day
func (s *Service) Itinerary(ctx context.Context, tripID uuid.UUID, userID uuid.UUID) ([]ItineraryDay, error) {
	if err := s.requireMember(ctx, tripID, userID); err != nil {
		return nil, err
	}
	items, err := s.store.ItineraryItems(ctx, tripID)
	if err != nil {
		return nil, err
	}
	return GroupItineraryByDay(items), nil
}

func (s *Service) AddItineraryItem(
	ctx context.Context,
	tripID uuid.UUID,
	userID uuid.UUID,
	input ItineraryItemInput,
) (uuid.UUID, error) {
	if err := s.requireMember(ctx, tripID, userID); err != nil {
		return uuid.UUID{}, err
	}
	if err := s.validate.Struct(&input); err != nil {
		return uuid.UUID{}, err
	}
	item := &tables.ItineraryItemTable{
		TripID:      tripID,
		Title:       sanitize.PlainText(input.Title),
		Description: sanitizeOptional(input.Description),
		Date:        input.Date,
		Time:        input.Time,
		Location:    input.Location,
		CreatedBy:   userID,
	}
	return s.store.InsertItineraryItem(ctx, item)
}

func (s *Service) UpdateItineraryItem(
	ctx context.Context,
	tripID uuid.UUID,
	itemID uuid.UUID,
	userID uuid.UUID,
	input ItineraryItemInput,
) error {
	if err := s.requireMember(ctx, tripID, userID); err != nil {
		return err
	}
	if err := s.validate.Struct(&input); err != nil {
		return err
	}
	item := &tables.ItineraryItemTable{
		ID:          itemID,
		TripID:      tripID,
		Title:       sanitize.PlainText(input.Title),
		Description: sanitizeOptional(input.Description),
		Date:        input.Date,
		Time:        input.Time,
		Location:    input.Location,
	}
	ok, err := s.store.UpdateItineraryItem(ctx, item)
	if err != nil {
		return err
	}
	if !ok {
		return ErrItemDoesNotExist
	}
	return nil
}

func (s *Service) DeleteItineraryItem(
	ctx context.Context,
	tripID uuid.UUID,
	itemID uuid.UUID,
	userID uuid.UUID,
) error {
	if err := s.requireMember(ctx, tripID, userID); err != nil {
		return err
	}
	err := s.store.DeleteItineraryItem(ctx, tripID, itemID)
	if errors.Is(err, db.ErrNotFound) {
		return ErrItemDoesNotExist
	}
	return err
}

// BudgetItemInput is the user supplied shape of a shared expense
type BudgetItemInput struct {
	Description string  `validate:"required,max=200"`
	Amount      float64 `validate:"gte=0"`
	Category    string  `validate:"required,max=60"`
	PaidBy      *uuid.UUID
	Paid        bool
	ReceiptURL  *string
}

// Budget returns the budget items of a trip plus their summary
func (s *Service) Budget(
	ctx context.Context,
	tripID uuid.UUID,
	userID uuid.UUID,
) ([]*tables.BudgetItemTable, BudgetSummary, error) {
	if err := s.requireMember(ctx, tripID, userID); err != nil {
		return nil, BudgetSummary{}, err
	}
	items, err := s.store.BudgetItems(ctx, tripID)
	if err != nil {
		return nil, BudgetSummary{}, err
	}
	return items, SummarizeBudget(items), nil
}

func (s *Service) AddBudgetItem(
	ctx context.Context,
	tripID uuid.UUID,
	userID uuid.UUID,
	input BudgetItemInput,
) (uuid.UUID, error) {
	if err := s.requireMember(ctx, tripID, userID); err != nil {
		return uuid.UUID{}, err
	}
	if err := s.validate.Struct(&input); err != nil {
		return uuid.UUID{}, err
	}
	item := &tables.BudgetItemTable{
		TripID:      tripID,
		Description: sanitize.PlainText(input.Description),
		Amount:      input.Amount,
		Category:    sanitize.PlainText(input.Category),
		PaidBy:      input.PaidBy,
		Paid:        input.Paid,
		ReceiptURL:  input.ReceiptURL,
		CreatedBy:   userID,
	}
	return s.store.InsertBudgetItem(ctx, item)
}

func (s *Service) UpdateBudgetItem(
	ctx context.Context,
	tripID uuid.UUID,
	itemID uuid.UUID,
	userID uuid.UUID,
	input BudgetItemInput,
) error {
	if err := s.requireMember(ctx, tripID, userID); err != nil {
		return err
	}
	if err := s.validate.Struct(&input); err != nil {
		return err
	}
	item := &tables.BudgetItemTable{
		ID:          itemID,
		TripID:      tripID,
		Description: sanitize.PlainText(input.Description),
		Amount:      input.Amount,
		Category:    sanitize.PlainText(input.Category),
		PaidBy:      input.PaidBy,
		Paid:        input.Paid,
		ReceiptURL:  input.ReceiptURL,
	}
	ok, err := s.store.UpdateBudgetItem(ctx, item)
	if err != nil {
		return err
	}
	if !ok {
		return ErrItemDoesNotExist
	}
	return nil
}

func (s *Service) DeleteBudgetItem(
	ctx context.Context,
	tripID uuid.UUID,
	itemID uuid.UUID,
	userID uuid.UUID,
) error {
	if err := s.requireMember(ctx, tripID, userID); err != nil {
		return err
	}
	err := s.store.DeleteBudgetItem(ctx, tripID, itemID)
	if errors.Is(err, db.ErrNotFound) {
		return ErrItemDoesNotExist
	}
	return err
}

// PackingItemInput is the user supplied shape of a packing list entry
type PackingItemInput struct {
	Item       string `validate:"required,max=200"`
	Category   string `validate:"required,max=60"`
	AssignedTo *uuid.UUID
}

// Packing returns the packing list of a trip plus its progress
func (s *Service) Packing(
	ctx context.Context,
	tripID uuid.UUID,
	userID uuid.UUID,
) ([]*tables.PackingItemTable, PackingProgress, error) {
	if err := s.requireMember(ctx, tripID, userID); err != nil {
		return nil, PackingProgress{}, err
	}
	items, err := s.store.PackingItems(ctx, tripID)
	if err != nil {
		return nil, PackingProgress{}, err
	}
	return items, SummarizePacking(items), nil
}

func (s *Service) AddPackingItem(
	ctx context.Context,
	tripID uuid.UUID,
	userID uuid.UUID,
	input PackingItemInput,
) (uuid.UUID, error) {
	if err := s.requireMember(ctx, tripID, userID); err != nil {
		return uuid.UUID{}, err
	}
	if err := s.validate.Struct(&input); err != nil {
		return uuid.UUID{}, err
	}
	item := &tables.PackingItemTable{
		TripID:     tripID,
		Item:       sanitize.PlainText(input.Item),
		Category:   sanitize.PlainText(input.Category),
		AssignedTo: input.AssignedTo,
		CreatedBy:  userID,
	}
	return s.store.InsertPackingItem(ctx, item)
}

// SetPackingItemChecked flips the packed flag of one entry
func (s *Service) SetPackingItemChecked(
	ctx context.Context,
	tripID uuid.UUID,
	itemID uuid.UUID,
	userID uuid.UUID,
	checked bool,
) error {
	if err := s.requireMember(ctx, tripID, userID); err != nil {
		return err
	}
	ok, err := s.store.SetPackingItemChecked(ctx, tripID, itemID, checked)
	if err != nil {
		return err
	}
	if !ok {
		return ErrItemDoesNotExist
	}
	return nil
}

func (s *Service) DeletePackingItem(
	ctx context.Context,
	tripID uuid.UUID,
	itemID uuid.UUID,
	userID uuid.UUID,
) error {
	if err := s.requireMember(ctx, tripID, userID); err != nil {
		return err
	}
	err := s.store.DeletePackingItem(ctx, tripID, itemID)
	if errors.Is(err, db.ErrNotFound) {
		return ErrItemDoesNotExist
	}
	return err
}

// OutfitInput is the user supplied shape of a planned look, bound to
// an itinerary event
type OutfitInput struct {
	EventID     uuid.UUID `validate:"required"`
	Description *string
	PhotoURL    *string `validate:"omitempty,url"`
}

// Outfits returns the planned looks of a trip plus their summary
func (s *Service) Outfits(
	ctx context.Context,
	tripID uuid.UUID,
	userID uuid.UUID,
) ([]*tables.OutfitTable, OutfitSummary, error) {
	if err := s.requireMember(ctx, tripID, userID); err != nil {
		return nil, OutfitSummary{}, err
	}
	items, err := s.store.Outfits(ctx, tripID)
	if err != nil {
		return nil, OutfitSummary{}, err
	}
	return items, SummarizeOutfits(items), nil
}

func (s *Service) AddOutfit(
	ctx context.Context,
	tripID uuid.UUID,
	userID uuid.UUID,
	input OutfitInput,
) (uuid.UUID, error) {
	if err := s.requireMember(ctx, tripID, userID); err != nil {
		return uuid.UUID{}, err
	}
	if err := s.validate.Struct(&input); err != nil {
		return uuid.UUID{}, err
	}
	outfit := &tables.OutfitTable{
		TripID:      tripID,
		EventID:     input.EventID,
		UserID:      userID,
		Description: sanitizeOptional(input.Description),
		PhotoURL:    input.PhotoURL,
	}
	return s.store.InsertOutfit(ctx, outfit)
}

// UpdateOutfit changes one of the callers own looks, other members
// outfits read as missing
func (s *Service) UpdateOutfit(
	ctx context.Context,
	tripID uuid.UUID,
	outfitID uuid.UUID,
	userID uuid.UUID,
	input OutfitInput,
) error {
	if err := s.requireMember(ctx, tripID, userID); err != nil {
		return err
	}
	if err := s.validate.Struct(&input); err != nil {
		return err
	}
	outfit := &tables.OutfitTable{
		ID:          outfitID,
		TripID:      tripID,
		EventID:     input.EventID,
		UserID:      userID,
		Description: sanitizeOptional(input.Description),
		PhotoURL:    input.PhotoURL,
	}
	ok, err := s.store.UpdateOutfit(ctx, outfit)
	if err != nil {
		return err
	}
	if !ok {
		return ErrItemDoesNotExist
	}
	return nil
}

func (s *Service) DeleteOutfit(
	ctx context.Context,
	tripID uuid.UUID,
	outfitID uuid.UUID,
	userID uuid.UUID,
) error {
	if err := s.requireMember(ctx, tripID, userID); err != nil {
		return err
	}
	err := s.store.DeleteOutfit(ctx, tripID, outfitID, userID)
	if errors.Is(err, db.ErrNotFound) {
		return ErrItemDoesNotExist
	}
	return err
}

// Messages returns a page of the trip chat, newest first
func (s *Service) Messages(
	ctx context.Context,
	tripID uuid.UUID,
	userID uuid.UUID,
	opts db.ListOptions,
) ([]*tables.MessageTable, error) {
	if err := s.requireMember(ctx, tripID, userID); err != nil {
		return nil, err
	}
	return s.store.Messages(ctx, tripID, opts)
}

// PostMessage appends a chat message, content is sanitized before it
// is stored
func (s *Service) PostMessage(
	ctx context.Context,
	tripID uuid.UUID,
	userID uuid.UUID,
	content string,
) (uuid.UUID, error) {
	if err := s.requireMember(ctx, tripID, userID); err != nil {
		return uuid.UUID{}, err
	}
	clean := strings.TrimSpace(sanitize.UserContent(content))
	if clean == "" {
		return uuid.UUID{}, ErrEmptyContent
	}
	return s.store.InsertMessage(ctx, tripID, userID, clean)
}

// Photos lists the shared photo records of a trip
func (s *Service) Photos(
	ctx context.Context,
	tripID uuid.UUID,
	userID uuid.UUID,
) ([]*tables.PhotoTable, error) {
	if err := s.requireMember(ctx, tripID, userID); err != nil {
		return nil, err
	}
	return s.store.Photos(ctx, tripID)
}

// AddPhoto stores a photo url record
func (s *Service) AddPhoto(
	ctx context.Context,
	tripID uuid.UUID,
	userID uuid.UUID,
	url string,
	caption *string,
) (uuid.UUID, error) {
	if err := s.requireMember(ctx, tripID, userID); err != nil {
		return uuid.UUID{}, err
	}
	if strings.TrimSpace(url) == "" {
		return uuid.UUID{}, ErrEmptyContent
	}
	photo := &tables.PhotoTable{
		TripID:     tripID,
		URL:        url,
		Caption:    sanitizeOptional(caption),
		UploadedBy: userID,
	}
	return s.store.InsertPhoto(ctx, photo)
}

func (s *Service) DeletePhoto(
	ctx context.Context,
	tripID uuid.UUID,
	photoID uuid.UUID,
	userID uuid.UUID,
) error {
	if err := s.requireMember(ctx, tripID, userID); err != nil {
		return err
	}
	err := s.store.DeletePhoto(ctx, tripID, photoID)
	if errors.Is(err, db.ErrNotFound) {
		return ErrItemDoesNotExist
	}
	return err
}

func sanitizeOptional(value *string) *string {
	if value == nil {
		return nil
	}
	clean := sanitize.UserContent(*value)
	return &clean
}

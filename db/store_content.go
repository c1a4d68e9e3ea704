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

func (d *DataStore) ItineraryItems(ctx context.Context, tripID uuid.UUID) ([]*tables.ItineraryItemTable, error) {
	q := sq.Select("*").From("itinerary_items").
		Where(sq.Eq{"trip_id": tripID}).
		OrderBy("date ASC", "time ASC")
	var entities []*tables.ItineraryItemTable
	err := d.selectStatement(ctx, &entities, q, nil)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return entities, nil
}

func (d *DataStore) InsertItineraryItem(ctx context.Context, item *tables.ItineraryItemTable) (uuid.UUID, error) {
	id := uuid.New()
	insert := sq.Insert("itinerary_items").
		Columns("id", "trip_id", "title", "description", "date", "time", "location", "created_by", "created_at").
		Values(id, item.TripID, item.Title, item.Description, item.Date, item.Time, item.Location, item.CreatedBy, time.Now().UTC())
	_, err := d.insertStatement(ctx, insert, nil)
	if err != nil {
		return uuid.UUID{}, err
	}
	return id, nil
}

func (d *DataStore) UpdateItineraryItem(ctx context.Context, item *tables.ItineraryItemTable) (bool, error) {
	q := sq.Update("itinerary_items").
		Set("title", item.Title).
		Set("description", item.Description).
		Set("date", item.Date).
		Set("time", item.Time).
		Set("location", item.Location).
		Set("updated_at", time.Now().UTC()).
		Where("id = ? AND trip_id = ?", item.ID, item.TripID)
	rs, err := d.updateStatement(ctx, q, nil)
	if err != nil {
		return false, err
	}
	affected, err := rs.RowsAffected()
	return affected > 0, err
}

func (d *DataStore) DeleteItineraryItem(ctx context.Context, tripID uuid.UUID, id uuid.UUID) error {
	return d.deleteTripScoped(ctx, "itinerary_items", tripID, id)
}

func (d *DataStore) BudgetItems(ctx context.Context, tripID uuid.UUID) ([]*tables.BudgetItemTable, error) {
	q := sq.Select("*").From("budget_items").
		Where(sq.Eq{"trip_id": tripID}).
		OrderBy("created_at DESC")
	var entities []*tables.BudgetItemTable
	err := d.selectStatement(ctx, &entities, q, nil)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return entities, nil
}

func (d *DataStore) InsertBudgetItem(ctx context.Context, item *tables.BudgetItemTable) (uuid.UUID, error) {
	id := uuid.New()
	insert := sq.Insert("budget_items").
		Columns("id", "trip_id", "description", "amount", "category", "paid_by", "paid", "receipt_url", "created_by", "created_at").
		Values(id, item.TripID, item.Description, item.Amount, item.Category, item.PaidBy, item.Paid, item.ReceiptURL, item.CreatedBy, time.Now().UTC())
	_, err := d.insertStatement(ctx, insert, nil)
	if err != nil {
		return uuid.UUID{}, err
	}
	return id, nil
}

func (d *DataStore) UpdateBudgetItem(ctx context.Context, item *tables.BudgetItemTable) (bool, error) {
	q := sq.Update("budget_items").
		Set("description", item.Description).
		Set("amount", item.Amount).
		Set("category", item.Category).
		Set("paid_by", item.PaidBy).
		Set("paid", item.Paid).
		Set("receipt_url", item.ReceiptURL).
		Set("updated_at", time.Now().UTC()).
		Where("id = ? AND trip_id = ?", item.ID, item.TripID)
	rs, err := d.updateStatement(ctx, q, nil)
	if err != nil {
		return false, err
	}
	affected, err := rs.RowsAffected()
	return affected > 0, err
}

func (d *DataStore) DeleteBudgetItem(ctx context.Context, tripID uuid.UUID, id uuid.UUID) error {
	return d.deleteTripScoped(ctx, "budget_items", tripID, id)
}

func (d *DataStore) PackingItems(ctx context.Context, tripID uuid.UUID) ([]*tables.PackingItemTable, error) {
	q := sq.Select("*").From("packing_items").
		Where(sq.Eq{"trip_id": tripID}).
		OrderBy("category ASC", "created_at ASC")
	var entities []*tables.PackingItemTable
	err := d.selectStatement(ctx, &entities, q, nil)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return entities, nil
}

func (d *DataStore) InsertPackingItem(ctx context.Context, item *tables.PackingItemTable) (uuid.UUID, error) {
	id := uuid.New()
	insert := sq.Insert("packing_items").
		Columns("id", "trip_id", "item", "category", "assigned_to", "checked", "created_by", "created_at").
		Values(id, item.TripID, item.Item, item.Category, item.AssignedTo, item.Checked, item.CreatedBy, time.Now().UTC())
	_, err := d.insertStatement(ctx, insert, nil)
	if err != nil {
		return uuid.UUID{}, err
	}
	return id, nil
}

func (d *DataStore) UpdatePackingItem(ctx context.Context, item *tables.PackingItemTable) (bool, error) {
	q := sq.Update("packing_items").
		Set("item", item.Item).
		Set("category", item.Category).
		Set("assigned_to", item.AssignedTo).
		Set("checked", item.Checked).
		Set("updated_at", time.Now().UTC()).
		Where("id = ? AND trip_id = ?", item.ID, item.TripID)
	rs, err := d.updateStatement(ctx, q, nil)
	if err != nil {
		return false, err
	}
	affected, err := rs.RowsAffected()
	return affected > 0, err
}

// SetPackingItemChecked flips the packed flag without touching the rest of the row
func (d *DataStore) SetPackingItemChecked(
	ctx context.Context,
	tripID uuid.UUID,
	id uuid.UUID,
	checked bool,
) (bool, error) {
	q := sq.Update("packing_items").
		Set("checked", checked).
		Set("updated_at", time.Now().UTC()).
		Where("id = ? AND trip_id = ?", id, tripID)
	rs, err := d.updateStatement(ctx, q, nil)
	if err != nil {
		return false, err
	}
	affected, err := rs.RowsAffected()
	return affected > 0, err
}

func (d *DataStore) DeletePackingItem(ctx context.Context, tripID uuid.UUID, id uuid.UUID) error {
	return d.deleteTripScoped(ctx, "packing_items", tripID, id)
}

func (d *DataStore) Outfits(ctx context.Context, tripID uuid.UUID) ([]*tables.OutfitTable, error) {
	q := sq.Select("*").From("outfits").
		Where(sq.Eq{"trip_id": tripID}).
		OrderBy("event_id ASC", "created_at ASC")
	var entities []*tables.OutfitTable
	err := d.selectStatement(ctx, &entities, q, nil)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return entities, nil
}

func (d *DataStore) InsertOutfit(ctx context.Context, outfit *tables.OutfitTable) (uuid.UUID, error) {
	id := uuid.New()
	insert := sq.Insert("outfits").
		Columns("id", "trip_id", "event_id", "user_id", "description", "photo_url", "created_at").
		Values(id, outfit.TripID, outfit.EventID, outfit.UserID, outfit.Description, outfit.PhotoURL, time.Now().UTC())
	_, err := d.insertStatement(ctx, insert, nil)
	if err != nil {
		return uuid.UUID{}, err
	}
	return id, nil
}

// UpdateOutfit only touches the owner's row, outfits stay personal to
// the member who planned them
func (d *DataStore) UpdateOutfit(ctx context.Context, outfit *tables.OutfitTable) (bool, error) {
	q := sq.Update("outfits").
		Set("event_id", outfit.EventID).
		Set("description", outfit.Description).
		Set("photo_url", outfit.PhotoURL).
		Set("updated_at", time.Now().UTC()).
		Where("id = ? AND trip_id = ? AND user_id = ?", outfit.ID, outfit.TripID, outfit.UserID)
	rs, err := d.updateStatement(ctx, q, nil)
	if err != nil {
		return false, err
	}
	affected, err := rs.RowsAffected()
	return affected > 0, err
}

func (d *DataStore) DeleteOutfit(ctx context.Context, tripID uuid.UUID, id uuid.UUID, userID uuid.UUID) error {
	q := sq.Delete("outfits").Where(sq.And{
		sq.Eq{"id": id},
		sq.Eq{"trip_id": tripID},
		sq.Eq{"user_id": userID},
	})
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

func (d *DataStore) Messages(ctx context.Context, tripID uuid.UUID, opts ListOptions) ([]*tables.MessageTable, error) {
	if opts.Page <= 0 {
		opts.Page = 1
	}
	q := sq.Select("*").From("messages").
		Where(sq.Eq{"trip_id": tripID}).
		OrderBy("sent_at DESC").
		Offset(uint64((opts.Page - 1) * opts.PageSize)).
		Limit(uint64(opts.PageSize))
	var entities []*tables.MessageTable
	err := d.selectStatement(ctx, &entities, q, nil)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return entities, nil
}

func (d *DataStore) InsertMessage(ctx context.Context, tripID uuid.UUID, userID uuid.UUID, content string) (uuid.UUID, error) {
	id := uuid.New()
	insert := sq.Insert("messages").
		Columns("id", "trip_id", "user_id", "content", "sent_at").
		Values(id, tripID, userID, content, time.Now().UTC())
	_, err := d.insertStatement(ctx, insert, nil)
	if err != nil {
		return uuid.UUID{}, err
	}
	return id, nil
}

func (d *DataStore) Photos(ctx context.Context, tripID uuid.UUID) ([]*tables.PhotoTable, error) {
	q := sq.Select("*").From("photos").
		Where(sq.Eq{"trip_id": tripID}).
		OrderBy("uploaded_at DESC")
	var entities []*tables.PhotoTable
	err := d.selectStatement(ctx, &entities, q, nil)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return entities, nil
}

func (d *DataStore) InsertPhoto(ctx context.Context, photo *tables.PhotoTable) (uuid.UUID, error) {
	id := uuid.New()
	insert := sq.Insert("photos").
		Columns("id", "trip_id", "url", "caption", "uploaded_by", "uploaded_at").
		Values(id, photo.TripID, photo.URL, photo.Caption, photo.UploadedBy, time.Now().UTC())
	_, err := d.insertStatement(ctx, insert, nil)
	if err != nil {
		return uuid.UUID{}, err
	}
	return id, nil
}

func (d *DataStore) DeletePhoto(ctx context.Context, tripID uuid.UUID, id uuid.UUID) error {
	return d.deleteTripScoped(ctx, "photos", tripID, id)
}

func (d *DataStore) deleteTripScoped(ctx context.Context, table string, tripID uuid.UUID, id uuid.UUID) error {
	q := sq.Delete(table).Where(sq.And{
		sq.Eq{"id": id},
		sq.Eq{"trip_id": tripID},
	})
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

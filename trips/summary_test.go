package trips

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/triptogether/triptogether/db/tables"
)

func budgetItem(category string, amount float64, paid bool) *tables.BudgetItemTable {
	return &tables.BudgetItemTable{
		Category: category,
		Amount:   amount,
		Paid:     paid,
	}
}

func TestSummarizeBudgetEmpty(t *testing.T) {
	assert := assert.New(t)
	summary := SummarizeBudget(nil)
	assert.Equal(float64(0), summary.Total)
	assert.Equal(float64(0), summary.Spent)
	assert.Equal(float64(0), summary.Remaining)
	assert.Empty(summary.Categories)
}

func TestSummarizeBudgetTotals(t *testing.T) {
	assert := assert.New(t)
	items := []*tables.BudgetItemTable{
		budgetItem("food", 120.50, true),
		budgetItem("food", 30, false),
		budgetItem("transport", 89.50, true),
	}
	summary := SummarizeBudget(items)
	assert.Equal(240.0, summary.Total)
	assert.Equal(210.0, summary.Spent)
	assert.Equal(30.0, summary.Remaining)
}

func TestSummarizeBudgetCategoriesSortedByName(t *testing.T) {
	assert := assert.New(t)
	items := []*tables.BudgetItemTable{
		budgetItem("transport", 50, false),
		budgetItem("accommodation", 400, true),
		budgetItem("food", 20, false),
		budgetItem("food", 35, false),
	}
	summary := SummarizeBudget(items)
	if assert.Len(summary.Categories, 3) {
		assert.Equal("accommodation", summary.Categories[0].Category)
		assert.Equal("food", summary.Categories[1].Category)
		assert.Equal("transport", summary.Categories[2].Category)
		assert.Equal(2, summary.Categories[1].Count)
		assert.Equal(55.0, summary.Categories[1].Total)
	}
}

func packingItem(category string, checked bool) *tables.PackingItemTable {
	return &tables.PackingItemTable{
		Category: category,
		Checked:  checked,
	}
}

func TestSummarizePackingEmptyListIsZeroPercent(t *testing.T) {
	progress := SummarizePacking(nil)
	assert.Equal(t, 0, progress.Percentage)
	assert.Equal(t, 0, progress.Total)
}

func TestSummarizePackingRoundsToNearestWhole(t *testing.T) {
	assert := assert.New(t)
	// 1 of 3 checked is 33.33.. percent, rounds down to 33
	progress := SummarizePacking([]*tables.PackingItemTable{
		packingItem("clothes", true),
		packingItem("clothes", false),
		packingItem("clothes", false),
	})
	assert.Equal(33, progress.Percentage)

	// 2 of 3 checked is 66.66.. percent, rounds up to 67
	progress = SummarizePacking([]*tables.PackingItemTable{
		packingItem("clothes", true),
		packingItem("clothes", true),
		packingItem("clothes", false),
	})
	assert.Equal(67, progress.Percentage)
}

func TestSummarizePackingPerCategory(t *testing.T) {
	assert := assert.New(t)
	progress := SummarizePacking([]*tables.PackingItemTable{
		packingItem("clothes", true),
		packingItem("clothes", true),
		packingItem("gear", false),
		packingItem("gear", true),
	})
	assert.Equal(4, progress.Total)
	assert.Equal(3, progress.Checked)
	assert.Equal(75, progress.Percentage)
	if assert.Len(progress.Categories, 2) {
		assert.Equal("clothes", progress.Categories[0].Category)
		assert.Equal(100, progress.Categories[0].Percentage)
		assert.Equal("gear", progress.Categories[1].Category)
		assert.Equal(50, progress.Categories[1].Percentage)
	}
}

func itineraryItem(title string, date time.Time) *tables.ItineraryItemTable {
	return &tables.ItineraryItemTable{
		Title: title,
		Date:  date,
	}
}

func TestGroupItineraryByDay(t *testing.T) {
	assert := assert.New(t)
	dayOne := time.Date(2026, 7, 14, 0, 0, 0, 0, time.UTC)
	dayTwo := time.Date(2026, 7, 15, 0, 0, 0, 0, time.UTC)
	items := []*tables.ItineraryItemTable{
		itineraryItem("dinner", dayTwo.Add(19*time.Hour)),
		itineraryItem("museum", dayOne.Add(10*time.Hour)),
		itineraryItem("beach", dayOne.Add(14*time.Hour)),
	}
	days := GroupItineraryByDay(items)
	if assert.Len(days, 2) {
		assert.Equal(dayOne, days[0].Date)
		assert.Len(days[0].Items, 2)
		assert.Equal("museum", days[0].Items[0].Title)
		assert.Equal("beach", days[0].Items[1].Title)
		assert.Equal(dayTwo, days[1].Date)
		assert.Len(days[1].Items, 1)
	}
}

func TestGroupItineraryByDayEmpty(t *testing.T) {
	assert.Empty(t, GroupItineraryByDay(nil))
}

func outfit(eventID uuid.UUID, userID uuid.UUID, description *string) *tables.OutfitTable {
	return &tables.OutfitTable{
		EventID:     eventID,
		UserID:      userID,
		Description: description,
	}
}

func TestSummarizeOutfitsEmpty(t *testing.T) {
	assert := assert.New(t)
	summary := SummarizeOutfits(nil)
	assert.Equal(0, summary.Total)
	assert.Equal(0, summary.Described)
	assert.Empty(summary.Events)
	assert.Empty(summary.Users)
}

func TestSummarizeOutfitsGroups(t *testing.T) {
	assert := assert.New(t)
	dinner := uuid.MustParse("11111111-1111-1111-1111-111111111111")
	temple := uuid.MustParse("22222222-2222-2222-2222-222222222222")
	mika := uuid.MustParse("33333333-3333-3333-3333-333333333333")
	noa := uuid.MustParse("44444444-4444-4444-4444-444444444444")
	look := "floral dress"
	empty := ""
	items := []*tables.OutfitTable{
		outfit(dinner, mika, &look),
		outfit(dinner, noa, nil),
		outfit(temple, mika, &empty),
	}
	summary := SummarizeOutfits(items)
	assert.Equal(3, summary.Total)
	// a blank description does not count as described
	assert.Equal(1, summary.Described)
	if assert.Len(summary.Events, 2) {
		assert.Equal(dinner, summary.Events[0].EventID)
		assert.Equal(2, summary.Events[0].Count)
		assert.Equal(temple, summary.Events[1].EventID)
		assert.Equal(1, summary.Events[1].Count)
	}
	if assert.Len(summary.Users, 2) {
		assert.Equal(mika, summary.Users[0].UserID)
		assert.Equal(2, summary.Users[0].Count)
		assert.Equal(noa, summary.Users[1].UserID)
		assert.Equal(1, summary.Users[1].Count)
	}
}

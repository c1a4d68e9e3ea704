package trips

import (
	"math"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/triptogether/triptogether/db/tables"
)

// BudgetSummary is the rolled up money view of a trip
type BudgetSummary struct {
	Total      float64
	Spent      float64
	Remaining  float64
	Categories []BudgetCategory
}

// BudgetCategory groups budget items of one category with their total
type BudgetCategory struct {
	Category string
	Count    int
	Total    float64
}

// SummarizeBudget folds the budget items into totals. Spent counts the
// items marked paid, categories come back sorted by name and only when
// they actually hold items.
func SummarizeBudget(items []*tables.BudgetItemTable) BudgetSummary {
	summary := BudgetSummary{}
	byCategory := make(map[string]*BudgetCategory)
	for _, item := range items {
		summary.Total += item.Amount
		if item.Paid {
			summary.Spent += item.Amount
		}
		cat, ok := byCategory[item.Category]
		if !ok {
			cat = &BudgetCategory{Category: item.Category}
			byCategory[item.Category] = cat
		}
		cat.Count++
		cat.Total += item.Amount
	}
	summary.Remaining = summary.Total - summary.Spent
	for _, cat := range byCategory {
		summary.Categories = append(summary.Categories, *cat)
	}
	sort.Slice(summary.Categories, func(i, j int) bool {
		return summary.Categories[i].Category < summary.Categories[j].Category
	})
	return summary
}

// PackingProgress is the completion view of a packing list
type PackingProgress struct {
	Total      int
	Checked    int
	Percentage int
	Categories []PackingCategoryProgress
}

// PackingCategoryProgress is the completion of a single category
type PackingCategoryProgress struct {
	Category   string
	Total      int
	Checked    int
	Percentage int
}

func roundedPercentage(checked int, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(checked) / float64(total) * 100))
}

// SummarizePacking computes per category and overall completion, the
// percentage is rounded to the nearest whole number and an empty list
// reads as zero percent.
func SummarizePacking(items []*tables.PackingItemTable) PackingProgress {
	progress := PackingProgress{}
	byCategory := make(map[string]*PackingCategoryProgress)
	for _, item := range items {
		progress.Total++
		cat, ok := byCategory[item.Category]
		if !ok {
			cat = &PackingCategoryProgress{Category: item.Category}
			byCategory[item.Category] = cat
		}
		cat.Total++
		if item.Checked {
			progress.Checked++
			cat.Checked++
		}
	}
	progress.Percentage = roundedPercentage(progress.Checked, progress.Total)
	for _, cat := range byCategory {
		cat.Percentage = roundedPercentage(cat.Checked, cat.Total)
		progress.Categories = append(progress.Categories, *cat)
	}
	sort.Slice(progress.Categories, func(i, j int) bool {
		return progress.Categories[i].Category < progress.Categories[j].Category
	})
	return progress
}

// OutfitSummary is the rolled up view of the planned looks of a trip
type OutfitSummary struct {
	Total     int
	Described int
	Events    []OutfitEventGroup
	Users     []OutfitUserGroup
}

// OutfitEventGroup counts the outfits planned for one itinerary event
type OutfitEventGroup struct {
	EventID uuid.UUID
	Count   int
}

// OutfitUserGroup counts the outfits one member has planned
type OutfitUserGroup struct {
	UserID uuid.UUID
	Count  int
}

// SummarizeOutfits groups the outfits per event and per member.
// Described counts the entries that carry a description, groups come
// back sorted by id so the output is stable.
func SummarizeOutfits(items []*tables.OutfitTable) OutfitSummary {
	summary := OutfitSummary{}
	byEvent := make(map[uuid.UUID]*OutfitEventGroup)
	byUser := make(map[uuid.UUID]*OutfitUserGroup)
	for _, item := range items {
		summary.Total++
		if item.Description != nil && *item.Description != "" {
			summary.Described++
		}
		ev, ok := byEvent[item.EventID]
		if !ok {
			ev = &OutfitEventGroup{EventID: item.EventID}
			byEvent[item.EventID] = ev
		}
		ev.Count++
		us, ok := byUser[item.UserID]
		if !ok {
			us = &OutfitUserGroup{UserID: item.UserID}
			byUser[item.UserID] = us
		}
		us.Count++
	}
	for _, ev := range byEvent {
		summary.Events = append(summary.Events, *ev)
	}
	sort.Slice(summary.Events, func(i, j int) bool {
		return summary.Events[i].EventID.String() < summary.Events[j].EventID.String()
	})
	for _, us := range byUser {
		summary.Users = append(summary.Users, *us)
	}
	sort.Slice(summary.Users, func(i, j int) bool {
		return summary.Users[i].UserID.String() < summary.Users[j].UserID.String()
	})
	return summary
}

// ItineraryDay is one day of the trip schedule
type ItineraryDay struct {
	Date  time.Time
	Items []*tables.ItineraryItemTable
}

// GroupItineraryByDay buckets itinerary items per calendar day, days
// sorted ascending, items within a day keep their stored order.
func GroupItineraryByDay(items []*tables.ItineraryItemTable) []ItineraryDay {
	byDay := make(map[time.Time][]*tables.ItineraryItemTable)
	for _, item := range items {
		day := time.Date(
			item.Date.Year(), item.Date.Month(), item.Date.Day(),
			0, 0, 0, 0, time.UTC,
		)
		byDay[day] = append(byDay[day], item)
	}
	days := make([]ItineraryDay, 0, len(byDay))
	for day, dayItems := range byDay {
		days = append(days, ItineraryDay{Date: day, Items: dayItems})
	}
	sort.Slice(days, func(i, j int) bool {
		return days[i].Date.Before(days[j].Date)
	})
	return days
}

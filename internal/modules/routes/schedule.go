package routes

import (
	"sort"
	"time"

	"field-sales/internal/models"
)

// WeekStart returns the Monday of the week containing t, at midnight in t's
// location. Weeks start on Monday everywhere in this package.
func WeekStart(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7 // Monday=0 ... Sunday=6
	d := t.AddDate(0, 0, -offset)
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, t.Location())
}

// WeekOfMonth maps t to its 1-based week number within the month. The anchor
// is the month's first Monday; days before it belong to week 1 rather than a
// week 0.
func WeekOfMonth(t time.Time) int {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	firstMonday := first.AddDate(0, 0, (8-int(first.Weekday()))%7)

	days := int(dateUTC(WeekStart(t)).Sub(dateUTC(firstMonday)).Hours() / 24)
	week := days/7 + 1
	if week < 1 {
		week = 1
	}
	return week
}

// dateUTC strips clock and zone so day arithmetic is immune to DST shifts.
func dateUTC(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// IsDue reports whether a customer on the given cycle is due for a visit in
// the given week of the month. Unknown cycle codes deliberately fall back to
// "visit every week" rather than silently dropping the customer from all
// routes.
func IsDue(cycle string, week int) bool {
	switch cycle {
	case models.CycleOddWeeks:
		return week == 1 || week == 3
	case models.CycleEvenWeeks:
		return week == 2 || week == 4
	default:
		return true
	}
}

// EligibleCustomers filters pool down to active customers due for a visit in
// the week containing targetDate, sorted by name so generated routes come out
// in a stable order. The sort is not a visit sequence.
func EligibleCustomers(pool []models.Customer, targetDate time.Time) []models.Customer {
	week := WeekOfMonth(targetDate)

	eligible := make([]models.Customer, 0, len(pool))
	for _, c := range pool {
		if c.Status != models.CustomerActive {
			continue
		}
		if !IsDue(c.Cycle, week) {
			continue
		}
		eligible = append(eligible, c)
	}

	sort.Slice(eligible, func(i, j int) bool {
		return eligible[i].Name < eligible[j].Name
	})
	return eligible
}

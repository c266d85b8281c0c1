package routes_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"field-sales/internal/models"
	"field-sales/internal/modules/routes"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ---- WeekStart -------------------------------------------------------------

func TestWeekStart(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{"monday maps to itself", date(2025, time.September, 15), date(2025, time.September, 15)},
		{"wednesday maps back to monday", date(2025, time.September, 17), date(2025, time.September, 15)},
		{"sunday maps back to monday", date(2025, time.September, 21), date(2025, time.September, 15)},
		{"crosses month boundary", date(2025, time.October, 1), date(2025, time.September, 29)},
		{"crosses year boundary", date(2026, time.January, 2), date(2025, time.December, 29)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, routes.WeekStart(tt.in))
		})
	}
}

func TestWeekStart_DropsClock(t *testing.T) {
	in := time.Date(2025, time.September, 17, 18, 45, 12, 0, time.UTC)
	got := routes.WeekStart(in)
	assert.Equal(t, date(2025, time.September, 15), got)
}

// ---- WeekOfMonth -----------------------------------------------------------

func TestWeekOfMonth_MonthStartingOnMonday(t *testing.T) {
	// September 2025 starts on a Monday, so the weeks line up exactly.
	assert.Equal(t, 1, routes.WeekOfMonth(date(2025, time.September, 1)))
	assert.Equal(t, 1, routes.WeekOfMonth(date(2025, time.September, 7)))
	assert.Equal(t, 2, routes.WeekOfMonth(date(2025, time.September, 8)))
	assert.Equal(t, 3, routes.WeekOfMonth(date(2025, time.September, 17)))
	assert.Equal(t, 4, routes.WeekOfMonth(date(2025, time.September, 28)))
	assert.Equal(t, 5, routes.WeekOfMonth(date(2025, time.September, 29)))
}

func TestWeekOfMonth_PartialFirstWeekClampsToOne(t *testing.T) {
	// October 2025 starts on a Wednesday; the 1st through the 5th fall before
	// the month's first Monday and must still count as week 1.
	for day := 1; day <= 5; day++ {
		assert.Equal(t, 1, routes.WeekOfMonth(date(2025, time.October, day)), "day %d", day)
	}
	// The first Monday (the 6th) opens week 1 proper.
	assert.Equal(t, 1, routes.WeekOfMonth(date(2025, time.October, 6)))
	assert.Equal(t, 2, routes.WeekOfMonth(date(2025, time.October, 13)))
	assert.Equal(t, 4, routes.WeekOfMonth(date(2025, time.October, 31)))
}

func TestWeekOfMonth_AlwaysAtLeastOne(t *testing.T) {
	d := date(2024, time.January, 1)
	for i := 0; i < 730; i++ {
		assert.GreaterOrEqual(t, routes.WeekOfMonth(d), 1, "%s", d)
		d = d.AddDate(0, 0, 1)
	}
}

func TestWeekOfMonth_ConstantAcrossOneWeek(t *testing.T) {
	// Every day of a Monday-to-Sunday week resolves to the same week number.
	monday := date(2025, time.September, 15)
	want := routes.WeekOfMonth(monday)
	for i := 1; i < 7; i++ {
		assert.Equal(t, want, routes.WeekOfMonth(monday.AddDate(0, 0, i)))
	}
}

// ---- IsDue -----------------------------------------------------------------

func TestIsDue(t *testing.T) {
	tests := []struct {
		cycle string
		week  int
		want  bool
	}{
		{models.CycleEveryWeek, 1, true},
		{models.CycleEveryWeek, 2, true},
		{models.CycleEveryWeek, 3, true},
		{models.CycleEveryWeek, 4, true},
		{models.CycleEveryWeek, 5, true},

		{models.CycleOddWeeks, 1, true},
		{models.CycleOddWeeks, 2, false},
		{models.CycleOddWeeks, 3, true},
		{models.CycleOddWeeks, 4, false},
		{models.CycleOddWeeks, 5, false}, // week 5 is odd but outside the 4-week pattern

		{models.CycleEvenWeeks, 1, false},
		{models.CycleEvenWeeks, 2, true},
		{models.CycleEvenWeeks, 3, false},
		{models.CycleEvenWeeks, 4, true},
		{models.CycleEvenWeeks, 5, false},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s week %d", tt.cycle, tt.week), func(t *testing.T) {
			assert.Equal(t, tt.want, routes.IsDue(tt.cycle, tt.week))
		})
	}
}

func TestIsDue_UnknownCycleFailsOpen(t *testing.T) {
	// Unrecognized codes mean "visit every week" on purpose; a typo in the
	// customer record must not drop the customer from every route.
	for week := 1; week <= 5; week++ {
		assert.True(t, routes.IsDue("UNKNOWN_CODE", week))
		assert.True(t, routes.IsDue("", week))
	}
}

// ---- EligibleCustomers -----------------------------------------------------

func TestEligibleCustomers_FiltersAndSorts(t *testing.T) {
	// 2025-09-17 is a Wednesday in week 3.
	targetDate := date(2025, time.September, 17)
	pool := []models.Customer{
		{ID: "c", Name: "Corner Market", Status: models.CustomerActive, Cycle: models.CycleEvenWeeks},
		{ID: "b", Name: "Bakery Central", Status: models.CustomerActive, Cycle: models.CycleOddWeeks},
		{ID: "a", Name: "Alpha Grocers", Status: models.CustomerActive, Cycle: models.CycleEveryWeek},
		{ID: "d", Name: "Dockside Kiosk", Status: models.CustomerInactive, Cycle: models.CycleEveryWeek},
	}

	got := routes.EligibleCustomers(pool, targetDate)

	// Even-week customer is out in week 3, inactive customer is always out.
	assert.Len(t, got, 2)
	assert.Equal(t, "Alpha Grocers", got[0].Name)
	assert.Equal(t, "Bakery Central", got[1].Name)
}

func TestEligibleCustomers_EmptyPool(t *testing.T) {
	got := routes.EligibleCustomers(nil, date(2025, time.September, 17))
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestEligibleCustomers_WeekTwo(t *testing.T) {
	targetDate := date(2025, time.September, 10) // Wednesday, week 2
	pool := []models.Customer{
		{ID: "1", Name: "A", Status: models.CustomerActive, Cycle: models.CycleOddWeeks},
		{ID: "2", Name: "B", Status: models.CustomerActive, Cycle: models.CycleEvenWeeks},
	}

	got := routes.EligibleCustomers(pool, targetDate)

	assert.Len(t, got, 1)
	assert.Equal(t, models.CycleEvenWeeks, got[0].Cycle)
}

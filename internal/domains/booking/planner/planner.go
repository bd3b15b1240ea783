// Package planner turns a date range and a set of assignments into a priced booking
// schedule. Everything here is pure: no storage, no clock, no logging.
package planner

import (
	"errors"
	"fmt"
	"slices"
	"time"

	facilityModel "oec/internal/domains/facility/model"
	pricingModel "oec/internal/domains/pricing/model"
	"oec/shared/constant"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidRange  = errors.New("end date is before start date")
	ErrRangeTooLong  = fmt.Errorf("a booking cannot span more than %d days", constant.MaxBookingDay)
	ErrEmptyDay      = errors.New("every day needs at least one assigned item")
	ErrEmptySchedule = errors.New("at least one item must be assigned")
)

// Mode selects how strictly a schedule is validated.
type Mode int

const (
	// ModeEveryDay requires an assignment on every day of the range.
	ModeEveryDay Mode = iota
	// ModeAnyDay requires a single assignment anywhere in the range.
	ModeAnyDay
)

// Row is one calendar day of a schedule with the items assigned to it.
type Row struct {
	Day     time.Time
	ItemIDs []string
}

// Reservation is the part of an existing booking that blocks availability.
type Reservation struct {
	Start   time.Time
	End     time.Time
	ItemIDs []string
}

// Services are the per person add-ons and the LED projector flag of a booking.
type Services struct {
	Lunch        string
	Refreshment  string
	LEDProjector bool
}

// Line is the resolved cost of one item on one day.
type Line struct {
	Day  time.Time
	Item facilityModel.Facility
	Cost decimal.Decimal
}

// Day truncates t to midnight UTC of its calendar date.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()

	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// BuildSchedule returns one row per calendar day from start to end inclusive.
// Assignments from previous are carried over for days still in range.
func BuildSchedule(start, end time.Time, previous []Row) ([]Row, error) {
	start, end = Day(start), Day(end)

	if end.Before(start) {
		return nil, ErrInvalidRange
	}

	days := int(end.Sub(start).Hours()/24) + 1
	if days > constant.MaxBookingDay {
		return nil, ErrRangeTooLong
	}

	kept := make(map[time.Time][]string, len(previous))
	for _, row := range previous {
		kept[Day(row.Day)] = row.ItemIDs
	}

	rows := make([]Row, 0, days)
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		rows = append(rows, Row{Day: day, ItemIDs: slices.Clone(kept[day])})
	}

	return rows, nil
}

// ValidateSchedule checks a schedule has enough assignments for mode.
func ValidateSchedule(rows []Row, mode Mode) error {
	assigned := 0

	for _, row := range rows {
		if len(row.ItemIDs) == 0 && mode == ModeEveryDay {
			return fmt.Errorf("%w: %s", ErrEmptyDay, row.Day.Format(constant.DayFormat))
		}

		assigned += len(row.ItemIDs)
	}

	if assigned == 0 {
		return ErrEmptySchedule
	}

	return nil
}

// AvailableItems returns the candidates not held by any reservation covering day,
// both ends inclusive. Reservations with missing or inverted dates are ignored.
func AvailableItems(day time.Time, candidates []facilityModel.Facility, reservations []Reservation) []facilityModel.Facility {
	day = Day(day)
	taken := map[string]bool{}

	for _, r := range reservations {
		if r.Start.IsZero() || r.End.IsZero() || r.End.Before(r.Start) {
			continue
		}

		if day.Before(Day(r.Start)) || day.After(Day(r.End)) {
			continue
		}

		for _, id := range r.ItemIDs {
			taken[id] = true
		}
	}

	available := make([]facilityModel.Facility, 0, len(candidates))
	for _, item := range candidates {
		if !taken[item.ID] {
			available = append(available, item)
		}
	}

	return available
}

// Lines resolves the daily cost of every assignment. Ids missing from items are skipped.
func Lines(rows []Row, items map[string]facilityModel.Facility, settings pricingModel.Settings) []Line {
	lines := []Line{}

	for _, row := range rows {
		for _, id := range row.ItemIDs {
			item, ok := items[id]
			if !ok {
				continue
			}

			lines = append(lines, Line{Day: row.Day, Item: item, Cost: settings.DailyCost(item)})
		}
	}

	return lines
}

// TotalCost sums the item costs of every row, then adds lunch and refreshment for
// each attendee on each day and the LED projector for each day when requested.
func TotalCost(rows []Row, items map[string]facilityModel.Facility, settings pricingModel.Settings, attendees int, services Services) decimal.Decimal {
	total := decimal.Zero

	for _, line := range Lines(rows, items, settings) {
		total = total.Add(line.Cost)
	}

	days := decimal.NewFromInt(int64(len(rows)))
	perPerson := settings.LunchCost(services.Lunch).Add(settings.RefreshmentCost(services.Refreshment))
	total = total.Add(perPerson.Mul(decimal.NewFromInt(int64(max(attendees, 0)))).Mul(days))

	if services.LEDProjector {
		total = total.Add(settings.LEDProjector.Mul(days))
	}

	return total
}

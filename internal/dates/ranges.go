package dates

import (
	"strings"
	"time"

	"github.com/Veraticus/tally/internal/validation"
)

// Range is an inclusive window of calendar days.
type Range struct {
	Start time.Time
	End   time.Time
}

// NewRange orders the two dates so that Start <= End.
func NewRange(a, b time.Time) Range {
	a, b = Day(a), Day(b)
	if a.After(b) {
		a, b = b, a
	}
	return Range{Start: a, End: b}
}

// Contains reports whether d falls inside the window.
func (r Range) Contains(d time.Time) bool {
	d = Day(d)
	return !d.Before(r.Start) && !d.After(r.End)
}

// Days returns the number of calendar days in the window.
func (r Range) Days() int {
	return int(r.End.Sub(r.Start).Hours()/24) + 1
}

func (r Range) String() string {
	if r.Start.Equal(r.End) {
		return ISO(r.Start)
	}
	return ISO(r.Start) + " to " + ISO(r.End)
}

// Separators split an explicit range. They are tried in order and the input is split once.
var Separators = []string{" to ", " - ", " -- ", "..", " through "}

// WeekRange returns the Monday to Sunday week containing d.
func WeekRange(d time.Time) Range {
	d = Day(d)
	offset := (int(d.Weekday()) + 6) % 7
	start := d.AddDate(0, 0, -offset)
	return Range{Start: start, End: start.AddDate(0, 0, 6)}
}

// MonthRange returns the calendar month containing d.
func MonthRange(d time.Time) Range {
	start := time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.UTC)
	return Range{Start: start, End: start.AddDate(0, 1, -1)}
}

// YearRange returns January 1 through December 31 of d's year.
func YearRange(d time.Time) Range {
	return Range{
		Start: time.Date(d.Year(), time.January, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(d.Year(), time.December, 31, 0, 0, 0, 0, time.UTC),
	}
}

// ResolveRange parses a named period or an explicit "<date> <sep> <date>" range.
// A bare single date is not a range; use ResolveWindow for that.
func (r *Resolver) ResolveRange(expr string) (Range, error) {
	input := strings.ToLower(strings.TrimSpace(expr))
	if input == "" {
		return Range{}, invalidRange()
	}

	today := r.Today()
	switch input {
	case "this week":
		return WeekRange(today), nil
	case "this month":
		return MonthRange(today), nil
	case "this year":
		return YearRange(today), nil
	case "last week":
		return WeekRange(today.AddDate(0, 0, -7)), nil
	case "last month":
		mid := time.Date(today.Year(), today.Month(), 15, 0, 0, 0, 0, time.UTC).AddDate(0, -1, 0)
		return MonthRange(mid), nil
	case "last year":
		return YearRange(time.Date(today.Year()-1, time.June, 15, 0, 0, 0, 0, time.UTC)), nil
	}

	for _, sep := range Separators {
		left, right, found := strings.Cut(input, sep)
		if !found {
			continue
		}
		start, err := r.Resolve(left)
		if err != nil {
			continue
		}
		end, err := r.Resolve(right)
		if err != nil {
			continue
		}
		return NewRange(start, end), nil
	}

	return Range{}, invalidRange()
}

// ResolveWindow resolves expr as a range, falling back to the single day it names.
func (r *Resolver) ResolveWindow(expr string) (Range, error) {
	if rng, err := r.ResolveRange(expr); err == nil {
		return rng, nil
	}

	d, err := r.Resolve(expr)
	if err != nil {
		return Range{}, err
	}
	return Range{Start: d, End: d}, nil
}

func invalidRange() error {
	return validation.New(validation.InvalidDate, "date", InvalidRangeMessage)
}

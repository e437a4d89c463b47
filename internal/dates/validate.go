package dates

import (
	"strings"
	"time"

	"github.com/Veraticus/tally/internal/validation"
)

const (
	maxPastDays   = 365 * 10
	maxFutureDays = 365
)

// Validate rejects dates more than ten years back, and future dates unless
// allowFuture is set, in which case they may be at most one year ahead.
func (r *Resolver) Validate(d time.Time, allowFuture bool) error {
	d = Day(d)
	today := r.Today()

	oldest := today.AddDate(0, 0, -maxPastDays)
	if d.Before(oldest) {
		return validation.New(validation.DateTooOld, "date",
			"Date cannot be more than 10 years ago ("+ISO(oldest)+")")
	}

	if !allowFuture && d.After(today) {
		return validation.New(validation.DateInFuture, "date", "Date cannot be in the future")
	}

	if allowFuture && d.After(today.AddDate(0, 0, maxFutureDays)) {
		return validation.New(validation.DateTooFarAhead, "date", "Date cannot be more than 1 year in the future")
	}

	return nil
}

// ParseDate resolves and validates a required date input.
func (r *Resolver) ParseDate(input string, allowFuture bool) (time.Time, error) {
	if strings.TrimSpace(input) == "" {
		return time.Time{}, validation.New(validation.DateRequired, "date", "Date is required")
	}

	d, err := r.Resolve(input)
	if err != nil {
		return time.Time{}, err
	}
	if err := r.Validate(d, allowFuture); err != nil {
		return time.Time{}, err
	}
	return d, nil
}

// ParseRange resolves and validates an explicit start and end pair. Future dates are allowed.
func (r *Resolver) ParseRange(start, end string) (Range, error) {
	s, err := r.ParseDate(start, true)
	if err != nil {
		return Range{}, validation.Wrap(err, "Start date error: ")
	}

	e, err := r.ParseDate(end, true)
	if err != nil {
		return Range{}, validation.Wrap(err, "End date error: ")
	}

	if s.After(e) {
		return Range{}, validation.New(validation.DateRangeInvalid, "date",
			"Start date must be before or equal to end date")
	}
	return Range{Start: s, End: e}, nil
}

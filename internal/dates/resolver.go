// Package dates resolves absolute, relative and named date expressions into calendar dates.
//
// All dates produced by this package are calendar days represented as midnight UTC.
package dates

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/Veraticus/tally/internal/validation"
)

// Format is a literal date layout accepted by the resolver.
type Format struct {
	Name   string
	Layout string
}

// Formats are tried in order and the first successful parse wins.
// Day-first layouts come before month-first ones, so "01/02/2024" is 1 February 2024.
var Formats = []Format{
	{Name: "YYYY-MM-DD", Layout: "2006-1-2"},
	{Name: "DD/MM/YYYY", Layout: "2/1/2006"},
	{Name: "MM/DD/YYYY", Layout: "1/2/2006"},
	{Name: "DD-MM-YYYY", Layout: "2-1-2006"},
	{Name: "MM-DD-YYYY", Layout: "1-2-2006"},
	{Name: "DD.MM.YYYY", Layout: "2.1.2006"},
	{Name: "YYYY/MM/DD", Layout: "2006/1/2"},
}

// InvalidDateMessage is reported when an expression cannot be resolved.
const InvalidDateMessage = "Invalid date format. Try formats like 'YYYY-MM-DD', 'today', 'yesterday', or '3 days ago'"

// InvalidRangeMessage is reported when a range expression cannot be resolved.
const InvalidRangeMessage = "Invalid date range. Try 'this week', 'last month', or 'YYYY-MM-DD to YYYY-MM-DD'"

var daysAgoPattern = regexp.MustCompile(`^(\d+)\s*days?\s*ago$`)

// Option configures a Resolver.
type Option func(*Resolver)

// WithClock sets the function used to read the current time.
func WithClock(now func() time.Time) Option {
	return func(r *Resolver) {
		r.now = now
	}
}

// Resolver turns user date expressions into calendar dates relative to its clock.
type Resolver struct {
	now func() time.Time
}

// NewResolver creates a resolver using the wall clock unless overridden.
func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{now: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Today returns the current calendar day.
func (r *Resolver) Today() time.Time {
	return Day(r.now())
}

// Resolve parses a single date expression.
func (r *Resolver) Resolve(expr string) (time.Time, error) {
	input := strings.ToLower(strings.TrimSpace(expr))
	if input == "" {
		return time.Time{}, invalidDate()
	}

	today := r.Today()
	switch input {
	case "today", "now":
		return today, nil
	case "yesterday":
		return today.AddDate(0, 0, -1), nil
	case "tomorrow":
		return today.AddDate(0, 0, 1), nil
	case "last week":
		return today.AddDate(0, 0, -7), nil
	case "last month":
		return sameDayLastMonth(today), nil
	}

	if m := daysAgoPattern.FindStringSubmatch(input); m != nil {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return time.Time{}, invalidDate()
		}
		return today.AddDate(0, 0, -n), nil
	}

	if d, ok := parseLiteral(input); ok {
		return d, nil
	}

	return time.Time{}, invalidDate()
}

func parseLiteral(input string) (time.Time, bool) {
	for _, f := range Formats {
		if d, err := time.Parse(f.Layout, input); err == nil {
			return d, true
		}
	}
	return time.Time{}, false
}

// sameDayLastMonth keeps the day of month, falling back to the 28th when the
// previous month is too short.
func sameDayLastMonth(today time.Time) time.Time {
	year, month := today.Year(), today.Month()-1
	if month == 0 {
		year, month = year-1, time.December
	}

	day := today.Day()
	if day > daysIn(year, month) {
		day = 28
	}
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func invalidDate() error {
	return validation.New(validation.InvalidDate, "date", InvalidDateMessage)
}

// Day truncates t to its calendar day in t's location and returns it as midnight UTC.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

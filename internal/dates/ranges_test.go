package dates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveRangeNamedPeriods(t *testing.T) {
	// Wednesday 13 March 2024
	r := fixedResolver(time.Date(2024, time.March, 13, 9, 0, 0, 0, time.UTC))

	tests := []struct {
		input string
		want  Range
	}{
		{input: "this week", want: Range{Start: date(2024, 3, 11), End: date(2024, 3, 17)}},
		{input: "this month", want: Range{Start: date(2024, 3, 1), End: date(2024, 3, 31)}},
		{input: "this year", want: Range{Start: date(2024, 1, 1), End: date(2024, 12, 31)}},
		{input: "last week", want: Range{Start: date(2024, 3, 4), End: date(2024, 3, 10)}},
		{input: "last month", want: Range{Start: date(2024, 2, 1), End: date(2024, 2, 29)}},
		{input: "Last Year", want: Range{Start: date(2023, 1, 1), End: date(2023, 12, 31)}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := r.ResolveRange(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveRangeThisMonthCoversWholeMonth(t *testing.T) {
	r := fixedResolver(time.Date(2023, time.February, 20, 0, 0, 0, 0, time.UTC))

	got, err := r.ResolveRange("this month")
	require.NoError(t, err)
	assert.Equal(t, 1, got.Start.Day())
	assert.Equal(t, date(2023, 2, 28), got.End)
	assert.Equal(t, 28, got.Days())
}

func TestResolveRangeLastMonthInJanuary(t *testing.T) {
	r := fixedResolver(time.Date(2024, time.January, 31, 0, 0, 0, 0, time.UTC))

	got, err := r.ResolveRange("last month")
	require.NoError(t, err)
	assert.Equal(t, Range{Start: date(2023, 12, 1), End: date(2023, 12, 31)}, got)
}

func TestResolveRangeExplicit(t *testing.T) {
	r := fixedResolver(time.Date(2024, time.March, 13, 0, 0, 0, 0, time.UTC))

	tests := []struct {
		name  string
		input string
		want  Range
	}{
		{name: "to", input: "2023-01-01 to 2023-01-31", want: Range{Start: date(2023, 1, 1), End: date(2023, 1, 31)}},
		{name: "spaced dash", input: "01/01/2023 - 31/01/2023", want: Range{Start: date(2023, 1, 1), End: date(2023, 1, 31)}},
		{name: "double dash", input: "2023-01-01 -- 2023-01-31", want: Range{Start: date(2023, 1, 1), End: date(2023, 1, 31)}},
		{name: "dots", input: "2023-01-01..2023-01-31", want: Range{Start: date(2023, 1, 1), End: date(2023, 1, 31)}},
		{name: "through", input: "2023-01-01 through 2023-01-31", want: Range{Start: date(2023, 1, 1), End: date(2023, 1, 31)}},
		{name: "reordered", input: "2023-01-31 to 2023-01-01", want: Range{Start: date(2023, 1, 1), End: date(2023, 1, 31)}},
		{name: "relative sides", input: "3 days ago to today", want: Range{Start: date(2024, 3, 10), End: date(2024, 3, 13)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.ResolveRange(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	got, err := r.ResolveRange("2023-01-01 to 2023-01-31")
	require.NoError(t, err)
	assert.Equal(t, 31, got.Days())
}

func TestResolveRangeInvalid(t *testing.T) {
	r := fixedResolver(time.Date(2024, time.March, 13, 0, 0, 0, 0, time.UTC))

	for _, input := range []string{"", "2023-01-01", "next week", "soon to later"} {
		t.Run(input, func(t *testing.T) {
			_, err := r.ResolveRange(input)
			assert.EqualError(t, err, InvalidRangeMessage)
		})
	}
}

func TestResolveWindowFallsBackToSingleDay(t *testing.T) {
	r := fixedResolver(time.Date(2024, time.March, 13, 0, 0, 0, 0, time.UTC))

	got, err := r.ResolveWindow("yesterday")
	require.NoError(t, err)
	assert.Equal(t, Range{Start: date(2024, 3, 12), End: date(2024, 3, 12)}, got)
	assert.Equal(t, "2024-03-12", got.String())

	got, err = r.ResolveWindow("this week")
	require.NoError(t, err)
	assert.Equal(t, 7, got.Days())

	_, err = r.ResolveWindow("whenever")
	assert.EqualError(t, err, InvalidDateMessage)
}

func TestWeekRangeStartsMonday(t *testing.T) {
	sunday := date(2024, time.March, 17)
	got := WeekRange(sunday)
	assert.Equal(t, time.Monday, got.Start.Weekday())
	assert.Equal(t, date(2024, 3, 11), got.Start)
	assert.Equal(t, sunday, got.End)

	monday := date(2024, time.March, 18)
	assert.Equal(t, monday, WeekRange(monday).Start)
}

func TestRangeContains(t *testing.T) {
	rng := NewRange(date(2024, 1, 10), date(2024, 1, 1))
	assert.Equal(t, date(2024, 1, 1), rng.Start)
	assert.True(t, rng.Contains(date(2024, 1, 1)))
	assert.True(t, rng.Contains(time.Date(2024, 1, 10, 18, 0, 0, 0, time.UTC)))
	assert.False(t, rng.Contains(date(2024, 1, 11)))
}

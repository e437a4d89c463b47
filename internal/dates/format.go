package dates

import "time"

// Display layouts.
const (
	ISOLayout   = "2006-01-02"
	LongLayout  = "Monday, January 02, 2006"
	ShortLayout = "01/02/06"
	MonthLayout = "January 2006"
)

// ISO formats d as YYYY-MM-DD.
func ISO(d time.Time) string { return d.Format(ISOLayout) }

// Long formats d as "Monday, January 02, 2006".
func Long(d time.Time) string { return d.Format(LongLayout) }

// Short formats d as MM/DD/YY.
func Short(d time.Time) string { return d.Format(ShortLayout) }

// MonthLabel formats d as "January 2006".
func MonthLabel(d time.Time) string { return d.Format(MonthLayout) }

// ParseISO parses a stored YYYY-MM-DD date.
func ParseISO(s string) (time.Time, error) {
	return time.Parse(ISOLayout, s)
}

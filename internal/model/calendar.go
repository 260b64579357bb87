package model

import "time"

// Weekdays and Months are the fixed English names used for the derived day
// and month fields, in display order.
var (
	Weekdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}
	Months   = []string{
		"January", "February", "March", "April", "May", "June",
		"July", "August", "September", "October", "November", "December",
	}
)

// DayName returns the weekday name of t in UTC.
func DayName(t time.Time) string {
	return t.UTC().Weekday().String()
}

// MonthName returns the month name of t in UTC.
func MonthName(t time.Time) string {
	return t.UTC().Month().String()
}

package models

import "time"

// DateLayout is the wire and storage format for calendar-date fields
// (week_start, dob, assignment windows). Dates are kept as plain strings
// so the calendar day can never shift with time zone conversion, and
// lexicographic order matches chronological order for sorting and
// uniqueness indexes.
const DateLayout = "2006-01-02"

func ValidDate(s string) bool {
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

package model

import (
	"time"
)

// Attendance is the admin-recorded presence marker on a booking. It is
// independent of confirmation and may be overwritten any number of times.
type Attendance string

const (
	AttendanceUnset   Attendance = "unset"
	AttendancePresent Attendance = "present"
	AttendanceAbsent  Attendance = "absent"
)

// Valid reports whether the value is one of the closed set.
func (a Attendance) Valid() bool {
	switch a {
	case AttendanceUnset, AttendancePresent, AttendanceAbsent:
		return true
	}
	return false
}

// Booking is one desk seat reserved on one calendar date by one intern.
// Date is stored at UTC midnight; the Bookings collection carries a unique
// index on (date, seat_number), which is what makes creation atomic under
// concurrent requests for the same pair.
type Booking struct {
	ID             string     `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	InternID       string     `json:"intern_id" bson:"intern_id" validate:"required,mongodb"`
	Date           time.Time  `json:"date" bson:"date" validate:"required"`
	SeatNumber     int        `json:"seat_number" bson:"seat_number" validate:"required,min=1"`
	SpecialRequest string     `json:"special_request,omitempty" bson:"special_request,omitempty" validate:"omitempty,max=500"`
	IsConfirmed    bool       `json:"is_confirmed" bson:"is_confirmed"`
	Attendance     Attendance `json:"attendance" bson:"attendance" validate:"omitempty,oneof=unset present absent"`
	CreatedAt      time.Time  `json:"created_at" bson:"created_at" validate:"omitempty"`
}

// Day truncates a timestamp to UTC midnight. All date comparisons in the
// system happen at day granularity.
func Day(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// IsWeekend reports whether the date falls on Saturday or Sunday, on which
// bookings are disallowed by office policy.
func IsWeekend(t time.Time) bool {
	wd := t.UTC().Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

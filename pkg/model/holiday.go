package model

import "time"

// Holiday is a blackout date on which no seat may be booked. The Holidays
// collection carries a unique index on date.
type Holiday struct {
	ID        string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Date      time.Time `json:"date" bson:"date" validate:"required"`
	Reason    string    `json:"reason" bson:"reason" validate:"required,min=2,max=200"`
	CreatedAt time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
}

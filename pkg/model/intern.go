package model

import "time"

// Intern is the identity anchor for booking ownership. Email is unique.
// PasswordHash is a bcrypt hash and never serialized to JSON.
type Intern struct {
	ID           string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	InternID     string    `json:"intern_id" bson:"intern_id" validate:"required,min=1,max=50"`
	FirstName    string    `json:"first_name" bson:"first_name" validate:"required,min=1,max=100"`
	LastName     string    `json:"last_name" bson:"last_name" validate:"required,min=1,max=100"`
	Email        string    `json:"email" bson:"email" validate:"required,email"`
	PasswordHash string    `json:"-" bson:"password_hash"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
}

// FullName is used when rendering notification messages.
func (i *Intern) FullName() string {
	return i.FirstName + " " + i.LastName
}

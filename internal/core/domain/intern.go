package domain

import (
	"errors"
	"time"
)

var ErrInternNotFound = errors.New("intern not found")
var ErrInternExists = errors.New("intern username already taken")

// Intern is a directory record for one intern. Username is the key the clock
// ledger and the login gate match on.
type Intern struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	FullName    string    `json:"full_name" bson:"full_name"`
	Username    string    `json:"username" bson:"username"`
	University  string    `json:"university,omitempty" bson:"university,omitempty"`
	Email       string    `json:"email,omitempty" bson:"email,omitempty"`
	Phone       string    `json:"phone,omitempty" bson:"phone,omitempty"`
	Mentor      string    `json:"mentor,omitempty" bson:"mentor,omitempty"`
	MentorEmail string    `json:"mentor_email,omitempty" bson:"mentor_email,omitempty"`
	Campus      string    `json:"campus,omitempty" bson:"campus,omitempty"`
	LinkedIn    string    `json:"linkedin,omitempty" bson:"linkedin,omitempty"`
	Notes       string    `json:"notes,omitempty" bson:"notes,omitempty"`
	StartDate   time.Time `json:"start_date" bson:"start_date"`
	EndDate     time.Time `json:"end_date" bson:"end_date"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}

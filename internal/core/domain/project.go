package domain

import (
	"errors"
	"math"
	"time"
)

// ProjectStatus is the lifecycle state of an intern project.
type ProjectStatus string

const (
	StatusInProgress ProjectStatus = "in_progress"
	StatusProduction ProjectStatus = "production"
)

var ErrProjectNotFound = errors.New("project not found")
var ErrActivityNotFound = errors.New("activity not found")
var ErrInvalidHours = errors.New("hours must be a finite number greater than zero")
var ErrEmptyNote = errors.New("activity note must not be empty")
var ErrInvalidDateRange = errors.New("end date must not precede start date")

// ValidStatus reports whether s is a known project status.
func ValidStatus(s ProjectStatus) bool {
	return s == StatusInProgress || s == StatusProduction
}

// DailyActivity is one logged work note, owned by exactly one project.
type DailyActivity struct {
	ID    string    `json:"id" bson:"id"`
	Date  time.Time `json:"date" bson:"date"`
	Hours float64   `json:"hours" bson:"hours"`
	Note  string    `json:"note" bson:"note"`
}

// Validate applies the activity acceptance rules: hours finite and positive,
// note non-empty after trimming. Trimming of the note is the caller's job;
// Validate only checks.
func (a *DailyActivity) Validate() error {
	if math.IsNaN(a.Hours) || math.IsInf(a.Hours, 0) || a.Hours <= 0 {
		return ErrInvalidHours
	}
	if a.Note == "" {
		return ErrEmptyNote
	}
	return nil
}

// InternProject holds an ordered sequence of daily activities. The sequence
// order is significant: adds go to the head, the persisted-form save rewrites
// the whole sequence ascending by date.
type InternProject struct {
	ID           string          `json:"id" bson:"_id,omitempty"`
	Name         string          `json:"name" bson:"name"`
	Status       ProjectStatus   `json:"status" bson:"status"`
	Link         string          `json:"link,omitempty" bson:"link,omitempty"`
	StartDate    time.Time       `json:"start_date" bson:"start_date"`
	EndDate      time.Time       `json:"end_date" bson:"end_date"`
	PlannedHours float64         `json:"planned_hours" bson:"planned_hours"`
	OwnerID      string          `json:"owner_id,omitempty" bson:"owner_id,omitempty"`
	Activities   []DailyActivity `json:"activities" bson:"activities"`
}

// TotalHours sums all activity hours, unrounded.
func (p *InternProject) TotalHours() float64 {
	var total float64
	for _, a := range p.Activities {
		total += a.Hours
	}
	return total
}

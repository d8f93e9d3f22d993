package domain

import (
	"errors"
	"time"
)

var ErrTodoWeekNotFound = errors.New("to-do week not found")
var ErrTodoItemNotFound = errors.New("to-do item not found")

// TodoWeek groups to-do items under a numbered week ("Week 1 — Onboarding").
type TodoWeek struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	Number    int       `json:"number" bson:"number"`
	Title     string    `json:"title" bson:"title"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// TodoItem is one task assigned to a week.
type TodoItem struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	Title     string    `json:"title" bson:"title"`
	Done      bool      `json:"done" bson:"done"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	WeekID    string    `json:"week_id" bson:"week_id"`
}

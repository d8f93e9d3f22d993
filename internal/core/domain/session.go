package domain

import (
	"errors"
	"time"
)

const (
	RoleStudent = "student"
	RoleAdmin   = "admin"
)

// AppMode is the view the user operates in. Admins may switch between modes;
// students are always in student mode.
const (
	ModeStudent = "student"
	ModeAdmin   = "admin"
)

var ErrInvalidLogin = errors.New("invalid login")
var ErrUsernameTooShort = errors.New("username too short")
var ErrForbidden = errors.New("access forbidden")
var ErrSessionNotFound = errors.New("session not found")
var ErrInvalidAccessCode = errors.New("invalid access code")

// Session is the signed-in state for one user: who they are, which role the
// login resolved to, and (for admins) mode and active-intern selection.
type Session struct {
	Username       string    `json:"username"`
	Role           string    `json:"role"`
	InternID       string    `json:"intern_id"`
	Mode           string    `json:"mode"`
	ActiveInternID string    `json:"active_intern_id,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

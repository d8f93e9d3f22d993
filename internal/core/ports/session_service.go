package ports

import (
	"context"

	"github.com/mdc-internships/interntracker/internal/core/domain"
)

// SessionStore persists session state (role, mode, active-intern selection)
// keyed by username.
type SessionStore interface {
	Save(ctx context.Context, s *domain.Session) error
	// Find returns domain.ErrSessionNotFound when absent or expired.
	Find(ctx context.Context, username string) (*domain.Session, error)
	Delete(ctx context.Context, username string) error
}

// LoginResult carries the session and its bearer token.
type LoginResult struct {
	Token   string
	Session *domain.Session
}

// SessionService is the login gate: a local username lookup against the
// intern directory, not a credential system. Admin role comes from
// configuration, never from user input.
type SessionService interface {
	// Login normalizes the raw username (trim, lowercase, strip a mail
	// domain), requires at least two characters, and resolves it against the
	// directory.
	Login(ctx context.Context, rawUsername string) (*LoginResult, error)

	Logout(ctx context.Context, username string) error

	// ToggleMode flips an admin between student and admin mode. Switching
	// into admin mode requires the configured access code; leaving admin
	// mode clears the active-intern selection.
	ToggleMode(ctx context.Context, username, accessCode string) (*domain.Session, error)

	// SetActiveIntern records which intern an admin is acting on. Admin mode
	// only. An empty internID clears the selection.
	SetActiveIntern(ctx context.Context, username, internID string) (*domain.Session, error)

	Current(ctx context.Context, username string) (*domain.Session, error)
}

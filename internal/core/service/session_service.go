package service

import (
	"context"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/mdc-internships/interntracker/internal/core/domain"
	"github.com/mdc-internships/interntracker/internal/core/ports"
)

// SessionService implements the login gate. Login is a directory lookup, not
// a credential check; the admin role comes solely from the configured admin
// username set. Switching into admin mode is gated by a bcrypt-hashed access
// code from configuration.
type SessionService struct {
	interns        ports.InternRepository
	store          ports.SessionStore
	admins         map[string]struct{}
	accessCodeHash string
	jwtSecret      string
	tokenTTL       time.Duration
	logger         zerolog.Logger
	now            func() time.Time
}

func NewSessionService(
	interns ports.InternRepository,
	store ports.SessionStore,
	adminUsernames []string,
	accessCodeHash string,
	jwtSecret string,
	tokenTTL time.Duration,
	logger zerolog.Logger,
) *SessionService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	admins := make(map[string]struct{}, len(adminUsernames))
	for _, u := range adminUsernames {
		admins[strings.ToLower(strings.TrimSpace(u))] = struct{}{}
	}
	return &SessionService{
		interns:        interns,
		store:          store,
		admins:         admins,
		accessCodeHash: accessCodeHash,
		jwtSecret:      jwtSecret,
		tokenTTL:       tokenTTL,
		logger:         logger,
		now:            time.Now,
	}
}

// normalizeUsername trims, lowercases, and strips a mail domain so both
// "Ana@mdc.edu" and "ana" resolve to the same directory record.
func normalizeUsername(raw string) string {
	u := strings.ToLower(strings.TrimSpace(raw))
	if at := strings.Index(u, "@"); at >= 0 {
		u = u[:at]
	}
	return u
}

// Login resolves the username against the intern directory and opens a
// session. Everyone starts in student mode.
func (s *SessionService) Login(ctx context.Context, rawUsername string) (*ports.LoginResult, error) {
	u := normalizeUsername(rawUsername)
	if len(u) < 2 {
		return nil, domain.ErrUsernameTooShort
	}

	intern, err := s.interns.FindByUsername(ctx, u)
	if err != nil {
		return nil, err
	}

	role := domain.RoleStudent
	if _, ok := s.admins[u]; ok {
		role = domain.RoleAdmin
	}

	session := &domain.Session{
		Username:  u,
		Role:      role,
		InternID:  intern.ID,
		Mode:      domain.ModeStudent,
		CreatedAt: s.now(),
	}
	if err := s.store.Save(ctx, session); err != nil {
		return nil, err
	}

	token, err := s.signToken(session)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("username", u).Str("role", role).Msg("login")
	return &ports.LoginResult{Token: token, Session: session}, nil
}

func (s *SessionService) Logout(ctx context.Context, username string) error {
	if err := s.store.Delete(ctx, normalizeUsername(username)); err != nil {
		return err
	}
	s.logger.Info().Str("username", username).Msg("logout")
	return nil
}

// ToggleMode flips an admin between student and admin mode. Entering admin
// mode checks the access code; dropping back to student mode clears the
// active-intern selection.
func (s *SessionService) ToggleMode(ctx context.Context, username, accessCode string) (*domain.Session, error) {
	session, err := s.store.Find(ctx, normalizeUsername(username))
	if err != nil {
		return nil, err
	}
	if session.Role != domain.RoleAdmin {
		return nil, domain.ErrForbidden
	}

	if session.Mode == domain.ModeAdmin {
		session.Mode = domain.ModeStudent
		session.ActiveInternID = ""
	} else {
		if s.accessCodeHash != "" {
			if bcrypt.CompareHashAndPassword([]byte(s.accessCodeHash), []byte(accessCode)) != nil {
				return nil, domain.ErrInvalidAccessCode
			}
		}
		session.Mode = domain.ModeAdmin
	}

	if err := s.store.Save(ctx, session); err != nil {
		return nil, err
	}
	s.logger.Info().Str("username", session.Username).Str("mode", session.Mode).Msg("mode toggled")
	return session, nil
}

// SetActiveIntern records which intern an admin is acting on behalf of.
func (s *SessionService) SetActiveIntern(ctx context.Context, username, internID string) (*domain.Session, error) {
	session, err := s.store.Find(ctx, normalizeUsername(username))
	if err != nil {
		return nil, err
	}
	if session.Role != domain.RoleAdmin || session.Mode != domain.ModeAdmin {
		return nil, domain.ErrForbidden
	}

	if internID != "" {
		if _, err := s.interns.FindByID(ctx, internID); err != nil {
			return nil, err
		}
	}
	session.ActiveInternID = internID

	if err := s.store.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *SessionService) Current(ctx context.Context, username string) (*domain.Session, error) {
	return s.store.Find(ctx, normalizeUsername(username))
}

func (s *SessionService) signToken(session *domain.Session) (string, error) {
	claims := jwt.MapClaims{
		"username":  session.Username,
		"role":      session.Role,
		"intern_id": session.InternID,
		"exp":       s.now().Add(s.tokenTTL).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

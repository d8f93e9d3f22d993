package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/mdc-internships/interntracker/internal/core/domain"
	"github.com/mdc-internships/interntracker/internal/core/ports"
)

type stubSessionService struct {
	loginFn           func(ctx context.Context, rawUsername string) (*ports.LoginResult, error)
	logoutFn          func(ctx context.Context, username string) error
	toggleModeFn      func(ctx context.Context, username, accessCode string) (*domain.Session, error)
	setActiveInternFn func(ctx context.Context, username, internID string) (*domain.Session, error)
	currentFn         func(ctx context.Context, username string) (*domain.Session, error)
}

func (s *stubSessionService) Login(ctx context.Context, rawUsername string) (*ports.LoginResult, error) {
	return s.loginFn(ctx, rawUsername)
}

func (s *stubSessionService) Logout(ctx context.Context, username string) error {
	return s.logoutFn(ctx, username)
}

func (s *stubSessionService) ToggleMode(ctx context.Context, username, accessCode string) (*domain.Session, error) {
	return s.toggleModeFn(ctx, username, accessCode)
}

func (s *stubSessionService) SetActiveIntern(ctx context.Context, username, internID string) (*domain.Session, error) {
	return s.setActiveInternFn(ctx, username, internID)
}

func (s *stubSessionService) Current(ctx context.Context, username string) (*domain.Session, error) {
	return s.currentFn(ctx, username)
}

func TestAuthHandler_Login_Success(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()

	stub := &stubSessionService{
		loginFn: func(ctx context.Context, rawUsername string) (*ports.LoginResult, error) {
			if rawUsername != "Ana@mdc.edu" {
				t.Fatalf("unexpected username: %q", rawUsername)
			}
			return &ports.LoginResult{
				Token: "signed-token",
				Session: &domain.Session{
					Username: "ana",
					Role:     domain.RoleStudent,
					Mode:     domain.ModeStudent,
				},
			}, nil
		},
	}
	h := NewAuthHandler(stub)

	body := strings.NewReader(`{"username":"Ana@mdc.edu"}`)
	req := httptest.NewRequest(http.MethodPost, "/auth/login", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp loginResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Token != "signed-token" {
		t.Errorf("token = %q", resp.Token)
	}
	if resp.Session == nil || resp.Session.Username != "ana" {
		t.Errorf("session = %+v", resp.Session)
	}
}

func TestAuthHandler_Login_UnknownUser(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()

	stub := &stubSessionService{
		loginFn: func(ctx context.Context, rawUsername string) (*ports.LoginResult, error) {
			return nil, domain.ErrInvalidLogin
		},
	}
	h := NewAuthHandler(stub)

	body := strings.NewReader(`{"username":"ghost"}`)
	req := httptest.NewRequest(http.MethodPost, "/auth/login", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Login(c); err != domain.ErrInvalidLogin {
		t.Fatalf("expected ErrInvalidLogin, got %v", err)
	}
}

func TestAuthHandler_ToggleMode(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()

	stub := &stubSessionService{
		toggleModeFn: func(ctx context.Context, username, accessCode string) (*domain.Session, error) {
			if username != "drodri54" || accessCode != "campus-override" {
				t.Fatalf("unexpected args: %q %q", username, accessCode)
			}
			return &domain.Session{Username: username, Role: domain.RoleAdmin, Mode: domain.ModeAdmin}, nil
		},
	}
	h := NewAuthHandler(stub)

	body := strings.NewReader(`{"access_code":"campus-override"}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/session/mode", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("username", "drodri54")
	c.Set("role", "admin")

	if err := h.ToggleMode(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var sess domain.Session
	if err := json.Unmarshal(rec.Body.Bytes(), &sess); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if sess.Mode != domain.ModeAdmin {
		t.Errorf("mode = %q, want admin", sess.Mode)
	}
}

func TestAuthHandler_Current_MissingClaims(t *testing.T) {
	e := echo.New()
	h := NewAuthHandler(&stubSessionService{})

	req := httptest.NewRequest(http.MethodGet, "/v1/session", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.Current(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mdc-internships/interntracker/internal/api/metrics"
	"github.com/mdc-internships/interntracker/internal/core/domain"
	"github.com/mdc-internships/interntracker/internal/core/ports"
)

// AuthHandler handles login, logout, and session state.
type AuthHandler struct {
	sessions ports.SessionService
}

func NewAuthHandler(sessions ports.SessionService) *AuthHandler {
	return &AuthHandler{sessions: sessions}
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
}

type toggleModeRequest struct {
	AccessCode string `json:"access_code"`
}

type activeInternRequest struct {
	InternID string `json:"intern_id"`
}

type loginResponse struct {
	Token   string          `json:"token"`
	Session *domain.Session `json:"session"`
}

// Login resolves a username against the intern directory and opens a session.
//
// @Summary      Login with a directory username
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Directory username (mail form accepted)"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.sessions.Login(c.Request().Context(), req.Username)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("rejected").Inc()
		return err
	}

	metrics.LoginsTotal.WithLabelValues("ok").Inc()
	metrics.ActiveSessions.Inc()
	return c.JSON(http.StatusOK, loginResponse{Token: result.Token, Session: result.Session})
}

// Logout discards the caller's session.
//
// @Summary      Logout
// @Tags         auth
// @Security     BearerAuth
// @Success      204
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	username, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	if err := h.sessions.Logout(c.Request().Context(), username); err != nil {
		return err
	}

	metrics.ActiveSessions.Dec()
	return c.NoContent(http.StatusNoContent)
}

// Current returns the caller's session state.
//
// @Summary      Current session
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.Session
// @Failure      404  {object}  map[string]string
// @Router       /v1/session [get]
func (h *AuthHandler) Current(c echo.Context) error {
	username, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	sess, err := h.sessions.Current(c.Request().Context(), username)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sess)
}

// ToggleMode flips an admin between student and admin mode. Entering admin
// mode requires the configured access code.
//
// @Summary      Toggle admin/student mode
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      toggleModeRequest  false  "Access code, required when entering admin mode"
// @Success      200   {object}  domain.Session
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /v1/session/mode [post]
func (h *AuthHandler) ToggleMode(c echo.Context) error {
	username, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req toggleModeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	sess, err := h.sessions.ToggleMode(c.Request().Context(), username, req.AccessCode)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sess)
}

// SetActiveIntern records which intern an admin is acting on.
//
// @Summary      Select the active intern (admin mode)
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      activeInternRequest  true  "Intern to act on; empty to clear"
// @Success      200   {object}  domain.Session
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /v1/session/active-intern [put]
func (h *AuthHandler) SetActiveIntern(c echo.Context) error {
	username, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req activeInternRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	sess, err := h.sessions.SetActiveIntern(c.Request().Context(), username, req.InternID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sess)
}

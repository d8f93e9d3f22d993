package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mdc-internships/interntracker/internal/core/domain"
	"github.com/mdc-internships/interntracker/internal/core/ports"
)

// InternHandler handles HTTP requests for the intern directory.
type InternHandler struct {
	service ports.InternService
}

func NewInternHandler(service ports.InternService) *InternHandler {
	return &InternHandler{service: service}
}

type internRequest struct {
	ID          string    `json:"id"`
	FullName    string    `json:"full_name" validate:"required"`
	Username    string    `json:"username" validate:"required,min=2"`
	University  string    `json:"university"`
	Email       string    `json:"email" validate:"omitempty,email"`
	Phone       string    `json:"phone"`
	Mentor      string    `json:"mentor"`
	MentorEmail string    `json:"mentor_email" validate:"omitempty,email"`
	Campus      string    `json:"campus"`
	LinkedIn    string    `json:"linkedin"`
	Notes       string    `json:"notes"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
}

func (r internRequest) toDomain() *domain.Intern {
	return &domain.Intern{
		ID:          r.ID,
		FullName:    r.FullName,
		Username:    r.Username,
		University:  r.University,
		Email:       r.Email,
		Phone:       r.Phone,
		Mentor:      r.Mentor,
		MentorEmail: r.MentorEmail,
		Campus:      r.Campus,
		LinkedIn:    r.LinkedIn,
		Notes:       r.Notes,
		StartDate:   r.StartDate,
		EndDate:     r.EndDate,
	}
}

// Upsert handles POST /v1/interns.
//
// @Summary      Create or update an intern record
// @Tags         interns
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      internRequest  true  "Intern record"
// @Success      200   {object}  domain.Intern
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /v1/interns [post]
func (h *InternHandler) Upsert(c echo.Context) error {
	var req internRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	i, err := h.service.UpsertIntern(c.Request().Context(), req.toDomain())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, i)
}

// List handles GET /v1/interns.
//
// @Summary      List interns
// @Tags         interns
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Intern
// @Router       /v1/interns [get]
func (h *InternHandler) List(c echo.Context) error {
	interns, err := h.service.ListInterns(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, interns)
}

// Get handles GET /v1/interns/:id.
//
// @Summary      Get an intern
// @Tags         interns
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Intern ID"
// @Success      200  {object}  domain.Intern
// @Failure      404  {object}  map[string]string
// @Router       /v1/interns/{id} [get]
func (h *InternHandler) Get(c echo.Context) error {
	i, err := h.service.GetIntern(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, i)
}

// Delete handles DELETE /v1/interns/:id.
//
// @Summary      Delete an intern
// @Tags         interns
// @Security     BearerAuth
// @Param        id  path  string  true  "Intern ID"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /v1/interns/{id} [delete]
func (h *InternHandler) Delete(c echo.Context) error {
	if err := h.service.DeleteIntern(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

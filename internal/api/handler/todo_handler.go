package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mdc-internships/interntracker/internal/core/domain"
	"github.com/mdc-internships/interntracker/internal/core/ports"
)

// TodoHandler handles HTTP requests for onboarding to-dos.
type TodoHandler struct {
	service ports.TodoService
}

func NewTodoHandler(service ports.TodoService) *TodoHandler {
	return &TodoHandler{service: service}
}

type addWeekRequest struct {
	Number int    `json:"number" validate:"required,gt=0"`
	Title  string `json:"title" validate:"required"`
}

type addItemRequest struct {
	Title  string `json:"title" validate:"required"`
	WeekID string `json:"week_id" validate:"required"`
}

type weekGroupResponse struct {
	Week  *domain.TodoWeek   `json:"week"`
	Items []*domain.TodoItem `json:"items"`
}

type monthGroupResponse struct {
	Title string              `json:"title"`
	Weeks []weekGroupResponse `json:"weeks"`
}

// Grouped handles GET /v1/todos: months in chronological order, weeks by
// number, items oldest first.
//
// @Summary      To-dos grouped by month and week
// @Tags         todos
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  monthGroupResponse
// @Router       /v1/todos [get]
func (h *TodoHandler) Grouped(c echo.Context) error {
	groups, err := h.service.Grouped(c.Request().Context())
	if err != nil {
		return err
	}

	out := make([]monthGroupResponse, 0, len(groups))
	for _, m := range groups {
		weeks := make([]weekGroupResponse, 0, len(m.Weeks))
		for _, w := range m.Weeks {
			weeks = append(weeks, weekGroupResponse{Week: w.Week, Items: w.Items})
		}
		out = append(out, monthGroupResponse{Title: m.Title, Weeks: weeks})
	}
	return c.JSON(http.StatusOK, out)
}

// AddWeek handles POST /v1/todos/weeks.
//
// @Summary      Add a to-do week
// @Tags         todos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      addWeekRequest  true  "Week number and title"
// @Success      201   {object}  domain.TodoWeek
// @Failure      400   {object}  map[string]string
// @Router       /v1/todos/weeks [post]
func (h *TodoHandler) AddWeek(c echo.Context) error {
	var req addWeekRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	w, err := h.service.AddWeek(c.Request().Context(), req.Number, req.Title)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, w)
}

// AddItem handles POST /v1/todos/items.
//
// @Summary      Add a to-do item to a week
// @Tags         todos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      addItemRequest  true  "Item title and parent week"
// @Success      201   {object}  domain.TodoItem
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /v1/todos/items [post]
func (h *TodoHandler) AddItem(c echo.Context) error {
	var req addItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	it, err := h.service.AddItem(c.Request().Context(), req.Title, req.WeekID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, it)
}

// ToggleDone handles POST /v1/todos/items/:id/toggle.
//
// @Summary      Toggle an item's done state
// @Tags         todos
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Item ID"
// @Success      200  {object}  domain.TodoItem
// @Failure      404  {object}  map[string]string
// @Router       /v1/todos/items/{id}/toggle [post]
func (h *TodoHandler) ToggleDone(c echo.Context) error {
	it, err := h.service.ToggleDone(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, it)
}

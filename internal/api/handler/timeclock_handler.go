package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mdc-internships/interntracker/internal/api/metrics"
	"github.com/mdc-internships/interntracker/internal/core/domain"
	"github.com/mdc-internships/interntracker/internal/core/ports"
)

// TimeClockHandler handles HTTP requests for the clock ledger.
type TimeClockHandler struct {
	service ports.TimeClockService
}

func NewTimeClockHandler(service ports.TimeClockService) *TimeClockHandler {
	return &TimeClockHandler{service: service}
}

// targetUsername resolves which user's ledger the request operates on. The
// claims username is authoritative; an admin may act on another user via the
// username query parameter.
func targetUsername(c echo.Context) (string, error) {
	username, role, err := ctxIdentity(c)
	if err != nil {
		return "", err
	}
	if override := c.QueryParam("username"); override != "" {
		if role != domain.RoleAdmin {
			return "", domain.ErrForbidden
		}
		return override, nil
	}
	return username, nil
}

// ClockIn handles POST /v1/clock/in.
//
// @Summary      Clock in
// @Tags         clock
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      clockInRequest  true  "Company to clock in against"
// @Success      201   {object}  entryResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /v1/clock/in [post]
func (h *TimeClockHandler) ClockIn(c echo.Context) error {
	username, err := targetUsername(c)
	if err != nil {
		return err
	}

	var req clockInRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	entry, err := h.service.ClockIn(c.Request().Context(), req.Company, username)
	if err != nil {
		return err
	}

	metrics.ClockInsTotal.WithLabelValues(entry.Company).Inc()
	return c.JSON(http.StatusCreated, toEntryResponse(entry))
}

// ClockOut handles POST /v1/clock/out.
//
// @Summary      Clock out of the active session
// @Tags         clock
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  entryResponse
// @Failure      404  {object}  map[string]string
// @Router       /v1/clock/out [post]
func (h *TimeClockHandler) ClockOut(c echo.Context) error {
	username, err := targetUsername(c)
	if err != nil {
		return err
	}

	entry, err := h.service.ClockOut(c.Request().Context(), username)
	if err != nil {
		return err
	}

	metrics.ClockOutsTotal.WithLabelValues("normal").Inc()
	return c.JSON(http.StatusOK, toEntryResponse(entry))
}

// Backfill handles POST /v1/clock/entries: a fully specified past session.
//
// @Summary      Backfill a missing time entry
// @Tags         clock
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      backfillRequest  true  "Past session with both timestamps"
// @Success      201   {object}  entryResponse
// @Failure      400   {object}  map[string]string
// @Router       /v1/clock/entries [post]
func (h *TimeClockHandler) Backfill(c echo.Context) error {
	username, err := targetUsername(c)
	if err != nil {
		return err
	}

	var req backfillRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	entry, err := h.service.AddMissingEntry(c.Request().Context(), req.Company, username, req.ClockIn, req.ClockOut)
	if err != nil {
		return err
	}

	metrics.BackfillsTotal.Inc()
	return c.JSON(http.StatusCreated, toEntryResponse(entry))
}

// FixClockOut handles POST /v1/clock/fix: closes a session whose clock-out
// was missed. An omitted clock_out closes it at the current time.
//
// @Summary      Close a session with a missed clock-out
// @Tags         clock
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      fixClockOutRequest  false  "Optional clock-out timestamp"
// @Success      200   {object}  entryResponse
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /v1/clock/fix [post]
func (h *TimeClockHandler) FixClockOut(c echo.Context) error {
	username, err := targetUsername(c)
	if err != nil {
		return err
	}

	var req fixClockOutRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	entry, err := h.service.FixMissingClockOut(c.Request().Context(), username, req.ClockOut)
	if err != nil {
		return err
	}

	metrics.ClockOutsTotal.WithLabelValues("fix").Inc()
	return c.JSON(http.StatusOK, toEntryResponse(entry))
}

// Status handles GET /v1/clock/status.
//
// @Summary      Current clock state and today's total
// @Tags         clock
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  clockStatusResponse
// @Router       /v1/clock/status [get]
func (h *TimeClockHandler) Status(c echo.Context) error {
	username, err := targetUsername(c)
	if err != nil {
		return err
	}

	status, err := h.service.Status(c.Request().Context(), username)
	if err != nil {
		return err
	}

	resp := clockStatusResponse{
		ClockedIn:    status.ClockedIn,
		TodaySeconds: status.TodaySeconds,
	}
	if status.Entry != nil {
		entry := toEntryResponse(status.Entry)
		resp.Entry = &entry
	}
	return c.JSON(http.StatusOK, resp)
}

// Today handles GET /v1/clock/today.
//
// @Summary      Seconds worked today, clipped to the calendar day
// @Tags         clock
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  todayResponse
// @Router       /v1/clock/today [get]
func (h *TimeClockHandler) Today(c echo.Context) error {
	username, err := targetUsername(c)
	if err != nil {
		return err
	}

	total, err := h.service.TotalSecondsToday(c.Request().Context(), username)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, todayResponse{TotalSeconds: total})
}

// Days handles GET /v1/clock/days: the per-day history view.
//
// @Summary      Entries grouped per calendar day, newest day first
// @Tags         clock
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  dayGroupResponse
// @Router       /v1/clock/days [get]
func (h *TimeClockHandler) Days(c echo.Context) error {
	username, err := targetUsername(c)
	if err != nil {
		return err
	}

	groups, err := h.service.DayGroups(c.Request().Context(), username)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toDayGroupResponses(groups))
}

package handler

import (
	"bytes"
	"io"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/mdc-internships/interntracker/internal/api/metrics"
	"github.com/mdc-internships/interntracker/internal/core/domain"
	"github.com/mdc-internships/interntracker/internal/core/ports"
)

// LogRenderer renders a project log export into a document.
type LogRenderer interface {
	Render(w io.Writer, export *ports.LogExport) error
}

// ProjectHandler handles HTTP requests for projects and their activity logs.
type ProjectHandler struct {
	service  ports.ProjectService
	renderer LogRenderer
}

func NewProjectHandler(service ports.ProjectService, renderer LogRenderer) *ProjectHandler {
	return &ProjectHandler{service: service, renderer: renderer}
}

// Upsert handles POST /v1/projects: create or replace a project.
//
// @Summary      Create or update a project
// @Tags         projects
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      projectRequest  true  "Project details"
// @Success      200   {object}  domain.InternProject
// @Failure      400   {object}  map[string]string
// @Router       /v1/projects [post]
func (h *ProjectHandler) Upsert(c echo.Context) error {
	var req projectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	p, err := h.service.UpsertProject(c.Request().Context(), req.toDomain())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

// List handles GET /v1/projects.
//
// @Summary      List projects
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Param        owner_id  query     string  false  "Restrict to one owner"
// @Success      200       {array}   domain.InternProject
// @Router       /v1/projects [get]
func (h *ProjectHandler) List(c echo.Context) error {
	projects, err := h.service.ListProjects(c.Request().Context(), c.QueryParam("owner_id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, projects)
}

// Get handles GET /v1/projects/:id.
//
// @Summary      Get a project
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Project ID"
// @Success      200  {object}  domain.InternProject
// @Failure      404  {object}  map[string]string
// @Router       /v1/projects/{id} [get]
func (h *ProjectHandler) Get(c echo.Context) error {
	p, err := h.service.GetProject(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

// Delete handles DELETE /v1/projects/:id.
//
// @Summary      Delete a project
// @Tags         projects
// @Security     BearerAuth
// @Param        id  path  string  true  "Project ID"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /v1/projects/{id} [delete]
func (h *ProjectHandler) Delete(c echo.Context) error {
	if err := h.service.DeleteProject(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// AddActivity handles POST /v1/projects/:id/activities.
//
// @Summary      Log a daily activity
// @Tags         activities
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string           true  "Project ID"
// @Param        body  body      activityRequest  true  "Activity entry"
// @Success      201   {object}  domain.DailyActivity
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /v1/projects/{id}/activities [post]
func (h *ProjectHandler) AddActivity(c echo.Context) error {
	var req activityRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	a, err := h.service.AddActivity(c.Request().Context(), c.Param("id"), req.toDomain())
	if err != nil {
		return err
	}

	metrics.ActivitiesTotal.WithLabelValues("add").Inc()
	return c.JSON(http.StatusCreated, a)
}

// UpdateActivity handles PUT /v1/projects/:id/activities/:activity_id.
//
// @Summary      Update an activity
// @Tags         activities
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id           path  string           true  "Project ID"
// @Param        activity_id  path  string           true  "Activity ID"
// @Param        body         body  activityRequest  true  "New activity values"
// @Success      204
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /v1/projects/{id}/activities/{activity_id} [put]
func (h *ProjectHandler) UpdateActivity(c echo.Context) error {
	var req activityRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	a := req.toDomain()
	a.ID = c.Param("activity_id")
	if err := h.service.UpdateActivity(c.Request().Context(), c.Param("id"), a); err != nil {
		return err
	}

	metrics.ActivitiesTotal.WithLabelValues("update").Inc()
	return c.NoContent(http.StatusNoContent)
}

// DeleteActivity handles DELETE /v1/projects/:id/activities/:activity_id.
//
// @Summary      Delete an activity
// @Tags         activities
// @Security     BearerAuth
// @Param        id           path  string  true  "Project ID"
// @Param        activity_id  path  string  true  "Activity ID"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /v1/projects/{id}/activities/{activity_id} [delete]
func (h *ProjectHandler) DeleteActivity(c echo.Context) error {
	if err := h.service.DeleteActivity(c.Request().Context(), c.Param("id"), c.Param("activity_id")); err != nil {
		return err
	}

	metrics.ActivitiesTotal.WithLabelValues("delete").Inc()
	return c.NoContent(http.StatusNoContent)
}

// SaveActivities handles PUT /v1/projects/:id/activities: replaces the whole
// log in one write, re-sorted ascending by date.
//
// @Summary      Replace the whole activity log
// @Tags         activities
// @Accept       json
// @Security     BearerAuth
// @Param        id    path  string                 true  "Project ID"
// @Param        body  body  saveActivitiesRequest  true  "Complete activity log"
// @Success      204
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /v1/projects/{id}/activities [put]
func (h *ProjectHandler) SaveActivities(c echo.Context) error {
	var req saveActivitiesRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	activities := make([]domain.DailyActivity, 0, len(req.Activities))
	for _, a := range req.Activities {
		activities = append(activities, a.toDomain())
	}

	if err := h.service.SaveActivities(c.Request().Context(), c.Param("id"), activities); err != nil {
		return err
	}

	metrics.ActivitiesTotal.WithLabelValues("save").Inc()
	return c.NoContent(http.StatusNoContent)
}

// ListActivities handles GET /v1/projects/:id/activities: the paginated log
// view, optionally restricted to an inclusive date range.
//
// @Summary      Paginated activity log
// @Tags         activities
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string  true   "Project ID"
// @Param        page  query     int     false  "Page number (1-based)"
// @Param        from  query     string  false  "Start date (2006-01-02), inclusive"
// @Param        to    query     string  false  "End date (2006-01-02), inclusive"
// @Success      200   {object}  activityPageResponse
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /v1/projects/{id}/activities [get]
func (h *ProjectHandler) ListActivities(c echo.Context) error {
	filter, err := parseActivityFilter(c)
	if err != nil {
		return err
	}

	page := 1
	if raw := c.QueryParam("page"); raw != "" {
		page, err = strconv.Atoi(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "page must be an integer")
		}
	}

	result, err := h.service.ListActivities(c.Request().Context(), c.Param("id"), page, filter)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, activityPageResponse{
		Items:        result.Items,
		TotalRecords: result.TotalRecords,
		TotalHours:   result.TotalHours,
		Page:         result.Page,
		TotalPages:   result.TotalPages,
		ShowingFrom:  result.ShowingFrom,
		ShowingTo:    result.ShowingTo,
	})
}

// Export handles GET /v1/projects/:id/export: the raw export view behind the
// report, as JSON.
//
// @Summary      Export the project log
// @Tags         activities
// @Produce      json
// @Security     BearerAuth
// @Param        id           path      string  true   "Project ID"
// @Param        intern_name  query     string  false  "Name shown in the export header"
// @Param        from         query     string  false  "Start date (2006-01-02), inclusive"
// @Param        to           query     string  false  "End date (2006-01-02), inclusive"
// @Success      200  {object}  exportResponse
// @Failure      404  {object}  map[string]string
// @Router       /v1/projects/{id}/export [get]
func (h *ProjectHandler) Export(c echo.Context) error {
	filter, err := parseActivityFilter(c)
	if err != nil {
		return err
	}

	export, err := h.service.ExportLog(c.Request().Context(), c.Param("id"), c.QueryParam("intern_name"), filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toExportResponse(export))
}

// Report handles GET /v1/projects/:id/report: the rendered project log.
//
// @Summary      Render the project log report
// @Tags         activities
// @Produce      html
// @Security     BearerAuth
// @Param        id           path      string  true   "Project ID"
// @Param        intern_name  query     string  false  "Name shown in the report header"
// @Param        from         query     string  false  "Start date (2006-01-02), inclusive"
// @Param        to           query     string  false  "End date (2006-01-02), inclusive"
// @Success      200  {string}  string
// @Failure      404  {object}  map[string]string
// @Router       /v1/projects/{id}/report [get]
func (h *ProjectHandler) Report(c echo.Context) error {
	filter, err := parseActivityFilter(c)
	if err != nil {
		return err
	}

	export, err := h.service.ExportLog(c.Request().Context(), c.Param("id"), c.QueryParam("intern_name"), filter)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := h.renderer.Render(&buf, export); err != nil {
		return err
	}

	metrics.ReportsGeneratedTotal.Inc()
	return c.HTMLBlob(http.StatusOK, buf.Bytes())
}

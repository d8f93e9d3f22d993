package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mdc-internships/interntracker/internal/core/domain"
	"github.com/mdc-internships/interntracker/internal/core/ports"
)

// --- Request types ---

type projectRequest struct {
	ID           string    `json:"id"`
	Name         string    `json:"name" validate:"required"`
	Status       string    `json:"status"`
	Link         string    `json:"link"`
	StartDate    time.Time `json:"start_date"`
	EndDate      time.Time `json:"end_date"`
	PlannedHours float64   `json:"planned_hours"`
	OwnerID      string    `json:"owner_id"`
}

type activityRequest struct {
	ID    string    `json:"id"`
	Date  time.Time `json:"date" validate:"required"`
	Hours float64   `json:"hours" validate:"required"`
	Note  string    `json:"note" validate:"required"`
}

type saveActivitiesRequest struct {
	Activities []activityRequest `json:"activities"`
}

// --- Response types ---

type exportRowResponse struct {
	Date  string  `json:"date"`
	Hours float64 `json:"hours"`
	Note  string  `json:"note"`
}

type exportResponse struct {
	InternName   string              `json:"intern_name"`
	ProjectName  string              `json:"project_name"`
	PlannedHours float64             `json:"planned_hours"`
	LoggedHours  float64             `json:"logged_hours"`
	RangeLabel   string              `json:"range_label"`
	Rows         []exportRowResponse `json:"rows"`
}

func toExportResponse(export *ports.LogExport) exportResponse {
	rows := make([]exportRowResponse, 0, len(export.Rows))
	for _, r := range export.Rows {
		rows = append(rows, exportRowResponse{
			Date:  r.Date.Format("2006-01-02"),
			Hours: r.Hours,
			Note:  r.Note,
		})
	}
	return exportResponse{
		InternName:   export.InternName,
		ProjectName:  export.ProjectName,
		PlannedHours: export.PlannedHours,
		LoggedHours:  export.LoggedHours,
		RangeLabel:   export.RangeLabel,
		Rows:         rows,
	}
}

type activityPageResponse struct {
	Items        []domain.DailyActivity `json:"items"`
	TotalRecords int                    `json:"total_records"`
	TotalHours   float64                `json:"total_hours"`
	Page         int                    `json:"page"`
	TotalPages   int                    `json:"total_pages"`
	ShowingFrom  int                    `json:"showing_from"`
	ShowingTo    int                    `json:"showing_to"`
}

func (r projectRequest) toDomain() *domain.InternProject {
	return &domain.InternProject{
		ID:           r.ID,
		Name:         r.Name,
		Status:       domain.ProjectStatus(r.Status),
		Link:         r.Link,
		StartDate:    r.StartDate,
		EndDate:      r.EndDate,
		PlannedHours: r.PlannedHours,
		OwnerID:      r.OwnerID,
	}
}

func (r activityRequest) toDomain() domain.DailyActivity {
	return domain.DailyActivity{
		ID:    r.ID,
		Date:  r.Date,
		Hours: r.Hours,
		Note:  r.Note,
	}
}

// parseActivityFilter reads the optional from/to query parameters. Dates use
// the 2006-01-02 form; both bounds are inclusive calendar days.
func parseActivityFilter(c echo.Context) (ports.ActivityFilter, error) {
	var f ports.ActivityFilter

	if raw := c.QueryParam("from"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return f, echo.NewHTTPError(http.StatusBadRequest, "from must be a date in the form 2006-01-02")
		}
		f.From = t
	}
	if raw := c.QueryParam("to"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return f, echo.NewHTTPError(http.StatusBadRequest, "to must be a date in the form 2006-01-02")
		}
		f.To = t
	}
	return f, nil
}

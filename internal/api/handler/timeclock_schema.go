package handler

import (
	"time"

	"github.com/mdc-internships/interntracker/internal/core/domain"
	"github.com/mdc-internships/interntracker/internal/core/ports"
)

// --- Request types ---

type clockInRequest struct {
	Company string `json:"company" validate:"required"`
}

type backfillRequest struct {
	Company  string    `json:"company" validate:"required"`
	ClockIn  time.Time `json:"clock_in" validate:"required"`
	ClockOut time.Time `json:"clock_out" validate:"required"`
}

type fixClockOutRequest struct {
	// ClockOut is optional; zero means "now".
	ClockOut time.Time `json:"clock_out"`
}

// --- Response types ---

type entryResponse struct {
	ID       string     `json:"id"`
	Username string     `json:"username"`
	Company  string     `json:"company"`
	ClockIn  time.Time  `json:"clock_in"`
	ClockOut *time.Time `json:"clock_out,omitempty"`
}

type clockStatusResponse struct {
	ClockedIn    bool           `json:"clocked_in"`
	Entry        *entryResponse `json:"entry,omitempty"`
	TodaySeconds int64          `json:"today_seconds"`
}

type todayResponse struct {
	TotalSeconds int64 `json:"total_seconds"`
}

type dayGroupResponse struct {
	Day          string          `json:"day"`
	Entries      []entryResponse `json:"entries"`
	TotalSeconds int64           `json:"total_seconds"`
}

func toEntryResponse(e *domain.TimeEntry) entryResponse {
	return entryResponse{
		ID:       e.ID,
		Username: e.Username,
		Company:  e.Company,
		ClockIn:  e.ClockIn,
		ClockOut: e.ClockOut,
	}
}

func toDayGroupResponses(groups []ports.DayGroup) []dayGroupResponse {
	out := make([]dayGroupResponse, 0, len(groups))
	for _, g := range groups {
		entries := make([]entryResponse, 0, len(g.Entries))
		for _, e := range g.Entries {
			entries = append(entries, toEntryResponse(e))
		}
		out = append(out, dayGroupResponse{
			Day:          g.Day.Format("2006-01-02"),
			Entries:      entries,
			TotalSeconds: g.TotalSeconds,
		})
	}
	return out
}

package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/mdc-internships/interntracker/internal/core/ports"
)

func TestRenderFullReport(t *testing.T) {
	export := &ports.LogExport{
		InternName:   "Ana Ruiz",
		ProjectName:  "Campus Portal",
		PlannedHours: 40,
		LoggedHours:  12.5,
		RangeLabel:   "All Dates",
		Rows: []ports.LogExportRow{
			{Date: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), Hours: 4, Note: "Set up repo"},
			{Date: time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC), Hours: 8.5, Note: "Login page"},
		},
	}

	var buf bytes.Buffer
	if err := NewHTMLRenderer().Render(&buf, export); err != nil {
		t.Fatalf("Render: %v", err)
	}
	html := buf.String()

	for _, want := range []string{
		"Intern Weekly Activity Report",
		"Ana Ruiz",
		"Campus Portal",
		"All Dates",
		"40.00",
		"12.50",
		"Mar 2, 2026",
		"4.00",
		"8.50",
		"Set up repo",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("report missing %q", want)
		}
	}
}

func TestRenderEscapesNotes(t *testing.T) {
	export := &ports.LogExport{
		ProjectName: "X",
		RangeLabel:  "All Dates",
		Rows: []ports.LogExportRow{
			{Date: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), Hours: 1, Note: `<script>alert("hi")</script>`},
		},
	}

	var buf bytes.Buffer
	if err := NewHTMLRenderer().Render(&buf, export); err != nil {
		t.Fatalf("Render: %v", err)
	}
	html := buf.String()

	if strings.Contains(html, "<script>") {
		t.Fatalf("note was not escaped: %s", html)
	}
	if !strings.Contains(html, "&lt;script&gt;") {
		t.Errorf("expected escaped note in output")
	}
}

func TestRenderDefaults(t *testing.T) {
	export := &ports.LogExport{
		ProjectName: "X",
		RangeLabel:  "All Dates",
		Rows: []ports.LogExportRow{
			{Date: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), Hours: 1, Note: ""},
		},
	}

	var buf bytes.Buffer
	if err := NewHTMLRenderer().Render(&buf, export); err != nil {
		t.Fatalf("Render: %v", err)
	}
	html := buf.String()

	if !strings.Contains(html, "<b>Intern:</b> Intern") {
		t.Errorf("expected fallback intern name")
	}
	if !strings.Contains(html, "—") {
		t.Errorf("expected dash for empty note")
	}
}

// Package report renders project activity logs as printable HTML documents.
package report

import (
	"fmt"
	"html/template"
	"io"

	"github.com/mdc-internships/interntracker/internal/core/ports"
)

const logTemplate = `<html>
<head>
    <meta charset="utf-8"/>
    <style>
        body { font-family: Helvetica, Arial, sans-serif; padding: 18px; }
        h1 { margin-bottom: 6px; font-size: 18px; }
        .meta { margin-bottom: 12px; font-size: 12px; color: #444; }
        table { width: 100%; border-collapse: collapse; font-size: 12px; }
        th, td { border-bottom: 1px solid #ddd; padding: 8px 6px; }
        th { background: #f5f5f5; text-align: left; }
    </style>
</head>
<body>
    <h1>Intern Weekly Activity Report</h1>

    <div class="meta">
        <b>Intern:</b> {{.InternName}}<br/>
        <b>Project:</b> {{.ProjectName}}<br/>
        <b>Date Range:</b> {{.RangeLabel}}<br/>
        <b>Planned Hours:</b> {{.PlannedHours}}
        &nbsp; | &nbsp;
        <b>Logged Hours:</b> {{.LoggedHours}}
    </div>

    <table>
        <thead>
            <tr>
                <th style="width: 18%;">Date</th>
                <th style="width: 10%; text-align:right;">Hours</th>
                <th>Activity / Note</th>
            </tr>
        </thead>
        <tbody>
{{- range .Rows}}
            <tr>
                <td>{{.Date}}</td>
                <td style="text-align:right;">{{.Hours}}</td>
                <td>{{.Note}}</td>
            </tr>
{{- end}}
        </tbody>
    </table>
</body>
</html>
`

// HTMLRenderer renders a LogExport into the printable HTML report.
type HTMLRenderer struct {
	tmpl *template.Template
}

func NewHTMLRenderer() *HTMLRenderer {
	return &HTMLRenderer{tmpl: template.Must(template.New("projectlog").Parse(logTemplate))}
}

type logRow struct {
	Date  string
	Hours string
	Note  string
}

type logData struct {
	InternName   string
	ProjectName  string
	RangeLabel   string
	PlannedHours string
	LoggedHours  string
	Rows         []logRow
}

// Render writes the HTML report for the given export. Notes and names are
// escaped by the template engine; an empty note renders as a dash.
func (r *HTMLRenderer) Render(w io.Writer, export *ports.LogExport) error {
	internName := export.InternName
	if internName == "" {
		internName = "Intern"
	}

	rows := make([]logRow, 0, len(export.Rows))
	for _, row := range export.Rows {
		note := row.Note
		if note == "" {
			note = "—"
		}
		rows = append(rows, logRow{
			Date:  row.Date.Format("Jan 2, 2006"),
			Hours: fmt.Sprintf("%.2f", row.Hours),
			Note:  note,
		})
	}

	return r.tmpl.Execute(w, logData{
		InternName:   internName,
		ProjectName:  export.ProjectName,
		RangeLabel:   export.RangeLabel,
		PlannedHours: fmt.Sprintf("%.2f", export.PlannedHours),
		LoggedHours:  fmt.Sprintf("%.2f", export.LoggedHours),
		Rows:         rows,
	})
}

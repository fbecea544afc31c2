package incidents

import (
	"bytes"
	"embed"
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/bissquit/incident-console/internal/domain"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

// ReportRenderer renders a post-incident report as a Markdown document.
// Pure formatting: it never mutates incident state and its output is not
// re-parsed by this system.
type ReportRenderer struct {
	tmpl *template.Template
}

// NewReportRenderer creates a renderer and parses the report template.
func NewReportRenderer() (*ReportRenderer, error) {
	funcMap := template.FuncMap{
		"formatTime": formatTime,
		"orNA":       orNA,
		"yesNo":      yesNo,
		"eventLabel": eventLabel,
	}

	content, err := templatesFS.ReadFile("templates/report.md.tmpl")
	if err != nil {
		return nil, fmt.Errorf("read report template: %w", err)
	}

	tmpl, err := template.New("report").Funcs(funcMap).Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("parse report template: %w", err)
	}

	return &ReportRenderer{tmpl: tmpl}, nil
}

// Render produces the Markdown report for one incident detail.
func (r *ReportRenderer) Render(detail *IncidentDetail) (string, error) {
	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, detail); err != nil {
		return "", fmt.Errorf("execute report template: %w", err)
	}
	return strings.TrimSpace(buf.String()) + "\n", nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func orNA(t *time.Time) string {
	if t == nil {
		return "N/A"
	}
	return formatTime(*t)
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

// eventLabel turns a timeline event type into a readable label,
// e.g. "status_change" becomes "Status Change".
func eventLabel(t domain.TimelineEventType) string {
	return cases.Title(language.English).String(strings.ReplaceAll(string(t), "_", " "))
}

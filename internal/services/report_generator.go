package services

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// GenerateRequest mirrors the body the report endpoints have always
// accepted. Periods entries of the form "YYYY-MM" select an explicit
// calendar month; otherwise the window is the trailing 30 days (or the
// current month for the monthly endpoint).
type GenerateRequest struct {
	UserID      string   `json:"userId"`
	Periods     []string `json:"periods"`
	PeriodsText string   `json:"periodsText"`
	Format      string   `json:"format,omitempty"` // "html" (default) or "pdf"
	Monthly     bool     `json:"-"`
	Locale      string   `json:"-"`
}

// GenerateResult matches the {success, reportUrl|error} response shape.
type GenerateResult struct {
	Success   bool   `json:"success"`
	ReportURL string `json:"reportUrl,omitempty"`
	Filename  string `json:"-"`
}

// ReportGenerator renders report artifacts into a directory that the
// server exposes under /reports/.
type ReportGenerator struct {
	reports *ReportService
	outDir  string
	now     func() time.Time
}

func NewReportGenerator(reports *ReportService, outDir string) *ReportGenerator {
	return &ReportGenerator{
		reports: reports,
		outDir:  outDir,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func (g *ReportGenerator) Generate(req GenerateRequest) (*GenerateResult, error) {
	if req.UserID == "" {
		return nil, NewInvalidError("userId required")
	}
	if g.outDir == "" {
		return nil, NewInvalidError("report output directory not configured")
	}

	now := g.now()
	start, end := g.window(req, now)
	summary, err := g.reports.SummaryWindow(req.UserID, start, end)
	if err != nil {
		return nil, err
	}

	opts := RenderOptions{Locale: req.Locale, PeriodsText: req.PeriodsText, GeneratedAt: now}
	format := strings.ToLower(strings.TrimSpace(req.Format))
	if format == "" {
		format = "html"
	}
	var data []byte
	switch format {
	case "html":
		data, err = RenderHTMLReport(summary, opts)
	case "pdf":
		data, err = RenderPDFReport(summary, opts)
	default:
		return nil, NewInvalidError("unsupported format")
	}
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(g.outDir, 0o755); err != nil {
		return nil, fmt.Errorf("create report dir: %w", err)
	}
	filename := fmt.Sprintf("report_%s_%s_%s.%s",
		slug(req.UserID), now.Format("20060102"), shortID(8), format)
	if err := os.WriteFile(filepath.Join(g.outDir, filename), data, 0o644); err != nil {
		return nil, fmt.Errorf("write report: %w", err)
	}
	return &GenerateResult{Success: true, ReportURL: "/reports/" + filename, Filename: filename}, nil
}

// window resolves the aggregation window for a request. The monthly
// endpoint defaults to the current calendar month; an explicit "YYYY-MM"
// period overrides it.
func (g *ReportGenerator) window(req GenerateRequest, now time.Time) (time.Time, time.Time) {
	for _, p := range req.Periods {
		if month, err := time.Parse("2006-01", strings.TrimSpace(p)); err == nil {
			return month, month.AddDate(0, 1, -1)
		}
	}
	if req.Monthly {
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
		return start, start.AddDate(0, 1, -1)
	}
	return now.AddDate(0, 0, -ReportWindowDays), now
}

func slug(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			out = append(out, r)
		default:
			out = append(out, '-')
		}
	}
	return strings.Trim(string(out), "-")
}

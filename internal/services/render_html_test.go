package services

import (
	"strings"
	"testing"
	"time"
)

func sampleSummary() *ReportSummary {
	return &ReportSummary{
		UserEmail:    "alice@x.com",
		WindowStart:  "2025-07-26",
		WindowEnd:    "2025-08-25",
		DaysWithData: 2,
		Crisis:       CrisisMetric{State: StateOK, Count: 1},
		PainPoints: PainPointsMetric{State: StateOK, Points: []PainPoint{
			{Location: "Lower back", Count: 3},
			{Location: "Neck", Count: 1},
		}},
		PainSeries: PainSeriesMetric{State: StateOK, Series: PainSeries{
			Points:  []SeriesPoint{{Date: "2025-08-15", Intensity: 7}},
			Mean:    7, Min: 7, Max: 7,
			HasData: true,
		}},
	}
}

func TestRenderHTMLReport(t *testing.T) {
	out, err := RenderHTMLReport(sampleSummary(), RenderOptions{
		Locale:      "en",
		GeneratedAt: time.Date(2025, 8, 25, 12, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("RenderHTMLReport error: %v", err)
	}
	html := string(out)
	for _, want := range []string{
		"alice@x.com",
		"2025-07-26 — 2025-08-25",
		"Lower back",
		"2025-08-15",
		"7.0",
		`lang="en"`,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("output missing %q", want)
		}
	}
	if strings.Contains(html, `class="empty"`) {
		t.Errorf("populated report must not show the no-data marker")
	}
}

func TestRenderHTMLReportEmptyStates(t *testing.T) {
	summary := &ReportSummary{
		UserEmail:   "alice@x.com",
		WindowStart: "2025-07-26",
		WindowEnd:   "2025-08-25",
		Crisis:      CrisisMetric{State: StateOK},
		PainPoints:  PainPointsMetric{State: StateEmpty},
		PainSeries:  PainSeriesMetric{State: StateEmpty},
	}
	out, err := RenderHTMLReport(summary, RenderOptions{})
	if err != nil {
		t.Fatalf("RenderHTMLReport error: %v", err)
	}
	html := string(out)
	if strings.Count(html, `class="empty"`) != 2 {
		t.Errorf("expected no-data markers for pain points and series")
	}
	if !strings.Contains(html, `lang="pt"`) {
		t.Errorf("default locale should be pt")
	}
}

func TestRenderHTMLReportErrorState(t *testing.T) {
	summary := sampleSummary()
	summary.Crisis = CrisisMetric{State: StateError}
	summary.PainPoints = PainPointsMetric{State: StateError}
	summary.PainSeries = PainSeriesMetric{State: StateError}
	out, err := RenderHTMLReport(summary, RenderOptions{Locale: "en"})
	if err != nil {
		t.Fatalf("RenderHTMLReport error: %v", err)
	}
	if strings.Count(string(out), `class="error"`) != 3 {
		t.Errorf("each failed metric must render the error marker")
	}
}

func TestRenderHTMLReportPeriodsText(t *testing.T) {
	out, err := RenderHTMLReport(sampleSummary(), RenderOptions{PeriodsText: "August 2025"})
	if err != nil {
		t.Fatalf("RenderHTMLReport error: %v", err)
	}
	if !strings.Contains(string(out), "August 2025") {
		t.Errorf("explicit period text should override the window")
	}
}

func TestRenderHTMLReportNilSummary(t *testing.T) {
	if _, err := RenderHTMLReport(nil, RenderOptions{}); err == nil {
		t.Fatalf("expected error for nil summary")
	}
}

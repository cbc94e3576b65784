package services

import (
	"bytes"
	"html/template"
	"time"

	"github.com/dorlog/backend/internal/utils"
)

// RenderOptions carries presentation inputs shared by the HTML and PDF
// renderers.
type RenderOptions struct {
	Locale      string
	PeriodsText string
	GeneratedAt time.Time
}

// The report is a single self-contained document: inline styles only, no
// external assets, so it can be downloaded or opened in a new tab as-is.
var reportTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html lang="{{.Lang}}">
<head>
<meta charset="utf-8">
<title>{{.L.Title}} — {{.Summary.UserEmail}}</title>
<style>
body { font-family: Helvetica, Arial, sans-serif; color: #222; margin: 2em auto; max-width: 720px; }
h1 { color: #5a2a82; border-bottom: 2px solid #5a2a82; padding-bottom: .3em; }
h2 { color: #5a2a82; margin-top: 1.6em; }
table { border-collapse: collapse; width: 100%; }
th, td { border: 1px solid #ccc; padding: .4em .7em; text-align: left; }
th { background: #f2ecf7; }
.meta { color: #666; font-size: .9em; }
.empty { color: #888; font-style: italic; }
.error { color: #a33; font-style: italic; }
.big { font-size: 2em; font-weight: bold; }
</style>
</head>
<body>
<h1>{{.L.Title}}</h1>
<p class="meta">{{.Summary.UserEmail}} · {{.Period}} · {{.L.Generated}} {{.Generated}}</p>

<h2>{{.L.Crisis}}</h2>
{{if eq .Summary.Crisis.State "error"}}<p class="error">{{.L.FetchError}}</p>
{{else}}<p class="big">{{.Summary.Crisis.Count}}</p>{{end}}

<h2>{{.L.PainPoints}}</h2>
{{if eq .Summary.PainPoints.State "ok"}}
<table>
<tr><th>{{.L.Location}}</th><th>{{.L.Occurrences}}</th></tr>
{{range .Summary.PainPoints.Points}}<tr><td>{{.Location}}</td><td>{{.Count}}</td></tr>
{{end}}
</table>
{{else if eq .Summary.PainPoints.State "error"}}<p class="error">{{.L.FetchError}}</p>
{{else}}<p class="empty">{{.L.NoData}}</p>{{end}}

<h2>{{.L.PainSeries}}</h2>
{{if eq .Summary.PainSeries.State "ok"}}
<p>{{.L.Mean}}: {{printf "%.1f" .Summary.PainSeries.Series.Mean}} · {{.L.Min}}: {{.Summary.PainSeries.Series.Min}} · {{.L.Max}}: {{.Summary.PainSeries.Series.Max}}</p>
<table>
<tr><th>{{.L.Date}}</th><th>{{.L.Intensity}}</th></tr>
{{range .Summary.PainSeries.Series.Points}}<tr><td>{{.Date}}</td><td>{{.Intensity}}</td></tr>
{{end}}
</table>
{{else if eq .Summary.PainSeries.State "error"}}<p class="error">{{.L.FetchError}}</p>
{{else}}<p class="empty">{{.L.NoData}}</p>{{end}}

</body>
</html>
`))

type reportLabels struct {
	Title, Generated, Crisis, PainPoints, PainSeries      string
	Location, Occurrences, Date, Intensity, Mean, Min, Max string
	NoData, FetchError                                     string
}

func labelsFor(locale string) reportLabels {
	t := func(key string) string { return utils.T(locale, key) }
	return reportLabels{
		Title:       t("report.title"),
		Generated:   t("report.generated"),
		Crisis:      t("report.crisis"),
		PainPoints:  t("report.pain_points"),
		PainSeries:  t("report.pain_series"),
		Location:    t("report.location"),
		Occurrences: t("report.occurrences"),
		Date:        t("report.date"),
		Intensity:   t("report.intensity"),
		Mean:        t("report.mean"),
		Min:         t("report.min"),
		Max:         t("report.max"),
		NoData:      t("report.no_data"),
		FetchError:  t("report.fetch_error"),
	}
}

// RenderHTMLReport builds the self-contained HTML report for a summary.
func RenderHTMLReport(summary *ReportSummary, opts RenderOptions) ([]byte, error) {
	if summary == nil {
		return nil, NewInvalidError("summary required")
	}
	period := opts.PeriodsText
	if period == "" {
		period = summary.WindowStart + " — " + summary.WindowEnd
	}
	generated := opts.GeneratedAt
	if generated.IsZero() {
		generated = time.Now().UTC()
	}
	data := struct {
		Lang      string
		L         reportLabels
		Summary   *ReportSummary
		Period    string
		Generated string
	}{
		Lang:      localeOrDefault(opts.Locale),
		L:         labelsFor(opts.Locale),
		Summary:   summary,
		Period:    period,
		Generated: generated.Format("2006-01-02 15:04 UTC"),
	}
	buf := &bytes.Buffer{}
	if err := reportTemplate.Execute(buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func localeOrDefault(locale string) string {
	if locale == "" {
		return "pt"
	}
	return locale
}

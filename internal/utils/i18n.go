package utils

// Minimal server-side i18n for fixed keys.
// App strings live in the mobile client; the server only translates what it
// renders itself, which today is the generated report.

var translations = map[string]map[string]string{
	"pt": {
		"health.ok":          "ok",
		"report.title":       "Relatório do Diário de Dor",
		"report.generated":   "Gerado em",
		"report.crisis":      "Episódios de crise",
		"report.pain_points": "Pontos de dor mais frequentes",
		"report.pain_series": "Evolução da intensidade da dor",
		"report.location":    "Local",
		"report.occurrences": "Ocorrências",
		"report.date":        "Data",
		"report.intensity":   "Intensidade",
		"report.mean":        "Média",
		"report.min":         "Mín",
		"report.max":         "Máx",
		"report.no_data":     "Sem registros no período.",
		"report.fetch_error": "Não foi possível carregar estes dados.",
	},
	"en": {
		"health.ok":          "ok",
		"report.title":       "Pain Diary Report",
		"report.generated":   "Generated at",
		"report.crisis":      "Crisis episodes",
		"report.pain_points": "Most frequent pain points",
		"report.pain_series": "Pain intensity over time",
		"report.location":    "Location",
		"report.occurrences": "Occurrences",
		"report.date":        "Date",
		"report.intensity":   "Intensity",
		"report.mean":        "Mean",
		"report.min":         "Min",
		"report.max":         "Max",
		"report.no_data":     "No records in this period.",
		"report.fetch_error": "This data could not be loaded.",
	},
}

// T returns the translated string for key in locale; falls back to Portuguese.
func T(locale, key string) string {
	if m, ok := translations[locale]; ok {
		if v, ok := m[key]; ok {
			return v
		}
	}
	if m, ok := translations["pt"]; ok {
		if v, ok := m[key]; ok {
			return v
		}
	}
	return key
}

package services

import (
	"log"
	"strconv"
	"strings"
	"time"
)

// IntensitySample is one (date, intensity) tuple extracted from a quiz.
type IntensitySample struct {
	Date      time.Time
	Intensity int
}

// LocationSample is one (date, location) tuple; multi-valued answers expand
// to one sample per location.
type LocationSample struct {
	Date     time.Time
	Location string
}

// QuizzesOfKind flattens the quizzes of the requested kind across all
// filtered days, preserving document order then submission order.
func QuizzesOfKind(days []DayRecord, kind QuizKind) []Quiz {
	var out []Quiz
	for _, d := range days {
		for _, q := range d.Quizzes {
			if q.Kind == kind {
				out = append(out, q)
			}
		}
	}
	return out
}

// CountQuizzes returns the number of quizzes of the given kind in the
// filtered set.
func CountQuizzes(days []DayRecord, kind QuizKind) int {
	n := 0
	for _, d := range days {
		for _, q := range d.Quizzes {
			if q.Kind == kind {
				n++
			}
		}
	}
	return n
}

// ExtractIntensities pulls the pain-intensity answer from every quiz of the
// given kind. Answers that fail the strict integer parse, or fall outside
// [0,10], are dropped rather than counted as zero.
func ExtractIntensities(days []DayRecord, kind QuizKind) []IntensitySample {
	idx := indexOfField(kind, FieldPainIntensity)
	if idx == "" {
		return nil
	}
	var out []IntensitySample
	for _, d := range days {
		for _, q := range d.Quizzes {
			if q.Kind != kind {
				continue
			}
			raw, ok := q.Answers[idx]
			if !ok {
				continue
			}
			v, ok := parseIntensity(raw)
			if !ok {
				log.Printf("extract: dropping non-numeric intensity %v (doc day %s)", raw, d.Date.Format("2006-01-02"))
				continue
			}
			out = append(out, IntensitySample{Date: d.Date, Intensity: v})
		}
	}
	return out
}

// ExtractLocations pulls pain locations from every quiz of the given kind,
// expanded one sample per location.
func ExtractLocations(days []DayRecord, kind QuizKind) []LocationSample {
	idx := indexOfField(kind, FieldPainLocations)
	if idx == "" {
		return nil
	}
	var out []LocationSample
	for _, d := range days {
		for _, q := range d.Quizzes {
			if q.Kind != kind {
				continue
			}
			for _, loc := range normalizeLocations(q.Answers[idx]) {
				out = append(out, LocationSample{Date: d.Date, Location: loc})
			}
		}
	}
	return out
}

// normalizeLocations accepts the two storage shapes of a multi-select
// answer (single string or list of strings), trims whitespace, and drops
// empties. A JSON or Firestore decode yields []any, so that shape is
// handled alongside []string.
func normalizeLocations(v any) []string {
	var raw []string
	switch t := v.(type) {
	case string:
		raw = []string{t}
	case []string:
		raw = t
	case []any:
		for _, e := range t {
			if s, ok := e.(string); ok {
				raw = append(raw, s)
			}
		}
	default:
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, s := range raw {
		s = strings.TrimSpace(s)
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// parseIntensity coerces the stored answer to an integer in [0,10].
// Numeric values must be integral; strings must parse as a plain integer.
func parseIntensity(v any) (int, bool) {
	var n int
	switch t := v.(type) {
	case int:
		n = t
	case int64:
		n = int(t)
	case float64:
		if t != float64(int(t)) {
			return 0, false
		}
		n = int(t)
	case string:
		parsed, err := strconv.Atoi(strings.TrimSpace(t))
		if err != nil {
			return 0, false
		}
		n = parsed
	default:
		return 0, false
	}
	if n < 0 || n > 10 {
		return 0, false
	}
	return n, true
}

package services

import (
	"strings"
	"time"
)

// ReportWindowDays is the trailing window every report aggregate is scoped
// to: [now-30d, now], inclusive on both ends.
const ReportWindowDays = 30

// OwnershipStats counts which membership test matched each retained
// document. Upstream writers were never consistent about provenance, so all
// three tests stay valid; these counters exist to learn, from real data,
// which of them can eventually be deprecated.
type OwnershipStats struct {
	ByIDPrefix  int `json:"by_id_prefix"`
	ByUsuarioID int `json:"by_usuario_id"`
	ByEmail     int `json:"by_email_field"`
	Skipped     int `json:"skipped_unparseable"`
}

// FilterUserDocuments selects the documents owned by email whose date falls
// inside the trailing report window ending at now.
func FilterUserDocuments(docs []RawDocument, email string, now time.Time) ([]DayRecord, OwnershipStats) {
	start := now.UTC().AddDate(0, 0, -ReportWindowDays)
	return FilterUserDocumentsWindow(docs, email, start, now)
}

// FilterUserDocumentsWindow is the arbitrary-window variant used by monthly
// reports. Both bounds are inclusive and compared on UTC calendar days.
// Documents with an unparseable date are skipped, never an error.
func FilterUserDocumentsWindow(docs []RawDocument, email string, start, end time.Time) ([]DayRecord, OwnershipStats) {
	var stats OwnershipStats
	startDay := utcDay(start)
	endDay := utcDay(end)
	out := make([]DayRecord, 0, len(docs))
	for _, d := range docs {
		owned := false
		switch {
		case strings.HasPrefix(d.ID, email+"_"):
			owned = true
			stats.ByIDPrefix++
		case d.UsuarioID == email:
			owned = true
			stats.ByUsuarioID++
		case d.Email == email:
			owned = true
			stats.ByEmail++
		}
		if !owned {
			continue
		}
		date, ok := CoerceDate(d.Date)
		if !ok {
			// Last resort: the ID convention embeds the date after the
			// final underscore.
			date, ok = dateFromID(d.ID)
		}
		if !ok {
			stats.Skipped++
			continue
		}
		day := utcDay(date)
		if day.Before(startDay) || day.After(endDay) {
			continue
		}
		out = append(out, DayRecord{Date: day, Quizzes: d.Quizzes})
	}
	return out, stats
}

// OwnedDocuments applies only the ownership test, no window. The privacy
// export and erasure paths need every document a user owns, however old.
func OwnedDocuments(docs []RawDocument, email string) []RawDocument {
	out := make([]RawDocument, 0, len(docs))
	for _, d := range docs {
		if strings.HasPrefix(d.ID, email+"_") || d.UsuarioID == email || d.Email == email {
			out = append(out, d)
		}
	}
	return out
}

// CoerceDate is the single conversion point for the data field. It accepts
// native timestamps and the date-string shapes observed in legacy documents.
// Store adapters share the same tolerance as the report filter.
func CoerceDate(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, !t.IsZero()
	case *time.Time:
		if t == nil {
			return time.Time{}, false
		}
		return *t, !t.IsZero()
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return time.Time{}, false
		}
		for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
			if parsed, err := time.Parse(layout, s); err == nil {
				return parsed, true
			}
		}
		return time.Time{}, false
	default:
		return time.Time{}, false
	}
}

func dateFromID(id string) (time.Time, bool) {
	i := strings.LastIndex(id, "_")
	if i < 0 || i == len(id)-1 {
		return time.Time{}, false
	}
	parsed, err := time.Parse("2006-01-02", id[i+1:])
	if err != nil {
		return time.Time{}, false
	}
	return parsed, true
}

func utcDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

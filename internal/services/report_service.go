package services

import (
	"errors"
	"log"
	"time"
)

type ErrorCode string

const (
	ErrorInvalid         ErrorCode = "invalid"
	ErrorForbidden       ErrorCode = "forbidden"
	ErrorNotFound        ErrorCode = "not_found"
	ErrorConflict        ErrorCode = "conflict"
	ErrorUnauthorized    ErrorCode = "unauthorized"
	ErrorTooManyRequests ErrorCode = "too_many_requests"
)

type ServiceError struct {
	Code    ErrorCode
	Message string
}

func (e *ServiceError) Error() string { return e.Message }

func NewInvalidError(msg string) error   { return &ServiceError{Code: ErrorInvalid, Message: msg} }
func NewForbiddenError(msg string) error { return &ServiceError{Code: ErrorForbidden, Message: msg} }
func NewNotFoundError(msg string) error  { return &ServiceError{Code: ErrorNotFound, Message: msg} }
func NewConflictError(msg string) error  { return &ServiceError{Code: ErrorConflict, Message: msg} }
func NewUnauthorizedError(msg string) error {
	return &ServiceError{Code: ErrorUnauthorized, Message: msg}
}

func NewTooManyRequestsError(msg string) error {
	return &ServiceError{Code: ErrorTooManyRequests, Message: msg}
}

func AsServiceError(err error) (*ServiceError, bool) {
	var se *ServiceError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}

// ReportStore abstracts the single read the report pipeline performs: the
// full unfiltered report_diario collection. There is no server-side
// predicate; ownership and window filtering happen in memory.
type ReportStore interface {
	ListReportDocuments() ([]RawDocument, error)
}

// MetricState is the explicit tri-state every aggregate carries. A blank
// chart caused by a fetch failure must be distinguishable from a window
// that truly holds no data.
type MetricState string

const (
	StateOK    MetricState = "ok"
	StateEmpty MetricState = "empty"
	StateError MetricState = "error"
)

type CrisisMetric struct {
	State MetricState `json:"state"`
	Count int         `json:"count"`
}

type PainPointsMetric struct {
	State  MetricState `json:"state"`
	Points []PainPoint `json:"points"`
}

type PainSeriesMetric struct {
	State  MetricState `json:"state"`
	Series PainSeries  `json:"series"`
}

// ReportSummary collects every aggregate for one user and window.
type ReportSummary struct {
	UserEmail   string           `json:"user_email"`
	WindowStart string           `json:"window_start"` // YYYY-MM-DD
	WindowEnd   string           `json:"window_end"`   // YYYY-MM-DD
	DaysWithData int             `json:"days_with_data"`
	Crisis      CrisisMetric     `json:"crisis"`
	PainPoints  PainPointsMetric `json:"pain_points"`
	PainSeries  PainSeriesMetric `json:"pain_series"`
	Ownership   OwnershipStats   `json:"ownership"`
}

type ReportService struct {
	store ReportStore
	now   func() time.Time
}

func NewReportService(store ReportStore) *ReportService {
	return &ReportService{
		store: store,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// Summary computes all aggregates over the trailing report window. The
// collection is fetched exactly once and every aggregate derives from that
// one in-memory result; the old per-metric full scans are gone.
func (s *ReportService) Summary(email string) (*ReportSummary, error) {
	if email == "" {
		return nil, NewInvalidError("email required")
	}
	now := s.now()
	return s.SummaryWindow(email, now.UTC().AddDate(0, 0, -ReportWindowDays), now)
}

// MonthlySummary computes the aggregates over the calendar month of ref.
func (s *ReportService) MonthlySummary(email string, ref time.Time) (*ReportSummary, error) {
	if email == "" {
		return nil, NewInvalidError("email required")
	}
	u := ref.UTC()
	start := time.Date(u.Year(), u.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)
	return s.SummaryWindow(email, start, end)
}

// SummaryWindow computes the aggregates over an explicit inclusive window.
// A fetch failure degrades every metric to StateError instead of surfacing
// an error: a blank report beats a crash for this audience, but the state
// field keeps the failure visible.
func (s *ReportService) SummaryWindow(email string, start, end time.Time) (*ReportSummary, error) {
	if email == "" {
		return nil, NewInvalidError("email required")
	}
	summary := &ReportSummary{
		UserEmail:   email,
		WindowStart: utcDay(start).Format("2006-01-02"),
		WindowEnd:   utcDay(end).Format("2006-01-02"),
	}

	docs, err := s.store.ListReportDocuments()
	if err != nil {
		log.Printf("report: list documents for %s: %v", email, err)
		summary.Crisis = CrisisMetric{State: StateError}
		summary.PainPoints = PainPointsMetric{State: StateError, Points: []PainPoint{}}
		summary.PainSeries = PainSeriesMetric{State: StateError, Series: PainSeries{Points: []SeriesPoint{}}}
		return summary, nil
	}

	days, stats := FilterUserDocumentsWindow(docs, email, start, end)
	summary.DaysWithData = len(days)
	summary.Ownership = stats

	crisis := CountQuizzes(days, KindEmergency)
	summary.Crisis = CrisisMetric{State: StateOK, Count: crisis}
	if crisis == 0 {
		summary.Crisis.State = StateEmpty
	}

	points := TopPainPoints(ExtractLocations(days, KindNight), MaxPainPoints)
	summary.PainPoints = PainPointsMetric{State: StateOK, Points: points}
	if len(points) == 0 {
		summary.PainPoints.State = StateEmpty
		summary.PainPoints.Points = []PainPoint{}
	}

	series := BuildPainSeries(ExtractIntensities(days, KindNight))
	summary.PainSeries = PainSeriesMetric{State: StateOK, Series: series}
	if !series.HasData {
		summary.PainSeries.State = StateEmpty
	}

	if stats.Skipped > 0 {
		log.Printf("report: %d documents for %s skipped (unparseable date)", stats.Skipped, email)
	}
	return summary, nil
}

// FilteredDays exposes the filtered document set for consumers that need
// raw per-day records (CSV export, privacy export) without re-implementing
// the ownership and window rules.
func (s *ReportService) FilteredDays(email string, start, end time.Time) ([]DayRecord, error) {
	if email == "" {
		return nil, NewInvalidError("email required")
	}
	docs, err := s.store.ListReportDocuments()
	if err != nil {
		return nil, err
	}
	days, _ := FilterUserDocumentsWindow(docs, email, start, end)
	return days, nil
}

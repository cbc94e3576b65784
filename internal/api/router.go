package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/dorlog/backend/internal/middleware"
	"github.com/dorlog/backend/internal/services"
	"github.com/dorlog/backend/internal/utils"
)

// Version is stamped at build time via -ldflags.
var Version = "dev"

type Router struct {
	store     Store
	auth      *services.AuthService
	diary     *services.DiaryService
	reports   *services.ReportService
	generator *services.ReportGenerator
	reminders *services.ReminderService
	privacy   *services.PrivacyService
	reportDir string
}

func NewRouter(store Store, reportDir string) *Router {
	reports := services.NewReportService(newReportStoreAdapter(store))
	return &Router{
		store:     store,
		auth:      services.NewAuthService(newAuthStoreAdapter(store), middleware.SignToken),
		diary:     services.NewDiaryService(newDiaryStoreAdapter(store)),
		reports:   reports,
		generator: services.NewReportGenerator(reports, reportDir),
		reminders: services.NewReminderService(newReminderStoreAdapter(store)),
		privacy:   services.NewPrivacyService(newPrivacyStoreAdapter(store)),
		reportDir: reportDir,
	}
}

func (rt *Router) Register(mux *http.ServeMux) {
	mux.HandleFunc("/health", rt.handleHealth)                                 // GET
	mux.HandleFunc("/version", rt.handleVersion)                               // GET
	mux.HandleFunc("/api/auth/register", rt.handleRegister)                    // POST
	mux.HandleFunc("/api/auth/login", rt.handleLogin)                          // POST
	mux.HandleFunc("/api/quizzes", rt.handleSubmitQuiz)                        // POST
	mux.HandleFunc("/api/reminders", rt.handleListReminders)                   // GET
	mux.HandleFunc("/api/reset-reminders", rt.handleResetReminders)            // POST
	mux.HandleFunc("/api/reports/summary", rt.handleSummary)                   // GET
	mux.HandleFunc("/api/generate-report", rt.handleGenerateReport)            // POST
	mux.HandleFunc("/api/generate-monthly-report", rt.handleGenerateMonthly)   // POST
	mux.HandleFunc("/api/export", rt.handleExportCSV)                          // GET
	mux.HandleFunc("/api/privacy/export", rt.handlePrivacyExport)              // GET
	mux.HandleFunc("/api/privacy/erase", rt.handlePrivacyErase)                // POST
	if rt.reportDir != "" {
		mux.Handle("/reports/", http.StripPrefix("/reports/", http.FileServer(http.Dir(rt.reportDir))))
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeServiceError maps the service error taxonomy onto HTTP statuses.
func writeServiceError(w http.ResponseWriter, err error) {
	if errors.Is(err, services.ErrUnknownQuizKind) {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": err.Error()})
		return
	}
	if se, ok := services.AsServiceError(err); ok {
		status := http.StatusInternalServerError
		switch se.Code {
		case services.ErrorInvalid:
			status = http.StatusBadRequest
		case services.ErrorUnauthorized:
			status = http.StatusUnauthorized
		case services.ErrorForbidden:
			status = http.StatusForbidden
		case services.ErrorNotFound:
			status = http.StatusNotFound
		case services.ErrorConflict:
			status = http.StatusConflict
		case services.ErrorTooManyRequests:
			status = http.StatusTooManyRequests
		}
		writeJSON(w, status, map[string]any{"error": se.Message, "code": string(se.Code)})
		return
	}
	log.Printf("api: internal error: %v", err)
	writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "internal error"})
}

// callerEmail resolves the authenticated user, rejecting the request when
// no valid token is attached.
func callerEmail(w http.ResponseWriter, r *http.Request) (string, bool) {
	email, ok := middleware.EmailFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"error": "unauthorized"})
		return "", false
	}
	return email, true
}

// GET /health
func (rt *Router) handleHealth(w http.ResponseWriter, r *http.Request) {
	locale := middleware.LocaleFromContext(r.Context())
	writeJSON(w, http.StatusOK, map[string]any{"status": utils.T(locale, "health.ok")})
}

// GET /version
func (rt *Router) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"version": Version})
}

// POST /api/auth/register
func (rt *Router) handleRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	res, err := rt.auth.Register(req.Email, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	// New accounts start with the two scheduled check-in slots.
	if err := rt.reminders.SeedDefaults(res.Email); err != nil {
		log.Printf("api: seed reminders for %s: %v", res.Email, err)
	}
	writeJSON(w, http.StatusOK, map[string]any{"token": res.Token, "userId": res.UserID, "email": res.Email})
}

// POST /api/auth/login
func (rt *Router) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	res, err := rt.auth.Login(req.Email, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"token": res.Token, "userId": res.UserID, "email": res.Email})
}

// POST /api/quizzes — { tipo, respostas }
func (rt *Router) handleSubmitQuiz(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	email, ok := callerEmail(w, r)
	if !ok {
		return
	}
	var req struct {
		Tipo      string         `json:"tipo"`
		Respostas map[string]any `json:"respostas"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	res, err := rt.diary.SubmitQuiz(services.SubmitQuizRequest{
		Email:   email,
		Kind:    services.QuizKind(req.Tipo),
		Answers: req.Respostas,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "entryId": res.EntryID, "quizId": res.QuizID, "quizCount": res.QuizCount})
}

// GET /api/reminders
func (rt *Router) handleListReminders(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	email, ok := callerEmail(w, r)
	if !ok {
		return
	}
	rs, err := rt.reminders.List(email)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"reminders": rs})
}

// POST /api/reset-reminders
func (rt *Router) handleResetReminders(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	email, ok := callerEmail(w, r)
	if !ok {
		return
	}
	n, err := rt.reminders.Reset(email)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "count": n})
}

// GET /api/reports/summary[?month=YYYY-MM]
func (rt *Router) handleSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	email, ok := callerEmail(w, r)
	if !ok {
		return
	}
	var summary *services.ReportSummary
	var err error
	if month := r.URL.Query().Get("month"); month != "" {
		ref, perr := time.Parse("2006-01", month)
		if perr != nil {
			writeJSON(w, http.StatusBadRequest, map[string]any{"error": "month must be YYYY-MM"})
			return
		}
		summary, err = rt.reports.MonthlySummary(email, ref)
	} else {
		summary, err = rt.reports.Summary(email)
	}
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// POST /api/generate-report
func (rt *Router) handleGenerateReport(w http.ResponseWriter, r *http.Request) {
	rt.generate(w, r, false)
}

// POST /api/generate-monthly-report
func (rt *Router) handleGenerateMonthly(w http.ResponseWriter, r *http.Request) {
	rt.generate(w, r, true)
}

func (rt *Router) generate(w http.ResponseWriter, r *http.Request, monthly bool) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	email, ok := callerEmail(w, r)
	if !ok {
		return
	}
	var req services.GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	// Legacy clients sent userId explicitly; it must still match the token.
	if u := strings.TrimSpace(req.UserID); u != "" && !strings.EqualFold(u, email) {
		writeJSON(w, http.StatusForbidden, map[string]any{"error": "forbidden"})
		return
	}
	req.UserID = email
	req.Monthly = monthly
	req.Locale = middleware.LocaleFromContext(r.Context())
	res, err := rt.generator.Generate(req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// GET /api/export[?month=YYYY-MM] — long-format CSV of every answer in the
// window.
func (rt *Router) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	email, ok := callerEmail(w, r)
	if !ok {
		return
	}
	now := time.Now().UTC()
	start, end := now.AddDate(0, 0, -services.ReportWindowDays), now
	if month := r.URL.Query().Get("month"); month != "" {
		ref, perr := time.Parse("2006-01", month)
		if perr != nil {
			writeJSON(w, http.StatusBadRequest, map[string]any{"error": "month must be YYYY-MM"})
			return
		}
		start = ref
		end = ref.AddDate(0, 1, -1)
	}
	days, err := rt.reports.FilteredDays(email, start, end)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	b, err := services.ExportAnswersCSV(services.BuildAnswerRows(days))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename=diary.csv")
	_, _ = w.Write(b)
}

// GET /api/privacy/export
func (rt *Router) handlePrivacyExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	email, ok := callerEmail(w, r)
	if !ok {
		return
	}
	export, err := rt.privacy.Export(email)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, export)
}

// POST /api/privacy/erase[?hard=true]
func (rt *Router) handlePrivacyErase(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	email, ok := callerEmail(w, r)
	if !ok {
		return
	}
	hard := r.URL.Query().Get("hard") == "true"
	res, err := rt.privacy.Erase(email, hard)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

package services

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DiaryStore abstracts persistence for the quiz submission path.
type DiaryStore interface {
	GetDiaryEntry(id string) (*DiaryEntry, error)
	PutDiaryEntry(e *DiaryEntry) error
}

// ErrUnknownQuizKind is returned when a submission carries a kind outside
// the three stored values.
var ErrUnknownQuizKind = errors.New("unknown quiz kind")

type SubmitQuizRequest struct {
	Email   string
	Kind    QuizKind
	Answers map[string]any
}

type SubmitQuizResult struct {
	EntryID   string
	QuizID    string
	QuizCount int // quizzes on the entry after this submission
}

// DiaryService hosts the quiz submission workflow: one entry per user per
// calendar day, quizzes appended in submission order.
type DiaryService struct {
	store DiaryStore
	now   func() time.Time
	idGen func() string
}

func NewDiaryService(store DiaryStore) *DiaryService {
	return &DiaryService{
		store: store,
		now:   func() time.Time { return time.Now().UTC() },
		idGen: func() string { return shortID(12) },
	}
}

// EntryID builds the composite document key "{email}_{YYYY-MM-DD}".
func EntryID(email string, day time.Time) string {
	return email + "_" + day.UTC().Format("2006-01-02")
}

// SubmitQuiz appends a quiz to today's diary entry, creating the entry on
// the first submission of the day. Answers are stored as submitted; the
// report extractor owns all coercion, so a malformed answer degrades a
// future report instead of rejecting the check-in.
func (s *DiaryService) SubmitQuiz(req SubmitQuizRequest) (*SubmitQuizResult, error) {
	email := strings.TrimSpace(req.Email)
	if email == "" {
		return nil, NewInvalidError("email required")
	}
	if !ValidKind(req.Kind) {
		return nil, ErrUnknownQuizKind
	}
	if len(req.Answers) == 0 {
		return nil, NewInvalidError("answers required")
	}

	now := s.now()
	day := utcDay(now)
	id := EntryID(email, day)

	entry, err := s.store.GetDiaryEntry(id)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		entry = &DiaryEntry{ID: id, Date: day, Email: email}
	}

	quiz := Quiz{
		ID:        s.idGen(),
		Kind:      req.Kind,
		Timestamp: now,
		Answers:   req.Answers,
	}
	entry.Quizzes = append(entry.Quizzes, quiz)

	if err := s.store.PutDiaryEntry(entry); err != nil {
		return nil, err
	}
	return &SubmitQuizResult{EntryID: id, QuizID: quiz.ID, QuizCount: len(entry.Quizzes)}, nil
}

func shortID(n int) string {
	s := strings.ReplaceAll(uuid.NewString(), "-", "")
	if n > 0 && n < len(s) {
		return s[:n]
	}
	return s
}

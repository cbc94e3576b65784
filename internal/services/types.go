package services

import "time"

// Quiz is a single completed check-in as seen by the report pipeline.
type Quiz struct {
	ID        string         `json:"id,omitempty"`
	Kind      QuizKind       `json:"kind"`
	Timestamp time.Time      `json:"timestamp"`
	Answers   map[string]any `json:"answers"`
}

// RawDocument is one report_diario document before ownership and window
// filtering. Date stays untyped until CoerceDate resolves it: legacy write
// paths stored native timestamps and plain date strings interchangeably.
type RawDocument struct {
	ID        string `json:"id"`
	Date      any    `json:"date,omitempty"`
	UsuarioID string `json:"usuarioId,omitempty"`
	Email     string `json:"email,omitempty"`
	Quizzes   []Quiz `json:"quizzes"`
}

// DayRecord is a filtered document: a user's quizzes for one calendar day.
type DayRecord struct {
	Date    time.Time
	Quizzes []Quiz
}

// DiaryEntry is the write-path view of a per-day document.
type DiaryEntry struct {
	ID      string
	Date    time.Time
	Email   string
	Quizzes []Quiz
}

type User struct {
	ID        string
	Email     string
	PassHash  []byte
	CreatedAt time.Time
}

type Reminder struct {
	ID        string    `json:"id"`
	UserEmail string    `json:"userEmail"`
	Kind      QuizKind  `json:"kind"`
	HourLocal int       `json:"hourLocal"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
}

type AuditEntry struct {
	Time   time.Time
	Actor  string
	Action string
	Target string
	Note   string
}

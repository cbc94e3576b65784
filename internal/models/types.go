package models

import "time"

// DiaryEntry is one document of the report_diario collection: all quizzes a
// user submitted on a single calendar day. The document ID is the composite
// key "{email}_{YYYY-MM-DD}".
//
// Data is declared as any because historical write paths stored it either as
// a native timestamp or as a plain date string; the report filter owns the
// coercion. UsuarioID and Email are legacy redundant owner fields kept for
// documents written before the ID convention settled.
type DiaryEntry struct {
	ID        string       `firestore:"-" json:"id"`
	Data      any          `firestore:"data" json:"data"`
	UsuarioID string       `firestore:"usuarioId,omitempty" json:"usuarioId,omitempty"`
	Email     string       `firestore:"email,omitempty" json:"email,omitempty"`
	Quizzes   []QuizRecord `firestore:"quizzes" json:"quizzes"`
}

// QuizRecord is a single completed check-in embedded in a DiaryEntry.
// Tipo is one of "matinal", "noturno", "emergencial". Respostas maps the
// question index ("1", "2", ...) to an answer whose shape depends on the
// question: number, string, or list of strings.
type QuizRecord struct {
	ID        string         `firestore:"id,omitempty" json:"id,omitempty"`
	Tipo      string         `firestore:"tipo" json:"tipo"`
	Timestamp time.Time      `firestore:"timestamp" json:"timestamp"`
	Respostas map[string]any `firestore:"respostas" json:"respostas"`
}

// User is an account that can log in and owns diary entries by email.
type User struct {
	ID        string    `firestore:"id" json:"id"`
	Email     string    `firestore:"email" json:"email"`
	PassHash  []byte    `firestore:"passHash" json:"pass_hash"`
	CreatedAt time.Time `firestore:"createdAt" json:"created_at"`
}

// Reminder is a daily quiz reminder slot for a user.
type Reminder struct {
	ID        string    `firestore:"id" json:"id"`
	UserEmail string    `firestore:"userEmail" json:"user_email"`
	Tipo      string    `firestore:"tipo" json:"tipo"`
	HourLocal int       `firestore:"hourLocal" json:"hour_local"`
	Active    bool      `firestore:"active" json:"active"`
	CreatedAt time.Time `firestore:"createdAt" json:"created_at"`
}

// AuditEntry records privacy-sensitive operations (exports, erasures).
type AuditEntry struct {
	Time   time.Time `firestore:"time" json:"time"`
	Actor  string    `firestore:"actor" json:"actor"`
	Action string    `firestore:"action" json:"action"`
	Target string    `firestore:"target" json:"target"`
	Note   string    `firestore:"note,omitempty" json:"note,omitempty"`
}

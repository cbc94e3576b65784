package db

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/dorlog/backend/internal/api"
	"github.com/dorlog/backend/internal/models"
)

type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(db *sql.DB) (*SQLiteStore, error) {
	if db == nil {
		return nil, errors.New("nil db")
	}
	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
	}
	for _, stmt := range pragmas {
		if _, err := db.Exec(stmt); err != nil {
			return nil, fmt.Errorf("apply sqlite pragma %q: %w", stmt, err)
		}
	}
	return &SQLiteStore{db: db}, nil
}

func NewStore(db *sql.DB) (api.Store, error) {
	return NewSQLiteStore(db)
}

func toNullString(s string) sql.NullString {
	if strings.TrimSpace(s) == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func boolToInt64(v bool) int64 {
	if v {
		return 1
	}
	return 0
}

func int64ToBool(v int64) bool { return v != 0 }

// dataToText flattens the untyped diary date into a TEXT column. A native
// timestamp becomes RFC3339 so the read path's coercion recovers it; legacy
// string shapes pass through untouched.
func dataToText(v any) sql.NullString {
	switch t := v.(type) {
	case nil:
		return sql.NullString{}
	case time.Time:
		if t.IsZero() {
			return sql.NullString{}
		}
		return sql.NullString{String: t.UTC().Format(time.RFC3339), Valid: true}
	case *time.Time:
		if t == nil || t.IsZero() {
			return sql.NullString{}
		}
		return sql.NullString{String: t.UTC().Format(time.RFC3339), Valid: true}
	case string:
		return toNullString(t)
	default:
		return sql.NullString{String: fmt.Sprintf("%v", t), Valid: true}
	}
}

func encodeQuizzes(qs []models.QuizRecord) (string, error) {
	if qs == nil {
		qs = []models.QuizRecord{}
	}
	b, err := json.Marshal(qs)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func decodeQuizzes(s string) []models.QuizRecord {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var out []models.QuizRecord
	if err := json.Unmarshal([]byte(s), &out); err != nil {
		log.Printf("sqlite store: decode quizzes: %v", err)
		return nil
	}
	return out
}

func (s *SQLiteStore) AddUser(u *models.User) error {
	_, err := s.db.Exec(
		`INSERT INTO users (id, email, pass_hash, created_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(email) DO UPDATE SET pass_hash = excluded.pass_hash`,
		u.ID, strings.ToLower(u.Email), u.PassHash, u.CreatedAt.UTC(),
	)
	return err
}

func (s *SQLiteStore) FindUserByEmail(email string) (*models.User, error) {
	row := s.db.QueryRow(
		`SELECT id, email, pass_hash, created_at FROM users WHERE email = ?`,
		strings.ToLower(email),
	)
	u := &models.User{}
	if err := row.Scan(&u.ID, &u.Email, &u.PassHash, &u.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return u, nil
}

func (s *SQLiteStore) DeleteUserByEmail(email string) (bool, error) {
	res, err := s.db.Exec(`DELETE FROM users WHERE email = ?`, strings.ToLower(email))
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *SQLiteStore) GetDiaryEntry(id string) (*models.DiaryEntry, error) {
	row := s.db.QueryRow(
		`SELECT id, data, usuario_id, email, quizzes FROM diary_entries WHERE id = ?`, id,
	)
	var (
		e       models.DiaryEntry
		data    sql.NullString
		usuario sql.NullString
		email   sql.NullString
		quizzes string
	)
	if err := row.Scan(&e.ID, &data, &usuario, &email, &quizzes); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if data.Valid {
		e.Data = data.String
	}
	e.UsuarioID = usuario.String
	e.Email = email.String
	e.Quizzes = decodeQuizzes(quizzes)
	return &e, nil
}

func (s *SQLiteStore) PutDiaryEntry(e *models.DiaryEntry) error {
	quizzes, err := encodeQuizzes(e.Quizzes)
	if err != nil {
		return fmt.Errorf("encode quizzes for %s: %w", e.ID, err)
	}
	_, err = s.db.Exec(
		`INSERT INTO diary_entries (id, data, usuario_id, email, quizzes) VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET data = excluded.data, usuario_id = excluded.usuario_id,
		 email = excluded.email, quizzes = excluded.quizzes`,
		e.ID, dataToText(e.Data), toNullString(e.UsuarioID), toNullString(e.Email), quizzes,
	)
	return err
}

func (s *SQLiteStore) ListDiaryEntries() ([]*models.DiaryEntry, error) {
	rows, err := s.db.Query(`SELECT id, data, usuario_id, email, quizzes FROM diary_entries ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*models.DiaryEntry
	for rows.Next() {
		var (
			e       models.DiaryEntry
			data    sql.NullString
			usuario sql.NullString
			email   sql.NullString
			quizzes string
		)
		if err := rows.Scan(&e.ID, &data, &usuario, &email, &quizzes); err != nil {
			return nil, err
		}
		if data.Valid {
			e.Data = data.String
		}
		e.UsuarioID = usuario.String
		e.Email = email.String
		e.Quizzes = decodeQuizzes(quizzes)
		out = append(out, &e)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) DeleteDiaryEntry(id string) error {
	_, err := s.db.Exec(`DELETE FROM diary_entries WHERE id = ?`, id)
	return err
}

func (s *SQLiteStore) AddReminder(r *models.Reminder) error {
	_, err := s.db.Exec(
		`INSERT INTO reminders (id, user_email, tipo, hour_local, active, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		r.ID, r.UserEmail, r.Tipo, r.HourLocal, boolToInt64(r.Active), r.CreatedAt.UTC(),
	)
	return err
}

func (s *SQLiteStore) ListReminders(email string) ([]*models.Reminder, error) {
	rows, err := s.db.Query(
		`SELECT id, user_email, tipo, hour_local, active, created_at FROM reminders
		 WHERE user_email = ? ORDER BY hour_local, id`, email,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*models.Reminder
	for rows.Next() {
		var (
			r      models.Reminder
			active int64
		)
		if err := rows.Scan(&r.ID, &r.UserEmail, &r.Tipo, &r.HourLocal, &active, &r.CreatedAt); err != nil {
			return nil, err
		}
		r.Active = int64ToBool(active)
		out = append(out, &r)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) ResetReminders(email string) (int, error) {
	res, err := s.db.Exec(`UPDATE reminders SET active = 1 WHERE user_email = ?`, email)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	return int(n), err
}

func (s *SQLiteStore) DeleteRemindersByUser(email string) (int, error) {
	res, err := s.db.Exec(`DELETE FROM reminders WHERE user_email = ?`, email)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	return int(n), err
}

func (s *SQLiteStore) AddAudit(e models.AuditEntry) {
	_, err := s.db.Exec(
		`INSERT INTO audit_log (time, actor, action, target, note) VALUES (?, ?, ?, ?, ?)`,
		e.Time.UTC(), e.Actor, e.Action, e.Target, toNullString(e.Note),
	)
	if err != nil {
		log.Printf("sqlite store: add audit: %v", err)
	}
}

func (s *SQLiteStore) ListAudit() []models.AuditEntry {
	rows, err := s.db.Query(`SELECT time, actor, action, target, note FROM audit_log ORDER BY time`)
	if err != nil {
		log.Printf("sqlite store: list audit: %v", err)
		return nil
	}
	defer rows.Close()
	var out []models.AuditEntry
	for rows.Next() {
		var (
			e    models.AuditEntry
			note sql.NullString
		)
		if err := rows.Scan(&e.Time, &e.Actor, &e.Action, &e.Target, &note); err != nil {
			log.Printf("sqlite store: scan audit: %v", err)
			return out
		}
		e.Note = note.String
		out = append(out, e)
	}
	return out
}

var _ api.Store = (*SQLiteStore)(nil)

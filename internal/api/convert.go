package api

import (
	"github.com/dorlog/backend/internal/models"
	"github.com/dorlog/backend/internal/services"
)

func convertRawDocument(e *models.DiaryEntry) services.RawDocument {
	return services.RawDocument{
		ID:        e.ID,
		Date:      e.Data,
		UsuarioID: e.UsuarioID,
		Email:     e.Email,
		Quizzes:   convertQuizzes(e.Quizzes),
	}
}

func convertQuizzes(rs []models.QuizRecord) []services.Quiz {
	out := make([]services.Quiz, 0, len(rs))
	for _, r := range rs {
		out = append(out, services.Quiz{
			ID:        r.ID,
			Kind:      services.QuizKind(r.Tipo),
			Timestamp: r.Timestamp,
			Answers:   r.Respostas,
		})
	}
	return out
}

func convertQuizRecords(qs []services.Quiz) []models.QuizRecord {
	out := make([]models.QuizRecord, 0, len(qs))
	for _, q := range qs {
		out = append(out, models.QuizRecord{
			ID:        q.ID,
			Tipo:      string(q.Kind),
			Timestamp: q.Timestamp,
			Respostas: q.Answers,
		})
	}
	return out
}

func convertUser(u *models.User) *services.User {
	if u == nil {
		return nil
	}
	return &services.User{ID: u.ID, Email: u.Email, PassHash: u.PassHash, CreatedAt: u.CreatedAt}
}

func convertReminder(r *models.Reminder) *services.Reminder {
	if r == nil {
		return nil
	}
	return &services.Reminder{
		ID:        r.ID,
		UserEmail: r.UserEmail,
		Kind:      services.QuizKind(r.Tipo),
		HourLocal: r.HourLocal,
		Active:    r.Active,
		CreatedAt: r.CreatedAt,
	}
}

func convertAudit(e services.AuditEntry) models.AuditEntry {
	return models.AuditEntry{Time: e.Time, Actor: e.Actor, Action: e.Action, Target: e.Target, Note: e.Note}
}

package api

import "github.com/dorlog/backend/internal/models"

// Store is the wide persistence surface the router wires services onto.
// Implementations: the in-memory store here, the SQLite store and the
// Firestore store in internal/db.
type Store interface {
	AddUser(u *models.User) error
	FindUserByEmail(email string) (*models.User, error)
	DeleteUserByEmail(email string) (bool, error)

	GetDiaryEntry(id string) (*models.DiaryEntry, error)
	PutDiaryEntry(e *models.DiaryEntry) error
	ListDiaryEntries() ([]*models.DiaryEntry, error)
	DeleteDiaryEntry(id string) error

	AddReminder(r *models.Reminder) error
	ListReminders(email string) ([]*models.Reminder, error)
	ResetReminders(email string) (int, error)
	DeleteRemindersByUser(email string) (int, error)

	AddAudit(e models.AuditEntry)
	ListAudit() []models.AuditEntry
}

var _ Store = (*memoryStore)(nil)

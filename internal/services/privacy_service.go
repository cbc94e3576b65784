package services

import (
	"strings"
	"time"
)

// PrivacyStore covers the data-rights operations: everything a user owns
// must be exportable and erasable by email.
type PrivacyStore interface {
	ListReportDocuments() ([]RawDocument, error)
	DeleteDiaryEntry(id string) error
	DeleteRemindersByUser(email string) (int, error)
	DeleteUserByEmail(email string) (bool, error)
	FindUserByEmail(email string) (*User, error)
	ListReminders(email string) ([]*Reminder, error)
	AddAudit(entry AuditEntry)
}

type PrivacyService struct {
	store PrivacyStore
	now   func() time.Time
}

func NewPrivacyService(store PrivacyStore) *PrivacyService {
	return &PrivacyService{
		store: store,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

type UserExport struct {
	User      map[string]any `json:"user"`
	Entries   []RawDocument  `json:"entries"`
	Reminders []*Reminder    `json:"reminders"`
}

type EraseResult struct {
	EntriesDeleted   int  `json:"entries_deleted"`
	RemindersDeleted int  `json:"reminders_deleted"`
	AccountDeleted   bool `json:"account_deleted"`
}

// Export gathers every record owned by the user, ignoring the report
// window: data rights cover the full history.
func (s *PrivacyService) Export(email string) (*UserExport, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, NewInvalidError("email required")
	}
	u, err := s.store.FindUserByEmail(email)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, NewNotFoundError("not found")
	}
	docs, err := s.store.ListReportDocuments()
	if err != nil {
		return nil, err
	}
	reminders, err := s.store.ListReminders(email)
	if err != nil {
		return nil, err
	}
	s.store.AddAudit(AuditEntry{Time: s.now(), Actor: email, Action: "privacy_export", Target: email})
	return &UserExport{
		User:      map[string]any{"id": u.ID, "email": u.Email, "created_at": u.CreatedAt},
		Entries:   OwnedDocuments(docs, email),
		Reminders: reminders,
	}, nil
}

// Erase deletes every diary entry and reminder the user owns; hard also
// removes the account itself.
func (s *PrivacyService) Erase(email string, hard bool) (*EraseResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, NewInvalidError("email required")
	}
	u, err := s.store.FindUserByEmail(email)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, NewNotFoundError("not found")
	}
	docs, err := s.store.ListReportDocuments()
	if err != nil {
		return nil, err
	}
	result := &EraseResult{}
	for _, d := range OwnedDocuments(docs, email) {
		if err := s.store.DeleteDiaryEntry(d.ID); err != nil {
			return nil, err
		}
		result.EntriesDeleted++
	}
	n, err := s.store.DeleteRemindersByUser(email)
	if err != nil {
		return nil, err
	}
	result.RemindersDeleted = n
	if hard {
		deleted, err := s.store.DeleteUserByEmail(email)
		if err != nil {
			return nil, err
		}
		result.AccountDeleted = deleted
	}
	action := "privacy_erase"
	if hard {
		action = "privacy_erase_hard"
	}
	s.store.AddAudit(AuditEntry{Time: s.now(), Actor: email, Action: action, Target: email})
	return result, nil
}

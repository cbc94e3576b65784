package services

import (
	"strings"
	"time"
)

type ReminderStore interface {
	AddReminder(r *Reminder) error
	ListReminders(email string) ([]*Reminder, error)
	ResetReminders(email string) (int, error)
	AddAudit(entry AuditEntry)
}

type ReminderService struct {
	store ReminderStore
	now   func() time.Time
}

func NewReminderService(store ReminderStore) *ReminderService {
	return &ReminderService{
		store: store,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// defaultReminders are the slots seeded for every new account: the two
// scheduled check-ins. Emergency quizzes are unscheduled by nature.
var defaultReminders = []struct {
	kind QuizKind
	hour int
}{
	{KindMorning, 8},
	{KindNight, 21},
}

// SeedDefaults creates the default reminder slots for a new user.
func (s *ReminderService) SeedDefaults(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return NewInvalidError("email required")
	}
	now := s.now()
	for _, d := range defaultReminders {
		r := &Reminder{
			ID:        shortID(8),
			UserEmail: email,
			Kind:      d.kind,
			HourLocal: d.hour,
			Active:    true,
			CreatedAt: now,
		}
		if err := s.store.AddReminder(r); err != nil {
			return err
		}
	}
	return nil
}

// List returns the user's reminder slots.
func (s *ReminderService) List(email string) ([]*Reminder, error) {
	if strings.TrimSpace(email) == "" {
		return nil, NewInvalidError("email required")
	}
	return s.store.ListReminders(email)
}

// Reset reactivates every reminder for the user and returns how many slots
// were touched. This is what the reset-reminders endpoint has always done:
// clients call it after notification permissions change.
func (s *ReminderService) Reset(email string) (int, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return 0, NewInvalidError("email required")
	}
	n, err := s.store.ResetReminders(email)
	if err != nil {
		return 0, err
	}
	s.store.AddAudit(AuditEntry{Time: s.now(), Actor: email, Action: "reset_reminders", Target: email})
	return n, nil
}

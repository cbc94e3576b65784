package api

import (
	"github.com/dorlog/backend/internal/models"
	"github.com/dorlog/backend/internal/services"
)

type reminderStoreAdapter struct {
	store Store
}

func newReminderStoreAdapter(store Store) services.ReminderStore {
	return &reminderStoreAdapter{store: store}
}

func (a *reminderStoreAdapter) AddReminder(r *services.Reminder) error {
	return a.store.AddReminder(&models.Reminder{
		ID:        r.ID,
		UserEmail: r.UserEmail,
		Tipo:      string(r.Kind),
		HourLocal: r.HourLocal,
		Active:    r.Active,
		CreatedAt: r.CreatedAt,
	})
}

func (a *reminderStoreAdapter) ListReminders(email string) ([]*services.Reminder, error) {
	rs, err := a.store.ListReminders(email)
	if err != nil {
		return nil, err
	}
	out := make([]*services.Reminder, 0, len(rs))
	for _, r := range rs {
		out = append(out, convertReminder(r))
	}
	return out, nil
}

func (a *reminderStoreAdapter) ResetReminders(email string) (int, error) {
	return a.store.ResetReminders(email)
}

func (a *reminderStoreAdapter) AddAudit(e services.AuditEntry) {
	a.store.AddAudit(convertAudit(e))
}

var _ services.ReminderStore = (*reminderStoreAdapter)(nil)

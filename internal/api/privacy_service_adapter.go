package api

import "github.com/dorlog/backend/internal/services"

// privacyStoreAdapter composes the report and reminder adapters with the
// deletion operations the data-rights endpoints need.
type privacyStoreAdapter struct {
	store     Store
	reports   services.ReportStore
	reminders services.ReminderStore
}

func newPrivacyStoreAdapter(store Store) services.PrivacyStore {
	return &privacyStoreAdapter{
		store:     store,
		reports:   newReportStoreAdapter(store),
		reminders: newReminderStoreAdapter(store),
	}
}

func (a *privacyStoreAdapter) ListReportDocuments() ([]services.RawDocument, error) {
	return a.reports.ListReportDocuments()
}

func (a *privacyStoreAdapter) DeleteDiaryEntry(id string) error {
	return a.store.DeleteDiaryEntry(id)
}

func (a *privacyStoreAdapter) DeleteRemindersByUser(email string) (int, error) {
	return a.store.DeleteRemindersByUser(email)
}

func (a *privacyStoreAdapter) DeleteUserByEmail(email string) (bool, error) {
	return a.store.DeleteUserByEmail(email)
}

func (a *privacyStoreAdapter) FindUserByEmail(email string) (*services.User, error) {
	u, err := a.store.FindUserByEmail(email)
	if err != nil {
		return nil, err
	}
	return convertUser(u), nil
}

func (a *privacyStoreAdapter) ListReminders(email string) ([]*services.Reminder, error) {
	return a.reminders.ListReminders(email)
}

func (a *privacyStoreAdapter) AddAudit(e services.AuditEntry) {
	a.store.AddAudit(convertAudit(e))
}

var _ services.PrivacyStore = (*privacyStoreAdapter)(nil)

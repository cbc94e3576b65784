package services

import (
	"testing"
	"time"
)

type stubPrivacyStore struct {
	docs      []RawDocument
	reminders []*Reminder
	users     map[string]*User
	deleted   []string
	audit     []AuditEntry
}

func newStubPrivacyStore() *stubPrivacyStore {
	return &stubPrivacyStore{users: map[string]*User{}}
}

func (s *stubPrivacyStore) ListReportDocuments() ([]RawDocument, error) { return s.docs, nil }

func (s *stubPrivacyStore) DeleteDiaryEntry(id string) error {
	s.deleted = append(s.deleted, id)
	return nil
}

func (s *stubPrivacyStore) DeleteRemindersByUser(email string) (int, error) {
	n := 0
	kept := s.reminders[:0]
	for _, r := range s.reminders {
		if r.UserEmail == email {
			n++
			continue
		}
		kept = append(kept, r)
	}
	s.reminders = kept
	return n, nil
}

func (s *stubPrivacyStore) DeleteUserByEmail(email string) (bool, error) {
	if _, ok := s.users[email]; !ok {
		return false, nil
	}
	delete(s.users, email)
	return true, nil
}

func (s *stubPrivacyStore) FindUserByEmail(email string) (*User, error) {
	if u, ok := s.users[email]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (s *stubPrivacyStore) ListReminders(email string) ([]*Reminder, error) {
	out := []*Reminder{}
	for _, r := range s.reminders {
		if r.UserEmail == email {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *stubPrivacyStore) AddAudit(entry AuditEntry) { s.audit = append(s.audit, entry) }

func privacyFixture() *stubPrivacyStore {
	store := newStubPrivacyStore()
	store.users["alice@x.com"] = &User{ID: "u1", Email: "alice@x.com", CreatedAt: time.Now().UTC()}
	store.docs = []RawDocument{
		{ID: "alice@x.com_2024-01-01"},
		{ID: "legacy-1", UsuarioID: "alice@x.com"},
		{ID: "bob@x.com_2024-01-01"},
	}
	store.reminders = []*Reminder{
		{ID: "r1", UserEmail: "alice@x.com", Kind: KindMorning},
		{ID: "r2", UserEmail: "bob@x.com", Kind: KindNight},
	}
	return store
}

func TestPrivacyExportFullHistory(t *testing.T) {
	store := privacyFixture()
	svc := NewPrivacyService(store)
	export, err := svc.Export("alice@x.com")
	if err != nil {
		t.Fatalf("Export error: %v", err)
	}
	if len(export.Entries) != 2 {
		t.Fatalf("expected both owned documents regardless of age, got %d", len(export.Entries))
	}
	if len(export.Reminders) != 1 {
		t.Fatalf("expected alice's reminder only, got %d", len(export.Reminders))
	}
	if len(store.audit) != 1 || store.audit[0].Action != "privacy_export" {
		t.Fatalf("expected audit entry, got %+v", store.audit)
	}
}

func TestPrivacyExportUnknownUser(t *testing.T) {
	svc := NewPrivacyService(newStubPrivacyStore())
	_, err := svc.Export("ghost@x.com")
	se, ok := AsServiceError(err)
	if !ok || se.Code != ErrorNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestPrivacyEraseSoft(t *testing.T) {
	store := privacyFixture()
	svc := NewPrivacyService(store)
	res, err := svc.Erase("alice@x.com", false)
	if err != nil {
		t.Fatalf("Erase error: %v", err)
	}
	if res.EntriesDeleted != 2 || res.RemindersDeleted != 1 || res.AccountDeleted {
		t.Fatalf("unexpected result: %+v", res)
	}
	if _, ok := store.users["alice@x.com"]; !ok {
		t.Fatalf("soft erase must keep the account")
	}
}

func TestPrivacyEraseHard(t *testing.T) {
	store := privacyFixture()
	svc := NewPrivacyService(store)
	res, err := svc.Erase("alice@x.com", true)
	if err != nil {
		t.Fatalf("Erase error: %v", err)
	}
	if !res.AccountDeleted {
		t.Fatalf("hard erase must delete the account")
	}
	if len(store.audit) != 1 || store.audit[0].Action != "privacy_erase_hard" {
		t.Fatalf("expected hard-erase audit entry, got %+v", store.audit)
	}
}

package services

import "testing"

type stubReminderStore struct {
	reminders []*Reminder
	audit     []AuditEntry
}

func (s *stubReminderStore) AddReminder(r *Reminder) error {
	s.reminders = append(s.reminders, r)
	return nil
}

func (s *stubReminderStore) ListReminders(email string) ([]*Reminder, error) {
	out := []*Reminder{}
	for _, r := range s.reminders {
		if r.UserEmail == email {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *stubReminderStore) ResetReminders(email string) (int, error) {
	n := 0
	for _, r := range s.reminders {
		if r.UserEmail == email {
			r.Active = true
			n++
		}
	}
	return n, nil
}

func (s *stubReminderStore) AddAudit(entry AuditEntry) { s.audit = append(s.audit, entry) }

func TestSeedDefaults(t *testing.T) {
	store := &stubReminderStore{}
	svc := NewReminderService(store)
	if err := svc.SeedDefaults("alice@x.com"); err != nil {
		t.Fatalf("SeedDefaults error: %v", err)
	}
	got, _ := svc.List("alice@x.com")
	if len(got) != 2 {
		t.Fatalf("expected morning and night slots, got %d", len(got))
	}
	if got[0].Kind != KindMorning || got[0].HourLocal != 8 {
		t.Errorf("first slot = %s@%d, want matinal@8", got[0].Kind, got[0].HourLocal)
	}
	if got[1].Kind != KindNight || got[1].HourLocal != 21 {
		t.Errorf("second slot = %s@%d, want noturno@21", got[1].Kind, got[1].HourLocal)
	}
	for _, r := range got {
		if !r.Active {
			t.Errorf("slot %s seeded inactive", r.ID)
		}
		if r.ID == "" {
			t.Errorf("slot missing id")
		}
	}
}

func TestResetReminders(t *testing.T) {
	store := &stubReminderStore{reminders: []*Reminder{
		{ID: "r1", UserEmail: "alice@x.com", Kind: KindMorning, Active: false},
		{ID: "r2", UserEmail: "alice@x.com", Kind: KindNight, Active: false},
		{ID: "r3", UserEmail: "bob@x.com", Kind: KindNight, Active: false},
	}}
	svc := NewReminderService(store)
	n, err := svc.Reset("alice@x.com")
	if err != nil {
		t.Fatalf("Reset error: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 reminders reset, got %d", n)
	}
	if store.reminders[2].Active {
		t.Errorf("reset leaked to another user")
	}
	if len(store.audit) != 1 || store.audit[0].Action != "reset_reminders" {
		t.Fatalf("expected reset audit entry, got %+v", store.audit)
	}
}

func TestReminderEmailRequired(t *testing.T) {
	svc := NewReminderService(&stubReminderStore{})
	if err := svc.SeedDefaults("  "); err == nil {
		t.Fatalf("expected error for blank email")
	}
	if _, err := svc.Reset(""); err == nil {
		t.Fatalf("expected error for blank email")
	}
}

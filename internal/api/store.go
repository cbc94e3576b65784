package api

import (
	"encoding/json"
	"log"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/dorlog/backend/internal/models"
)

// memoryStore is the default backend: everything in maps, optionally
// snapshotted to a JSON file so a dev server survives restarts. Production
// deployments select SQLite or Firestore instead.
type memoryStore struct {
	mu           sync.RWMutex
	entries      map[string]*models.DiaryEntry
	usersByEmail map[string]*models.User
	reminders    []*models.Reminder
	audit        []models.AuditEntry
	snapshotPath string
}

func NewMemoryStore() Store { return newMemoryStore() }

// NewMemoryStoreFromPath loads a JSON snapshot if one exists and persists
// every mutation back to it.
func NewMemoryStoreFromPath(path string) Store {
	s := newMemoryStore()
	s.snapshotPath = path
	s.load()
	return s
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		entries:      map[string]*models.DiaryEntry{},
		usersByEmail: map[string]*models.User{},
		reminders:    []*models.Reminder{},
		audit:        []models.AuditEntry{},
	}
}

type snapshot struct {
	Entries   map[string]*models.DiaryEntry `json:"entries"`
	Users     map[string]*models.User       `json:"users"`
	Reminders []*models.Reminder            `json:"reminders"`
	Audit     []models.AuditEntry           `json:"audit"`
}

func (s *memoryStore) load() {
	if s.snapshotPath == "" {
		return
	}
	b, err := os.ReadFile(s.snapshotPath)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("store: read snapshot %s: %v", s.snapshotPath, err)
		}
		return
	}
	var snap snapshot
	if err := json.Unmarshal(b, &snap); err != nil {
		log.Printf("store: decode snapshot %s: %v", s.snapshotPath, err)
		return
	}
	if snap.Entries != nil {
		s.entries = snap.Entries
		for id, e := range s.entries {
			e.ID = id
		}
	}
	if snap.Users != nil {
		s.usersByEmail = snap.Users
	}
	if snap.Reminders != nil {
		s.reminders = snap.Reminders
	}
	if snap.Audit != nil {
		s.audit = snap.Audit
	}
}

// persist writes the snapshot; callers hold the write lock.
func (s *memoryStore) persist() {
	if s.snapshotPath == "" {
		return
	}
	b, err := json.MarshalIndent(snapshot{
		Entries:   s.entries,
		Users:     s.usersByEmail,
		Reminders: s.reminders,
		Audit:     s.audit,
	}, "", "  ")
	if err != nil {
		log.Printf("store: encode snapshot: %v", err)
		return
	}
	if err := os.WriteFile(s.snapshotPath, b, 0o600); err != nil {
		log.Printf("store: write snapshot %s: %v", s.snapshotPath, err)
	}
}

func (s *memoryStore) AddUser(u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.usersByEmail[strings.ToLower(u.Email)] = u
	s.persist()
	return nil
}

func (s *memoryStore) FindUserByEmail(email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.usersByEmail[strings.ToLower(email)], nil
}

func (s *memoryStore) DeleteUserByEmail(email string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := strings.ToLower(email)
	if _, ok := s.usersByEmail[key]; !ok {
		return false, nil
	}
	delete(s.usersByEmail, key)
	s.persist()
	return true, nil
}

func (s *memoryStore) GetDiaryEntry(id string) (*models.DiaryEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.entries[id], nil
}

func (s *memoryStore) PutDiaryEntry(e *models.DiaryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[e.ID] = e
	s.persist()
	return nil
}

func (s *memoryStore) ListDiaryEntries() ([]*models.DiaryEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.DiaryEntry, 0, len(s.entries))
	for _, e := range s.entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *memoryStore) DeleteDiaryEntry(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, id)
	s.persist()
	return nil
}

func (s *memoryStore) AddReminder(r *models.Reminder) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reminders = append(s.reminders, r)
	s.persist()
	return nil
}

func (s *memoryStore) ListReminders(email string) ([]*models.Reminder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []*models.Reminder{}
	for _, r := range s.reminders {
		if strings.EqualFold(r.UserEmail, email) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *memoryStore) ResetReminders(email string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, r := range s.reminders {
		if strings.EqualFold(r.UserEmail, email) {
			r.Active = true
			n++
		}
	}
	if n > 0 {
		s.persist()
	}
	return n, nil
}

func (s *memoryStore) DeleteRemindersByUser(email string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	kept := make([]*models.Reminder, 0, len(s.reminders))
	for _, r := range s.reminders {
		if strings.EqualFold(r.UserEmail, email) {
			n++
			continue
		}
		kept = append(kept, r)
	}
	s.reminders = kept
	if n > 0 {
		s.persist()
	}
	return n, nil
}

func (s *memoryStore) AddAudit(e models.AuditEntry) {
	s.mu.Lock()
	s.audit = append(s.audit, e)
	s.persist()
	s.mu.Unlock()
}

func (s *memoryStore) ListAudit() []models.AuditEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.AuditEntry, len(s.audit))
	copy(out, s.audit)
	return out
}

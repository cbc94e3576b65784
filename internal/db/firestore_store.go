package db

import (
	"context"
	"errors"
	"log"
	"strings"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dorlog/backend/internal/api"
	"github.com/dorlog/backend/internal/models"
)

const (
	collDiary     = "report_diario"
	collUsers     = "users"
	collReminders = "reminders"
	collAudit     = "audit_log"
)

// FirestoreStore is the production backend. Documents in report_diario are
// keyed "{email}_{YYYY-MM-DD}"; users are keyed by lowercase email.
type FirestoreStore struct {
	client *firestore.Client
}

// NewFirestoreStore connects to the given project. credentialsFile may be
// empty, in which case application default credentials apply.
func NewFirestoreStore(ctx context.Context, projectID, credentialsFile string) (*FirestoreStore, error) {
	if projectID == "" {
		return nil, errors.New("firestore project id required")
	}
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	client, err := firestore.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, err
	}
	return &FirestoreStore{client: client}, nil
}

func (s *FirestoreStore) Close() error { return s.client.Close() }

// The Store interface carries no context; every call is a short independent
// operation, so background context is fine.
func contextBg() context.Context { return context.Background() }

func isNotFound(err error) bool {
	return status.Code(err) == codes.NotFound
}

func (s *FirestoreStore) AddUser(u *models.User) error {
	_, err := s.client.Collection(collUsers).Doc(strings.ToLower(u.Email)).Set(contextBg(), u)
	return err
}

func (s *FirestoreStore) FindUserByEmail(email string) (*models.User, error) {
	doc, err := s.client.Collection(collUsers).Doc(strings.ToLower(email)).Get(contextBg())
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	u := &models.User{}
	if err := doc.DataTo(u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *FirestoreStore) DeleteUserByEmail(email string) (bool, error) {
	ref := s.client.Collection(collUsers).Doc(strings.ToLower(email))
	if _, err := ref.Get(contextBg()); err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, err
	}
	if _, err := ref.Delete(contextBg()); err != nil {
		return false, err
	}
	return true, nil
}

func (s *FirestoreStore) GetDiaryEntry(id string) (*models.DiaryEntry, error) {
	doc, err := s.client.Collection(collDiary).Doc(id).Get(contextBg())
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	e := &models.DiaryEntry{}
	if err := doc.DataTo(e); err != nil {
		return nil, err
	}
	e.ID = doc.Ref.ID
	return e, nil
}

func (s *FirestoreStore) PutDiaryEntry(e *models.DiaryEntry) error {
	_, err := s.client.Collection(collDiary).Doc(e.ID).Set(contextBg(), e)
	return err
}

// ListDiaryEntries fetches the whole collection. Ownership and window
// filtering happen in memory, so there is no server-side predicate here.
func (s *FirestoreStore) ListDiaryEntries() ([]*models.DiaryEntry, error) {
	docs, err := s.client.Collection(collDiary).Documents(contextBg()).GetAll()
	if err != nil {
		return nil, err
	}
	out := make([]*models.DiaryEntry, 0, len(docs))
	for _, doc := range docs {
		e := &models.DiaryEntry{}
		if err := doc.DataTo(e); err != nil {
			// One malformed document must not sink the whole report.
			log.Printf("firestore store: decode %s: %v", doc.Ref.ID, err)
			continue
		}
		e.ID = doc.Ref.ID
		out = append(out, e)
	}
	return out, nil
}

func (s *FirestoreStore) DeleteDiaryEntry(id string) error {
	_, err := s.client.Collection(collDiary).Doc(id).Delete(contextBg())
	return err
}

func (s *FirestoreStore) AddReminder(r *models.Reminder) error {
	_, err := s.client.Collection(collReminders).Doc(r.ID).Set(contextBg(), r)
	return err
}

func (s *FirestoreStore) ListReminders(email string) ([]*models.Reminder, error) {
	docs, err := s.client.Collection(collReminders).
		Where("userEmail", "==", email).
		Documents(contextBg()).GetAll()
	if err != nil {
		return nil, err
	}
	out := make([]*models.Reminder, 0, len(docs))
	for _, doc := range docs {
		r := &models.Reminder{}
		if err := doc.DataTo(r); err != nil {
			log.Printf("firestore store: decode reminder %s: %v", doc.Ref.ID, err)
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (s *FirestoreStore) ResetReminders(email string) (int, error) {
	docs, err := s.client.Collection(collReminders).
		Where("userEmail", "==", email).
		Documents(contextBg()).GetAll()
	if err != nil {
		return 0, err
	}
	n := 0
	for _, doc := range docs {
		if _, err := doc.Ref.Update(contextBg(), []firestore.Update{{Path: "active", Value: true}}); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}

func (s *FirestoreStore) DeleteRemindersByUser(email string) (int, error) {
	docs, err := s.client.Collection(collReminders).
		Where("userEmail", "==", email).
		Documents(contextBg()).GetAll()
	if err != nil {
		return 0, err
	}
	n := 0
	for _, doc := range docs {
		if _, err := doc.Ref.Delete(contextBg()); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}

func (s *FirestoreStore) AddAudit(e models.AuditEntry) {
	if _, _, err := s.client.Collection(collAudit).Add(contextBg(), e); err != nil {
		log.Printf("firestore store: add audit: %v", err)
	}
}

func (s *FirestoreStore) ListAudit() []models.AuditEntry {
	docs, err := s.client.Collection(collAudit).OrderBy("time", firestore.Asc).Documents(contextBg()).GetAll()
	if err != nil {
		log.Printf("firestore store: list audit: %v", err)
		return nil
	}
	out := make([]models.AuditEntry, 0, len(docs))
	for _, doc := range docs {
		var e models.AuditEntry
		if err := doc.DataTo(&e); err != nil {
			log.Printf("firestore store: decode audit %s: %v", doc.Ref.ID, err)
			continue
		}
		out = append(out, e)
	}
	return out
}

var _ api.Store = (*FirestoreStore)(nil)

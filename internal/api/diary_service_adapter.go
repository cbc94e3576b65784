package api

import (
	"github.com/dorlog/backend/internal/models"
	"github.com/dorlog/backend/internal/services"
)

type diaryStoreAdapter struct {
	store Store
}

func newDiaryStoreAdapter(store Store) services.DiaryStore {
	return &diaryStoreAdapter{store: store}
}

func (a *diaryStoreAdapter) GetDiaryEntry(id string) (*services.DiaryEntry, error) {
	e, err := a.store.GetDiaryEntry(id)
	if err != nil || e == nil {
		return nil, err
	}
	raw := convertRawDocument(e)
	out := &services.DiaryEntry{ID: e.ID, Email: e.Email, Quizzes: raw.Quizzes}
	if d, ok := services.CoerceDate(e.Data); ok {
		out.Date = d
	}
	return out, nil
}

func (a *diaryStoreAdapter) PutDiaryEntry(e *services.DiaryEntry) error {
	return a.store.PutDiaryEntry(&models.DiaryEntry{
		ID:      e.ID,
		Data:    e.Date,
		Email:   e.Email,
		Quizzes: convertQuizRecords(e.Quizzes),
	})
}

var _ services.DiaryStore = (*diaryStoreAdapter)(nil)

package api

import (
	"github.com/dorlog/backend/internal/models"
	"github.com/dorlog/backend/internal/services"
)

type authStoreAdapter struct {
	store Store
}

func newAuthStoreAdapter(store Store) services.AuthStore {
	return &authStoreAdapter{store: store}
}

func (a *authStoreAdapter) FindUserByEmail(email string) (*services.User, error) {
	u, err := a.store.FindUserByEmail(email)
	if err != nil {
		return nil, err
	}
	return convertUser(u), nil
}

func (a *authStoreAdapter) AddUser(u *services.User) error {
	return a.store.AddUser(&models.User{ID: u.ID, Email: u.Email, PassHash: u.PassHash, CreatedAt: u.CreatedAt})
}

var _ services.AuthStore = (*authStoreAdapter)(nil)

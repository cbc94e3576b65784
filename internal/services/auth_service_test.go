package services

import (
	"testing"
	"time"
)

type stubAuthStore struct {
	users map[string]*User
}

func newStubAuthStore() *stubAuthStore {
	return &stubAuthStore{users: map[string]*User{}}
}

func (s *stubAuthStore) FindUserByEmail(email string) (*User, error) {
	if u, ok := s.users[email]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (s *stubAuthStore) AddUser(u *User) error {
	cp := *u
	s.users[u.Email] = &cp
	return nil
}

func testSigner(uid, email string, ttl time.Duration) (string, error) {
	return "token-" + uid, nil
}

func TestRegisterAndLogin(t *testing.T) {
	store := newStubAuthStore()
	svc := NewAuthService(store, testSigner)

	reg, err := svc.Register("Alice@X.com", "secret")
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}
	if reg.Token == "" || reg.Email != "alice@x.com" {
		t.Fatalf("unexpected register result: %+v", reg)
	}

	login, err := svc.Login("alice@x.com", "secret")
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}
	if login.UserID != reg.UserID {
		t.Fatalf("login must resolve the registered user")
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := NewAuthService(newStubAuthStore(), testSigner)
	if _, err := svc.Register("alice@x.com", "secret"); err != nil {
		t.Fatalf("first register: %v", err)
	}
	_, err := svc.Register("alice@x.com", "other")
	se, ok := AsServiceError(err)
	if !ok || se.Code != ErrorConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc := NewAuthService(newStubAuthStore(), testSigner)
	if _, err := svc.Register("alice@x.com", "secret"); err != nil {
		t.Fatalf("register: %v", err)
	}
	_, err := svc.Login("alice@x.com", "wrong")
	se, ok := AsServiceError(err)
	if !ok || se.Code != ErrorUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestLoginUnknownUser(t *testing.T) {
	svc := NewAuthService(newStubAuthStore(), testSigner)
	if _, err := svc.Login("ghost@x.com", "secret"); err == nil {
		t.Fatalf("expected unauthorized error")
	}
}

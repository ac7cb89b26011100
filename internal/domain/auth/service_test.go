package auth

import (
	"context"
	"errors"
	"testing"
	"time"
)

type fakeOperatorStore struct {
	operators map[string]Operator
	lastLogin []string
	findErr   error
}

func (f *fakeOperatorStore) FindActiveOperatorByEmail(_ context.Context, email string) (Operator, error) {
	if f.findErr != nil {
		return Operator{}, f.findErr
	}
	op, ok := f.operators[email]
	if !ok {
		return Operator{}, ErrOperatorNotFound
	}
	return op, nil
}

func (f *fakeOperatorStore) UpdateLastLogin(_ context.Context, operatorID string) error {
	f.lastLogin = append(f.lastLogin, operatorID)
	return nil
}

func newFakeOperatorStore(t *testing.T) *fakeOperatorStore {
	t.Helper()
	hash, err := HashPassword("ChangeMe123!")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	return &fakeOperatorStore{operators: map[string]Operator{
		"hr@example.com": {ID: "op-1", Email: "hr@example.com", PasswordHash: hash, Role: RoleHR},
	}}
}

func TestLoginIssuesToken(t *testing.T) {
	store := newFakeOperatorStore(t)
	svc := NewService(store, "secret", time.Hour)

	token, _, err := svc.Login(context.Background(), " hr@example.com ", "ChangeMe123!")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	claims, err := ParseToken("secret", token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.OperatorID != "op-1" || claims.Role != RoleHR {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if len(store.lastLogin) != 1 || store.lastLogin[0] != "op-1" {
		t.Fatalf("expected last login update, got %v", store.lastLogin)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc := NewService(newFakeOperatorStore(t), "secret", time.Hour)

	cases := map[string][2]string{
		"wrong password": {"hr@example.com", "nope"},
		"unknown email":  {"who@example.com", "ChangeMe123!"},
		"empty":          {"", ""},
	}
	for name, creds := range cases {
		t.Run(name, func(t *testing.T) {
			if _, _, err := svc.Login(context.Background(), creds[0], creds[1]); !errors.Is(err, ErrInvalidCredentials) {
				t.Fatalf("expected ErrInvalidCredentials, got %v", err)
			}
		})
	}
}

func TestLoginSurfacesStoreFailure(t *testing.T) {
	store := newFakeOperatorStore(t)
	store.findErr = errors.New("db down")
	svc := NewService(store, "secret", time.Hour)

	_, _, err := svc.Login(context.Background(), "hr@example.com", "ChangeMe123!")
	if err == nil || errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected store error, got %v", err)
	}
}

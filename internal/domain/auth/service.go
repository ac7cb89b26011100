package auth

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type OperatorStore interface {
	FindActiveOperatorByEmail(ctx context.Context, email string) (Operator, error)
	UpdateLastLogin(ctx context.Context, operatorID string) error
}

type Service struct {
	Store  OperatorStore
	Secret string
	TTL    time.Duration
}

func NewService(store OperatorStore, secret string, ttl time.Duration) *Service {
	return &Service{Store: store, Secret: secret, TTL: ttl}
}

// Login checks the operator's password and issues a signed token.
func (s *Service) Login(ctx context.Context, email, password string) (string, time.Time, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return "", time.Time{}, ErrInvalidCredentials
	}
	op, err := s.Store.FindActiveOperatorByEmail(ctx, email)
	if errors.Is(err, ErrOperatorNotFound) {
		return "", time.Time{}, ErrInvalidCredentials
	}
	if err != nil {
		return "", time.Time{}, err
	}
	if err := CheckPassword(op.PasswordHash, password); err != nil {
		return "", time.Time{}, ErrInvalidCredentials
	}

	token, expires, err := GenerateToken(s.Secret, Claims{OperatorID: op.ID, Email: op.Email, Role: op.Role}, s.TTL)
	if err != nil {
		return "", time.Time{}, err
	}
	if err := s.Store.UpdateLastLogin(ctx, op.ID); err != nil {
		slog.Warn("update last_login failed", "operatorId", op.ID, "err", err)
	}
	return token, expires, nil
}

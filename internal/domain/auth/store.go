package auth

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const OperatorStatusActive = "active"

var ErrOperatorNotFound = errors.New("operator not found")

type Operator struct {
	ID           string
	Email        string
	PasswordHash string
	Role         string
}

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) FindActiveOperatorByEmail(ctx context.Context, email string) (Operator, error) {
	var out Operator
	err := s.DB.QueryRow(ctx, `
    SELECT id::text, email, password_hash, role
    FROM operators
    WHERE lower(email) = lower($1) AND status = $2
  `, email, OperatorStatusActive).Scan(&out.ID, &out.Email, &out.PasswordHash, &out.Role)
	if errors.Is(err, pgx.ErrNoRows) {
		return Operator{}, ErrOperatorNotFound
	}
	return out, err
}

func (s *Store) UpdateLastLogin(ctx context.Context, operatorID string) error {
	_, err := s.DB.Exec(ctx, "UPDATE operators SET last_login_at = now() WHERE id::text = $1", operatorID)
	return err
}

// EnsureOperator inserts the operator unless one with that email exists.
func (s *Store) EnsureOperator(ctx context.Context, email, passwordHash, role string) error {
	_, err := s.DB.Exec(ctx, `
    INSERT INTO operators (email, password_hash, role)
    VALUES ($1, $2, $3)
    ON CONFLICT (email) DO NOTHING
  `, email, passwordHash, role)
	return err
}

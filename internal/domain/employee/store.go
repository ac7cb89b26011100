package employee

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	cryptoutil "hrform/internal/platform/crypto"
)

// Store keeps the employees collection in Postgres. Bank account and FNPF
// numbers go to the *_enc columns when an encryption key is configured.
type Store struct {
	DB     *pgxpool.Pool
	Crypto *cryptoutil.Service
}

func NewStore(db *pgxpool.Pool, crypto *cryptoutil.Service) *Store {
	return &Store{DB: db, Crypto: crypto}
}

const selectEmployee = `
    SELECT id::text, name, position, hourly_wage,
           COALESCE(fnpf_no, ''), fnpf_no_enc,
           bank_code,
           COALESCE(bank_account_number, ''), bank_account_enc,
           payment_method, branch
    FROM employees`

func scanEmployee(row pgx.Row, crypto *cryptoutil.Service) (Employee, error) {
	var emp Employee
	var fnpfEnc, bankEnc []byte
	var fnpfPlain, bankPlain string
	if err := row.Scan(
		&emp.ID, &emp.Name, &emp.Position, &emp.HourlyWage,
		&fnpfPlain, &fnpfEnc,
		&emp.BankCode,
		&bankPlain, &bankEnc,
		&emp.PaymentMethod, &emp.Branch,
	); err != nil {
		return Employee{}, err
	}
	emp.FNPFNo = decryptStringFallback(crypto, fnpfEnc, fnpfPlain)
	emp.BankAccountNumber = decryptStringFallback(crypto, bankEnc, bankPlain)
	return emp, nil
}

func (s *Store) List(ctx context.Context) ([]Employee, error) {
	rows, err := s.DB.Query(ctx, selectEmployee+`
    ORDER BY created_at, id
  `)
	if err != nil {
		return nil, WrapStoreError("list", err)
	}
	defer rows.Close()

	out := make([]Employee, 0)
	for rows.Next() {
		emp, err := scanEmployee(rows, s.Crypto)
		if err != nil {
			return nil, WrapStoreError("list", err)
		}
		out = append(out, emp)
	}
	if err := rows.Err(); err != nil {
		return nil, WrapStoreError("list", err)
	}
	return out, nil
}

func (s *Store) Get(ctx context.Context, id string) (*Employee, error) {
	emp, err := scanEmployee(s.DB.QueryRow(ctx, selectEmployee+`
    WHERE id::text = $1
  `, id), s.Crypto)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, WrapStoreError("get", ErrNotFound)
	}
	if err != nil {
		return nil, WrapStoreError("get", err)
	}
	return &emp, nil
}

func (s *Store) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM employees").Scan(&count); err != nil {
		return 0, WrapStoreError("count", err)
	}
	return count, nil
}

// Insert stores a new employee and returns the identifier the database
// assigned to it.
func (s *Store) Insert(ctx context.Context, emp Employee) (string, error) {
	if strings.TrimSpace(emp.ID) != "" {
		return "", WrapStoreError("create", ErrIDAssigned)
	}
	fnpfPlain, fnpfEnc, bankPlain, bankEnc, err := s.sealSensitive(emp)
	if err != nil {
		return "", WrapStoreError("create", err)
	}
	var id string
	err = s.DB.QueryRow(ctx, `
    INSERT INTO employees (name, position, hourly_wage, fnpf_no, fnpf_no_enc, bank_code,
      bank_account_number, bank_account_enc, payment_method, branch)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
    RETURNING id::text
  `,
		emp.Name, emp.Position, emp.HourlyWage, fnpfPlain, fnpfEnc, emp.BankCode,
		bankPlain, bankEnc, emp.PaymentMethod, emp.Branch,
	).Scan(&id)
	if err != nil {
		return "", classify("create", err)
	}
	return id, nil
}

func (s *Store) Create(ctx context.Context, emp Employee) error {
	_, err := s.Insert(ctx, emp)
	return err
}

// Update overwrites every field of the employee with emp.ID.
func (s *Store) Update(ctx context.Context, emp Employee) error {
	if strings.TrimSpace(emp.ID) == "" {
		return WrapStoreError("update", ErrIDRequired)
	}
	fnpfPlain, fnpfEnc, bankPlain, bankEnc, err := s.sealSensitive(emp)
	if err != nil {
		return WrapStoreError("update", err)
	}
	cmd, err := s.DB.Exec(ctx, `
    UPDATE employees
    SET name = $1,
        position = $2,
        hourly_wage = $3,
        fnpf_no = $4,
        fnpf_no_enc = $5,
        bank_code = $6,
        bank_account_number = $7,
        bank_account_enc = $8,
        payment_method = $9,
        branch = $10,
        updated_at = now()
    WHERE id::text = $11
  `,
		emp.Name, emp.Position, emp.HourlyWage, fnpfPlain, fnpfEnc, emp.BankCode,
		bankPlain, bankEnc, emp.PaymentMethod, emp.Branch, emp.ID,
	)
	if err != nil {
		return classify("update", err)
	}
	if cmd.RowsAffected() == 0 {
		return WrapStoreError("update", ErrNotFound)
	}
	return nil
}

const pgCheckViolation = "23514"

// classify turns a check constraint failure into ErrRejected so callers can
// tell a bad record from a broken store.
func classify(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgCheckViolation {
		return WrapStoreError(op, fmt.Errorf("%w: %s", ErrRejected, pgErr.ConstraintName))
	}
	return WrapStoreError(op, err)
}

func (s *Store) sealSensitive(emp Employee) (fnpfPlain any, fnpfEnc []byte, bankPlain any, bankEnc []byte, err error) {
	fnpfPlain, bankPlain = emp.FNPFNo, emp.BankAccountNumber
	if s.Crypto == nil || !s.Crypto.Configured() {
		return fnpfPlain, nil, bankPlain, nil, nil
	}
	if fnpfEnc, err = s.Crypto.EncryptString(emp.FNPFNo); err != nil {
		return nil, nil, nil, nil, err
	}
	if bankEnc, err = s.Crypto.EncryptString(emp.BankAccountNumber); err != nil {
		return nil, nil, nil, nil, err
	}
	return nil, fnpfEnc, nil, bankEnc, nil
}

func decryptStringFallback(crypto *cryptoutil.Service, encrypted []byte, plain string) string {
	if crypto == nil || !crypto.Configured() || len(encrypted) == 0 {
		return plain
	}
	decrypted, err := crypto.DecryptString(encrypted)
	if err != nil {
		return plain
	}
	return decrypted
}

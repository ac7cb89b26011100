package db

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"hrform/internal/domain/auth"
	"hrform/internal/domain/employee"
	"hrform/internal/platform/config"
)

type EmployeeSeeder interface {
	Count(ctx context.Context) (int, error)
	Create(ctx context.Context, emp employee.Employee) error
}

type OperatorSeeder interface {
	EnsureOperator(ctx context.Context, email, passwordHash, role string) error
}

type seedFile struct {
	Employees []employee.Employee `yaml:"employees"`
}

func Seed(ctx context.Context, cfg config.Config, employees EmployeeSeeder, operators OperatorSeeder) error {
	if err := ensureAdminOperator(ctx, operators, cfg.SeedAdminEmail, cfg.SeedAdminPassword); err != nil {
		return err
	}
	if cfg.SeedEmployeesFile == "" {
		return nil
	}
	records, err := LoadEmployeesFile(cfg.SeedEmployeesFile)
	if err != nil {
		return err
	}
	return seedEmployees(ctx, employees, records)
}

func ensureAdminOperator(ctx context.Context, operators OperatorSeeder, email, password string) error {
	if strings.TrimSpace(email) == "" || strings.TrimSpace(password) == "" {
		return nil
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	return operators.EnsureOperator(ctx, strings.TrimSpace(email), hash, auth.RoleHR)
}

// LoadEmployeesFile reads a YAML document with a top level employees list.
func LoadEmployeesFile(path string) ([]employee.Employee, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("seed employees: %w", err)
	}
	var doc seedFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("seed employees: parse %s: %w", path, err)
	}
	return doc.Employees, nil
}

// seedEmployees only fills an empty collection.
func seedEmployees(ctx context.Context, store EmployeeSeeder, records []employee.Employee) error {
	count, err := store.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	for i, record := range records {
		draft := record.Draft()
		if err := draft.Validate(); err != nil {
			slog.Warn("seed employee skipped", "index", i, "name", record.Name, "err", err)
			continue
		}
		if err := store.Create(ctx, draft.WithID("")); err != nil {
			return fmt.Errorf("seed employee %q: %w", record.Name, err)
		}
	}
	return nil
}

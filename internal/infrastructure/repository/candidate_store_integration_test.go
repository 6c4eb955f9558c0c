package repository_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	app "github.com/talentbase/candidate-import/internal/application/candidate"
	domain "github.com/talentbase/candidate-import/internal/domain/candidate"
	"github.com/talentbase/candidate-import/internal/infrastructure/repository"
)

const candidatesSchema = `
    CREATE TABLE IF NOT EXISTS candidates (
      id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
      email VARCHAR(320) NOT NULL UNIQUE,
      full_name VARCHAR(200) NOT NULL DEFAULT '',
      cpf VARCHAR(14) NOT NULL DEFAULT '',
      linkedin VARCHAR(500) NOT NULL DEFAULT '',
      zip_code VARCHAR(20) NOT NULL DEFAULT '',
      city VARCHAR(100) NOT NULL DEFAULT '',
      accepts_pj BOOLEAN NOT NULL DEFAULT FALSE,
      contract_signed BOOLEAN NOT NULL DEFAULT FALSE,
      is_pcd BOOLEAN NOT NULL DEFAULT FALSE,
      has_drivers_license BOOLEAN NOT NULL DEFAULT FALSE,
      has_vehicle BOOLEAN NOT NULL DEFAULT FALSE,
      minimum_salary NUMERIC(12,2),
      interview_date DATE,
      languages JSONB NOT NULL DEFAULT '[]',
      positions_of_interest JSONB NOT NULL DEFAULT '[]',
      tools_software JSONB NOT NULL DEFAULT '[]',
      solutions_sold JSONB NOT NULL DEFAULT '[]',
      departments_sold_to JSONB NOT NULL DEFAULT '[]',
      relocation_availability VARCHAR(100) NOT NULL DEFAULT '',
      travel_availability VARCHAR(100) NOT NULL DEFAULT '',
      academic_degree VARCHAR(200) NOT NULL DEFAULT '',
      work_model VARCHAR(100) NOT NULL DEFAULT '',
      salary_notes TEXT NOT NULL DEFAULT '',
      active_prospecting_experience TEXT NOT NULL DEFAULT '',
      inbound_qualification_experience TEXT NOT NULL DEFAULT '',
      portfolio_retention_experience TEXT NOT NULL DEFAULT '',
      portfolio_expansion_experience TEXT NOT NULL DEFAULT '',
      portfolio_size VARCHAR(200) NOT NULL DEFAULT '',
      inbound_sales_experience TEXT NOT NULL DEFAULT '',
      outbound_sales_experience TEXT NOT NULL DEFAULT '',
      field_sales_experience TEXT NOT NULL DEFAULT '',
      inside_sales_experience TEXT NOT NULL DEFAULT '',
      sales_cycle VARCHAR(100) NOT NULL DEFAULT '',
      avg_ticket VARCHAR(100) NOT NULL DEFAULT '',
      status VARCHAR(100) NOT NULL DEFAULT '',
      created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
      updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
    );
    `

func openTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL is not set")
	}

	pool, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		t.Fatalf("failed to create pool: %v", err)
	}
	t.Cleanup(pool.Close)

	if _, err := pool.Exec(context.Background(), candidatesSchema); err != nil {
		t.Fatalf("failed to create table: %v", err)
	}
	if _, err := pool.Exec(context.Background(), "DELETE FROM candidates"); err != nil {
		t.Fatalf("failed to cleanup candidates: %v", err)
	}

	return pool
}

func TestCandidateStoreCreateAndFindIntegration(t *testing.T) {
	pool := openTestPool(t)
	store := repository.NewCandidateStore(pool)
	ctx := context.Background()

	_, err := store.FindIDByEmail(ctx, "alice@example.com")
	if !errors.Is(err, domain.ErrCandidateNotFound) {
		t.Fatalf("expected ErrCandidateNotFound, got %v", err)
	}

	fields := map[string]domain.Value{
		"full_name":      domain.TextValue("Alice Santos"),
		"city":           domain.TextValue("Recife"),
		"accepts_pj":     domain.BoolValue(true),
		"minimum_salary": domain.CurrencyValue(decimal.RequireFromString("7500.00")),
		"interview_date": domain.DateValue("2024-03-15"),
		"languages":      domain.ListValue([]string{"Português", "Inglês"}),
	}
	id, err := store.Create(ctx, "alice@example.com", fields)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if id == "" {
		t.Fatal("expected candidate id")
	}

	found, err := store.FindIDByEmail(ctx, "alice@example.com")
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if found != id {
		t.Fatalf("unexpected id: %s != %s", found, id)
	}

	// Lookup is exact: a differently-cased address is a different identity.
	if _, err := store.FindIDByEmail(ctx, "ALICE@example.com"); !errors.Is(err, domain.ErrCandidateNotFound) {
		t.Fatalf("expected case-sensitive lookup, got %v", err)
	}
}

func TestCandidateStoreUpdateFieldsIsPartialIntegration(t *testing.T) {
	pool := openTestPool(t)
	store := repository.NewCandidateStore(pool)
	ctx := context.Background()

	id, err := store.Create(ctx, "bruno@example.com", map[string]domain.Value{
		"full_name": domain.TextValue("Bruno Lima"),
		"city":      domain.TextValue("Natal"),
		"linkedin":  domain.TextValue("https://linkedin.com/in/bruno"),
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	err = store.UpdateFields(ctx, id, map[string]domain.Value{
		"city":           domain.TextValue("Fortaleza"),
		"minimum_salary": app.CoerceField("minimum_salary", "R$ 7.500,00"),
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}

	var city, linkedin string
	var salary *string
	err = pool.QueryRow(ctx, "SELECT city, linkedin, minimum_salary::text FROM candidates WHERE id = $1", id).
		Scan(&city, &linkedin, &salary)
	if err != nil {
		t.Fatalf("select failed: %v", err)
	}
	if city != "Fortaleza" {
		t.Fatalf("expected city overwritten, got %q", city)
	}
	if linkedin != "https://linkedin.com/in/bruno" {
		t.Fatalf("unmapped field must stay untouched, got %q", linkedin)
	}
	if salary == nil || *salary != "7500.00" {
		t.Fatalf("unexpected salary: %v", salary)
	}
}

func TestCandidateStoreUpdateMissingCandidateIntegration(t *testing.T) {
	pool := openTestPool(t)
	store := repository.NewCandidateStore(pool)

	err := store.UpdateFields(context.Background(), "3f2c9a1e-8b4d-4c6f-9e2a-1b3c5d7e9f01", map[string]domain.Value{
		"city": domain.TextValue("Recife"),
	})
	if !errors.Is(err, domain.ErrCandidateNotFound) {
		t.Fatalf("expected ErrCandidateNotFound, got %v", err)
	}
}

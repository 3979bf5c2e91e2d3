package postgres

import (
	"context"
	"database/sql"
	"errors"

	"prodroster/internal/domain"
)

type accountRepository struct {
	DB dbtx
}

func NewAccountRepository(db *sql.DB) domain.AccountRepository {
	return &accountRepository{DB: db}
}

const accountColumns = `id, email, first_name, last_name, role, pro_id, pro_status, created_at, updated_at, claims_repaired_at`

func scanAccount(s scanner) (*domain.Account, error) {
	a := &domain.Account{}
	var proID sql.NullString
	var repairedAt sql.NullTime
	if err := s.Scan(&a.ID, &a.Email, &a.FirstName, &a.LastName, &a.Role, &proID, &a.ProStatus, &a.CreatedAt, &a.UpdatedAt, &repairedAt); err != nil {
		return nil, err
	}
	a.ProID = proID.String
	a.ClaimsRepairedAt = timePtr(repairedAt)
	return a, nil
}

func (r *accountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1`
	a, err := scanAccount(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, err
	}
	return a, nil
}

func (r *accountRepository) Upsert(ctx context.Context, a *domain.Account) error {
	query := `
		INSERT INTO accounts (id, email, first_name, last_name, role, pro_id, pro_status, created_at, updated_at, claims_repaired_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO UPDATE SET
			email = EXCLUDED.email,
			first_name = EXCLUDED.first_name,
			last_name = EXCLUDED.last_name,
			role = EXCLUDED.role,
			pro_id = EXCLUDED.pro_id,
			pro_status = EXCLUDED.pro_status,
			updated_at = EXCLUDED.updated_at,
			claims_repaired_at = EXCLUDED.claims_repaired_at
	`
	_, err := r.DB.ExecContext(ctx, query,
		a.ID, a.Email, a.FirstName, a.LastName, a.Role, nullString(a.ProID), a.ProStatus,
		a.CreatedAt, a.UpdatedAt, nullTime(a.ClaimsRepairedAt),
	)
	return err
}

func (r *accountRepository) ListByProID(ctx context.Context, proID string) ([]*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE pro_id = $1 ORDER BY id`
	return r.list(ctx, query, proID)
}

func (r *accountRepository) ListByRole(ctx context.Context, role domain.Role) ([]*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE role = $1 ORDER BY id`
	return r.list(ctx, query, role)
}

func (r *accountRepository) list(ctx context.Context, query string, args ...any) ([]*domain.Account, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	accounts := make([]*domain.Account, 0)
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}

func (r *accountRepository) CountMembers(ctx context.Context, proID string, role domain.Role) (int, error) {
	query := `SELECT COUNT(*) FROM accounts WHERE pro_id = $1 AND role = $2`
	var n int
	if err := r.DB.QueryRowContext(ctx, query, proID, role).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

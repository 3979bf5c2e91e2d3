package postgres

import (
	"context"
	"database/sql"
	"errors"

	"prodroster/internal/domain"
)

type identityRepository struct {
	DB *sql.DB
}

// NewIdentityRepository returns the identity provider's claim store implemented with Postgres.
func NewIdentityRepository(db *sql.DB) domain.IdentityStore {
	return &identityRepository{DB: db}
}

func (r *identityRepository) GetClaims(ctx context.Context, accountID string) (domain.Claims, error) {
	query := `SELECT role, pro_id, email FROM identities WHERE account_id = $1`
	var c domain.Claims
	err := r.DB.QueryRowContext(ctx, query, accountID).Scan(&c.Role, &c.ProID, &c.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Claims{}, domain.ErrNotFound
		}
		return domain.Claims{}, err
	}
	return c, nil
}

func (r *identityRepository) PutClaims(ctx context.Context, accountID string, c domain.Claims) error {
	query := `
		INSERT INTO identities (account_id, email, role, pro_id, updated_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (account_id) DO UPDATE SET
			email = EXCLUDED.email,
			role = EXCLUDED.role,
			pro_id = EXCLUDED.pro_id,
			updated_at = NOW()
	`
	_, err := r.DB.ExecContext(ctx, query, accountID, c.Email, c.Role, c.ProID)
	return err
}

func (r *identityRepository) FindByEmail(ctx context.Context, email string) (string, error) {
	query := `SELECT account_id FROM identities WHERE email = $1 ORDER BY updated_at DESC LIMIT 1`
	var id string
	if err := r.DB.QueryRowContext(ctx, query, email).Scan(&id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", domain.ErrNotFound
		}
		return "", err
	}
	return id, nil
}

func (r *identityRepository) Delete(ctx context.Context, accountID string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM identities WHERE account_id = $1`, accountID)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

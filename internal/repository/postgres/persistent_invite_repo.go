package postgres

import (
	"context"
	"database/sql"
	"errors"

	"prodroster/internal/domain"
)

type persistentInviteRepository struct {
	DB dbtx
}

// NewPersistentInviteRepository returns a domain.PersistentInviteRepository implemented with Postgres.
func NewPersistentInviteRepository(db *sql.DB) domain.PersistentInviteRepository {
	return &persistentInviteRepository{DB: db}
}

const persistentColumns = `id, pro_id, role, token_digest, max_redemptions, redeemed_count, active, created_at, updated_at`

func (r *persistentInviteRepository) Create(ctx context.Context, inv *domain.PersistentInvite) error {
	query := `
		INSERT INTO persistent_invites (id, pro_id, role, token_digest, max_redemptions, redeemed_count, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.DB.ExecContext(ctx, query, inv.ID, inv.ProID, inv.Role, inv.TokenDigest, inv.MaxRedemptions, inv.RedeemedCount, inv.Active, inv.CreatedAt, inv.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *persistentInviteRepository) GetByProAndRole(ctx context.Context, proID string, role domain.Role) (*domain.PersistentInvite, error) {
	query := `SELECT ` + persistentColumns + ` FROM persistent_invites WHERE pro_id = $1 AND role = $2`
	return r.get(ctx, query, proID, role)
}

func (r *persistentInviteRepository) GetByDigest(ctx context.Context, digest string) (*domain.PersistentInvite, error) {
	query := `SELECT ` + persistentColumns + ` FROM persistent_invites WHERE token_digest = $1`
	return r.get(ctx, query, digest)
}

func (r *persistentInviteRepository) get(ctx context.Context, query string, args ...any) (*domain.PersistentInvite, error) {
	inv := &domain.PersistentInvite{}
	err := r.DB.QueryRowContext(ctx, query, args...).Scan(
		&inv.ID, &inv.ProID, &inv.Role, &inv.TokenDigest, &inv.MaxRedemptions, &inv.RedeemedCount, &inv.Active, &inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrInviteNotFound
		}
		return nil, err
	}
	redemptions, err := r.listRedemptions(ctx, inv.ID)
	if err != nil {
		return nil, err
	}
	inv.Redemptions = redemptions
	return inv, nil
}

func (r *persistentInviteRepository) listRedemptions(ctx context.Context, inviteID string) ([]domain.Redemption, error) {
	query := `
		SELECT account_id, redeemed_at
		FROM persistent_invite_redemptions
		WHERE invite_id = $1
		ORDER BY seq
	`
	rows, err := r.DB.QueryContext(ctx, query, inviteID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]domain.Redemption, 0)
	for rows.Next() {
		var red domain.Redemption
		if err := rows.Scan(&red.AccountID, &red.RedeemedAt); err != nil {
			return nil, err
		}
		out = append(out, red)
	}
	return out, rows.Err()
}

func (r *persistentInviteRepository) Update(ctx context.Context, inv *domain.PersistentInvite) error {
	query := `
		UPDATE persistent_invites
		SET token_digest = $1, max_redemptions = $2, redeemed_count = $3, active = $4, updated_at = $5
		WHERE id = $6
	`
	result, err := r.DB.ExecContext(ctx, query, inv.TokenDigest, inv.MaxRedemptions, inv.RedeemedCount, inv.Active, inv.UpdatedAt, inv.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrInviteNotFound
	}
	return nil
}

func (r *persistentInviteRepository) AppendRedemption(ctx context.Context, inviteID string, red domain.Redemption) error {
	query := `
		INSERT INTO persistent_invite_redemptions (invite_id, account_id, redeemed_at)
		VALUES ($1, $2, $3)
	`
	_, err := r.DB.ExecContext(ctx, query, inviteID, red.AccountID, red.RedeemedAt)
	return err
}

func (r *persistentInviteRepository) ClearRedemptions(ctx context.Context, inviteID string) error {
	query := `DELETE FROM persistent_invite_redemptions WHERE invite_id = $1`
	_, err := r.DB.ExecContext(ctx, query, inviteID)
	return err
}

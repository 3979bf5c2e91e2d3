package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"prodroster/internal/domain"
)

type ephemeralInviteRepository struct {
	DB dbtx
}

// NewEphemeralInviteRepository returns a domain.EphemeralInviteRepository implemented with Postgres.
func NewEphemeralInviteRepository(db *sql.DB) domain.EphemeralInviteRepository {
	return &ephemeralInviteRepository{DB: db}
}

const ephemeralColumns = `id, pro_id, role, email, token_digest, expires_at, claimed, claimed_by, claimed_at, created_at`

func scanEphemeral(s scanner) (*domain.EphemeralInvite, error) {
	inv := &domain.EphemeralInvite{}
	var claimedBy sql.NullString
	var claimedAt sql.NullTime
	if err := s.Scan(&inv.ID, &inv.ProID, &inv.Role, &inv.Email, &inv.TokenDigest, &inv.ExpiresAt, &inv.Claimed, &claimedBy, &claimedAt, &inv.CreatedAt); err != nil {
		return nil, err
	}
	inv.ClaimedBy = claimedBy.String
	inv.ClaimedAt = timePtr(claimedAt)
	return inv, nil
}

func (r *ephemeralInviteRepository) Create(ctx context.Context, inv *domain.EphemeralInvite) error {
	query := `
		INSERT INTO ephemeral_invites (id, pro_id, role, email, token_digest, expires_at, claimed, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.DB.ExecContext(ctx, query, inv.ID, inv.ProID, inv.Role, inv.Email, inv.TokenDigest, inv.ExpiresAt, inv.Claimed, inv.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *ephemeralInviteRepository) GetByDigest(ctx context.Context, digest string) (*domain.EphemeralInvite, error) {
	query := `SELECT ` + ephemeralColumns + ` FROM ephemeral_invites WHERE token_digest = $1`
	inv, err := scanEphemeral(r.DB.QueryRowContext(ctx, query, digest))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrInviteNotFound
		}
		return nil, err
	}
	return inv, nil
}

func (r *ephemeralInviteRepository) MarkClaimed(ctx context.Context, inv *domain.EphemeralInvite) error {
	query := `UPDATE ephemeral_invites SET claimed = $1, claimed_by = $2, claimed_at = $3 WHERE id = $4`
	result, err := r.DB.ExecContext(ctx, query, inv.Claimed, nullString(inv.ClaimedBy), nullTime(inv.ClaimedAt), inv.ID)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrInviteNotFound
	}
	return nil
}

func (r *ephemeralInviteRepository) ListByProID(ctx context.Context, proID string) ([]*domain.EphemeralInvite, error) {
	query := `SELECT ` + ephemeralColumns + ` FROM ephemeral_invites WHERE pro_id = $1 ORDER BY created_at DESC`
	rows, err := r.DB.QueryContext(ctx, query, proID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	invs := make([]*domain.EphemeralInvite, 0)
	for rows.Next() {
		inv, err := scanEphemeral(rows)
		if err != nil {
			return nil, err
		}
		invs = append(invs, inv)
	}
	return invs, rows.Err()
}

func (r *ephemeralInviteRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	query := `DELETE FROM ephemeral_invites WHERE expires_at <= $1`
	result, err := r.DB.ExecContext(ctx, query, now)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

package postgres

import (
	"context"
	"database/sql"
	"errors"

	"prodroster/internal/domain"
)

type seatCountRepository struct {
	DB dbtx
}

func NewSeatCountRepository(db *sql.DB) domain.SeatCountRepository {
	return &seatCountRepository{DB: db}
}

func (r *seatCountRepository) Get(ctx context.Context, proID string) (*domain.SeatCount, error) {
	query := `SELECT pro_id, staff_count, athlete_count, updated_at FROM team_seats WHERE pro_id = $1`
	c := &domain.SeatCount{}
	err := r.DB.QueryRowContext(ctx, query, proID).Scan(&c.ProID, &c.StaffCount, &c.AthleteCount, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrTeamNotFound
		}
		return nil, err
	}
	return c, nil
}

func (r *seatCountRepository) Put(ctx context.Context, c *domain.SeatCount) error {
	query := `
		INSERT INTO team_seats (pro_id, staff_count, athlete_count, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (pro_id) DO UPDATE SET
			staff_count = EXCLUDED.staff_count,
			athlete_count = EXCLUDED.athlete_count,
			updated_at = EXCLUDED.updated_at
	`
	_, err := r.DB.ExecContext(ctx, query, c.ProID, c.StaffCount, c.AthleteCount, c.UpdatedAt)
	return err
}

func (r *seatCountRepository) ListProIDs(ctx context.Context) ([]string, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT pro_id FROM team_seats ORDER BY pro_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

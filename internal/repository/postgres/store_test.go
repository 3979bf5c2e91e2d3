package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"

	"prodroster/internal/domain"
)

func putSeats(ctx context.Context, tx domain.Repositories) error {
	return tx.Seats().Put(ctx, &domain.SeatCount{ProID: "pro-1", StaffCount: 1, UpdatedAt: time.Unix(0, 0).UTC()})
}

func TestStore_WithTransaction(t *testing.T) {
	ctx := context.Background()
	errBoom := errors.New("boom")

	tests := []struct {
		name    string
		fn      func(ctx context.Context, tx domain.Repositories) error
		mock    func(mock sqlmock.Sqlmock)
		wantErr error
	}{
		{
			name: "commit",
			fn:   putSeats,
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(`INSERT INTO team_seats`).WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectCommit()
			},
		},
		{
			name: "fn error rolls back without retry",
			fn:   func(context.Context, domain.Repositories) error { return errBoom },
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectRollback()
			},
			wantErr: errBoom,
		},
		{
			name: "domain error rolls back and is returned unchanged",
			fn: func(ctx context.Context, tx domain.Repositories) error {
				_, err := tx.Seats().Get(ctx, "pro-1")
				return err
			},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(`SELECT .+ FROM team_seats`).WillReturnError(sql.ErrNoRows)
				mock.ExpectRollback()
			},
			wantErr: domain.ErrTeamNotFound,
		},
		{
			name: "serialization failure is retried",
			fn:   putSeats,
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(`INSERT INTO team_seats`).WillReturnError(&pq.Error{Code: "40001"})
				mock.ExpectRollback()
				mock.ExpectBegin()
				mock.ExpectExec(`INSERT INTO team_seats`).WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectCommit()
			},
		},
		{
			name: "retries exhausted returns ErrTxConflict",
			fn:   putSeats,
			mock: func(mock sqlmock.Sqlmock) {
				for range 3 {
					mock.ExpectBegin()
					mock.ExpectExec(`INSERT INTO team_seats`).WillReturnError(&pq.Error{Code: "40P01"})
					mock.ExpectRollback()
				}
			},
			wantErr: domain.ErrTxConflict,
		},
		{
			name: "commit conflict is retried",
			fn:   putSeats,
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(`INSERT INTO team_seats`).WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectCommit().WillReturnError(&pq.Error{Code: "40001"})
				mock.ExpectBegin()
				mock.ExpectExec(`INSERT INTO team_seats`).WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectCommit()
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			store := NewStore(db, 2, nil)
			err = store.WithTransaction(ctx, tt.fn)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestStore_ConflictMapsToConflictKind(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO team_seats`).WillReturnError(&pq.Error{Code: "40001"})
	mock.ExpectRollback()

	err = NewStore(db, 0, nil).WithTransaction(context.Background(), putSeats)
	require.ErrorIs(t, err, domain.ErrConflict)
	require.NoError(t, mock.ExpectationsWereMet())
}

package postgres

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"prodroster/internal/domain"
)

func TestIdentityRepository_GetClaims(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		want    domain.Claims
		wantErr error
	}{
		{
			name: "found",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT role, pro_id, email FROM identities WHERE account_id = \$1`).
					WithArgs("pro-1").
					WillReturnRows(sqlmock.NewRows([]string{"role", "pro_id", "email"}).AddRow("PRO", "pro-1", "p@b.com"))
			},
			want: domain.Claims{Role: domain.RolePro, ProID: "pro-1", Email: "p@b.com"},
		},
		{
			name: "missing",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT role, pro_id, email FROM identities`).WillReturnError(sql.ErrNoRows)
			},
			wantErr: domain.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			got, err := NewIdentityRepository(db).GetClaims(ctx, "pro-1")
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				require.Equal(t, tt.want, got)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestIdentityRepository_PutClaims(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`INSERT INTO identities .+ ON CONFLICT \(account_id\) DO UPDATE`).
		WithArgs("st-1", "s@b.com", domain.RoleStaff, "pro-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = NewIdentityRepository(db).PutClaims(context.Background(), "st-1", domain.Claims{Role: domain.RoleStaff, ProID: "pro-1", Email: "s@b.com"})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

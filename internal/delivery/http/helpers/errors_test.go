package helpers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prodroster/internal/domain"
)

func TestWriteServiceError(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantMsg    string
	}{
		{name: "unauthenticated", err: domain.ErrUnauthenticated, wantStatus: http.StatusUnauthorized, wantCode: ErrCodeUnauthorized, wantMsg: "unauthenticated"},
		{name: "forbidden reason", err: domain.ErrNotPro, wantStatus: http.StatusForbidden, wantCode: ErrCodeForbidden, wantMsg: "only PRO accounts can manage invites"},
		{name: "not found", err: domain.ErrInviteNotFound, wantStatus: http.StatusNotFound, wantCode: ErrCodeNotFound, wantMsg: "invite not found"},
		{name: "seat limit", err: domain.SeatLimitError(domain.RoleStaff), wantStatus: http.StatusConflict, wantCode: ErrCodeInvalidState, wantMsg: "STAFF invite limit reached"},
		{name: "tx conflict", err: domain.ErrTxConflict, wantStatus: http.StatusConflict, wantCode: ErrCodeConflict, wantMsg: "too much contention, please retry"},
		{name: "invalid input", err: domain.ErrInvalidRole, wantStatus: http.StatusBadRequest, wantCode: ErrCodeBadRequest, wantMsg: "role must be STAFF or ATHLETE"},
		{name: "upstream hides cause", err: domain.Upstream("get invite", errors.New("dial tcp: refused")), wantStatus: http.StatusBadGateway, wantCode: ErrCodeUpstream, wantMsg: "a backing service failed, please retry"},
		{name: "unknown", err: errors.New("boom"), wantStatus: http.StatusInternalServerError, wantCode: ErrCodeInternalError, wantMsg: "internal error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/x", nil)
			WriteServiceError(rr, req, logger, tt.err)

			require.Equal(t, tt.wantStatus, rr.Code)
			var envelope APIResponse
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
			require.NotNil(t, envelope.Error)
			assert.Nil(t, envelope.Data)
			assert.Equal(t, tt.wantCode, envelope.Error.Code)
			assert.Equal(t, tt.wantMsg, envelope.Error.Message)
		})
	}
}

func TestParsePaginationAndPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	tests := []struct {
		name  string
		query string
		want  []int
		meta  PaginationMeta
	}{
		{name: "defaults", query: "", want: items, meta: PaginationMeta{Page: 1, PageSize: 20, Total: 5, TotalPages: 1}},
		{name: "second page", query: "?page=2&page_size=2", want: []int{3, 4}, meta: PaginationMeta{Page: 2, PageSize: 2, Total: 5, TotalPages: 3}},
		{name: "past the end", query: "?page=9&page_size=2", want: []int{}, meta: PaginationMeta{Page: 9, PageSize: 2, Total: 5, TotalPages: 3}},
		{name: "invalid values fall back", query: "?page=x&page_size=-1", want: items, meta: PaginationMeta{Page: 1, PageSize: 20, Total: 5, TotalPages: 1}},
		{name: "page size clamped", query: "?page_size=1000", want: items, meta: PaginationMeta{Page: 1, PageSize: 100, Total: 5, TotalPages: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := ParsePagination(httptest.NewRequest(http.MethodGet, "/"+tt.query, nil))
			assert.Equal(t, tt.want, Paginate(items, p))
			assert.Equal(t, tt.meta, NewPaginationMeta(p.Page, p.PageSize, len(items)))
		})
	}
}

package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prodroster/internal/domain"
)

func TestTeamService_GetTeam(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, nil)
	h.activePro(t, "p1")

	issued, err := h.invites.GetOrCreatePersistent(ctx, "p1", domain.RoleAthlete)
	require.NoError(t, err)
	for _, id := range []string{"a1", "a2"} {
		_, err := h.invites.RedeemPersistent(ctx, issued.InviteCode, id, profile(id))
		require.NoError(t, err)
	}

	team, err := h.teams.GetTeam(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "p1", team.ProID)
	require.Len(t, team.Members, 2)
	assert.Equal(t, "a1", team.Members[0].ID)
	assert.Equal(t, 2, team.Seats.AthleteCount)
	assert.Equal(t, 5, team.StaffLimit)
	assert.Equal(t, 20, team.AthleteLimit)

	_, err = h.teams.GetTeam(ctx, "a1")
	require.ErrorIs(t, err, domain.ErrNotPro)
}

func TestTeamService_RemoveMember(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, nil)
	h.activePro(t, "p1")
	h.activePro(t, "p2")

	issued, err := h.invites.CreateEphemeral(ctx, "p1", domain.RoleStaff, "")
	require.NoError(t, err)
	_, err = h.invites.RedeemEphemeral(ctx, issued.Token, "s1", profile("s1"))
	require.NoError(t, err)

	require.ErrorIs(t, h.teams.RemoveMember(ctx, "p2", "s1"), domain.ErrNotTeamMember)
	require.ErrorIs(t, h.teams.RemoveMember(ctx, "p1", "ghost"), domain.ErrNotTeamMember)
	require.ErrorIs(t, h.teams.RemoveMember(ctx, "p1", "p1"), domain.ErrInvalidInput)

	require.NoError(t, h.teams.RemoveMember(ctx, "p1", "s1"))

	a := h.account(t, "s1")
	assert.Empty(t, a.ProID)
	assert.Equal(t, domain.RoleStaff, a.Role)

	n, err := h.ledger.CurrentCount(ctx, "p1", domain.RoleStaff)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	claims, err := h.ids.GetClaims(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, claims.ProID)

	require.ErrorIs(t, h.teams.RemoveMember(ctx, "p1", "s1"), domain.ErrNotTeamMember)
}

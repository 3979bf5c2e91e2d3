package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	"prodroster/internal/delivery/http/helpers"
	"prodroster/internal/domain"
)

// TeamResponse is the roster page with the team's seat counters and limits.
type TeamResponse struct {
	ProID        string                 `json:"proId"`
	Members      []*domain.Account      `json:"members"`
	Seats        *domain.SeatCount      `json:"seats"`
	StaffLimit   int                    `json:"staffLimit"`
	AthleteLimit int                    `json:"athleteLimit"`
	Pagination   helpers.PaginationMeta `json:"pagination"`
}

// TeamSuccessResponse is the success envelope for GET /pro/team.
type TeamSuccessResponse struct {
	Data  TeamResponse      `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// TeamController handles roster reads and member removal.
type TeamController struct {
	Logger  *slog.Logger
	Service domain.TeamService
}

// NewTeamController creates a TeamController with the given logger and service.
func NewTeamController(logger *slog.Logger, svc domain.TeamService) *TeamController {
	return &TeamController{
		Logger:  logger,
		Service: svc,
	}
}

// Get godoc
// @Summary Get the caller's team
// @Description Returns a page of team members with the current seat counts and role limits.
// @Tags team
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} controllers.TeamSuccessResponse "data contains members, seats, limits and pagination"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Router /pro/team [get]
func (c *TeamController) Get(w http.ResponseWriter, r *http.Request) {
	uid, ok := callerID(w, r)
	if !ok {
		return
	}
	team, err := c.Service.GetTeam(r.Context(), uid)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	params := helpers.ParsePagination(r)
	helpers.WriteJSONSuccess(w, http.StatusOK, TeamResponse{
		ProID:        team.ProID,
		Members:      helpers.Paginate(team.Members, params),
		Seats:        team.Seats,
		StaffLimit:   team.StaffLimit,
		AthleteLimit: team.AthleteLimit,
		Pagination:   helpers.NewPaginationMeta(params.Page, params.PageSize, len(team.Members)),
	})
}

// RemoveMember godoc
// @Summary Remove a member from the caller's team
// @Description Detaches the member and frees their seat.
// @Tags team
// @Security BearerAuth
// @Param memberID path string true "Member account id"
// @Success 204 "No Content"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Router /pro/team/{memberID} [delete]
func (c *TeamController) RemoveMember(w http.ResponseWriter, r *http.Request) {
	uid, ok := callerID(w, r)
	if !ok {
		return
	}
	memberID := strings.TrimSpace(r.PathValue("memberID"))
	if memberID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "memberID is required")
		return
	}
	if err := c.Service.RemoveMember(r.Context(), uid, memberID); err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

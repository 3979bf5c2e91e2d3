package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	"prodroster/internal/delivery/http/helpers"
	"prodroster/internal/domain"
)

// SetActiveRequest is the request body for PATCH /pro/invite-codes/{role}.
type SetActiveRequest struct {
	Active *bool `json:"active"`
}

// Validate implements Validator.
func (req SetActiveRequest) Validate() []string {
	if req.Active == nil {
		return []string{"active is required"}
	}
	return nil
}

// CodeRequest is the request body for POST /invite-codes/validate.
type CodeRequest struct {
	Code string `json:"code"`
}

// Validate implements Validator.
func (req CodeRequest) Validate() []string {
	if strings.TrimSpace(req.Code) == "" {
		return []string{"code is required"}
	}
	return nil
}

// RedeemCodeRequest is the request body for POST /invite-codes/redeem.
type RedeemCodeRequest struct {
	InviteCode string         `json:"inviteCode"`
	Profile    ProfileRequest `json:"profile"`
}

// Validate implements Validator.
func (req RedeemCodeRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(req.InviteCode) == "" {
		errs = append(errs, "inviteCode is required")
	}
	return append(errs, req.Profile.validate(false)...)
}

// IssuedCodeSuccessResponse is the success envelope for invite code reads and regeneration.
type IssuedCodeSuccessResponse struct {
	Data  *domain.IssuedPersistentInvite `json:"data"`
	Error *helpers.APIError              `json:"error"`
}

// PersistentInviteSuccessResponse is the success envelope for code validation and toggling.
type PersistentInviteSuccessResponse struct {
	Data  *domain.PersistentInvite `json:"data"`
	Error *helpers.APIError        `json:"error"`
}

// InviteCodeController handles the reusable per-role invite codes.
type InviteCodeController struct {
	Logger  *slog.Logger
	Service domain.InviteService
}

// NewInviteCodeController creates an InviteCodeController with the given logger and service.
func NewInviteCodeController(logger *slog.Logger, svc domain.InviteService) *InviteCodeController {
	return &InviteCodeController{
		Logger:  logger,
		Service: svc,
	}
}

// Get godoc
// @Summary Get or create the invite code for a role
// @Description Returns the team's reusable invite for the role, creating it on first access. inviteCode is only present when the code was just minted.
// @Tags invite-codes
// @Produce json
// @Security BearerAuth
// @Param role path string true "STAFF or ATHLETE"
// @Success 200 {object} controllers.IssuedCodeSuccessResponse "data contains invite and optional inviteCode"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 409 {object} helpers.APIResponse "error.code: invalid_state"
// @Router /pro/invite-codes/{role} [get]
func (c *InviteCodeController) Get(w http.ResponseWriter, r *http.Request) {
	uid, ok := callerID(w, r)
	if !ok {
		return
	}
	role, ok := memberRole(w, r)
	if !ok {
		return
	}
	issued, err := c.Service.GetOrCreatePersistent(r.Context(), uid, role)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, issued)
}

// Regenerate godoc
// @Summary Regenerate the invite code for a role
// @Description Replaces the code, resets the redemption count and clears the redemption log. The old code stops working immediately.
// @Tags invite-codes
// @Produce json
// @Security BearerAuth
// @Param role path string true "STAFF or ATHLETE"
// @Success 200 {object} controllers.IssuedCodeSuccessResponse "data contains invite and inviteCode"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 409 {object} helpers.APIResponse "error.code: invalid_state"
// @Router /pro/invite-codes/{role}/regenerate [post]
func (c *InviteCodeController) Regenerate(w http.ResponseWriter, r *http.Request) {
	uid, ok := callerID(w, r)
	if !ok {
		return
	}
	role, ok := memberRole(w, r)
	if !ok {
		return
	}
	issued, err := c.Service.Regenerate(r.Context(), uid, role)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, issued)
}

// SetActive godoc
// @Summary Enable or disable the invite code for a role
// @Tags invite-codes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param role path string true "STAFF or ATHLETE"
// @Param body body SetActiveRequest true "Active flag"
// @Success 200 {object} controllers.PersistentInviteSuccessResponse "data contains the invite"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /pro/invite-codes/{role} [patch]
func (c *InviteCodeController) SetActive(w http.ResponseWriter, r *http.Request) {
	uid, ok := callerID(w, r)
	if !ok {
		return
	}
	role, ok := memberRole(w, r)
	if !ok {
		return
	}
	var req SetActiveRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	inv, err := c.Service.SetActive(r.Context(), uid, role, *req.Active)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, inv)
}

// Validate godoc
// @Summary Validate an invite code
// @Description Checks that the code is active, not exhausted, and that the team still has a seat for its role.
// @Tags invite-codes
// @Accept json
// @Produce json
// @Param body body CodeRequest true "Invite code"
// @Success 200 {object} controllers.PersistentInviteSuccessResponse "data contains the invite"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: invalid_state"
// @Failure 429 {object} helpers.APIResponse "error.code: too_many_requests"
// @Router /invite-codes/validate [post]
func (c *InviteCodeController) Validate(w http.ResponseWriter, r *http.Request) {
	var req CodeRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	inv, err := c.Service.ValidatePersistent(r.Context(), strings.TrimSpace(req.Code))
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, inv.Public())
}

// Redeem godoc
// @Summary Redeem an invite code
// @Description Joins the caller to the code's team. The redemption count and seat counter are incremented in one transaction.
// @Tags invite-codes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body RedeemCodeRequest true "Invite code and profile"
// @Success 200 {object} controllers.MembershipSuccessResponse "data contains uid, role and proId"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: invalid_state or conflict"
// @Failure 429 {object} helpers.APIResponse "error.code: too_many_requests"
// @Router /invite-codes/redeem [post]
func (c *InviteCodeController) Redeem(w http.ResponseWriter, r *http.Request) {
	uid, ok := callerID(w, r)
	if !ok {
		return
	}
	var req RedeemCodeRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	m, err := c.Service.RedeemPersistent(r.Context(), strings.TrimSpace(req.InviteCode), uid, req.Profile.toDomain())
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, m)
}

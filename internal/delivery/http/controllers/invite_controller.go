package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	"prodroster/internal/delivery/http/helpers"
	"prodroster/internal/domain"
)

// CreateInviteRequest is the request body for POST /invites.
type CreateInviteRequest struct {
	Role  string `json:"role"`
	Email string `json:"email,omitempty"`
}

// Validate implements Validator.
func (req CreateInviteRequest) Validate() []string {
	var errs []string
	if role, ok := domain.ParseRole(req.Role); !ok || !role.IsMemberRole() {
		errs = append(errs, domain.ErrInvalidRole.Reason)
	}
	if email := strings.TrimSpace(req.Email); email != "" && !emailRegexp.MatchString(email) {
		errs = append(errs, "invalid email format")
	}
	return errs
}

// TokenRequest is the request body for POST /invites/validate and /invites/inspect.
type TokenRequest struct {
	Token string `json:"token"`
}

// Validate implements Validator.
func (req TokenRequest) Validate() []string {
	if strings.TrimSpace(req.Token) == "" {
		return []string{"token is required"}
	}
	return nil
}

// RedeemInviteRequest is the request body for POST /invites/redeem.
type RedeemInviteRequest struct {
	Token   string         `json:"token"`
	Profile ProfileRequest `json:"profile"`
}

// Validate implements Validator.
func (req RedeemInviteRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(req.Token) == "" {
		errs = append(errs, "token is required")
	}
	return append(errs, req.Profile.validate(false)...)
}

// IssuedInviteSuccessResponse is the success envelope for POST /invites (201).
type IssuedInviteSuccessResponse struct {
	Data  *domain.IssuedEphemeralInvite `json:"data"`
	Error *helpers.APIError             `json:"error"`
}

// EphemeralInviteSuccessResponse is the success envelope for POST /invites/validate.
type EphemeralInviteSuccessResponse struct {
	Data  *domain.EphemeralInvite `json:"data"`
	Error *helpers.APIError       `json:"error"`
}

// MembershipSuccessResponse is the success envelope for redemption endpoints.
type MembershipSuccessResponse struct {
	Data  *domain.Membership `json:"data"`
	Error *helpers.APIError  `json:"error"`
}

// InviteSuccessResponse is the success envelope for POST /invites/inspect.
type InviteSuccessResponse struct {
	Data  *domain.Invite    `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// InviteController handles single-use invites and secret inspection.
type InviteController struct {
	Logger  *slog.Logger
	Service domain.InviteService
}

// NewInviteController creates an InviteController with the given logger and service.
func NewInviteController(logger *slog.Logger, svc domain.InviteService) *InviteController {
	return &InviteController{
		Logger:  logger,
		Service: svc,
	}
}

// Create godoc
// @Summary Create a single-use invite
// @Description Mints a single-use invite for STAFF or ATHLETE. The token is returned once and is never stored in plaintext.
// @Tags invites
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateInviteRequest true "Role and optional email"
// @Success 201 {object} controllers.IssuedInviteSuccessResponse "data contains id, token and expiresAt"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 409 {object} helpers.APIResponse "error.code: invalid_state"
// @Failure 502 {object} helpers.APIResponse "error.code: upstream_failure"
// @Router /invites [post]
func (c *InviteController) Create(w http.ResponseWriter, r *http.Request) {
	uid, ok := callerID(w, r)
	if !ok {
		return
	}
	var req CreateInviteRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	role, _ := domain.ParseRole(req.Role)
	issued, err := c.Service.CreateEphemeral(r.Context(), uid, role, strings.TrimSpace(req.Email))
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, issued)
}

// Validate godoc
// @Summary Validate a single-use invite token
// @Description Checks that the invite exists, is unclaimed, unexpired, and that the team still has a seat for its role.
// @Tags invites
// @Accept json
// @Produce json
// @Param body body TokenRequest true "Invite token"
// @Success 200 {object} controllers.EphemeralInviteSuccessResponse "data contains the invite"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: invalid_state"
// @Failure 429 {object} helpers.APIResponse "error.code: too_many_requests"
// @Router /invites/validate [post]
func (c *InviteController) Validate(w http.ResponseWriter, r *http.Request) {
	var req TokenRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	inv, err := c.Service.ValidateEphemeral(r.Context(), strings.TrimSpace(req.Token))
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, inv.Public())
}

// Redeem godoc
// @Summary Redeem a single-use invite
// @Description Joins the caller to the invite's team with its role. Seat reservation and the claim happen in one transaction.
// @Tags invites
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body RedeemInviteRequest true "Invite token and profile"
// @Success 200 {object} controllers.MembershipSuccessResponse "data contains uid, role and proId"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: invalid_state or conflict"
// @Failure 429 {object} helpers.APIResponse "error.code: too_many_requests"
// @Router /invites/redeem [post]
func (c *InviteController) Redeem(w http.ResponseWriter, r *http.Request) {
	uid, ok := callerID(w, r)
	if !ok {
		return
	}
	var req RedeemInviteRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	m, err := c.Service.RedeemEphemeral(r.Context(), strings.TrimSpace(req.Token), uid, req.Profile.toDomain())
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, m)
}

// Inspect godoc
// @Summary Resolve an invite secret
// @Description Looks the secret up as a single-use token, then as an invite code. data.kind is "ephemeral" or "persistent".
// @Tags invites
// @Accept json
// @Produce json
// @Param body body TokenRequest true "Invite secret"
// @Success 200 {object} controllers.InviteSuccessResponse "data contains the tagged invite"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /invites/inspect [post]
func (c *InviteController) Inspect(w http.ResponseWriter, r *http.Request) {
	var req TokenRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	inv, err := c.Service.Inspect(r.Context(), strings.TrimSpace(req.Token))
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, inv.Public())
}

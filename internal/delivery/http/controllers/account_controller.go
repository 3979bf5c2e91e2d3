package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	"prodroster/internal/delivery/http/helpers"
	"prodroster/internal/domain"
)

// RegisterRequest is the request body for POST /accounts.
type RegisterRequest struct {
	Role    string         `json:"role"`
	Profile ProfileRequest `json:"profile"`
}

// Validate implements Validator.
func (req RegisterRequest) Validate() []string {
	var errs []string
	if _, ok := domain.ParseRole(req.Role); !ok {
		errs = append(errs, "role must be PRO, STAFF or ATHLETE")
	}
	return append(errs, req.Profile.validate(true)...)
}

// AccountSuccessResponse is the success envelope for account endpoints.
type AccountSuccessResponse struct {
	Data  *domain.Account   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// AccountController handles registration and profile reads.
type AccountController struct {
	Logger  *slog.Logger
	Service domain.AccountService
}

// NewAccountController creates an AccountController with the given logger and service.
func NewAccountController(logger *slog.Logger, svc domain.AccountService) *AccountController {
	return &AccountController{
		Logger:  logger,
		Service: svc,
	}
}

// Register godoc
// @Summary Register the caller's account
// @Description Creates the account for the authenticated identity. PRO accounts start inactive until a subscription payment activates them.
// @Tags accounts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body RegisterRequest true "Role and profile"
// @Success 201 {object} controllers.AccountSuccessResponse "data contains the account"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 409 {object} helpers.APIResponse "error.code: invalid_state"
// @Failure 502 {object} helpers.APIResponse "error.code: upstream_failure"
// @Router /accounts [post]
func (c *AccountController) Register(w http.ResponseWriter, r *http.Request) {
	uid, ok := callerID(w, r)
	if !ok {
		return
	}
	var req RegisterRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	role, _ := domain.ParseRole(req.Role)
	account, err := c.Service.Register(r.Context(), uid, role, req.Profile.toDomain())
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, account)
}

// GetMe godoc
// @Summary Get current account
// @Description Returns the caller's account. PRO identity drift and stale claims are repaired before the read.
// @Tags accounts
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.AccountSuccessResponse "data contains the account"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 502 {object} helpers.APIResponse "error.code: upstream_failure"
// @Router /accounts/me [get]
func (c *AccountController) GetMe(w http.ResponseWriter, r *http.Request) {
	uid, ok := callerID(w, r)
	if !ok {
		return
	}
	account, err := c.Service.GetMe(r.Context(), strings.TrimSpace(uid))
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, account)
}

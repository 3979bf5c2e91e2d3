package controllers

import (
	"crypto/subtle"
	"log/slog"
	"net/http"
	"strings"

	"prodroster/internal/delivery/http/helpers"
	"prodroster/internal/domain"
)

const webhookSecretHeader = "X-Webhook-Secret"

// PaymentEventRequest is the request body for POST /webhooks/payments.
type PaymentEventRequest struct {
	AccountID   string `json:"accountId"`
	Role        string `json:"role,omitempty"`
	ProID       string `json:"proId,omitempty"`
	PaymentKind string `json:"paymentKind"`
}

// Validate implements Validator.
func (req PaymentEventRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(req.AccountID) == "" {
		errs = append(errs, "accountId is required")
	}
	if strings.TrimSpace(req.PaymentKind) == "" {
		errs = append(errs, "paymentKind is required")
	}
	return errs
}

// PaymentEventResult reports what the payment event did.
type PaymentEventResult struct {
	Handled bool            `json:"handled"`
	Account *domain.Account `json:"account,omitempty"`
}

// PaymentEventSuccessResponse is the success envelope for POST /webhooks/payments.
type PaymentEventSuccessResponse struct {
	Data  PaymentEventResult `json:"data"`
	Error *helpers.APIError  `json:"error"`
}

// WebhookController receives payment completion events.
type WebhookController struct {
	Logger  *slog.Logger
	Service domain.ActivationService
	secret  string
}

// NewWebhookController creates a WebhookController. When secret is non-empty the
// X-Webhook-Secret header must match it.
func NewWebhookController(logger *slog.Logger, svc domain.ActivationService, secret string) *WebhookController {
	return &WebhookController{
		Logger:  logger,
		Service: svc,
		secret:  secret,
	}
}

// HandlePayment godoc
// @Summary Payment completion webhook
// @Description Activates a PRO on "pro_subscription" and deactivates on "pro_cancellation". Other payment kinds are acknowledged and ignored.
// @Tags webhooks
// @Accept json
// @Produce json
// @Param X-Webhook-Secret header string false "Shared webhook secret"
// @Param body body PaymentEventRequest true "Payment event"
// @Success 200 {object} controllers.PaymentEventSuccessResponse "data.handled is false for ignored events"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /webhooks/payments [post]
func (c *WebhookController) HandlePayment(w http.ResponseWriter, r *http.Request) {
	if c.secret != "" {
		got := r.Header.Get(webhookSecretHeader)
		if subtle.ConstantTimeCompare([]byte(got), []byte(c.secret)) != 1 {
			helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "invalid webhook secret")
			return
		}
	}
	var req PaymentEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	account, err := c.Service.HandlePaymentEvent(r.Context(), domain.PaymentEvent{
		AccountID:   strings.TrimSpace(req.AccountID),
		Role:        req.Role,
		ProID:       req.ProID,
		PaymentKind: strings.TrimSpace(req.PaymentKind),
	})
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, PaymentEventResult{Handled: account != nil, Account: account})
}

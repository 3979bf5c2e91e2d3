package http

import (
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"prodroster/internal/delivery/http/controllers"
	"prodroster/internal/delivery/http/helpers"
	"prodroster/internal/delivery/http/middleware"
)

// Controllers groups the route handlers.
type Controllers struct {
	Account    *controllers.AccountController
	Invite     *controllers.InviteController
	InviteCode *controllers.InviteCodeController
	Team       *controllers.TeamController
	Webhook    *controllers.WebhookController
}

// Middleware wraps a single route.
type Middleware func(http.HandlerFunc) http.HandlerFunc

// NewRouter initializes the HTTP router with all application routes. auth guards
// caller-scoped routes; limit throttles the secret validation and redemption routes.
func NewRouter(c Controllers, auth, limit Middleware) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		helpers.WriteJSONSuccess(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Accounts
	mux.HandleFunc("POST /accounts", auth(c.Account.Register))
	mux.HandleFunc("GET /accounts/me", auth(c.Account.GetMe))

	// Single-use invites
	mux.HandleFunc("POST /invites", auth(c.Invite.Create))
	mux.HandleFunc("POST /invites/validate", limit(c.Invite.Validate))
	mux.HandleFunc("POST /invites/redeem", auth(limit(c.Invite.Redeem)))
	mux.HandleFunc("POST /invites/inspect", limit(c.Invite.Inspect))

	// Reusable invite codes
	mux.HandleFunc("GET /pro/invite-codes/{role}", auth(c.InviteCode.Get))
	mux.HandleFunc("POST /pro/invite-codes/{role}/regenerate", auth(c.InviteCode.Regenerate))
	mux.HandleFunc("PATCH /pro/invite-codes/{role}", auth(c.InviteCode.SetActive))
	mux.HandleFunc("POST /invite-codes/validate", limit(c.InviteCode.Validate))
	mux.HandleFunc("POST /invite-codes/redeem", auth(limit(c.InviteCode.Redeem)))

	// Team
	mux.HandleFunc("GET /pro/team", auth(c.Team.Get))
	mux.HandleFunc("DELETE /pro/team/{memberID}", auth(c.Team.RemoveMember))

	// Payment processor
	mux.HandleFunc("POST /webhooks/payments", c.Webhook.HandlePayment)

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}

// Chain applies the global middleware in order: CORS, then request logging.
func Chain(mux http.Handler, logger *slog.Logger, corsOrigins []string) http.Handler {
	return middleware.CORS(corsOrigins, middleware.Logging(logger, mux))
}

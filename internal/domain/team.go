package domain

import "context"

// Payment kinds the core reacts to. Anything else is ignored.
const (
	PaymentKindProSubscription = "pro_subscription"
	PaymentKindProCancellation = "pro_cancellation"
)

// PaymentEvent is the processor's completion event after signature checks.
type PaymentEvent struct {
	AccountID   string `json:"accountId"`
	Role        string `json:"role,omitempty"`
	ProID       string `json:"proId,omitempty"`
	PaymentKind string `json:"paymentKind"`
}

// ActivationService reacts to PRO entitlement changes.
type ActivationService interface {
	// HandlePaymentEvent returns the affected account, or nil when the event was ignored.
	HandlePaymentEvent(ctx context.Context, evt PaymentEvent) (*Account, error)
}

// Team is a PRO's roster with its occupancy counters and limits.
// swagger:model Team
type Team struct {
	ProID        string     `json:"proId"`
	Members      []*Account `json:"members"`
	Seats        *SeatCount `json:"seats"`
	StaffLimit   int        `json:"staffLimit"`
	AthleteLimit int        `json:"athleteLimit"`
}

// TeamService covers roster reads and member removal.
type TeamService interface {
	GetTeam(ctx context.Context, callerID string) (*Team, error)
	RemoveMember(ctx context.Context, callerID, memberID string) error
}

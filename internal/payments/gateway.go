// Package payments wraps the external payment processor behind a small
// capability set: intent creation, intent retrieval and refunds.
// Amounts cross this boundary already converted to integer minor
// units (see utils.ToMinorUnits). Calls are synchronous with no retry
// policy; failures surface as domain.GatewayError.
package payments

import "context"

// Intent statuses the lifecycle components act on. Anything else is
// treated as not-yet-paid.
const (
	IntentSucceeded = "succeeded"

	RefundSucceeded = "succeeded"
	RefundPending   = "pending"
)

type Intent struct {
	ID           string
	ClientSecret string
	Status       string
}

type Refund struct {
	ID     string
	Status string
}

type Gateway interface {
	CreateIntent(ctx context.Context, amountMinor int64, currency string, metadata map[string]string) (Intent, error)
	RetrieveIntent(ctx context.Context, id string) (Intent, error)
	CreateRefund(ctx context.Context, paymentRef string) (Refund, error)
}

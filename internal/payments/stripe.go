package payments

import (
	"context"

	stripe "github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/paymentintent"
	"github.com/stripe/stripe-go/v79/refund"

	"automart/internal/domain"
)

// StripeGateway implements Gateway against Stripe payment intents.
type StripeGateway struct{}

// NewStripeGateway sets the account key and returns the adapter.
func NewStripeGateway(secretKey string) StripeGateway {
	stripe.Key = secretKey
	return StripeGateway{}
}

func (g StripeGateway) CreateIntent(ctx context.Context, amountMinor int64, currency string, metadata map[string]string) (Intent, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amountMinor),
		Currency: stripe.String(currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx
	for k, v := range metadata {
		params.AddMetadata(k, v)
	}

	pi, err := paymentintent.New(params)
	if err != nil {
		return Intent{}, domain.GatewayError{Err: err}
	}
	return Intent{ID: pi.ID, ClientSecret: pi.ClientSecret, Status: string(pi.Status)}, nil
}

func (g StripeGateway) RetrieveIntent(ctx context.Context, id string) (Intent, error) {
	params := &stripe.PaymentIntentParams{}
	params.Context = ctx

	pi, err := paymentintent.Get(id, params)
	if err != nil {
		return Intent{}, domain.GatewayError{Err: err}
	}
	return Intent{ID: pi.ID, ClientSecret: pi.ClientSecret, Status: string(pi.Status)}, nil
}

func (g StripeGateway) CreateRefund(ctx context.Context, paymentRef string) (Refund, error) {
	params := &stripe.RefundParams{PaymentIntent: stripe.String(paymentRef)}
	params.Context = ctx

	r, err := refund.New(params)
	if err != nil {
		return Refund{}, domain.GatewayError{Err: err}
	}
	return Refund{ID: r.ID, Status: string(r.Status)}, nil
}

package payment

import (
	"context"

	"github.com/google/uuid"
	stripe "github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/client"
)

// IntentCreator abstracts the payment provider so handlers can be tested
// without network access.
type IntentCreator interface {
	CreateIntent(ctx context.Context, amountCents int64, sessionID, studentEmail string) (clientSecret string, err error)
}

type StripeClient struct {
	api *client.API
}

func NewStripeClient(secretKey string) *StripeClient {
	api := &client.API{}
	api.Init(secretKey, nil)
	return &StripeClient{api: api}
}

func (s *StripeClient) CreateIntent(ctx context.Context, amountCents int64, sessionID, studentEmail string) (string, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amountCents),
		Currency: stripe.String(string(stripe.CurrencyUSD)),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx
	params.SetIdempotencyKey(uuid.NewString())
	params.AddMetadata("sessionId", sessionID)
	params.AddMetadata("studentEmail", studentEmail)

	pi, err := s.api.PaymentIntents.New(params)
	if err != nil {
		return "", err
	}
	return pi.ClientSecret, nil
}

package services

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v80"
	"github.com/stripe/stripe-go/v80/paymentintent"
)

// PaymentProcessor creates payment intents and returns their client secret.
type PaymentProcessor interface {
	CreatePaymentIntent(ctx context.Context, amount int64, currency string) (string, error)
}

type StripeService struct {
	intents paymentintent.Client
}

func NewStripeService(secretKey string) *StripeService {
	return newStripeService(secretKey, stripe.GetBackend(stripe.APIBackend))
}

func newStripeService(secretKey string, backend stripe.Backend) *StripeService {
	return &StripeService{intents: paymentintent.Client{B: backend, Key: secretKey}}
}

// CreatePaymentIntent creates an intent for amount in minor units with
// automatic payment methods enabled.
func (s *StripeService) CreatePaymentIntent(ctx context.Context, amount int64, currency string) (string, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amount),
		Currency: stripe.String(currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx

	pi, err := s.intents.New(params)
	if err != nil {
		return "", fmt.Errorf("create payment intent: %w", err)
	}
	return pi.ClientSecret, nil
}

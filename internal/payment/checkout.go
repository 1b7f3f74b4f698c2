// Package payment creates hosted checkout sessions for attraction tickets
// and derives prices from free-text price labels.
package payment

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

const currency = "sgd"

var (
	ErrNotConfigured = errors.New("payment provider not configured")
	ErrInvalidAmount = errors.New("amount must be positive")
)

// CheckoutRequest describes a single-ticket purchase.
type CheckoutRequest struct {
	ItemName   string
	AmountSGD  int64
	SuccessURL string
	CancelURL  string
}

// Checkout creates hosted payment pages.
type Checkout interface {
	CreateCheckout(ctx context.Context, req CheckoutRequest) (string, error)
	IsTestMode() bool
}

// StripeCheckout implements Checkout with Stripe Checkout Sessions.
type StripeCheckout struct {
	api      *client.API
	testMode bool
}

// NewStripeCheckout creates a checkout client for the given secret key.
// backends may be nil to talk to the live Stripe API.
func NewStripeCheckout(secretKey string, backends *stripe.Backends) *StripeCheckout {
	if secretKey == "" {
		return &StripeCheckout{}
	}
	api := &client.API{}
	api.Init(secretKey, backends)
	return &StripeCheckout{
		api:      api,
		testMode: strings.HasPrefix(secretKey, "sk_test_"),
	}
}

// IsTestMode reports whether the key is a sandbox key.
func (s *StripeCheckout) IsTestMode() bool {
	return s.testMode
}

// CreateCheckout creates a session for one ticket and returns its payment URL.
func (s *StripeCheckout) CreateCheckout(ctx context.Context, req CheckoutRequest) (string, error) {
	if s.api == nil {
		return "", ErrNotConfigured
	}
	if req.AmountSGD <= 0 {
		return "", ErrInvalidAmount
	}

	params := &stripe.CheckoutSessionParams{
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems: []*stripe.CheckoutSessionLineItemParams{{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency: stripe.String(currency),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(req.ItemName),
				},
				UnitAmount: stripe.Int64(req.AmountSGD * 100),
			},
			Quantity: stripe.Int64(1),
		}},
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(req.SuccessURL),
		CancelURL:  stripe.String(req.CancelURL),
	}
	params.Context = ctx

	sess, err := s.api.CheckoutSessions.New(params)
	if err != nil {
		return "", fmt.Errorf("create checkout session: %w", err)
	}
	return sess.URL, nil
}

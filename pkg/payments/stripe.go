package payments

import (
	"context"
	"fmt"
	"math"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/paymentintent"
)

// ProcessorError wraps any failure from the payment processor so
// callers can tell it apart from storage errors. It is never swallowed;
// handlers surface it through the error boundary.
type ProcessorError struct {
	Err error
}

func (e *ProcessorError) Error() string {
	return fmt.Sprintf("payment processor: %v", e.Err)
}

func (e *ProcessorError) Unwrap() error { return e.Err }

// Bridge turns an order total into a card payment intent and exposes
// only the client secret. Currency is fixed to USD.
type Bridge struct {
	create func(params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error)
}

// NewBridge sets the process-wide Stripe key and returns a bridge bound
// to the live paymentintent API.
func NewBridge(apiKey string) *Bridge {
	stripe.Key = apiKey
	return &Bridge{create: paymentintent.New}
}

// MinorUnits converts a decimal dollar amount to integer cents,
// rounding so amounts like 19.99 become 1999 rather than 1998.
func MinorUnits(total float64) int64 {
	return int64(math.Round(total * 100))
}

// CreateIntent requests a card payment intent for the given dollar
// total and returns the client secret.
func (b *Bridge) CreateIntent(ctx context.Context, total float64) (string, error) {
	amount := MinorUnits(total)
	if amount <= 0 {
		return "", &ProcessorError{Err: fmt.Errorf("invalid amount %d", amount)}
	}

	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(amount),
		Currency:           stripe.String(string(stripe.CurrencyUSD)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}
	params.Context = ctx

	intent, err := b.create(params)
	if err != nil {
		return "", &ProcessorError{Err: err}
	}
	return intent.ClientSecret, nil
}

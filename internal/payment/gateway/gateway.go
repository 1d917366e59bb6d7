// Package gateway defines the payment gateway port. The service talks to
// this interface; adapters translate to a concrete provider.
package gateway

import "context"

// Order is the gateway-side order created before checkout.
type Order struct {
	Ref      string
	Amount   float64
	Currency string
}

// Gateway is the payment provider port.
type Gateway interface {
	// CreateOrder registers an order with the provider and returns its
	// reference. Receipt is an idempotency handle from our side.
	CreateOrder(ctx context.Context, amount float64, receipt string) (*Order, error)

	// VerifySignature checks the checkout callback signature binding the
	// payment to the order. A nil return means the payment is genuine.
	VerifySignature(orderRef, paymentRef, signature string) error

	// Refund returns money on a captured payment and yields the provider's
	// refund reference.
	Refund(ctx context.Context, paymentRef string, amount float64) (string, error)
}

package gateway

import (
	"context"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync/atomic"

	dErrors "propertyhub/pkg/domain-errors"
)

// FakeGateway is an in-process provider for development and tests. It mimics
// the reference provider's contract: opaque order_ and pay_ references and an
// HMAC-SHA256 checkout signature over "orderRef|paymentRef".
type FakeGateway struct {
	secret  []byte
	orders  atomic.Int64
	refunds atomic.Int64
}

// NewFakeGateway creates a fake provider keyed with the given secret.
func NewFakeGateway(secret string) *FakeGateway {
	return &FakeGateway{secret: []byte(secret)}
}

// CreateOrder issues a fresh order reference.
func (g *FakeGateway) CreateOrder(ctx context.Context, amount float64, receipt string) (*Order, error) {
	if amount <= 0 {
		return nil, dErrors.New(dErrors.CodeGatewayRejected, "gateway rejected non-positive amount")
	}
	g.orders.Add(1)
	return &Order{
		Ref:      "order_" + randomToken(),
		Amount:   amount,
		Currency: "INR",
	}, nil
}

// VerifySignature recomputes the checkout HMAC and compares.
func (g *FakeGateway) VerifySignature(orderRef, paymentRef, signature string) error {
	if !hmac.Equal([]byte(g.Sign(orderRef, paymentRef)), []byte(signature)) {
		return dErrors.New(dErrors.CodeGatewayRejected, "checkout signature mismatch")
	}
	return nil
}

// Refund issues a refund reference.
func (g *FakeGateway) Refund(ctx context.Context, paymentRef string, amount float64) (string, error) {
	if amount <= 0 {
		return "", dErrors.New(dErrors.CodeGatewayRejected, "gateway rejected non-positive refund")
	}
	g.refunds.Add(1)
	return "rfnd_" + randomToken(), nil
}

// Sign computes the checkout signature for an order and payment pair. Tests
// and the simulated checkout flow use it to produce valid callbacks.
func (g *FakeGateway) Sign(orderRef, paymentRef string) string {
	mac := hmac.New(sha256.New, g.secret)
	fmt.Fprintf(mac, "%s|%s", orderRef, paymentRef)
	return hex.EncodeToString(mac.Sum(nil))
}

// NewPaymentRef issues a pay_ reference the way the provider's checkout
// would. Only the simulated flow needs this.
func (g *FakeGateway) NewPaymentRef() string {
	return "pay_" + randomToken()
}

func randomToken() string {
	buf := make([]byte, 12)
	if _, err := rand.Read(buf); err != nil {
		panic(err)
	}
	return hex.EncodeToString(buf)
}

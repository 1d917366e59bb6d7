// Package service implements the rent payment lifecycle: order creation,
// checkout verification, listing, refunds, and cancellation.
package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"propertyhub/internal/payment/gateway"
	"propertyhub/internal/payment/models"
	"propertyhub/internal/platform/tracer"
	"propertyhub/pkg/domain"
	dErrors "propertyhub/pkg/domain-errors"
)

// PaymentStore persists payments.
type PaymentStore interface {
	Create(ctx context.Context, payment *models.Payment) error
	FindByID(ctx context.Context, id domain.PaymentID) (*models.Payment, error)
	FindByOrderRef(ctx context.Context, orderRef string) (*models.Payment, error)
	Update(ctx context.Context, payment *models.Payment) error
	List(ctx context.Context, filter models.ListFilter) (*models.Page, error)
}

// Service wires the payment operations against the provider port.
type Service struct {
	payments PaymentStore
	provider gateway.Gateway
	logger   *slog.Logger
	tracer   tracer.Tracer
}

// Option configures the Service.
type Option func(*Service)

// WithLogger overrides the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithTracer overrides the tracer.
func WithTracer(t tracer.Tracer) Option {
	return func(s *Service) {
		if t != nil {
			s.tracer = t
		}
	}
}

// New constructs the payment service.
func New(payments PaymentStore, provider gateway.Gateway, opts ...Option) (*Service, error) {
	if payments == nil || provider == nil {
		return nil, errors.New("payment store and gateway are required")
	}
	s := &Service{
		payments: payments,
		provider: provider,
		logger:   slog.Default(),
		tracer:   tracer.Noop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s, nil
}

// CreateOrder registers an order with the provider and records the payment
// as Pending.
func (s *Service) CreateOrder(ctx context.Context, in models.OrderInput) (*models.Payment, error) {
	ctx, span := s.tracer.Start(ctx, "payment.create_order",
		tracer.Int64("tenant_id", int64(in.TenantID)),
		tracer.Float64("amount", in.Amount),
	)
	var err error
	defer func() { span.End(err) }()

	receipt := "rcpt_" + uuid.NewString()
	order, err := s.provider.CreateOrder(ctx, in.Amount, receipt)
	if err != nil {
		err = dErrors.Wrap(err, dErrors.CodeGatewayRejected, "order creation failed")
		return nil, err
	}

	payment := &models.Payment{
		OrderRef:    order.Ref,
		TenantID:    in.TenantID,
		PropertyID:  in.PropertyID,
		RoomID:      in.RoomID,
		Amount:      in.Amount,
		Description: in.Description,
		Status:      domain.PaymentPending,
	}
	if err = s.payments.Create(ctx, payment); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "payment order created",
		"payment_id", payment.ID.String(),
		"order_ref", payment.OrderRef,
		"tenant_id", payment.TenantID.String(),
	)
	observeStatus(domain.PaymentPending)
	return payment, nil
}

// Verify checks the checkout callback against the provider. A genuine
// signature captures the payment; a rejected one marks it Failed and the
// rejection propagates.
func (s *Service) Verify(ctx context.Context, in models.VerifyInput) (*models.Payment, error) {
	ctx, span := s.tracer.Start(ctx, "payment.verify",
		tracer.String("order_ref", in.OrderRef),
	)
	var err error
	defer func() { span.End(err) }()

	payment, err := s.payments.FindByOrderRef(ctx, in.OrderRef)
	if err != nil {
		return nil, err
	}
	if payment.Status != domain.PaymentPending {
		err = dErrors.New(dErrors.CodeConflict, "payment is not awaiting verification")
		return nil, err
	}

	if verifyErr := s.provider.VerifySignature(in.OrderRef, in.PaymentRef, in.Signature); verifyErr != nil {
		payment.Status = domain.PaymentFailed
		payment.Reason = "signature verification failed"
		if updateErr := s.payments.Update(ctx, payment); updateErr != nil {
			s.logger.ErrorContext(ctx, "could not record failed verification",
				"error", updateErr,
				"payment_id", payment.ID.String(),
			)
		}
		observeStatus(domain.PaymentFailed)
		err = verifyErr
		return nil, err
	}

	payment.PaymentRef = in.PaymentRef
	payment.Status = domain.PaymentCaptured
	if err = s.payments.Update(ctx, payment); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "payment captured",
		"payment_id", payment.ID.String(),
		"payment_ref", payment.PaymentRef,
	)
	observeStatus(domain.PaymentCaptured)
	return payment, nil
}

// List returns one page of payments. The filter arrives already validated
// and defaulted by the query schema.
func (s *Service) List(ctx context.Context, filter models.ListFilter) (*models.Page, error) {
	return s.payments.List(ctx, filter)
}

// Refund returns money on a captured payment. Amount zero refunds in full;
// a partial amount must not exceed what was captured.
func (s *Service) Refund(ctx context.Context, in models.RefundInput) (*models.Payment, error) {
	ctx, span := s.tracer.Start(ctx, "payment.refund",
		tracer.Int64("payment_id", int64(in.PaymentID)),
	)
	var err error
	defer func() { span.End(err) }()

	payment, err := s.payments.FindByID(ctx, in.PaymentID)
	if err != nil {
		return nil, err
	}
	switch payment.Status {
	case domain.PaymentRefunded:
		err = dErrors.New(dErrors.CodeAlreadyRefunded, "payment was already refunded")
		return nil, err
	case domain.PaymentCaptured:
	default:
		err = dErrors.New(dErrors.CodeNotRefundable, "only captured payments can be refunded")
		return nil, err
	}

	amount := in.Amount
	if amount == 0 {
		amount = payment.Amount
	}
	if amount > payment.Amount {
		err = dErrors.New(dErrors.CodeInvalidInput, "refund exceeds captured amount")
		return nil, err
	}

	refundRef, err := s.provider.Refund(ctx, payment.PaymentRef, amount)
	if err != nil {
		err = dErrors.Wrap(err, dErrors.CodeGatewayRejected, "refund failed")
		return nil, err
	}

	payment.Status = domain.PaymentRefunded
	payment.RefundRef = refundRef
	payment.RefundedAmount = amount
	payment.Reason = in.Reason
	if err = s.payments.Update(ctx, payment); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "payment refunded",
		"payment_id", payment.ID.String(),
		"refund_ref", refundRef,
		"amount", amount,
	)
	observeStatus(domain.PaymentRefunded)
	observeRefund(amount)
	return payment, nil
}

// Cancel abandons a pending order before checkout completes. The reason is
// recorded on the payment; callers that give none get the schema default.
func (s *Service) Cancel(ctx context.Context, id domain.PaymentID, reason string) (*models.Payment, error) {
	ctx, span := s.tracer.Start(ctx, "payment.cancel",
		tracer.Int64("payment_id", int64(id)),
	)
	var err error
	defer func() { span.End(err) }()

	payment, err := s.payments.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if payment.Status != domain.PaymentPending {
		err = dErrors.New(dErrors.CodeConflict, "only pending payments can be cancelled")
		return nil, err
	}

	payment.Status = domain.PaymentFailed
	payment.Reason = reason
	if err = s.payments.Update(ctx, payment); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "payment cancelled",
		"payment_id", payment.ID.String(),
		"reason", reason,
	)
	observeStatus(domain.PaymentFailed)
	return payment, nil
}

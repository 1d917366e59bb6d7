package service

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"

	"propertyhub/internal/payment/gateway"
	"propertyhub/internal/payment/models"
	paymentstore "propertyhub/internal/payment/store/payment"
	"propertyhub/internal/validate"
	"propertyhub/pkg/domain"
	dErrors "propertyhub/pkg/domain-errors"
)

type PaymentSuite struct {
	suite.Suite
	provider *gateway.FakeGateway
	service  *Service
}

func (s *PaymentSuite) SetupTest() {
	s.provider = gateway.NewFakeGateway("test-secret")
	store := paymentstore.NewInMemoryPaymentStore()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc, err := New(store, s.provider, WithLogger(logger))
	s.Require().NoError(err)
	s.service = svc
}

func TestPaymentSuite(t *testing.T) {
	suite.Run(t, new(PaymentSuite))
}

func (s *PaymentSuite) orderInput() models.OrderInput {
	return models.OrderInput{
		TenantID:    domain.TenantID(3),
		PropertyID:  domain.PropertyID(1),
		RoomID:      domain.RoomID(101),
		Amount:      8500.50,
		Description: "August rent",
	}
}

func (s *PaymentSuite) createPending() *models.Payment {
	payment, err := s.service.CreateOrder(context.Background(), s.orderInput())
	s.Require().NoError(err)
	return payment
}

func (s *PaymentSuite) capture(payment *models.Payment) *models.Payment {
	payRef := s.provider.NewPaymentRef()
	captured, err := s.service.Verify(context.Background(), models.VerifyInput{
		OrderRef:   payment.OrderRef,
		PaymentRef: payRef,
		Signature:  s.provider.Sign(payment.OrderRef, payRef),
	})
	s.Require().NoError(err)
	return captured
}

func (s *PaymentSuite) TestCreateOrder() {
	payment := s.createPending()
	s.Equal(domain.PaymentPending, payment.Status)
	s.True(strings.HasPrefix(payment.OrderRef, "order_"))
	s.Equal(8500.50, payment.Amount)
}

func (s *PaymentSuite) TestVerifyCapturesGenuineCallback() {
	payment := s.createPending()
	captured := s.capture(payment)
	s.Equal(domain.PaymentCaptured, captured.Status)
	s.True(strings.HasPrefix(captured.PaymentRef, "pay_"))
}

func (s *PaymentSuite) TestVerifyRejectsForgedSignature() {
	payment := s.createPending()

	_, err := s.service.Verify(context.Background(), models.VerifyInput{
		OrderRef:   payment.OrderRef,
		PaymentRef: s.provider.NewPaymentRef(),
		Signature:  "forged",
	})
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeGatewayRejected))

	// The failure is recorded on the payment.
	page, listErr := s.service.List(context.Background(), models.ListFilter{Page: 1, Limit: 10})
	s.Require().NoError(listErr)
	s.Require().Len(page.Payments, 1)
	s.Equal(domain.PaymentFailed, page.Payments[0].Status)
}

func (s *PaymentSuite) TestVerifyTwiceConflicts() {
	payment := s.createPending()
	s.capture(payment)

	payRef := s.provider.NewPaymentRef()
	_, err := s.service.Verify(context.Background(), models.VerifyInput{
		OrderRef:   payment.OrderRef,
		PaymentRef: payRef,
		Signature:  s.provider.Sign(payment.OrderRef, payRef),
	})
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeConflict))
}

func (s *PaymentSuite) TestRefundFullByDefault() {
	captured := s.capture(s.createPending())

	refunded, err := s.service.Refund(context.Background(), models.RefundInput{
		PaymentID: captured.ID,
		Reason:    "tenant moved out",
	})
	s.Require().NoError(err)
	s.Equal(domain.PaymentRefunded, refunded.Status)
	s.Equal(captured.Amount, refunded.RefundedAmount)
	s.True(strings.HasPrefix(refunded.RefundRef, "rfnd_"))
}

func (s *PaymentSuite) TestRefundPartial() {
	captured := s.capture(s.createPending())

	refunded, err := s.service.Refund(context.Background(), models.RefundInput{
		PaymentID: captured.ID,
		Amount:    1000,
	})
	s.Require().NoError(err)
	s.Equal(float64(1000), refunded.RefundedAmount)
}

func (s *PaymentSuite) TestRefundExceedingAmountRejected() {
	captured := s.capture(s.createPending())

	_, err := s.service.Refund(context.Background(), models.RefundInput{
		PaymentID: captured.ID,
		Amount:    captured.Amount + 1,
	})
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
}

func (s *PaymentSuite) TestRefundPendingNotRefundable() {
	payment := s.createPending()

	_, err := s.service.Refund(context.Background(), models.RefundInput{PaymentID: payment.ID})
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeNotRefundable))
}

func (s *PaymentSuite) TestRefundTwice() {
	captured := s.capture(s.createPending())

	_, err := s.service.Refund(context.Background(), models.RefundInput{PaymentID: captured.ID})
	s.Require().NoError(err)

	_, err = s.service.Refund(context.Background(), models.RefundInput{PaymentID: captured.ID})
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeAlreadyRefunded))
}

func (s *PaymentSuite) TestCancelPending() {
	payment := s.createPending()

	cancelled, err := s.service.Cancel(context.Background(), payment.ID, validate.DefaultCancelReason)
	s.Require().NoError(err)
	s.Equal(domain.PaymentFailed, cancelled.Status)
	s.Equal(validate.DefaultCancelReason, cancelled.Reason)
}

func (s *PaymentSuite) TestCancelCapturedConflicts() {
	captured := s.capture(s.createPending())

	_, err := s.service.Cancel(context.Background(), captured.ID, "changed my mind")
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeConflict))
}

func (s *PaymentSuite) TestListFiltersByStatus() {
	s.capture(s.createPending())
	s.createPending()

	page, err := s.service.List(context.Background(), models.ListFilter{
		Page:   1,
		Limit:  10,
		Status: domain.PaymentCaptured,
	})
	s.Require().NoError(err)
	s.Require().Len(page.Payments, 1)
	s.Equal(domain.PaymentCaptured, page.Payments[0].Status)
}

func (s *PaymentSuite) TestListNewestFirst() {
	first := s.createPending()
	second := s.createPending()

	page, err := s.service.List(context.Background(), models.ListFilter{Page: 1, Limit: 10})
	s.Require().NoError(err)
	s.Require().Len(page.Payments, 2)
	s.Equal(second.ID, page.Payments[0].ID)
	s.Equal(first.ID, page.Payments[1].ID)
}

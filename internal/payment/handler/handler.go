// Package handler exposes the payment endpoints.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"propertyhub/internal/payment/models"
	jsonResponse "propertyhub/internal/transport/http/json"
	"propertyhub/internal/transport/http/shared"
	"propertyhub/internal/validate"
	"propertyhub/pkg/domain"
)

// Service defines the payment operations the handler delegates to.
type Service interface {
	CreateOrder(ctx context.Context, in models.OrderInput) (*models.Payment, error)
	Verify(ctx context.Context, in models.VerifyInput) (*models.Payment, error)
	List(ctx context.Context, filter models.ListFilter) (*models.Page, error)
	Refund(ctx context.Context, in models.RefundInput) (*models.Payment, error)
	Cancel(ctx context.Context, id domain.PaymentID, reason string) (*models.Payment, error)
}

// Handler handles the payment endpoints.
type Handler struct {
	payments Service
	logger   *slog.Logger
}

// New creates a payment Handler.
func New(payments Service, logger *slog.Logger) *Handler {
	return &Handler{payments: payments, logger: logger}
}

// Register registers the payment routes. Refunds are mounted separately so
// the parent router can restrict them to admins.
func (h *Handler) Register(r chi.Router) {
	r.Post("/payments/order", h.HandleCreateOrder)
	r.Post("/payments/verify", h.HandleVerify)
	r.Post("/payments/cancel", h.HandleCancel)
	r.Get("/payments", h.HandleList)
}

// RegisterAdmin registers the refund route.
func (h *Handler) RegisterAdmin(r chi.Router) {
	r.Post("/payments/refund", h.HandleRefund)
}

type paymentResponse struct {
	ID             int64   `json:"id"`
	OrderRef       string  `json:"orderId"`
	PaymentRef     string  `json:"paymentId,omitempty"`
	TenantID       int64   `json:"tenantId"`
	PropertyID     int64   `json:"propertyId"`
	RoomID         int64   `json:"roomId"`
	Amount         float64 `json:"amount"`
	Description    string  `json:"description,omitempty"`
	Status         string  `json:"status"`
	Reason         string  `json:"reason,omitempty"`
	RefundRef      string  `json:"refundId,omitempty"`
	RefundedAmount float64 `json:"refundedAmount,omitempty"`
	CreatedAt      string  `json:"createdAt"`
}

// HandleCreateOrder implements POST /payments/order.
func (h *Handler) HandleCreateOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	body, err := shared.DecodeBody(r)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	res := validate.PaymentOrder.Validate(body)
	if !res.Accepted() {
		shared.WriteValidationErrors(w, res.Errors)
		return
	}

	tenantID, _ := shared.Int64(res.Value, "tenantId")
	propertyID, _ := shared.Int64(res.Value, "propertyId")
	roomID, _ := shared.Int64(res.Value, "roomId")
	amount, _ := shared.Float64(res.Value, "amount")

	payment, err := h.payments.CreateOrder(ctx, models.OrderInput{
		TenantID:    domain.TenantID(tenantID),
		PropertyID:  domain.PropertyID(propertyID),
		RoomID:      domain.RoomID(roomID),
		Amount:      amount,
		Description: shared.Str(res.Value, "description"),
	})
	if err != nil {
		h.logger.WarnContext(ctx, "order creation failed", "error", err)
		shared.WriteError(w, err)
		return
	}
	jsonResponse.WriteJSON(w, http.StatusCreated, newPaymentResponse(payment))
}

// HandleVerify implements POST /payments/verify.
func (h *Handler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	body, err := shared.DecodeBody(r)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	res := validate.PaymentVerify.Validate(body)
	if !res.Accepted() {
		shared.WriteValidationErrors(w, res.Errors)
		return
	}

	payment, err := h.payments.Verify(ctx, models.VerifyInput{
		OrderRef:   shared.Str(res.Value, "orderId"),
		PaymentRef: shared.Str(res.Value, "paymentId"),
		Signature:  shared.Str(res.Value, "signature"),
	})
	if err != nil {
		h.logger.WarnContext(ctx, "payment verification failed", "error", err)
		shared.WriteError(w, err)
		return
	}
	jsonResponse.WriteJSON(w, http.StatusOK, newPaymentResponse(payment))
}

// paymentQueryKeys are the query parameters the listing schema understands.
var paymentQueryKeys = []string{"page", "limit", "status", "tenantId", "propertyId", "startDate", "endDate"}

// HandleList implements GET /payments.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	input := make(map[string]any)
	query := r.URL.Query()
	for _, key := range paymentQueryKeys {
		if v := query.Get(key); v != "" {
			input[key] = v
		}
	}

	res := validate.PaymentListQuery.Validate(input)
	if !res.Accepted() {
		shared.WriteValidationErrors(w, res.Errors)
		return
	}

	filter := models.ListFilter{
		Status: domain.PaymentStatus(shared.Str(res.Value, "status")),
	}
	page, _ := shared.Int64(res.Value, "page")
	limit, _ := shared.Int64(res.Value, "limit")
	filter.Page = int(page)
	filter.Limit = int(limit)
	if tenantID, ok := shared.Int64(res.Value, "tenantId"); ok {
		filter.TenantID = domain.TenantID(tenantID)
	}
	if propertyID, ok := shared.Int64(res.Value, "propertyId"); ok {
		filter.PropertyID = domain.PropertyID(propertyID)
	}
	// The schema already guarantees both dates parse and endDate is not
	// before startDate.
	if s := shared.Str(res.Value, "startDate"); s != "" {
		filter.StartDate, _ = time.Parse("2006-01-02", s)
	}
	if s := shared.Str(res.Value, "endDate"); s != "" {
		filter.EndDate, _ = time.Parse("2006-01-02", s)
	}

	result, err := h.payments.List(ctx, filter)
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	resp := map[string]any{
		"payments":   newPaymentResponses(result.Payments),
		"total":      result.Total,
		"page":       result.PageNumber,
		"limit":      result.Limit,
		"totalPages": result.TotalPages,
	}
	jsonResponse.WriteJSON(w, http.StatusOK, resp)
}

// HandleRefund implements POST /payments/refund.
func (h *Handler) HandleRefund(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	body, err := shared.DecodeBody(r)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	res := validate.Refund.Validate(body)
	if !res.Accepted() {
		shared.WriteValidationErrors(w, res.Errors)
		return
	}

	paymentID, _ := shared.Int64(res.Value, "paymentId")
	in := models.RefundInput{
		PaymentID: domain.PaymentID(paymentID),
		Reason:    shared.Str(res.Value, "reason"),
	}
	if amount, ok := shared.Float64(res.Value, "amount"); ok {
		in.Amount = amount
	}

	payment, err := h.payments.Refund(ctx, in)
	if err != nil {
		h.logger.WarnContext(ctx, "refund failed",
			"error", err,
			"payment_id", paymentID,
		)
		shared.WriteError(w, err)
		return
	}
	jsonResponse.WriteJSON(w, http.StatusOK, newPaymentResponse(payment))
}

// HandleCancel implements POST /payments/cancel. The reason falls back to
// the schema default when the caller gives none.
func (h *Handler) HandleCancel(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	body, err := shared.DecodeBody(r)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	res := validate.CancelPayment.Validate(body)
	if !res.Accepted() {
		shared.WriteValidationErrors(w, res.Errors)
		return
	}

	paymentID, _ := shared.Int64(res.Value, "paymentId")
	payment, err := h.payments.Cancel(ctx, domain.PaymentID(paymentID), shared.Str(res.Value, "reason"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	jsonResponse.WriteJSON(w, http.StatusOK, newPaymentResponse(payment))
}

func newPaymentResponse(payment *models.Payment) paymentResponse {
	return paymentResponse{
		ID:             int64(payment.ID),
		OrderRef:       payment.OrderRef,
		PaymentRef:     payment.PaymentRef,
		TenantID:       int64(payment.TenantID),
		PropertyID:     int64(payment.PropertyID),
		RoomID:         int64(payment.RoomID),
		Amount:         payment.Amount,
		Description:    payment.Description,
		Status:         string(payment.Status),
		Reason:         payment.Reason,
		RefundRef:      payment.RefundRef,
		RefundedAmount: payment.RefundedAmount,
		CreatedAt:      payment.CreatedAt.Format(time.RFC3339),
	}
}

func newPaymentResponses(payments []*models.Payment) []paymentResponse {
	resp := make([]paymentResponse, 0, len(payments))
	for _, payment := range payments {
		resp = append(resp, newPaymentResponse(payment))
	}
	return resp
}

package handler

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"propertyhub/internal/payment/gateway"
	"propertyhub/internal/payment/service"
	paymentstore "propertyhub/internal/payment/store/payment"
	"propertyhub/internal/validate"
)

func newTestServer(t *testing.T) (http.Handler, *gateway.FakeGateway) {
	t.Helper()
	provider := gateway.NewFakeGateway("test-secret")
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc, err := service.New(paymentstore.NewInMemoryPaymentStore(), provider, service.WithLogger(logger))
	require.NoError(t, err)

	r := chi.NewRouter()
	h := New(svc, logger)
	h.Register(r)
	h.RegisterAdmin(r)
	return r, provider
}

func post(t *testing.T, srv http.Handler, path, body string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return rec.Code, resp
}

func TestCreateOrder(t *testing.T) {
	srv, _ := newTestServer(t)

	code, resp := post(t, srv, "/payments/order",
		`{"tenantId":3,"propertyId":1,"roomId":101,"amount":8500.50,"description":"August rent"}`)
	require.Equal(t, http.StatusCreated, code)
	assert.Equal(t, "Pending", resp["status"])
	assert.True(t, strings.HasPrefix(resp["orderId"].(string), "order_"))
}

func TestCreateOrderRejectsExcessPrecision(t *testing.T) {
	srv, _ := newTestServer(t)

	code, resp := post(t, srv, "/payments/order",
		`{"tenantId":3,"propertyId":1,"roomId":101,"amount":8500.505}`)
	require.Equal(t, http.StatusUnprocessableEntity, code)
	details := resp["details"].([]any)
	require.Len(t, details, 1)
	assert.Equal(t, "number.precision", details[0].(map[string]any)["code"])
}

func TestVerifyRejectsMalformedReferences(t *testing.T) {
	srv, _ := newTestServer(t)

	code, resp := post(t, srv, "/payments/verify",
		`{"orderId":"not-an-order","paymentId":"pay_abc","signature":"sig"}`)
	require.Equal(t, http.StatusUnprocessableEntity, code)
	details := resp["details"].([]any)
	require.Len(t, details, 1)
	assert.Equal(t, "orderId", details[0].(map[string]any)["field"])
	assert.Equal(t, "string.pattern", details[0].(map[string]any)["code"])
}

func TestVerifyCaptures(t *testing.T) {
	srv, provider := newTestServer(t)

	_, created := post(t, srv, "/payments/order",
		`{"tenantId":3,"propertyId":1,"roomId":101,"amount":100}`)
	orderRef := created["orderId"].(string)
	payRef := provider.NewPaymentRef()

	code, resp := post(t, srv, "/payments/verify",
		`{"orderId":"`+orderRef+`","paymentId":"`+payRef+`","signature":"`+provider.Sign(orderRef, payRef)+`"}`)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Captured", resp["status"])
}

func TestCancelAppliesDefaultReason(t *testing.T) {
	srv, _ := newTestServer(t)

	_, created := post(t, srv, "/payments/order",
		`{"tenantId":3,"propertyId":1,"roomId":101,"amount":100}`)

	code, resp := post(t, srv, "/payments/cancel",
		fmt.Sprintf(`{"paymentId":%.0f}`, created["id"].(float64)))
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Failed", resp["status"])
	assert.Equal(t, validate.DefaultCancelReason, resp["reason"])
}

func TestListAppliesDateRangeValidation(t *testing.T) {
	srv, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/payments?startDate=2026-08-10&endDate=2026-08-01", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "date.min")
}

func TestRefundRequiresCapture(t *testing.T) {
	srv, _ := newTestServer(t)

	_, created := post(t, srv, "/payments/order",
		`{"tenantId":3,"propertyId":1,"roomId":101,"amount":100}`)

	code, resp := post(t, srv, "/payments/refund",
		fmt.Sprintf(`{"paymentId":%.0f}`, created["id"].(float64)))
	require.Equal(t, http.StatusUnprocessableEntity, code)
	assert.Equal(t, "not_refundable", resp["error"])
}

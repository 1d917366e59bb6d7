package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"propertyhub/pkg/domain"
)

var (
	paymentTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "propertyhub_payment_transitions_total",
		Help: "Payment lifecycle transitions by resulting status.",
	}, []string{"status"})

	refundedAmount = promauto.NewCounter(prometheus.CounterOpts{
		Name: "propertyhub_payment_refunded_amount_total",
		Help: "Total amount refunded across all payments.",
	})
)

func observeStatus(status domain.PaymentStatus) {
	paymentTransitions.WithLabelValues(string(status)).Inc()
}

func observeRefund(amount float64) {
	refundedAmount.Add(amount)
}

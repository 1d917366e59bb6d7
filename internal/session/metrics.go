package session

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	authenticatedGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "propertyhub_session_authenticated",
		Help: "1 when the session manager currently holds a valid credential",
	})
	stateTransitions = promauto.NewCounter(prometheus.CounterOpts{
		Name: "propertyhub_session_state_transitions_total",
		Help: "Total number of auth state transitions",
	})
)

func observeState(s AuthState) {
	stateTransitions.Inc()
	if s.IsAuthenticated {
		authenticatedGauge.Set(1)
	} else {
		authenticatedGauge.Set(0)
	}
}

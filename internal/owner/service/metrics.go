package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"propertyhub/pkg/domain"
)

var statusChanges = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "propertyhub_owner_status_changes_total",
	Help: "Owner moderation actions by resulting status.",
}, []string{"status"})

func observeStatusChange(status domain.OwnerStatus) {
	statusChanges.WithLabelValues(string(status)).Inc()
}

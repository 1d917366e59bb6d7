package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	usersCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "propertyhub_auth_users_created_total",
		Help: "Accounts created through registration.",
	})
	authFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "propertyhub_auth_failures_total",
		Help: "Rejected credential checks across login and password change.",
	})
)

func observeUserCreated() { usersCreated.Inc() }

func observeAuthFailure() { authFailures.Inc() }

package service

import (
	"github.com/influmatch/backend/internal/observability/metrics"
)

func incrementSignups(outcome string) {
	metrics.SignupsTotal.WithLabelValues(outcome).Inc()
}

func incrementLogins(outcome string) {
	metrics.LoginsTotal.WithLabelValues(outcome).Inc()
}

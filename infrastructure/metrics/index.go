package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var verificationAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "attendly_verification_attempts_total",
	Help: "Face verification attempts by verdict and reason.",
}, []string{"verdict", "reason"})

var attendanceTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "attendly_attendance_transitions_total",
	Help: "Attendance state transitions by kind and outcome.",
}, []string{"kind", "outcome"})

func RecordVerification(verdict string, reason string) {
	verificationAttempts.WithLabelValues(verdict, reason).Inc()
}

func RecordTransition(kind string, outcome string) {
	attendanceTransitions.WithLabelValues(kind, outcome).Inc()
}

// Handler exposes the prometheus scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels for validation attempts
const (
	OutcomeSuccess  = "success"
	OutcomeNoCode   = "no_active_code"
	OutcomeExpired  = "expired"
	OutcomeMismatch = "mismatch"
	OutcomeError    = "error"
)

var (
	// CodesIssued counts successfully issued verification codes per channel
	CodesIssued = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "verification_codes_issued_total",
		Help: "Number of verification codes issued",
	}, []string{"channel"})

	// Validations counts validation attempts per channel and outcome
	Validations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "verification_validations_total",
		Help: "Number of verification code validation attempts",
	}, []string{"channel", "outcome"})

	// DeliveryFailures counts transport failures per channel
	DeliveryFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "verification_delivery_failures_total",
		Help: "Number of failed code delivery attempts",
	}, []string{"channel"})
)

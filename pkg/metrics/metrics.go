package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all application metrics
type Metrics struct {
	RequestDuration *prometheus.HistogramVec
	RequestTotal    *prometheus.CounterVec
	ErrorTotal      *prometheus.CounterVec

	PatientsAdmitted   prometheus.Counter
	PatientsDischarged prometheus.Counter
	VisitsRegistered   prometheus.Counter
	LoginFailures      prometheus.Counter
}

// NewMetrics creates and registers all application metrics
func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		RequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds",
		}, []string{"method", "path", "status"}),
		RequestTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		}, []string{"method", "path", "status"}),
		ErrorTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "errors_total",
			Help:      "Total number of HTTP errors",
		}, []string{"method", "path", "type"}),

		PatientsAdmitted: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "patients_admitted_total",
			Help:      "Total number of patients admitted",
		}),
		PatientsDischarged: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "patients_discharged_total",
			Help:      "Total number of patients discharged",
		}),
		VisitsRegistered: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "visits_registered_total",
			Help:      "Total number of visitor check-ins",
		}),
		LoginFailures: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "login_failures_total",
			Help:      "Total number of failed login attempts",
		}),
	}
}

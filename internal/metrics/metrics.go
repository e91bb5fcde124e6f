package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	EventRegistered    = "registered"
	EventLoggedIn      = "logged_in"
	EventLoginFailed   = "login_failed"
	EventQuestionAsked = "question_asked"
	EventAnswered      = "question_answered"
	EventPromoted      = "promoted"
	EventDemoted       = "demoted"
)

var (
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "expertqa_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"route", "method", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "expertqa_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)

	EventsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "expertqa_events_total",
			Help: "Domain events by kind",
		},
		[]string{"event"},
	)

	LeasesAcquired = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "expertqa_db_leases_acquired_total",
			Help: "Requests that checked out a database connection",
		},
	)
)

func init() {
	prometheus.MustRegister(
		RequestsTotal,
		RequestDuration,
		EventsTotal,
		LeasesAcquired,
	)
}

func RecordRequest(route, method, status string, duration time.Duration) {
	RequestsTotal.WithLabelValues(route, method, status).Inc()
	RequestDuration.WithLabelValues(route, method).Observe(duration.Seconds())
}

func RecordEvent(event string) {
	EventsTotal.WithLabelValues(event).Inc()
}

func Handler() http.Handler {
	return promhttp.Handler()
}

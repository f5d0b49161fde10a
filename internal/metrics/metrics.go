// Package metrics объявляет метрики Prometheus сервиса. Счётчики
// регистрируются в DefaultRegisterer и отдаются наружу через /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RegistrationsTotal — количество успешных регистраций.
	RegistrationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ragdocs_registrations_total",
		Help: "Total number of successful user registrations.",
	})

	// LoginsTotal — количество попыток входа по результату (success/failure).
	LoginsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ragdocs_logins_total",
		Help: "Total number of login attempts by result.",
	}, []string{"result"})

	// QueriesLoggedTotal — количество записанных RAG-запросов.
	QueriesLoggedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ragdocs_queries_logged_total",
		Help: "Total number of RAG queries recorded.",
	})

	// HTTPDuration — длительность HTTP-запросов по маршруту и статусу.
	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "ragdocs_http_request_duration_seconds",
		Help:    "HTTP request duration by route and status code.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route", "status"})
)

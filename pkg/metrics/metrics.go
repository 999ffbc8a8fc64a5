package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор Prometheus-метрик сервиса.
// Все методы безопасно вызывать на nil-указателе: метрики тогда просто не пишутся.
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueriesTotal    *prometheus.CounterVec
	DBQueryDuration   *prometheus.HistogramVec
	DBOpenConnections prometheus.Gauge
	DBInUse           prometheus.Gauge
	DBIdle            prometheus.Gauge
	DBWaitCount       prometheus.Gauge

	BookingsCreatedTotal        *prometheus.CounterVec
	BookingTransitionsTotal     *prometheus.CounterVec
	AvailabilityRejectionsTotal *prometheus.CounterVec
}

// New регистрирует метрики в глобальном реестре Prometheus
func New(serviceName string) *Metrics {
	return NewWithRegisterer(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegisterer регистрирует метрики в переданном реестре
func NewWithRegisterer(serviceName string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	labels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		HTTPRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: labels,
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration in seconds",
			ConstLabels: labels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),

		DBQueriesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "db_queries_total",
			Help:        "Total number of database queries",
			ConstLabels: labels,
		}, []string{"operation", "status"}),
		DBQueryDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query duration in seconds",
			ConstLabels: labels,
			Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation"}),
		DBOpenConnections: factory.NewGauge(prometheus.GaugeOpts{
			Name:        "db_open_connections",
			Help:        "Number of established connections",
			ConstLabels: labels,
		}),
		DBInUse: factory.NewGauge(prometheus.GaugeOpts{
			Name:        "db_in_use_connections",
			Help:        "Number of connections currently in use",
			ConstLabels: labels,
		}),
		DBIdle: factory.NewGauge(prometheus.GaugeOpts{
			Name:        "db_idle_connections",
			Help:        "Number of idle connections",
			ConstLabels: labels,
		}),
		DBWaitCount: factory.NewGauge(prometheus.GaugeOpts{
			Name:        "db_wait_count",
			Help:        "Total number of connections waited for",
			ConstLabels: labels,
		}),

		BookingsCreatedTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "bookings_created_total",
			Help:        "Total number of created bookings",
			ConstLabels: labels,
		}, []string{"resource_type", "status"}),
		BookingTransitionsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "booking_transitions_total",
			Help:        "Total number of booking status transitions",
			ConstLabels: labels,
		}, []string{"to"}),
		AvailabilityRejectionsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "availability_rejections_total",
			Help:        "Total number of rejected availability checks",
			ConstLabels: labels,
		}, []string{"reason"}),
	}
}

// RecordHTTPRequest записывает метрики HTTP запроса
func (m *Metrics) RecordHTTPRequest(method, route, status string, seconds float64) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(method, route, status).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(seconds)
}

// RecordDBQuery записывает метрики запроса к БД
func (m *Metrics) RecordDBQuery(operation string, failed bool, seconds float64) {
	if m == nil {
		return
	}
	status := "ok"
	if failed {
		status = "error"
	}
	m.DBQueriesTotal.WithLabelValues(operation, status).Inc()
	m.DBQueryDuration.WithLabelValues(operation).Observe(seconds)
}

// RecordBookingCreated увеличивает счётчик созданных бронирований
func (m *Metrics) RecordBookingCreated(resourceType, status string) {
	if m == nil {
		return
	}
	m.BookingsCreatedTotal.WithLabelValues(resourceType, status).Inc()
}

// RecordTransition увеличивает счётчик переходов статуса
func (m *Metrics) RecordTransition(to string) {
	if m == nil {
		return
	}
	m.BookingTransitionsTotal.WithLabelValues(to).Inc()
}

// RecordAvailabilityRejection увеличивает счётчик отказов проверки доступности
func (m *Metrics) RecordAvailabilityRejection(reason string) {
	if m == nil {
		return
	}
	m.AvailabilityRejectionsTotal.WithLabelValues(reason).Inc()
}

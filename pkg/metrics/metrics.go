package metrics

import (
	"database/sql"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics набор prometheus-метрик сервиса
type Metrics struct {
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	dbQueryDuration *prometheus.HistogramVec
	dbErrorsTotal   *prometheus.CounterVec

	dbPoolOpenConns  prometheus.Gauge
	dbPoolInUseConns prometheus.Gauge
	dbPoolIdleConns  prometheus.Gauge

	sweepProcessedTotal *prometheus.CounterVec
}

// New создает и регистрирует метрики в default registry
func New(serviceName string) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		httpRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name:        "http_requests_total",
				Help:        "Total number of HTTP requests",
				ConstLabels: constLabels,
			},
			[]string{"method", "path", "status"},
		),
		httpRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:        "http_request_duration_seconds",
				Help:        "HTTP request duration in seconds",
				ConstLabels: constLabels,
				Buckets:     prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		dbQueryDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:        "db_query_duration_seconds",
				Help:        "Database query duration in seconds",
				ConstLabels: constLabels,
				Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
			},
			[]string{"operation"},
		),
		dbErrorsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name:        "db_errors_total",
				Help:        "Total number of database errors",
				ConstLabels: constLabels,
			},
			[]string{"operation"},
		),
		dbPoolOpenConns: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_pool_open_connections",
			Help:        "Number of open connections in the pool",
			ConstLabels: constLabels,
		}),
		dbPoolInUseConns: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_pool_in_use_connections",
			Help:        "Number of connections currently in use",
			ConstLabels: constLabels,
		}),
		dbPoolIdleConns: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_pool_idle_connections",
			Help:        "Number of idle connections in the pool",
			ConstLabels: constLabels,
		}),
		sweepProcessedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name:        "autoclose_sweep_processed_total",
				Help:        "Bookings processed by the auto-close sweep, by outcome",
				ConstLabels: constLabels,
			},
			[]string{"outcome"},
		),
	}

	prometheus.MustRegister(
		m.httpRequestsTotal,
		m.httpRequestDuration,
		m.dbQueryDuration,
		m.dbErrorsTotal,
		m.dbPoolOpenConns,
		m.dbPoolInUseConns,
		m.dbPoolIdleConns,
		m.sweepProcessedTotal,
	)

	return m
}

// ObserveHTTPRequest записывает метрики HTTP запроса
func (m *Metrics) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	m.httpRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// ObserveDBQuery записывает метрики запроса к БД
func (m *Metrics) ObserveDBQuery(operation string, duration time.Duration, err error) {
	m.dbQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
	if err != nil {
		m.dbErrorsTotal.WithLabelValues(operation).Inc()
	}
}

// SetPoolStats обновляет gauge-метрики connection pool
func (m *Metrics) SetPoolStats(stats sql.DBStats) {
	m.dbPoolOpenConns.Set(float64(stats.OpenConnections))
	m.dbPoolInUseConns.Set(float64(stats.InUse))
	m.dbPoolIdleConns.Set(float64(stats.Idle))
}

// IncSweepProcessed инкрементирует счетчик обработанных sweep-ом бронирований
func (m *Metrics) IncSweepProcessed(outcome string) {
	m.sweepProcessedTotal.WithLabelValues(outcome).Inc()
}

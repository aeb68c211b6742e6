package metrics

import (
	"database/sql"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricPrefix = "kpi_"

	resultSuccess = "success"
	resultError   = "error"
)

var (
	registerOnce sync.Once

	calculateTotal   *prometheus.CounterVec
	calculateLatency *prometheus.HistogramVec

	parseErrors *prometheus.CounterVec

	rowErrors *prometheus.CounterVec

	exportTotal   *prometheus.CounterVec
	exportLatency *prometheus.HistogramVec

	rosterMutations *prometheus.CounterVec
)

// Init registers observability metrics and a DB connection gauge.
func Init(db *sql.DB) {
	registerOnce.Do(func() {
		calculateTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "calculate_total",
				Help: "Total KPI calculation requests by result",
			},
			[]string{"result"},
		)
		calculateLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "calculate_latency_seconds",
				Help:    "KPI calculation latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"result"},
		)

		parseErrors = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "timesheet_parse_errors_total",
				Help: "Total fatal timesheet parse failures by reason",
			},
			[]string{"reason"},
		)

		rowErrors = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "row_errors_total",
				Help: "Total non-fatal row-level findings by kind",
			},
			[]string{"kind"},
		)

		exportTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "export_total",
				Help: "Total result exports by format and result",
			},
			[]string{"format", "result"},
		)
		exportLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "export_latency_seconds",
				Help:    "Result export latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"format", "result"},
		)

		rosterMutations = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "roster_mutations_total",
				Help: "Total roster mutations by action",
			},
			[]string{"action"},
		)

		prometheus.MustRegister(
			calculateTotal,
			calculateLatency,
			parseErrors,
			rowErrors,
			exportTotal,
			exportLatency,
			rosterMutations,
		)

		if db != nil {
			prometheus.MustRegister(prometheus.NewGaugeFunc(
				prometheus.GaugeOpts{
					Name: metricPrefix + "db_open_connections",
					Help: "Open database connections",
				},
				func() float64 { return float64(db.Stats().OpenConnections) },
			))
		}
	})
}

// ObserveCalculate records calculation latency and result.
func ObserveCalculate(result string, duration time.Duration) {
	if result == "" {
		result = resultSuccess
	}
	if calculateTotal != nil {
		calculateTotal.WithLabelValues(result).Inc()
	}
	if calculateLatency != nil {
		calculateLatency.WithLabelValues(result).Observe(duration.Seconds())
	}
}

// IncParseError increments the fatal parse failure counter.
func IncParseError(reason string) {
	if reason == "" {
		reason = "unknown"
	}
	if parseErrors != nil {
		parseErrors.WithLabelValues(reason).Inc()
	}
}

// IncRowError increments a row-level finding counter.
func IncRowError(kind string) {
	if kind == "" {
		kind = "unknown"
	}
	if rowErrors != nil {
		rowErrors.WithLabelValues(kind).Inc()
	}
}

// ObserveExport records export latency by format and result.
func ObserveExport(format, result string, duration time.Duration) {
	if format == "" {
		format = "unknown"
	}
	if result == "" {
		result = resultSuccess
	}
	if exportTotal != nil {
		exportTotal.WithLabelValues(format, result).Inc()
	}
	if exportLatency != nil {
		exportLatency.WithLabelValues(format, result).Observe(duration.Seconds())
	}
}

// IncRosterMutation counts a roster change by action name.
func IncRosterMutation(action string) {
	if action == "" {
		action = "unknown"
	}
	if rosterMutations != nil {
		rosterMutations.WithLabelValues(action).Inc()
	}
}

// Exported constants for callers.
const (
	ResultSuccess = resultSuccess
	ResultError   = resultError
)

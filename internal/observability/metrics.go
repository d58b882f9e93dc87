package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

var (
	extractQueriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "courtside_extract_queries_total",
			Help: "Total number of extraction queries by operation and outcome.",
		},
		[]string{"operation", "outcome"},
	)
	extractQueryDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "courtside_extract_query_duration_seconds",
			Help:    "Extraction query latency including staging of remote files.",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30, 60},
		},
		[]string{"operation"},
	)
	extractRowsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "courtside_extract_rows_total",
			Help: "Total number of rows returned by extraction queries.",
		},
		[]string{"operation"},
	)
	extractScannedBytesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "courtside_extract_scanned_bytes_total",
			Help: "Total bytes of remote parquet staged for extraction queries.",
		},
		[]string{"operation"},
	)
)

func init() {
	prometheus.MustRegister(
		extractQueriesTotal,
		extractQueryDurationSeconds,
		extractRowsTotal,
		extractScannedBytesTotal,
	)
}

func ObserveExtraction(operation string, rows int, scannedBytes int64, elapsed time.Duration, err error) {
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeError
	}
	extractQueriesTotal.WithLabelValues(operation, outcome).Inc()
	extractQueryDurationSeconds.WithLabelValues(operation).Observe(elapsed.Seconds())
	if err != nil {
		return
	}
	if rows > 0 {
		extractRowsTotal.WithLabelValues(operation).Add(float64(rows))
	}
	if scannedBytes > 0 {
		extractScannedBytesTotal.WithLabelValues(operation).Add(float64(scannedBytes))
	}
}

// WriteMetricsFile dumps the default registry in the text exposition format,
// for node_exporter's textfile collector.
func WriteMetricsFile(path string) error {
	return prometheus.WriteToTextfile(path, prometheus.DefaultGatherer)
}

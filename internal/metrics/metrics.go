// Package metrics provides Prometheus metrics collection for the insight
// service. It defines and manages ingestion, prediction, query, and HTTP
// metrics that are exposed via the Prometheus metrics endpoint.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the service.
type Metrics struct {
	// Ingestion metrics
	RecordsIngested prometheus.Counter   // Total records accepted into the dataset
	RowWarnings     prometheus.Counter   // Total row-level warnings during ingestion
	IngestDuration  prometheus.Histogram // Dataset ingestion duration in seconds
	DatasetSize     prometheus.Gauge     // Number of records in the loaded dataset

	// Prediction metrics
	Predictions      prometheus.Counter   // Total purchase-likelihood predictions made
	PredictionScores prometheus.Histogram // Distribution of prediction scores
	InputErrors      prometheus.Counter   // Total prediction inputs rejected by validation

	// Query metrics
	SimilarityQueries prometheus.Counter // Total nearest-neighbor searches performed
	TableQueries      prometheus.Counter // Total record-browser queries performed

	// HTTP metrics
	RequestsTotal   prometheus.Counter   // Total HTTP requests served
	RequestDuration prometheus.Histogram // HTTP request duration in seconds

	// System metrics
	ErrorsTotal prometheus.Counter // Total number of errors encountered
}

// New creates and registers all Prometheus metrics using the default registry.
// This is the standard way to create metrics for production use.
func New() *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer)
}

// NewWithRegistry creates metrics with a custom registry (useful for testing).
// This allows for isolated metric collection in tests without affecting
// the global Prometheus registry.
func NewWithRegistry(registerer prometheus.Registerer) *Metrics {
	factory := promauto.With(registerer)
	return &Metrics{
		RecordsIngested: factory.NewCounter(prometheus.CounterOpts{
			Name: "records_ingested_total",
			Help: "Total records accepted into the dataset",
		}),
		RowWarnings: factory.NewCounter(prometheus.CounterOpts{
			Name: "row_warnings_total",
			Help: "Total row-level warnings emitted during ingestion",
		}),
		IngestDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "ingest_duration_seconds",
			Help:    "Dataset ingestion duration in seconds",
			Buckets: prometheus.DefBuckets,
		}),
		DatasetSize: factory.NewGauge(prometheus.GaugeOpts{
			Name: "dataset_size",
			Help: "Number of records in the loaded dataset",
		}),
		Predictions: factory.NewCounter(prometheus.CounterOpts{
			Name: "predictions_total",
			Help: "Total purchase-likelihood predictions made",
		}),
		PredictionScores: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "prediction_scores",
			Help:    "Distribution of purchase-likelihood scores",
			Buckets: prometheus.LinearBuckets(0, 10, 11),
		}),
		InputErrors: factory.NewCounter(prometheus.CounterOpts{
			Name: "input_errors_total",
			Help: "Total prediction inputs rejected by validation",
		}),
		SimilarityQueries: factory.NewCounter(prometheus.CounterOpts{
			Name: "similarity_queries_total",
			Help: "Total nearest-neighbor searches performed",
		}),
		TableQueries: factory.NewCounter(prometheus.CounterOpts{
			Name: "table_queries_total",
			Help: "Total record-browser queries performed",
		}),
		RequestsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests served",
		}),
		RequestDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0},
		}),
		ErrorsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "errors_total",
			Help: "Total number of errors encountered",
		}),
	}
}

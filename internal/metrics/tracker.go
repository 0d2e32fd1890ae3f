package metrics

import "time"

// The methods below satisfy the small tracker interfaces declared by the
// consuming packages (dataset, predict, similar, query). Keeping those
// interfaces on the consumer side avoids circular imports; this package
// only has to match the method sets.

// RecordsIngestedAdd records n accepted records.
func (m *Metrics) RecordsIngestedAdd(n int) {
	m.RecordsIngested.Add(float64(n))
}

// RowWarningsAdd records n dropped or padded rows.
func (m *Metrics) RowWarningsAdd(n int) {
	m.RowWarnings.Add(float64(n))
}

// IngestDurationObserve records one ingestion run's duration in seconds.
func (m *Metrics) IngestDurationObserve(seconds float64) {
	m.IngestDuration.Observe(seconds)
}

// DatasetSizeSet records the size of the currently loaded dataset.
func (m *Metrics) DatasetSizeSet(n int) {
	m.DatasetSize.Set(float64(n))
}

// PredictionsInc records one prediction.
func (m *Metrics) PredictionsInc() {
	m.Predictions.Inc()
}

// PredictionScoreObserve records one prediction score.
func (m *Metrics) PredictionScoreObserve(score float64) {
	m.PredictionScores.Observe(score)
}

// InputErrorsInc records one rejected prediction input.
func (m *Metrics) InputErrorsInc() {
	m.InputErrors.Inc()
}

// SimilarityQueriesInc records one nearest-neighbor search.
func (m *Metrics) SimilarityQueriesInc() {
	m.SimilarityQueries.Inc()
}

// TableQueriesInc records one record-browser query.
func (m *Metrics) TableQueriesInc() {
	m.TableQueries.Inc()
}

// RequestObserve records one served HTTP request and its duration.
func (m *Metrics) RequestObserve(d time.Duration) {
	m.RequestsTotal.Inc()
	m.RequestDuration.Observe(d.Seconds())
}

// ErrorsInc records one error.
func (m *Metrics) ErrorsInc() {
	m.ErrorsTotal.Inc()
}

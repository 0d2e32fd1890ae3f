package dataset

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	commentMarker = "#"
	delimiter     = ","
)

// requiredColumns must be present in the header for ingestion to proceed.
var requiredColumns = []string{ColAge, ColPurchased}

// SchemaError reports a header that lacks one or more required columns.
// It is fatal: no partial Dataset is returned alongside it.
type SchemaError struct {
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("dataset: header missing required columns: %s", strings.Join(e.Missing, ", "))
}

// RowWarning describes a recoverable anomaly on a single input line.
// Warnings are collected and returned in input order, never thrown.
type RowWarning struct {
	Line   int    // 1-based line number in the raw text
	Reason string
}

// MetricsTracker receives ingestion counters. Implementations may be nil-safe
// no-ops; the metrics package provides the production implementation.
type MetricsTracker interface {
	RecordsIngestedAdd(n int)
	RowWarningsAdd(n int)
	IngestDurationObserve(seconds float64)
	DatasetSizeSet(n int)
}

// Ingest parses raw delimited text into a Dataset. Comment lines (starting
// with "#") and blank lines are ignored wherever they occur. The first
// remaining line is the header and must contain the Age and Purchased
// columns, otherwise a *SchemaError is returned. Rows shorter than the
// header are padded with empty fields; rows whose Age does not parse as an
// integer are dropped. Both conditions produce a RowWarning instead of an
// error, so a single bad line never aborts the load.
func Ingest(raw string) (*Dataset, []RowWarning, error) {
	return IngestWithMetrics(raw, nil)
}

// IngestWithMetrics is Ingest with ingestion counters reported to t.
func IngestWithMetrics(raw string, t MetricsTracker) (*Dataset, []RowWarning, error) {
	start := time.Now()

	var (
		header   []string
		records  []Record
		warnings []RowWarning
	)

	for i, line := range strings.Split(raw, "\n") {
		lineNo := i + 1
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, commentMarker) {
			continue
		}

		if header == nil {
			header = splitFields(line)
			if missing := missingColumns(header); len(missing) > 0 {
				return nil, nil, &SchemaError{Missing: missing}
			}
			continue
		}

		values := splitFields(line)
		if len(values) < len(header) {
			warnings = append(warnings, RowWarning{
				Line:   lineNo,
				Reason: fmt.Sprintf("row has %d fields, header has %d; missing fields treated as empty", len(values), len(header)),
			})
			for len(values) < len(header) {
				values = append(values, "")
			}
		}

		fields := make(map[string]string, len(header))
		for j, name := range header {
			fields[name] = values[j]
		}

		age, err := strconv.Atoi(fields[ColAge])
		if err != nil {
			warnings = append(warnings, RowWarning{
				Line:   lineNo,
				Reason: fmt.Sprintf("unparseable age %q, row dropped", fields[ColAge]),
			})
			continue
		}

		records = append(records, Record{
			ID:               fields[ColID],
			Age:              age,
			Salary:           parseOptInt(fields[ColSalary]),
			Brand:            fields[ColBrand],
			OS:               fields[ColOS],
			TechSavvy:        parseBool(fields[ColTechSavvy]),
			OnlineActivity:   parseOptInt(fields[ColOnlineActivity]),
			PrevPurchases:    parseOptInt(fields[ColPrevPurchases]),
			LoyaltyScore:     parseOptInt(fields[ColLoyaltyScore]),
			SessionTime:      parseOptFloat(fields[ColSessionTime]),
			SocialInfluence:  parseOptInt(fields[ColSocialInfluence]),
			WarrantyInterest: parseBool(fields[ColWarranty]),
			Purchased:        parseBool(fields[ColPurchased]),
			Fields:           fields,
		})
	}

	if header == nil {
		// Only comments and blank lines: the required columns are absent.
		return nil, nil, &SchemaError{Missing: requiredColumns}
	}

	if t != nil {
		t.RecordsIngestedAdd(len(records))
		t.RowWarningsAdd(len(warnings))
		t.IngestDurationObserve(time.Since(start).Seconds())
		t.DatasetSizeSet(len(records))
	}

	log.Info().
		Int("records", len(records)).
		Int("warnings", len(warnings)).
		Msg("dataset ingested")

	return newDataset(header, records), warnings, nil
}

func splitFields(line string) []string {
	parts := strings.Split(line, delimiter)
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

func missingColumns(header []string) []string {
	present := make(map[string]bool, len(header))
	for _, h := range header {
		present[h] = true
	}
	var missing []string
	for _, col := range requiredColumns {
		if !present[col] {
			missing = append(missing, col)
		}
	}
	return missing
}

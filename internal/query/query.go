// Package query filters, searches, and paginates a dataset for the record
// browser. The caller threads an explicit State through each call; the
// engine itself holds nothing between calls.
package query

import (
	"strings"

	"purchase-insight/internal/dataset"
)

// Filter selects records by purchase outcome.
type Filter string

const (
	FilterAll          Filter = "all"
	FilterPurchased    Filter = "purchased"
	FilterNotPurchased Filter = "not_purchased"
)

// DefaultPageSize is used when the caller passes a non-positive page size.
const DefaultPageSize = 10

// State is one browser view: outcome filter, substring search term, and
// 1-based page number. It is supplied by the caller on every call rather
// than held as ambient state.
type State struct {
	Filter Filter
	Search string
	Page   int
}

// Page is one page of query results. TotalPages is at least 1 even when no
// rows matched, so the caller always has a valid page to display. An
// out-of-range State.Page yields an empty Rows slice, not an error; page
// clamping is the caller's job.
type Page struct {
	Rows       []dataset.Record
	Page       int
	TotalPages int
	TotalRows  int
}

// MetricsTracker receives table-query counters.
type MetricsTracker interface {
	TableQueriesInc()
}

// Run applies the filter, then the search, then slices out the requested
// page. The search is a case-insensitive substring match against the string
// form of every field; an empty term passes everything through.
func Run(ds *dataset.Dataset, state State, pageSize int) Page {
	return RunWithMetrics(ds, state, pageSize, nil)
}

// RunWithMetrics is Run with the query reported to t.
func RunWithMetrics(ds *dataset.Dataset, state State, pageSize int, t MetricsTracker) Page {
	if t != nil {
		t.TableQueriesInc()
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	filtered := applyFilter(ds.Records(), state.Filter)
	if term := strings.TrimSpace(state.Search); term != "" {
		filtered = applySearch(filtered, term)
	}

	totalPages := (len(filtered) + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}

	page := Page{
		Page:       state.Page,
		TotalPages: totalPages,
		TotalRows:  len(filtered),
	}

	start := (state.Page - 1) * pageSize
	if state.Page < 1 || start >= len(filtered) {
		page.Rows = []dataset.Record{}
		return page
	}
	end := start + pageSize
	if end > len(filtered) {
		end = len(filtered)
	}
	page.Rows = filtered[start:end]
	return page
}

func applyFilter(records []dataset.Record, f Filter) []dataset.Record {
	switch f {
	case FilterPurchased, FilterNotPurchased:
		want := f == FilterPurchased
		out := make([]dataset.Record, 0, len(records))
		for _, r := range records {
			if r.Purchased == want {
				out = append(out, r)
			}
		}
		return out
	default:
		// "all" and unknown filters pass through.
		return records
	}
}

func applySearch(records []dataset.Record, term string) []dataset.Record {
	term = strings.ToLower(term)
	out := make([]dataset.Record, 0, len(records))
	for _, r := range records {
		for _, v := range r.Fields {
			if strings.Contains(strings.ToLower(v), term) {
				out = append(out, r)
				break
			}
		}
	}
	return out
}

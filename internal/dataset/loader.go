package dataset

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"
)

// Loader reads raw dataset text from a local file or an HTTP URL and feeds
// it through Ingest. Loading happens once per process; there is no polling
// or streaming.
type Loader struct {
	rest    *resty.Client
	metrics MetricsTracker
}

// NewLoader creates a loader whose HTTP fetches use the given timeout.
func NewLoader(timeout time.Duration) *Loader {
	r := resty.New()
	if timeout > 0 {
		r.SetTimeout(timeout)
	} else {
		r.SetTimeout(10 * time.Second) // default fallback
	}
	return &Loader{rest: r}
}

// WithMetrics attaches an ingestion metrics tracker.
func (l *Loader) WithMetrics(t MetricsTracker) *Loader {
	l.metrics = t
	return l
}

// Load dispatches on the source: URLs are fetched over HTTP, anything else
// is treated as a file path.
func (l *Loader) Load(source string) (*Dataset, []RowWarning, error) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		return l.FromURL(source)
	}
	return l.FromFile(source)
}

// FromFile ingests the dataset from a local file.
func (l *Loader) FromFile(path string) (*Dataset, []RowWarning, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read dataset file %s: %w", path, err)
	}

	log.Info().Str("file", path).Int("bytes", len(data)).Msg("dataset file read")
	return IngestWithMetrics(string(data), l.metrics)
}

// FromURL fetches the dataset over HTTP and ingests it. Non-2xx responses
// are errors; the body is never partially ingested.
func (l *Loader) FromURL(url string) (*Dataset, []RowWarning, error) {
	resp, err := l.rest.R().Get(url)
	if err != nil {
		return nil, nil, fmt.Errorf("fetch dataset from %s: %w", url, err)
	}
	if resp.IsError() {
		return nil, nil, fmt.Errorf("fetch dataset from %s: status %d", url, resp.StatusCode())
	}

	log.Info().
		Str("url", url).
		Int("bytes", len(resp.Body())).
		Dur("elapsed", resp.Time()).
		Msg("dataset fetched")

	return IngestWithMetrics(string(resp.Body()), l.metrics)
}

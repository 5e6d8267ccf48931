package catalog

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	// DefaultTAPURL is the Gaia archive TAP synchronous query endpoint.
	DefaultTAPURL = "https://gea.esac.esa.int/tap-server/tap/sync"

	// DefaultTimeout for HTTP requests.
	DefaultTimeout = 60 * time.Second

	// DefaultMaxStars is the default row cap for a catalog query.
	DefaultMaxStars = 300

	// DefaultMaxDistancePc is the default distance cut in parsecs.
	DefaultMaxDistancePc = 30.0
)

// Fetcher handles HTTP fetching of catalog rows from a TAP service.
type Fetcher struct {
	client        *http.Client
	url           string
	timeout       time.Duration
	maxStars      int
	maxDistancePc float64
}

// FetcherOption configures a Fetcher.
type FetcherOption func(*Fetcher)

// WithURL sets a custom TAP endpoint.
func WithURL(u string) FetcherOption {
	return func(f *Fetcher) {
		f.url = u
	}
}

// WithTimeout sets the HTTP request timeout.
func WithTimeout(d time.Duration) FetcherOption {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) FetcherOption {
	return func(f *Fetcher) {
		f.client = client
	}
}

// WithLimits sets the row cap and the maximum distance cut in parsecs.
func WithLimits(maxStars int, maxDistancePc float64) FetcherOption {
	return func(f *Fetcher) {
		if maxStars > 0 {
			f.maxStars = maxStars
		}
		if maxDistancePc > 0 {
			f.maxDistancePc = maxDistancePc
		}
	}
}

// NewFetcher creates a new catalog fetcher.
func NewFetcher(opts ...FetcherOption) *Fetcher {
	f := &Fetcher{
		url:           DefaultTAPURL,
		timeout:       DefaultTimeout,
		maxStars:      DefaultMaxStars,
		maxDistancePc: DefaultMaxDistancePc,
	}

	for _, opt := range opts {
		opt(f)
	}

	if f.client == nil {
		f.client = &http.Client{
			Timeout: f.timeout,
		}
	}

	return f
}

// Query returns the ADQL query the fetcher will submit. The parallax floor
// selects stars within the distance cut; the parallax-error ratio cut keeps
// only rows with reliable distances.
func (f *Fetcher) Query() string {
	minParallax := 1000.0 / f.maxDistancePc
	return fmt.Sprintf(`SELECT TOP %d
    source_id, ra, dec, parallax, parallax_error,
    phot_g_mean_mag, bp_rp, radial_velocity, pmra, pmdec,
    1000.0/parallax AS distance_pc
FROM gaiadr3.gaia_source
WHERE parallax > %g
    AND parallax_error/parallax < 0.2
    AND phot_g_mean_mag IS NOT NULL
    AND bp_rp IS NOT NULL
ORDER BY parallax DESC`, f.maxStars, minParallax)
}

// FetchResult contains the result of a fetch operation.
type FetchResult struct {
	Rows      []RawRow
	RawBytes  []byte
	FetchedAt time.Time
	Duration  time.Duration
	Error     error
}

// Fetch submits the ADQL query and parses the JSON response.
func (f *Fetcher) Fetch(ctx context.Context) FetchResult {
	start := time.Now()
	result := FetchResult{FetchedAt: start}

	form := url.Values{
		"REQUEST": {"doQuery"},
		"LANG":    {"ADQL"},
		"FORMAT":  {"json"},
		"QUERY":   {f.Query()},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.url,
		strings.NewReader(form.Encode()))
	if err != nil {
		result.Error = fmt.Errorf("create request: %w", err)
		return result
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := f.client.Do(req)
	if err != nil {
		result.Error = fmt.Errorf("fetch catalog: %w", err)
		result.Duration = time.Since(start)
		return result
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		result.Error = fmt.Errorf("fetch catalog: unexpected status %s", resp.Status)
		result.Duration = time.Since(start)
		return result
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		result.Error = fmt.Errorf("read response: %w", err)
		result.Duration = time.Since(start)
		return result
	}
	result.RawBytes = body

	rows, err := ParseTAPJSON(body)
	if err != nil {
		result.Error = err
		result.Duration = time.Since(start)
		return result
	}

	result.Rows = rows
	result.Duration = time.Since(start)
	return result
}

package scrape

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	// UserAgent identifies this scraper to the origin site, as its
	// informal access expectations ask for.
	UserAgent = "npblive/1.0 (github.com/kusaka/npblive; educational purpose)"

	// DefaultTimeout bounds a single outbound request.
	DefaultTimeout = 10 * time.Second
)

// FetchError is the typed failure for an outbound page fetch.
// StatusCode is 0 when the request never produced an HTTP response.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetch %s: network: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Client fetches pages from the origin site with a courtesy delay
// before every request, a descriptive user-agent, and a timeout.
type Client struct {
	http      *http.Client
	userAgent string
}

// NewClient creates a scrape client. transport may be nil for the
// default; tests inject a stub RoundTripper.
func NewClient(timeout time.Duration, transport http.RoundTripper) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		http: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
		userAgent: UserAgent,
	}
}

// Fetch retrieves one page. The delay is applied before the request is
// issued and aborts early when the context is cancelled. The delay is
// rate-limit courtesy to the origin, not a retry mechanism.
func (c *Client) Fetch(ctx context.Context, url string, delay time.Duration) (string, error) {
	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return "", &FetchError{URL: url, Err: ctx.Err()}
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", &FetchError{URL: url, Err: err}
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", &FetchError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &FetchError{URL: url, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &FetchError{URL: url, Err: err}
	}

	return string(body), nil
}

// ScheduleURL builds the monthly calendar page URL for a year and month.
func ScheduleURL(year, month int) string {
	return fmt.Sprintf("%s/bis/%d/calendar/index_%02d.html", Origin, year, month)
}

// DetailURL builds the box-score page URL for a game identifier.
func DetailURL(year int, gameID string) string {
	return fmt.Sprintf("%s/bis/%d/games/%s.html", Origin, year, gameID)
}

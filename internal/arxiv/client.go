// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package arxiv is a paginated, rate-limited client for the arXiv search API.
//
// Results are exposed as a lazy iterator: a page is requested only when the
// consumer reaches it, so breaking out of a range loop never triggers another
// request. All requests made through one Client share a single pacer, which
// keeps them at least Delay apart as the arXiv API terms require.
package arxiv

import (
	"context"
	"fmt"
	"iter"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pdiddy/arxiv-digest/internal/httputil"
)

// arxivAPIBase is the arXiv search endpoint. Declared as a var so tests
// can substitute an httptest server.
var arxivAPIBase = "https://export.arxiv.org/api/query"

const (
	defaultPageSize  = 100
	defaultDelay     = 3 * time.Second
	defaultUserAgent = "arxiv-digest/0.1"
	maxAPIPageSize   = 2000
)

// SortCriterion selects the field arXiv sorts results by.
type SortCriterion string

const (
	SortByRelevance       SortCriterion = "relevance"
	SortByLastUpdatedDate SortCriterion = "lastUpdatedDate"
	SortBySubmittedDate   SortCriterion = "submittedDate"
)

// SortOrder selects the sort direction.
type SortOrder string

const (
	Ascending  SortOrder = "ascending"
	Descending SortOrder = "descending"
)

// Search describes one arXiv query.
type Search struct {
	// Query is the search_query expression (e.g. "all:electron" or free text).
	Query string

	// IDList restricts results to the given arXiv IDs.
	IDList []string

	// MaxResults caps the number of results yielded; zero or negative
	// means every available result.
	MaxResults int

	SortBy    SortCriterion
	SortOrder SortOrder
}

// params builds the query string for one page of s.
func (s Search) params(start, size int) url.Values {
	sortBy := s.SortBy
	if sortBy == "" {
		sortBy = SortByRelevance
	}
	sortOrder := s.SortOrder
	if sortOrder == "" {
		sortOrder = Descending
	}

	v := url.Values{}
	v.Set("search_query", s.Query)
	if len(s.IDList) > 0 {
		v.Set("id_list", strings.Join(s.IDList, ","))
	}
	v.Set("start", strconv.Itoa(start))
	v.Set("max_results", strconv.Itoa(size))
	v.Set("sortBy", string(sortBy))
	v.Set("sortOrder", string(sortOrder))
	return v
}

// ClientConfig configures a Client. Zero values select the defaults.
type ClientConfig struct {
	// PageSize is the number of results requested per API call (default 100).
	PageSize int

	// Delay is the minimum time between two requests (default 3s).
	// A negative value disables pacing.
	Delay time.Duration

	// NumRetries is the number of retries for transient failures (default 3).
	// A negative value disables retries.
	NumRetries int

	// UserAgent is sent with every request.
	UserAgent string

	// HTTPClient performs the requests (default: 30s timeout client).
	HTTPClient *http.Client
}

// Client queries the arXiv API.
type Client struct {
	cfg   ClientConfig
	http  *http.Client
	pacer *httputil.Pacer
}

// NewClient returns a Client for cfg.
func NewClient(cfg ClientConfig) *Client {
	if cfg.PageSize <= 0 {
		cfg.PageSize = defaultPageSize
	}
	if cfg.PageSize > maxAPIPageSize {
		cfg.PageSize = maxAPIPageSize
	}
	switch {
	case cfg.Delay == 0:
		cfg.Delay = defaultDelay
	case cfg.Delay < 0:
		cfg.Delay = 0
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}
	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		cfg:   cfg,
		http:  hc,
		pacer: httputil.NewPacer(cfg.Delay),
	}
}

// Config returns the effective configuration after defaults were applied.
func (c *Client) Config() ClientConfig { return c.cfg }

// Results returns a lazy sequence of the results for s. Each range over the
// sequence starts a fresh query from the first page. A request or parse
// failure is yielded once as a non-nil error, after which the sequence ends.
func (c *Client) Results(ctx context.Context, s Search) iter.Seq2[Result, error] {
	return func(yield func(Result, error) bool) {
		offset := 0
		for {
			size := c.cfg.PageSize
			if s.MaxResults > 0 {
				size = min(size, s.MaxResults-offset)
			}
			if size <= 0 {
				return
			}

			pg, err := c.fetchPage(ctx, s, offset, size)
			if err != nil {
				yield(Result{}, err)
				return
			}

			for _, r := range pg.results {
				if !yield(r, nil) {
					return
				}
			}

			offset += len(pg.results)
			if len(pg.results) < size {
				return
			}
			if pg.total >= 0 && offset >= pg.total {
				return
			}
		}
	}
}

// fetchPage requests one page of results starting at offset.
func (c *Client) fetchPage(ctx context.Context, s Search, offset, size int) (page, error) {
	reqURL := arxivAPIBase + "?" + s.params(offset, size).Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return page{}, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.cfg.UserAgent)

	resp, err := httputil.DoWithRetry(ctx, c.http, req, c.cfg.NumRetries, c.pacer)
	if err != nil {
		return page{}, fmt.Errorf("arXiv API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return page{}, &HTTPError{URL: reqURL, StatusCode: resp.StatusCode}
	}

	pg, err := parsePage(resp.Body)
	if err != nil {
		return page{}, fmt.Errorf("parsing arXiv response: %w", err)
	}
	return pg, nil
}

// HTTPError reports a non-200 response that survived all retries.
type HTTPError struct {
	URL        string
	StatusCode int
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("arXiv API returned HTTP %d for %s", e.StatusCode, e.URL)
}

// APIError carries the message of an error entry in an arXiv response
// (e.g. a malformed id_list).
type APIError struct {
	Message string
}

func (e *APIError) Error() string {
	return "arXiv API error: " + e.Message
}

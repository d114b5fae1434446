// Package stripe fetches balance transactions from the Stripe API and
// aggregates the day's gross volume per currency.
package stripe

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/Veraticus/coinbar/internal/model"
)

// DefaultBaseURL is the balance transactions endpoint.
const DefaultBaseURL = "https://api.stripe.com/v1/balance_transactions"

// DefaultPageLimit is the page size requested from the API.
const DefaultPageLimit = 100

// requestTimeout bounds each page fetch. There is no overall budget across
// pages; the top-bar host kills and re-invokes the process on its own
// refresh schedule.
const requestTimeout = 15 * time.Second

// StatusError is an HTTP-level failure from the API, carrying the status
// code and reason so the renderer can name them.
type StatusError struct {
	Status     string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP Error %d: %s", e.StatusCode, reasonPhrase(e.StatusCode, e.Status))
}

// reasonPhrase strips the leading "404 " net/http puts in resp.Status.
func reasonPhrase(code int, status string) string {
	prefix := strconv.Itoa(code) + " "
	if len(status) > len(prefix) && status[:len(prefix)] == prefix {
		return status[len(prefix):]
	}
	if status != "" {
		return status
	}
	return http.StatusText(code)
}

// page is one response from the balance transactions endpoint.
type page struct {
	Data    []model.BalanceTransaction `json:"data"`
	HasMore bool                       `json:"has_more"`
}

// Client fetches balance transactions with cursor-based pagination.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	pageLimit  int
}

// NewClient creates a Stripe client authenticated with apiKey.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:    apiKey,
		baseURL:   DefaultBaseURL,
		pageLimit: DefaultPageLimit,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Option customizes a Client.
type Option func(*Client)

// WithBaseURL overrides the API endpoint, mainly for tests.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) { c.baseURL = baseURL }
}

// WithPageLimit overrides the requested page size.
func WithPageLimit(limit int) Option {
	return func(c *Client) {
		if limit > 0 {
			c.pageLimit = limit
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) { c.httpClient = httpClient }
}

// GrossVolume pages through all balance transactions created at or after
// since and sums the gross-volume kinds (charges and payments) per currency.
// Any transport error, non-2xx status, or malformed page fails the whole
// fetch; no partial totals are returned and nothing is retried.
func (c *Client) GrossVolume(ctx context.Context, since time.Time) (model.Totals, error) {
	totals := make(model.Totals)
	startingAfter := ""

	for pageNum := 1; ; pageNum++ {
		p, err := c.fetchPage(ctx, since, startingAfter)
		if err != nil {
			return nil, err
		}

		for _, tx := range p.Data {
			if tx.CountsTowardGrossVolume() {
				totals.Add(tx.Currency, tx.Amount)
			}
		}

		slog.Debug("Fetched balance transactions page",
			"page", pageNum,
			"records", len(p.Data),
			"has_more", p.HasMore)

		if !p.HasMore {
			break
		}
		if len(p.Data) == 0 {
			return nil, fmt.Errorf("API reported more pages but returned no records to paginate from")
		}
		startingAfter = p.Data[len(p.Data)-1].ID
	}

	return totals, nil
}

func (c *Client) fetchPage(ctx context.Context, since time.Time, startingAfter string) (*page, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse URL: %w", err)
	}

	q := u.Query()
	q.Set("created[gte]", strconv.FormatInt(since.Unix(), 10))
	q.Set("limit", strconv.Itoa(c.pageLimit))
	if startingAfter != "" {
		q.Set("starting_after", startingAfter)
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch balance transactions: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
		}
	}

	var p page
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &p, nil
}

// StartOfDay truncates t to midnight local time, the lower bound for the
// created[gte] filter.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

package agmarknet

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"
)

// Fixed filter parameters the report endpoint requires. The bracketed
// sentinel ids mean "all" for their dimension.
var baseQuery = url.Values{
	"data_type": {"100006"},
	"state":     {"[100000]"},
	"district":  {"[100001]"},
	"market":    {"[100002]"},
	"grade":     {"[100003]"},
	"variety":   {"[100007]"},
}

// Client fetches daily price reports from the Agmarknet API.
//
// One request is in flight at a time; the limiter enforces the inter-page
// delay as a courtesy to the endpoint, which has no published rate limit but
// drops aggressive callers.
type Client struct {
	httpClient *http.Client
	baseURL    string
	limiter    *rate.Limiter
	logger     *slog.Logger
}

// NewClient creates an Agmarknet client with the given inter-request delay.
func NewClient(baseURL string, delay time.Duration, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    baseURL,
		limiter:    rate.NewLimiter(rate.Every(delay), 1),
		logger:     logger,
	}
}

// getPage performs one GET against the report endpoint.
func (c *Client) getPage(ctx context.Context, params url.Values) (json.RawMessage, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	u := c.baseURL + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json, text/plain, */*")
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("agmarknet returned %d: %s", resp.StatusCode, truncate(body, 200))
	}

	return body, nil
}

// FetchAll pages through the report for the given date range until an empty
// page, a short page, or the maxPages cap. Any request failure aborts the
// whole fetch; there is no per-page retry.
func (c *Client) FetchAll(ctx context.Context, fromDate, toDate string, maxPages, pageSize int) ([]Record, error) {
	var all []Record

	for page := 1; page <= maxPages; page++ {
		params := url.Values{}
		for k, v := range baseQuery {
			params[k] = v
		}
		params.Set("from_date", fromDate)
		params.Set("to_date", toDate)
		params.Set("page", strconv.Itoa(page))
		params.Set("limit", strconv.Itoa(pageSize))

		c.logger.Info("fetching page", "page", page)
		payload, err := c.getPage(ctx, params)
		if err != nil {
			return nil, fmt.Errorf("fetch page %d: %w", page, err)
		}

		records, err := ExtractRecords(payload)
		if err != nil {
			return nil, fmt.Errorf("parse page %d: %w", page, err)
		}

		if len(records) == 0 {
			c.logger.Info("no records on page, stopping", "page", page)
			break
		}

		all = append(all, records...)
		c.logger.Info("page fetched", "page", page, "records", len(records), "total", len(all))

		if len(records) < pageSize {
			c.logger.Info("last page reached", "page", page)
			break
		}
	}

	return all, nil
}

// truncate returns a truncated string representation for error messages.
func truncate(b []byte, maxLen int) string {
	if len(b) <= maxLen {
		return string(b)
	}
	return string(b[:maxLen]) + "..."
}

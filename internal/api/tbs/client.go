package tbs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// DefaultTimeout bounds the availability request; the upstream endpoint can
// take a long time under load.
const DefaultTimeout = 30 * time.Second

// ErrFetchFailed wraps every failure mode of the availability source: network
// error, timeout, non-2xx status, malformed JSON, missing configuration.
var ErrFetchFailed = errors.New("fetch failed")

// Client is a train-between-stations availability API client.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userID     string
	headers    map[string]string
}

// NewClient creates a new availability client. headers are sent verbatim on
// every request; the upstream endpoint rejects requests without them.
func NewClient(baseURL, userID string, headers map[string]string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		userID:     userID,
		headers:    headers,
	}
}

// Fetch queries seat availability between two station codes on a date
// (YYYY-MM-DD).
func (c *Client) Fetch(ctx context.Context, from, to, date string) (*AvailabilityResponse, error) {
	if c.baseURL == "" {
		return nil, fmt.Errorf("%w: availability endpoint URL not configured", ErrFetchFailed)
	}

	params := url.Values{}
	params.Set("action", "train_between_station")
	params.Set("controller", "train_ticket_tbs")
	params.Set("device_type_id", "6")
	params.Set("from", from)
	params.Set("from_code", from)
	params.Set("to", to)
	params.Set("to_code", to)
	params.Set("dateOfJourney", date)
	params.Set("journey_date", date)
	params.Set("journey_quota", "GN")
	params.Set("authentication_token", "")
	params.Set("v_code", "null")
	params.Set("user_id", c.userID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: creating request: %v", ErrFetchFailed, err)
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: executing request: %v", ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: unexpected status code: %d", ErrFetchFailed, resp.StatusCode)
	}

	var result AvailabilityResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %v", ErrFetchFailed, err)
	}

	return &result, nil
}

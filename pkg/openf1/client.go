// Package openf1 provides a client for the OpenF1 REST API.
package openf1

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// DefaultBaseURL is the public OpenF1 endpoint.
const DefaultBaseURL = "https://api.openf1.org/v1"

// Driver is a single entry of the drivers roster. Every field is optional:
// the API omits attributes it has no data for, and downstream rendering
// substitutes a placeholder for missing values.
type Driver struct {
	ID          *string `json:"driver_id"`
	Number      *int    `json:"driver_number"`
	FirstName   *string `json:"first_name"`
	LastName    *string `json:"last_name"`
	Acronym     *string `json:"name_acronym"`
	TeamName    *string `json:"team_name"`
	TeamColour  *string `json:"team_colour"`
	DOB         *string `json:"dob"`
	CountryCode *string `json:"country_code"`
	HeadshotURL *string `json:"headshot_url"`
}

// ClientConfig holds the connection parameters for an OpenF1 client.
type ClientConfig struct {
	BaseURL string
	Timeout time.Duration
}

// Client talks to the OpenF1 drivers endpoint.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates an OpenF1 API client. A nil httpClient falls back to a
// plain client with the configured timeout.
func NewClient(cfg ClientConfig, httpClient *http.Client) *Client {
	baseURL := strings.TrimSuffix(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
	}
}

// ListDrivers fetches the drivers roster for the given session. An empty
// session fetches the full roster. Failures wrap ErrSourceUnavailable.
func (c *Client) ListDrivers(ctx context.Context, sessionKey string) ([]Driver, error) {
	endpoint := c.baseURL + "/drivers"
	if sessionKey != "" {
		endpoint += "?session_key=" + url.QueryEscape(sessionKey)
	}

	log.Debug().Str("url", endpoint).Msg("Fetching drivers roster")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &SourceError{Op: "list drivers", Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &SourceError{Op: "list drivers", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &SourceError{
			Op:         "list drivers",
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("unexpected response: %s", strings.TrimSpace(string(body))),
		}
	}

	var drivers []Driver
	if err := json.NewDecoder(resp.Body).Decode(&drivers); err != nil {
		return nil, &SourceError{Op: "list drivers", Err: fmt.Errorf("decode response: %w", err)}
	}

	log.Debug().Int("count", len(drivers)).Msg("Fetched drivers roster")
	return drivers, nil
}

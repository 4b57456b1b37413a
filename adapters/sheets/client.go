// Package sheets fetches the raw survey grid from the Google Sheets values
// API. Credential acquisition is an external concern: the client consumes an
// opaque bearer token read from disk.
package sheets

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"mpf/domain/table"
	"mpf/internal/errors"
)

const defaultBaseURL = "https://sheets.googleapis.com"

// Credential is an opaque access token usable against the sheet service.
// Its refresh lifecycle belongs to whatever wrote the token file.
type Credential struct {
	AccessToken string
}

// LoadCredential reads a credential from a token file. Both the "token" key
// written by the Google OAuth helpers and a plain "access_token" key are
// accepted.
func LoadCredential(path string) (Credential, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Credential{}, errors.Wrapf(err, "reading token file %s", path)
	}

	var payload struct {
		Token       string `json:"token"`
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return Credential{}, errors.Wrapf(err, "parsing token file %s", path)
	}

	token := payload.Token
	if token == "" {
		token = payload.AccessToken
	}
	if token == "" {
		return Credential{}, errors.ValidationError("token file carries no access token")
	}
	return Credential{AccessToken: token}, nil
}

// Client calls the sheet service values endpoint.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient creates a sheet client with the given request timeout.
func NewClient(timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    defaultBaseURL,
	}
}

// NewClientWithBaseURL creates a client against a non-default endpoint,
// used by tests.
func NewClientWithBaseURL(timeout time.Duration, baseURL string) *Client {
	c := NewClient(timeout)
	c.baseURL = baseURL
	return c
}

// FetchRange retrieves a named range as a raw two-level table. The first two
// returned rows become the column index; empty cells read as missing. The
// network call is made exactly once; any service failure surfaces as an
// error for the caller's fallback policy.
func (c *Client) FetchRange(ctx context.Context, cred Credential, spreadsheetID, readRange string) (*table.Raw, error) {
	if spreadsheetID == "" {
		return nil, errors.ValidationError("spreadsheet ID is required")
	}

	endpoint := fmt.Sprintf("%s/v4/spreadsheets/%s/values/%s",
		c.baseURL, url.PathEscape(spreadsheetID), url.PathEscape(readRange))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, errors.Wrap(err, "building sheet request")
	}
	req.Header.Set("Authorization", "Bearer "+cred.AccessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.ExternalServiceError("sheets", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.ExternalServiceError("sheets", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, errors.ExternalServiceError("sheets",
			fmt.Errorf("status %d: %s", resp.StatusCode, truncate(string(body), 200)))
	}

	var payload struct {
		Values [][]string `json:"values"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, errors.ExternalServiceError("sheets", err)
	}

	raw, err := table.NewRaw(payload.Values)
	if err != nil {
		return nil, errors.Wrap(err, "building raw table from sheet values")
	}
	return raw, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

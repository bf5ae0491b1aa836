package sheets

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"time"

	"github.com/curricle/contentkit/pkg/table"
)

// sheetKeyPattern extracts the document key from a shared Google Sheets URL.
var sheetKeyPattern = regexp.MustCompile(`/spreadsheets/d/([a-zA-Z0-9_-]+)`)

// ExtractKey returns the document key embedded in a shared sheet URL such as
// "https://docs.google.com/spreadsheets/d/<key>/edit".
func ExtractKey(sheetURL string) (string, error) {
	m := sheetKeyPattern.FindStringSubmatch(sheetURL)
	if m == nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidSheetURL, sheetURL)
	}
	return m[1], nil
}

// ExportURL builds the public CSV export URL for one tab of a sheet,
// addressed by numeric gid. An empty gid addresses the first tab.
func ExportURL(key, gid string) string {
	u := fmt.Sprintf("https://docs.google.com/spreadsheets/d/%s/export?format=csv", url.PathEscape(key))
	if gid != "" {
		u += "&gid=" + url.QueryEscape(gid)
	}
	return u
}

// QueryURL builds the public CSV export URL for a tab addressed by name.
func QueryURL(key, sheetName string) string {
	return fmt.Sprintf("https://docs.google.com/spreadsheets/d/%s/gviz/tq?tqx=out:csv&sheet=%s",
		url.PathEscape(key), url.QueryEscape(sheetName))
}

// Client fetches publicly viewable sheets. It carries no credentials:
// sharing-restricted sheets are out of scope and fail with ErrFetchFailed.
// Zero value is not usable; use NewClient.
type Client struct {
	// http is reused across requests for connection pooling
	http *http.Client
}

// NewClient creates a sheet client with a default HTTP client.
func NewClient() *Client {
	return &Client{
		http: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// NewClientWithHTTP creates a sheet client with a custom HTTP client. This
// allows custom transports, proxies, or testing against a local server.
func NewClientWithHTTP(client *http.Client) *Client {
	if client == nil {
		return NewClient()
	}
	return &Client{http: client}
}

// FetchCSV downloads the CSV export at the given URL and decodes it into a
// table. The URL is normally built with ExportURL or QueryURL.
func (c *Client) FetchCSV(ctx context.Context, csvURL string) (*table.Table, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, csvURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status %d (is the sheet publicly viewable?)",
			ErrFetchFailed, resp.StatusCode)
	}

	t, err := table.ReadCSV(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to decode sheet export: %w", err)
	}
	return t, nil
}

// FetchTab downloads one tab of a public sheet, addressed by gid.
func (c *Client) FetchTab(ctx context.Context, key, gid string) (*table.Table, error) {
	return c.FetchCSV(ctx, ExportURL(key, gid))
}

// FetchTabByName downloads one tab of a public sheet, addressed by tab name.
func (c *Client) FetchTabByName(ctx context.Context, key, sheetName string) (*table.Table, error) {
	return c.FetchCSV(ctx, QueryURL(key, sheetName))
}

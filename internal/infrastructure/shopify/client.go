package shopify

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/datawise/backend/internal/domain/commerce"
)

// maxResponseSize is the maximum allowed response size from the Shopify API (10MB)
const maxResponseSize = 10 * 1024 * 1024

// pageInfoPattern extracts the pagination cursor from a Link header segment
var pageInfoPattern = regexp.MustCompile(`page_info=([^&>]+)`)

// APIError is a non-2xx response from the Shopify API. It carries the
// upstream status code and body text so callers can surface them verbatim.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("shopify: API error: status %d: %s", e.StatusCode, e.Body)
}

// Unwrap lets callers match the generic platform failure sentinel
func (e *APIError) Unwrap() error {
	return commerce.ErrPlatformRequestFailed
}

// Client talks to the Shopify Admin REST API. All calls are synchronous and
// make exactly one attempt per page; there is no retry policy.
type Client struct {
	config     *Config
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a Shopify API client from a validated configuration
func NewClient(config *Config, logger *zap.Logger) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: time.Duration(config.TimeoutSeconds) * time.Second,
		},
		logger: logger,
	}, nil
}

// FetchAll retrieves every page of a resource collection, following the
// cursor advertised in the Link response header, and returns the
// concatenation of all pages in request order. Records are returned as raw
// JSON so the full upstream payload can be passed through untouched.
//
// The resource may be nested, e.g. "orders" or "orders/123/refunds"; the
// envelope key is the last path segment. Any non-2xx response aborts the
// whole fetch with an *APIError.
func (c *Client) FetchAll(ctx context.Context, resource string, params url.Values) ([]json.RawMessage, error) {
	key := resource
	if idx := strings.LastIndex(resource, "/"); idx >= 0 {
		key = resource[idx+1:]
	}

	results := make([]json.RawMessage, 0)
	pageInfo := ""

	for {
		query := cloneValues(params)
		if pageInfo != "" {
			query.Set("page_info", pageInfo)
		}

		body, header, err := c.get(ctx, resource+".json", query)
		if err != nil {
			return nil, err
		}

		var envelope map[string]json.RawMessage
		if err := json.Unmarshal(body, &envelope); err != nil {
			return nil, fmt.Errorf("%w: failed to parse %s response: %v", commerce.ErrPlatformInvalidResponse, resource, err)
		}

		if raw, ok := envelope[key]; ok {
			var page []json.RawMessage
			if err := json.Unmarshal(raw, &page); err != nil {
				return nil, fmt.Errorf("%w: %s envelope is not an array: %v", commerce.ErrPlatformInvalidResponse, key, err)
			}
			results = append(results, page...)
		}

		pageInfo = nextPageInfo(header.Get("Link"))
		if pageInfo == "" {
			return results, nil
		}
	}
}

// FetchReport retrieves a single analytics report. An upstream response
// without a "report" envelope (the platform does not support the kind)
// yields an empty map; a non-2xx response is an *APIError for this report
// only.
func (c *Client) FetchReport(ctx context.Context, kind string, params url.Values) (map[string]any, error) {
	body, _, err := c.get(ctx, "reports/"+kind+".json", params)
	if err != nil {
		return nil, err
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("%w: failed to parse %s report: %v", commerce.ErrPlatformInvalidResponse, kind, err)
	}

	raw, ok := envelope["report"]
	if !ok {
		return map[string]any{}, nil
	}
	var report map[string]any
	if err := json.Unmarshal(raw, &report); err != nil {
		return nil, fmt.Errorf("%w: %s report is not an object: %v", commerce.ErrPlatformInvalidResponse, kind, err)
	}
	if report == nil {
		report = map[string]any{}
	}
	return report, nil
}

// ListReports returns the platform's report catalog as raw JSON
func (c *Client) ListReports(ctx context.Context) (json.RawMessage, error) {
	body, _, err := c.get(ctx, "reports.json", nil)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(body), nil
}

// get performs one GET against the Admin API and returns the body and
// response headers. Non-2xx responses become *APIError.
func (c *Client) get(ctx context.Context, path string, params url.Values) ([]byte, http.Header, error) {
	endpoint := c.config.APIBaseURL + "/" + path
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("shopify: failed to create request: %w", err)
	}
	if len(params) > 0 {
		req.URL.RawQuery = params.Encode()
	}

	req.Header.Set("X-Shopify-Access-Token", c.config.AccessToken)
	if c.config.APIKey != "" {
		req.Header.Set("X-Shopify-API-Key", c.config.APIKey)
	}
	if c.config.APISecret != "" {
		req.Header.Set("X-Shopify-API-Secret", c.config.APISecret)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", commerce.ErrPlatformUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, nil, fmt.Errorf("shopify: failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Debug("Shopify request failed",
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
		)
		return nil, nil, &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	return body, resp.Header, nil
}

// nextPageInfo extracts the cursor for the next page from a Link header.
// Returns "" when the header carries no next relation or the next link has
// no extractable cursor.
func nextPageInfo(link string) string {
	if link == "" {
		return ""
	}
	for _, segment := range strings.Split(link, ",") {
		if !strings.Contains(segment, `rel="next"`) {
			continue
		}
		if m := pageInfoPattern.FindStringSubmatch(segment); m != nil {
			return m[1]
		}
	}
	return ""
}

func cloneValues(params url.Values) url.Values {
	query := url.Values{}
	for k, vs := range params {
		for _, v := range vs {
			query.Add(k, v)
		}
	}
	return query
}

package ytmusic

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"log/slog"

	"audiomatch/internal/cache"
	"audiomatch/internal/logging"
	"audiomatch/internal/search"
)

const (
	searchEndpoint = "/youtubei/v1/search"

	// Web client identity the unauthenticated youtubei API expects.
	clientName    = "WEB_REMIX"
	clientVersion = "1.20250820.01.00"
)

// filterParams are the protobuf-encoded filter selectors the web client sends
// for each search tab. The unfiltered mode omits the field entirely.
var filterParams = map[search.FilterMode]string{
	search.FilterCurated: "EgWKAQIIAWoMEA4QChADEAQQCRAF",
	search.FilterUploads: "EgWKAQIQAWoMEA4QChADEAQQCRAF",
}

// Client provides access to the YouTube Music search API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	cache      cache.Cache
	logger     *slog.Logger
}

var _ search.Catalog = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithCache injects a response cache keyed by query, filter mode, and limit.
// The cache is owned by the caller; the client never builds one itself.
func WithCache(responseCache cache.Cache) Option {
	return func(c *Client) {
		c.cache = responseCache
	}
}

// WithTimeout overrides the default request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// New creates a YouTube Music search client.
func New(baseURL string, logger *slog.Logger, opts ...Option) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("ytmusic base url required")
	}
	client := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		logger:     logging.NewComponentLogger(logger, "ytmusic"),
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

type searchRequest struct {
	Context requestContext `json:"context"`
	Query   string         `json:"query"`
	Params  string         `json:"params,omitempty"`
}

type requestContext struct {
	Client requestClient `json:"client"`
}

type requestClient struct {
	ClientName    string `json:"clientName"`
	ClientVersion string `json:"clientVersion"`
	HL            string `json:"hl"`
}

// Search issues the query under a single filter mode and returns parsed
// candidates, at most limit of them. Records lacking an identifier never
// leave this package.
func (c *Client) Search(ctx context.Context, query string, mode search.FilterMode, limit int) ([]search.Candidate, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, errors.New("query must not be empty")
	}
	if limit <= 0 {
		limit = 10
	}

	cacheKey := fmt.Sprintf("%s|%s|%d", query, mode, limit)
	if c.cache != nil {
		if cached, ok := c.cache.Get(cacheKey); ok {
			if candidates, ok := cached.([]search.Candidate); ok {
				c.logger.Debug("search cache hit", logging.String("query", query), logging.String("filter_mode", string(mode)))
				return candidates, nil
			}
		}
	}

	payload := searchRequest{
		Context: requestContext{Client: requestClient{
			ClientName:    clientName,
			ClientVersion: clientVersion,
			HL:            "en",
		}},
		Query:  query,
		Params: filterParams[mode],
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode search request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+searchEndpoint+"?prettyPrint=false", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Origin", c.baseURL)

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		return nil, fmt.Errorf("execute request (latency=%v): %w", latency, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ytmusic search returned %d (latency=%v)", resp.StatusCode, latency)
	}

	var parsed searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode ytmusic response: %w", err)
	}

	candidates := parsed.candidates(c.baseURL)
	if len(candidates) > limit {
		candidates = candidates[:limit]
	}
	c.logger.Debug("search completed",
		logging.String("query", query),
		logging.String("filter_mode", string(mode)),
		logging.Int("results", len(candidates)),
		logging.Duration("latency", latency))

	if c.cache != nil {
		c.cache.Put(cacheKey, candidates)
	}
	return candidates, nil
}

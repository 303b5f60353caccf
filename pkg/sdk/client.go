package sdk

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultTimeout = 30 * time.Second

// Client talks to a searchd instance over HTTP.
type Client struct {
	baseURL *url.URL
	apiKey  string
	http    *http.Client
	obs     *observer
}

// New creates a Client for the service at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, errors.New("searchd: base URL required")
	}
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("searchd: parse base URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("searchd: unsupported scheme %q", u.Scheme)
	}

	cfg := &clientConfig{}
	for _, o := range opts {
		o.apply(cfg)
	}
	if cfg.httpClient == nil {
		cfg.httpClient = &http.Client{Timeout: defaultTimeout}
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL: u,
		apiKey:  cfg.apiKey,
		http:    cfg.httpClient,
		obs:     obs,
	}, nil
}

// Search runs a free-text search against one entity.
func (c *Client) Search(ctx context.Context, entity, query string, opts ...SearchOption) (page Page, err error) {
	start := time.Now()
	defer func() { c.obs.observe("search", entity, start, err) }()

	p := &searchParams{}
	for _, o := range opts {
		o(p)
	}
	v, err := p.values(query)
	if err != nil {
		return Page{}, fmt.Errorf("encode search params: %w", err)
	}

	path := "/api/v1/" + url.PathEscape(entity) + "/search"
	if err = c.get(ctx, path, v, &page, http.StatusOK); err != nil {
		return Page{}, err
	}
	if page.Items == nil {
		page.Items = []Item{}
	}
	return page, nil
}

// Health returns the service health report. A 503 still decodes into
// the report; only transport and decode failures are errors.
func (c *Client) Health(ctx context.Context) (h Health, err error) {
	start := time.Now()
	defer func() { c.obs.observe("health", "", start, err) }()

	err = c.get(ctx, "/health", nil, &h, http.StatusOK, http.StatusServiceUnavailable)
	return h, err
}

func (c *Client) get(ctx context.Context, path string, q url.Values, out any, accept ...int) error {
	u := *c.baseURL
	u.Path += path
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), http.NoBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	for _, code := range accept {
		if resp.StatusCode == code {
			if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
				return fmt.Errorf("decode %s: %w", path, err)
			}
			return nil
		}
	}
	return decodeError(resp)
}

func decodeError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	var e struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	if json.Unmarshal(body, &e) == nil && e.Code != "" {
		apiErr.Code = e.Code
		apiErr.Message = e.Message
	} else {
		apiErr.Message = strings.TrimSpace(string(body))
	}
	return apiErr
}

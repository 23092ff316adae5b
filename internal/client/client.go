// Package client fetches marketplace resources (orders, sales, incomes,
// stocks) from the upstream statistics API and normalizes their responses.
package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/guttosm/mpdash/internal/domain/models"
	"github.com/guttosm/mpdash/internal/jsonvalue"
	"github.com/guttosm/mpdash/internal/logger"
	"github.com/guttosm/mpdash/internal/normalize"
)

const (
	// DefaultTimeout bounds every upstream request.
	DefaultTimeout = 20 * time.Second
	DefaultBaseURL = "/api"
	DefaultOrigin  = "http://localhost"

	keyParam     = "key"
	acceptHeader = "application/json, text/plain, */*"
	maxErrorBody = 4 << 10

	// DefaultMaxBodyBytes caps how much of a response body is buffered.
	DefaultMaxBodyBytes int64 = 32 << 20
)

// ErrBodyTooLarge is returned when a response body exceeds the configured cap.
var ErrBodyTooLarge = errors.New("upstream response body too large")

// Options configures a Client.
//
// Fields:
//   - BaseURL: upstream base, absolute or relative (default "/api").
//   - Origin: absolute URL a relative BaseURL is resolved against (default "http://localhost").
//   - APIKey: sent as the "key" query parameter unless the caller supplies one.
//   - HTTPClient: optional; defaults to a client with DefaultTimeout.
//   - MaxBodyBytes: response body cap; zero or negative means DefaultMaxBodyBytes.
type Options struct {
	BaseURL      string
	Origin       string
	APIKey       string
	HTTPClient   *http.Client
	MaxBodyBytes int64
}

// Client issues one GET per call; it holds no mutable state and is safe for
// concurrent use.
type Client struct {
	httpClient *http.Client
	baseURL    string
	defaults   Params
	maxBody    int64
	log        zerolog.Logger
}

// New builds a Client from opts.
func New(opts Options) (*Client, error) {
	base, err := resolveBase(opts.BaseURL, opts.Origin)
	if err != nil {
		return nil, err
	}

	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: DefaultTimeout}
	}
	maxBody := opts.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = DefaultMaxBodyBytes
	}

	return &Client{
		httpClient: hc,
		baseURL:    base,
		defaults:   Params{{Name: keyParam, Value: opts.APIKey}},
		maxBody:    maxBody,
		log:        logger.Component("client"),
	}, nil
}

// BaseURL returns the resolved upstream base URL.
func (c *Client) BaseURL() string { return c.baseURL }

// GetOrders fetches /orders with dateFrom, dateTo, limit and page.
func (c *Client) GetOrders(ctx context.Context, f models.QueryFilter) (*models.Result, error) {
	return c.Fetch(ctx, models.Orders, f)
}

// GetSales fetches /sales with dateFrom, dateTo, limit and page.
func (c *Client) GetSales(ctx context.Context, f models.QueryFilter) (*models.Result, error) {
	return c.Fetch(ctx, models.Sales, f)
}

// GetIncomes fetches /incomes with dateFrom, dateTo, limit and page.
func (c *Client) GetIncomes(ctx context.Context, f models.QueryFilter) (*models.Result, error) {
	return c.Fetch(ctx, models.Incomes, f)
}

// GetStocks fetches /stocks with dateFrom, limit and page. f.DateTo is never sent.
func (c *Client) GetStocks(ctx context.Context, f models.QueryFilter) (*models.Result, error) {
	return c.Fetch(ctx, models.Stocks, f)
}

// Fetch fetches resource r with filter f.
func (c *Client) Fetch(ctx context.Context, r models.Resource, f models.QueryFilter) (*models.Result, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("unknown resource %q", r)
	}
	return c.Get(ctx, r.Path(), FilterParams(r, f))
}

// Get issues a GET to path below the base URL with params plus the default
// key, and returns the decoded body together with its normalized list.
//
// Errors:
//   - transport failures (including the timeout) come back as the *url.Error
//     from net/http, with the key redacted from its URL;
//   - a non-2xx status comes back as *StatusError;
//   - a body larger than the cap comes back as ErrBodyTooLarge.
func (c *Client) Get(ctx context.Context, path string, params Params) (*models.Result, error) {
	endpoint := joinURL(c.baseURL, path)
	target := endpoint
	if q := MergeDefaults(params, c.defaults).Encode(); q != "" {
		target += "?" + q
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", acceptHeader)
	if rid := logger.RequestID(ctx); rid != "" {
		req.Header.Set("X-Request-ID", rid)
	}

	log := logger.Ctx(ctx, c.log)
	start := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		var ue *url.Error
		if errors.As(err, &ue) {
			ue.URL = endpoint
		}
		log.Warn().Err(err).Str("path", path).Dur("elapsed", time.Since(start)).Msg("upstream request failed")
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody+1))
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("upstream body read failed")
		return nil, err
	}
	if int64(len(body)) > c.maxBody {
		log.Warn().Str("path", path).Int64("limit", c.maxBody).Msg("upstream body too large")
		return nil, fmt.Errorf("%s: %w (limit %d bytes)", path, ErrBodyTooLarge, c.maxBody)
	}

	log.Debug().
		Str("path", path).
		Int("status", resp.StatusCode).
		Int("bytes", len(body)).
		Int64("latency_ms", time.Since(start).Milliseconds()).
		Msg("upstream request")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if len(body) > maxErrorBody {
			body = body[:maxErrorBody]
		}
		return nil, &StatusError{
			Method:     http.MethodGet,
			URL:        endpoint,
			StatusCode: resp.StatusCode,
			Body:       string(body),
		}
	}

	raw := decodeBody(body)
	return &models.Result{Raw: raw, List: normalize.ToList(raw)}, nil
}

// decodeBody parses a JSON body; anything else is kept as a string value so
// the caller still sees what the server sent.
func decodeBody(body []byte) jsonvalue.Value {
	v, err := jsonvalue.Parse(body)
	if err != nil {
		return jsonvalue.StringValue(string(body))
	}
	return v
}

func resolveBase(base, origin string) (string, error) {
	if strings.TrimSpace(base) == "" {
		base = DefaultBaseURL
	}
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("invalid base url %q: %w", base, err)
	}
	if u.IsAbs() {
		return u.String(), nil
	}

	if strings.TrimSpace(origin) == "" {
		origin = DefaultOrigin
	}
	o, err := url.Parse(origin)
	if err != nil {
		return "", fmt.Errorf("invalid origin %q: %w", origin, err)
	}
	if !o.IsAbs() {
		return "", fmt.Errorf("origin %q must be an absolute url", origin)
	}
	return o.ResolveReference(u).String(), nil
}

func joinURL(base, path string) string {
	if path == "" {
		return base
	}
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(path, "/")
}

package laplace

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/segmentio/encoding/json"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/finfree/laplace-go/pkg/logger"
	"github.com/finfree/laplace-go/pkg/resilience"
)

// DefaultBaseURL is the production API root.
const DefaultBaseURL = "https://api.finfree.app/api"

const defaultTimeout = 30 * time.Second

// Client is the typed entry point to the HTTP API. 每个资源挂成字段，
// 全部走同一个带限流和熔断的 do()。
type Client struct {
	apiKey   string
	baseURL  string
	hc       *http.Client
	log      *zap.Logger
	limiter  *rate.Limiter
	breakers *resilience.Group[[]byte]

	Stocks          *StocksClient
	Funds           *FundsClient
	Collections     *CollectionsClient
	Search          *SearchClient
	News            *NewsClient
	State           *StateClient
	Brokers         *BrokersClient
	Politicians     *PoliticiansClient
	Earnings        *EarningsClient
	CapitalIncrease *CapitalIncreaseClient
	Financials      *FinancialsClient
	LivePrice       *LivePriceClient
}

type Option func(*Client)

// WithBaseURL overrides the API root, mostly for tests and staging.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.hc = hc }
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.log = l }
}

// WithRateLimit caps outgoing request rate client-side. Zero rps disables it.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Client) {
		if rps > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
		}
	}
}

// WithBreakerRule replaces the default circuit-breaker thresholds.
func WithBreakerRule(r resilience.Rule) Option {
	return func(c *Client) { c.breakers = resilience.NewGroup[[]byte](r) }
}

// New builds a Client. The api key is mandatory; everything else has defaults.
func New(apiKey string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	c := &Client{
		apiKey:  apiKey,
		baseURL: DefaultBaseURL,
		hc:      &http.Client{Timeout: defaultTimeout},
		log:     logger.Nop(),
	}
	for _, o := range opts {
		o(c)
	}
	if c.breakers == nil {
		c.breakers = resilience.NewGroup[[]byte](resilience.Rule{
			// 4xx 是调用方的错，不算熔断失败
			IsSuccessful: func(err error) bool {
				if err == nil {
					return true
				}
				if ae, ok := AsAPIError(err); ok {
					return ae.IsClientError()
				}
				return false
			},
		})
	}

	c.Stocks = &StocksClient{c: c}
	c.Funds = &FundsClient{c: c}
	c.Collections = &CollectionsClient{c: c}
	c.Search = &SearchClient{c: c}
	c.News = &NewsClient{c: c}
	c.State = &StateClient{c: c}
	c.Brokers = &BrokersClient{c: c}
	c.Politicians = &PoliticiansClient{c: c}
	c.Earnings = &EarningsClient{c: c}
	c.CapitalIncrease = &CapitalIncreaseClient{c: c}
	c.Financials = &FinancialsClient{c: c}
	c.LivePrice = &LivePriceClient{c: c}
	return c, nil
}

// BaseURL returns the configured API root.
func (c *Client) BaseURL() string { return c.baseURL }

// APIKey returns the configured credential. The push client needs it for
// the ws-url handshake.
func (c *Client) APIKey() string { return c.apiKey }

func (c *Client) Logger() *zap.Logger { return c.log }

func (c *Client) HTTPClient() *http.Client { return c.hc }

// Do issues an authenticated request with an optional JSON body and returns
// the raw response. The push client uses it for the ws control endpoints.
func (c *Client) Do(ctx context.Context, method, endpoint string, params url.Values, body []byte) ([]byte, error) {
	var r io.Reader
	if body != nil {
		r = bytes.NewReader(body)
	}
	return c.do(ctx, method, endpoint, params, r)
}

// do performs an authenticated request and returns the response body.
// Errors from the API surface as *APIError.
func (c *Client) do(ctx context.Context, method, endpoint string, params url.Values, body io.Reader) ([]byte, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limit wait: %w", err)
		}
	}
	key := method + " " + endpoint
	return c.breakers.Execute(key, func() ([]byte, error) {
		u := c.baseURL + "/" + endpoint
		if len(params) > 0 {
			u += "?" + params.Encode()
		}
		req, err := http.NewRequestWithContext(ctx, method, u, body)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
		req.Header.Set("Accept", "application/json")
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		start := time.Now()
		resp, err := c.hc.Do(req)
		if err != nil {
			return nil, fmt.Errorf("%s %s: %w", method, endpoint, err)
		}
		defer resp.Body.Close()

		raw, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("%s %s: read body: %w", method, endpoint, err)
		}
		c.log.Debug("api request",
			zap.String("method", method),
			zap.String("endpoint", endpoint),
			zap.Int("status", resp.StatusCode),
			zap.Duration("elapsed", time.Since(start)))

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return nil, decodeAPIError(resp.StatusCode, raw)
		}
		return raw, nil
	})
}

func decodeAPIError(status int, raw []byte) error {
	ae := &APIError{Status: status}
	if err := json.Unmarshal(raw, ae); err != nil || ae.Message == "" {
		ae.Message = string(raw)
	}
	ae.Status = status
	return ae
}

// getJSON is the shared GET-and-decode primitive all resource clients use.
func getJSON[T any](ctx context.Context, c *Client, endpoint string, params url.Values) (T, error) {
	var out T
	raw, err := c.do(ctx, http.MethodGet, endpoint, params, nil)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("decode %s: %w", endpoint, err)
	}
	return out, nil
}

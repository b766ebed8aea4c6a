package tradingeconomics

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tradingfury/macroscore/internal/contracts"
	"github.com/tradingfury/macroscore/pkg/httputil"
	"github.com/tradingfury/macroscore/pkg/logger"
	"github.com/tradingfury/macroscore/pkg/redis"
)

// Client fetches country indicator pages from Trading Economics
// ⭐ SSOT: 지표 페이지 호출은 이 클라이언트에서만
type Client struct {
	httpClient *httputil.Client
	cache      *redis.Cache
	cacheTTL   time.Duration
	logger     *logger.Logger
	baseURL    string
}

// NewClient creates a new indicator page client.
// cache may be nil; a zero ttl disables caching.
func NewClient(httpClient *httputil.Client, cache *redis.Cache, cacheTTL time.Duration, baseURL string, log *logger.Logger) *Client {
	return &Client{
		httpClient: httpClient,
		cache:      cache,
		cacheTTL:   cacheTTL,
		logger:     log.Component("tradingeconomics"),
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

// StatusError is returned for any non-200 page response
type StatusError struct {
	Country    contracts.Country
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("indicators page for %s: unexpected status code: %d", e.Country, e.StatusCode)
}

// PageURL returns the indicator page URL of a country
func (c *Client) PageURL(country contracts.Country) string {
	return fmt.Sprintf("%s/%s/indicators", c.baseURL, country)
}

// FetchIndicatorsPage returns the raw HTML of a country's indicator page
func (c *Client) FetchIndicatorsPage(ctx context.Context, country contracts.Country) (string, error) {
	cacheKey := redis.IndicatorPageKey(string(country))

	if c.cache != nil && c.cacheTTL > 0 {
		var cached string
		found, err := c.cache.Get(ctx, cacheKey, &cached)
		if err != nil {
			c.logger.WithError(err).WithField("country", country).Warn("Indicator page cache read failed")
		} else if found {
			c.logger.WithField("country", country).Debug("Indicator page served from cache")
			return cached, nil
		}
	}

	resp, err := c.httpClient.Get(ctx, c.PageURL(country))
	if err != nil {
		return "", fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &StatusError{Country: country, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}
	html := string(body)

	if c.cache != nil && c.cacheTTL > 0 {
		if err := c.cache.Set(ctx, cacheKey, html, c.cacheTTL); err != nil {
			c.logger.WithError(err).WithField("country", country).Warn("Indicator page cache write failed")
		}
	}

	return html, nil
}

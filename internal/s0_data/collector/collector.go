package collector

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/tradingfury/macroscore/internal/contracts"
	"github.com/tradingfury/macroscore/pkg/logger"
)

// Collector fans out page fetches per country and assembles one raw snapshot
// ⭐ SSOT: 데이터 수집 오케스트레이션은 이 패키지에서만
type Collector struct {
	fetcher   contracts.PageFetcher
	parser    contracts.PageParser
	countries []contracts.Country
	logger    *logger.Logger
}

// Config holds collector configuration
type Config struct {
	Workers int // Number of concurrent workers
}

// NewCollector creates a collector over the supported countries
func NewCollector(fetcher contracts.PageFetcher, parser contracts.PageParser, log *logger.Logger) *Collector {
	return &Collector{
		fetcher:   fetcher,
		parser:    parser,
		countries: contracts.Countries(),
		logger:    log.Component("collector"),
	}
}

// WithCountries overrides the traversal list
func (c *Collector) WithCountries(countries []contracts.Country) *Collector {
	c.countries = countries
	return c
}

// CountryResult is the outcome of one country fetch
type CountryResult struct {
	Country contracts.Country `json:"country"`
	Rows    int               `json:"rows"`
	Err     error             `json:"-"`
}

// RawSnapshot is the complete output of one collection cycle
type RawSnapshot struct {
	Rows        []contracts.RawRow
	Countries   []CountryResult // traversal order
	CollectedAt time.Time
}

// FailedCountries returns the countries that contributed zero rows due to an error
func (s *RawSnapshot) FailedCountries() []CountryResult {
	var failed []CountryResult
	for _, r := range s.Countries {
		if r.Err != nil {
			failed = append(failed, r)
		}
	}
	return failed
}

type job struct {
	pos     int
	country contracts.Country
}

type result struct {
	pos  int
	rows []contracts.RawRow
	err  error
}

// Collect fetches and parses every country page.
// A failing country contributes no rows; only context cancellation aborts the cycle.
func (c *Collector) Collect(ctx context.Context, cfg Config) (*RawSnapshot, error) {
	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}

	c.logger.WithFields(map[string]interface{}{
		"countries": len(c.countries),
		"workers":   workers,
	}).Info("Starting indicator collection")

	jobCh := make(chan job, len(c.countries))
	resultCh := make(chan result, len(c.countries))

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			c.worker(ctx, workerID, jobCh, resultCh)
		}(i)
	}

	for pos, country := range c.countries {
		jobCh <- job{pos: pos, country: country}
	}
	close(jobCh)

	go func() {
		wg.Wait()
		close(resultCh)
	}()

	perCountry := make([]result, len(c.countries))
	for r := range resultCh {
		perCountry[r.pos] = r
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("collection cancelled: %w", err)
	}

	snapshot := &RawSnapshot{
		Countries:   make([]CountryResult, len(c.countries)),
		CollectedAt: time.Now(),
	}
	failCount := 0
	for pos, r := range perCountry {
		snapshot.Countries[pos] = CountryResult{
			Country: c.countries[pos],
			Rows:    len(r.rows),
			Err:     r.err,
		}
		if r.err != nil {
			failCount++
			continue
		}
		snapshot.Rows = append(snapshot.Rows, r.rows...)
	}

	c.logger.WithFields(map[string]interface{}{
		"rows":    len(snapshot.Rows),
		"success": len(c.countries) - failCount,
		"failed":  failCount,
	}).Info("Indicator collection completed")

	return snapshot, nil
}

// worker processes country pages
func (c *Collector) worker(ctx context.Context, workerID int, jobCh <-chan job, resultCh chan<- result) {
	for j := range jobCh {
		select {
		case <-ctx.Done():
			resultCh <- result{pos: j.pos, err: ctx.Err()}
			continue
		default:
		}

		rows, err := c.collectCountry(ctx, j.country)
		if err != nil {
			c.logger.WithError(err).WithFields(map[string]interface{}{
				"worker":  workerID,
				"country": j.country,
			}).Warn("Country skipped")
			resultCh <- result{pos: j.pos, err: err}
			continue
		}

		c.logger.WithFields(map[string]interface{}{
			"worker":  workerID,
			"country": j.country,
			"count":   len(rows),
		}).Debug("Fetched country indicators")

		resultCh <- result{pos: j.pos, rows: rows}
	}
}

func (c *Collector) collectCountry(ctx context.Context, country contracts.Country) ([]contracts.RawRow, error) {
	html, err := c.fetcher.FetchIndicatorsPage(ctx, country)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", country, err)
	}

	parsed, err := c.parser.ParseIndicators(html)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", country, err)
	}

	rows := make([]contracts.RawRow, 0, len(parsed))
	for _, p := range parsed {
		rows = append(rows, contracts.RawRow{
			Country:   country,
			Indicator: p.Name,
			Last:      p.Last,
			Previous:  p.Previous,
		})
	}
	return rows, nil
}

package fetcher

import (
	"errors"
	"time"

	"github.com/gocolly/colly/v2"
	"github.com/rs/zerolog"
)

// DefaultUserAgent is the client identity sent with every request
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// DefaultTimeout bounds a single request
const DefaultTimeout = 30 * time.Second

var errEmptyResponse = errors.New("no response received")

// CollyFetcher implements the Fetcher interface using colly
type CollyFetcher struct {
	collector *colly.Collector
	logger    zerolog.Logger
}

// NewCollyFetcher creates a new CollyFetcher instance. The user agent is
// fixed for the lifetime of the fetcher.
func NewCollyFetcher(userAgent string, timeout time.Duration, logger zerolog.Logger) *CollyFetcher {
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	c := colly.NewCollector(
		colly.UserAgent(userAgent),
		colly.AllowURLRevisit(),
	)
	c.SetRequestTimeout(timeout)

	return &CollyFetcher{
		collector: c,
		logger:    logger,
	}
}

// Fetch implements the Fetcher interface. Each call clones the base
// collector so callbacks never leak between requests.
func (cf *CollyFetcher) Fetch(url string) ([]byte, error) {
	c := cf.collector.Clone()

	var body []byte
	received := false
	status := 0

	c.OnResponse(func(r *colly.Response) {
		body = r.Body
		status = r.StatusCode
		received = true
	})

	c.OnError(func(r *colly.Response, err error) {
		if r != nil {
			status = r.StatusCode
		}
		cf.logger.Error().Str("url", url).Int("status", status).Err(err).Msg("fetch failed")
	})

	if err := c.Visit(url); err != nil {
		return nil, &FetchError{URL: url, StatusCode: status, Err: err}
	}
	if !received {
		return nil, &FetchError{URL: url, Err: errEmptyResponse}
	}

	cf.logger.Debug().Str("url", url).Int("status", status).Int("bytes", len(body)).Msg("fetched page")
	return body, nil
}

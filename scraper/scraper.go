package scraper

import (
	"fmt"
	"strings"

	"itproger-bot/config"
	"itproger-bot/fetcher"
	"itproger-bot/models"
	"itproger-bot/parser"

	"github.com/rs/zerolog"
)

// Scraper interface defines the operations the bot layer relies on.
// None of them fail: every error degrades to an empty or default result.
type Scraper interface {
	// ListArticles returns the articles of listing page n (1-based)
	ListArticles(page int) []models.Article
	// CountTotalPages returns the number of listing pages, at least 1
	CountTotalPages() int
	// GetFullArticleText returns the formatted body of an article, never empty
	GetFullArticleText(url string) models.FullText
}

// Client scrapes the news listing and article pages of the site
type Client struct {
	fetcher fetcher.Fetcher
	list    *parser.Parser
	pages   *parser.PageCounter
	detail  *parser.DetailParser
	newsURL string
	logger  zerolog.Logger
}

var _ Scraper = (*Client)(nil)

// NewClient creates a Client for the configured site using f for all requests
func NewClient(cfg *config.Config, f fetcher.Fetcher, logger zerolog.Logger) (*Client, error) {
	rules, err := cfg.Rules.Compile()
	if err != nil {
		return nil, fmt.Errorf("failed to compile extraction rules: %w", err)
	}

	list, err := parser.NewParser(rules, cfg.Site.BaseURL, cfg.Limits.DescriptionChars, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create listing parser: %w", err)
	}

	logger.Info().Int("rules_version", rules.Version).Str("news_url", cfg.NewsURL()).Msg("scraper initialized")

	return &Client{
		fetcher: f,
		list:    list,
		pages:   parser.NewPageCounter(rules, cfg.Pagination.FallbackTotalPages, logger),
		detail:  parser.NewDetailParser(rules, cfg.Limits.FullTextChars, logger),
		newsURL: strings.TrimRight(cfg.NewsURL(), "/"),
		logger:  logger,
	}, nil
}

// PageURL returns the listing URL of page n
func (c *Client) PageURL(page int) string {
	if page <= 1 {
		return c.newsURL
	}
	return fmt.Sprintf("%s/page-%d", c.newsURL, page)
}

// ListArticles implements Scraper
func (c *Client) ListArticles(page int) []models.Article {
	if page < 1 {
		page = 1
	}
	url := c.PageURL(page)
	c.logger.Info().Int("page", page).Str("url", url).Msg("parsing listing page")

	markup, err := c.fetcher.Fetch(url)
	if err != nil {
		c.logger.Error().Err(err).Int("page", page).Msg("error fetching articles")
		return []models.Article{}
	}

	articles, err := c.list.ParseArticles(markup, page)
	if err != nil {
		c.logger.Error().Err(err).Int("page", page).Msg("error parsing articles")
		return []models.Article{}
	}
	return articles
}

// CountTotalPages implements Scraper
func (c *Client) CountTotalPages() int {
	markup, err := c.fetcher.Fetch(c.PageURL(1))
	if err != nil {
		c.logger.Error().Err(err).Msg("error getting total pages")
		return c.pages.Fallback()
	}
	return c.pages.CountPages(markup)
}

// GetFullArticleText implements Scraper
func (c *Client) GetFullArticleText(url string) models.FullText {
	if url == "" {
		return parser.ComingSoon()
	}

	markup, err := c.fetcher.Fetch(url)
	if err != nil {
		c.logger.Error().Err(err).Str("url", url).Msg("error fetching full article")
		return parser.ComingSoon()
	}
	return c.detail.ParseDetailPage(markup)
}

package parser

import (
	"bytes"
	"fmt"
	"net/url"
	"strings"

	"itproger-bot/models"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"
)

// PlaceholderTitle marks a card without a title; such cards are never returned
const PlaceholderTitle = "no title"

// DefaultDescriptionLimit is the description length cap in characters
const DefaultDescriptionLimit = 200

// Parser extracts article cards from a listing page
type Parser struct {
	rules            *CompiledRules
	baseURL          *url.URL
	descriptionLimit int
	logger           zerolog.Logger
}

// NewParser creates a new listing Parser. Relative links and images are
// resolved against baseURL.
func NewParser(rules *CompiledRules, baseURL string, descriptionLimit int, logger zerolog.Logger) (*Parser, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", baseURL, err)
	}
	if descriptionLimit <= 0 {
		descriptionLimit = DefaultDescriptionLimit
	}
	return &Parser{
		rules:            rules,
		baseURL:          base,
		descriptionLimit: descriptionLimit,
		logger:           logger,
	}, nil
}

// ParseArticles extracts the articles of one listing page in document order.
// Cards without a usable title are dropped. The result depends only on the
// markup, page is used for logging.
func (p *Parser) ParseArticles(markup []byte, page int) ([]models.Article, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(markup))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	container, ok := p.findContainer(doc)
	if !ok {
		p.logger.Warn().Int("page", page).Msg("no articles container found")
		return []models.Article{}, nil
	}

	cards := container.Find(p.rules.Listing.Card)
	p.logger.Info().Int("page", page).Int("cards", cards.Length()).Msg("found article cards")

	articles := make([]models.Article, 0, cards.Length())
	cards.Each(func(_ int, card *goquery.Selection) {
		article := p.extractArticle(card)
		if !hasUsableTitle(article) {
			p.logger.Debug().Int("page", page).Msg("skipping card without title")
			return
		}
		p.logger.Debug().Str("title", article.Title).Msg("parsed article")
		articles = append(articles, article)
	})

	return articles, nil
}

// findContainer locates the listing container: the dedicated marker first,
// then semantic main regions, then a content/main-like class name
func (p *Parser) findContainer(doc *goquery.Document) (*goquery.Selection, bool) {
	rules := p.rules.Listing
	if sel, ok := firstBySelectors(doc.Selection, rules.Container); ok {
		return sel, true
	}
	if sel, ok := firstBySelectors(doc.Selection, rules.ContainerFallbacks...); ok {
		return sel, true
	}
	return firstDivByClassPattern(doc.Selection, p.rules.containerClass)
}

func hasUsableTitle(a models.Article) bool {
	return a.Title != "" && a.Title != PlaceholderTitle
}

// extractArticle extracts a single article from a card
func (p *Parser) extractArticle(card *goquery.Selection) models.Article {
	article := models.Article{Views: "0"}

	title, link := p.extractTitleAndLink(card)
	article.Title = title
	article.Link = link

	if image, ok := p.extractImage(card); ok {
		article.Image = image
	}
	if description, ok := p.extractDescription(card); ok {
		article.Description = description
	}
	if meta, views, ok := p.extractMeta(card); ok {
		article.Meta = meta
		article.Views = views
	}

	return article
}

// extractTitleAndLink reads the first anchor of the card. The title is the
// anchor's inner label when present, the anchor text otherwise.
func (p *Parser) extractTitleAndLink(card *goquery.Selection) (string, string) {
	anchor := card.Find(p.rules.Listing.Anchor).First()
	if anchor.Length() == 0 {
		return PlaceholderTitle, ""
	}

	var title string
	if label := anchor.Find(p.rules.Listing.Label).First(); label.Length() > 0 {
		title = strings.TrimSpace(label.Text())
	} else {
		title = strings.TrimSpace(anchor.Text())
	}

	link := ""
	if href := anchor.AttrOr("href", ""); href != "" {
		link = p.resolveURL(href)
	}
	return title, link
}

func (p *Parser) extractImage(card *goquery.Selection) (string, bool) {
	src := card.Find(p.rules.Listing.Image).First().AttrOr("src", "")
	if src == "" {
		return "", false
	}
	resolved := p.resolveURL(src)
	return resolved, resolved != ""
}

// extractDescription reads the configured label of the card (the second one
// by default, the first is the title)
func (p *Parser) extractDescription(card *goquery.Selection) (string, bool) {
	labels := card.Find(p.rules.Listing.Label)
	idx := p.rules.Listing.DescriptionIndex
	if labels.Length() <= idx {
		return "", false
	}
	description := normalizeWhitespace(labels.Eq(idx).Text())
	description, _ = truncateChars(description, p.descriptionLimit)
	return description, true
}

// extractMeta parses views and date out of the first block of the card
func (p *Parser) extractMeta(card *goquery.Selection) (meta, views string, ok bool) {
	block := card.Find(p.rules.Listing.Meta).First()
	if block.Length() == 0 {
		return "", "0", false
	}
	text := strings.TrimSpace(block.Text())

	views, found := firstSubmatch(p.rules.views, text)
	if !found {
		views = "0"
	}

	if date, found := firstSubmatch(p.rules.dates, text); found {
		return fmt.Sprintf("%s views • %s", views, date), views, true
	}
	return fmt.Sprintf("%s views", views), views, true
}

// resolveURL resolves ref against the site base URL
func (p *Parser) resolveURL(ref string) string {
	u, err := url.Parse(strings.TrimSpace(ref))
	if err != nil {
		p.logger.Debug().Str("ref", ref).Err(err).Msg("unresolvable URL")
		return ""
	}
	return p.baseURL.ResolveReference(u).String()
}

package bot

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"unicode/utf8"

	"itproger-bot/models"
	"itproger-bot/scraper"
	"itproger-bot/session"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
)

// Sender is the part of the Telegram API the bot uses; *tgbotapi.BotAPI implements it
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// Bot dispatches Telegram updates to the scraper and renders the results
type Bot struct {
	api      Sender
	scraper  scraper.Scraper
	sessions *session.Store
	perPage  int
	logger   zerolog.Logger
}

// New creates a Bot. sessions holds the pagination state of every user.
func New(api Sender, s scraper.Scraper, sessions *session.Store, perPage int, logger zerolog.Logger) *Bot {
	if perPage <= 0 {
		perPage = 10
	}
	return &Bot{
		api:      api,
		scraper:  s,
		sessions: sessions,
		perPage:  perPage,
		logger:   logger,
	}
}

// Run handles updates until ctx is cancelled or the channel is closed.
// Each update is handled in its own goroutine.
func (b *Bot) Run(ctx context.Context, updates <-chan tgbotapi.Update) {
	var wg sync.WaitGroup
	defer wg.Wait()

	for {
		select {
		case <-ctx.Done():
			b.logger.Info().Msg("bot stopped")
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			wg.Add(1)
			go func() {
				defer wg.Done()
				b.HandleUpdate(update)
			}()
		}
	}
}

// HandleUpdate handles a single update
func (b *Bot) HandleUpdate(update tgbotapi.Update) {
	switch {
	case update.CallbackQuery != nil:
		if update.CallbackQuery.Message != nil {
			b.handleCallbackQuery(update.CallbackQuery)
		}
	case update.Message != nil:
		b.handleMessage(update.Message)
	}
}

func (b *Bot) handleMessage(msg *tgbotapi.Message) {
	if msg.From == nil || msg.Chat == nil {
		return
	}
	userID := msg.From.ID
	chatID := msg.Chat.ID

	if msg.IsCommand() {
		switch msg.Command() {
		case "start":
			b.sessions.Reset(userID)
			b.send(chatID, welcomeText, "", mainKeyboard())
		case "help":
			b.send(chatID, helpText, tgbotapi.ModeHTML, mainKeyboard())
		case "latest":
			b.showArticles(chatID, userID, 1)
		default:
			b.send(chatID, hintText, "", mainKeyboard())
		}
		return
	}

	switch strings.TrimSpace(msg.Text) {
	case ButtonLatest:
		b.showArticles(chatID, userID, 1)
	case ButtonRefresh:
		b.showArticles(chatID, userID, b.sessions.Get(userID).CurrentPage)
	case ButtonHelp:
		b.send(chatID, helpText, tgbotapi.ModeHTML, mainKeyboard())
	default:
		b.send(chatID, hintText, "", mainKeyboard())
	}
}

// handleCallbackQuery handles callback queries from inline keyboard buttons
func (b *Bot) handleCallbackQuery(callback *tgbotapi.CallbackQuery) {
	if callback.From == nil || callback.Message.Chat == nil {
		return
	}
	userID := callback.From.ID
	chatID := callback.Message.Chat.ID
	data := callback.Data
	answer := ""

	switch {
	case data == dataRefresh:
		b.showArticles(chatID, userID, b.sessions.Get(userID).CurrentPage)
		answer = refreshedText
	case data == dataNextPage:
		current := b.sessions.Get(userID).CurrentPage
		if current < b.totalPages(userID) {
			b.showArticles(chatID, userID, current+1)
		} else {
			answer = lastPageText
		}
	case data == dataPrevPage:
		current := b.sessions.Get(userID).CurrentPage
		if current > 1 {
			b.showArticles(chatID, userID, current-1)
		} else {
			answer = firstPageText
		}
	case strings.HasPrefix(data, dataArticlePrefix):
		if index, ok := parseIndex(data, dataArticlePrefix); ok {
			b.showArticleDetail(chatID, userID, index)
		}
	case strings.HasPrefix(data, dataFullPrefix):
		if index, ok := parseIndex(data, dataFullPrefix); ok {
			b.showFullArticle(chatID, userID, index)
		}
	default:
		b.logger.Warn().Str("data", data).Int64("user_id", userID).Msg("unknown callback data")
	}

	if _, err := b.api.Request(tgbotapi.NewCallback(callback.ID, answer)); err != nil {
		b.logger.Error().Err(err).Msg("failed to answer callback")
	}
}

func parseIndex(data, prefix string) (int, bool) {
	index, err := strconv.Atoi(strings.TrimPrefix(data, prefix))
	if err != nil || index < 0 {
		return 0, false
	}
	return index, true
}

func (b *Bot) totalPages(userID int64) int {
	return b.sessions.TotalPages(userID, func() int {
		total := b.scraper.CountTotalPages()
		b.logger.Info().Int64("user_id", userID).Int("pages", total).Msg("total pages computed")
		return total
	})
}

// showArticles sends the article list of a page
func (b *Bot) showArticles(chatID, userID int64, page int) {
	total := b.totalPages(userID)
	b.sessions.SetPage(userID, page)

	articles := b.scraper.ListArticles(page)
	if len(articles) == 0 {
		b.send(chatID, loadFailedText, "", nil)
		return
	}
	if len(articles) > b.perPage {
		articles = articles[:b.perPage]
	}

	b.send(chatID, renderListing(page, total, articles), tgbotapi.ModeHTML, articlesKeyboard(len(articles), page, total))
}

// currentArticle re-reads the user's current page and picks one article from it
func (b *Bot) currentArticle(userID int64, index int) (models.Article, int, bool) {
	articles := b.scraper.ListArticles(b.sessions.Get(userID).CurrentPage)
	if len(articles) > b.perPage {
		articles = articles[:b.perPage]
	}
	if index >= len(articles) {
		return models.Article{}, len(articles), false
	}
	return articles[index], len(articles), true
}

// showArticleDetail sends the card of one article, as a photo when it has an image
func (b *Bot) showArticleDetail(chatID, userID int64, index int) {
	article, count, ok := b.currentArticle(userID, index)
	if !ok {
		b.send(chatID, notFoundText, "", nil)
		return
	}

	text := renderDetail(article)
	keyboard := detailKeyboard(index, count, article.Link)

	if article.Image != "" && utf8.RuneCountInString(text) <= captionCharLimit {
		photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileURL(article.Image))
		photo.Caption = text
		photo.ParseMode = tgbotapi.ModeHTML
		photo.ReplyMarkup = keyboard
		_, err := b.api.Send(photo)
		if err == nil {
			return
		}
		b.logger.Error().Err(err).Str("image", article.Image).Msg("error sending photo")
	}

	b.send(chatID, text, tgbotapi.ModeHTML, keyboard)
}

// showFullArticle sends the formatted body of one article
func (b *Bot) showFullArticle(chatID, userID int64, index int) {
	article, _, ok := b.currentArticle(userID, index)
	if !ok {
		b.send(chatID, notFoundText, "", nil)
		return
	}

	full := b.scraper.GetFullArticleText(article.Link)
	var markup interface{}
	if keyboard, ok := fullTextKeyboard(article.Link, full.Truncated); ok {
		markup = keyboard
	}
	b.send(chatID, renderFullText(full), "", markup)
}

func (b *Bot) send(chatID int64, text, parseMode string, markup interface{}) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = parseMode
	if markup != nil {
		msg.ReplyMarkup = markup
	}
	if _, err := b.api.Send(msg); err != nil {
		b.logger.Error().Err(err).Int64("chat_id", chatID).Msg("error sending message")
	}
}

package bot

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Reply keyboard buttons
const (
	ButtonLatest  = "📰 Latest news"
	ButtonRefresh = "🔄 Refresh"
	ButtonHelp    = "ℹ️ Help"
)

// Callback data
const (
	dataRefresh       = "refresh"
	dataNextPage      = "next_page"
	dataPrevPage      = "prev_page"
	dataArticlePrefix = "article_"
	dataFullPrefix    = "full_"
)

// mainKeyboard is the persistent reply keyboard
func mainKeyboard() tgbotapi.ReplyKeyboardMarkup {
	keyboard := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(ButtonLatest),
			tgbotapi.NewKeyboardButton(ButtonRefresh),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(ButtonHelp),
		),
	)
	keyboard.ResizeKeyboard = true
	return keyboard
}

// articlesKeyboard builds the article grid (two per row) and the page navigation row
func articlesKeyboard(count, page, totalPages int) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton

	var row []tgbotapi.InlineKeyboardButton
	for i := 0; i < count; i++ {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(
			fmt.Sprintf("Article %d", i+1),
			fmt.Sprintf("%s%d", dataArticlePrefix, i),
		))
		if len(row) == 2 {
			rows = append(rows, tgbotapi.NewInlineKeyboardRow(row...))
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(row...))
	}

	var nav []tgbotapi.InlineKeyboardButton
	if page > 1 {
		nav = append(nav, tgbotapi.NewInlineKeyboardButtonData("⬅️ Back", dataPrevPage))
	}
	nav = append(nav, tgbotapi.NewInlineKeyboardButtonData("Refresh", dataRefresh))
	if page < totalPages {
		nav = append(nav, tgbotapi.NewInlineKeyboardButtonData("Next ➡️", dataNextPage))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(nav...))

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// detailKeyboard navigates between the articles of the current page
func detailKeyboard(index, total int, link string) tgbotapi.InlineKeyboardMarkup {
	var nav []tgbotapi.InlineKeyboardButton
	if index > 0 {
		nav = append(nav, tgbotapi.NewInlineKeyboardButtonData("⬅️ Back", fmt.Sprintf("%s%d", dataArticlePrefix, index-1)))
	}
	nav = append(nav, tgbotapi.NewInlineKeyboardButtonData("📖 Full article", fmt.Sprintf("%s%d", dataFullPrefix, index)))
	if index < total-1 {
		nav = append(nav, tgbotapi.NewInlineKeyboardButtonData("Forward ➡️", fmt.Sprintf("%s%d", dataArticlePrefix, index+1)))
	}

	rows := [][]tgbotapi.InlineKeyboardButton{
		tgbotapi.NewInlineKeyboardRow(nav...),
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("🔄 Refresh list", dataRefresh)),
	}
	if link != "" {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonURL("🔗 Open on site", link)))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// fullTextKeyboard links to the article on the site
func fullTextKeyboard(link string, truncated bool) (tgbotapi.InlineKeyboardMarkup, bool) {
	if link == "" {
		return tgbotapi.InlineKeyboardMarkup{}, false
	}
	label := "🔗 Open on site"
	if truncated {
		label = continueReading
	}
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonURL(label, link)),
	), true
}

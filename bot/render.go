package bot

import (
	"fmt"
	"html"
	"strings"

	"itproger-bot/models"
)

const (
	welcomeText = "🤖 Welcome to the IT Proger News Bot!\n\n" +
		"I will help you follow the latest IT news from itproger.com\n\n" +
		"Use the buttons below to navigate:"

	helpText = "📚 <b>How to use the bot:</b>\n\n" +
		"• <b>" + ButtonLatest + "</b> - show the latest articles\n" +
		"• <b>" + ButtonRefresh + "</b> - reload the current page\n" +
		"• <b>" + ButtonHelp + "</b> - show this help\n\n" +
		"<b>Navigation:</b>\n" +
		"• Articles are shown as a grid of buttons\n" +
		"• Use \"Next ➡️\" and \"⬅️ Back\" to switch pages\n" +
		"• Tap an article to see its details\n" +
		"• In the detail view, move between articles or open the full text\n\n" +
		"Tap \"" + ButtonLatest + "\" to begin!"

	hintText = "🤖 Use the buttons to navigate!\n" +
		"Send /start to begin or \"" + ButtonHelp + "\" for help."

	loadFailedText   = "❌ Failed to load articles. Try again later."
	notFoundText     = "❌ Article not found!"
	refreshedText    = "Refreshed!"
	lastPageText     = "You are already on the last page!"
	firstPageText    = "You are already on the first page!"
	continueReading  = "📖 Continue reading on the site"
	captionCharLimit = 1024
)

// escape makes decoded page text safe for the HTML parse mode.
// Tag-like text such as "<canvas>" is kept and shown literally.
func escape(s string) string {
	return html.EscapeString(s)
}

// renderListing renders the page header and the numbered article list
func renderListing(page, totalPages int, articles []models.Article) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("📄 Page %d of %d\n\n", page, totalPages))
	for i, article := range articles {
		sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, escape(article.Title)))
		if article.Description != "" {
			sb.WriteString(fmt.Sprintf("   %s\n", escape(article.Description)))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// renderDetail renders the card of a single article
func renderDetail(article models.Article) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("<b>%s</b>\n\n", escape(article.Title)))
	if article.Description != "" {
		sb.WriteString(escape(article.Description))
		sb.WriteString("\n\n")
	}
	if article.Meta != "" {
		sb.WriteString(fmt.Sprintf("📊 %s\n", escape(article.Meta)))
	}

	return sb.String()
}

// renderFullText renders the article body as plain text
func renderFullText(full models.FullText) string {
	text := full.Text
	if full.Truncated {
		text += "\n\n" + continueReading
	}
	return text
}

package cmd

import (
	"fmt"
	"io"
	"os"

	"itproger-bot/models"

	"github.com/spf13/cobra"
)

var flagPage int

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the articles of a listing page",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := checkPage(flagPage); err != nil {
			return err
		}
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		client, err := newScraper(cfg, newLogger(os.Stderr, cfg.Log.Level))
		if err != nil {
			return err
		}

		articles := client.ListArticles(flagPage)
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Found %d articles on page %d (%s)\n", len(articles), flagPage, client.PageURL(flagPage))
		fmt.Fprintln(out, "---")
		if len(articles) == 0 {
			fmt.Fprintln(out, "No articles found.")
			return nil
		}
		formatArticlesConsole(out, articles)
		return nil
	},
}

var pagesCmd = &cobra.Command{
	Use:   "pages",
	Short: "Print the total number of listing pages",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		client, err := newScraper(cfg, newLogger(os.Stderr, cfg.Log.Level))
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d\n", client.CountTotalPages())
		return nil
	},
}

var articleCmd = &cobra.Command{
	Use:   "article URL",
	Short: "Print the formatted text of an article",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		client, err := newScraper(cfg, newLogger(os.Stderr, cfg.Log.Level))
		if err != nil {
			return err
		}

		full := client.GetFullArticleText(args[0])
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, full.Text)
		if full.Truncated {
			fmt.Fprintf(out, "\n[truncated, read the rest at %s]\n", args[0])
		}
		return nil
	},
}

func init() {
	listCmd.Flags().IntVarP(&flagPage, "page", "p", 1, "listing page number (1-based)")
}

// checkPage rejects page numbers the listing does not have
func checkPage(page int) error {
	if page < 1 {
		return fmt.Errorf("invalid --page value %d: pages start at 1", page)
	}
	return nil
}

// formatArticlesConsole formats articles for console output
func formatArticlesConsole(out io.Writer, articles []models.Article) {
	for i, article := range articles {
		fmt.Fprintf(out, "\n%d. %s\n", i+1, article.Title)
		if article.Link != "" {
			fmt.Fprintf(out, "   Link: %s\n", article.Link)
		}
		if article.Description != "" {
			fmt.Fprintf(out, "   %s\n", article.Description)
		}
		if article.Meta != "" {
			fmt.Fprintf(out, "   %s\n", article.Meta)
		}
		if article.Image != "" {
			fmt.Fprintf(out, "   Image: %s\n", article.Image)
		}
	}
}

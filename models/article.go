package models

// Article represents one news card scraped from a listing page
type Article struct {
	Title       string
	Link        string // Absolute URL, empty if the card had no anchor
	Image       string // Absolute URL, empty if the card had no image
	Description string
	Meta        string // "{views} views • {date}" or "{views} views"
	Views       string // Digits only, "0" when unknown
}

// FullText is the formatted body of a single article
type FullText struct {
	Text      string
	Truncated bool
}

// PaginationState is the per-user browsing position
type PaginationState struct {
	CurrentPage int
	TotalPages  int // 0 until computed
}

// HasTotal reports whether the total page count was already computed
func (s PaginationState) HasTotal() bool {
	return s.TotalPages > 0
}

package models

// FeedItem is one Instagram post normalized for display on the site.
// Absent upstream values become empty strings; items without both an image
// and a permalink are dropped before they reach the browser.
type FeedItem struct {
	ID        string `json:"id"`
	Caption   string `json:"caption"`
	Image     string `json:"image"`
	Permalink string `json:"permalink"`
	Timestamp string `json:"timestamp"`
}

package models

import "time"

// HistoryEntry records an article the user summarized. Entries are
// append-only and listed most recent first.
type HistoryEntry struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"user_id"`
	ArticleTitle string    `json:"article_title"`
	Language     string    `json:"language"`
	Summary      string    `json:"summary"`
	CreatedAt    time.Time `json:"created_at"`
}

// Bookmark is an article summary the user chose to keep.
type Bookmark struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"user_id"`
	ArticleTitle string    `json:"article_title"`
	Language     string    `json:"language"`
	Summary      string    `json:"summary"`
	CreatedAt    time.Time `json:"created_at"`
}

// SavedArticle is the payload shared by new history entries and bookmarks.
type SavedArticle struct {
	Title    string
	Language string
	Summary  string
}

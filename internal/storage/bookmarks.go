package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hoanghai1803/tribalwiki/internal/models"
)

// AddBookmark saves a bookmark for the user and returns its ID.
func (s *Store) AddBookmark(ctx context.Context, userID int64, a models.SavedArticle) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO user_bookmarks (user_id, article_title, language, summary)
		 VALUES (?, ?, ?, ?)`,
		userID, a.Title, a.Language, a.Summary,
	)
	if err != nil {
		return 0, fmt.Errorf("adding bookmark: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting bookmark id: %w", err)
	}
	return id, nil
}

// GetBookmarks returns all of the user's bookmarks, newest first.
func (s *Store) GetBookmarks(ctx context.Context, userID int64) ([]models.Bookmark, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, article_title, language, summary, created_at
		 FROM user_bookmarks
		 WHERE user_id = ?
		 ORDER BY created_at DESC, id DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("querying bookmarks: %w", err)
	}
	defer rows.Close()

	var bookmarks []models.Bookmark
	for rows.Next() {
		var (
			b         models.Bookmark
			summary   sql.NullString
			createdAt string
		)
		if err := rows.Scan(&b.ID, &b.UserID, &b.ArticleTitle, &b.Language, &summary, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning bookmark row: %w", err)
		}
		b.Summary = summary.String
		b.CreatedAt = parseTime(createdAt)
		bookmarks = append(bookmarks, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating bookmark rows: %w", err)
	}
	return bookmarks, nil
}

// DeleteBookmark removes the bookmark only if it belongs to userID. It is
// idempotent: deleting a missing or foreign bookmark is not an error. The
// returned count tells callers whether a row was actually removed.
func (s *Store) DeleteBookmark(ctx context.Context, userID, bookmarkID int64) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM user_bookmarks WHERE id = ? AND user_id = ?`,
		bookmarkID, userID,
	)
	if err != nil {
		return 0, fmt.Errorf("deleting bookmark: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}

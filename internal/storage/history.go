package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hoanghai1803/tribalwiki/internal/models"
)

// HistoryLimit caps how many history entries are listed per user.
const HistoryLimit = 50

// AddHistory appends a history entry for the user and returns its ID.
func (s *Store) AddHistory(ctx context.Context, userID int64, a models.SavedArticle) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO user_history (user_id, article_title, language, summary)
		 VALUES (?, ?, ?, ?)`,
		userID, a.Title, a.Language, a.Summary,
	)
	if err != nil {
		return 0, fmt.Errorf("adding history entry: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting history entry id: %w", err)
	}
	return id, nil
}

// GetHistory returns the user's most recent history entries, newest first,
// limited to HistoryLimit.
func (s *Store) GetHistory(ctx context.Context, userID int64) ([]models.HistoryEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, article_title, language, summary, created_at
		 FROM user_history
		 WHERE user_id = ?
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`, userID, HistoryLimit)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var entries []models.HistoryEntry
	for rows.Next() {
		var (
			e         models.HistoryEntry
			summary   sql.NullString
			createdAt string
		)
		if err := rows.Scan(&e.ID, &e.UserID, &e.ArticleTitle, &e.Language, &summary, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning history row: %w", err)
		}
		e.Summary = summary.String
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating history rows: %w", err)
	}
	return entries, nil
}

package sqlite

import (
	"context"
	"database/sql"
	"fmt"
)

// execer covers both *sql.DB and *sql.Tx for tag insertion.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// insertTags associates each tag with the note using insert-or-ignore
// semantics: a (note_id, tag_name) pair that already exists is a no-op,
// never an error. Tag names are stored case-sensitively as given.
func insertTags(ctx context.Context, db execer, noteID string, tags []string) error {
	for _, tag := range tags {
		_, err := db.ExecContext(ctx, `
			INSERT OR IGNORE INTO note_tags (note_id, tag_name)
			VALUES (?, ?)`,
			noteID,
			tag,
		)
		if err != nil {
			return fmt.Errorf("insert note_tag: %w", err)
		}
	}
	return nil
}

// AddTagsToNote idempotently associates tags with a note.
func (s *Store) AddTagsToNote(ctx context.Context, noteID string, tags []string) error {
	return insertTags(ctx, s.db, noteID, tags)
}

// GetTagsForNote returns the tag names associated with a note, ordered for
// stable output.
func (s *Store) GetTagsForNote(ctx context.Context, noteID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT tag_name FROM note_tags WHERE note_id = ? ORDER BY tag_name ASC`,
		noteID)
	if err != nil {
		return nil, fmt.Errorf("query note_tags: %w", err)
	}
	defer rows.Close()

	var tags []string
	for rows.Next() {
		var tag string
		if err := rows.Scan(&tag); err != nil {
			return nil, fmt.Errorf("scan note_tag: %w", err)
		}
		tags = append(tags, tag)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}

	if tags == nil {
		tags = []string{}
	}

	return tags, nil
}

package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/inkwellapp/inkwell-server/internal/domain"
	"github.com/inkwellapp/inkwell-server/internal/store"
)

// noteColumns is the ordered list of note columns selected in note queries.
// Must match the scan order in scanNote.
const noteColumns = `n.id, n.subject_id, n.title, n.content, n.created_at, n.updated_at`

// noteViewColumns extends noteColumns with the owning subject's display
// fields, joined at read time so they always reflect the subject's current
// values.
const noteViewColumns = noteColumns + `, s.name, s.color`

// scanNote scans a note row. Timestamps are repaired, not rejected: a stored
// value that is missing or unparsable becomes the current time plus a log
// entry.
func (s *Store) scanNote(scanner interface{ Scan(dest ...any) error }) (*domain.Note, error) {
	var n domain.Note
	var createdAt, updatedAt sql.NullString

	err := scanner.Scan(
		&n.ID,
		&n.SubjectID,
		&n.Title,
		&n.Content,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	n.CreatedAt = s.repairTime(createdAt.String, "created_at", n.ID)
	n.UpdatedAt = s.repairTime(updatedAt.String, "updated_at", n.ID)
	return &n, nil
}

// scanNoteView scans a joined note + subject row.
func (s *Store) scanNoteView(scanner interface{ Scan(dest ...any) error }) (*domain.NoteView, error) {
	var v domain.NoteView
	var createdAt, updatedAt sql.NullString

	err := scanner.Scan(
		&v.ID,
		&v.SubjectID,
		&v.Title,
		&v.Content,
		&createdAt,
		&updatedAt,
		&v.SubjectName,
		&v.SubjectColor,
	)
	if err != nil {
		return nil, err
	}

	v.CreatedAt = s.repairTime(createdAt.String, "created_at", v.ID)
	v.UpdatedAt = s.repairTime(updatedAt.String, "updated_at", v.ID)
	return &v, nil
}

// CreateNote inserts the note row and its tag associations in a single
// transaction, so a tag failure never leaves an untagged note behind.
// Returns store.ErrAlreadyExists on a duplicate note id.
func (s *Store) CreateNote(ctx context.Context, n *domain.Note) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO notes (id, subject_id, title, content, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		n.ID,
		n.SubjectID,
		n.Title,
		n.Content,
		formatTime(n.CreatedAt),
		formatTime(n.UpdatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrAlreadyExists
		}
		return fmt.Errorf("insert note: %w", err)
	}

	if err := insertTags(ctx, tx, n.ID, n.Tags); err != nil {
		return err
	}

	return tx.Commit()
}

// UpdateNote applies a partial update in a single transaction: scalar fields
// plus an unconditional updated_at bump, and, when u.Tags is set, a wholesale
// replacement of the tag set. The statement is scoped by both the note id
// and the subject id. A reader never observes new scalars with old tags or
// vice versa.
// Returns store.ErrNotFound if no note matches the (subjectID, noteID) pair.
func (s *Store) UpdateNote(ctx context.Context, subjectID, noteID string, u domain.NoteUpdate) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	sets := make([]string, 0, 3)
	args := make([]any, 0, 5)

	if u.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *u.Title)
	}
	if u.Content != nil {
		sets = append(sets, "content = ?")
		args = append(args, *u.Content)
	}
	// Every mutation bumps the timestamp, even a tags-only update.
	sets = append(sets, "updated_at = ?")
	args = append(args, formatTime(s.now()))

	args = append(args, noteID, subjectID)

	res, err := tx.ExecContext(ctx,
		`UPDATE notes SET `+strings.Join(sets, ", ")+` WHERE id = ? AND subject_id = ?`,
		args...)
	if err != nil {
		return fmt.Errorf("update note: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return store.ErrNotFound
	}

	if u.Tags != nil {
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM note_tags WHERE note_id = ?`, noteID); err != nil {
			return fmt.Errorf("clear note_tags: %w", err)
		}
		if err := insertTags(ctx, tx, noteID, *u.Tags); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// DeleteNote removes a note, scoped by both ids. Tag associations are
// removed by the cascade constraint.
// Returns store.ErrNotFound if no note matches the (subjectID, noteID) pair.
func (s *Store) DeleteNote(ctx context.Context, subjectID, noteID string) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM notes WHERE id = ? AND subject_id = ?`, noteID, subjectID)
	if err != nil {
		return fmt.Errorf("delete note: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	return nil
}

// ListNotesBySubject returns every note owned by the subject, each enriched
// with its tag set.
func (s *Store) ListNotesBySubject(ctx context.Context, subjectID string) ([]*domain.Note, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+noteColumns+` FROM notes n WHERE n.subject_id = ?`, subjectID)
	if err != nil {
		return nil, fmt.Errorf("query notes: %w", err)
	}
	defer rows.Close()

	var notes []*domain.Note
	for rows.Next() {
		n, err := s.scanNote(rows)
		if err != nil {
			return nil, fmt.Errorf("scan note: %w", err)
		}
		notes = append(notes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}

	for _, n := range notes {
		n.Tags, err = s.GetTagsForNote(ctx, n.ID)
		if err != nil {
			return nil, err
		}
	}

	if notes == nil {
		notes = []*domain.Note{}
	}

	return notes, nil
}

// ListAllNotes returns every note joined to its owning subject, most
// recently updated first.
func (s *Store) ListAllNotes(ctx context.Context) ([]*domain.NoteView, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+noteViewColumns+`
		FROM notes n
		JOIN subjects s ON n.subject_id = s.id
		ORDER BY n.updated_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("query notes: %w", err)
	}
	defer rows.Close()

	return s.collectNoteViews(ctx, rows)
}

// GetNote returns a single note joined to its owning subject.
// Returns store.ErrNotFound if the note does not exist.
func (s *Store) GetNote(ctx context.Context, noteID string) (*domain.NoteView, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+noteViewColumns+`
		FROM notes n
		JOIN subjects s ON n.subject_id = s.id
		WHERE n.id = ?`, noteID)

	v, err := s.scanNoteView(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan note: %w", err)
	}

	v.Tags, err = s.GetTagsForNote(ctx, noteID)
	if err != nil {
		return nil, err
	}
	return v, nil
}

// SearchNotes returns notes whose title, content, or any tag name contains
// the query, case-insensitively, most recently updated first. An empty or
// whitespace-only query short-circuits to an empty result without touching
// the database.
func (s *Store) SearchNotes(ctx context.Context, query string) ([]*domain.NoteView, error) {
	if strings.TrimSpace(query) == "" {
		return []*domain.NoteView{}, nil
	}

	term := "%" + strings.ToLower(query) + "%"

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+noteViewColumns+`
		FROM notes n
		JOIN subjects s ON n.subject_id = s.id
		WHERE
			LOWER(n.title) LIKE ? OR
			LOWER(n.content) LIKE ? OR
			n.id IN (
				SELECT note_id FROM note_tags
				WHERE LOWER(tag_name) LIKE ?
			)
		ORDER BY n.updated_at DESC`,
		term, term, term)
	if err != nil {
		return nil, fmt.Errorf("search notes: %w", err)
	}
	defer rows.Close()

	return s.collectNoteViews(ctx, rows)
}

// collectNoteViews drains rows into note views and enriches each with its
// tag set. Tag fetches run after the result set is closed to avoid nested
// queries on one connection.
func (s *Store) collectNoteViews(ctx context.Context, rows *sql.Rows) ([]*domain.NoteView, error) {
	var views []*domain.NoteView
	for rows.Next() {
		v, err := s.scanNoteView(rows)
		if err != nil {
			return nil, fmt.Errorf("scan note: %w", err)
		}
		views = append(views, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}
	rows.Close()

	for _, v := range views {
		tags, err := s.GetTagsForNote(ctx, v.ID)
		if err != nil {
			return nil, err
		}
		v.Tags = tags
	}

	if views == nil {
		views = []*domain.NoteView{}
	}

	return views, nil
}

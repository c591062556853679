package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/inkwellapp/inkwell-server/internal/domain"
	"github.com/inkwellapp/inkwell-server/internal/store"
)

// subjectColumns is the ordered list of columns selected in subject queries.
// Must match the scan order in scanSubject.
const subjectColumns = `id, name, color, icon`

// scanSubject scans a sql.Row (or sql.Rows via its Scan method) into a domain.Subject.
func scanSubject(scanner interface{ Scan(dest ...any) error }) (*domain.Subject, error) {
	var sub domain.Subject
	var icon sql.NullString

	err := scanner.Scan(
		&sub.ID,
		&sub.Name,
		&sub.Color,
		&icon,
	)
	if err != nil {
		return nil, err
	}

	sub.Icon = icon.String
	return &sub, nil
}

// ListSubjects returns every subject, ordered by name for stable listings.
func (s *Store) ListSubjects(ctx context.Context) ([]*domain.Subject, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+subjectColumns+` FROM subjects ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("query subjects: %w", err)
	}
	defer rows.Close()

	var subjects []*domain.Subject
	for rows.Next() {
		sub, err := scanSubject(rows)
		if err != nil {
			return nil, fmt.Errorf("scan subject: %w", err)
		}
		subjects = append(subjects, sub)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}

	if subjects == nil {
		subjects = []*domain.Subject{}
	}

	return subjects, nil
}

// CreateSubject inserts a new subject. The id is caller-supplied.
// Returns store.ErrAlreadyExists on a duplicate id.
func (s *Store) CreateSubject(ctx context.Context, sub *domain.Subject) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO subjects (id, name, color, icon)
		VALUES (?, ?, ?, ?)`,
		sub.ID,
		sub.Name,
		sub.Color,
		nullString(sub.Icon),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrAlreadyExists
		}
		return fmt.Errorf("insert subject: %w", err)
	}
	return nil
}

// UpdateSubject applies a partial update. Only non-nil fields appear in the
// UPDATE statement; the column list is enumerated explicitly rather than
// derived from caller-side field names.
// Returns store.ErrNotFound if no subject matches the id.
func (s *Store) UpdateSubject(ctx context.Context, id string, u domain.SubjectUpdate) error {
	if u.IsZero() {
		return nil
	}

	sets := make([]string, 0, 3)
	args := make([]any, 0, 4)

	if u.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *u.Name)
	}
	if u.Color != nil {
		sets = append(sets, "color = ?")
		args = append(args, *u.Color)
	}
	if u.Icon != nil {
		sets = append(sets, "icon = ?")
		args = append(args, nullString(*u.Icon))
	}
	args = append(args, id)

	res, err := s.db.ExecContext(ctx,
		`UPDATE subjects SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
	if err != nil {
		return fmt.Errorf("update subject: %w", err)
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

// DeleteSubject removes a subject. Dependent notes and their tag
// associations are removed by the ON DELETE CASCADE constraints.
// Returns store.ErrNotFound if no subject matches the id.
func (s *Store) DeleteSubject(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM subjects WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete subject: %w", err)
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

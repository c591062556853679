package sqlite

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/inkwellapp/inkwell-server/internal/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "test.db")
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	s, err := Open(dbPath, logger)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// makeTestSubject inserts a subject with sensible defaults.
func makeTestSubject(t *testing.T, s *Store, id, name string) *domain.Subject {
	t.Helper()
	sub := &domain.Subject{ID: id, Name: name, Color: "#4f46e5", Icon: "book"}
	if err := s.CreateSubject(context.Background(), sub); err != nil {
		t.Fatalf("CreateSubject(%s): %v", id, err)
	}
	return sub
}

// makeTestNote inserts a note with sensible defaults.
func makeTestNote(t *testing.T, s *Store, id, subjectID, title string, tags ...string) *domain.Note {
	t.Helper()
	now := time.Now().UTC()
	n := &domain.Note{
		ID:        id,
		SubjectID: subjectID,
		Title:     title,
		Content:   "# " + title + "\n\nsome markdown body",
		CreatedAt: now,
		UpdatedAt: now,
		Tags:      tags,
	}
	if err := s.CreateNote(context.Background(), n); err != nil {
		t.Fatalf("CreateNote(%s): %v", id, err)
	}
	return n
}

func TestOpen(t *testing.T) {
	s := newTestStore(t)

	// Verify WAL mode is set.
	var journalMode string
	err := s.db.QueryRow("PRAGMA journal_mode").Scan(&journalMode)
	if err != nil {
		t.Fatalf("query journal_mode: %v", err)
	}
	if journalMode != "wal" {
		t.Errorf("expected wal, got %s", journalMode)
	}

	// Verify foreign keys are enabled.
	var fk int
	err = s.db.QueryRow("PRAGMA foreign_keys").Scan(&fk)
	if err != nil {
		t.Fatalf("query foreign_keys: %v", err)
	}
	if fk != 1 {
		t.Errorf("expected foreign_keys=1, got %d", fk)
	}

	// Verify tables exist.
	tables := []string{"subjects", "notes", "tags", "note_tags"}
	for _, table := range tables {
		var name string
		err := s.db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		if err != nil {
			t.Errorf("table %s not found: %v", table, err)
		}
	}
}

func TestOpenClose(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "test.db")
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	s, err := Open(dbPath, logger)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}

	if err := s.Close(); err != nil {
		t.Fatalf("close store: %v", err)
	}

	// Re-open should work (schema provisioning is idempotent).
	s2, err := Open(dbPath, logger)
	if err != nil {
		t.Fatalf("re-open store: %v", err)
	}
	if err := s2.Close(); err != nil {
		t.Fatalf("close re-opened store: %v", err)
	}
}

func TestTimestampRepair(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	fixed := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	makeTestSubject(t, s, "sub-ts", "Physics")

	// Insert a note row with a corrupt created_at and an empty updated_at,
	// bypassing CreateNote.
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO notes (id, subject_id, title, content, created_at, updated_at)
		VALUES ('note-bad', 'sub-ts', 'Broken dates', 'body', 'not-a-date', '')`)
	if err != nil {
		t.Fatalf("insert corrupt note: %v", err)
	}

	got, err := s.GetNote(ctx, "note-bad")
	if err != nil {
		t.Fatalf("GetNote: %v", err)
	}

	// Both fields should be repaired to the injected current time, not an error.
	if !got.CreatedAt.Equal(fixed) {
		t.Errorf("CreatedAt: got %v, want repaired %v", got.CreatedAt, fixed)
	}
	if !got.UpdatedAt.Equal(fixed) {
		t.Errorf("UpdatedAt: got %v, want repaired %v", got.UpdatedAt, fixed)
	}
}

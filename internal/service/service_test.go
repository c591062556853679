package service

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/inkwellapp/inkwell-server/internal/store/sqlite"
	"github.com/inkwellapp/inkwell-server/internal/validation"
)

// setupTestServices creates subject and note services backed by a temp
// database.
func setupTestServices(t *testing.T) (*SubjectService, *NoteService) {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	testStore, err := sqlite.Open(dbPath, logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = testStore.Close() })

	validator := validation.New()
	subjects := NewSubjectService(testStore, validator, logger)
	notes := NewNoteService(testStore, validator, logger)
	return subjects, notes
}

// createTestSubject creates a subject through the service and returns it.
func createTestSubject(t *testing.T, subjects *SubjectService, name string) string {
	t.Helper()

	subject, err := subjects.Create(context.Background(), CreateSubjectRequest{
		Name:  name,
		Color: "#4f46e5",
		Icon:  "book",
	})
	require.NoError(t, err)
	return subject.ID
}

// Package store defines the persistence boundary for subjects, notes, and tags.
package store

import (
	"context"

	"github.com/inkwellapp/inkwell-server/internal/domain"
)

// Store is the persistence interface consumed by the service layer.
// Implementations must enforce referential integrity (a note always belongs
// to an existing subject, deletes cascade) and keep tag associations unique
// per (note, tag) pair.
type Store interface {
	// Subjects.
	ListSubjects(ctx context.Context) ([]*domain.Subject, error)
	CreateSubject(ctx context.Context, subject *domain.Subject) error
	UpdateSubject(ctx context.Context, id string, u domain.SubjectUpdate) error
	DeleteSubject(ctx context.Context, id string) error

	// Notes. Update and delete are scoped by both the note id and the owning
	// subject id to defend against cross-subject id collisions.
	CreateNote(ctx context.Context, note *domain.Note) error
	UpdateNote(ctx context.Context, subjectID, noteID string, u domain.NoteUpdate) error
	DeleteNote(ctx context.Context, subjectID, noteID string) error

	// Tag associations. AddTagsToNote is idempotent: pairs that already
	// exist are ignored, never an error.
	AddTagsToNote(ctx context.Context, noteID string, tags []string) error
	GetTagsForNote(ctx context.Context, noteID string) ([]string, error)

	// Reads. NoteView results carry the owning subject's display fields,
	// joined at read time so they never go stale.
	ListNotesBySubject(ctx context.Context, subjectID string) ([]*domain.Note, error)
	ListAllNotes(ctx context.Context) ([]*domain.NoteView, error)
	GetNote(ctx context.Context, noteID string) (*domain.NoteView, error)
	SearchNotes(ctx context.Context, query string) ([]*domain.NoteView, error)
}

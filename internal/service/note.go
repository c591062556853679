package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/inkwellapp/inkwell-server/internal/domain"
	domainerrors "github.com/inkwellapp/inkwell-server/internal/errors"
	"github.com/inkwellapp/inkwell-server/internal/id"
	"github.com/inkwellapp/inkwell-server/internal/markdown"
	"github.com/inkwellapp/inkwell-server/internal/store"
	"github.com/inkwellapp/inkwell-server/internal/validation"
	"github.com/inkwellapp/inkwell-server/internal/view"
)

// NoteService orchestrates note operations.
type NoteService struct {
	store     store.Store
	validator *validation.Validator
	logger    *slog.Logger
	now       func() time.Time
}

// NewNoteService creates a new note service.
func NewNoteService(store store.Store, validator *validation.Validator, logger *slog.Logger) *NoteService {
	return &NoteService{
		store:     store,
		validator: validator,
		logger:    logger,
		now:       time.Now,
	}
}

// CreateNoteRequest carries the fields for a new note.
type CreateNoteRequest struct {
	Title   string   `json:"title" validate:"required,min=1,max=300"`
	Content string   `json:"content"`
	Tags    []string `json:"tags" validate:"dive,min=1,max=60"`
}

// UpdateNoteRequest carries a partial note update. Nil fields are left
// untouched; a non-nil Tags replaces the whole tag set.
type UpdateNoteRequest struct {
	Title   *string   `json:"title,omitempty" validate:"omitempty,min=1,max=300"`
	Content *string   `json:"content,omitempty"`
	Tags    *[]string `json:"tags,omitempty" validate:"omitempty,dive,min=1,max=60"`
}

// ListOptions narrows and orders a subject's note listing.
type ListOptions struct {
	Search string
	Tags   []string
	Sort   view.Sort
}

// Create validates the request, mints an id, stamps both timestamps with the
// same instant, and persists the note with its tags.
func (s *NoteService) Create(ctx context.Context, subjectID string, req CreateNoteRequest) (*domain.Note, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	noteID, err := id.Generate("note")
	if err != nil {
		return nil, domainerrors.Internal("generate note id", err)
	}

	now := s.now().UTC()
	note := &domain.Note{
		ID:        noteID,
		SubjectID: subjectID,
		Title:     req.Title,
		Content:   req.Content,
		CreatedAt: now,
		UpdatedAt: now,
		Tags:      req.Tags,
	}
	if note.Tags == nil {
		note.Tags = []string{}
	}

	if err := s.store.CreateNote(ctx, note); err != nil {
		return nil, err
	}

	s.logger.Info("note created", "note_id", note.ID, "subject_id", subjectID, "tags", len(note.Tags))
	return note, nil
}

// Update applies a partial update to a note owned by the subject.
func (s *NoteService) Update(ctx context.Context, subjectID, noteID string, req UpdateNoteRequest) error {
	if err := s.validator.Validate(req); err != nil {
		return err
	}

	u := domain.NoteUpdate{
		Title:   req.Title,
		Content: req.Content,
		Tags:    req.Tags,
	}
	if err := s.store.UpdateNote(ctx, subjectID, noteID, u); err != nil {
		return err
	}

	s.logger.Info("note updated", "note_id", noteID, "subject_id", subjectID)
	return nil
}

// Delete removes a note owned by the subject.
func (s *NoteService) Delete(ctx context.Context, subjectID, noteID string) error {
	if err := s.store.DeleteNote(ctx, subjectID, noteID); err != nil {
		return err
	}

	s.logger.Info("note deleted", "note_id", noteID, "subject_id", subjectID)
	return nil
}

// ListBySubject returns a subject's notes, refined by the given options.
// Validation of the sort key happens at the API boundary; an unknown key
// here just preserves store order.
func (s *NoteService) ListBySubject(ctx context.Context, subjectID string, opts ListOptions) ([]*domain.Note, error) {
	notes, err := s.store.ListNotesBySubject(ctx, subjectID)
	if err != nil {
		return nil, err
	}

	return view.Refine(notes, view.Options{
		Search: opts.Search,
		Tags:   opts.Tags,
		Sort:   opts.Sort,
	}), nil
}

// ListAll returns every note with its owning subject's display fields, most
// recently updated first.
func (s *NoteService) ListAll(ctx context.Context) ([]*domain.NoteView, error) {
	return s.store.ListAllNotes(ctx)
}

// Get returns a single note with its owning subject's display fields.
func (s *NoteService) Get(ctx context.Context, noteID string) (*domain.NoteView, error) {
	return s.store.GetNote(ctx, noteID)
}

// RenderHTML returns a note's content rendered to an HTML fragment.
func (s *NoteService) RenderHTML(ctx context.Context, noteID string) (string, error) {
	note, err := s.store.GetNote(ctx, noteID)
	if err != nil {
		return "", err
	}

	html, err := markdown.Render(note.Content)
	if err != nil {
		return "", domainerrors.Internal("render note content", err)
	}
	return html, nil
}

// AddTags idempotently associates tags with a note.
func (s *NoteService) AddTags(ctx context.Context, noteID string, tags []string) error {
	// Check existence first so a missing note surfaces as not found rather
	// than a constraint failure.
	if _, err := s.store.GetNote(ctx, noteID); err != nil {
		return err
	}

	if err := s.store.AddTagsToNote(ctx, noteID, tags); err != nil {
		return err
	}

	s.logger.Info("tags added", "note_id", noteID, "tags", len(tags))
	return nil
}

// Search returns notes matching the query in title, content, or tags, most
// recently updated first. An empty query returns an empty result.
func (s *NoteService) Search(ctx context.Context, query string) ([]*domain.NoteView, error) {
	return s.store.SearchNotes(ctx, query)
}

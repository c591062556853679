// Package service orchestrates subject and note operations over the store.
package service

import (
	"context"
	"log/slog"

	"github.com/inkwellapp/inkwell-server/internal/domain"
	domainerrors "github.com/inkwellapp/inkwell-server/internal/errors"
	"github.com/inkwellapp/inkwell-server/internal/id"
	"github.com/inkwellapp/inkwell-server/internal/store"
	"github.com/inkwellapp/inkwell-server/internal/validation"
)

// SubjectService orchestrates subject operations.
type SubjectService struct {
	store     store.Store
	validator *validation.Validator
	logger    *slog.Logger
}

// NewSubjectService creates a new subject service.
func NewSubjectService(store store.Store, validator *validation.Validator, logger *slog.Logger) *SubjectService {
	return &SubjectService{
		store:     store,
		validator: validator,
		logger:    logger,
	}
}

// CreateSubjectRequest carries the fields for a new subject.
type CreateSubjectRequest struct {
	Name  string `json:"name" validate:"required,min=1,max=120"`
	Color string `json:"color" validate:"required,hexcolor"`
	Icon  string `json:"icon" validate:"max=60"`
}

// UpdateSubjectRequest carries a partial subject update. Nil fields are left
// untouched.
type UpdateSubjectRequest struct {
	Name  *string `json:"name,omitempty" validate:"omitempty,min=1,max=120"`
	Color *string `json:"color,omitempty" validate:"omitempty,hexcolor"`
	Icon  *string `json:"icon,omitempty" validate:"omitempty,max=60"`
}

// List returns all subjects ordered by name.
func (s *SubjectService) List(ctx context.Context) ([]*domain.Subject, error) {
	return s.store.ListSubjects(ctx)
}

// Create validates the request, mints an id, and persists the subject.
func (s *SubjectService) Create(ctx context.Context, req CreateSubjectRequest) (*domain.Subject, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	subjectID, err := id.Generate("sub")
	if err != nil {
		return nil, domainerrors.Internal("generate subject id", err)
	}

	subject := &domain.Subject{
		ID:    subjectID,
		Name:  req.Name,
		Color: req.Color,
		Icon:  req.Icon,
	}

	if err := s.store.CreateSubject(ctx, subject); err != nil {
		return nil, err
	}

	s.logger.Info("subject created", "subject_id", subject.ID, "name", subject.Name)
	return subject, nil
}

// Update applies a partial update to a subject. A request with no fields set
// is accepted and changes nothing.
func (s *SubjectService) Update(ctx context.Context, subjectID string, req UpdateSubjectRequest) error {
	if err := s.validator.Validate(req); err != nil {
		return err
	}

	u := domain.SubjectUpdate{
		Name:  req.Name,
		Color: req.Color,
		Icon:  req.Icon,
	}
	if err := s.store.UpdateSubject(ctx, subjectID, u); err != nil {
		return err
	}

	s.logger.Info("subject updated", "subject_id", subjectID)
	return nil
}

// Delete removes a subject. Its notes and their tag associations go with it.
func (s *SubjectService) Delete(ctx context.Context, subjectID string) error {
	if err := s.store.DeleteSubject(ctx, subjectID); err != nil {
		return err
	}

	s.logger.Info("subject deleted", "subject_id", subjectID)
	return nil
}

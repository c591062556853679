package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/inkwellapp/inkwell-server/internal/domain"
	"github.com/inkwellapp/inkwell-server/internal/service"
)

func (s *Server) registerSubjectRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listSubjects",
		Method:      http.MethodGet,
		Path:        "/api/v1/subjects",
		Summary:     "List subjects",
		Description: "Returns all subjects ordered by name",
		Tags:        []string{"Subjects"},
	}, s.handleListSubjects)

	huma.Register(s.api, huma.Operation{
		OperationID: "createSubject",
		Method:      http.MethodPost,
		Path:        "/api/v1/subjects",
		Summary:     "Create subject",
		Description: "Creates a new subject",
		Tags:        []string{"Subjects"},
	}, s.handleCreateSubject)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateSubject",
		Method:      http.MethodPatch,
		Path:        "/api/v1/subjects/{id}",
		Summary:     "Update subject",
		Description: "Applies a partial update to a subject",
		Tags:        []string{"Subjects"},
	}, s.handleUpdateSubject)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteSubject",
		Method:      http.MethodDelete,
		Path:        "/api/v1/subjects/{id}",
		Summary:     "Delete subject",
		Description: "Deletes a subject along with its notes",
		Tags:        []string{"Subjects"},
	}, s.handleDeleteSubject)
}

// === DTOs ===

// SubjectResponse contains subject data in API responses.
type SubjectResponse struct {
	ID    string `json:"id" doc:"Subject ID"`
	Name  string `json:"name" doc:"Subject name"`
	Color string `json:"color" doc:"Display color"`
	Icon  string `json:"icon,omitempty" doc:"Display icon"`
}

// ListSubjectsResponse contains a list of subjects.
type ListSubjectsResponse struct {
	Subjects []SubjectResponse `json:"subjects" doc:"List of subjects"`
}

// ListSubjectsOutput wraps the list subjects response for Huma.
type ListSubjectsOutput struct {
	Body ListSubjectsResponse
}

// CreateSubjectRequest is the request body for creating a subject.
type CreateSubjectRequest struct {
	Name  string `json:"name" doc:"Subject name"`
	Color string `json:"color" doc:"Display color, hex like #4f46e5"`
	Icon  string `json:"icon,omitempty" doc:"Display icon"`
}

// CreateSubjectInput wraps the create subject request for Huma.
type CreateSubjectInput struct {
	Body CreateSubjectRequest
}

// SubjectOutput wraps the subject response for Huma.
type SubjectOutput struct {
	Body SubjectResponse
}

// UpdateSubjectRequest is the request body for updating a subject.
type UpdateSubjectRequest struct {
	Name  *string `json:"name,omitempty" doc:"Subject name"`
	Color *string `json:"color,omitempty" doc:"Display color"`
	Icon  *string `json:"icon,omitempty" doc:"Display icon"`
}

// UpdateSubjectInput wraps the update subject request for Huma.
type UpdateSubjectInput struct {
	ID   string `path:"id" doc:"Subject ID"`
	Body UpdateSubjectRequest
}

// DeleteSubjectInput contains parameters for deleting a subject.
type DeleteSubjectInput struct {
	ID string `path:"id" doc:"Subject ID"`
}

// MessageResponse contains a simple status message.
type MessageResponse struct {
	Message string `json:"message" doc:"Status message"`
}

// MessageOutput wraps the message response for Huma.
type MessageOutput struct {
	Body MessageResponse
}

func toSubjectResponse(subject *domain.Subject) SubjectResponse {
	return SubjectResponse{
		ID:    subject.ID,
		Name:  subject.Name,
		Color: subject.Color,
		Icon:  subject.Icon,
	}
}

// === Handlers ===

func (s *Server) handleListSubjects(ctx context.Context, _ *struct{}) (*ListSubjectsOutput, error) {
	subjects, err := s.services.Subject.List(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]SubjectResponse, len(subjects))
	for i, subject := range subjects {
		resp[i] = toSubjectResponse(subject)
	}

	return &ListSubjectsOutput{Body: ListSubjectsResponse{Subjects: resp}}, nil
}

func (s *Server) handleCreateSubject(ctx context.Context, input *CreateSubjectInput) (*SubjectOutput, error) {
	subject, err := s.services.Subject.Create(ctx, service.CreateSubjectRequest{
		Name:  input.Body.Name,
		Color: input.Body.Color,
		Icon:  input.Body.Icon,
	})
	if err != nil {
		return nil, err
	}

	return &SubjectOutput{Body: toSubjectResponse(subject)}, nil
}

func (s *Server) handleUpdateSubject(ctx context.Context, input *UpdateSubjectInput) (*MessageOutput, error) {
	err := s.services.Subject.Update(ctx, input.ID, service.UpdateSubjectRequest{
		Name:  input.Body.Name,
		Color: input.Body.Color,
		Icon:  input.Body.Icon,
	})
	if err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "Subject updated"}}, nil
}

func (s *Server) handleDeleteSubject(ctx context.Context, input *DeleteSubjectInput) (*MessageOutput, error) {
	if err := s.services.Subject.Delete(ctx, input.ID); err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "Subject deleted"}}, nil
}

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/inkwellapp/inkwell-server/internal/domain"
	domainerrors "github.com/inkwellapp/inkwell-server/internal/errors"
	"github.com/inkwellapp/inkwell-server/internal/service"
	"github.com/inkwellapp/inkwell-server/internal/view"
)

func (s *Server) registerNoteRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listSubjectNotes",
		Method:      http.MethodGet,
		Path:        "/api/v1/subjects/{id}/notes",
		Summary:     "List subject notes",
		Description: "Returns a subject's notes, optionally filtered and sorted",
		Tags:        []string{"Notes"},
	}, s.handleListSubjectNotes)

	huma.Register(s.api, huma.Operation{
		OperationID: "createNote",
		Method:      http.MethodPost,
		Path:        "/api/v1/subjects/{id}/notes",
		Summary:     "Create note",
		Description: "Creates a new note under a subject",
		Tags:        []string{"Notes"},
	}, s.handleCreateNote)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateNote",
		Method:      http.MethodPatch,
		Path:        "/api/v1/subjects/{id}/notes/{noteId}",
		Summary:     "Update note",
		Description: "Applies a partial update to a note",
		Tags:        []string{"Notes"},
	}, s.handleUpdateNote)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteNote",
		Method:      http.MethodDelete,
		Path:        "/api/v1/subjects/{id}/notes/{noteId}",
		Summary:     "Delete note",
		Description: "Deletes a note from a subject",
		Tags:        []string{"Notes"},
	}, s.handleDeleteNote)

	huma.Register(s.api, huma.Operation{
		OperationID: "listNotes",
		Method:      http.MethodGet,
		Path:        "/api/v1/notes",
		Summary:     "List all notes",
		Description: "Returns all notes with their subject info, most recently updated first",
		Tags:        []string{"Notes"},
	}, s.handleListNotes)

	huma.Register(s.api, huma.Operation{
		OperationID: "getNote",
		Method:      http.MethodGet,
		Path:        "/api/v1/notes/{id}",
		Summary:     "Get note",
		Description: "Returns a note by ID with its subject info",
		Tags:        []string{"Notes"},
	}, s.handleGetNote)

	huma.Register(s.api, huma.Operation{
		OperationID: "getNoteHTML",
		Method:      http.MethodGet,
		Path:        "/api/v1/notes/{id}/html",
		Summary:     "Get note as HTML",
		Description: "Returns a note's content rendered from markdown to HTML",
		Tags:        []string{"Notes"},
	}, s.handleGetNoteHTML)

	huma.Register(s.api, huma.Operation{
		OperationID: "addNoteTags",
		Method:      http.MethodPost,
		Path:        "/api/v1/notes/{id}/tags",
		Summary:     "Add note tags",
		Description: "Idempotently adds tags to a note",
		Tags:        []string{"Notes"},
	}, s.handleAddNoteTags)
}

// === DTOs ===

// NoteResponse contains note data in API responses.
type NoteResponse struct {
	ID        string    `json:"id" doc:"Note ID"`
	SubjectID string    `json:"subjectId" doc:"Owning subject ID"`
	Title     string    `json:"title" doc:"Note title"`
	Content   string    `json:"content" doc:"Markdown content"`
	CreatedAt time.Time `json:"createdAt" doc:"Creation time"`
	UpdatedAt time.Time `json:"updatedAt" doc:"Last update time"`
	Tags      []string  `json:"tags" doc:"Tag names"`
}

// NoteViewResponse extends NoteResponse with the owning subject's display fields.
type NoteViewResponse struct {
	NoteResponse
	SubjectName  string `json:"subjectName" doc:"Owning subject name"`
	SubjectColor string `json:"subjectColor" doc:"Owning subject color"`
}

// ListSubjectNotesInput contains parameters for listing a subject's notes.
type ListSubjectNotesInput struct {
	ID     string   `path:"id" doc:"Subject ID"`
	Search string   `query:"q" doc:"Keep notes whose title or content contains this text"`
	Tags   []string `query:"tags" doc:"Keep notes carrying every listed tag"`
	Sort   string   `query:"sort" doc:"Ordering: newest, oldest, title-asc, or title-desc"`
}

// ListNotesResponse contains a list of notes.
type ListNotesResponse struct {
	Notes []NoteResponse `json:"notes" doc:"List of notes"`
}

// ListNotesOutput wraps the list notes response for Huma.
type ListNotesOutput struct {
	Body ListNotesResponse
}

// ListNoteViewsResponse contains a list of notes with subject info.
type ListNoteViewsResponse struct {
	Notes []NoteViewResponse `json:"notes" doc:"List of notes with subject info"`
}

// ListNoteViewsOutput wraps the list note views response for Huma.
type ListNoteViewsOutput struct {
	Body ListNoteViewsResponse
}

// CreateNoteRequest is the request body for creating a note.
type CreateNoteRequest struct {
	Title   string   `json:"title" doc:"Note title"`
	Content string   `json:"content,omitempty" doc:"Markdown content"`
	Tags    []string `json:"tags,omitempty" doc:"Tag names"`
}

// CreateNoteInput wraps the create note request for Huma.
type CreateNoteInput struct {
	ID   string `path:"id" doc:"Subject ID"`
	Body CreateNoteRequest
}

// NoteOutput wraps the note response for Huma.
type NoteOutput struct {
	Body NoteResponse
}

// NoteViewOutput wraps the note view response for Huma.
type NoteViewOutput struct {
	Body NoteViewResponse
}

// UpdateNoteRequest is the request body for updating a note.
type UpdateNoteRequest struct {
	Title   *string   `json:"title,omitempty" doc:"Note title"`
	Content *string   `json:"content,omitempty" doc:"Markdown content"`
	Tags    *[]string `json:"tags,omitempty" doc:"Replacement tag set"`
}

// UpdateNoteInput wraps the update note request for Huma.
type UpdateNoteInput struct {
	ID     string `path:"id" doc:"Subject ID"`
	NoteID string `path:"noteId" doc:"Note ID"`
	Body   UpdateNoteRequest
}

// DeleteNoteInput contains parameters for deleting a note.
type DeleteNoteInput struct {
	ID     string `path:"id" doc:"Subject ID"`
	NoteID string `path:"noteId" doc:"Note ID"`
}

// GetNoteInput contains parameters for getting a note.
type GetNoteInput struct {
	ID string `path:"id" doc:"Note ID"`
}

// NoteHTMLResponse contains a note's rendered content.
type NoteHTMLResponse struct {
	HTML string `json:"html" doc:"Rendered HTML fragment"`
}

// NoteHTMLOutput wraps the note HTML response for Huma.
type NoteHTMLOutput struct {
	Body NoteHTMLResponse
}

// AddNoteTagsRequest is the request body for adding tags to a note.
type AddNoteTagsRequest struct {
	Tags []string `json:"tags" doc:"Tag names to add"`
}

// AddNoteTagsInput wraps the add note tags request for Huma.
type AddNoteTagsInput struct {
	ID   string `path:"id" doc:"Note ID"`
	Body AddNoteTagsRequest
}

// TagsResponse contains a note's tag names.
type TagsResponse struct {
	Tags []string `json:"tags" doc:"Tag names"`
}

// TagsOutput wraps the tags response for Huma.
type TagsOutput struct {
	Body TagsResponse
}

func toNoteResponse(n *domain.Note) NoteResponse {
	return NoteResponse{
		ID:        n.ID,
		SubjectID: n.SubjectID,
		Title:     n.Title,
		Content:   n.Content,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
		Tags:      n.Tags,
	}
}

func toNoteViewResponse(v *domain.NoteView) NoteViewResponse {
	return NoteViewResponse{
		NoteResponse: toNoteResponse(&v.Note),
		SubjectName:  v.SubjectName,
		SubjectColor: v.SubjectColor,
	}
}

// === Handlers ===

func (s *Server) handleListSubjectNotes(ctx context.Context, input *ListSubjectNotesInput) (*ListNotesOutput, error) {
	sort := view.Sort(input.Sort)
	if input.Sort != "" && !view.ValidSort(sort) {
		return nil, domainerrors.Validationf("unknown sort %q", input.Sort)
	}

	notes, err := s.services.Note.ListBySubject(ctx, input.ID, service.ListOptions{
		Search: input.Search,
		Tags:   input.Tags,
		Sort:   sort,
	})
	if err != nil {
		return nil, err
	}

	resp := make([]NoteResponse, len(notes))
	for i, n := range notes {
		resp[i] = toNoteResponse(n)
	}

	return &ListNotesOutput{Body: ListNotesResponse{Notes: resp}}, nil
}

func (s *Server) handleCreateNote(ctx context.Context, input *CreateNoteInput) (*NoteOutput, error) {
	note, err := s.services.Note.Create(ctx, input.ID, service.CreateNoteRequest{
		Title:   input.Body.Title,
		Content: input.Body.Content,
		Tags:    input.Body.Tags,
	})
	if err != nil {
		return nil, err
	}

	return &NoteOutput{Body: toNoteResponse(note)}, nil
}

func (s *Server) handleUpdateNote(ctx context.Context, input *UpdateNoteInput) (*MessageOutput, error) {
	err := s.services.Note.Update(ctx, input.ID, input.NoteID, service.UpdateNoteRequest{
		Title:   input.Body.Title,
		Content: input.Body.Content,
		Tags:    input.Body.Tags,
	})
	if err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "Note updated"}}, nil
}

func (s *Server) handleDeleteNote(ctx context.Context, input *DeleteNoteInput) (*MessageOutput, error) {
	if err := s.services.Note.Delete(ctx, input.ID, input.NoteID); err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "Note deleted"}}, nil
}

func (s *Server) handleListNotes(ctx context.Context, _ *struct{}) (*ListNoteViewsOutput, error) {
	views, err := s.services.Note.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]NoteViewResponse, len(views))
	for i, v := range views {
		resp[i] = toNoteViewResponse(v)
	}

	return &ListNoteViewsOutput{Body: ListNoteViewsResponse{Notes: resp}}, nil
}

func (s *Server) handleGetNote(ctx context.Context, input *GetNoteInput) (*NoteViewOutput, error) {
	v, err := s.services.Note.Get(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	return &NoteViewOutput{Body: toNoteViewResponse(v)}, nil
}

func (s *Server) handleGetNoteHTML(ctx context.Context, input *GetNoteInput) (*NoteHTMLOutput, error) {
	html, err := s.services.Note.RenderHTML(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	return &NoteHTMLOutput{Body: NoteHTMLResponse{HTML: html}}, nil
}

func (s *Server) handleAddNoteTags(ctx context.Context, input *AddNoteTagsInput) (*TagsOutput, error) {
	if err := s.services.Note.AddTags(ctx, input.ID, input.Body.Tags); err != nil {
		return nil, err
	}

	tags, err := s.store.GetTagsForNote(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	return &TagsOutput{Body: TagsResponse{Tags: tags}}, nil
}

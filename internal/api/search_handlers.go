package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (s *Server) registerSearchRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "searchNotes",
		Method:      http.MethodGet,
		Path:        "/api/v1/search",
		Summary:     "Search notes",
		Description: "Returns notes matching the query in title, content, or tags",
		Tags:        []string{"Search"},
	}, s.handleSearchNotes)
}

// SearchNotesInput contains parameters for searching notes.
type SearchNotesInput struct {
	Query string `query:"q" doc:"Search text; empty returns no results"`
}

func (s *Server) handleSearchNotes(ctx context.Context, input *SearchNotesInput) (*ListNoteViewsOutput, error) {
	views, err := s.services.Note.Search(ctx, input.Query)
	if err != nil {
		return nil, err
	}

	resp := make([]NoteViewResponse, len(views))
	for i, v := range views {
		resp[i] = toNoteViewResponse(v)
	}

	return &ListNoteViewsOutput{Body: ListNoteViewsResponse{Notes: resp}}, nil
}

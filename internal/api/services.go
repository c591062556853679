package api

import (
	"github.com/inkwellapp/inkwell-server/internal/service"
)

// Services groups the business logic services used by the API server.
// This reduces the parameter count for NewServer and improves testability.
type Services struct {
	Subject *service.SubjectService
	Note    *service.NoteService
}

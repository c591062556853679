package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwellapp/inkwell-server/internal/service"
	"github.com/inkwellapp/inkwell-server/internal/store/sqlite"
	"github.com/inkwellapp/inkwell-server/internal/validation"
)

// testEnvelope mirrors the response envelope for decoding in tests.
type testEnvelope[T any] struct {
	Version int    `json:"v"`
	Success bool   `json:"success"`
	Data    T      `json:"data"`
	Error   string `json:"error"`
}

// testErrorEnvelope mirrors the structured error envelope.
type testErrorEnvelope struct {
	Version int               `json:"v"`
	Success bool              `json:"success"`
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details"`
}

// testServer wraps the API server for handler testing.
type testServer struct {
	*Server
	api humatest.TestAPI
}

// setupTestServer creates a test server backed by a temp database.
func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	st, err := sqlite.Open(dbPath, logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	validator := validation.New()
	services := &Services{
		Subject: service.NewSubjectService(st, validator, logger),
		Note:    service.NewNoteService(st, validator, logger),
	}

	s := NewServer(st, services, []string{"*"}, logger)

	return &testServer{
		Server: s,
		api:    humatest.Wrap(t, s.api),
	}
}

// createSubject creates a subject through the API and returns its ID.
func (ts *testServer) createSubject(t *testing.T, name string) string {
	t.Helper()

	resp := ts.api.Post("/api/v1/subjects", map[string]any{
		"name":  name,
		"color": "#4f46e5",
		"icon":  "book",
	})
	require.Equal(t, http.StatusOK, resp.Code, "create subject failed: %s", resp.Body.String())

	var envelope testEnvelope[SubjectResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	return envelope.Data.ID
}

// createNote creates a note through the API and returns its ID.
func (ts *testServer) createNote(t *testing.T, subjectID, title string, tags ...string) string {
	t.Helper()

	body := map[string]any{
		"title":   title,
		"content": "# " + title + "\n\nsome markdown body",
	}
	if len(tags) > 0 {
		body["tags"] = tags
	}

	resp := ts.api.Post("/api/v1/subjects/"+subjectID+"/notes", body)
	require.Equal(t, http.StatusOK, resp.Code, "create note failed: %s", resp.Body.String())

	var envelope testEnvelope[NoteResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	return envelope.Data.ID
}

func TestHealthCheck(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/health")
	assert.Equal(t, http.StatusOK, resp.Code)

	var envelope testEnvelope[HealthResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))

	assert.True(t, envelope.Success)
	assert.Equal(t, "healthy", envelope.Data.Status)
	assert.Equal(t, "healthy", envelope.Data.Components["database"].Status)
}

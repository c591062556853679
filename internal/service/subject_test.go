package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/inkwellapp/inkwell-server/internal/errors"
	"github.com/inkwellapp/inkwell-server/internal/store"
)

func TestSubjectService_Create(t *testing.T) {
	subjects, _ := setupTestServices(t)
	ctx := context.Background()

	subject, err := subjects.Create(ctx, CreateSubjectRequest{
		Name:  "Calculus",
		Color: "#4f46e5",
		Icon:  "book",
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(subject.ID, "sub-"), "id should be prefixed: %s", subject.ID)
	assert.Equal(t, "Calculus", subject.Name)
	assert.Equal(t, "#4f46e5", subject.Color)
	assert.Equal(t, "book", subject.Icon)
}

func TestSubjectService_Create_Validation(t *testing.T) {
	subjects, _ := setupTestServices(t)
	ctx := context.Background()

	tests := []struct {
		name string
		req  CreateSubjectRequest
	}{
		{"missing name", CreateSubjectRequest{Color: "#4f46e5"}},
		{"missing color", CreateSubjectRequest{Name: "Calculus"}},
		{"bad color", CreateSubjectRequest{Name: "Calculus", Color: "blue"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := subjects.Create(ctx, tt.req)
			assert.True(t, domainerrors.Is(err, domainerrors.ErrValidation), "expected validation error, got %v", err)
		})
	}
}

func TestSubjectService_List(t *testing.T) {
	subjects, _ := setupTestServices(t)
	ctx := context.Background()

	createTestSubject(t, subjects, "Calculus")
	createTestSubject(t, subjects, "Art History")

	got, err := subjects.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)

	// Name order comes from the store.
	assert.Equal(t, "Art History", got[0].Name)
	assert.Equal(t, "Calculus", got[1].Name)
}

func TestSubjectService_Update(t *testing.T) {
	subjects, _ := setupTestServices(t)
	ctx := context.Background()

	subjectID := createTestSubject(t, subjects, "Biology")

	name := "Molecular Biology"
	err := subjects.Update(ctx, subjectID, UpdateSubjectRequest{Name: &name})
	require.NoError(t, err)

	got, err := subjects.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Molecular Biology", got[0].Name)
	assert.Equal(t, "#4f46e5", got[0].Color)
}

func TestSubjectService_Update_InvalidColor(t *testing.T) {
	subjects, _ := setupTestServices(t)
	ctx := context.Background()

	subjectID := createTestSubject(t, subjects, "Biology")

	color := "not-a-color"
	err := subjects.Update(ctx, subjectID, UpdateSubjectRequest{Color: &color})
	assert.True(t, domainerrors.Is(err, domainerrors.ErrValidation), "expected validation error, got %v", err)
}

func TestSubjectService_Update_NotFound(t *testing.T) {
	subjects, _ := setupTestServices(t)

	name := "Ghost"
	err := subjects.Update(context.Background(), "sub-missing", UpdateSubjectRequest{Name: &name})
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestSubjectService_Delete(t *testing.T) {
	subjects, notes := setupTestServices(t)
	ctx := context.Background()

	subjectID := createTestSubject(t, subjects, "History")
	note, err := notes.Create(ctx, subjectID, CreateNoteRequest{Title: "The Romans", Tags: []string{"ancient"}})
	require.NoError(t, err)

	require.NoError(t, subjects.Delete(ctx, subjectID))

	// Notes go with the subject.
	_, err = notes.Get(ctx, note.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestSubjectService_Delete_NotFound(t *testing.T) {
	subjects, _ := setupTestServices(t)

	err := subjects.Delete(context.Background(), "sub-missing")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

package domain

import "time"

// Note is a markdown document owned by exactly one subject.
// CreatedAt is set once at creation; UpdatedAt is bumped on every mutation.
type Note struct {
	ID        string    `json:"id"`
	SubjectID string    `json:"subject_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Tags      []string  `json:"tags"`
}

// NoteView is a note denormalized for display. SubjectName and SubjectColor
// are copied from the owning subject at read time via a join; they are never
// stored on the note, so a subject rename is reflected on the next read.
type NoteView struct {
	Note
	SubjectName  string `json:"subject_name"`
	SubjectColor string `json:"subject_color"`
}

// NoteUpdate is a partial update for a note. Nil fields are left untouched.
// When Tags is non-nil the full tag set is replaced, not diffed.
type NoteUpdate struct {
	Title   *string
	Content *string
	Tags    *[]string
}

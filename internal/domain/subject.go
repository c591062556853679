// Package domain contains the core data models for the Inkwell server.
package domain

// Subject is a folder that owns notes. Color and Icon are opaque display
// tokens chosen by the client; the server stores them verbatim.
type Subject struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
	Icon  string `json:"icon,omitempty"`
}

// SubjectUpdate is a partial update for a subject. Nil fields are left
// untouched; only non-nil fields appear in the generated UPDATE statement.
type SubjectUpdate struct {
	Name  *string
	Color *string
	Icon  *string
}

// IsZero reports whether the update carries no fields.
func (u SubjectUpdate) IsZero() bool {
	return u.Name == nil && u.Color == nil && u.Icon == nil
}

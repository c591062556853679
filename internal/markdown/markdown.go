// Package markdown renders note content to HTML.
package markdown

import (
	"strings"

	"github.com/yuin/goldmark"
)

var renderer = goldmark.New()

// Render converts CommonMark source to an HTML fragment. Raw HTML in the
// source is escaped rather than passed through.
func Render(source string) (string, error) {
	var b strings.Builder
	if err := renderer.Convert([]byte(source), &b); err != nil {
		return "", err
	}
	return b.String(), nil
}

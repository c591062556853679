package markdown

import (
	"strings"
	"testing"
)

func TestRender(t *testing.T) {
	tests := []struct {
		name     string
		source   string
		contains string
	}{
		{"heading", "# Derivatives", "<h1>Derivatives</h1>"},
		{"emphasis", "some *emphasis*", "<em>emphasis</em>"},
		{"code block", "```\nx := 1\n```", "<pre><code>"},
		{"list", "- one\n- two", "<li>one</li>"},
		{"link", "[site](https://example.com)", `<a href="https://example.com">site</a>`},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Render(tt.source)
			if err != nil {
				t.Fatalf("Render(%q): %v", tt.source, err)
			}
			if !strings.Contains(got, tt.contains) {
				t.Errorf("Render(%q) = %q, want to contain %q", tt.source, got, tt.contains)
			}
		})
	}
}

func TestRender_EscapesRawHTML(t *testing.T) {
	got, err := Render(`<script>alert("x")</script>`)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if strings.Contains(got, "<script>") {
		t.Errorf("raw HTML passed through: %q", got)
	}
}

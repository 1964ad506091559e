package normalize

import (
	"strings"
	"testing"
)

func TestText(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Mix the flour", "Mix the flour"},
		{"  Mix\n\tthe   flour ", "Mix the flour"},
		{"<p>Mix <b>well</b></p>", "Mix well"},
		{"Salt &amp; pepper", "Salt & pepper"},
		{"salt & pepper", "salt & pepper"},
		{"<p>One.</p><p>Two.</p>", "One. Two."},
		{"Line<br>break", "Line break"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := Text(tt.input); got != tt.want {
				t.Errorf("Text(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestMarkdownNormalizer(t *testing.T) {
	md, err := New().Normalize("<main><h1>Pasta</h1><p>Boil <strong>water</strong>.</p></main>")
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if !strings.Contains(md, "# Pasta") {
		t.Errorf("expected heading in %q", md)
	}
	if !strings.Contains(md, "**water**") {
		t.Errorf("expected bold text in %q", md)
	}
}

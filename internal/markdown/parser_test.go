package markdown

import (
	"strings"
	"testing"
)

func TestParseWithFrontmatter(t *testing.T) {
	p := NewParser()

	content, meta, err := p.ParseWithFrontmatter([]byte("---\nsubject: Run report\n---\n# Title\n\n- one\n"))
	if err != nil {
		t.Fatal(err)
	}
	if meta["subject"] != "Run report" {
		t.Errorf("subject = %v", meta["subject"])
	}
	html := string(content)
	if !strings.Contains(html, "<h1>Title</h1>") || !strings.Contains(html, "<li>one</li>") {
		t.Errorf("unexpected html %q", html)
	}
}

func TestParseWithoutFrontmatter(t *testing.T) {
	p := NewParser()

	_, meta, err := p.ParseWithFrontmatter([]byte("plain"))
	if err != nil {
		t.Fatal(err)
	}
	if len(meta) != 0 {
		t.Errorf("expected empty meta, got %v", meta)
	}
}

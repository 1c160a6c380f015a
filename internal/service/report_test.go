package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/templui/resumebook/internal/model"
)

func TestReportRenderSuccess(t *testing.T) {
	s := NewReportService("", "noreply@example.com", []string{"ops@example.com"}, "Resume Book", true)
	start := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	subject, text, html, err := s.Render(&RunResult{
		RunID:          "run-1",
		Forms:          2,
		OriginalCount:  2,
		ConvertedCount: 1,
		OriginalURL:    "https://example.com/original_resumes.zip",
		ConvertedURL:   "https://example.com/converted_resumes.zip",
		Diagnostics: []model.Diagnostic{
			{Kind: model.DiagDuplicateName, Message: "more than one entry with name", Subject: "Ada Lovelace"},
		},
		StartedAt:  start,
		FinishedAt: start.Add(3 * time.Second),
	})
	if err != nil {
		t.Fatal(err)
	}

	if subject != "Resume Book: resume run succeeded" {
		t.Errorf("subject = %q", subject)
	}
	if strings.HasPrefix(text, "---") {
		t.Error("text body still carries frontmatter")
	}
	for _, want := range []string{"run-1", "Original resumes: 2", "converted_resumes.zip", "duplicate_name", "Ada Lovelace", "3s"} {
		if !strings.Contains(text, want) {
			t.Errorf("text missing %q:\n%s", want, text)
		}
	}
	if !strings.Contains(html, `<a href="https://example.com/original_resumes.zip">`) {
		t.Errorf("html missing download link:\n%s", html)
	}
	if strings.Contains(html, "subject:") {
		t.Error("frontmatter leaked into html")
	}
}

func TestReportRenderFailure(t *testing.T) {
	s := NewReportService("", "noreply@example.com", nil, "Resume Book", true)

	subject, text, _, err := s.Render(&RunResult{
		RunID: "run-2",
		Err:   &IncompleteOptOutError{Emails: []string{"ghost@example.com"}},
	})
	if err != nil {
		t.Fatal(err)
	}

	if subject != "Resume Book: resume run failed" {
		t.Errorf("subject = %q", subject)
	}
	if !strings.Contains(text, "ghost@example.com") || !strings.Contains(text, "Nothing was archived") {
		t.Errorf("text missing error section:\n%s", text)
	}
	if strings.Contains(text, "## Downloads") {
		t.Error("failed run lists downloads")
	}
	if !strings.Contains(text, "None.") {
		t.Error("expected empty advisories section")
	}
}

func TestReportSendDevMode(t *testing.T) {
	s := NewReportService("re_test", "noreply@example.com", []string{"ops@example.com"}, "Resume Book", true)
	err := s.Send(context.Background(), &RunResult{RunID: "run-3"})
	if err != nil {
		t.Errorf("dev mode send failed: %v", err)
	}
}

func TestReportSendUnconfigured(t *testing.T) {
	s := NewReportService("", "noreply@example.com", []string{"ops@example.com"}, "Resume Book", false)
	err := s.Send(context.Background(), &RunResult{RunID: "run-4"})
	if err == nil {
		t.Error("expected error without API key")
	}
}

func TestStripFrontmatter(t *testing.T) {
	if got := stripFrontmatter("---\nsubject: x\n---\n# Body\n"); got != "# Body\n" {
		t.Errorf("stripFrontmatter = %q", got)
	}
	if got := stripFrontmatter("# No header\n"); got != "# No header\n" {
		t.Errorf("stripFrontmatter = %q", got)
	}
}

package service

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"strings"
	"text/template"
	"time"

	"github.com/resend/resend-go/v2"
	"github.com/templui/resumebook/internal/markdown"
)

//go:embed templates/report.md
var reportTemplateSource string

var reportTemplate = template.Must(template.New("report").Parse(reportTemplateSource))

// ReportService sends the operator a summary of each run.
type ReportService struct {
	client    *resend.Client
	parser    *markdown.Parser
	fromEmail string
	to        []string
	appName   string
	isDev     bool
}

func NewReportService(apiKey, fromEmail string, to []string, appName string, isDev bool) *ReportService {
	var client *resend.Client
	if apiKey != "" && !isDev {
		client = resend.NewClient(apiKey)
	}

	return &ReportService{
		client:    client,
		parser:    markdown.NewParser(),
		fromEmail: fromEmail,
		to:        to,
		appName:   appName,
		isDev:     isDev,
	}
}

type reportData struct {
	*RunResult
	AppName  string
	Status   string
	Duration time.Duration
	Error    string
}

// Render returns the report subject, its Markdown text and its HTML.
func (s *ReportService) Render(result *RunResult) (subject string, text string, html string, err error) {
	data := reportData{
		RunResult: result,
		AppName:   s.appName,
		Status:    "succeeded",
		Duration:  result.FinishedAt.Sub(result.StartedAt).Round(time.Millisecond),
	}
	if result.Err != nil {
		data.Status = "failed"
		data.Error = result.Err.Error()
	}

	var buf bytes.Buffer
	err = reportTemplate.Execute(&buf, data)
	if err != nil {
		return "", "", "", fmt.Errorf("failed to render report: %w", err)
	}

	content, meta, err := s.parser.ParseWithFrontmatter(buf.Bytes())
	if err != nil {
		return "", "", "", fmt.Errorf("failed to convert report: %w", err)
	}

	subject, _ = meta["subject"].(string)
	if subject == "" {
		subject = fmt.Sprintf("%s: resume run %s", s.appName, data.Status)
	}
	return subject, stripFrontmatter(buf.String()), string(content), nil
}

func (s *ReportService) Send(ctx context.Context, result *RunResult) error {
	subject, text, html, err := s.Render(result)
	if err != nil {
		return err
	}

	if s.isDev {
		slog.Info("report sent (dev mode)", "to", s.to, "subject", subject, "body", text)
		return nil
	}

	if s.client == nil {
		return fmt.Errorf("report service not configured (missing RESEND_API_KEY)")
	}

	params := &resend.SendEmailRequest{
		From:    s.fromEmail,
		To:      s.to,
		Subject: subject,
		Text:    text,
		Html:    html,
	}

	_, err = s.client.Emails.SendWithContext(ctx, params)
	if err == nil {
		slog.Info("report sent", "to", s.to, "run_id", result.RunID)
	}
	return err
}

// stripFrontmatter drops the leading "---" block from the plain-text body.
func stripFrontmatter(s string) string {
	rest, ok := strings.CutPrefix(s, "---\n")
	if !ok {
		return s
	}
	_, body, ok := strings.Cut(rest, "\n---\n")
	if !ok {
		return s
	}
	return body
}

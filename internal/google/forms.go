package google

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/templui/resumebook/internal/model"
	"google.golang.org/api/forms/v1"
)

var (
	ErrQuestionNotFound  = errors.New("question not found")
	ErrQuestionAmbiguous = errors.New("more than one matching question")
	ErrMissingAnswer     = errors.New("response is missing an answer")
)

// Forms adapts the Forms v1 API to service.FormSource.
type Forms struct {
	svc           *forms.Service
	fullNameTitle string
}

func NewForms(svc *forms.Service, fullNameTitle string) *Forms {
	return &Forms{
		svc:           svc,
		fullNameTitle: fullNameTitle,
	}
}

func (f *Forms) Form(ctx context.Context, id string) (*model.Form, error) {
	form, err := f.svc.Forms.Get(id).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get form %s: %w", id, err)
	}
	return toModelForm(form, f.fullNameTitle)
}

// Responses returns every response in submission order.
func (f *Forms) Responses(ctx context.Context, form *model.Form) ([]model.Response, error) {
	var raw []*forms.FormResponse
	err := f.svc.Forms.Responses.List(form.ID).Pages(ctx, func(page *forms.ListFormResponsesResponse) error {
		raw = append(raw, page.Responses...)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list responses: %w", err)
	}

	sort.SliceStable(raw, func(i, j int) bool {
		return submittedAt(raw[i]).Before(submittedAt(raw[j]))
	})

	out := make([]model.Response, 0, len(raw))
	for _, r := range raw {
		response, err := toModelResponse(r, form)
		if err != nil {
			return nil, err
		}
		out = append(out, response)
	}
	return out, nil
}

func toModelForm(form *forms.Form, fullNameTitle string) (*model.Form, error) {
	title := form.FormId
	if form.Info != nil && form.Info.Title != "" {
		title = form.Info.Title
	}

	fileItem, err := findQuestion(form.Items, isFileUpload, "")
	if err != nil {
		return nil, fmt.Errorf("form %q: file upload %w", title, err)
	}
	nameItem, err := findQuestion(form.Items, isText, fullNameTitle)
	if err != nil {
		return nil, fmt.Errorf("form %q: %q text %w", title, fullNameTitle, err)
	}

	accepting, unknown := false, true
	if form.PublishSettings != nil && form.PublishSettings.PublishState != nil {
		accepting = form.PublishSettings.PublishState.IsAcceptingResponses
		unknown = false
	}

	return &model.Form{
		ID:                 form.FormId,
		Title:              title,
		AcceptingResponses: accepting,
		AcceptingUnknown:   unknown,
		NameQuestionID:     nameItem.QuestionItem.Question.QuestionId,
		FileQuestionID:     fileItem.QuestionItem.Question.QuestionId,
	}, nil
}

// findQuestion returns the only item matching kind. When several match,
// title disambiguates; an empty title means ambiguity is an error.
func findQuestion(items []*forms.Item, kind func(*forms.Question) bool, title string) (*forms.Item, error) {
	var matches []*forms.Item
	for _, item := range items {
		if item.QuestionItem == nil || item.QuestionItem.Question == nil {
			continue
		}
		if kind(item.QuestionItem.Question) {
			matches = append(matches, item)
		}
	}

	switch {
	case len(matches) == 1:
		return matches[0], nil
	case len(matches) == 0:
		return nil, ErrQuestionNotFound
	case title == "":
		return nil, ErrQuestionAmbiguous
	}

	var found *forms.Item
	for _, item := range matches {
		if item.Title != title {
			continue
		}
		if found != nil {
			return nil, ErrQuestionAmbiguous
		}
		found = item
	}
	if found == nil {
		return nil, ErrQuestionNotFound
	}
	return found, nil
}

func isFileUpload(q *forms.Question) bool {
	return q.FileUploadQuestion != nil
}

func isText(q *forms.Question) bool {
	return q.TextQuestion != nil
}

func toModelResponse(r *forms.FormResponse, form *model.Form) (model.Response, error) {
	nameAnswer, ok := r.Answers[form.NameQuestionID]
	if !ok || nameAnswer.TextAnswers == nil || len(nameAnswer.TextAnswers.Answers) == 0 {
		return model.Response{}, fmt.Errorf("response %s: name: %w", r.ResponseId, ErrMissingAnswer)
	}
	fileAnswer, ok := r.Answers[form.FileQuestionID]
	if !ok || fileAnswer.FileUploadAnswers == nil || len(fileAnswer.FileUploadAnswers.Answers) == 0 {
		return model.Response{}, fmt.Errorf("response %s: file upload: %w", r.ResponseId, ErrMissingAnswer)
	}

	return model.Response{
		Email:    r.RespondentEmail,
		FullName: nameAnswer.TextAnswers.Answers[0].Value,
		FileID:   fileAnswer.FileUploadAnswers.Answers[0].FileId,
	}, nil
}

// submittedAt falls back to the zero time for unparsable stamps, which
// sorts them first without reordering them among themselves.
func submittedAt(r *forms.FormResponse) time.Time {
	t, err := time.Parse(time.RFC3339Nano, r.CreateTime)
	if err != nil {
		return time.Time{}
	}
	return t
}

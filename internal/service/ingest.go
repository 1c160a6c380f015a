package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/templui/resumebook/internal/model"
)

// FormSource yields questionnaires and their responses in submission order.
type FormSource interface {
	Form(ctx context.Context, id string) (*model.Form, error)
	Responses(ctx context.Context, form *model.Form) ([]model.Response, error)
}

// RunState is everything one run accumulates across forms. The pipeline
// owns it and hands it to each Ingest call.
type RunState struct {
	OptOut    *OptOutFilter
	Originals []*model.Asset
	Converted []*model.Asset

	// Duplicate detection. Names give false positives (people share names),
	// emails are expected to be unique.
	names  map[string]struct{}
	emails map[string]struct{}
}

func NewRunState(optOut *OptOutFilter) *RunState {
	return &RunState{
		OptOut: optOut,
		names:  make(map[string]struct{}),
		emails: make(map[string]struct{}),
	}
}

type Ingestor struct {
	forms      FormSource
	drive      Drive
	converter  *Converter
	normalizer *NameNormalizer
	diags      *Diagnostics
}

func NewIngestor(forms FormSource, drive Drive, converter *Converter, normalizer *NameNormalizer, diags *Diagnostics) *Ingestor {
	return &Ingestor{
		forms:      forms,
		drive:      drive,
		converter:  converter,
		normalizer: normalizer,
		diags:      diags,
	}
}

// Ingest extracts every resume from a form's responses into state.
func (i *Ingestor) Ingest(ctx context.Context, state *RunState, formID string) error {
	form, err := i.forms.Form(ctx, formID)
	if err != nil {
		return fmt.Errorf("failed to open form %s: %w", formID, err)
	}

	slog.Info("processing form", "form", form.Title, "form_id", form.ID)

	// At this point the form should be closed.
	switch {
	case form.AcceptingResponses:
		i.diags.Warn(model.DiagFormOpen, form.Title, "form is accepting responses")
	case form.AcceptingUnknown:
		i.diags.Warn(model.DiagFormStateUnknown, form.Title, "form does not report whether it is accepting responses")
	}

	responses, err := i.forms.Responses(ctx, form)
	if err != nil {
		return fmt.Errorf("failed to list responses for form %q: %w", form.Title, err)
	}

	for _, response := range responses {
		err = i.ingestResponse(ctx, state, response)
		if err != nil {
			return fmt.Errorf("form %q: %w", form.Title, err)
		}
	}

	return nil
}

func (i *Ingestor) ingestResponse(ctx context.Context, state *RunState, response model.Response) error {
	if state.OptOut.Evaluate(response.Email) {
		slog.Info("skipping opted-out respondent", "email", response.Email)
		return nil
	}

	fullName := i.normalizer.Normalize(response.FullName, response.Email)

	if _, ok := state.names[fullName]; ok {
		i.diags.Warn(model.DiagDuplicateName, fullName, "more than one entry with name")
	}
	state.names[fullName] = struct{}{}
	if _, ok := state.emails[response.Email]; ok {
		i.diags.Warn(model.DiagDuplicateEmail, response.Email, "more than one entry with email")
	}
	state.emails[response.Email] = struct{}{}

	file, err := i.drive.File(ctx, response.FileID)
	if err != nil {
		return fmt.Errorf("failed to resolve upload %s for %s: %w", response.FileID, response.Email, err)
	}

	orig, conv, err := i.converter.Convert(ctx, file)
	if err != nil {
		return err
	}

	RenameAssets(orig, conv, fullName)
	state.Originals = append(state.Originals, orig)
	if conv != nil {
		state.Converted = append(state.Converted, conv)
	}

	slog.Debug("collected resume", "name", orig.Name, "converted", conv != nil)
	return nil
}

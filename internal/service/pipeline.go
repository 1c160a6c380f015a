package service

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"path"
	"time"

	"github.com/google/uuid"
	"github.com/templui/resumebook/internal/archive"
	"github.com/templui/resumebook/internal/model"
	"github.com/templui/resumebook/internal/repository"
	"github.com/templui/resumebook/internal/storage"
)

const (
	OriginalArchiveName  = "original_resumes.zip"
	ConvertedArchiveName = "converted_resumes.zip"
)

// RunResult summarizes a run for the ledger and the operator report. It is
// returned even when the run fails.
type RunResult struct {
	RunID           string
	Forms           int
	OriginalCount   int
	ConvertedCount  int
	OriginalKey     string
	ConvertedKey    string // Empty when nothing was converted
	OriginalURL     string
	ConvertedURL    string
	OriginalSHA256  string
	ConvertedSHA256 string
	Diagnostics     []model.Diagnostic
	Err             error
	StartedAt       time.Time
	FinishedAt      time.Time
}

// Pipeline drives every form through the ingestor and archives the result.
type Pipeline struct {
	ingestor     *Ingestor
	store        storage.Storage
	runs         repository.RunRepository
	diags        *Diagnostics
	optOutEmails []string
	outputPrefix string
}

func NewPipeline(ingestor *Ingestor, store storage.Storage, runs repository.RunRepository, diags *Diagnostics, optOutEmails []string, outputPrefix string) *Pipeline {
	return &Pipeline{
		ingestor:     ingestor,
		store:        store,
		runs:         runs,
		diags:        diags,
		optOutEmails: optOutEmails,
		outputPrefix: outputPrefix,
	}
}

// Run processes formIDs in order. Any fatal error aborts the run before
// anything is archived.
func (p *Pipeline) Run(ctx context.Context, formIDs []string) (*RunResult, error) {
	result := &RunResult{
		RunID:     uuid.New().String(),
		Forms:     len(formIDs),
		StartedAt: time.Now(),
	}

	run := &model.Run{
		ID:        result.RunID,
		Status:    model.RunStatusRunning,
		FormCount: len(formIDs),
		StartedAt: result.StartedAt,
	}

	// Without a start row the run still goes ahead, it just isn't ledgered.
	recorded := true
	err := p.runs.Create(run)
	if err != nil {
		slog.Error("failed to record run start", "error", err, "run_id", run.ID)
		recorded = false
	}

	manifest, err := p.run(ctx, formIDs, result)
	result.Err = err
	result.Diagnostics = p.diags.Drain()
	result.FinishedAt = time.Now()

	if recorded {
		p.record(run, result, manifest)
	}
	return result, err
}

func (p *Pipeline) run(ctx context.Context, formIDs []string, result *RunResult) ([]*model.RunAsset, error) {
	state := NewRunState(NewOptOutFilter(p.optOutEmails))

	for _, formID := range formIDs {
		err := p.ingestor.Ingest(ctx, state, formID)
		if err != nil {
			return nil, err
		}
	}

	// Every opt-out must have matched someone, or the list is misconfigured.
	unprocessed := state.OptOut.Unconsumed()
	if len(unprocessed) > 0 {
		return nil, &IncompleteOptOutError{Emails: unprocessed}
	}

	if len(state.Originals) == 0 {
		return nil, ErrEmptyResultSet
	}

	// Build both containers before writing either.
	origZip, err := archive.Zip(OriginalArchiveName, state.Originals)
	if err != nil {
		return nil, err
	}
	var convZip *archive.Archive
	if len(state.Converted) > 0 {
		convZip, err = archive.Zip(ConvertedArchiveName, state.Converted)
		if err != nil {
			return nil, err
		}
	}

	slog.Info("archiving original files", "count", len(state.Originals))
	origKey := path.Join(p.outputPrefix, OriginalArchiveName)
	err = p.store.Save(ctx, origKey, bytes.NewReader(origZip.Data))
	if err != nil {
		return nil, fmt.Errorf("failed to save %s: %w", origKey, err)
	}

	result.OriginalCount = len(state.Originals)
	result.OriginalKey = origKey
	result.OriginalURL = p.store.URL(origKey)
	result.OriginalSHA256 = origZip.Checksum

	if convZip != nil {
		slog.Info("archiving converted files", "count", len(state.Converted))
		convKey := path.Join(p.outputPrefix, ConvertedArchiveName)
		err = p.store.Save(ctx, convKey, bytes.NewReader(convZip.Data))
		if err != nil {
			// Don't leave half a result behind
			delErr := p.store.Delete(ctx, origKey)
			if delErr != nil {
				slog.Error("failed to delete original archive during cleanup", "error", delErr, "path", origKey)
			}
			result.OriginalCount, result.OriginalKey, result.OriginalURL, result.OriginalSHA256 = 0, "", "", ""
			return nil, fmt.Errorf("failed to save %s: %w", convKey, err)
		}

		result.ConvertedCount = len(state.Converted)
		result.ConvertedKey = convKey
		result.ConvertedURL = p.store.URL(convKey)
		result.ConvertedSHA256 = convZip.Checksum
	}

	manifest := manifestFor(result.RunID, model.CollectionOriginal, state.Originals, origZip.Entries)
	if convZip != nil {
		manifest = append(manifest, manifestFor(result.RunID, model.CollectionConverted, state.Converted, convZip.Entries)...)
	}

	return manifest, nil
}

// record writes the outcome to the ledger. Ledger failures are logged, not
// returned: the archives are already the source of truth.
func (p *Pipeline) record(run *model.Run, result *RunResult, manifest []*model.RunAsset) {
	finished := result.FinishedAt
	run.FinishedAt = &finished
	run.OriginalCount = result.OriginalCount
	run.ConvertedCount = result.ConvertedCount
	run.WarningCount = len(result.Diagnostics)
	run.OriginalKey = result.OriginalKey
	run.ConvertedKey = result.ConvertedKey
	run.OriginalSHA256 = result.OriginalSHA256
	run.ConvertedSHA256 = result.ConvertedSHA256

	if result.Err != nil {
		run.Status = model.RunStatusFailed
		run.Error = result.Err.Error()
	} else {
		run.Status = model.RunStatusSucceeded
	}

	err := p.runs.Finish(run)
	if err != nil {
		slog.Error("failed to record run outcome", "error", err, "run_id", run.ID)
		return
	}

	if len(manifest) > 0 {
		err = p.runs.AddAssets(manifest)
		if err != nil {
			slog.Error("failed to record run manifest", "error", err, "run_id", run.ID)
		}
	}
}

// manifestFor pairs assets with the entry names they were written under,
// which differ from asset.Name when the archive had to disambiguate.
func manifestFor(runID, collection string, assets []*model.Asset, entries []string) []*model.RunAsset {
	out := make([]*model.RunAsset, 0, len(assets))
	for i, asset := range assets {
		out = append(out, &model.RunAsset{
			ID:         uuid.New().String(),
			RunID:      runID,
			Collection: collection,
			Name:       entries[i],
			MimeType:   asset.MimeType,
			Size:       asset.Size(),
		})
	}
	return out
}

package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/templui/resumebook/internal/model"
)

var (
	ErrRunNotFound = errors.New("run not found")
)

type RunRepository interface {
	Create(run *model.Run) error
	Finish(run *model.Run) error
	ByID(id string) (*model.Run, error)
	Recent(limit int) ([]*model.Run, error)
	AddAssets(assets []*model.RunAsset) error
	Assets(runID string) ([]*model.RunAsset, error)
}

type runRepository struct {
	db *sqlx.DB
}

func NewRunRepository(db *sqlx.DB) *runRepository {
	return &runRepository{db: db}
}

func (r *runRepository) Create(run *model.Run) error {
	query := `INSERT INTO runs (id, status, form_count, started_at)
	          VALUES ($1, $2, $3, $4)`

	_, err := r.db.Exec(query, run.ID, run.Status, run.FormCount, run.StartedAt)
	return err
}

func (r *runRepository) Finish(run *model.Run) error {
	query := `UPDATE runs SET status = $1, original_count = $2, converted_count = $3, warning_count = $4,
	          original_key = $5, converted_key = $6, original_sha256 = $7, converted_sha256 = $8,
	          error = $9, finished_at = $10
	          WHERE id = $11`

	res, err := r.db.Exec(query,
		run.Status,
		run.OriginalCount,
		run.ConvertedCount,
		run.WarningCount,
		run.OriginalKey,
		run.ConvertedKey,
		run.OriginalSHA256,
		run.ConvertedSHA256,
		run.Error,
		run.FinishedAt,
		run.ID,
	)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrRunNotFound
	}
	return nil
}

func (r *runRepository) ByID(id string) (*model.Run, error) {
	run := &model.Run{}
	query := `SELECT * FROM runs WHERE id = $1`

	err := r.db.Get(run, query, id)
	if err == sql.ErrNoRows {
		return nil, ErrRunNotFound
	}

	return run, err
}

func (r *runRepository) Recent(limit int) ([]*model.Run, error) {
	var runs []*model.Run
	query := `SELECT * FROM runs ORDER BY started_at DESC LIMIT $1`

	err := r.db.Select(&runs, query, limit)
	if err != nil {
		return nil, err
	}

	return runs, nil
}

// AddAssets writes a manifest in one transaction.
func (r *runRepository) AddAssets(assets []*model.RunAsset) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	query := `INSERT INTO run_assets (id, run_id, collection, name, mime_type, size)
	          VALUES ($1, $2, $3, $4, $5, $6)`
	for _, asset := range assets {
		_, err = tx.Exec(query, asset.ID, asset.RunID, asset.Collection, asset.Name, asset.MimeType, asset.Size)
		if err != nil {
			return fmt.Errorf("failed to insert asset %q: %w", asset.Name, err)
		}
	}

	return tx.Commit()
}

func (r *runRepository) Assets(runID string) ([]*model.RunAsset, error) {
	var assets []*model.RunAsset
	query := `SELECT * FROM run_assets WHERE run_id = $1 ORDER BY collection DESC, name`

	err := r.db.Select(&assets, query, runID)
	if err != nil {
		return nil, err
	}

	return assets, nil
}

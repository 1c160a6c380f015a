package model

import (
	"time"
)

const (
	RunStatusRunning   = "running"
	RunStatusSucceeded = "succeeded"
	RunStatusFailed    = "failed"
)

type Run struct {
	ID              string     `db:"id"`
	Status          string     `db:"status"`
	FormCount       int        `db:"form_count"`
	OriginalCount   int        `db:"original_count"`
	ConvertedCount  int        `db:"converted_count"`
	WarningCount    int        `db:"warning_count"`
	OriginalKey     string     `db:"original_key"`
	ConvertedKey    string     `db:"converted_key"` // Empty when nothing was converted
	OriginalSHA256  string     `db:"original_sha256"`
	ConvertedSHA256 string     `db:"converted_sha256"`
	Error           string     `db:"error"`
	StartedAt       time.Time  `db:"started_at"`
	FinishedAt      *time.Time `db:"finished_at"`
}

// RunAsset is one archived file in a successful run's manifest.
type RunAsset struct {
	ID         string `db:"id"`
	RunID      string `db:"run_id"`
	Collection string `db:"collection"` // "original" or "converted"
	Name       string `db:"name"`
	MimeType   string `db:"mime_type"`
	Size       int64  `db:"size"`
}

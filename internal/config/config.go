package config

import (
	"errors"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/templui/resumebook/internal/validation"
)

const (
	DestinationLocal = "local"
	DestinationS3    = "s3"
)

type Config struct {
	// Application
	AppName string
	AppEnv  string

	// Forms (questionnaires to collect, processed in this order)
	FormIDs       []string
	OptOutEmails  []string
	FullNameTitle string
	NameRulesFile string // Optional: YAML rewrite rules for submitter names

	// Google (Forms + Drive)
	GoogleCredentialsFile string
	GoogleSubject         string // Optional: user a service account impersonates
	DriveTmpFolderID      string // Folder for temporary conversion copies

	// Destination
	Destination  string // "local" or "s3"
	OutputDir    string // Used when Destination is local
	OutputPrefix string // Key prefix for archive objects

	// Database (run ledger, optional driver switch via ENV, default: sqlite)
	DBDriver     string
	DBConnection string

	// Observability (optional)
	SentryDSN string

	// Report (optional)
	EmailFrom    string
	ResendAPIKey string
	ReportTo     []string

	// Storage (S3-compatible: MinIO, AWS S3, Cloudflare R2, DigitalOcean Spaces, etc.)
	S3Region        string
	S3Bucket        string
	S3AccessKey     string
	S3SecretKey     string
	S3Endpoint      string        // Optional: for S3-compatible services (MinIO, DO Spaces, R2, etc.)
	S3PresignExpiry time.Duration // Expiry for archive download links - default: 7 days
}

func Load() *Config {
	// Load .env file if it exists
	err := godotenv.Load()
	if err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	cfg := &Config{
		// Application
		AppName: envString("APP_NAME", "Resume Book"),
		AppEnv:  envRequired("APP_ENV"), // Required: 'development' or 'production'

		// Forms
		FormIDs:       envList("FORM_IDS"),
		OptOutEmails:  envList("OPT_OUT_EMAILS"),
		FullNameTitle: envString("FULL_NAME_TITLE", "Full Name"),
		NameRulesFile: envString("NAME_RULES_FILE", ""),

		// Google
		GoogleCredentialsFile: envString("GOOGLE_CREDENTIALS_FILE", "credentials.json"),
		GoogleSubject:         envString("GOOGLE_SUBJECT", ""),
		DriveTmpFolderID:      envString("DRIVE_TMP_FOLDER_ID", ""),

		// Destination
		Destination:  envString("DESTINATION", DestinationLocal),
		OutputDir:    envString("OUTPUT_DIR", "./output"),
		OutputPrefix: envString("OUTPUT_PREFIX", ""),

		// Database
		DBDriver:     envString("DB_DRIVER", "sqlite"),
		DBConnection: envString("DB_CONNECTION", "./data/resumebook.db?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)"),

		// Observability
		SentryDSN: envString("SENTRY_DSN", ""),

		// Report
		EmailFrom:    envString("EMAIL_FROM", "noreply@example.com"),
		ResendAPIKey: envString("RESEND_API_KEY", ""),
		ReportTo:     envList("REPORT_TO"),

		// Storage
		S3Region:        envString("S3_REGION", ""),
		S3Bucket:        envString("S3_BUCKET", ""),
		S3AccessKey:     envString("S3_ACCESS_KEY", ""),
		S3SecretKey:     envString("S3_SECRET_KEY", ""),
		S3Endpoint:      envString("S3_ENDPOINT", ""),
		S3PresignExpiry: envDuration("S3_PRESIGN_EXPIRY", 168*time.Hour),
	}

	err = cfg.Validate()
	if err != nil {
		slog.Error("config invalid", "error", err)
		os.Exit(1)
	}

	return cfg
}

// Validate checks combinations of settings that the env helpers can't.
func (c *Config) Validate() error {
	switch c.Destination {
	case DestinationLocal:
		if c.OutputDir == "" {
			return errors.New("OUTPUT_DIR is required for local destination")
		}
	case DestinationS3:
		if c.S3Region == "" || c.S3Bucket == "" {
			return errors.New("S3_REGION and S3_BUCKET are required for s3 destination")
		}
	default:
		return errors.New("DESTINATION must be 'local' or 's3'")
	}

	err := validation.ValidateEmails("OPT_OUT_EMAILS", c.OptOutEmails)
	if err != nil {
		return err
	}
	err = validation.ValidateEmails("REPORT_TO", c.ReportTo)
	if err != nil {
		return err
	}

	// Production: a configured report recipient needs a way to send
	if c.IsProduction() && len(c.ReportTo) > 0 && c.ResendAPIKey == "" {
		return errors.New("production deployment requires RESEND_API_KEY when REPORT_TO is set")
	}

	return nil
}

// ValidateRun checks the settings only a pipeline run needs, so ledger-only
// commands work without Google configuration.
func (c *Config) ValidateRun() error {
	if len(c.FormIDs) == 0 {
		return errors.New("FORM_IDS must list at least one form")
	}
	if c.DriveTmpFolderID == "" {
		return errors.New("DRIVE_TMP_FOLDER_ID is required for conversions")
	}
	return nil
}

func envString(key, def string) string {
	value := os.Getenv(key)
	if value == "" {
		value = def
	}
	return value
}

// envList splits a comma-separated value, dropping blanks.
func envList(key string) []string {
	return splitList(os.Getenv(key))
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func envBool(key string, def bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("config invalid bool, using default", "key", key, "value", v, "default", def)
		return def
	}
	return b
}

func envDuration(key string, def time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		slog.Warn("config invalid duration, using default", "key", key, "value", v, "default", def)
		return def
	}
	return d
}

func envRequired(key string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	slog.Error("config required env var missing", "key", key)
	os.Exit(1)
	return ""
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// ReportEnabled reports whether run summaries should be emailed.
func (c *Config) ReportEnabled() bool {
	return c.ResendAPIKey != "" && len(c.ReportTo) > 0 && envBool("REPORT_ENABLED", true)
}

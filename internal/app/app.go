package app

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/templui/resumebook/internal/config"
	"github.com/templui/resumebook/internal/db"
	"github.com/templui/resumebook/internal/google"
	"github.com/templui/resumebook/internal/repository"
	"github.com/templui/resumebook/internal/service"
	"github.com/templui/resumebook/internal/storage"
)

type App struct {
	Cfg           *config.Config
	DB            *sqlx.DB
	RunRepository repository.RunRepository
	Pipeline      *service.Pipeline
	ReportService *service.ReportService
}

// New opens the run ledger only. Commands that talk to Google call
// WithPipeline on top.
func New(cfg *config.Config) (*App, error) {
	// Initialize database
	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %v", err)
	}

	// Run database migrations
	err = db.RunMigrations(database.DB, cfg.DBDriver)
	if err != nil {
		return nil, fmt.Errorf("failed to run migrations: %v", err)
	}

	return &App{
		Cfg:           cfg,
		DB:            database,
		RunRepository: repository.NewRunRepository(database),
	}, nil
}

// WithPipeline wires Google, the destination store and the services.
func (a *App) WithPipeline(ctx context.Context) error {
	cfg := a.Cfg

	rules, err := service.LoadNameRules(cfg.NameRulesFile)
	if err != nil {
		return err
	}

	clients, err := google.NewClients(ctx, cfg.GoogleCredentialsFile, cfg.GoogleSubject, cfg.FullNameTitle)
	if err != nil {
		return fmt.Errorf("failed to initialize Google clients: %v", err)
	}

	// Storage
	destination, err := storage.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %v", err)
	}

	// Services
	diags := service.NewDiagnostics(nil)
	converter := service.NewConverter(clients.Drive, cfg.DriveTmpFolderID)
	normalizer := service.NewNameNormalizer(diags, rules...)
	ingestor := service.NewIngestor(clients.Forms, clients.Drive, converter, normalizer, diags)

	a.Pipeline = service.NewPipeline(ingestor, destination, a.RunRepository, diags, cfg.OptOutEmails, cfg.OutputPrefix)
	a.ReportService = service.NewReportService(
		cfg.ResendAPIKey,
		cfg.EmailFrom,
		cfg.ReportTo,
		cfg.AppName,
		cfg.IsDevelopment(),
	)
	return nil
}

func (a *App) Close() error {
	return db.Close(a.DB)
}

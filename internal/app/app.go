package app

import (
	"context"
	"fmt"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/memoro/internal/common"
	"github.com/ternarybob/memoro/internal/handlers"
	"github.com/ternarybob/memoro/internal/interfaces"
	"github.com/ternarybob/memoro/internal/services/drive"
	"github.com/ternarybob/memoro/internal/services/export"
	"github.com/ternarybob/memoro/internal/services/extract"
	"github.com/ternarybob/memoro/internal/services/llm"
	"github.com/ternarybob/memoro/internal/services/market"
	"github.com/ternarybob/memoro/internal/services/memo"
	"github.com/ternarybob/memoro/internal/services/synth"
	storage "github.com/ternarybob/memoro/internal/storage/badger"
)

// App holds all application components and dependencies
type App struct {
	Config *common.Config
	Logger arbor.ILogger

	DB    *storage.BadgerDB
	Store interfaces.MemoStore

	// Core services
	LLMService     interfaces.LLMService
	ExtractService interfaces.ExtractService
	SynthService   interfaces.SynthService
	MarketService  interfaces.MarketService
	MemoService    interfaces.MemoService
	ExportService  interfaces.ExportService
	DriveService   interfaces.DriveService

	// HTTP handlers
	APIHandler      *handlers.APIHandler
	MemoHandler     *handlers.MemoHandler
	ExtractHandler  *handlers.ExtractHandler
	DriveHandler    *handlers.DriveHandler
	TestDataHandler *handlers.TestDataHandler
	PageHandler     *handlers.PageHandler
}

// New initializes the application with all dependencies
func New(cfg *common.Config, logger arbor.ILogger) (*App, error) {
	app := &App{
		Config: cfg,
		Logger: logger,
	}

	if err := app.initDatabase(); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	if err := app.initServices(); err != nil {
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	if err := app.initHandlers(); err != nil {
		return nil, fmt.Errorf("failed to initialize handlers: %w", err)
	}

	logger.Info().
		Str("provider", string(cfg.LLM.DefaultProvider)).
		Bool("drive_available", app.DriveService.Available()).
		Msg("Application initialization complete")

	return app, nil
}

// initDatabase initializes the storage layer (Badger)
func (a *App) initDatabase() error {
	db, err := storage.NewBadgerDB(a.Logger, &a.Config.Storage.Badger)
	if err != nil {
		return err
	}
	a.DB = db
	a.Store = storage.NewMemoStorage(db, a.Logger)

	a.Logger.Debug().
		Str("storage", "badger").
		Str("path", a.Config.Storage.Badger.Path).
		Msg("Storage layer initialized")

	return nil
}

// initServices initializes all business services in dependency order
func (a *App) initServices() error {
	llmService, err := llm.NewLLMService(a.Config, a.Logger)
	if err != nil {
		return fmt.Errorf("failed to initialize LLM service: %w", err)
	}
	a.LLMService = llmService

	// A failed probe is not fatal; the health endpoint surfaces it
	if err := a.LLMService.HealthCheck(context.Background()); err != nil {
		a.Logger.Warn().Err(err).Msg("LLM health check failed at startup")
	} else {
		a.Logger.Debug().Msg("LLM service initialized and health check passed")
	}

	a.ExtractService = extract.NewService(a.Config.Extract.TesseractPath, a.Logger)
	a.SynthService = synth.NewService(a.LLMService, a.Config.Extract.MaxDocumentChars, a.Logger)
	a.MarketService = market.NewService(a.LLMService, a.Logger)
	a.MemoService = memo.NewService(a.LLMService, a.SynthService, a.MarketService, a.Store, &a.Config.Memo, a.Logger)
	a.ExportService = export.NewService(a.Logger)
	a.DriveService = drive.NewService(&a.Config.Drive, a.ExtractService, a.Logger)

	a.Logger.Debug().Msg("Services initialized")
	return nil
}

// initHandlers initializes all HTTP handlers
func (a *App) initHandlers() error {
	a.APIHandler = handlers.NewAPIHandler(a.LLMService, a.DriveService)
	a.MemoHandler = handlers.NewMemoHandler(a.MemoService, a.Store, a.ExportService)
	a.ExtractHandler = handlers.NewExtractHandler(a.ExtractService, a.SynthService, &a.Config.Extract)
	a.DriveHandler = handlers.NewDriveHandler(a.DriveService, a.SynthService)
	a.TestDataHandler = handlers.NewTestDataHandler(a.SynthService)

	pageHandler, err := handlers.NewPageHandler(a.Logger, a.Config.Pages.Dir)
	if err != nil {
		return fmt.Errorf("failed to initialize page handler: %w", err)
	}
	a.PageHandler = pageHandler

	return nil
}

// Close closes all application resources
func (a *App) Close() error {
	if a.LLMService != nil {
		if err := a.LLMService.Close(); err != nil {
			a.Logger.Warn().Err(err).Msg("Failed to close LLM service")
		}
	}

	if a.Store != nil {
		if err := a.Store.Close(); err != nil {
			return fmt.Errorf("failed to close storage: %w", err)
		}
		a.Logger.Info().Msg("Storage closed")
	}

	return nil
}

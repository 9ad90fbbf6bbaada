// Package app initializes and holds long-lived application services,
// acting as a dependency injection container.
package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/MataNBhohadanA/text-analyzer/internal/analysis"
	"github.com/MataNBhohadanA/text-analyzer/internal/annotate/corenlp"
	proseannotate "github.com/MataNBhohadanA/text-analyzer/internal/annotate/prose"
	"github.com/MataNBhohadanA/text-analyzer/internal/artifact"
	"github.com/MataNBhohadanA/text-analyzer/internal/clock/system"
	"github.com/MataNBhohadanA/text-analyzer/internal/config"
	collyfetch "github.com/MataNBhohadanA/text-analyzer/internal/fetch/colly"
	"github.com/MataNBhohadanA/text-analyzer/internal/hash/sha256"
	uuidgen "github.com/MataNBhohadanA/text-analyzer/internal/id/uuid"
	"github.com/MataNBhohadanA/text-analyzer/internal/logging"
	"github.com/MataNBhohadanA/text-analyzer/internal/policy/ratelimit"
	"github.com/MataNBhohadanA/text-analyzer/internal/store"
	storepg "github.com/MataNBhohadanA/text-analyzer/internal/store/postgres"
)

// App holds the shared, long-lived services for the analyzer. It is
// initialized once at startup and passed to the components that need
// it.
type App struct {
	cfg     config.Config
	logger  *zap.Logger
	service *analysis.Service
	records analysis.RecordStore
}

// New builds every service the configuration asks for. It fails fast
// if any critical collaborator cannot be initialized.
func New(ctx context.Context, cfg config.Config) (*App, error) {
	logger, err := logging.New(cfg.Logging.Development)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	analysis.InitMetrics()

	fetcher := collyfetch.New(collyfetch.Config{
		UserAgent: cfg.Fetch.UserAgent,
		Timeout:   cfg.FetchTimeout(),
	})

	annotator, err := newAnnotator(cfg, logger)
	if err != nil {
		return nil, err
	}

	records, err := newRecordStore(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	var sink analysis.ArtifactSink
	if cfg.Artifacts.Enabled {
		fsSink, err := artifact.NewFileSystemSink(cfg.Artifacts.Dir, cfg.Artifacts.MaxBytes, logger)
		if err != nil {
			return nil, fmt.Errorf("init artifact sink: %w", err)
		}
		sink = fsSink
	}

	service, err := analysis.NewService(
		analysis.ServiceConfig{
			StartMarker: cfg.Cleaner.StartMarker,
			EndMarker:   cfg.Cleaner.EndMarker,
			SampleLines: cfg.Sample.Lines,
		},
		analysis.Deps{
			Fetcher:   fetcher,
			Annotator: annotator,
			Store:     records,
			Sink:      sink,
			Limiter: ratelimit.New(ratelimit.Config{
				DefaultRPS:   cfg.Fetch.RPS,
				DefaultBurst: cfg.Fetch.Burst,
			}),
			Clock:  system.New(),
			IDs:    uuidgen.New(),
			Hasher: sha256.New(),
			Logger: logger,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("init analysis service: %w", err)
	}

	return &App{
		cfg:     cfg,
		logger:  logger,
		service: service,
		records: records,
	}, nil
}

func newAnnotator(cfg config.Config, logger *zap.Logger) (analysis.Annotator, error) {
	switch cfg.Pipeline.Engine {
	case config.EngineCoreNLP:
		logger.Info("using CoreNLP annotation engine",
			zap.String("server", cfg.Pipeline.ServerURL))
		client, err := corenlp.New(corenlp.Config{
			ServerURL:  cfg.Pipeline.ServerURL,
			Annotators: cfg.Pipeline.Annotators,
			Timeout:    cfg.PipelineTimeout(),
		})
		if err != nil {
			return nil, fmt.Errorf("init corenlp client: %w", err)
		}
		return client, nil
	case config.EngineProse:
		logger.Info("using local prose annotation engine (tags only)")
		return proseannotate.New(), nil
	default:
		return nil, fmt.Errorf("unknown pipeline engine: %s", cfg.Pipeline.Engine)
	}
}

func newRecordStore(ctx context.Context, cfg config.Config, logger *zap.Logger) (analysis.RecordStore, error) {
	switch cfg.DB.Provider {
	case config.StorePostgres:
		logger.Info("connecting to PostgreSQL record store")
		pg, err := storepg.New(ctx, storepg.Config{
			DSN:      cfg.DB.DSN,
			Table:    cfg.DB.Table,
			MaxConns: cfg.DB.MaxConns,
			MinConns: cfg.DB.MinConns,
		})
		if err != nil {
			return nil, fmt.Errorf("init postgres store: %w", err)
		}
		return pg, nil
	case config.StoreNoop:
		logger.Info("record persistence disabled")
		return store.NoOp{}, nil
	default:
		return nil, fmt.Errorf("unknown db provider: %s", cfg.DB.Provider)
	}
}

// Config returns the loaded configuration.
func (a *App) Config() config.Config {
	return a.cfg
}

// Logger returns the shared zap logger instance.
func (a *App) Logger() *zap.Logger {
	return a.logger
}

// Service returns the analysis pipeline service.
func (a *App) Service() *analysis.Service {
	return a.service
}

// Close releases long-lived resources.
func (a *App) Close() {
	if a.records != nil {
		if err := a.records.Close(); err != nil {
			a.logger.Warn("close record store", zap.Error(err))
		}
	}
	_ = a.logger.Sync()
}

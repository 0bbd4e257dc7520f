package app

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"CowsayNews/internal/classify"
	"CowsayNews/internal/config"
	"CowsayNews/internal/filter"
	"CowsayNews/internal/infrastructure/gemini"
	"CowsayNews/internal/infrastructure/ghost"
	"CowsayNews/internal/infrastructure/newsapi"
	"CowsayNews/internal/infrastructure/scheduler"
	"CowsayNews/internal/logging"
	"CowsayNews/internal/pacing"
	"CowsayNews/internal/summary"
	"CowsayNews/internal/usecase"
)

// Application wires configuration to the pipeline and its scheduler.
type Application struct {
	cfg      config.Config
	logger   *slog.Logger
	pipeline *usecase.Pipeline
}

// New builds a runnable application instance.
func New(cfg config.Config, baseLogger *slog.Logger) *Application {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	source := newsapi.NewClient(
		cfg.News,
		pacing.Fixed(cfg.News.RetryDelay),
		nil,
		baseLogger.With("component", "newsapi"),
	)

	model := gemini.NewClient(cfg.Model, nil)
	modelPacer := pacing.Fixed(cfg.Model.PaceDelay)

	pipeline := usecase.NewPipeline(usecase.PipelineDeps{
		Source:      source,
		Filter:      filter.New(cfg.Filter),
		Classifier:  classify.New(model, modelPacer, cfg.Classify, baseLogger.With("component", "classifier")),
		Synthesizer: summary.New(model, modelPacer, cfg.Summary, baseLogger.With("component", "synthesizer")),
		Publisher:   ghost.NewPublisher(cfg.Ghost, nil, baseLogger.With("component", "ghost")),
		Logger:      baseLogger.With("component", "pipeline"),
	})

	return &Application{cfg: cfg, logger: baseLogger, pipeline: pipeline}
}

// RunOnce executes a single pipeline pass.
func (a *Application) RunOnce(ctx context.Context) error {
	_, err := a.pipeline.Run(ctx, time.Now())
	return err
}

// RunDaemon starts the cron loop and blocks until SIGINT/SIGTERM.
func (a *Application) RunDaemon(ctx context.Context) error {
	driver := scheduler.NewCronScheduler(a.cfg.Scheduler.CronExpression, a.cfg.Scheduler.Location())
	sched := usecase.NewScheduler(driver, a.pipeline, a.logger.With("component", "scheduler"))

	if err := sched.Start(ctx); err != nil {
		return err
	}
	a.logger.Info("daemon started", "cron", a.cfg.Scheduler.CronExpression)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-stop:
	case <-ctx.Done():
	}

	stopCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return sched.Stop(stopCtx)
}

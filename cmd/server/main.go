// Package main implements the entry point for the Resumake API server,
// which orchestrates resume data collection and LLM-backed composition.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"time"

	"github.com/resumake/resumake-api/internal/config"
	"github.com/resumake/resumake-api/internal/job"
	"github.com/resumake/resumake-api/internal/platform/gemini"
	"github.com/resumake/resumake-api/internal/platform/githubmeta"
	"github.com/resumake/resumake-api/internal/platform/logger"
	"github.com/resumake/resumake-api/internal/platform/webpage"
	"github.com/resumake/resumake-api/internal/service"
	"github.com/resumake/resumake-api/internal/workflow"
)

// application bundles the server's dependencies for route setup.
type application struct {
	config   *config.Config
	logger   *slog.Logger
	service  *service.ResumeService
	runner   *job.Runner
	jobStore *job.Store
}

func main() {
	app, err := initializeApp()
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	if err := app.serve(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

// initializeApp loads configuration and wires up application components.
func initializeApp() (*application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	slog.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"workflow_timeout_seconds", cfg.Workflow.TimeoutSeconds)

	ctx := context.Background()
	llmClient, err := gemini.NewClient(ctx, appLogger, cfg.LLM)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	var githubOpts []githubmeta.Option
	if cfg.GitHub.Token != "" {
		githubOpts = append(githubOpts, githubmeta.WithToken(cfg.GitHub.Token))
	}
	githubClient := githubmeta.NewClient(appLogger, githubOpts...)
	scraper := webpage.NewScraper(appLogger)

	driver := workflow.NewDriver(workflow.DriverConfig{
		Timeout: time.Duration(cfg.Workflow.TimeoutSeconds) * time.Second,
	}, appLogger)

	resumeService := service.NewResumeService(
		driver,
		githubClient,
		scraper,
		llmClient,
		llmClient,
		appLogger,
	)

	jobStore := job.NewStore()
	runner := job.NewRunner(jobStore, resumeService, job.RunnerConfig{
		WorkerCount: cfg.Workflow.WorkerCount,
		QueueSize:   cfg.Workflow.QueueSize,
	}, appLogger)

	return &application{
		config:   cfg,
		logger:   appLogger,
		service:  resumeService,
		runner:   runner,
		jobStore: jobStore,
	}, nil
}

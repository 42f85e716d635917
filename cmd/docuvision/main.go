package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"docuvision/internal/batch"
	"docuvision/internal/common"
	"docuvision/internal/export"
	"docuvision/internal/gemini"
	"docuvision/internal/pipeline"
	"docuvision/internal/raster"
	"docuvision/internal/render"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(2)
	}

	if err := os.MkdirAll(cfg.Folders.InputDir, 0o755); err != nil {
		logger.Error("create input folder", "dir", cfg.Folders.InputDir, "error", err)
		os.Exit(1)
	}
	if err := os.MkdirAll(cfg.Folders.OutputDir, 0o755); err != nil {
		logger.Error("create output folder", "dir", cfg.Folders.OutputDir, "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := gemini.NewClient(gemini.Config{
		APIKey:          cfg.Gemini.APIKey,
		Model:           cfg.Gemini.Model,
		Temperature:     cfg.Gemini.Temperature,
		MaxOutputTokens: cfg.Gemini.MaxOutputTokens,
		Timeout:         cfg.Gemini.Timeout,
	}, logger)

	pipe := pipeline.New(logger, client)
	rast := raster.New(logger)
	proc := batch.NewProcessor(logger, rast, pipe, cfg.Folders.OutputDir)

	opts := pipeline.Options{
		ClassificationEnabled: cfg.Pipeline.ClassificationEnabled,
		StructuredExtraction:  cfg.Pipeline.StructuredExtraction,
		Format:                render.Format(cfg.Pipeline.OutputFormat),
		Workers:               cfg.Pipeline.MaxWorkers,
	}

	results, err := proc.ProcessAll(ctx, cfg.Folders.InputDir, opts)
	if err != nil {
		logger.Error("batch run aborted", "error", err, "documents_done", len(results))
		os.Exit(1)
	}
	if len(results) == 0 {
		logger.Warn("no PDF files processed", "input_dir", cfg.Folders.InputDir)
		return
	}

	pages, structured := 0, 0
	for _, doc := range results {
		pages += len(doc.Pages)
		structured += doc.StructuredPages
	}

	xlsx, err := export.NewService(logger).RunSummaryXLSX(results)
	if err != nil {
		logger.Error("build run summary", "error", err)
		os.Exit(1)
	}
	summaryPath := filepath.Join(cfg.Folders.OutputDir, "run_summary.xlsx")
	if err := os.WriteFile(summaryPath, xlsx, 0o644); err != nil {
		logger.Error("write run summary", "path", summaryPath, "error", err)
		os.Exit(1)
	}

	logger.Info("batch run complete",
		"documents", len(results),
		"pages", pages,
		"structured_pages", structured,
		"summary", summaryPath,
	)
}

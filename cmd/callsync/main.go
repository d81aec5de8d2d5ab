package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/E-FEDOTOVA/callsync/internal/aggregate"
	"github.com/E-FEDOTOVA/callsync/internal/archive"
	"github.com/E-FEDOTOVA/callsync/internal/config"
	"github.com/E-FEDOTOVA/callsync/internal/mailer"
	"github.com/E-FEDOTOVA/callsync/internal/openai"
	"github.com/E-FEDOTOVA/callsync/internal/report"
	"github.com/E-FEDOTOVA/callsync/internal/ringover"
	"github.com/E-FEDOTOVA/callsync/internal/runstats"
	"github.com/E-FEDOTOVA/callsync/internal/sheets"
)

func main() {
	// Configure logger
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	// Load configuration, credentials checked before any network call
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Set log level
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Warn().Str("level", cfg.LogLevel).Msg("invalid log level, using info")
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	logger := log.With().Str("run_id", uuid.NewString()).Logger()
	logger.Info().
		Str("target_date", cfg.TargetDate).
		Str("drive_folder", cfg.DriveFolderName).
		Str("log_level", cfg.LogLevel).
		Msg("starting daily call sync")

	// A terminated run keeps whatever completed hours the fetch gathered
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	stats := runstats.New()
	if err := run(ctx, cfg, logger, stats); err != nil {
		logger.Fatal().Err(err).Msg("run failed")
	}
	stats.LogSummary(logger)
}

// run executes one day's pipeline start-to-finish: fetch, aggregate,
// publish, classify, narrate, notify.
func run(ctx context.Context, cfg *config.Config, logger zerolog.Logger, stats *runstats.Stats) error {
	snapshots := archive.NewWriter(cfg.ArchiveDir, logger)

	// Fetch the day's calls, hour by hour
	fetchStart := time.Now()
	fetcher := ringover.NewClient(cfg.RingoverAPIKey, logger, ringover.WithBaseURL(cfg.RingoverBaseURL))
	calls := fetcher.FetchDay(ctx, cfg.TargetDate, stats)
	stats.FetchDuration = time.Since(fetchStart)
	logger.Info().Int("calls", len(calls)).Int("failed_hours", stats.FailedHours()).Msg("fetch complete")

	if err := snapshots.SaveCalls(cfg.TargetDate, calls); err != nil {
		logger.Error().Err(err).Msg("call snapshot failed")
	}

	// Aggregate into one row per agent
	summaries, err := aggregate.Aggregate(calls)
	if err != nil {
		return fmt.Errorf("aggregation failed: %w", err)
	}
	stats.AgentsSummarized = len(summaries)
	logger.Info().Int("agents", len(summaries)).Msg("aggregation complete")

	if err := snapshots.SaveSummary(cfg.TargetDate, summaries); err != nil {
		logger.Error().Err(err).Msg("summary snapshot failed")
	}

	// Publish the detailed report and read it back for classification
	publishStart := time.Now()
	sink, err := sheets.NewSink(ctx, cfg.GoogleCredentialsFile, cfg.DriveFolderName, logger)
	if err != nil {
		return fmt.Errorf("report sink unavailable: %w", err)
	}
	sheetName := "Detailed_Summary_" + cfg.TargetDate
	sheetID, sheetURL, err := sink.Publish(ctx, sheetName, summaries)
	if err != nil {
		return fmt.Errorf("failed to publish report: %w", err)
	}
	rows, err := sink.Read(ctx, sheetID)
	if err != nil {
		return fmt.Errorf("failed to read report back: %w", err)
	}
	stats.PublishDuration = time.Since(publishStart)

	classifyCfg := aggregate.DefaultClassifyConfig()
	classifyCfg.ExcludeFirstNames = cfg.ExcludeFirstNames
	classifyCfg.MinCallVolume = cfg.MinCallVolume
	classification, err := aggregate.Classify(rows, classifyCfg)
	if err != nil {
		return fmt.Errorf("classification failed: %w", err)
	}

	// Narrate the numbers into the HTML summary
	narrateStart := time.Now()
	generator := report.NewGenerator(
		openai.NewClient(cfg.OpenAIAPIKey),
		cfg.OpenAIModel, cfg.OpenAIMaxTokens, cfg.OpenAITemperature,
		logger,
	)
	narrative, err := generator.Narrate(ctx, classification)
	if err != nil {
		return fmt.Errorf("failed to generate summary: %w", err)
	}
	narrative = report.AppendReportLink(narrative, sheetURL)
	stats.NarrateDuration = time.Since(narrateStart)

	// Delivery failure ends the run quietly; the sheet is already published
	notifier := mailer.NewSMTPService(cfg.SMTPHost, cfg.SMTPPort, cfg.EmailUser, cfg.EmailPass, cfg.EmailReceivers)
	if err := notifier.SendSummary(ctx, mailer.Subject(cfg.TargetDate), narrative); err != nil {
		logger.Error().Err(err).Msg("failed to send summary email")
	} else {
		logger.Info().Strs("recipients", cfg.EmailReceivers).Msg("summary email sent")
	}

	return nil
}

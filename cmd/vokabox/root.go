package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"
	"github.com/vytor/vokabox/internal/config"
	"github.com/vytor/vokabox/internal/db"
	"github.com/vytor/vokabox/internal/logger"
	"github.com/vytor/vokabox/internal/repository/sqlite"
	"github.com/vytor/vokabox/internal/selection"
	"github.com/vytor/vokabox/internal/services"
)

var cfg config.Config

var rootCmd = &cobra.Command{
	Use:          "vokabox",
	Short:        "Leitner vocabulary trainer",
	Long:         "vokabox schedules vocabulary reviews in five Leitner boxes, grades typed answers and reports learner activity.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "version" {
			return nil
		}
		cfg = config.Load()
		if p, _ := cmd.Flags().GetString("db"); p != "" {
			cfg.DBPath = p
		}
		if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
			cfg.LogLevel = lvl
		}
		logger.SetDefault(logger.New(
			logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
			logger.WithColors(cmd.Name() == "serve"),
		))
		return cfg.Validate()
	},
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides DB_PATH)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: DEBUG, INFO, WARN or ERROR (overrides LOG_LEVEL)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(sweepCmd)
	rootCmd.AddCommand(dashboardCmd)
	rootCmd.AddCommand(learnersCmd)
	rootCmd.AddCommand(versionCmd)
}

// app bundles the opened database and the services built on it.
type app struct {
	db        *db.DB
	training  services.TrainingService
	learners  services.LearnerService
	dashboard services.DashboardService
	importer  services.ImportService
}

func openApp(ctx context.Context) (*app, error) {
	database, err := db.Open(ctx, cfg.DBPath)
	if err != nil {
		return nil, err
	}

	learnerRepo := sqlite.NewLearnerRepository(database.DB)
	vocabRepo := sqlite.NewVocabularyRepository(database.DB)
	progressRepo := sqlite.NewProgressRepository(database.DB)
	sessionRepo := sqlite.NewSessionRepository(database.DB)

	loc := cfg.Location()
	return &app{
		db: database,
		training: services.NewTrainingService(vocabRepo, progressRepo, sessionRepo, services.TrainingConfig{
			Policy: selection.Policy{
				SessionLimit:  cfg.SessionLimit,
				DailyNewQuota: cfg.DailyNewQuota,
			},
			StaleAfter: time.Duration(cfg.StaleSessionMinutes) * time.Minute,
			Location:   loc,
		}),
		learners: services.NewLearnerService(learnerRepo),
		dashboard: services.NewDashboardService(learnerRepo, progressRepo, sessionRepo, services.DashboardConfig{
			DailyNewQuota:      cfg.DailyNewQuota,
			ActivityWindowDays: cfg.ActivityWindowDays,
			RollupWindowDays:   cfg.RollupWindowDays,
			DashboardDays:      cfg.DashboardDays,
			Location:           loc,
		}),
		importer: services.NewImportService(vocabRepo),
	}, nil
}

func (a *app) Close() {
	logger.Debug("closing database connection")
	if err := a.db.Close(); err != nil {
		logger.Warn("failed to close database: %v", err)
	}
}

package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/vytor/vokabox/internal/api"
	"github.com/vytor/vokabox/internal/jobs"
	"github.com/vytor/vokabox/internal/logger"
	"github.com/vytor/vokabox/internal/worker"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API, worker pool and stale-session sweeper",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func runServe(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}
	log := logger.Default()

	log.Info("===========================================")
	log.Info("vokabox server starting")
	log.Info("===========================================")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("timezone=%s", cfg.Timezone)
	log.Debug("daily_new_quota=%d", cfg.DailyNewQuota)
	log.Debug("session_limit=%d", cfg.SessionLimit)
	log.Debug("stale_session_minutes=%d", cfg.StaleSessionMinutes)
	log.Debug("sweep_interval_minutes=%d", cfg.SweepIntervalMinutes)
	log.Debug("worker_count=%d", cfg.WorkerCount)
	log.Debug("queue_size=%d", cfg.QueueSize)

	a, err := openApp(parent)
	if err != nil {
		log.Error("failed to open database: %v", err)
		return err
	}
	defer a.Close()

	pool := worker.NewPool(cfg.WorkerCount, cfg.QueueSize)
	queue := jobs.NewWorkerQueue(pool, a.training, a.importer)
	scheduler := jobs.NewScheduler(queue, time.Duration(cfg.SweepIntervalMinutes)*time.Minute)

	srv := &api.Server{
		TrainingService:  a.training,
		LearnerService:   a.learners,
		DashboardService: a.dashboard,
		JobQueue:         queue,
		DB:               a.db,
	}

	ctx, cancel := context.WithCancel(parent)
	defer cancel()
	pool.Start(ctx)
	if err := scheduler.Start(); err != nil {
		log.Error("failed to start scheduler: %v", err)
		pool.Stop()
		return err
	}

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serveErr <- err
		}
		close(serveErr)
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(stop)

	var runErr error
	select {
	case sig := <-stop:
		log.Info("received signal %v, initiating graceful shutdown", sig)
	case err, ok := <-serveErr:
		if ok {
			log.Error("HTTP server error: %v", err)
			runErr = err
		}
	case <-parent.Done():
		log.Info("context cancelled, shutting down")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	log.Debug("stopping scheduler")
	scheduler.Stop()

	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	log.Debug("stopping worker pool")
	pool.Stop()

	log.Info("===========================================")
	log.Info("vokabox server stopped")
	log.Info("===========================================")
	return runErr
}

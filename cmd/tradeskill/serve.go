package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vytor/tradeskill/internal/api"
	"github.com/vytor/tradeskill/internal/cache"
	"github.com/vytor/tradeskill/internal/config"
	"github.com/vytor/tradeskill/internal/curriculum"
	"github.com/vytor/tradeskill/internal/db"
	"github.com/vytor/tradeskill/internal/jobs"
	"github.com/vytor/tradeskill/internal/repository"
	redisrepo "github.com/vytor/tradeskill/internal/repository/redis"
	"github.com/vytor/tradeskill/internal/repository/sqlite"
	"github.com/vytor/tradeskill/internal/services"
	"github.com/vytor/tradeskill/internal/tasks"
	"github.com/vytor/tradeskill/internal/worker"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the lesson HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd)
		},
	}
	cmd.Flags().String("addr", "", "Listen address (overrides ADDR)")
	return cmd
}

// openProgressStore returns the configured progress repository and a func
// that releases it.
func openProgressStore(ctx context.Context, cfg config.Config) (repository.ProgressRepository, func(), error) {
	switch cfg.ProgressBackend {
	case config.BackendRedis:
		c, err := cache.New(ctx, cfg.RedisURL)
		if err != nil {
			return nil, nil, fmt.Errorf("connect redis: %w", err)
		}
		return redisrepo.NewProgressRepository(c), func() { _ = c.Close() }, nil
	default:
		database, err := db.Open(cfg.DBPath)
		if err != nil {
			return nil, nil, fmt.Errorf("open database: %w", err)
		}
		return sqlite.NewProgressRepository(database.DB), func() { _ = database.Close() }, nil
	}
}

func runServe(cmd *cobra.Command) error {
	cfg := config.Load()
	if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
		cfg.Addr = addr
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	log := setupLogger(cfg)

	log.Info("===========================================")
	log.Info("Tradeskill Server Starting (%s)", version)
	log.Info("===========================================")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("progress_backend=%s", cfg.ProgressBackend)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("curriculum_dir=%s", cfg.CurriculumDir)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("progress_worker_count=%d", cfg.ProgressWorkerCount)
	log.Debug("progress_queue_size=%d", cfg.ProgressQueueSize)
	log.Debug("session_idle_timeout=%s", cfg.SessionIdleTimeout)

	prog, err := loadProgram(cmd, cfg)
	if err != nil {
		return fmt.Errorf("load curriculum: %w", err)
	}
	content := curriculum.NewRepository(prog)
	log.Info("curriculum loaded: %s (%d days)", prog.Title, content.TotalDays())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	progressRepo, closeStore, err := openProgressStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		log.Debug("closing progress store")
		closeStore()
	}()

	pool := worker.NewPool(cfg.ProgressWorkerCount, cfg.ProgressQueueSize)
	pool.Start(ctx)

	registry := tasks.NewRegistry(tasks.NewRandomSource(cfg.Seed))
	sessions := services.NewSessionStore()
	queue := jobs.NewWorkerQueue(pool, progressRepo)

	srv := &api.Server{
		CurriculumService: services.NewCurriculumService(content),
		LessonService:     services.NewLessonService(content, registry, sessions, queue),
		DailyTestService:  services.NewDailyTestService(content, registry, sessions, queue),
		ProgressService:   services.NewProgressService(progressRepo, content),
		Store:             progressRepo,
	}

	sweepEvery := cfg.SessionIdleTimeout / 4
	go worker.Every(ctx, pool, sweepEvery, func() worker.Job {
		return &worker.SweepSessionsJob{Sessions: sessions, Idle: cfg.SessionIdleTimeout}
	})

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
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-stop:
		log.Info("received signal %v, initiating graceful shutdown", sig)
	case err := <-serveErr:
		log.Error("HTTP server error: %v", err)
		cancel()
		pool.Stop()
		return err
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	// Pending progress writes drain before the store closes.
	log.Debug("stopping progress pool")
	pool.Stop()
	cancel()

	lessons, tests := sessions.Len()
	log.Info("discarding %d lesson and %d test sessions", lessons, tests)
	log.Info("===========================================")
	log.Info("Tradeskill Server Stopped")
	log.Info("===========================================")
	return nil
}

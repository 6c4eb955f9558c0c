package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	app "github.com/talentbase/candidate-import/internal/application/candidate"
	"github.com/talentbase/candidate-import/internal/bootstrap"
	"github.com/talentbase/candidate-import/internal/config"
	"github.com/talentbase/candidate-import/internal/infrastructure/db/models"
	infrafile "github.com/talentbase/candidate-import/internal/infrastructure/file"
	"github.com/talentbase/candidate-import/internal/infrastructure/repository"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logrus.WithError(err).Fatal("failed to load config")
	}

	log := newLogger(cfg.Log)

	if cfg.Database.URL == "" {
		log.Fatal("database.url (DATABASE_URL) is required")
	}

	db, err := gorm.Open(postgres.Open(cfg.Database.URL), &gorm.Config{})
	if err != nil {
		log.WithError(err).Fatal("failed to connect database")
	}
	if err := db.AutoMigrate(&models.Candidate{}, &models.ImportJob{}); err != nil {
		log.WithError(err).Fatal("failed to migrate database")
	}

	pool, err := pgxpool.New(context.Background(), cfg.Database.URL)
	if err != nil {
		log.WithError(err).Fatal("failed to create pgx pool")
	}
	defer pool.Close()

	store := infrafile.NewLocalStore(cfg.Import.UploadDir)
	jobRepo := repository.NewImportJobRepository(db, cfg.Import.RetryDelay())
	server := bootstrap.NewHTTPServer(db, jobRepo, store, cfg)

	workerCtx, stopWorkers := context.WithCancel(context.Background())
	defer stopWorkers()

	candidateStore := repository.NewCandidateStore(pool)
	processor := app.NewRowProcessor(candidateStore)

	worker := app.NewImportWorker(jobRepo, store, processor, log, app.ImportWorkerConfig{
		Workers:       cfg.Import.Workers,
		BatchSize:     cfg.Import.BatchSize,
		LeaseDuration: cfg.Import.LeaseDuration(),
	})
	worker.Start(workerCtx)

	go func() {
		if err := server.Start(addr(cfg.Server.Port)); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	stopWorkers()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.WithError(err).Fatal("graceful shutdown failed")
	}
}

func newLogger(cfg config.LogConfig) *logrus.Logger {
	log := logrus.New()

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	if cfg.Format == "text" {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		log.SetFormatter(&logrus.JSONFormatter{})
	}

	return log
}

func addr(port int) string {
	if port <= 0 {
		port = 8080
	}
	return ":" + strconv.Itoa(port)
}

package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"shmirascheduler/config"
	_ "shmirascheduler/docs"
	"shmirascheduler/internal/adapters/auth"
	"shmirascheduler/internal/adapters/email"
	delivery "shmirascheduler/internal/delivery/http"
	"shmirascheduler/internal/delivery/http/controllers"
	"shmirascheduler/internal/delivery/http/middleware"
	"shmirascheduler/internal/jobs"
	"shmirascheduler/internal/repository/postgres"
	"shmirascheduler/internal/services"
)

// @title Shmira Scheduler API
// @version 1.0
// @description Shift scheduling and notification service for shmira volunteers.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Exit(1)
	}
	logger := config.NewLogger()

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		logger.Error("failed to open database", "err", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Error("failed to reach database", "err", err)
		os.Exit(1)
	}

	eventRepo := postgres.NewEventRepository(db)
	shiftRepo := postgres.NewShiftRepository(db)
	signupRepo := postgres.NewSignupRepository(db)
	personRepo := postgres.NewPersonRepository(db)
	mappingRepo := postgres.NewMappingRepository(db)
	locationRepo := postgres.NewLocationRepository(db)

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.EmailProvider,
		FromAddress: cfg.EmailFrom,
		FromName:    cfg.EmailFromName,
		SES: email.SESConfig{
			Region:          cfg.SESRegion,
			AccessKeyID:     cfg.SESAccessKey,
			SecretAccessKey: cfg.SESSecretKey,
		},
	})
	if err != nil {
		logger.Error("failed to create mailer", "err", err)
		os.Exit(1)
	}
	emailSvc := services.NewEmailService(mailer, email.NewTemplateRenderer(), logger)

	lock := services.NewCapacityLock(cfg.LockTimeout)
	shiftSync := services.NewShiftSyncService(eventRepo, shiftRepo, lock, logger)
	mappingSync := services.NewMappingSyncService(eventRepo, personRepo, mappingRepo, logger)
	dispatcher := services.NewDispatchService(mappingRepo, eventRepo, personRepo, locationRepo, emailSvc, cfg.BaseURL, logger)
	signupSvc := services.NewSignupService(shiftRepo, signupRepo, personRepo, eventRepo, locationRepo, emailSvc, lock, cfg.BaseURL, logger)
	eventSvc := services.NewEventService(eventRepo, shiftSync, mappingSync, logger)

	scheduler := jobs.NewScheduler(cfg.SyncInterval, shiftSync, mappingSync, dispatcher, logger)
	scheduler.Start()
	defer scheduler.Stop()

	verifier := auth.NewPersonTokenVerifier(personRepo)
	shiftController := controllers.NewShiftController(logger, signupSvc)
	eventController := controllers.NewEventController(logger, eventSvc, locationRepo)
	mux := delivery.NewRouter(shiftController, eventController, verifier, logger)

	var handler http.Handler = mux
	handler = middleware.CORS(cfg.CORSAllowedOrigins, handler)
	handler = middleware.LoggingMiddleware(logger, handler)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server listening", "port", cfg.Port, "env", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "err", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", "err", err)
	}
}

package main

import (
	"database/sql"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/lib/pq"

	"bikeshop-backend/internal/config"
	"bikeshop-backend/internal/jobs"
	"bikeshop-backend/internal/logger"
	"bikeshop-backend/internal/repository/postgres"
	"bikeshop-backend/internal/scheduler"
	"bikeshop-backend/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.yaml", "Path to configuration file")
	runOnce := flag.String("run-once", "", "Run a specific job once and exit (e.g., 'sync-bike-statuses', 'flag-service-due', 'send-return-reminders', 'all-nightly')")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Bike Shop Cronjob Runner...", "log_level", cfg.Log.Level)

	// Initialize Database
	logger.Info("Connecting to database...", "host", cfg.Database.Host, "port", cfg.Database.Port)
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Services
	emailService := service.NewEmailService(
		cfg.Email.SendGridAPIKey,
		cfg.Email.FromName,
		cfg.Email.FromAddress,
	)
	bikeService := service.NewBikeService(store.BikeRepository, store.BookingRepository)

	// Initialize Job Runner
	jobRunner := jobs.NewJobRunner(db, store, &jobs.Services{
		Email: emailService,
		Bikes: bikeService,
	}, cfg)

	// Run a single job and exit if requested
	if *runOnce != "" {
		runSingleJob(jobRunner, *runOnce)
		return
	}

	// Start the scheduler and block until a shutdown signal arrives
	sched := scheduler.NewScheduler(jobRunner)
	sched.Start()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	logger.Info("Received signal, shutting down", "signal", sig.String())

	sched.Stop()
}

func runSingleJob(jobRunner *jobs.JobRunner, name string) {
	switch name {
	case "sync-bike-statuses":
		jobRunner.SyncBikeStatuses()
	case "flag-service-due":
		jobRunner.FlagServiceDue()
	case "send-return-reminders":
		jobRunner.SendReturnReminders()
	case "all-nightly":
		jobRunner.RunAllNightlyJobs()
	default:
		logger.Error("Unknown job", "job", name)
		os.Exit(1)
	}
}

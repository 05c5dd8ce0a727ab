package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/umituz/turkticaret-case-sub003/internal/api"
	"github.com/umituz/turkticaret-case-sub003/internal/config"
	"github.com/umituz/turkticaret-case-sub003/internal/domain"
	"github.com/umituz/turkticaret-case-sub003/internal/metrics"
	"github.com/umituz/turkticaret-case-sub003/internal/notify"
	"github.com/umituz/turkticaret-case-sub003/internal/repository/postgres"
	"github.com/umituz/turkticaret-case-sub003/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	var logger *zap.Logger
	if cfg.Environment == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// Connect to database and apply migrations
	db, err := postgres.NewConnection(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := postgres.RunMigrations(db); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	metrics.Register()

	repos := postgres.NewRepositories(db, logger)

	notifier := notify.New(cfg.Kafka.Brokers, cfg.Kafka.Topic, logger)
	defer notifier.Close()
	if !notifier.Enabled() {
		logger.Info("Kafka notifications disabled, no brokers configured")
	}

	policy := domain.TransitionPolicy{AllowRefunds: cfg.RefundProfile}
	orderService := service.NewOrderService(repos, policy, notifier, logger)
	cartService := service.NewCartService(repos, logger)

	router := api.NewRouter(cfg, orderService, cartService, logger)

	logger.Info("Starting server",
		zap.String("port", cfg.Port),
		zap.String("environment", cfg.Environment),
		zap.Bool("refund_profile", cfg.RefundProfile),
	)
	if err := router.Run(":" + cfg.Port); err != nil {
		logger.Fatal("Server failed", zap.Error(err))
	}
}

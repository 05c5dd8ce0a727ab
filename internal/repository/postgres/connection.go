package postgres

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
	"go.uber.org/zap"

	"github.com/umituz/turkticaret-case-sub003/internal/config"
	"github.com/umituz/turkticaret-case-sub003/internal/repository"
	_ "github.com/umituz/turkticaret-case-sub003/internal/repository/postgres/migrations"
)

// NewConnection opens a database connection pool
func NewConnection(cfg config.DatabaseConfig) (*sql.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode,
	)

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// RunMigrations applies all registered goose migrations
func RunMigrations(db *sql.DB) error {
	goose.SetDialect("postgres")
	if err := goose.Up(db, "./internal/repository/postgres/migrations"); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// NewRepositories creates all repository implementations
func NewRepositories(db *sql.DB, logger *zap.Logger) *repository.Repositories {
	return &repository.Repositories{
		Order:    NewOrderRepository(db, logger),
		CartItem: NewCartItemRepository(db, logger),
	}
}

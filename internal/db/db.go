package db

import (
	"database/sql"
	"fmt"

	"posdesk/internal/config"
	"posdesk/internal/logger"

	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

// Open connects to the local sales journal database.
func Open(cfg *config.Config) (*sql.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort,
	)

	database, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open journal db: %w", err)
	}

	if err = database.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping journal db: %w", err)
	}

	logger.L().Info("Journal database connected", zap.String("host", cfg.DBHost))
	return database, nil
}

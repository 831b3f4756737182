package infra

import (
	"errors"
	"fmt"
	"time"

	"github.com/amirasaad/finlabs/infra/repository"
	"github.com/amirasaad/finlabs/pkg/config"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDBConnection opens the SQL database named by cnf.Source. SQLite
// databases are auto-migrated; Postgres schemas are owned by the
// migrations package.
func NewDBConnection(cnf config.DB, appEnv string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cnf.Source {
	case "postgres":
		if cnf.Url == "" {
			return nil, errors.New("DB_URL is not set")
		}
		dialector = postgres.Open(cnf.Url)
	case "sqlite":
		dsn := cnf.Url
		if dsn == "" {
			dsn = "file::memory:?cache=shared"
		}
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported SQL source %q", cnf.Source)
	}

	connection, err := gorm.Open(dialector, gormConfig(appEnv))
	if err != nil {
		return nil, err
	}
	if cnf.Source == "sqlite" {
		if err := connection.AutoMigrate(&repository.Account{}, &repository.Transaction{}); err != nil {
			return nil, fmt.Errorf("auto migrate: %w", err)
		}
	}
	if err := tunePool(connection, cnf.MaxConns); err != nil {
		return nil, err
	}
	return connection, nil
}

// NewLendingConnection opens the MySQL database the lending generator fills.
func NewLendingConnection(dsn string, appEnv string) (*gorm.DB, error) {
	if dsn == "" {
		return nil, errors.New("DB_LENDING_URL is not set")
	}
	connection, err := gorm.Open(mysql.Open(dsn), gormConfig(appEnv))
	if err != nil {
		return nil, err
	}
	if err := tunePool(connection, 5); err != nil {
		return nil, err
	}
	return connection, nil
}

func gormConfig(appEnv string) *gorm.Config {
	var logMode logger.LogLevel
	if appEnv == "development" {
		logMode = logger.Info
	} else {
		logMode = logger.Silent
	}
	return &gorm.Config{
		Logger:                 logger.Default.LogMode(logMode),
		SkipDefaultTransaction: true,
		TranslateError:         true,
	}
}

func tunePool(connection *gorm.DB, maxConns int) error {
	sqlDB, err := connection.DB()
	if err != nil {
		return err
	}
	if maxConns <= 0 {
		maxConns = 25
	}
	sqlDB.SetMaxOpenConns(maxConns)
	sqlDB.SetMaxIdleConns(maxConns)
	sqlDB.SetConnMaxLifetime(1 * time.Hour)
	return nil
}

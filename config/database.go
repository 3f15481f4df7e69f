package config

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/community-board/api-go/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/plugin/opentelemetry/tracing"
)

const dbOpenAttempts = 8

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		d.Host, d.User, d.Password, d.Name, d.Port, d.SSLMode)
}

// OpenDB connects to PostgreSQL, retrying with exponential backoff while the
// database comes up.
func OpenDB(cfg DatabaseConfig) (*gorm.DB, error) {
	gormLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		},
	)

	var last error
	for i := 0; i < dbOpenAttempts; i++ {
		db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
			Logger: gormLogger,
		})
		if err == nil {
			sqlDB, err := db.DB()
			if err != nil {
				return nil, err
			}
			sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
			sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
			sqlDB.SetConnMaxLifetime(30 * time.Minute)

			if err := db.Use(tracing.NewPlugin()); err != nil {
				log.Printf("gorm tracing plugin disabled: %v", err)
			}
			return db, nil
		}
		last = err
		wait := time.Duration(1<<i) * time.Second
		log.Printf("database not ready (attempt %d/%d), retrying in %s: %v", i+1, dbOpenAttempts, wait, err)
		time.Sleep(wait)
	}
	return nil, fmt.Errorf("open database: %w", last)
}

// Migrate creates or updates the schema for every model.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.Post{},
		&models.PostImage{},
		&models.Comment{},
		&models.PostLike{},
	)
}

// InitDB opens and migrates the database, exiting the process on failure.
func InitDB(cfg DatabaseConfig) *gorm.DB {
	db, err := OpenDB(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	if err := Migrate(db); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}
	return db
}

// Ping reports whether the database answers.
func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

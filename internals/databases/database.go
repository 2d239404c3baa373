package database

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"basamu_backend/internals/configs"
)

var DB *gorm.DB

func ConnectDB(cfg configs.Config) (*gorm.DB, error) {
	log.Info().Str("host", cfg.DBHost).Msg("connecting to PostgreSQL")

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // PgBouncer transaction pooling
	}), &gorm.Config{
		Logger:         configs.NewGormLogger(),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	DB = db
	log.Info().Msg("database connected")
	return db, nil
}

func TunePool(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxIdleTime(60 * time.Second)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
	return nil
}

func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return sqlDB.PingContext(ctx)
}

// AutoMigrate creates or updates the given tables.
func AutoMigrate(db *gorm.DB, models ...any) error {
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto`).Error; err != nil {
		log.Warn().Err(err).Msg("pgcrypto extension not created")
	}
	return db.AutoMigrate(models...)
}

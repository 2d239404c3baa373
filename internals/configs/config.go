package configs

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Port   string `env:"PORT" envDefault:"8080"`
	AppEnv string `env:"APP_ENV" envDefault:"development"`

	DatabaseURL   string `env:"DATABASE_URL"`
	DBUser        string `env:"DB_USER"`
	DBPassword    string `env:"DB_PASSWORD"`
	DBHost        string `env:"DB_HOST" envDefault:"localhost"`
	DBPort        string `env:"DB_PORT" envDefault:"5432"`
	DBName        string `env:"DB_NAME"`
	DBSSLMode     string `env:"DB_SSLMODE" envDefault:"require"`
	DBAutoMigrate bool   `env:"DB_AUTO_MIGRATE" envDefault:"false"`

	JWTSecret        string        `env:"JWT_SECRET"`
	JWTRefreshSecret string        `env:"JWT_REFRESH_SECRET"`
	AccessTokenTTL   time.Duration `env:"ACCESS_TOKEN_TTL" envDefault:"15m"`
	RefreshTokenTTL  time.Duration `env:"REFRESH_TOKEN_TTL" envDefault:"168h"`
	GoogleClientID   string        `env:"GOOGLE_CLIENT_ID"`

	BlacklistTTLDays int `env:"TOKEN_BLACKLIST_TTL_DAYS" envDefault:"7"`

	StorageDriver      string `env:"STORAGE_DRIVER" envDefault:"supabase"`
	SupabaseProjectURL string `env:"SUPABASE_PROJECT_URL"`
	SupabaseServiceKey string `env:"SUPABASE_SERVICE_KEY"`
	OSSEndpoint        string `env:"ALI_OSS_ENDPOINT"`
	OSSAccessKey       string `env:"ALI_OSS_ACCESS_KEY"`
	OSSSecretKey       string `env:"ALI_OSS_SECRET_KEY"`
	OSSBucket          string `env:"ALI_OSS_BUCKET"`
	OSSPublicBase      string `env:"ALI_OSS_PUBLIC_BASE"`

	ImageMaxDimension int     `env:"IMAGE_MAX_DIMENSION" envDefault:"1600"`
	ImageWebPQuality  float32 `env:"IMAGE_WEBP_QUALITY" envDefault:"80"`

	CORSOrigins []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"http://localhost:5173,http://localhost:8080"`
	AdminEmails []string `env:"ADMIN_EMAILS" envSeparator:","`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogPretty bool   `env:"LOG_PRETTY" envDefault:"true"`
}

// App is filled by LoadEnv and read by code that has no other way to receive it
// (the auth middlewares mounted from route setup).
var App Config

// =======================
// ENV LOADER
// =======================
func LoadEnv() (Config, error) {
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		if err := godotenv.Load(); err != nil {
			log.Warn().Msg("no .env file found, using system environment")
		} else {
			log.Info().Msg(".env file loaded")
		}
	} else {
		log.Info().Msg("running on Railway, using system environment")
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if strings.TrimSpace(cfg.JWTSecret) == "" {
		return Config{}, fmt.Errorf("JWT_SECRET is not set")
	}
	if cfg.JWTRefreshSecret == "" {
		log.Warn().Msg("JWT_REFRESH_SECRET is not set, reusing JWT_SECRET")
		cfg.JWTRefreshSecret = cfg.JWTSecret
	}
	if cfg.GoogleClientID == "" {
		log.Warn().Msg("GOOGLE_CLIENT_ID is not set, Google sign-in disabled")
	}

	App = cfg
	return cfg, nil
}

// DSN builds the postgres connection string, preferring DATABASE_URL.
func (c Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&application_name=basamu&options=-c%%20statement_timeout%%3D5000",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode,
	)
}

func (c Config) IsProduction() bool {
	return strings.EqualFold(c.AppEnv, "production")
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if !exists && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

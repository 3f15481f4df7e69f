package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config is the process configuration read from the environment.
type Config struct {
	Port    string
	GinMode string

	Database DatabaseConfig

	JWTSecret       string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
	CookieSecure    bool

	DefaultPageSize   int
	MaxPageSize       int
	ListResolveViewer bool

	R2     *R2Config
	Google GoogleSettings

	OTELEndpoint    string
	OTELServiceName string
}

type DatabaseConfig struct {
	Host         string
	Port         string
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

type GoogleSettings struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
}

// Load reads envFile when it exists and then the process environment.
// Variables already set in the environment win over the file.
func Load(envFile string) *Config {
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil {
		log.Printf("no env file loaded from %s, using process environment", envFile)
	}

	return &Config{
		Port:    getEnv("PORT", "8080"),
		GinMode: getEnv("GIN_MODE", "release"),
		Database: DatabaseConfig{
			Host:         getEnv("DB_HOST", "localhost"),
			Port:         getEnv("DB_PORT", "5432"),
			User:         getEnv("DB_USER", "postgres"),
			Password:     os.Getenv("DB_PASSWORD"),
			Name:         getEnv("DB_NAME", "community"),
			SSLMode:      getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns: getEnvInt("DB_MAX_OPEN_CONNS", 40),
			MaxIdleConns: getEnvInt("DB_MAX_IDLE_CONNS", 10),
		},
		JWTSecret:         os.Getenv("JWT_SECRET"),
		AccessTokenTTL:    getEnvDuration("ACCESS_TOKEN_TTL", 30*time.Minute),
		RefreshTokenTTL:   getEnvDuration("REFRESH_TOKEN_TTL", 14*24*time.Hour),
		CookieSecure:      getEnvBool("COOKIE_SECURE", true),
		DefaultPageSize:   getEnvInt("DEFAULT_PAGE_SIZE", 20),
		MaxPageSize:       getEnvInt("MAX_PAGE_SIZE", 50),
		ListResolveViewer: getEnvBool("LIST_RESOLVE_VIEWER", false),
		R2:                GetR2Config(),
		Google: GoogleSettings{
			ClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
			ClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
			RedirectURL:  os.Getenv("GOOGLE_REDIRECT_URL"),
		},
		OTELEndpoint:    os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
		OTELServiceName: getEnv("OTEL_SERVICE_NAME", "community-api"),
	}
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	n, err := strconv.Atoi(os.Getenv(key))
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

func getEnvBool(key string, fallback bool) bool {
	b, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return b
}

// getEnvDuration accepts Go durations such as "15m" or "336h".
func getEnvDuration(key string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(os.Getenv(key))
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

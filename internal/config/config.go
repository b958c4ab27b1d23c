package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gold-day-go/pkg/logger"
)

type Config struct {
	HTTPPort       string
	Env            string
	AllowedOrigins []string
	DB             DBConfig
	Redis          RedisConfig
	GoldPrice      GoldPriceConfig
}

type DBConfig struct {
	DSN             string
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	TimeZone        string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type RedisConfig struct {
	URL          string
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type GoldPriceConfig struct {
	SourceURL      string
	FallbackURLs   []string
	APIToken       string
	FetchTimeout   time.Duration
	WindowHours    []int
	WindowGrace    time.Duration
	CacheTTL       time.Duration
	DefaultGram    int
	ManualDrawYear int
}

func Load(log logger.Logger) (Config, error) {
	if err := godotenv.Load(); err == nil {
		log.Info("dotenv: loaded .env")
	}

	return Config{
		HTTPPort:       getEnv("HTTP_PORT", "8080"),
		Env:            getEnv("ENV", "development"),
		AllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:5173"}),
		DB: DBConfig{
			DSN:             getEnv("DB_DSN", ""),
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnv("DB_PORT", "5432"),
			User:            getEnv("DB_USER", "postgres"),
			Password:        getEnv("DB_PASSWORD", "postgres"),
			Name:            getEnv("DB_NAME", "gold_day"),
			SSLMode:         getEnv("DB_SSLMODE", "disable"),
			TimeZone:        getEnv("DB_TIMEZONE", "UTC"),
			MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvDuration("DB_CONN_MAX_LIFETIME", 30*time.Minute),
		},
		Redis: RedisConfig{
			URL:          getEnv("REDIS_URL", ""),
			DialTimeout:  getEnvDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  getEnvDuration("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: getEnvDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		GoldPrice: GoldPriceConfig{
			SourceURL:      getEnv("GOLD_PRICE_URL", ""),
			FallbackURLs:   getEnvList("GOLD_PRICE_FALLBACK_URLS", nil),
			APIToken:       getEnv("GOLD_PRICE_TOKEN", ""),
			FetchTimeout:   getEnvDuration("GOLD_PRICE_FETCH_TIMEOUT", 10*time.Second),
			WindowHours:    getEnvIntList("GOLD_PRICE_WINDOW_HOURS", []int{8, 12, 16}),
			WindowGrace:    getEnvDuration("GOLD_PRICE_WINDOW_GRACE", 30*time.Minute),
			CacheTTL:       getEnvDuration("GOLD_PRICE_CACHE_TTL", 8*time.Hour),
			DefaultGram:    getEnvInt("GOLD_PRICE_DEFAULT_GRAM", 2570),
			ManualDrawYear: getEnvInt("MANUAL_DRAW_START_YEAR", 0),
		},
	}, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvList(key string, fallback []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item != "" {
			result = append(result, item)
		}
	}
	if len(result) == 0 {
		return fallback
	}
	return result
}

func getEnvIntList(key string, fallback []int) []int {
	items := getEnvList(key, nil)
	if items == nil {
		return fallback
	}
	result := make([]int, 0, len(items))
	for _, item := range items {
		parsed, err := strconv.Atoi(item)
		if err != nil {
			return fallback
		}
		result = append(result, parsed)
	}
	return result
}

func (c DBConfig) GetDSN() string {
	if c.DSN != "" {
		return c.DSN
	}
	return "host=" + c.Host +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.Name +
		" port=" + c.Port +
		" sslmode=" + c.SSLMode +
		" TimeZone=" + c.TimeZone
}

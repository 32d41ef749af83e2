package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config - структура для хранения конфигурации приложения
type Config struct {
	DatabaseURL string `env:"DATABASE_URL"`
	DBMaxConns  int32  `env:"DB_MAX_CONNS" envDefault:"10"`
	HTTPPort    string `env:"HTTP_PORT" envDefault:"8080"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// Redis Config
	RedisAddr        string        `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPass        string        `env:"REDIS_PASSWORD"`
	RedisDB          int           `env:"REDIS_DB" envDefault:"0"`
	IncidentCacheTTL time.Duration `env:"INCIDENT_CACHE_TTL" envDefault:"5m"`

	// Webhook Config
	WebhookURL        string        `env:"WEBHOOK_URL"`
	WebhookSecret     string        `env:"WEBHOOK_SECRET"`
	WebhookTimeout    time.Duration `env:"WEBHOOK_TIMEOUT" envDefault:"5s"`
	WebhookMaxRetries int           `env:"WEBHOOK_MAX_RETRIES" envDefault:"3"`
	WebhookBaseDelay  time.Duration `env:"WEBHOOK_BASE_DELAY" envDefault:"1s"`

	// Advisory Config
	AdvisoryMode    string        `env:"ADVISORY_MODE" envDefault:"auto"`
	HeuristicDelay  time.Duration `env:"HEURISTIC_DELAY" envDefault:"500ms"`
	AIAPIKey        string        `env:"AI_API_KEY"`
	AIBaseURL       string        `env:"AI_BASE_URL" envDefault:"https://generativelanguage.googleapis.com/v1beta/openai"`
	AIModel         string        `env:"AI_MODEL" envDefault:"gemini-2.5-flash"`
	AITimeout       time.Duration `env:"AI_TIMEOUT" envDefault:"30s"`
	ORSAPIKey       string        `env:"ORS_API_KEY"`
	ORSBaseURL      string        `env:"ORS_BASE_URL" envDefault:"https://api.openrouteservice.org"`
	ORSTimeout      time.Duration `env:"ORS_TIMEOUT" envDefault:"10s"`

	// Signals Config
	SignalsPageSize   int `env:"SIGNALS_PAGE_SIZE" envDefault:"100"`
	OverrideThreshold int `env:"OVERRIDE_DENSITY_THRESHOLD" envDefault:"70"`

	// Kafka Config
	KafkaBrokers       []string `env:"KAFKA_BROKERS"`
	KafkaIncidentTopic string   `env:"KAFKA_INCIDENT_TOPIC" envDefault:"incidents"`
	KafkaSignalTopic   string   `env:"KAFKA_SIGNAL_TOPIC" envDefault:"traffic-signals"`

	// S3 Config
	S3Bucket         string `env:"AWS_BUCKET"`
	S3Region         string `env:"AWS_REGION" envDefault:"us-east-1"`
	S3Endpoint       string `env:"AWS_ENDPOINT"`
	S3AccessKey      string `env:"AWS_ACCESS_KEY"`
	S3SecretKey      string `env:"AWS_SECRET_KEY"`
	S3PublicEndpoint string `env:"AWS_PUBLIC_ENDPOINT"`
	MaxPhotoBytes    int64  `env:"MAX_PHOTO_BYTES" envDefault:"5242880"`

	// API Keys for authentication
	APIKeys []string `env:"API_KEYS"`

	// CORS
	CORSOrigins []string `env:"CORS_ORIGINS" envDefault:"*"`
}

// LoadConfig загружает конфигурацию из переменных окружения и .env файла
func LoadConfig() (*Config, error) {
	// Загрузка переменных окружения из .env файла (если есть)
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("ошибка загрузки файла .env: %w", err)
	}

	cfg := &Config{
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		DBMaxConns:         int32(getEnvAsInt("DB_MAX_CONNS", 10)),
		HTTPPort:           getEnv("HTTP_PORT", "8080"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		RedisAddr:          getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPass:          os.Getenv("REDIS_PASSWORD"),
		RedisDB:            getEnvAsInt("REDIS_DB", 0),
		IncidentCacheTTL:   getEnvAsDuration("INCIDENT_CACHE_TTL", 5*time.Minute),
		WebhookURL:         os.Getenv("WEBHOOK_URL"),
		WebhookSecret:      os.Getenv("WEBHOOK_SECRET"),
		WebhookTimeout:     getEnvAsDuration("WEBHOOK_TIMEOUT", 5*time.Second),
		WebhookMaxRetries:  getEnvAsInt("WEBHOOK_MAX_RETRIES", 3),
		WebhookBaseDelay:   getEnvAsDuration("WEBHOOK_BASE_DELAY", time.Second),
		AdvisoryMode:       strings.ToLower(getEnv("ADVISORY_MODE", "auto")),
		HeuristicDelay:     getEnvAsDuration("HEURISTIC_DELAY", 500*time.Millisecond),
		AIAPIKey:           os.Getenv("AI_API_KEY"),
		AIBaseURL:          getEnv("AI_BASE_URL", "https://generativelanguage.googleapis.com/v1beta/openai"),
		AIModel:            getEnv("AI_MODEL", "gemini-2.5-flash"),
		AITimeout:          getEnvAsDuration("AI_TIMEOUT", 30*time.Second),
		ORSAPIKey:          os.Getenv("ORS_API_KEY"),
		ORSBaseURL:         getEnv("ORS_BASE_URL", "https://api.openrouteservice.org"),
		ORSTimeout:         getEnvAsDuration("ORS_TIMEOUT", 10*time.Second),
		SignalsPageSize:    getEnvAsInt("SIGNALS_PAGE_SIZE", 100),
		OverrideThreshold:  getEnvAsInt("OVERRIDE_DENSITY_THRESHOLD", 70),
		KafkaBrokers:       getEnvAsList("KAFKA_BROKERS"),
		KafkaIncidentTopic: getEnv("KAFKA_INCIDENT_TOPIC", "incidents"),
		KafkaSignalTopic:   getEnv("KAFKA_SIGNAL_TOPIC", "traffic-signals"),
		S3Bucket:           os.Getenv("AWS_BUCKET"),
		S3Region:           getEnv("AWS_REGION", "us-east-1"),
		S3Endpoint:         os.Getenv("AWS_ENDPOINT"),
		S3AccessKey:        os.Getenv("AWS_ACCESS_KEY"),
		S3SecretKey:        os.Getenv("AWS_SECRET_KEY"),
		S3PublicEndpoint:   os.Getenv("AWS_PUBLIC_ENDPOINT"),
		MaxPhotoBytes:      int64(getEnvAsInt("MAX_PHOTO_BYTES", 5<<20)),
		APIKeys:            getEnvAsList("API_KEYS"),
		CORSOrigins:        getEnvAsList("CORS_ORIGINS"),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}

	if len(cfg.CORSOrigins) == 0 {
		cfg.CORSOrigins = []string{"*"}
	}
	for _, origin := range cfg.CORSOrigins {
		if origin != "*" && !strings.HasPrefix(origin, "http://") && !strings.HasPrefix(origin, "https://") {
			return nil, fmt.Errorf("CORS_ORIGINS: origin %q должен начинаться с http:// или https://", origin)
		}
	}

	switch cfg.AdvisoryMode {
	case "auto", "heuristic", "delegated":
	default:
		return nil, fmt.Errorf("неизвестный ADVISORY_MODE: %q", cfg.AdvisoryMode)
	}

	return cfg, nil
}

// getEnv возвращает значение переменной окружения или значение по умолчанию
func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt возвращает значение переменной окружения как int или значение по умолчанию
func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsDuration возвращает значение переменной окружения как time.Duration или значение по умолчанию
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if durationValue, err := time.ParseDuration(value); err == nil {
			return durationValue
		}
	}
	return defaultValue
}

// getEnvAsList разбирает список через запятую, пустые элементы отбрасываются
func getEnvAsList(key string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		return nil
	}
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

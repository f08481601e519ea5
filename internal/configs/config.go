package configs

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/beyondeth/shop/internal/constants"

	"github.com/joho/godotenv"
)

type RESTConfig struct {
	Port               string
	CORSAllowedOrigins []string
}

// PlatformConfig - удаленная коммерческая платформа
type PlatformConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
	// StoreBaseURL - публичный адрес витрины, нужен для callback-ссылок оформления заказа
	StoreBaseURL string
}

type StorefrontConfig struct {
	CartClearWindow time.Duration
	RefreshDelay    time.Duration
	SessionTTL      time.Duration
	SessionSweep    time.Duration
}

type CacheConfig struct {
	TTL           time.Duration
	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

type RabbitMQConfig struct {
	Enabled        bool
	URL            string
	EventsExchange string
}

type PostgresConfig struct {
	DatabaseURL string
	MaxConns    int
}

type StdoutLogConfig struct {
	Level  string
	IsJSON bool
}

type FluentBitConfig struct {
	Host    string
	Port    int
	Enabled bool
	Level   string
}

// AppConfig хранит всю конфигурацию приложения
type AppConfig struct {
	AppName      string
	Rest         RESTConfig
	Platform     PlatformConfig
	Storefront   StorefrontConfig
	Cache        CacheConfig
	RabbitMQ     RabbitMQConfig
	Postgres     PostgresConfig
	StdoutLogger StdoutLogConfig
	FluentBit    FluentBitConfig
}

// LoadConfig загружает конфигурацию из .env (если он есть) и переменных окружения
func LoadConfig(envPath ...string) (*AppConfig, error) {
	var err error
	if len(envPath) > 0 {
		err = godotenv.Load(envPath[0])
	} else {
		err = godotenv.Load()
	}

	// в контейнере .env обычно нет, переменные приходят из окружения
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("could not load .env file (path: %v): %w", envPath, err)
		}
		log.Printf("Info: .env file not found (path: %v), using process environment\n", envPath)
	}

	cfg := &AppConfig{}

	cfg.AppName = getEnvAsString("APP_NAME", "storefront")

	cfg.Rest.Port = getEnvAsString("PORT", "3000")
	cfg.Rest.CORSAllowedOrigins = getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"})

	cfg.Platform.BaseURL = os.Getenv("PLATFORM_API_URL")
	if cfg.Platform.BaseURL == "" {
		return nil, fmt.Errorf("PLATFORM_API_URL environment variable is required")
	}
	cfg.Platform.APIKey = os.Getenv("PLATFORM_API_KEY")
	cfg.Platform.Timeout = getEnvAsDuration("PLATFORM_TIMEOUT", 10*time.Second)
	cfg.Platform.StoreBaseURL = getEnvAsString("STORE_BASE_URL", "http://localhost:"+cfg.Rest.Port)

	cfg.Storefront.CartClearWindow = getEnvAsDuration("CART_CLEAR_WINDOW", 5*time.Minute)
	cfg.Storefront.RefreshDelay = getEnvAsDuration("REFRESH_DELAY", 2*time.Second)
	cfg.Storefront.SessionTTL = getEnvAsDuration("SESSION_TTL", 30*time.Minute)
	cfg.Storefront.SessionSweep = getEnvAsDuration("SESSION_SWEEP_INTERVAL", time.Minute)
	if cfg.Storefront.SessionSweep <= 0 {
		cfg.Storefront.SessionSweep = time.Minute
	}

	cfg.Cache.TTL = getEnvAsDuration("CACHE_TTL", time.Minute)
	cfg.Cache.RedisAddr = os.Getenv("REDIS_ADDR")
	cfg.Cache.RedisPassword = os.Getenv("REDIS_PASSWORD")
	cfg.Cache.RedisDB = getEnvAsInt("REDIS_DB", 0)

	cfg.RabbitMQ.Enabled = getEnvAsBool("RABBITMQ_ENABLED", false)
	cfg.RabbitMQ.URL = os.Getenv("RABBITMQ_URL")
	cfg.RabbitMQ.EventsExchange = getEnvAsString("EVENTS_EXCHANGE", constants.EventsExchange)
	if cfg.RabbitMQ.Enabled && cfg.RabbitMQ.URL == "" {
		return nil, fmt.Errorf("RABBITMQ_URL environment variable is required when RABBITMQ_ENABLED is true")
	}

	cfg.Postgres.DatabaseURL = os.Getenv("DATABASE_URL")
	cfg.Postgres.MaxConns = getEnvAsInt("DATABASE_MAX_CONNS", 5)

	cfg.StdoutLogger.Level = getEnvAsString("STDOUT_LOG_LEVEL", "debug")
	cfg.StdoutLogger.IsJSON = getEnvAsBool("STDOUT_LOG_JSON", false)

	cfg.FluentBit.Enabled = getEnvAsBool("FLUENTBIT_ENABLED", false)
	if cfg.FluentBit.Enabled {
		cfg.FluentBit.Host = os.Getenv("FLUENTBIT_HOST")
		if cfg.FluentBit.Host == "" {
			log.Println("WARNING: FLUENTBIT_ENABLED is true, but FLUENTBIT_HOST is not set. Disabling Fluent Bit.")
			cfg.FluentBit.Enabled = false
		}
		cfg.FluentBit.Port = getEnvAsInt("FLUENTBIT_PORT", 24224)
		cfg.FluentBit.Level = getEnvAsString("FLUENTBIT_LOG_LEVEL", "info")
	}

	return cfg, nil
}

func getEnvAsString(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt читает переменную окружения как int или возвращает значение по умолчанию
func getEnvAsInt(key string, defaultValue int) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}

	valueInt, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Environment variable %s (value: %s) could not be parsed as int: %v. Using default value: %d\n", key, valueStr, err, defaultValue)
		return defaultValue
	}
	return valueInt
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	valBool, err := strconv.ParseBool(valStr)
	if err != nil {
		log.Printf("Warning: Environment variable %s (value: %s) could not be parsed as bool: %v. Using default value: %t\n", key, valStr, err, defaultValue)
		return defaultValue
	}
	return valBool
}

// getEnvAsDuration принимает "5m", "2s", а также целое число миллисекунд
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valStr, exists := os.LookupEnv(key)
	if !exists || valStr == "" {
		return defaultValue
	}
	if ms, err := strconv.Atoi(valStr); err == nil {
		return time.Duration(ms) * time.Millisecond
	}
	d, err := time.ParseDuration(valStr)
	if err != nil || d < 0 {
		log.Printf("Warning: Environment variable %s (value: %s) could not be parsed as duration. Using default value: %s\n", key, valStr, defaultValue)
		return defaultValue
	}
	return d
}

func getEnvAsList(key string, defaultValue []string) []string {
	valStr, exists := os.LookupEnv(key)
	if !exists || strings.TrimSpace(valStr) == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(valStr, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

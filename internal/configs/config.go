package configs

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/albertoDabu/crm-immobiliaria/internal/constants"
	"github.com/albertoDabu/crm-immobiliaria/internal/core/domain"
)

const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"

	AuthModeJWT    = "jwt"
	AuthModeHeader = "header"
)

type DBconfig struct {
	URL      string
	MaxConns int32
}

type RESTconfig struct {
	PORT           string
	AllowedOrigins []string
}

type StoreConfig struct {
	Driver string
}

type AuthConfig struct {
	Mode      string
	JWTSecret string
}

type RabbitMQConfig struct {
	Enabled  bool
	URL      string
	Exchange string
}

type OutreachConfig struct {
	// SimulatedDelay - пауза перед записью рассылки подобранным покупателям.
	SimulatedDelay time.Duration
}

type StdoutLogConfig struct {
	Level string
	JSON  bool
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
	Rest         RESTconfig
	Store        StoreConfig
	Database     DBconfig
	Auth         AuthConfig
	RabbitMQ     RabbitMQConfig
	Outreach     OutreachConfig
	StatsWindows domain.StatsWindows
	FluentBit    FluentBitConfig
	StdoutLogger StdoutLogConfig
}

// LoadConfig загружает конфигурацию из переменных окружения.
// Файл .env необязателен: если его нет, используются только переменные процесса.
func LoadConfig(envPath ...string) (*AppConfig, error) {
	var err error
	if len(envPath) > 0 {
		err = godotenv.Load(envPath[0])
	} else {
		err = godotenv.Load()
	}
	if err != nil {
		log.Printf("Info: Could not load .env file (path: %v): %v. Using process environment.\n", envPath, err)
	}

	cfg := &AppConfig{}
	cfg.AppName = getEnvAsString("APP_NAME", "crm-service")

	cfg.Rest.PORT = getEnvAsString("PORT", "8080")
	cfg.Rest.AllowedOrigins = getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:5173"})

	cfg.Store.Driver = strings.ToLower(getEnvAsString("STORE_DRIVER", StoreDriverPostgres))
	switch cfg.Store.Driver {
	case StoreDriverPostgres:
		cfg.Database.URL = os.Getenv("DATABASE_URL")
		if cfg.Database.URL == "" {
			return nil, fmt.Errorf("DATABASE_URL environment variable is required when STORE_DRIVER=postgres")
		}
		cfg.Database.MaxConns = int32(getEnvAsInt("DB_MAX_CONNS", 10))
	case StoreDriverMemory:
	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.Store.Driver)
	}

	cfg.Auth.Mode = strings.ToLower(getEnvAsString("AUTH_MODE", AuthModeJWT))
	switch cfg.Auth.Mode {
	case AuthModeJWT:
		cfg.Auth.JWTSecret = os.Getenv("JWT_SECRET")
		if cfg.Auth.JWTSecret == "" {
			return nil, fmt.Errorf("JWT_SECRET environment variable is required when AUTH_MODE=jwt")
		}
	case AuthModeHeader:
	default:
		return nil, fmt.Errorf("unknown AUTH_MODE %q", cfg.Auth.Mode)
	}

	cfg.RabbitMQ.Enabled = getEnvAsBool("RABBITMQ_ENABLED", false)
	if cfg.RabbitMQ.Enabled {
		cfg.RabbitMQ.URL = os.Getenv("RABBITMQ_URL")
		if cfg.RabbitMQ.URL == "" {
			return nil, fmt.Errorf("RABBITMQ_URL environment variable is required when RABBITMQ_ENABLED=true")
		}
		cfg.RabbitMQ.Exchange = getEnvAsString("RABBITMQ_EXCHANGE", constants.ExchangeCRM)
	}

	cfg.Outreach.SimulatedDelay = getEnvAsDuration("BULK_SIMULATED_DELAY", 1500*time.Millisecond)

	cfg.StatsWindows = domain.StatsWindows{
		RecentDays:    getEnvAsInt("DEFAULT_RECENT_DAYS", domain.DefaultRecentDays),
		AttentionDays: getEnvAsInt("DEFAULT_ATTENTION_DAYS", domain.DefaultAttentionDays),
	}
	if err := cfg.StatsWindows.Validate(); err != nil {
		return nil, fmt.Errorf("invalid default statistics windows: %w", err)
	}

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

	cfg.StdoutLogger.Level = getEnvAsString("STDOUT_LOG_LEVEL", "debug")
	cfg.StdoutLogger.JSON = getEnvAsBool("LOG_JSON", false)

	return cfg, nil
}

func getEnvAsString(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

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

// getEnvAsBool читает переменную окружения как bool или возвращает значение по умолчанию
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

// getEnvAsDuration принимает "1500ms", "2s" и т.п.
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	d, err := time.ParseDuration(valStr)
	if err != nil || d < 0 {
		log.Printf("Warning: Environment variable %s (value: %s) is not a valid duration. Using default value: %s\n", key, valStr, defaultValue)
		return defaultValue
	}
	return d
}

// getEnvAsList разбирает список через запятую, пустые элементы отбрасываются.
func getEnvAsList(key string, defaultValue []string) []string {
	valStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(valStr, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}

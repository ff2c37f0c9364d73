package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config содержит всю конфигурацию приложения
type Config struct {
	API        APIConfig
	TokenStore TokenStoreConfig
	Redis      RedisConfig
	UI         UIConfig
	Logger     LoggerConfig
}

// APIConfig содержит настройки подключения к backend'у
type APIConfig struct {
	BaseURL string
	Timeout time.Duration
}

// TokenStoreBackend - тип долговременного хранилища токена
type TokenStoreBackend string

const (
	TokenStoreFile  TokenStoreBackend = "file"
	TokenStoreRedis TokenStoreBackend = "redis"
)

// TokenStoreConfig содержит настройки хранилища токена сессии.
// Хранится только токен - права заново выводятся из него при старте.
type TokenStoreConfig struct {
	Backend  TokenStoreBackend
	FilePath string
}

// RedisConfig содержит настройки подключения к Redis
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// UIConfig содержит настройки списочных экранов
type UIConfig struct {
	PageSize int
}

// LoggerConfig содержит настройки логирования
type LoggerConfig struct {
	Level  string
	Format string // json или console
	Output string // stdout или путь к файлу
}

// Load загружает конфигурацию из переменных окружения
func Load() (*Config, error) {
	// Загружаем .env файл (игнорируем ошибку, если файла нет)
	_ = godotenv.Load()

	cfg := &Config{
		API: APIConfig{
			BaseURL: getEnv("API_BASE_URL", "http://localhost:8080/api"),
			Timeout: getDurationEnv("API_TIMEOUT", 30*time.Second),
		},
		TokenStore: TokenStoreConfig{
			Backend:  TokenStoreBackend(getEnv("TOKEN_STORE", "file")),
			FilePath: getEnv("TOKEN_FILE", defaultTokenFile()),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getIntEnv("REDIS_DB", 0),
		},
		UI: UIConfig{
			PageSize: getIntEnv("PAGE_SIZE", 10),
		},
		Logger: LoggerConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "console"),
			Output: getEnv("LOG_OUTPUT", "stdout"),
		},
	}

	if cfg.TokenStore.Backend != TokenStoreFile && cfg.TokenStore.Backend != TokenStoreRedis {
		return nil, fmt.Errorf("unknown token store backend %q", cfg.TokenStore.Backend)
	}

	return cfg, nil
}

// Address возвращает адрес Redis
func (c *RedisConfig) Address() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// defaultTokenFile - путь к файлу токена в домашнем каталоге пользователя
func defaultTokenFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".workshop_token"
	}
	return home + "/.workshop_token"
}

// Вспомогательные функции для чтения переменных окружения

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

package config

import (
	"fmt"
	"log"

	"github.com/spf13/viper"
)

// Config хранит все настройки приложения.
// Структура неизменяемая после загрузки: компоненты получают её через
// инъекцию при старте и не читают глобальное состояние.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	AI       AIConfig
}

// ServerConfig содержит настройки HTTP сервера
type ServerConfig struct {
	Port         string
	ReadTimeout  int
	WriteTimeout int
}

// DatabaseConfig содержит настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// RedisConfig содержит настройки подключения к Redis.
// Пустой Addr означает, что кеш отключен.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// JWTConfig содержит настройки JWT
type JWTConfig struct {
	Secret        string `mapstructure:"secret"`
	ExpirationHrs int    `mapstructure:"expirationHrs"`
}

// AIConfig содержит настройки клиента генеративного сервиса.
// Пустой APIKey допустим при загрузке: генерация викторин вернет
// ошибку конфигурации до любого сетевого вызова.
type AIConfig struct {
	APIKey      string `mapstructure:"api_key"`
	Model       string `mapstructure:"model"`
	BaseURL     string `mapstructure:"base_url"`
	MaxAttempts int    `mapstructure:"max_attempts"`
	BaseDelayMs int    `mapstructure:"base_delay_ms"`
	TimeoutSec  int    `mapstructure:"timeout_sec"`
}

// PostgresConnectionString формирует строку подключения к PostgreSQL
func (d *DatabaseConfig) PostgresConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

// Load загружает конфигурацию из файла и переменных окружения
func Load(configPath string) (*Config, error) {
	vip := viper.New() // Новый экземпляр Viper, чтобы избежать глобального состояния

	// Значения по умолчанию
	vip.SetDefault("server.port", "8080")
	vip.SetDefault("server.readTimeout", 10)
	vip.SetDefault("server.writeTimeout", 10)
	vip.SetDefault("database.sslmode", "disable")
	vip.SetDefault("jwt.expirationHrs", 1)
	vip.SetDefault("ai.model", "gemini-2.5-flash-preview-09-2025")
	vip.SetDefault("ai.max_attempts", 5)
	vip.SetDefault("ai.base_delay_ms", 1000)
	vip.SetDefault("ai.timeout_sec", 60)

	// Привязываем переменные окружения явно
	vip.BindEnv("server.port", "SERVER_PORT")
	vip.BindEnv("server.readTimeout", "SERVER_READ_TIMEOUT")
	vip.BindEnv("server.writeTimeout", "SERVER_WRITE_TIMEOUT")

	vip.BindEnv("database.host", "DATABASE_HOST")
	vip.BindEnv("database.port", "DATABASE_PORT")
	vip.BindEnv("database.user", "DATABASE_USER")
	vip.BindEnv("database.password", "DATABASE_PASSWORD")
	vip.BindEnv("database.dbname", "DATABASE_DBNAME")
	vip.BindEnv("database.sslmode", "DATABASE_SSLMODE")

	vip.BindEnv("redis.addr", "REDIS_ADDR")
	vip.BindEnv("redis.password", "REDIS_PASSWORD")
	vip.BindEnv("redis.db", "REDIS_DB")

	vip.BindEnv("jwt.secret", "JWT_SECRET")
	vip.BindEnv("jwt.expirationHrs", "JWT_EXPIRATIONHRS")

	vip.BindEnv("ai.api_key", "GEMINI_API_KEY")
	vip.BindEnv("ai.model", "AI_MODEL")
	vip.BindEnv("ai.base_url", "AI_BASE_URL")
	vip.BindEnv("ai.max_attempts", "AI_MAX_ATTEMPTS")
	vip.BindEnv("ai.base_delay_ms", "AI_BASE_DELAY_MS")
	vip.BindEnv("ai.timeout_sec", "AI_TIMEOUT_SEC")

	// Файл конфигурации опционален: BindEnv покрывает продовый сценарий
	if configPath != "" {
		vip.SetConfigFile(configPath)
		if err := vip.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); ok {
				log.Printf("Файл конфигурации %q не найден, используются переменные окружения/умолчания.", configPath)
			} else {
				log.Printf("Предупреждение: не удалось прочитать файл конфигурации %q: %v", configPath, err)
			}
		}
	}

	var cfg Config
	if err := vip.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Проверка обязательных параметров
	if cfg.JWT.Secret == "" {
		return nil, fmt.Errorf("JWT secret is required in config (check JWT_SECRET env var)")
	}
	if cfg.Database.Host == "" || cfg.Database.DBName == "" || cfg.Database.User == "" {
		return nil, fmt.Errorf("database configuration (host, dbname, user) is incomplete in config (check DATABASE_HOST, DATABASE_DBNAME, DATABASE_USER env vars)")
	}
	if cfg.AI.APIKey == "" {
		// Не фатально: генерация вернет ошибку конфигурации, остальное API работает
		log.Println("Warning: GEMINI_API_KEY is not set; quiz generation will be unavailable.")
	}

	return &cfg, nil
}

package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	AI         AIConfig         `mapstructure:"ai"`
	Chat       ChatConfig       `mapstructure:"chat"`
	Providers  ProvidersConfig  `mapstructure:"providers"`
	Cache      CacheConfig      `mapstructure:"cache"`
	Telegram   TelegramConfig   `mapstructure:"telegram"`
	Logging    LoggingConfig    `mapstructure:"logging"`
	Monitoring MonitoringConfig `mapstructure:"monitoring"`
	I18n       I18nConfig       `mapstructure:"i18n"`
}

type ServerConfig struct {
	Port         int           `mapstructure:"port"`
	StaticDir    string        `mapstructure:"static_dir"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

type AIConfig struct {
	BaseURL     string        `mapstructure:"base_url"`
	APIKey      string        `mapstructure:"api_key"`
	Model       string        `mapstructure:"model"`
	Temperature float64       `mapstructure:"temperature"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

type ChatConfig struct {
	MaxUserLength  int    `mapstructure:"max_user_length"`
	HistoryWindow  int    `mapstructure:"history_window"`
	Timezone       string `mapstructure:"timezone"`
	SearchLanguage string `mapstructure:"search_language"`
}

type ProvidersConfig struct {
	Currency ProviderConfig `mapstructure:"currency"`
	Search   ProviderConfig `mapstructure:"search"`
	Wiki     ProviderConfig `mapstructure:"wiki"`
}

type ProviderConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type CacheConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	Backend string        `mapstructure:"backend"`
	TTL     time.Duration `mapstructure:"ttl"`
	MaxSize int           `mapstructure:"max_size"`
	Redis   RedisConfig   `mapstructure:"redis"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type TelegramConfig struct {
	Token         string `mapstructure:"token"`
	UpdateTimeout int    `mapstructure:"update_timeout"`
}

type LoggingConfig struct {
	Level  string     `mapstructure:"level"`
	Format string     `mapstructure:"format"`
	Output string     `mapstructure:"output"`
	File   FileConfig `mapstructure:"file"`
}

type FileConfig struct {
	Path       string `mapstructure:"path"`
	MaxSize    int    `mapstructure:"max_size"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"`
}

type MonitoringConfig struct {
	Metrics MetricsConfig `mapstructure:"metrics"`
}

type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Port    int    `mapstructure:"port"`
	Path    string `mapstructure:"path"`
}

type I18nConfig struct {
	DefaultLanguage string   `mapstructure:"default_language"`
	Directory       string   `mapstructure:"directory"`
	Languages       []string `mapstructure:"languages"`
}

// LoadConfig loads configuration from file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	setDefaults(v)

	v.AutomaticEnv()
	v.BindEnv("server.port", "PORT")
	v.BindEnv("ai.api_key", "GROQ_API_KEY")
	v.BindEnv("ai.model", "GROQ_MODEL")
	v.BindEnv("telegram.token", "TELEGRAM_BOT_TOKEN")
	v.BindEnv("cache.redis.addr", "REDIS_ADDR")
	v.BindEnv("cache.redis.password", "REDIS_PASSWORD")
	v.BindEnv("cache.redis.db", "REDIS_DB")

	// Config file is optional; env and defaults are enough to run
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 5000)
	v.SetDefault("server.static_dir", "web/static")
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 60*time.Second)

	v.SetDefault("ai.base_url", "https://api.groq.com/openai/v1")
	v.SetDefault("ai.model", "llama-3.1-8b-instant")
	v.SetDefault("ai.temperature", 0.4)
	v.SetDefault("ai.timeout", 30*time.Second)

	v.SetDefault("chat.max_user_length", 600)
	v.SetDefault("chat.history_window", 6)
	v.SetDefault("chat.timezone", "Europe/Istanbul")
	v.SetDefault("chat.search_language", "tr")

	v.SetDefault("providers.currency.base_url", "https://www.tcmb.gov.tr")
	v.SetDefault("providers.currency.timeout", 10*time.Second)
	v.SetDefault("providers.search.base_url", "https://www.google.com")
	v.SetDefault("providers.search.timeout", 10*time.Second)
	v.SetDefault("providers.wiki.base_url", "https://tr.wikipedia.org")
	v.SetDefault("providers.wiki.timeout", 10*time.Second)

	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.backend", "memory")
	v.SetDefault("cache.ttl", 10*time.Minute)
	v.SetDefault("cache.max_size", 1000)

	v.SetDefault("telegram.update_timeout", 60)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
	v.SetDefault("logging.output", "stdout")

	v.SetDefault("monitoring.metrics.enabled", false)
	v.SetDefault("monitoring.metrics.port", 9090)
	v.SetDefault("monitoring.metrics.path", "/metrics")

	v.SetDefault("i18n.default_language", "tr")
	v.SetDefault("i18n.directory", "configs/i18n")
	v.SetDefault("i18n.languages", []string{"tr", "en"})
}

func validateConfig(cfg *Config) error {
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", cfg.Server.Port)
	}
	if cfg.Chat.MaxUserLength <= 0 {
		return fmt.Errorf("chat.max_user_length must be positive")
	}
	if cfg.Chat.HistoryWindow <= 0 {
		return fmt.Errorf("chat.history_window must be positive")
	}
	switch cfg.Cache.Backend {
	case "memory", "redis":
	default:
		return fmt.Errorf("unsupported cache backend: %s", cfg.Cache.Backend)
	}
	return nil
}

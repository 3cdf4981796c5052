package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig     `mapstructure:"server"`
	Database  DatabaseConfig   `mapstructure:"database"`
	Redis     RedisConfig      `mapstructure:"redis"`
	Log       LogConfig        `mapstructure:"log"`
	Tracing   TracingConfig    `mapstructure:"tracing"`
	Analytics AnalyticsConfig  `mapstructure:"analytics"`
	Providers []ProviderConfig `mapstructure:"providers"`
	Seed      SeedConfig       `mapstructure:"seed"`
}

type ServerConfig struct {
	Port            string        `mapstructure:"port"`
	Env             string        `mapstructure:"env"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	CheckUpdates    bool          `mapstructure:"check_updates"`
}

type DatabaseConfig struct {
	DSN string `mapstructure:"dsn"`
	// QueryTimeout bounds every store call made while serving a request.
	QueryTimeout time.Duration `mapstructure:"query_timeout"`
}

// RedisConfig enables the shared override slot used when several replicas run side by side.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Enabled  bool   `mapstructure:"enabled"`
	Prefix   string `mapstructure:"prefix"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}

type TracingConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	ServiceName string `mapstructure:"service_name"`
}

type AnalyticsConfig struct {
	Enabled       bool          `mapstructure:"enabled"`
	BufferSize    int           `mapstructure:"buffer_size"`
	BatchSize     int           `mapstructure:"batch_size"`
	FlushInterval time.Duration `mapstructure:"flush_interval"`
}

// ProviderConfig describes one response strategy. ID is the provider name requests are
// routed on; Type selects the implementation, so one type can back several IDs.
type ProviderConfig struct {
	ID      string `mapstructure:"id" validate:"required,excludesall=/"`
	Type    string `mapstructure:"type" validate:"required"`
	Name    string `mapstructure:"name"`
	Enabled bool   `mapstructure:"enabled"`
}

// SeedConfig lists registry entries synced at startup and sample policies for cmd/seed.
type SeedConfig struct {
	Models   []string       `mapstructure:"models"`
	Policies []PolicyConfig `mapstructure:"policies"`
}

type PolicyConfig struct {
	SourceModel   string `mapstructure:"source_model"`
	Pattern       string `mapstructure:"pattern"`
	RedirectModel string `mapstructure:"redirect_model"`
}

// LoadConfig reads configuration from file or environment variables.
// CONFIG_FILE points at an explicit file; otherwise config.yaml is searched for.
func LoadConfig() (*Config, error) {
	// Load .env file if present
	_ = godotenv.Load()

	v := viper.New()

	if file := os.Getenv("CONFIG_FILE"); file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "5006")
	v.SetDefault("server.env", "development")
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("server.check_updates", false)

	v.SetDefault("database.dsn", "file:router.db?cache=shared&mode=rwc&_journal_mode=WAL&_busy_timeout=5000")
	v.SetDefault("database.query_timeout", 3*time.Second)

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.prefix", "prompt-router:")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.color", true)

	v.SetDefault("tracing.enabled", false)
	v.SetDefault("tracing.service_name", "prompt-router")

	v.SetDefault("analytics.enabled", true)
	v.SetDefault("analytics.buffer_size", 1000)
	v.SetDefault("analytics.batch_size", 50)
	v.SetDefault("analytics.flush_interval", 5*time.Second)

	v.SetDefault("providers", []map[string]interface{}{
		{"id": "openai", "type": "openai", "name": "OpenAI", "enabled": true},
		{"id": "anthropic", "type": "anthropic", "name": "Anthropic", "enabled": true},
		{"id": "gemini", "type": "gemini", "name": "Gemini", "enabled": true},
	})
}

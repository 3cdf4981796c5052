package logger

import (
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config defines the configuration for the logger.
type Config struct {
	Level       string // debug, info, warn, error
	Format      string // json, console
	EnableColor bool   // only honoured in console mode
}

var (
	globalLogger *zap.Logger
	atom         zap.AtomicLevel
	once         sync.Once
)

// DefaultConfig reads LOG_LEVEL, LOG_FORMAT and LOG_COLOR.
func DefaultConfig() Config {
	return Config{
		Level:       getEnv("LOG_LEVEL", "info"),
		Format:      getEnv("LOG_FORMAT", "console"),
		EnableColor: shouldEnableColor(),
	}
}

// New builds a logger for cfg without touching the global one.
func New(cfg Config) (*zap.Logger, zap.AtomicLevel, error) {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder

	encoding := "json"
	if cfg.Format == "console" {
		encoding = "console"
		encoderConfig.EncodeCaller = zapcore.ShortCallerEncoder
		encoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")

		if cfg.EnableColor {
			encoding = coloredConsoleEncoding
			encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		}
	}

	level := zap.NewAtomicLevelAt(ParseLevel(cfg.Level))

	zapConfig := zap.Config{
		Level:             level,
		Encoding:          encoding,
		EncoderConfig:     encoderConfig,
		OutputPaths:       []string{"stdout"},
		ErrorOutputPaths:  []string{"stderr"},
		DisableStacktrace: cfg.Level != "debug",
	}

	l, err := zapConfig.Build()
	if err != nil {
		return nil, level, err
	}
	return l, level, nil
}

// Initialize sets up the global logger. Only the first call has any effect.
func Initialize(cfg Config) {
	once.Do(func() {
		l, level, err := New(cfg)
		if err != nil {
			panic("failed to initialize logger: " + err.Error())
		}
		globalLogger = l
		atom = level
	})
}

// Get returns the global logger, initialising it from the environment if needed.
func Get() *zap.Logger {
	if globalLogger == nil {
		Initialize(DefaultConfig())
	}
	return globalLogger
}

// SetLevel changes the global level at runtime.
func SetLevel(level string) {
	Get()
	atom.SetLevel(ParseLevel(level))
}

func Sync() {
	if globalLogger != nil {
		_ = globalLogger.Sync()
	}
}

func ParseLevel(lvl string) zapcore.Level {
	switch strings.ToLower(lvl) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	case "fatal":
		return zapcore.FatalLevel
	default:
		return zapcore.InfoLevel
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return strings.ToLower(value)
	}
	return fallback
}

// shouldEnableColor honours NO_COLOR (https://no-color.org/) before LOG_COLOR.
func shouldEnableColor() bool {
	if _, noColor := os.LookupEnv("NO_COLOR"); noColor {
		return false
	}
	if val := os.Getenv("LOG_COLOR"); val != "" {
		return val == "true" || val == "1"
	}
	return true
}

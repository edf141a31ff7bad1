package config

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/lmittmann/tint"
	"gopkg.in/yaml.v3"

	"github.com/vhyza/elasticsearch/querydsl"
)

type Config struct {
	Logger LoggerConfig `yaml:"logger"`
	Parser ParserConfig `yaml:"parser"`
}

type LoggerConfig struct {
	Level  string `yaml:"level"`
	Type   string `yaml:"type"`
	Output string `yaml:"output"`
}

type ParserConfig struct {
	// Strict turns deprecated field spellings into parse errors instead
	// of warnings.
	Strict bool `yaml:"strict"`
}

func Load(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("cannot read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("cannot parse config file: %w", err)
	}

	return cfg, nil
}

// Default is the configuration used when no config file is given: lenient
// field matching and colored warnings on stderr.
func Default() Config {
	return Config{
		Logger: LoggerConfig{Level: "info", Type: "colored-text", Output: "stderr"},
	}
}

// Parse builds the logger and the field matching policy described by the
// config.
func (cfg Config) Parse() (*slog.Logger, querydsl.Matcher, error) {
	logger, err := parseLoggerConfig(cfg.Logger)
	if err != nil {
		return nil, querydsl.Matcher{}, fmt.Errorf("cannot create logger: %w", err)
	}

	matcher := querydsl.Matcher{
		Strict: cfg.Parser.Strict,
		Logger: logger,
	}

	return logger, matcher, nil
}

func parseLoggerConfig(cfg LoggerConfig) (*slog.Logger, error) {
	var handler slog.Handler

	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return nil, fmt.Errorf("invalid log level: %s", cfg.Level)
	}

	var w *os.File
	switch cfg.Output {
	case "", "stderr":
		w = os.Stderr
	case "stdout":
		w = os.Stdout
	default:
		return nil, fmt.Errorf("invalid log output: %s", cfg.Output)
	}

	switch cfg.Type {
	case "json":
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	case "text":
		handler = slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	case "colored-text":
		handler = tint.NewHandler(w, &tint.Options{Level: level})
	default:
		return nil, fmt.Errorf("invalid log type: %s", cfg.Type)
	}

	return slog.New(handler), nil
}

package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server  HTTPServerConfig `json:"server"`
	LLM     LLMConfig        `json:"llm"`
	Mongo   MongoConfig      `json:"mongo"`
	Metrics MetricsConfig    `json:"metrics"`
	Log     LogConfig        `json:"log"`
}

type HTTPServerConfig struct {
	Host         string        `json:"host" default:"0.0.0.0"`
	Port         int           `json:"port" default:"3000"`
	ReadTimeout  time.Duration `json:"read_timeout" default:"1m"`
	WriteTimeout time.Duration `json:"write_timeout" default:"15m"`
}

func (c HTTPServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

type LLMConfig struct {
	APIKey     string        `json:"api_key"`
	BaseURL    string        `json:"base_url" default:"https://api.openai.com/v1"`
	ChatModel  string        `json:"chat_model" default:"gpt-4o-mini"`
	ImageModel string        `json:"image_model" default:"dall-e-3"`
	Timeout    time.Duration `json:"timeout" default:"10m"`
}

// MongoConfig enables the generation journal when URI is set.
type MongoConfig struct {
	URI      string `json:"uri"`
	Database string `json:"database" default:"jark"`
}

func (c MongoConfig) Enabled() bool {
	return c.URI != ""
}

// MetricsConfig disables the metrics listener when Addr is empty.
type MetricsConfig struct {
	Addr string `json:"addr" default:":2112"`
}

type LogConfig struct {
	Level slog.Level `json:"level"`
}

// Load reads an optional .env file and then the process environment.
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("load env file: %w", err)
	}

	port, err := getEnvInt("PORT", 3000)
	if err != nil {
		return nil, err
	}
	timeout, err := getEnvDuration("OPENAI_TIMEOUT", 10*time.Minute)
	if err != nil {
		return nil, err
	}
	level, err := parseLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: HTTPServerConfig{
			Host:         getEnv("SERVER_HOST", "0.0.0.0"),
			Port:         port,
			ReadTimeout:  time.Minute,
			WriteTimeout: 15 * time.Minute,
		},
		LLM: LLMConfig{
			APIKey:     os.Getenv("OPENAI_API_KEY"),
			BaseURL:    getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
			ChatModel:  getEnv("OPENAI_CHAT_MODEL", "gpt-4o-mini"),
			ImageModel: getEnv("OPENAI_IMAGE_MODEL", "dall-e-3"),
			Timeout:    timeout,
		},
		Mongo: MongoConfig{
			URI:      os.Getenv("MONGO_URI"),
			Database: getEnv("MONGO_DB", "jark"),
		},
		Metrics: MetricsConfig{
			Addr: getEnvAllowEmpty("METRICS_ADDR", ":2112"),
		},
		Log: LogConfig{
			Level: level,
		},
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAllowEmpty distinguishes an unset variable from one set to "".
func getEnvAllowEmpty(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 || n > 65535 {
		return 0, fmt.Errorf("invalid %s %q", key, value)
	}
	return n, nil
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return d, nil
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return 0, fmt.Errorf("invalid LOG_LEVEL %q: %w", s, err)
	}
	return level, nil
}

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Decoder names accepted by SHEET_DECODER.
const (
	DecoderExcelize = "excelize"
	DecoderStream   = "stream"
)

type Config struct {
	// Application
	AppName string
	AppEnv  string
	AppPort string
	AppURL  string

	// Presentation
	ViewsPath  string
	StaticPath string

	// Upload
	UploadMaxSize int

	// Processing
	SheetDecoder string

	// Logging
	LogLevel string
}

func Load() (*Config, error) {
	// Load .env file if exists
	// Try to load from current dir first, then parent dirs
	_ = godotenv.Load()
	_ = godotenv.Load("../../.env") // For when running from cmd/web or cmd/tokkun

	cfg := &Config{
		AppName: getEnv("APP_NAME", "特訓通知ジェネレーター"),
		AppEnv:  getEnv("APP_ENV", "development"),
		AppPort: getEnv("APP_PORT", "8080"),
		AppURL:  getEnv("APP_URL", "http://localhost:8080"),

		ViewsPath:  getEnv("VIEWS_PATH", "./views"),
		StaticPath: getEnv("STATIC_PATH", "./public"),

		UploadMaxSize: getEnvAsInt("UPLOAD_MAX_SIZE", 20971520), // 20MB

		SheetDecoder: strings.ToLower(getEnv("SHEET_DECODER", DecoderExcelize)),

		LogLevel: strings.ToLower(getEnv("LOG_LEVEL", "info")),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate rejects settings the server cannot start with.
func (c *Config) Validate() error {
	switch c.SheetDecoder {
	case DecoderExcelize, DecoderStream:
	default:
		return fmt.Errorf("unknown SHEET_DECODER %q (want %q or %q)", c.SheetDecoder, DecoderExcelize, DecoderStream)
	}
	if c.UploadMaxSize <= 0 {
		return fmt.Errorf("UPLOAD_MAX_SIZE must be positive, got %d", c.UploadMaxSize)
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("unknown LOG_LEVEL %q", c.LogLevel)
	}
	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

func (c *Config) GetListenAddr() string {
	return fmt.Sprintf(":%s", c.AppPort)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

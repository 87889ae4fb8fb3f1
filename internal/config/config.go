package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr     string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	GeminiModel   string
	GeminiBaseURL string
	GeminiTimeout time.Duration

	SessionTTL time.Duration

	ValkeyURL      string
	ValkeyPassword string
	LockTTL        time.Duration

	S3EndpointURL string
	S3Region      string
	S3AccessKey   string
	S3SecretKey   string
	S3BucketName  string
}

// Load reads configuration from the environment, after loading a .env file
// when one is present. Variables already set take precedence over .env.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	return FromEnv(), nil
}

func FromEnv() *Config {
	return &Config{
		HTTPAddr:     getEnvString("HTTP_ADDR", ":8080"),
		ReadTimeout:  getEnvDuration("READ_TIMEOUT", 15*time.Second),
		WriteTimeout: getEnvDuration("WRITE_TIMEOUT", 2*time.Minute),

		GeminiModel:   getEnvString("GEMINI_MODEL", "gemini-2.5-flash"),
		GeminiBaseURL: getEnvString("GEMINI_BASE_URL", ""),
		GeminiTimeout: getEnvDuration("GEMINI_TIMEOUT", 90*time.Second),

		SessionTTL: getEnvDuration("SESSION_TTL", time.Hour),

		ValkeyURL:      getEnvString("VALKEY_URL", ""),
		ValkeyPassword: getEnvString("VALKEY_PASSWORD", ""),
		LockTTL:        getEnvDuration("LOCK_TTL", 2*time.Minute),

		S3EndpointURL: getEnvString("S3_ENDPOINT_URL", ""),
		S3Region:      getEnvString("S3_REGION", "us-east-1"),
		S3AccessKey:   getEnvString("S3_ACCESS_KEY", ""),
		S3SecretKey:   getEnvString("S3_SECRET_KEY", ""),
		S3BucketName:  getEnvString("S3_BUCKET_NAME", ""),
	}
}

func (c *Config) ExportsEnabled() bool {
	return c.S3BucketName != ""
}

func getEnvString(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

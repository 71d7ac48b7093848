package main

import (
	"errors"
	"fmt"

	"github.com/muhammadolammi/bulletdoctor/internal/llm"
	"github.com/muhammadolammi/bulletdoctor/internal/storage"
)

const defaultLogFile = "bulletdoctor.log"

var ErrMissingAPIKey = errors.New("empty GOOGLE_API_KEY in env")

type AppConfig struct {
	GoogleApiKey string
	Model        string
	RabbitMQUrl  string
	LogFile      string
	R2           storage.R2Config
}

// loadConfig reads settings from the environment. The API key is only
// required when requireKey is set; the points command never talks to the model.
func loadConfig(getenv func(string) string, requireKey bool) (AppConfig, error) {
	cfg := AppConfig{
		GoogleApiKey: getenv("GOOGLE_API_KEY"),
		Model:        getenv("GEMINI_MODEL"),
		RabbitMQUrl:  getenv("RABBITMQ_URL"),
		LogFile:      getenv("LOG_FILE"),
		R2: storage.R2Config{
			AccountID: getenv("R2_ACCOUNT_ID"),
			Bucket:    getenv("R2_BUCKET"),
			AccessKey: getenv("R2_ACCESS_KEY"),
			SecretKey: getenv("R2_SECRET_KEY"),
		},
	}
	if cfg.Model == "" {
		cfg.Model = llm.DefaultModel
	}
	if cfg.LogFile == "" {
		cfg.LogFile = defaultLogFile
	}
	if requireKey && cfg.GoogleApiKey == "" {
		return cfg, ErrMissingAPIKey
	}
	if cfg.R2.Enabled() {
		if err := cfg.R2.Validate(); err != nil {
			return cfg, fmt.Errorf("R2 settings: %w", err)
		}
	}
	return cfg, nil
}

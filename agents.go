package main

import (
	"context"
	"fmt"

	"github.com/muhammadolammi/bulletdoctor/internal/llm"
	"go.uber.org/zap"
)

const appName = "bullet doctor"

func GetProvider(ctx context.Context, apiKey, model string, logger *zap.Logger) (llm.Provider, error) {
	gemini, err := llm.NewGemini(ctx, apiKey, model)
	if err != nil {
		return nil, fmt.Errorf("failed to create model: %w", err)
	}
	logger.Info("completion provider ready", zap.String("model", gemini.Model()))
	return gemini, nil
}

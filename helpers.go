package main

import (
	"context"
	"os/user"

	"go.uber.org/zap"

	"github.com/muhammadolammi/bulletdoctor/internal/notify"
	"github.com/muhammadolammi/bulletdoctor/internal/resume"
	"github.com/muhammadolammi/bulletdoctor/internal/storage"
)

// getPublisher connects to RabbitMQ when a URL is configured. A broker that
// cannot be reached only disables updates.
func getPublisher(cfg AppConfig, logger *zap.Logger) (notify.Publisher, func()) {
	if cfg.RabbitMQUrl == "" {
		return notify.Nop{}, func() {}
	}
	pub, err := notify.DialAMQP(cfg.RabbitMQUrl)
	if err != nil {
		logger.Warn("session updates disabled", zap.Error(err))
		return notify.Nop{}, func() {}
	}
	logger.Info("publishing session updates", zap.String("exchange", notify.Exchange))
	return pub, func() {
		if err := pub.Close(); err != nil {
			logger.Warn("failed to close rabbitmq connection", zap.Error(err))
		}
	}
}

func getLoader(ctx context.Context, cfg AppConfig, logger *zap.Logger) (*resume.Loader, error) {
	if !cfg.R2.Enabled() {
		return resume.NewLoader(nil), nil
	}
	r2, err := storage.NewR2(ctx, cfg.R2, logger)
	if err != nil {
		return nil, err
	}
	return resume.NewLoader(r2), nil
}

func localUser() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return "local"
}

package cmd

import (
	"fmt"

	"zyapi/internal/api"
	"zyapi/internal/config"

	"go.uber.org/zap"
)

func newClientFromEnv(logger *zap.SugaredLogger) (*api.Client, error) {
	cfg, err := config.NewApp()
	if err != nil {
		logger.Errorw("failed to create config", "error", err)
		return nil, err
	}

	doer := api.NewRetryingDoer(logger, api.TransportOptions{
		Retries: cfg.Retries,
		Timeout: cfg.Timeout,
	})

	client, err := api.NewClient(logger, doer, cfg.BaseURL,
		api.WithToken(cfg.Token),
		api.WithRateLimit(cfg.RateLimit, 1))
	if err != nil {
		return nil, fmt.Errorf("create api client: %w", err)
	}
	return client, nil
}

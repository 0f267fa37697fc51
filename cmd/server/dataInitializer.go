package main

import (
	"context"
	"fmt"
	"time"

	"visioneer-server/internal/config"
	"visioneer-server/internal/infrastructure"
	"visioneer-server/internal/utils/platformerrors"
)

// DataInitializer runs startup checks before the server accepts
// traffic: the database must answer and every configured inference
// provider must carry credentials.
type DataInitializer struct {
	infra *infrastructure.Infrastructure
}

func (d *DataInitializer) Install(ctx context.Context) error {
	cfg := config.GetGlobal()

	if err := d.pingDatabase(ctx); err != nil {
		return err
	}

	if err := checkProviderCredentials(ctx, cfg); err != nil {
		return err
	}

	return nil
}

func (d *DataInitializer) pingDatabase(ctx context.Context) error {
	sqlDB, err := d.infra.DB.DB()
	if err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerInfrastructure, err, "failed to access database pool")
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := sqlDB.PingContext(pingCtx); err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerInfrastructure, err, "database unreachable")
	}
	return nil
}

func checkProviderCredentials(ctx context.Context, cfg *config.Config) error {
	missing := func(provider string) error {
		return platformerrors.NewError(ctx, platformerrors.LayerInfrastructure, platformerrors.ErrorTypeInternal,
			fmt.Sprintf("provider %q is configured but has no credentials", provider), nil,
			"c7d2e9f4-3a6b-4c1e-8f5d-2b9a7e4c1d63")
	}

	switch cfg.TextProvider {
	case "openai":
		if cfg.OpenAIAPIKey == "" {
			return missing("openai")
		}
	case "gemini":
		if cfg.GeminiAPIKey == "" {
			return missing("gemini")
		}
	}

	switch cfg.ImageProvider {
	case "openai":
		if cfg.OpenAIAPIKey == "" {
			return missing("openai")
		}
	case "gemini":
		if cfg.GeminiAPIKey == "" {
			return missing("gemini")
		}
	case "replicate":
		if cfg.ReplicateAPIToken == "" {
			return missing("replicate")
		}
	}

	return nil
}

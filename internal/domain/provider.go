package domain

import (
	"github.com/google/wire"

	"visioneer-server/internal/config"
	"visioneer-server/internal/domain/editsession"
	"visioneer-server/internal/domain/moodboard"
	"visioneer-server/internal/domain/project"
	"visioneer-server/internal/domain/usage"
	"visioneer-server/internal/domain/user"
)

// ServiceProvider provides all domain services
var ServiceProvider = wire.NewSet(
	// Moodboard domain
	moodboard.NewService,
	ProvideProjectGuard,
	ProvideUsageRecorder,

	// Project domain
	project.NewService,
	ProvideMoodboardDetacher,

	// Usage ledger
	ProvideUsageConfig,
	usage.NewService,

	// Edit sessions
	editsession.NewService,
	ProvideEditUsageRecorder,

	// User domain
	user.NewService,
)

func ProvideUsageConfig(cfg *config.Config) usage.Config {
	return usage.Config{
		TextProvider:  cfg.TextProvider,
		TextModel:     cfg.TextModel,
		RetentionDays: cfg.UsageRetentionDays,
	}
}

func ProvideProjectGuard(s *project.Service) moodboard.ProjectGuard {
	return s
}

func ProvideMoodboardDetacher(repo moodboard.Repository) project.MoodboardDetacher {
	return repo
}

func ProvideUsageRecorder(s *usage.Service) moodboard.UsageRecorder {
	return s
}

func ProvideEditUsageRecorder(s *usage.Service) editsession.UsageRecorder {
	return s
}

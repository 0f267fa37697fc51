package crontab

import (
	"context"
	"time"

	"visioneer-server/internal/config"
	"visioneer-server/internal/domain/usage"
	"visioneer-server/internal/infrastructure/cache"
	"visioneer-server/internal/infrastructure/logger"
	"visioneer-server/internal/infrastructure/ratelimit"
	"visioneer-server/internal/infrastructure/sessions"
	"visioneer-server/internal/utils/platformerrors"

	"github.com/mileusna/crontab"
)

const CronJobTimeout = 10 * time.Minute

// Crontab drives the periodic maintenance jobs: ledger retention, store
// pruning and environment reload.
type Crontab struct {
	ctab         *crontab.Crontab
	usageService *usage.Service
	conceptStore cache.Store
	limiter      ratelimit.Limiter
	sessionStore *sessions.MemoryStore
}

func NewCrontab(
	usageService *usage.Service,
	conceptStore cache.Store,
	limiter ratelimit.Limiter,
	sessionStore *sessions.MemoryStore,
) *Crontab {
	return &Crontab{
		ctab:         crontab.New(),
		usageService: usageService,
		conceptStore: conceptStore,
		limiter:      limiter,
		sessionStore: sessionStore,
	}
}

func (c *Crontab) Run(ctx context.Context) error {
	log := logger.GetLogger()

	// Purge once on server start so a long downtime doesn't leave
	// expired records until the next daily tick.
	c.purgeUsage(ctx)

	// Daily ledger retention sweep
	if err := c.ctab.AddJob("10 0 * * *", func() {
		jobCtx, cancel := context.WithTimeout(context.Background(), CronJobTimeout)
		defer cancel()
		c.purgeUsage(jobCtx)
	}); err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerInfrastructure, err, "failed to add usage purge job")
	}

	// In-memory stores accumulate dead entries between hits
	if err := c.ctab.AddJob("*/5 * * * *", func() {
		c.pruneStores()
	}); err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerInfrastructure, err, "failed to add store prune job")
	}

	// Schedule environment reload job
	if err := c.ctab.AddJob("* * * * *", func() {
		config.Load()
	}); err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerInfrastructure, err, "failed to add env reload job")
	}

	log.Info().Msg("Maintenance jobs scheduled")

	<-ctx.Done()
	c.ctab.Shutdown()
	return nil
}

func (c *Crontab) purgeUsage(ctx context.Context) {
	log := logger.GetLogger()

	removed, err := c.usageService.PurgeExpired(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Failed to purge expired usage records")
		return
	}
	if removed > 0 {
		log.Info().Int64("removed", removed).Msg("Purged expired usage records")
	}
}

func (c *Crontab) pruneStores() {
	log := logger.GetLogger()

	concepts := c.conceptStore.Prune()
	keys := c.limiter.Prune()
	sessions := c.sessionStore.Prune()
	if concepts+keys+sessions > 0 {
		log.Debug().
			Int("concepts", concepts).
			Int("limiter_keys", keys).
			Int("sessions", sessions).
			Msg("Pruned expired store entries")
	}
}

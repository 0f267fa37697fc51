package infrastructure

import (
	"context"

	"github.com/google/wire"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"visioneer-server/internal/config"
	"visioneer-server/internal/domain/editsession"
	"visioneer-server/internal/infrastructure/auth"
	"visioneer-server/internal/infrastructure/crontab"
	"visioneer-server/internal/infrastructure/database"
	"visioneer-server/internal/infrastructure/database/repository"
	"visioneer-server/internal/infrastructure/database/transaction"
	"visioneer-server/internal/infrastructure/inference"
	"visioneer-server/internal/infrastructure/logger"
	"visioneer-server/internal/infrastructure/ratelimit"
	"visioneer-server/internal/infrastructure/sessions"
)

// ProvideConfig loads and provides the application configuration
func ProvideConfig() (*config.Config, error) {
	return config.Load()
}

// ProvideOIDCValidator provides a JWT validator backed by the identity
// provider's JWKS endpoint.
func ProvideOIDCValidator(cfg *config.Config, log zerolog.Logger) (*auth.OIDCValidator, error) {
	ctx := context.Background()
	jwksURL, err := cfg.ResolveJWKSURL(ctx)
	if err != nil {
		return nil, err
	}
	return auth.NewOIDCValidator(
		ctx,
		jwksURL,
		cfg.Issuer,
		cfg.Audience,
		cfg.RefreshJWKSInterval,
		cfg.AuthClockSkew,
		log,
	)
}

// ProvideDatabase provides a database connection
func ProvideDatabase(cfg *config.Config, log zerolog.Logger) (*gorm.DB, error) {
	db, err := database.NewDB(cfg.GetDatabaseWriteDSN(), cfg.GetDatabaseReadDSNs())
	if err != nil {
		return nil, err
	}

	// Run migrations if AUTO_MIGRATE is enabled
	if cfg.AutoMigrate {
		log.Info().Msg("Running database migrations...")
		if err := database.AutoMigrate(db); err != nil {
			log.Error().Err(err).Msg("Failed to run database migrations")
			return nil, err
		}
		log.Info().Msg("Database migrations completed successfully")
	}

	return db, nil
}

// ProvideTransactionDatabase provides a transaction database wrapper
func ProvideTransactionDatabase(db *gorm.DB) *transaction.Database {
	return transaction.NewDatabase(db)
}

// ProvideRateLimiter provides the shared request limiter
func ProvideRateLimiter() ratelimit.Limiter {
	return ratelimit.NewMemoryLimiter()
}

// ProvideSessionStore provides the edit session store
func ProvideSessionStore(cfg *config.Config) *sessions.MemoryStore {
	return sessions.NewMemoryStore(cfg.EditSessionTTL)
}

// ProvideEditSessionStore exposes the session store under its domain interface
func ProvideEditSessionStore(store *sessions.MemoryStore) editsession.Store {
	return store
}

// Infrastructure holds all infrastructure dependencies
type Infrastructure struct {
	DB        *gorm.DB
	Validator *auth.OIDCValidator
	Logger    zerolog.Logger
}

// NewInfrastructure creates a new infrastructure instance
func NewInfrastructure(
	db *gorm.DB,
	validator *auth.OIDCValidator,
	logger zerolog.Logger,
) *Infrastructure {
	return &Infrastructure{
		DB:        db,
		Validator: validator,
		Logger:    logger,
	}
}

// InfrastructureProvider provides all infrastructure dependencies
var InfrastructureProvider = wire.NewSet(
	// Config
	ProvideConfig,

	// Database
	ProvideDatabase,
	ProvideTransactionDatabase,

	// Repositories
	repository.RepositoryProvider,

	// Inference backends
	inference.ServiceProvider,

	// Stores and limiter
	ProvideRateLimiter,
	ProvideSessionStore,
	ProvideEditSessionStore,

	// Logger
	logger.GetLogger,

	// Auth
	ProvideOIDCValidator,

	// Crontab for maintenance jobs
	crontab.NewCrontab,

	// Infrastructure struct
	NewInfrastructure,
)

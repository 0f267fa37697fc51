package database

import (
	"fmt"
	"time"

	"visioneer-server/internal/infrastructure/logger"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
	"gorm.io/plugin/dbresolver"
)

const schemaName = "visioneer"

var SchemaRegistry []interface{}

func RegisterSchemaForAutoMigrate(models ...interface{}) {
	SchemaRegistry = append(SchemaRegistry, models...)
}

var DB *gorm.DB

// Config holds database configuration
type Config struct {
	WriteDSN    string
	ReadDSNs    []string
	MaxIdle     int
	MaxOpen     int
	MaxLifetime time.Duration
	LogLevel    gormlogger.LogLevel
}

// Connect creates a new database connection with the given configuration
func Connect(cfg Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.WriteDSN), &gorm.Config{
		NamingStrategy: schema.NamingStrategy{
			TablePrefix:   schemaName + ".",
			SingularTable: false,
		},
		Logger: gormlogger.Default.LogMode(cfg.LogLevel),
	})
	if err != nil {
		log := logger.GetLogger()
		log.Error().
			Str("error_code", "7b2c88a4-5f9e-40d1-9c37-20b1f3e6a5d2").
			Err(err).
			Msg("unable to connect to database")
		return nil, err
	}

	// Route reads through replicas when configured
	if len(cfg.ReadDSNs) > 0 {
		replicas := make([]gorm.Dialector, 0, len(cfg.ReadDSNs))
		for _, dsn := range cfg.ReadDSNs {
			replicas = append(replicas, postgres.Open(dsn))
		}
		if err := db.Use(dbresolver.Register(dbresolver.Config{
			Replicas: replicas,
			Policy:   dbresolver.RandomPolicy{},
		})); err != nil {
			return nil, fmt.Errorf("register read replicas: %w", err)
		}
	}

	// Configure connection pool
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(cfg.MaxIdle)
	sqlDB.SetMaxOpenConns(cfg.MaxOpen)
	sqlDB.SetConnMaxLifetime(cfg.MaxLifetime)

	log := logger.GetLogger()
	log.Info().Msg("Successfully connected to database")
	DB = db
	return DB, nil
}

// NewDB creates a new database connection using the write DSN and
// optional read replica DSNs.
func NewDB(writeDSN string, readDSNs []string) (*gorm.DB, error) {
	return Connect(Config{
		WriteDSN:    writeDSN,
		ReadDSNs:    readDSNs,
		MaxIdle:     10,
		MaxOpen:     25,
		MaxLifetime: 1 * time.Hour,
		LogLevel:    gormlogger.Silent,
	})
}

type DatabaseMigration struct {
	gorm.Model
	Version string `gorm:"not null;uniqueIndex"`
}

func Migration(db *gorm.DB) error {
	if err := db.Exec(fmt.Sprintf("CREATE SCHEMA IF NOT EXISTS %s;", schemaName)).Error; err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	hasTable := db.Migrator().HasTable(&DatabaseMigration{})
	if !hasTable {
		if err := db.AutoMigrate(&DatabaseMigration{}); err != nil {
			return fmt.Errorf("failed to create 'database_migration' table: %w", err)
		}
		for _, model := range SchemaRegistry {
			err := db.AutoMigrate(model)
			if err != nil {
				log := logger.GetLogger()
				log.Error().
					Str("error_code", "e4a70f61-8f0f-49f6-9f58-3c2f6d1d87b9").
					Err(err).
					Msgf("failed to auto migrate schema: %T", model)
				return err
			}
		}
	}
	return nil
}

package database

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"storefront/internal/config"
	"storefront/internal/repositories"
)

// OpenGORM connects to the SQL database named by cfg and migrates the schema.
func OpenGORM(cfg config.Database) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case config.DriverPostgres:
		dialector = postgres.Open(cfg.DSN)
	case config.DriverSQLite:
		dialector = sqlite.Open(cfg.DSN)
	default:
		return nil, fmt.Errorf("driver %q is not a SQL driver", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Warn),
		TranslateError:                           true,
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s database: %w", cfg.Driver, err)
	}

	if err := repositories.AutoMigrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// OpenMongo connects to MongoDB, verifies the connection and ensures indexes.
func OpenMongo(ctx context.Context, cfg config.Database) (*mongo.Client, *mongo.Database, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, nil, fmt.Errorf("ping mongo: %w", err)
	}

	db := client.Database(cfg.MongoDatabase)
	if err := repositories.EnsureMongoIndexes(ctx, db); err != nil {
		_ = client.Disconnect(ctx)
		return nil, nil, err
	}
	return client, db, nil
}

// OpenStore opens the backing database selected by cfg.Driver and returns
// its repositories with a function releasing the connection.
func OpenStore(ctx context.Context, cfg config.Database, log *slog.Logger) (repositories.Store, func(), error) {
	switch cfg.Driver {
	case config.DriverMemory:
		log.Warn("using in-memory store, data is lost on restart")
		return repositories.NewMemoryStore(), func() {}, nil

	case config.DriverMongo:
		client, db, err := OpenMongo(ctx, cfg)
		if err != nil {
			return repositories.Store{}, nil, err
		}
		log.Info("connected to mongo", slog.String("database", cfg.MongoDatabase))
		return repositories.NewMongoStore(db), func() {
			if err := client.Disconnect(context.Background()); err != nil {
				log.Error("error disconnecting from mongo", slog.Any("error", err))
			}
		}, nil

	default:
		db, err := OpenGORM(cfg)
		if err != nil {
			return repositories.Store{}, nil, err
		}
		log.Info("connected to database", slog.String("driver", cfg.Driver))
		return repositories.NewGORMStore(db), func() {
			sqlDB, err := db.DB()
			if err != nil {
				return
			}
			if err := sqlDB.Close(); err != nil {
				log.Error("error closing database", slog.Any("error", err))
			}
		}, nil
	}
}

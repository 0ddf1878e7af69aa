package main

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"todoapi/internal/config"
	"todoapi/internal/database"
	"todoapi/internal/database/migration"
	handlers "todoapi/internal/http/handler"
	"todoapi/internal/repository"
	"todoapi/internal/repository/mongodb"
	"todoapi/internal/repository/objectstore"
	"todoapi/internal/repository/postgres"
	"todoapi/internal/storage"
)

// store bundles the repository selected by STORE_DRIVER with its health probe.
type store struct {
	repo   repository.TodoRepository
	pinger handlers.Pinger
	close  func(context.Context) error
}

func openStore(ctx context.Context, cfg *config.AppConfig, log *logrus.Logger) (*store, error) {
	switch cfg.StoreDriver {
	case config.DriverMongo:
		m, err := database.NewMongo(ctx, cfg.Mongo, log, cfg.ConnectMaxTries)
		if err != nil {
			return nil, err
		}
		if err := migration.EnsureCollection(ctx, m.DB, cfg.Mongo.Collection, log); err != nil {
			_ = m.Close(context.Background())
			return nil, err
		}
		return &store{
			repo:   mongodb.NewTodoMongo(m.Collection(cfg.Mongo.Collection)),
			pinger: m,
			close:  m.Close,
		}, nil

	case config.DriverPostgres:
		db, err := database.NewPostgres(ctx, cfg.Database, log, cfg.ConnectMaxTries)
		if err != nil {
			return nil, err
		}
		if err := migration.EnsureMigrated(ctx, db, log, cfg.Database.Host); err != nil {
			_ = db.Close()
			return nil, err
		}
		return &store{
			repo:   postgres.NewTodoPostgres(db),
			pinger: handlers.PingFunc(db.PingContext),
			close:  func(context.Context) error { return db.Close() },
		}, nil

	case config.DriverS3:
		objStore, err := storage.NewMinIO(ctx, cfg.MinIO)
		if err != nil {
			return nil, err
		}
		return &store{
			repo:   objectstore.NewTodoObjectStore(objStore, cfg.MinIO.Prefix),
			pinger: objStore,
			close:  func(context.Context) error { return nil },
		}, nil
	}

	return nil, fmt.Errorf("unsupported STORE_DRIVER %q", cfg.StoreDriver)
}

package migration

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// EnsureCollection creates the named collection when it is missing.
// Documents carry no schema; only the collection itself is bootstrapped.
func EnsureCollection(ctx context.Context, db *mongo.Database, name string, log logrus.FieldLogger) error {
	entry := log.WithFields(logrus.Fields{
		"component":  "database",
		"database":   db.Name(),
		"collection": name,
	})

	names, err := db.ListCollectionNames(ctx, bson.D{{Key: "name", Value: name}})
	if err != nil {
		entry.WithError(err).WithField("event", "db_migration_failed").Error("failed to list collections")
		return fmt.Errorf("list collections: %w", err)
	}
	if len(names) > 0 {
		entry.WithField("event", "db_migration_skip").Info("collection already exists")
		return nil
	}

	if err := db.CreateCollection(ctx, name); err != nil {
		// Another replica created it between the listing and now.
		if isNamespaceExists(err) {
			entry.WithField("event", "db_migration_skip").Info("collection created concurrently")
			return nil
		}
		entry.WithError(err).WithField("event", "db_migration_failed").Error("failed to create collection")
		return fmt.Errorf("create collection %s: %w", name, err)
	}
	entry.WithField("event", "db_migration_success").Info("collection created")
	return nil
}

const codeNamespaceExists = 48

func isNamespaceExists(err error) bool {
	var ce mongo.CommandError
	return errors.As(err, &ce) && ce.HasErrorCode(codeNamespaceExists)
}

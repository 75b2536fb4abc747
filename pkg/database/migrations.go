package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Migration struct {
	Version     int
	Description string
	Up          func(*mongo.Database) error
	Down        func(*mongo.Database) error
}

type Migrator struct {
	db         *mongo.Database
	migrations []Migration
}

func NewMigrator(db *mongo.Database) *Migrator {
	return &Migrator{
		db:         db,
		migrations: getMigrations(),
	}
}

func (m *Migrator) Up() error {
	// Create migrations collection if it doesn't exist
	err := m.createMigrationsCollection()
	if err != nil {
		return err
	}

	// Get current version
	currentVersion, err := m.getCurrentVersion()
	if err != nil {
		return err
	}

	// Run migrations
	for _, migration := range m.migrations {
		if migration.Version > currentVersion {
			log.Printf("Running migration %d: %s", migration.Version, migration.Description)

			err := migration.Up(m.db)
			if err != nil {
				return fmt.Errorf("migration %d failed: %w", migration.Version, err)
			}

			err = m.updateVersion(migration.Version)
			if err != nil {
				return fmt.Errorf("failed to update migration version: %w", err)
			}

			log.Printf("Migration %d completed successfully", migration.Version)
		}
	}

	return nil
}

func (m *Migrator) Down(targetVersion int) error {
	currentVersion, err := m.getCurrentVersion()
	if err != nil {
		return err
	}

	for i := len(m.migrations) - 1; i >= 0; i-- {
		migration := m.migrations[i]
		if migration.Version <= currentVersion && migration.Version > targetVersion {
			log.Printf("Reverting migration %d: %s", migration.Version, migration.Description)

			err := migration.Down(m.db)
			if err != nil {
				return fmt.Errorf("migration %d rollback failed: %w", migration.Version, err)
			}

			previousVersion := targetVersion
			if i > 0 {
				previousVersion = m.migrations[i-1].Version
			}

			err = m.updateVersion(previousVersion)
			if err != nil {
				return fmt.Errorf("failed to update migration version: %w", err)
			}

			log.Printf("Migration %d reverted successfully", migration.Version)
		}
	}

	return nil
}

func (m *Migrator) createMigrationsCollection() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	collections, err := m.db.ListCollectionNames(ctx, bson.D{})
	if err != nil {
		return err
	}

	for _, name := range collections {
		if name == "migrations" {
			return nil
		}
	}

	return m.db.CreateCollection(ctx, "migrations")
}

func (m *Migrator) getCurrentVersion() (int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var result struct {
		Version int `bson:"version"`
	}

	err := m.db.Collection("migrations").FindOne(ctx, bson.D{}).Decode(&result)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return 0, nil
		}
		return 0, err
	}

	return result.Version, nil
}

func (m *Migrator) updateVersion(version int) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := m.db.Collection("migrations").ReplaceOne(
		ctx,
		bson.D{},
		bson.D{{Key: "version", Value: version}, {Key: "updated_at", Value: time.Now()}},
		options.Replace().SetUpsert(true),
	)

	return err
}

func getMigrations() []Migration {
	return []Migration{
		{
			Version:     1,
			Description: "Create reward collections with indexes",
			Up: func(db *mongo.Database) error {
				return createRewardIndexes(db)
			},
			Down: func(db *mongo.Database) error {
				if err := db.Collection("merchant_rewards").Drop(context.Background()); err != nil {
					return err
				}
				return db.Collection("rewards").Drop(context.Background())
			},
		},
		{
			Version:     2,
			Description: "Create programs collection with indexes",
			Up: func(db *mongo.Database) error {
				return createProgramIndexes(db)
			},
			Down: func(db *mongo.Database) error {
				return db.Collection("programs").Drop(context.Background())
			},
		},
		{
			Version:     3,
			Description: "Create customers collection with indexes",
			Up: func(db *mongo.Database) error {
				return createCustomerIndexes(db)
			},
			Down: func(db *mongo.Database) error {
				return db.Collection("customers").Drop(context.Background())
			},
		},
		{
			Version:     4,
			Description: "Create activity collections with indexes",
			Up: func(db *mongo.Database) error {
				return createActivityIndexes(db)
			},
			Down: func(db *mongo.Database) error {
				if err := db.Collection("transactions").Drop(context.Background()); err != nil {
					return err
				}
				return db.Collection("redemptions").Drop(context.Background())
			},
		},
		{
			Version:     5,
			Description: "Create notes collection with indexes",
			Up: func(db *mongo.Database) error {
				return createNoteIndexes(db)
			},
			Down: func(db *mongo.Database) error {
				return db.Collection("notes").Drop(context.Background())
			},
		},
	}
}

func createRewardIndexes(db *mongo.Database) error {
	ctx := context.Background()

	merchantIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "merchant_id", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "merchant_id", Value: 1}, {Key: "status", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "merchant_id", Value: 1}, {Key: "is_introductory_reward", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "created_at", Value: -1}},
		},
	}
	if _, err := db.Collection("merchant_rewards").Indexes().CreateMany(ctx, merchantIndexes); err != nil {
		return err
	}

	flatIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "merchant_id", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "status", Value: 1}},
		},
	}
	_, err := db.Collection("rewards").Indexes().CreateMany(ctx, flatIndexes)
	return err
}

func createProgramIndexes(db *mongo.Database) error {
	ctx := context.Background()
	collection := db.Collection("programs")

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "merchant_id", Value: 1}, {Key: "type", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}

func createCustomerIndexes(db *mongo.Database) error {
	ctx := context.Background()
	collection := db.Collection("customers")

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "merchant_id", Value: 1}, {Key: "customer_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "merchant_id", Value: 1}, {Key: "full_name", Value: 1}},
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}

func createActivityIndexes(db *mongo.Database) error {
	ctx := context.Background()

	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "merchant_id", Value: 1}, {Key: "created_at", Value: -1}},
		},
		{
			Keys: bson.D{{Key: "customer_id", Value: 1}},
		},
	}

	if _, err := db.Collection("transactions").Indexes().CreateMany(ctx, indexes); err != nil {
		return err
	}
	_, err := db.Collection("redemptions").Indexes().CreateMany(ctx, indexes)
	return err
}

func createNoteIndexes(db *mongo.Database) error {
	ctx := context.Background()
	collection := db.Collection("notes")

	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "merchant_id", Value: 1}, {Key: "created_at", Value: -1}},
		},
		{
			Keys: bson.D{{Key: "merchant_id", Value: 1}, {Key: "category", Value: 1}},
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}

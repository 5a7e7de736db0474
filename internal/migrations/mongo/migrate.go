package mongo

import (
	"context"
	"fmt"

	bookingrepo "seatbook/internal/bookings/repository"
	holidayrepo "seatbook/internal/holidays/repository"
	internrepo "seatbook/internal/interns/repository"
	"seatbook/internal/migrations/mongo/validators"
	"seatbook/pkg/config"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Run applies the schema: collections with document validators plus the
// indexes the services rely on. Safe to run repeatedly; existing collections
// get their validator refreshed via collMod and index creation is a no-op
// when the index already exists.
func Run(ctx context.Context, cfg *config.Config) error {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)

	collections := []struct {
		name   string
		schema bson.M
	}{
		{bookingrepo.CollectionName, validators.BookingSchema()},
		{holidayrepo.CollectionName, validators.HolidaySchema()},
		{internrepo.CollectionName, validators.InternSchema()},
	}

	for _, c := range collections {
		if err := ensureCollection(ctx, db, c.name, c.schema); err != nil {
			return fmt.Errorf("collection %s: %w", c.name, err)
		}
		cfg.Log.Info("Collection ready", "collection", c.name)
	}

	if err := ensureIndexes(ctx, db); err != nil {
		return err
	}

	cfg.Log.Info("Migrations applied", "database", cfg.MongoDatabaseName)
	return nil
}

func ensureCollection(ctx context.Context, db *mongo.Database, name string, schema bson.M) error {
	names, err := db.ListCollectionNames(ctx, bson.M{"name": name})
	if err != nil {
		return fmt.Errorf("failed to list collections: %w", err)
	}

	if len(names) == 0 {
		opts := options.CreateCollection().SetValidator(schema)
		if err := db.CreateCollection(ctx, name, opts); err != nil {
			return fmt.Errorf("failed to create collection: %w", err)
		}
		return nil
	}

	// Refresh the validator on an existing collection.
	cmd := bson.D{
		{Key: "collMod", Value: name},
		{Key: "validator", Value: schema},
		{Key: "validationLevel", Value: "moderate"},
	}
	if err := db.RunCommand(ctx, cmd).Err(); err != nil {
		return fmt.Errorf("failed to update validator: %w", err)
	}
	return nil
}

func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	// The unique index on (date, seat_number) is what makes booking creation
	// atomic under concurrency. Everything else is a read path optimization.
	bookingIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "date", Value: 1},
				{Key: "seat_number", Value: 1},
			},
			Options: options.Index().
				SetUnique(true).
				SetName("uniq_date_seat"),
		},
		{
			Keys: bson.D{
				{Key: "intern_id", Value: 1},
				{Key: "date", Value: 1},
			},
			Options: options.Index().SetName("idx_intern_date"),
		},
	}
	if _, err := db.Collection(bookingrepo.CollectionName).Indexes().CreateMany(ctx, bookingIndexes); err != nil {
		return fmt.Errorf("failed to create booking indexes: %w", err)
	}

	holidayIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "date", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetName("uniq_date"),
		},
	}
	if _, err := db.Collection(holidayrepo.CollectionName).Indexes().CreateMany(ctx, holidayIndexes); err != nil {
		return fmt.Errorf("failed to create holiday indexes: %w", err)
	}

	internIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "email", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetName("uniq_email"),
		},
		{
			Keys:    bson.D{{Key: "intern_id", Value: 1}},
			Options: options.Index().SetName("idx_intern_id"),
		},
	}
	if _, err := db.Collection(internrepo.CollectionName).Indexes().CreateMany(ctx, internIndexes); err != nil {
		return fmt.Errorf("failed to create intern indexes: %w", err)
	}

	return nil
}

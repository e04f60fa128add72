package mongo

import (
	"context"
	"fmt"
	"sort"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	bookingsrepo "tembea/internal/bookings/repository"
	"tembea/internal/catalog/fetcher"
	"tembea/internal/migrations/mongo/validators"
	"tembea/pkg/logger"
)

type CollectionDef struct {
	Indexes   []mongo.IndexModel
	Validator bson.M
}

var (
	CreatedAtIndexes = []mongo.IndexModel{
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
	}

	EventsIndexes = []mongo.IndexModel{
		{Keys: bson.D{{Key: "date", Value: 1}}},
	}

	BookingsIndexes = []mongo.IndexModel{
		{Keys: bson.D{
			{Key: "userId", Value: 1},
			{Key: "createdAt", Value: -1},
		}},
		{Keys: bson.D{
			{Key: "hostId", Value: 1},
			{Key: "createdAt", Value: -1},
		}},
		{Keys: bson.D{
			{Key: "propertyId", Value: 1},
			{Key: "checkIn", Value: 1},
		}},
	}
)

// Collections derives one definition per catalog source collection, indexed
// on the field that source orders by, plus the bookings collection.
func Collections(sources []fetcher.Source) map[string]CollectionDef {
	defs := map[string]CollectionDef{
		bookingsrepo.CollectionName: {
			Indexes:   BookingsIndexes,
			Validator: validators.BookingValidator,
		},
	}

	for _, src := range fetcher.Distinct(sources) {
		def := CollectionDef{Validator: validators.ListingValidator}
		switch src.OrderBy {
		case "createdAt":
			def.Indexes = CreatedAtIndexes
		case "date":
			def.Indexes = EventsIndexes
		}
		defs[src.Collection] = def
	}
	return defs
}

func RunMigration(ctx context.Context, client *mongo.Client, dbName string, log *logger.Logger) error {
	db := client.Database(dbName)
	log.Info("Running Mongo migrations", "database", dbName)

	defs := Collections(fetcher.DefaultSources())
	names := make([]string, 0, len(defs))
	for name := range defs {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		def := defs[name]
		if err := ensureCollection(ctx, db, name, def.Validator, log); err != nil {
			return fmt.Errorf("failed to ensure collection %s: %w", name, err)
		}
		if err := ensureIndexes(ctx, db, name, def.Indexes, log); err != nil {
			return fmt.Errorf("failed to ensure indexes for %s: %w", name, err)
		}
	}

	log.Info("All migrations applied successfully", "collections", len(names))
	return nil
}

func ensureCollection(ctx context.Context, db *mongo.Database, name string, validator bson.M, log *logger.Logger) error {
	existing, err := db.ListCollectionNames(ctx, bson.D{{Key: "name", Value: name}})
	if err != nil {
		return err
	}

	if len(existing) == 0 {
		log.Info("Creating collection", "collection", name)
		opts := options.CreateCollection().SetValidator(validator)
		if err := db.CreateCollection(ctx, name, opts); err != nil {
			return fmt.Errorf("failed creating %s: %w", name, err)
		}
	} else {
		log.Info("Collection already exists, updating validator", "collection", name)
		command := bson.D{
			{Key: "collMod", Value: name},
			{Key: "validator", Value: validator},
		}
		if err := db.RunCommand(ctx, command).Err(); err != nil {
			log.Warn("Failed updating validator", "collection", name, "error", err)
		}
	}

	return nil
}

func ensureIndexes(ctx context.Context, db *mongo.Database, name string, models []mongo.IndexModel, log *logger.Logger) error {
	if len(models) == 0 {
		return nil
	}
	coll := db.Collection(name)
	if _, err := coll.Indexes().CreateMany(ctx, models); err != nil {
		return err
	}
	log.Info("Ensured indexes", "collection", name, "count", len(models))
	return nil
}

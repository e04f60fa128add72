//go:build integration

package mongo

import (
	"context"
	"testing"
	"time"

	bookingsrepo "tembea/internal/bookings/repository"
	"tembea/internal/catalog/fetcher"
	"tembea/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func TestRunMigration(t *testing.T) {
	ctx := context.Background()

	container, err := mongodb.Run(ctx, "mongo:7")
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := testcontainers.TerminateContainer(container); err != nil {
			t.Logf("failed to terminate mongo container: %v", err)
		}
	})

	uri, err := container.ConnectionString(ctx)
	require.NoError(t, err)
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Disconnect(context.Background()) })

	log := logger.Discard()
	require.NoError(t, RunMigration(ctx, client, "tembea_test", log))
	// A second run only updates validators and re-ensures indexes.
	require.NoError(t, RunMigration(ctx, client, "tembea_test", log))

	db := client.Database("tembea_test")
	names, err := db.ListCollectionNames(ctx, bson.D{})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		fetcher.CollectionProperties,
		fetcher.CollectionActivities,
		fetcher.CollectionDestinations,
		fetcher.CollectionFood,
		fetcher.CollectionTransport,
		fetcher.CollectionGuides,
		fetcher.CollectionEvents,
		bookingsrepo.CollectionName,
	}, names)

	t.Run("booking validator rejects unknown status", func(t *testing.T) {
		now := time.Now().UTC()
		_, err := db.Collection(bookingsrepo.CollectionName).InsertOne(ctx, bson.M{
			"userId":      "guest-1",
			"hostId":      "host-1",
			"propertyId":  "prop-1",
			"checkIn":     now,
			"checkOut":    now.Add(48 * time.Hour),
			"guests":      2,
			"status":      "archived",
			"bookingType": "stay",
			"createdAt":   now,
		})
		assert.Error(t, err)
	})

	t.Run("listings accept free-form documents", func(t *testing.T) {
		_, err := db.Collection(fetcher.CollectionFood).InsertOne(ctx, bson.M{
			"name":  "Carnivore",
			"price": bson.M{"amount": 4500},
		})
		assert.NoError(t, err)
	})
}

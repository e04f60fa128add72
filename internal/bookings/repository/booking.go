package repository

import (
	"context"
	"errors"
	"fmt"
	bookingserrors "tembea/internal/bookings/errors"
	"tembea/pkg/config"
	mongotx "tembea/pkg/db/mongo"
	"tembea/pkg/model"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CollectionName = "bookings"
)

type mongoBookingRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
	txManager  mongotx.TransactionManager
}

type BookingRepository interface {
	FindByID(ctx context.Context, id string) (*model.Booking, error)
	FindByUser(ctx context.Context, userID string, limit int, offset int64) ([]*model.Booking, error)
	CountByUser(ctx context.Context, userID string) (int64, error)
	FindByHost(ctx context.Context, hostID string, limit int, offset int64) ([]*model.Booking, error)
	CountByHost(ctx context.Context, hostID string) (int64, error)
	UpdateStatus(ctx context.Context, id string, from string, to string, reason string) error
	ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error
}

func NewMongoBookingRepository(cfg *config.Config) BookingRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoBookingRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
		txManager:  mongotx.NewTransactionManager(cfg.Client.Mongo),
	}
}

// withTimeout wraps the context with a timeout if not already in a transaction.
// A SessionContext cannot be wrapped without leaving the transaction.
func (r *mongoBookingRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.(mongo.SessionContext); ok {
		return ctx, func() {}
	}

	deadline, hasDeadline := ctx.Deadline()
	if !hasDeadline {
		return context.WithTimeout(ctx, timeout)
	}

	remaining := time.Until(deadline)
	if remaining < timeout {
		return context.WithTimeout(ctx, remaining)
	}

	return context.WithTimeout(ctx, timeout)
}

func (r *mongoBookingRepository) FindByID(ctx context.Context, id string) (*model.Booking, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", bookingserrors.ErrInvalidID, id)
	}

	var booking model.Booking
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&booking)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, bookingserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find booking: %w", err)
	}

	return &booking, nil
}

func (r *mongoBookingRepository) FindByUser(ctx context.Context, userID string, limit int, offset int64) ([]*model.Booking, error) {
	return r.findBy(ctx, bson.M{"userId": userID}, limit, offset)
}

func (r *mongoBookingRepository) CountByUser(ctx context.Context, userID string) (int64, error) {
	return r.countBy(ctx, bson.M{"userId": userID})
}

func (r *mongoBookingRepository) FindByHost(ctx context.Context, hostID string, limit int, offset int64) ([]*model.Booking, error) {
	return r.findBy(ctx, bson.M{"hostId": hostID}, limit, offset)
}

func (r *mongoBookingRepository) CountByHost(ctx context.Context, hostID string) (int64, error) {
	return r.countBy(ctx, bson.M{"hostId": hostID})
}

func (r *mongoBookingRepository) findBy(ctx context.Context, filter bson.M, limit int, offset int64) ([]*model.Booking, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(int64(limit)).
		SetSkip(offset)

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find bookings: %w", err)
	}
	defer cursor.Close(ctx)

	bookings := []*model.Booking{}
	if err = cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}

	return bookings, nil
}

func (r *mongoBookingRepository) countBy(ctx context.Context, filter bson.M) (int64, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to count bookings: %w", err)
	}
	return count, nil
}

// UpdateStatus moves a booking from one status to another. The update only
// matches while the stored status still equals from.
func (r *mongoBookingRepository) UpdateStatus(ctx context.Context, id string, from string, to string, reason string) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", bookingserrors.ErrInvalidID, id)
	}

	set := bson.M{
		"status":    to,
		"updatedAt": time.Now().UTC().Truncate(time.Millisecond),
	}
	if reason != "" {
		set["cancelReason"] = reason
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": objectID, "status": from}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to update booking status: %w", err)
	}
	if result.MatchedCount == 0 {
		return bookingserrors.ErrStatusChanged
	}

	return nil
}

func (r *mongoBookingRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return r.txManager.ExecuteTransaction(ctx, fn)
}

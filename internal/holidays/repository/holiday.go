package repository

import (
	"context"
	"errors"
	"fmt"
	holidayserrors "seatbook/internal/holidays/errors"
	"seatbook/pkg/config"
	"seatbook/pkg/model"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CollectionName = "Holidays"
)

type mongoHolidayRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

type HolidayRepository interface {
	Create(ctx context.Context, holiday *model.Holiday) error
	FindByDate(ctx context.Context, date time.Time) (*model.Holiday, error)
	FindAll(ctx context.Context) ([]*model.Holiday, error)
	FindFrom(ctx context.Context, asOf time.Time) ([]*model.Holiday, error)
	Delete(ctx context.Context, id string) error
}

func NewMongoHolidayRepository(cfg *config.Config) HolidayRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoHolidayRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

func (r *mongoHolidayRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, timeout)
}

// Create registers a holiday. The unique index on date makes double
// registration of the same day a clean ErrDuplicateDate.
func (r *mongoHolidayRepository) Create(ctx context.Context, holiday *model.Holiday) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	holiday.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	result, err := r.collection.InsertOne(ctx, holiday)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return holidayserrors.ErrDuplicateDate
		}
		return fmt.Errorf("failed to create holiday: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		holiday.ID = oid.Hex()
	}
	return nil
}

func (r *mongoHolidayRepository) FindByDate(ctx context.Context, date time.Time) (*model.Holiday, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var holiday model.Holiday
	err := r.collection.FindOne(ctx, bson.M{"date": model.Day(date)}).Decode(&holiday)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, holidayserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find holiday by date: %w", err)
	}

	return &holiday, nil
}

func (r *mongoHolidayRepository) FindAll(ctx context.Context) ([]*model.Holiday, error) {
	return r.find(ctx, bson.M{})
}

// FindFrom returns holidays on or after asOf, oldest first.
func (r *mongoHolidayRepository) FindFrom(ctx context.Context, asOf time.Time) ([]*model.Holiday, error) {
	return r.find(ctx, bson.M{"date": bson.M{"$gte": model.Day(asOf)}})
}

func (r *mongoHolidayRepository) find(ctx context.Context, filter bson.M) ([]*model.Holiday, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find holidays: %w", err)
	}
	defer cursor.Close(ctx)

	var holidays []*model.Holiday
	if err = cursor.All(ctx, &holidays); err != nil {
		return nil, fmt.Errorf("failed to decode holidays: %w", err)
	}

	return holidays, nil
}

func (r *mongoHolidayRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", holidayserrors.ErrInvalidID, id)
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return fmt.Errorf("failed to delete holiday: %w", err)
	}

	if result.DeletedCount == 0 {
		return holidayserrors.ErrNotFound
	}

	return nil
}

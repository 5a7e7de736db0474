package repository

import (
	"context"
	"errors"
	"fmt"
	internserrors "seatbook/internal/interns/errors"
	"seatbook/pkg/config"
	"seatbook/pkg/model"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CollectionName = "Interns"
)

type mongoInternRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

type InternRepository interface {
	Create(ctx context.Context, intern *model.Intern) error
	FindByID(ctx context.Context, id string) (*model.Intern, error)
	FindByEmail(ctx context.Context, email string) (*model.Intern, error)
	FindAll(ctx context.Context, limit int, offset int64) ([]*model.Intern, error)
	Count(ctx context.Context) (int64, error)
}

func NewMongoInternRepository(cfg *config.Config) InternRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoInternRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

func (r *mongoInternRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, timeout)
}

func (r *mongoInternRepository) Create(ctx context.Context, intern *model.Intern) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	intern.Email = strings.ToLower(strings.TrimSpace(intern.Email))
	intern.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)

	result, err := r.collection.InsertOne(ctx, intern)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return internserrors.ErrEmailTaken
		}
		return fmt.Errorf("failed to create intern: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		intern.ID = oid.Hex()
	}
	return nil
}

func (r *mongoInternRepository) FindByID(ctx context.Context, id string) (*model.Intern, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", internserrors.ErrInvalidID, id)
	}

	var intern model.Intern
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&intern)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, internserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find intern: %w", err)
	}

	return &intern, nil
}

func (r *mongoInternRepository) FindByEmail(ctx context.Context, email string) (*model.Intern, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	email = strings.ToLower(strings.TrimSpace(email))

	var intern model.Intern
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&intern)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, internserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find intern by email: %w", err)
	}

	return &intern, nil
}

func (r *mongoInternRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.Intern, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "last_name", Value: 1}, {Key: "first_name", Value: 1}}).
		SetLimit(int64(limit)).
		SetSkip(offset)

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find interns: %w", err)
	}
	defer cursor.Close(ctx)

	var interns []*model.Intern
	if err = cursor.All(ctx, &interns); err != nil {
		return nil, fmt.Errorf("failed to decode interns: %w", err)
	}

	return interns, nil
}

func (r *mongoInternRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count interns: %w", err)
	}
	return count, nil
}

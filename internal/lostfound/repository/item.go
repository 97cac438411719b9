package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	lostfounderrors "campusconnect/internal/lostfound/errors"
	"campusconnect/pkg/config"
	"campusconnect/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CollectionName = "Lost_found"
)

type ItemRepository interface {
	Create(ctx context.Context, item *model.LostFoundItem) error
	FindByID(ctx context.Context, id string) (*model.LostFoundItem, error)
	FindAll(ctx context.Context, limit int, offset int64) ([]*model.LostFoundItem, error)
	Count(ctx context.Context) (int64, error)
	DeleteOwned(ctx context.Context, id, userID string) error
}

type mongoItemRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoItemRepository(cfg *config.Config) ItemRepository {
	db := cfg.Client.Mongo.Client.Database(cfg.MongoDatabaseName)
	return &mongoItemRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

func (r *mongoItemRepository) Create(ctx context.Context, item *model.LostFoundItem) error {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	item.ID = ""
	item.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	result, err := r.collection.InsertOne(ctx, item)
	if err != nil {
		return fmt.Errorf("failed to create item: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		item.ID = oid.Hex()
	}
	return nil
}

func (r *mongoItemRepository) FindByID(ctx context.Context, id string) (*model.LostFoundItem, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", lostfounderrors.ErrInvalidID, id)
	}

	var item model.LostFoundItem
	if err := r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&item); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, lostfounderrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find item: %w", err)
	}
	return &item, nil
}

// FindAll lists the newest posts first.
func (r *mongoItemRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.LostFoundItem, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit)).
		SetSkip(offset)

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find items: %w", err)
	}
	defer cursor.Close(ctx)

	items := []*model.LostFoundItem{}
	if err := cursor.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("failed to decode items: %w", err)
	}
	return items, nil
}

func (r *mongoItemRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count items: %w", err)
	}
	return count, nil
}

func (r *mongoItemRepository) DeleteOwned(ctx context.Context, id, userID string) error {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", lostfounderrors.ErrInvalidID, id)
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID, "user_id": userID})
	if err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}
	if result.DeletedCount == 0 {
		return lostfounderrors.ErrNotFound
	}
	return nil
}

package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	eventserrors "campusconnect/internal/events/errors"
	"campusconnect/pkg/config"
	"campusconnect/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CollectionName = "Events"
)

type EventRepository interface {
	Create(ctx context.Context, event *model.Event) error
	FindByID(ctx context.Context, id string) (*model.Event, error)
	FindAll(ctx context.Context, limit int, offset int64) ([]*model.Event, error)
	Count(ctx context.Context) (int64, error)
	FindByDate(ctx context.Context, date string) ([]*model.Event, error)
	FindByDateRange(ctx context.Context, from, to string) ([]*model.Event, error)
}

type mongoEventRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoEventRepository(cfg *config.Config) EventRepository {
	db := cfg.Client.Mongo.Client.Database(cfg.MongoDatabaseName)
	return &mongoEventRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

// chronological orders events the way the board shows them.
var chronological = bson.D{{Key: "date", Value: 1}, {Key: "time", Value: 1}}

func (r *mongoEventRepository) Create(ctx context.Context, event *model.Event) error {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	event.ID = ""
	event.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	result, err := r.collection.InsertOne(ctx, event)
	if err != nil {
		return fmt.Errorf("failed to create event: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		event.ID = oid.Hex()
	}
	return nil
}

func (r *mongoEventRepository) FindByID(ctx context.Context, id string) (*model.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", eventserrors.ErrInvalidID, id)
	}

	var event model.Event
	if err := r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&event); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, eventserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find event: %w", err)
	}
	return &event, nil
}

func (r *mongoEventRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.Event, error) {
	opts := options.Find().
		SetSort(chronological).
		SetLimit(int64(limit)).
		SetSkip(offset)

	return r.find(ctx, bson.M{}, opts)
}

func (r *mongoEventRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count events: %w", err)
	}
	return count, nil
}

func (r *mongoEventRepository) FindByDate(ctx context.Context, date string) ([]*model.Event, error) {
	return r.find(ctx, bson.M{"date": date}, options.Find().SetSort(chronological))
}

// FindByDateRange returns events with from <= date <= to. Dates are stored
// as YYYY-MM-DD so string order is calendar order.
func (r *mongoEventRepository) FindByDateRange(ctx context.Context, from, to string) ([]*model.Event, error) {
	filter := bson.M{"date": bson.M{"$gte": from, "$lte": to}}
	return r.find(ctx, filter, options.Find().SetSort(chronological))
}

func (r *mongoEventRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*model.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find events: %w", err)
	}
	defer cursor.Close(ctx)

	events := []*model.Event{}
	if err := cursor.All(ctx, &events); err != nil {
		return nil, fmt.Errorf("failed to decode events: %w", err)
	}
	return events, nil
}

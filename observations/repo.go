package observations

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/fx"
)

const CollectionName = "observations"

func NewRepository(db *mongo.Database, lifecycle fx.Lifecycle) (Repository, error) {
	repo := &repository{
		collection: db.Collection(CollectionName),
	}

	lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return repo.Initialize(ctx)
		},
	})

	return repo, nil
}

type repository struct {
	collection *mongo.Collection
}

func (r *repository) Initialize(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "subjectId", Value: 1},
				{Key: "parameter", Value: 1},
				{Key: "timestamp", Value: -1},
			},
			Options: options.Index().SetName("SubjectParameterTimestamp"),
		},
	})
	return err
}

func (r *repository) Create(ctx context.Context, observation Observation) (*Observation, error) {
	if observation.Timestamp.IsZero() {
		observation.Timestamp = time.Now()
	}

	res, err := r.collection.InsertOne(ctx, observation)
	if err != nil {
		return nil, fmt.Errorf("error creating observation: %w", err)
	}

	id := res.InsertedID.(primitive.ObjectID)
	observation.Id = &id
	return &observation, nil
}

func (r *repository) Get(ctx context.Context, id string) (*Observation, error) {
	objId, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	observation := &Observation{}
	err = r.collection.FindOne(ctx, bson.M{"_id": objId}).Decode(observation)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, err
	}

	return observation, nil
}

func (r *repository) ListRecent(ctx context.Context, subjectId string, parameter Parameter, since time.Time, limit int) ([]*Observation, error) {
	selector := bson.M{
		"subjectId": subjectId,
		"parameter": parameter,
		"timestamp": bson.M{"$gte": since},
	}

	// Fetch newest first so the limit keeps the most recent readings,
	// then reverse for the oldest to newest contract.
	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, selector, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing observations: %w", err)
	}

	var observations []*Observation
	if err := cursor.All(ctx, &observations); err != nil {
		return nil, fmt.Errorf("error decoding observations: %w", err)
	}

	for i, j := 0, len(observations)-1; i < j; i, j = i+1, j-1 {
		observations[i], observations[j] = observations[j], observations[i]
	}

	return observations, nil
}

func (r *repository) LatestByParameter(ctx context.Context, subjectId string, parameter Parameter) (*Observation, error) {
	selector := bson.M{
		"subjectId": subjectId,
		"parameter": parameter,
	}
	opts := options.FindOne().SetSort(bson.D{{Key: "timestamp", Value: -1}})

	observation := &Observation{}
	err := r.collection.FindOne(ctx, selector, opts).Decode(observation)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, err
	}

	return observation, nil
}

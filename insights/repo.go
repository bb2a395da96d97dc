package insights

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/fx"

	"github.com/healthmitra/insights/store"
)

const CollectionName = "insights"

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
				{Key: "createdTime", Value: -1},
			},
			Options: options.Index().SetName("SubjectCreatedTime"),
		},
		{
			Keys: bson.D{
				{Key: "subjectId", Value: 1},
				{Key: "isActive", Value: 1},
			},
			Options: options.Index().SetName("SubjectActive"),
		},
	})
	return err
}

func (r *repository) Create(ctx context.Context, insight Insight) (*Insight, error) {
	insight.IsRead = false
	insight.IsActive = true
	if insight.CreatedTime.IsZero() {
		insight.CreatedTime = time.Now()
	}

	res, err := r.collection.InsertOne(ctx, insight)
	if err != nil {
		return nil, fmt.Errorf("error creating insight: %w", err)
	}

	id := res.InsertedID.(primitive.ObjectID)
	insight.Id = &id
	return &insight, nil
}

func (r *repository) Get(ctx context.Context, id string) (*Insight, error) {
	objId, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	insight := &Insight{}
	err = r.collection.FindOne(ctx, bson.M{"_id": objId}).Decode(insight)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, err
	}

	return insight, nil
}

func (r *repository) List(ctx context.Context, subjectId string, filter *Filter, pagination store.Pagination) ([]*Insight, error) {
	selector := bson.M{
		"subjectId": subjectId,
	}
	if filter != nil {
		if !filter.IncludeInactive {
			selector["isActive"] = true
		}
		if filter.Kind != nil {
			selector["kind"] = *filter.Kind
		}
		if filter.Severity != nil {
			selector["severity"] = *filter.Severity
		}
		if filter.UnreadOnly {
			selector["isRead"] = false
		}
	} else {
		selector["isActive"] = true
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdTime", Value: -1}}).
		SetSkip(int64(pagination.Offset)).
		SetLimit(int64(pagination.Limit))

	cursor, err := r.collection.Find(ctx, selector, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing insights: %w", err)
	}

	var insights []*Insight
	if err := cursor.All(ctx, &insights); err != nil {
		return nil, fmt.Errorf("error decoding insights: %w", err)
	}

	return insights, nil
}

func (r *repository) MarkRead(ctx context.Context, id string) error {
	objId, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	now := time.Now()
	update := bson.M{
		"$set": bson.M{
			"isRead": true,
			"readAt": now,
		},
	}

	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": objId}, update)
	if err != nil {
		return fmt.Errorf("error marking insight read: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *repository) Deactivate(ctx context.Context, id string) error {
	objId, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	update := bson.M{
		"$set": bson.M{
			"isActive": false,
		},
	}

	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": objId}, update)
	if err != nil {
		return fmt.Errorf("error deactivating insight: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}

	return nil
}

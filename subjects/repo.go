package subjects

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

const CollectionName = "subjects"

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
			Keys:    bson.D{{Key: "userId", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("UniqueSubject"),
		},
	})
	return err
}

func (r *repository) Get(ctx context.Context, userId string) (*Subject, error) {
	subject := &Subject{}
	err := r.collection.FindOne(ctx, bson.M{"userId": userId}).Decode(subject)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, err
	}

	return subject, nil
}

func (r *repository) Create(ctx context.Context, subject Subject) (*Subject, error) {
	if subject.CreatedTime.IsZero() {
		subject.CreatedTime = time.Now()
	}

	res, err := r.collection.InsertOne(ctx, subject)
	if store.IsDuplicateKeyError(err) {
		return nil, ErrDuplicate
	} else if err != nil {
		return nil, fmt.Errorf("error creating subject: %w", err)
	}

	id := res.InsertedID.(primitive.ObjectID)
	subject.Id = &id
	return &subject, nil
}

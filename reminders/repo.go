package reminders

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

const CollectionName = "reminders"

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
				{Key: "scheduledTime", Value: 1},
				{Key: "isActive", Value: 1},
				{Key: "isSent", Value: 1},
			},
			Options: options.Index().SetName("DueReminders"),
		},
		{
			Keys:    bson.D{{Key: "subjectId", Value: 1}},
			Options: options.Index().SetName("Subject"),
		},
	})
	return err
}

func (r *repository) Create(ctx context.Context, reminder Reminder) (*Reminder, error) {
	reminder.IsActive = true
	reminder.IsSent = false
	if reminder.CreatedTime.IsZero() {
		reminder.CreatedTime = time.Now()
	}

	res, err := r.collection.InsertOne(ctx, reminder)
	if err != nil {
		return nil, fmt.Errorf("error creating reminder: %w", err)
	}

	id := res.InsertedID.(primitive.ObjectID)
	reminder.Id = &id
	return &reminder, nil
}

func (r *repository) ListDue(ctx context.Context, before time.Time) ([]*Reminder, error) {
	selector := bson.M{
		"scheduledTime": bson.M{"$lte": before},
		"isActive":      true,
		"isSent":        false,
	}
	opts := options.Find().SetSort(bson.D{{Key: "scheduledTime", Value: 1}})

	cursor, err := r.collection.Find(ctx, selector, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing due reminders: %w", err)
	}

	var reminders []*Reminder
	if err := cursor.All(ctx, &reminders); err != nil {
		return nil, fmt.Errorf("error decoding reminders: %w", err)
	}

	return reminders, nil
}

func (r *repository) MarkSent(ctx context.Context, id string) error {
	objId, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": objId}, bson.M{"$set": bson.M{"isSent": true}})
	if err != nil {
		return fmt.Errorf("error marking reminder sent: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}

	return nil
}

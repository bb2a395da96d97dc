package alerts

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/fx"

	"github.com/healthmitra/insights/risk"
)

const DeliveriesCollectionName = "alert_deliveries"

// Delivery is the audit record of one alert send attempt. Failures are
// recorded here rather than surfaced to the insight generator.
type Delivery struct {
	Id          *primitive.ObjectID `bson:"_id,omitempty"`
	ReceiptId   string              `bson:"receiptId"`
	To          string              `bson:"to"`
	Message     string              `bson:"message"`
	Severity    risk.Severity       `bson:"severity"`
	ProviderSid string              `bson:"providerSid,omitempty"`
	Succeeded   bool                `bson:"succeeded"`
	Error       string              `bson:"error,omitempty"`
	CreatedTime time.Time           `bson:"createdTime"`
}

//go:generate go tool mockgen -source=./deliveries.go -destination=./test/mock_deliveries.go -package test

type DeliveriesRepository interface {
	Create(ctx context.Context, delivery Delivery) error
}

func NewDeliveriesRepository(db *mongo.Database, lifecycle fx.Lifecycle) (DeliveriesRepository, error) {
	repo := &deliveriesRepository{
		collection: db.Collection(DeliveriesCollectionName),
	}

	lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return repo.Initialize(ctx)
		},
	})

	return repo, nil
}

type deliveriesRepository struct {
	collection *mongo.Collection
}

func (r *deliveriesRepository) Initialize(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "createdTime", Value: 1}},
			Options: options.Index().SetName("CreatedTime"),
		},
		{
			Keys:    bson.D{{Key: "to", Value: 1}},
			Options: options.Index().SetName("Recipient"),
		},
	})
	return err
}

func (r *deliveriesRepository) Create(ctx context.Context, delivery Delivery) error {
	if _, err := r.collection.InsertOne(ctx, delivery); err != nil {
		return fmt.Errorf("error inserting alert delivery: %w", err)
	}
	return nil
}

package subjects

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var ErrNotFound = errors.New("subject not found")
var ErrDuplicate = errors.New("subject already exists")

// Subject is the contact view of a user. Account management lives in a
// separate system; this service only needs to know where alerts and
// reminders go and whether the user opted in.
type Subject struct {
	Id          *primitive.ObjectID `bson:"_id,omitempty"`
	UserId      string              `bson:"userId"`
	FullName    string              `bson:"fullName,omitempty"`
	Phone       string              `bson:"phone,omitempty"`
	SmsEnabled  bool                `bson:"smsEnabled"`
	CreatedTime time.Time           `bson:"createdTime"`
}

//go:generate go tool mockgen -source=./subjects.go -destination=./test/mock_repository.go -package test

type Repository interface {
	Get(ctx context.Context, userId string) (*Subject, error)
	Create(ctx context.Context, subject Subject) (*Subject, error)
}

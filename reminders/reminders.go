package reminders

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var ErrNotFound = errors.New("reminder not found")

type Kind string

const (
	KindMedication  Kind = "medication"
	KindAppointment Kind = "appointment"
)

type Metadata struct {
	MedicationName string `bson:"medicationName,omitempty"`
	Dosage         string `bson:"dosage,omitempty"`
	DoctorName     string `bson:"doctorName,omitempty"`
	Location       string `bson:"location,omitempty"`
}

// Reminder is a scheduled medication or appointment notification. Sent
// reminders stay around flagged isSent so they are never delivered
// twice.
type Reminder struct {
	Id            *primitive.ObjectID `bson:"_id,omitempty"`
	SubjectId     string              `bson:"subjectId"`
	Kind          Kind                `bson:"kind"`
	Title         string              `bson:"title,omitempty"`
	Metadata      Metadata            `bson:"metadata,omitempty"`
	ScheduledTime time.Time           `bson:"scheduledTime"`
	IsActive      bool                `bson:"isActive"`
	IsSent        bool                `bson:"isSent"`
	CreatedTime   time.Time           `bson:"createdTime"`
}

//go:generate go tool mockgen -source=./reminders.go -destination=./test/mock_repository.go -package test

type Repository interface {
	Create(ctx context.Context, reminder Reminder) (*Reminder, error)
	// ListDue returns active, unsent reminders scheduled at or before
	// the given time.
	ListDue(ctx context.Context, before time.Time) ([]*Reminder, error)
	MarkSent(ctx context.Context, id string) error
}

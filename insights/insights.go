package insights

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/healthmitra/insights/observations"
	"github.com/healthmitra/insights/risk"
	"github.com/healthmitra/insights/store"
)

var ErrNotFound = errors.New("insight not found")

type Kind string

const (
	KindHealthRisk      Kind = "health_risk"
	KindTrendAnalysis   Kind = "trend_analysis"
	KindMedicationAlert Kind = "medication_alert"
	KindGeneralAdvice   Kind = "general_advice"
)

// Evidence points at the data an insight was derived from. Parameter is
// a free-form label rather than observations.Parameter because derived
// values such as "bmi" have no observation parameter of their own.
type Evidence struct {
	Parameter     string              `bson:"parameter"`
	Value         string              `bson:"value"`
	ObservationId *primitive.ObjectID `bson:"observationId,omitempty"`
}

// Insight is the persisted unit of advice shown to a user. The core
// writes insights once; only the read tracking and deactivation
// workflows mutate them afterwards.
type Insight struct {
	Id              *primitive.ObjectID `bson:"_id,omitempty"`
	SubjectId       string              `bson:"subjectId"`
	Kind            Kind                `bson:"kind"`
	Severity        risk.Severity       `bson:"severity"`
	Title           string              `bson:"title"`
	Message         string              `bson:"message"`
	Recommendations []string            `bson:"recommendations,omitempty"`
	Confidence      float64             `bson:"confidence"`
	Evidence        []Evidence          `bson:"evidence,omitempty"`
	IsRead          bool                `bson:"isRead"`
	IsActive        bool                `bson:"isActive"`
	ReadAt          *time.Time          `bson:"readAt,omitempty"`
	CreatedTime     time.Time           `bson:"createdTime"`
}

type Filter struct {
	Kind       *Kind
	Severity   *risk.Severity
	UnreadOnly bool
	// IncludeInactive also returns soft deleted insights.
	IncludeInactive bool
}

//go:generate go tool mockgen -source=./insights.go -destination=./test/mock_repository.go -package test -aux_files=github.com/healthmitra/insights/insights=service.go

type Repository interface {
	Create(ctx context.Context, insight Insight) (*Insight, error)
	Get(ctx context.Context, id string) (*Insight, error)
	List(ctx context.Context, subjectId string, filter *Filter, pagination store.Pagination) ([]*Insight, error)
	MarkRead(ctx context.Context, id string) error
	Deactivate(ctx context.Context, id string) error
}

// Service generates insights for a subject, optionally folding in a
// newly created observation.
type Service interface {
	GenerateInsights(ctx context.Context, subjectId string, newObservation *observations.Observation) ([]*Insight, error)
}
